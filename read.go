/*
 * read.go, part of orbkit.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 3 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package orbkit

import (
	"bufio"
	"io"
	"os"
	"strings"

	gzip "github.com/klauspost/compress/gzip"
)

type readerFunc func(filename string, opts *Options) (*QCInfo, error)

var readers = map[string]readerFunc{
	"molden":        ReadMolden,
	"gamess":        ReadGamess,
	"gaussian.fchk": ReadGaussianFchk,
	"gaussian.log":  ReadGaussianLog,
}

// Read calls the reader matching the format tag itype on filename and
// returns the resulting record. The known tags are "molden", "gamess",
// "gaussian.fchk" and "gaussian.log". A nil opts means DefaultOptions.
func Read(filename, itype string, opts *Options) (*QCInfo, error) {
	reader, ok := readers[itype]
	if !ok {
		return nil, parseError(ErrUnsupportedFormat, itype, filename,
			"known formats are molden, gamess, gaussian.fchk and gaussian.log")
	}
	display("Loading %s file %s", itype, filename)
	return reader(filename, opts)
}

// ReadMultiple reads several files of the same format, in order. It stops
// at the first failure, returning the error together with the records read
// so far.
func ReadMultiple(filenames []string, itype string, opts *Options) ([]*QCInfo, error) {
	records := make([]*QCInfo, 0, len(filenames))
	for _, filename := range filenames {
		qc, err := Read(filename, itype, opts)
		if err != nil {
			return records, err
		}
		records = append(records, qc)
	}
	return records, nil
}

// fileLines reads the whole input into memory, one string per line. A .gz
// suffix gets the file decompressed on the fly.
func fileLines(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(filename, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
