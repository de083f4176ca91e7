/*
 * options.go, part of orbkit.
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
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// Options control a read. The zero value is not useful; start from
// DefaultOptions (or LoadOptions) and change what you need. Only the
// Gaussian log reader looks at the fields below AllMO.
type Options struct {
	//AllMO keeps every orbital in the record instead of just the
	//occupied ones.
	AllMO bool `toml:"all_mo"`
	//Orientation selects which geometry printout of a Gaussian log to
	//read, "standard" or "input". Note that the MO coefficients in a log
	//are only valid for the standard orientation.
	Orientation string `toml:"orientation"`
	//IGeo, IAO and IMO select which occurrence of the geometry, basis and
	//MO sections of a Gaussian log to keep. Negative values count from
	//the end, -1 being the last.
	IGeo int `toml:"i_geo"`
	IAO  int `toml:"i_ao"`
	IMO  int `toml:"i_mo"`
	//Interactive asks on Prompt instead of using the indices above.
	Interactive bool `toml:"interactive"`
	//Prompt is where interactive selection reads its answers from.
	//Defaults to standard input.
	Prompt io.Reader `toml:"-"`
}

// DefaultOptions returns the settings used when the caller passes nil:
// occupied orbitals only, the last occurrence of every Gaussian log
// section, standard orientation, non-interactive.
func DefaultOptions() *Options {
	return &Options{
		Orientation: "standard",
		IGeo:        -1,
		IAO:         -1,
		IMO:         -1,
		Prompt:      os.Stdin,
	}
}

// LoadOptions reads Options from a TOML file. Keys absent from the file
// keep their default values.
func LoadOptions(filename string) (*Options, error) {
	cont, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	opts := DefaultOptions()
	if err := toml.Unmarshal(cont, opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// defaulted fills in a usable Options value for a reader.
func defaulted(opts *Options) *Options {
	if opts == nil {
		return DefaultOptions()
	}
	completed := *opts
	if completed.Orientation == "" {
		completed.Orientation = "standard"
	}
	if completed.Prompt == nil {
		completed.Prompt = os.Stdin
	}
	return &completed
}
