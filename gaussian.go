/*
 * gaussian.go, part of orbkit.
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
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Gaussian prints orientation tables and orbital blocks with fixed column
// positions, so rows are sliced by character offset rather than split.
const (
	logGeoSkip      = 4  //banner rows between the orientation keyword and the data
	logMOLabelWidth = 21 //row label of an orbital block, values start after it
	logSymOffset    = 18 //start of the labels on an "Orbital symmetries" row
)

type logSection int

const (
	logNone logSection = iota
	logGeo
	logAO
	logMOSym
	logMO
)

// logCensus holds the first-pass occurrence counts. A .log file repeats
// its sections after every optimization step, so the caller's indices can
// only be resolved once the totals are known.
type logCensus struct {
	geometry      int
	geometryInput int
	basisSections int
	moBlocks      []string //Alpha, Natural, etc. A Beta block merges into the previous entry.
	states        []string
}

var errNoOccurrence = errors.New("no occurrences of the section")

type logParser struct {
	filename string
	qc       *QCInfo
	census   *logCensus

	orientation      string
	iGeo, iAO, iMO   int
	section          logSection
	skip             int
	cGeo, cAO, cMO   int
	basisCount       int
	bNew             bool
	atom             int
	shellTypes       string //one letter per sibling shell sharing the exponent column
	primIdx          int
	moType           string
	symAdd           string
	orbSym           []string
	index            []int
	offset           int
}

// ReadGaussianLog reads a Gaussian .log file into a QCInfo. The file is
// scanned twice: a census pass counts how often each section repeats, the
// caller's indices in opts (or an interactive prompt) pick one occurrence
// of each, and the extraction pass keeps only those. Orbital coefficients
// are only printed when IOP(6/7=3) is in the route section, and the basis
// only with GFINPUT.
func ReadGaussianLog(filename string, opts *Options) (*QCInfo, error) {
	opts = defaulted(opts)
	lines, err := fileLines(filename)
	if err != nil {
		return nil, err
	}
	p := &logParser{filename: filename, qc: new(QCInfo), orientation: opts.Orientation}
	p.census, err = censusGaussianLog(lines, p.orientation, filename)
	if err != nil {
		return nil, err
	}
	if err := p.selectSections(opts); err != nil {
		return nil, err
	}
	for il, line := range lines {
		var next string
		if il+1 < len(lines) {
			next = lines[il+1]
		}
		fields := strings.Fields(line)
		switch {
		case strings.Contains(strings.ToLower(line), p.orientation+" orientation:"):
			if p.iGeo == p.cGeo {
				p.qc.GeoInfo = nil
				p.qc.GeoSpec = nil
				p.section = logGeo
			}
			p.cGeo++
			p.skip = logGeoSkip
		case strings.Contains(line, "Standard basis:"):
			if !strings.Contains(line, "(6D, 10F)") {
				return nil, parseError(ErrUnsupportedConstruct, "gaussian.log", filename,
					"a Cartesian Gaussian basis set (6D, 10F) is required")
			}
		case strings.Contains(line, "AO basis set"):
			if p.iAO == p.cAO {
				p.qc.AOSpec = nil
				p.section = logAO
			}
			p.cAO++
			p.basisCount = 0
			p.bNew = true
		case strings.Contains(line, "Orbital symmetries:"):
			p.section = logMOSym
			p.symAdd = ""
			p.orbSym = nil
		case strings.Contains(line, "Orbital Coefficients:"):
			if p.iMO == p.cMO {
				p.section = logMO
				p.moType = p.census.moBlocks[p.iMO]
				if err := p.initMOBlock(); err != nil {
					return nil, err
				}
			}
			//a Beta block continues the merged entry opened by its Alpha sibling
			if len(fields) > 0 && fields[0] != "Beta" {
				p.cMO++
			}
			p.bNew = true
		case strings.Contains(line, "E("):
			if i := strings.Index(line, "="); i >= 0 {
				if f := strings.Fields(line[i+1:]); len(f) > 0 {
					if v, err := strconv.ParseFloat(f[0], 64); err == nil {
						p.qc.Etot = v
					}
				}
			}
		default:
			var err error
			switch p.section {
			case logGeo:
				err = p.geoLine(line, fields, next)
			case logAO:
				err = p.aoLine(line, fields, next)
			case logMOSym:
				p.symLine(line)
			case logMO:
				err = p.moLine(line)
			}
			if err != nil {
				return nil, err
			}
		}
	}
	if !opts.AllMO {
		p.qc.filterOccupied()
	}
	return p.qc, nil
}

// censusGaussianLog is the first pass. It counts section occurrences
// without keeping any data, and tags every orbital-coefficient block with
// its spin or kind so the selection menu can name them.
func censusGaussianLog(lines []string, orientation, filename string) (*logCensus, error) {
	c := new(logCensus)
	for _, line := range lines {
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(line, " orientation:"):
			if strings.Contains(lower, orientation+" orientation:") {
				c.geometry++
			}
			if strings.Contains(lower, "input orientation:") {
				c.geometryInput++
			}
		case strings.Contains(line, "Standard basis:") || strings.Contains(line, "General basis read from cards:"):
			if !strings.Contains(line, "(6D, 10F)") {
				return nil, parseError(ErrUnsupportedConstruct, "gaussian.log", filename,
					"a Cartesian Gaussian basis set (6D, 10F) is required")
			}
		case strings.Contains(line, "AO basis set"):
			c.basisSections++
		case strings.Contains(line, "The electronic state is "):
			fields := strings.Fields(line)
			c.states = append(c.states, strings.TrimSuffix(fields[len(fields)-1], "."))
		case strings.Contains(line, "Orbital Coefficients:"):
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			if fields[0] != "Beta" {
				c.moBlocks = append(c.moBlocks, fields[0])
			} else if n := len(c.moBlocks); n > 0 {
				c.moBlocks[n-1] = "Alpha&Beta"
			}
		}
	}
	return c, nil
}

// selectSections resolves the geometry, basis and orbital indices against
// the census. If the requested orientation never occurs the census is
// redone for the input orientation before giving up.
func (p *logParser) selectSections(opts *Options) error {
	var prompt *bufio.Scanner
	if opts.Interactive {
		prompt = bufio.NewScanner(opts.Prompt)
	}
	display("Content of the GAUSSIAN .log file:")
	display("\tFound %d geometry section(s). (%s orientation)", p.census.geometry, p.orientation)
	var err error
	p.iGeo, err = p.checkSel(p.census.geometry, opts.IGeo, prompt)
	if errors.Is(err, errNoOccurrence) {
		p.orientation = "input"
		p.census.geometry = p.census.geometryInput
		display("Looking for \"Input orientation\":")
		display("\tFound %d geometry section(s). (%s orientation)", p.census.geometry, p.orientation)
		p.iGeo, err = p.checkSel(p.census.geometry, opts.IGeo, prompt)
		if errors.Is(err, errNoOccurrence) {
			return parseError(ErrSectionNotFound, "gaussian.log", p.filename,
				"found no geometry section, are you sure this is a GAUSSIAN .log file?")
		}
	}
	if err != nil {
		return err
	}
	display("\tFound %d atomic orbitals section(s).", p.census.basisSections)
	p.iAO, err = p.checkSel(p.census.basisSections, opts.IAO, prompt)
	if errors.Is(err, errNoOccurrence) {
		return parseError(ErrSectionNotFound, "gaussian.log", p.filename,
			"write GFINPUT in the GAUSSIAN route section to print the basis set information")
	}
	if err != nil {
		return err
	}
	display("\tFound the following %d molecular orbitals section(s):", len(p.census.moBlocks))
	for i, kind := range p.census.moBlocks {
		s := fmt.Sprintf("\t\tSection %d: %s Orbitals", i, kind)
		if i < len(p.census.states) {
			s += fmt.Sprintf(" (electronic state: %s)", p.census.states[i])
		}
		display("%s", s)
	}
	p.iMO, err = p.checkSel(len(p.census.moBlocks), opts.IMO, prompt)
	if errors.Is(err, errNoOccurrence) {
		return parseError(ErrSectionNotFound, "gaussian.log", p.filename,
			"write IOP(6/7=3) in the GAUSSIAN route section to print all molecular orbitals")
	}
	return err
}

// checkSel turns a requested occurrence index into a concrete 0-based one.
// Negative indices count from the end. With a prompt the user's answer
// replaces the requested index.
func (p *logParser) checkSel(count, i int, prompt *bufio.Scanner) (int, error) {
	if count == 0 {
		return 0, errNoOccurrence
	}
	if count == 1 {
		return 0, nil
	}
	rangeMsg := fmt.Sprintf("please give an integer from 0 to %d", count-1)
	if prompt != nil {
		display("\t%s: ", rangeMsg)
		if !prompt.Scan() {
			return 0, parseError(ErrSectionNotFound, "gaussian.log", p.filename, rangeMsg)
		}
		v, err := strconv.Atoi(strings.TrimSpace(prompt.Text()))
		if err != nil {
			return 0, parseError(ErrSectionNotFound, "gaussian.log", p.filename, rangeMsg)
		}
		i = v
	}
	if i < 0 {
		i += count
	}
	if i < 0 || i >= count {
		return 0, parseError(ErrSectionNotFound, "gaussian.log", p.filename, rangeMsg)
	}
	if i == count-1 {
		display("\tSelecting the last element.")
	} else {
		display("\tSelecting element %d.", i)
	}
	return i, nil
}

// initMOBlock sizes the orbital list for the selected coefficient block.
// When no symmetry section preceded it (older output styles) synthetic A1
// labels stand in, split alpha/beta by a suffix. Labels repeat across
// irreducible representations, so each gets an ordinal counting its prior
// occurrences, as in "2.A1".
func (p *logParser) initMOBlock() error {
	if p.basisCount == 0 {
		return parseError(ErrOrdering, "gaussian.log", p.filename,
			"the AO basis needs to be read before the orbital coefficients")
	}
	p.offset = 0
	if len(p.orbSym) == 0 {
		add := ""
		if strings.Contains(p.moType, "Alpha") {
			add = "(a)"
		}
		for i := 0; i < p.basisCount; i++ {
			p.orbSym = append(p.orbSym, "A1"+add)
		}
		if strings.Contains(p.moType, "Beta") {
			for i := 0; i < p.basisCount; i++ {
				p.orbSym = append(p.orbSym, "A1(b)")
			}
		}
	}
	p.qc.MOSpec = nil
	seen := make(map[string]int, len(p.orbSym))
	for _, sym := range p.orbSym {
		seen[sym]++
		p.qc.MOSpec = append(p.qc.MOSpec, MolecularOrbital{
			Coeffs: make([]float64, p.basisCount),
			Sym:    fmt.Sprintf("%d.%s", seen[sym], sym),
		})
	}
	return nil
}

func (p *logParser) geoLine(line string, fields []string, next string) error {
	if p.skip > 0 {
		p.skip--
		return nil
	}
	if len(fields) < 6 {
		return parseError(ErrInvalidFormat, "gaussian.log", p.filename, "bad geometry row: "+line)
	}
	serial, err := strconv.Atoi(fields[0])
	if err != nil {
		return parseError(ErrInvalidFormat, "gaussian.log", p.filename, "bad geometry row: "+line)
	}
	//the orientation table identifies atoms by atomic number only
	p.qc.GeoInfo = append(p.qc.GeoInfo, AtomEntry{Label: fields[1], Serial: serial, Extra: fields[1]})
	xyz, err := toFloats(fields[3:6])
	if err != nil {
		return parseError(ErrInvalidFormat, "gaussian.log", p.filename, "bad coordinate: "+line)
	}
	for i := range xyz {
		xyz[i] *= Angs2Bohr
	}
	p.qc.GeoSpec = append(p.qc.GeoSpec, xyz)
	if strings.Contains(next, "-----------") {
		p.section = logNone
	}
	return nil
}

func (p *logParser) aoLine(line string, fields []string, next string) error {
	switch {
	case strings.Contains(line, " ****"):
		//a line of stars closes each atom; a blank line after it ends the section
		p.bNew = true
		if len(strings.Fields(next)) == 0 {
			p.section = logNone
		}
	case p.bNew:
		p.bNew = false
		v, err := strconv.Atoi(fields[0])
		if err != nil {
			return parseError(ErrInvalidFormat, "gaussian.log", p.filename, "bad basis atom header: "+line)
		}
		p.atom = v - 1
		p.primIdx = 0
	case len(fields) == 4:
		p.primIdx = 0
		p.shellTypes = strings.ToLower(fields[0])
		pnum, err := strconv.Atoi(fields[1])
		if err != nil {
			return parseError(ErrInvalidFormat, "gaussian.log", p.filename, "bad shell header: "+line)
		}
		for _, r := range p.shellTypes {
			l, ok := lquant[string(r)]
			if !ok {
				return parseError(ErrUnsupportedConstruct, "gaussian.log", p.filename,
					fmt.Sprintf("shell type %q is not supported", fields[0]))
			}
			p.basisCount += lDeg(l)
			p.qc.AOSpec = append(p.qc.AOSpec, AOShell{
				Atom:   p.atom,
				Type:   string(r),
				PNum:   pnum,
				Coeffs: make([][2]float64, pnum),
			})
		}
	default:
		vals, err := toFloats(strings.Fields(strings.ReplaceAll(line, "D", "e")))
		if err != nil || len(vals) < 1+len(p.shellTypes) {
			return parseError(ErrInvalidFormat, "gaussian.log", p.filename, "bad primitive row: "+line)
		}
		//sibling shells of a combined type (SP) share the exponent column
		n := len(p.qc.AOSpec)
		for i := 0; i < len(p.shellTypes); i++ {
			sh := &p.qc.AOSpec[n-len(p.shellTypes)+i]
			if p.primIdx >= len(sh.Coeffs) {
				return parseError(ErrInvalidFormat, "gaussian.log", p.filename, "more primitives than declared: "+line)
			}
			sh.Coeffs[p.primIdx] = [2]float64{vals[0], vals[1+i]}
		}
		p.primIdx++
	}
	return nil
}

func (p *logParser) symLine(line string) {
	if strings.Contains(line, "The electronic state is") {
		p.section = logNone
		return
	}
	if strings.Contains(line, "Alpha") {
		p.symAdd = "(a)"
	} else if strings.Contains(line, "Beta") {
		p.symAdd = "(b)"
	}
	if len(line) <= logSymOffset {
		return
	}
	labels := strings.NewReplacer("(", "", ")", "").Replace(line[logSymOffset:])
	for _, sym := range strings.Fields(labels) {
		p.orbSym = append(p.orbSym, sym+p.symAdd)
	}
}

// moLine handles one row of an orbital-coefficient block. The first
// blank-labelled row carries the orbital numbers of the block's columns,
// the second their occupied/virtual marks, an Eigenvalues row their
// energies (or occupations, for natural orbitals), and every other row one
// basis function's coefficient per column.
func (p *logParser) moLine(line string) error {
	label := line
	var values []string
	if len(line) > logMOLabelWidth {
		label = line[:logMOLabelWidth]
		values = strings.Fields(line[logMOLabelWidth:])
	}
	info := strings.Fields(label)
	switch {
	case len(info) == 0:
		if p.bNew {
			p.index = p.index[:0]
			for i := range values {
				p.index = append(p.index, p.offset+i)
			}
			p.bNew = false
			return nil
		}
		for i, j := range p.index {
			if i >= len(values) || j >= len(p.qc.MOSpec) {
				return parseError(ErrInvalidFormat, "gaussian.log", p.filename, "bad occupation row: "+line)
			}
			var occ float64
			if strings.Contains(values[i], "O") {
				occ = 1
			}
			if !strings.Contains("Alpha&Beta", p.moType) {
				occ *= 2
			}
			p.qc.MOSpec[j].OccNum = occ
		}
	case info[0] == "Eigenvalues":
		for i, j := range p.index {
			if i >= len(values) || j >= len(p.qc.MOSpec) {
				return parseError(ErrInvalidFormat, "gaussian.log", p.filename, "bad eigenvalue row: "+line)
			}
			v, err := strconv.ParseFloat(values[i], 64)
			if err != nil {
				return parseError(ErrInvalidFormat, "gaussian.log", p.filename, "bad eigenvalue: "+values[i])
			}
			if p.moType == "Natural" {
				p.qc.MOSpec[j].OccNum = v
			} else {
				p.qc.MOSpec[j].Energy = v
			}
		}
	default:
		row, err := strconv.Atoi(info[0])
		if err != nil {
			return parseError(ErrInvalidFormat, "gaussian.log", p.filename, "bad coefficient row: "+line)
		}
		for i, j := range p.index {
			if i >= len(values) || j >= len(p.qc.MOSpec) || row > p.basisCount {
				return parseError(ErrInvalidFormat, "gaussian.log", p.filename, "bad coefficient row: "+line)
			}
			v, err := strconv.ParseFloat(values[i], 64)
			if err != nil {
				displayWarning("error in coefficient %d of MO %s, setting this coefficient to zero",
					row, p.qc.MOSpec[j].Sym)
				v = 0
			}
			p.qc.MOSpec[j].Coeffs[row-1] = v
		}
		if row == p.basisCount && len(p.index) > 0 {
			p.bNew = true
			p.offset = p.index[len(p.index)-1] + 1
			if p.offset == len(p.orbSym) {
				p.section = logNone
				p.orbSym = nil
			}
		}
	}
	return nil
}
