/*
 * molden.go, part of orbkit.
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
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// The sections of a molden file, in file order. Exactly one is active at
// a time.
type moldenSection int

const (
	moldenNone moldenSection = iota
	moldenGeo
	moldenAO
	moldenMO
)

var digitRun = regexp.MustCompile(`\d+`)

type moldenParser struct {
	filename   string
	qc         *QCInfo
	section    moldenSection
	basisCount int
	angs2au    float64 //unit factor, decided once per [Atoms] header
	atom       int     //atom the shells being read belong to
	bNew       bool    //next line starts a new shell group / orbital
}

// ReadMolden reads a molden file into a QCInfo. Files holding several
// concatenated molecules yield the last one. See Read for the options.
func ReadMolden(filename string, opts *Options) (*QCInfo, error) {
	opts = defaulted(opts)
	lines, err := fileLines(filename)
	if err != nil {
		return nil, err
	}
	marker := false
	for _, line := range lines {
		if strings.Contains(line, "[Molden Format]") {
			marker = true
			break
		}
	}
	if !marker {
		return nil, parseError(ErrInvalidFormat, "molden", filename,
			"the file does not contain the [Molden Format] keyword")
	}
	p := &moldenParser{filename: filename, angs2au: 1.0}
	for _, line := range lines {
		fields := strings.Fields(line)
		switch {
		case strings.Contains(line, "[Molden Format]"):
			//a new molecule begins, start over
			p.qc = new(QCInfo)
			p.section = moldenNone
			p.basisCount = 0
		case p.qc == nil:
			//junk before the format marker
		case strings.Contains(line, "_ENERGY="):
			if len(fields) < 2 {
				return nil, parseError(ErrInvalidFormat, "molden", filename, "truncated energy line: "+line)
			}
			etot, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, parseError(ErrInvalidFormat, "molden", filename, "bad total energy: "+line)
			}
			p.qc.Etot = etot
		case strings.Contains(line, "[Atoms]"):
			p.section = moldenGeo
			p.angs2au = 1.0
			if strings.Contains(line, "Angs") {
				p.angs2au = Angs2Bohr
			}
		case strings.Contains(line, "[GTO]"):
			p.section = moldenAO
			p.bNew = true
		case strings.Contains(line, "[MO]"):
			p.section = moldenMO
			p.bNew = true
		case strings.Contains(line, "[STO]"):
			return nil, parseError(ErrUnsupportedConstruct, "molden", filename,
				"Slater-type orbitals are not supported")
		default:
			var err error
			switch p.section {
			case moldenGeo:
				err = p.geoLine(line, fields)
			case moldenAO:
				err = p.aoLine(line, fields)
			case moldenMO:
				err = p.moLine(line, fields)
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

// geoLine reads one atom of the [Atoms] section: label, serial, nuclear
// charge and cartesian coordinates.
func (p *moldenParser) geoLine(line string, fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	if len(fields) < 6 {
		return parseError(ErrInvalidFormat, "molden", p.filename, "truncated line in [Atoms]: "+line)
	}
	serial, err := strconv.Atoi(fields[1])
	if err != nil {
		return parseError(ErrInvalidFormat, "molden", p.filename, "bad atom serial in [Atoms]: "+line)
	}
	p.qc.GeoInfo = append(p.qc.GeoInfo, AtomEntry{Label: fields[0], Serial: serial, Extra: fields[2]})
	xyz := make([]float64, 3)
	for i, tok := range fields[3:6] {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return parseError(ErrInvalidFormat, "molden", p.filename, "bad coordinate in [Atoms]: "+line)
		}
		xyz[i] = v * p.angs2au
	}
	p.qc.GeoSpec = append(p.qc.GeoSpec, xyz)
	return nil
}

// aoLine reads the [GTO] section. Shell groups are separated by blank
// lines; within a group, a 3-token line opens a shell and the following
// lines hold one primitive each.
func (p *moldenParser) aoLine(line string, fields []string) error {
	switch {
	case len(fields) == 0:
		p.bNew = true //there is a blank line after the shells of each atom
	case p.bNew:
		//which atom are the following shells for?
		p.bNew = false
		atom, err := strconv.Atoi(fields[0])
		if err != nil {
			return parseError(ErrInvalidFormat, "molden", p.filename, "bad atom number in [GTO]: "+line)
		}
		p.atom = atom - 1
	case len(fields) == 3:
		//shell type, primitive count and scale factor
		shellType := fields[0]
		deg, ok := shellDeg(shellType)
		if !ok {
			return parseError(ErrUnsupportedConstruct, "molden", p.filename,
				"unknown shell type in [GTO]: "+shellType)
		}
		pnum, err := strconv.Atoi(fields[1])
		if err != nil {
			return parseError(ErrInvalidFormat, "molden", p.filename, "bad primitive count in [GTO]: "+line)
		}
		p.basisCount += deg
		p.qc.AOSpec = append(p.qc.AOSpec, AOShell{
			Atom:   p.atom,
			Type:   shellType,
			PNum:   pnum,
			Coeffs: make([][2]float64, 0, pnum),
		})
	default:
		//one primitive, exponent and coefficient in Fortran D-notation
		if len(p.qc.AOSpec) == 0 {
			return parseError(ErrInvalidFormat, "molden", p.filename, "primitive before any shell in [GTO]: "+line)
		}
		prim := strings.Fields(strings.ReplaceAll(line, "D", "e"))
		if len(prim) < 2 {
			return parseError(ErrInvalidFormat, "molden", p.filename, "truncated primitive in [GTO]: "+line)
		}
		expo, err1 := strconv.ParseFloat(prim[0], 64)
		coeff, err2 := strconv.ParseFloat(prim[1], 64)
		if err1 != nil || err2 != nil {
			return parseError(ErrInvalidFormat, "molden", p.filename, "bad primitive in [GTO]: "+line)
		}
		last := &p.qc.AOSpec[len(p.qc.AOSpec)-1]
		last.Coeffs = append(last.Coeffs, [2]float64{expo, coeff})
	}
	return nil
}

// moLine reads the [MO] section: key=value metadata lines followed by
// "index value" coefficient lines, repeated per orbital.
func (p *moldenParser) moLine(line string, fields []string) error {
	qc := p.qc
	switch {
	case strings.Contains(line, "="):
		if p.bNew {
			//a simple counter stands in for the symmetry label until
			//(and unless) a Sym= line supplies one
			qc.MOSpec = append(qc.MOSpec, MolecularOrbital{
				Coeffs: make([]float64, p.basisCount),
				Sym:    fmt.Sprintf("%d.1", len(qc.MOSpec)+1),
			})
			p.bNew = false
		}
		mo := &qc.MOSpec[len(qc.MOSpec)-1]
		info := strings.SplitN(strings.ReplaceAll(line, " ", ""), "=", 2)
		switch info[0] {
		case "Sym":
			mo.Sym = normalizeSym(info[1])
		case "Ene":
			v, err := strconv.ParseFloat(info[1], 64)
			if err != nil {
				return parseError(ErrInvalidFormat, "molden", p.filename, "bad orbital energy in [MO]: "+line)
			}
			mo.Energy = v
		case "Occup":
			v, err := strconv.ParseFloat(info[1], 64)
			if err != nil {
				return parseError(ErrInvalidFormat, "molden", p.filename, "bad occupation in [MO]: "+line)
			}
			mo.OccNum = v
		}
		//other keys, like Spin, are not read
	case strings.ContainsAny(line, "[]"):
		//the start of a section that is not read
		p.section = moldenNone
	case len(fields) >= 2:
		p.bNew = true
		index, err := strconv.Atoi(fields[0])
		if err != nil || len(qc.MOSpec) == 0 {
			return parseError(ErrInvalidFormat, "molden", p.filename, "bad coefficient line in [MO]: "+line)
		}
		index--
		mo := &qc.MOSpec[len(qc.MOSpec)-1]
		if index < 0 || index >= len(mo.Coeffs) {
			return parseError(ErrInvalidFormat, "molden", p.filename,
				fmt.Sprintf("MO coefficient index %d out of range", index+1))
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			displayWarning("error in coefficient %d of MO %s, setting this coefficient to zero", index+1, mo.Sym)
			v = 0
		}
		mo.Coeffs[index] = v
	}
	return nil
}

// normalizeSym brings a symmetry label to the "<ordinal>.<label>" form the
// record uses throughout: a bare integer N becomes "N.1" and a label like
// "3A1" becomes "3.A1". Labels already holding a dot pass unchanged.
func normalizeSym(sym string) string {
	if strings.Contains(sym, ".") {
		return sym
	}
	digits := digitRun.FindString(sym)
	if digits == "" {
		return sym
	}
	if digits == sym {
		return sym + ".1"
	}
	return strings.ReplaceAll(sym, digits, digits+".")
}
