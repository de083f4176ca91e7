/*
 * fchk.go, part of orbkit.
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
	"strconv"
	"strings"
)

type fchkSection int

const (
	fchkNone fchkSection = iota
	fchkGeoInfo
	fchkGeoPos
	fchkAOInfo
	fchkAOCoeffs
	fchkMOEnergy
	fchkMOCoeffs
)

type fchkAOField int

const (
	fchkShellType fchkAOField = iota
	fchkShellPNum
	fchkShellAtom
)

type fchkParser struct {
	filename   string
	qc         *QCInfo
	section    fchkSection
	elNum      [2]int //alpha and beta electron counts
	basisCount int

	count int //tokens consumed into the active record

	geoField int //0 fills the atom label, 2 the extra field
	atNum    int
	xyz      []float64

	aoField  fchkAOField
	aoNum    int //tokens left in the declared-length record
	coeffCol int //0 exponents, 1 contraction coefficients
	shell    int //shell the coefficient tokens are filling

	moNum  int //declared length of the active orbital record
	moBase int //first orbital of the current spin block
	moIdx  int //orbital whose energy is being filled
	moFill int //orbital whose coefficients are being filled; runs across spin blocks
}

// ReadGaussianFchk reads a Gaussian formatted checkpoint file into a
// QCInfo. A header line declares each array's length; that many tokens are
// then consumed, across as many physical lines as it takes, before
// keyword scanning resumes. See Read for the options.
func ReadGaussianFchk(filename string, opts *Options) (*QCInfo, error) {
	opts = defaulted(opts)
	lines, err := fileLines(filename)
	if err != nil {
		return nil, err
	}
	p := &fchkParser{filename: filename, qc: new(QCInfo)}
	for _, line := range lines {
		fields := strings.Fields(line)
		switch {
		case strings.Contains(line, "Number of alpha electrons"):
			if p.elNum[0], err = strconv.Atoi(fields[len(fields)-1]); err != nil {
				return nil, parseError(ErrInvalidFormat, "gaussian.fchk", filename, "bad electron count: "+line)
			}
		case strings.Contains(line, "Number of beta electrons"):
			if p.elNum[1], err = strconv.Atoi(fields[len(fields)-1]); err != nil {
				return nil, parseError(ErrInvalidFormat, "gaussian.fchk", filename, "bad electron count: "+line)
			}
		case strings.Contains(line, "Atomic numbers"):
			p.section = fchkGeoInfo
			p.geoField = 0
			p.count = 0
			if p.atNum, err = declaredLength(fields); err != nil {
				return nil, parseError(ErrInvalidFormat, "gaussian.fchk", filename, "bad record length: "+line)
			}
			p.lazyGeo()
		case strings.Contains(line, "Integer atomic weights"):
			p.section = fchkGeoInfo
			p.geoField = 2
			p.count = 0
			if p.atNum, err = declaredLength(fields); err != nil {
				return nil, parseError(ErrInvalidFormat, "gaussian.fchk", filename, "bad record length: "+line)
			}
			p.lazyGeo()
		case strings.Contains(line, "Total Energy"):
			if p.qc.Etot, err = strconv.ParseFloat(fields[len(fields)-1], 64); err != nil {
				return nil, parseError(ErrInvalidFormat, "gaussian.fchk", filename, "bad total energy: "+line)
			}
		case strings.Contains(line, "Current cartesian coordinates"):
			p.section = fchkGeoPos
			p.count = 0
			p.xyz = nil
			n, err := declaredLength(fields)
			if err != nil {
				return nil, parseError(ErrInvalidFormat, "gaussian.fchk", filename, "bad record length: "+line)
			}
			p.atNum = n / 3
			p.qc.GeoSpec = nil
		case strings.Contains(line, "Shell types"):
			if err := p.startAOInfo(fchkShellType, fields, line); err != nil {
				return nil, err
			}
		case strings.Contains(line, "Number of primitives per shell"):
			if err := p.startAOInfo(fchkShellPNum, fields, line); err != nil {
				return nil, err
			}
		case strings.Contains(line, "Shell to atom map"):
			if err := p.startAOInfo(fchkShellAtom, fields, line); err != nil {
				return nil, err
			}
		case strings.Contains(line, "Primitive exponents"):
			if err := p.startAOCoeffs(0, fields, line); err != nil {
				return nil, err
			}
		case strings.Contains(line, "Contraction coefficients"):
			if err := p.startAOCoeffs(1, fields, line); err != nil {
				return nil, err
			}
		case strings.Contains(line, "Orbital Energies"):
			if err := p.startMOEnergies(fields, line); err != nil {
				return nil, err
			}
		case strings.Contains(line, "MO coefficients"):
			//moFill carries over, so a beta record lands after the
			//alpha orbitals it follows
			p.section = fchkMOCoeffs
			p.count = 0
			if p.moNum, err = declaredLength(fields); err != nil {
				return nil, parseError(ErrInvalidFormat, "gaussian.fchk", filename, "bad record length: "+line)
			}
			if p.basisCount == 0 {
				return nil, parseError(ErrOrdering, "gaussian.fchk", filename,
					"MO coefficients before the shell types")
			}
		default:
			var err error
			switch p.section {
			case fchkGeoInfo:
				p.geoTokens(fields)
			case fchkGeoPos:
				err = p.geoPosTokens(fields, line)
			case fchkAOInfo:
				err = p.aoInfoTokens(fields, line)
			case fchkAOCoeffs:
				err = p.aoCoeffTokens(fields, line)
			case fchkMOEnergy:
				err = p.moEnergyTokens(fields, line)
			case fchkMOCoeffs:
				err = p.moCoeffTokens(fields)
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

// declaredLength returns the logical array length a record header states
// as its last token.
func declaredLength(fields []string) (int, error) {
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty header")
	}
	return strconv.Atoi(fields[len(fields)-1])
}

// lazyGeo allocates the geometry entries the first time any keyword
// contributing to them is seen; later keywords fill other fields of the
// same entries.
func (p *fchkParser) lazyGeo() {
	if len(p.qc.GeoInfo) != 0 {
		return
	}
	for i := 0; i < p.atNum; i++ {
		p.qc.GeoInfo = append(p.qc.GeoInfo, AtomEntry{Serial: i + 1})
	}
}

func (p *fchkParser) startAOInfo(field fchkAOField, fields []string, line string) error {
	p.section = fchkAOInfo
	p.aoField = field
	p.count = 0
	n, err := declaredLength(fields)
	if err != nil {
		return parseError(ErrInvalidFormat, "gaussian.fchk", p.filename, "bad record length: "+line)
	}
	p.aoNum = n
	if len(p.qc.AOSpec) == 0 {
		p.qc.AOSpec = make([]AOShell, n)
	}
	return nil
}

func (p *fchkParser) startAOCoeffs(col int, fields []string, line string) error {
	p.section = fchkAOCoeffs
	p.coeffCol = col
	p.count = 0
	p.shell = 0
	n, err := declaredLength(fields)
	if err != nil {
		return parseError(ErrInvalidFormat, "gaussian.fchk", p.filename, "bad record length: "+line)
	}
	p.aoNum = n
	if len(p.qc.AOSpec) == 0 {
		return parseError(ErrOrdering, "gaussian.fchk", p.filename,
			"shell types need to be defined before the AO exponents")
	}
	if p.qc.AOSpec[0].Coeffs == nil {
		for i := range p.qc.AOSpec {
			if p.qc.AOSpec[i].PNum == 0 {
				return parseError(ErrOrdering, "gaussian.fchk", p.filename,
					"primitives per shell need to be defined before the AO exponents")
			}
			p.qc.AOSpec[i].Coeffs = make([][2]float64, p.qc.AOSpec[i].PNum)
		}
	}
	return nil
}

// startMOEnergies appends one orbital per energy entry, deciding the
// occupations from the electron counts: 2 for a closed shell, 1 per spin
// for an open one, 0 past the occupied range.
func (p *fchkParser) startMOEnergies(fields []string, line string) error {
	p.section = fchkMOEnergy
	n, err := declaredLength(fields)
	if err != nil {
		return parseError(ErrInvalidFormat, "gaussian.fchk", p.filename, "bad record length: "+line)
	}
	p.moNum = n
	p.moBase = len(p.qc.MOSpec)
	p.moIdx = p.moBase
	var nocc int
	var occ float64
	if p.elNum[0] == p.elNum[1] {
		nocc = p.elNum[0]
		occ = 2
	} else {
		occ = 1
		if strings.Contains(line, "Alpha") {
			nocc = p.elNum[0]
		} else {
			nocc = p.elNum[1]
		}
	}
	for i := 0; i < n; i++ {
		mo := MolecularOrbital{
			Coeffs: make([]float64, p.basisCount),
			Sym:    fmt.Sprintf("%d.1", len(p.qc.MOSpec)+1),
		}
		if i < nocc {
			mo.OccNum = occ
		}
		p.qc.MOSpec = append(p.qc.MOSpec, mo)
	}
	return nil
}

func (p *fchkParser) geoTokens(fields []string) {
	for _, tok := range fields {
		if p.count >= len(p.qc.GeoInfo) {
			break
		}
		if p.geoField == 0 {
			p.qc.GeoInfo[p.count].Label = tok
		} else {
			p.qc.GeoInfo[p.count].Extra = tok
		}
		p.count++
		if p.count == p.atNum {
			p.section = fchkNone
		}
	}
}

func (p *fchkParser) geoPosTokens(fields []string, line string) error {
	for _, tok := range fields {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return parseError(ErrInvalidFormat, "gaussian.fchk", p.filename, "bad coordinate: "+line)
		}
		//checkpoint coordinates are already in bohr
		p.xyz = append(p.xyz, v)
		if len(p.xyz) == 3 {
			p.qc.GeoSpec = append(p.qc.GeoSpec, p.xyz)
			p.xyz = nil
			p.count++
			if p.count == p.atNum {
				p.section = fchkNone
			}
		}
	}
	return nil
}

func (p *fchkParser) aoInfoTokens(fields []string, line string) error {
	for _, tok := range fields {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return parseError(ErrInvalidFormat, "gaussian.fchk", p.filename, "bad shell entry: "+line)
		}
		if p.count >= len(p.qc.AOSpec) {
			return parseError(ErrInvalidFormat, "gaussian.fchk", p.filename, "more shell entries than declared")
		}
		switch p.aoField {
		case fchkShellType:
			code := v
			if code < 0 {
				code = -code
			}
			if code >= len(orbit) {
				return parseError(ErrUnsupportedConstruct, "gaussian.fchk", p.filename,
					fmt.Sprintf("shell code %d is not supported", v))
			}
			shellType := orbit[code]
			deg, _ := shellDeg(shellType)
			p.basisCount += deg
			p.qc.AOSpec[p.count].Type = shellType
		case fchkShellPNum:
			p.qc.AOSpec[p.count].PNum = v
		case fchkShellAtom:
			p.qc.AOSpec[p.count].Atom = v - 1
		}
		p.count++
		if p.count == p.aoNum {
			p.section = fchkNone
		}
	}
	return nil
}

func (p *fchkParser) aoCoeffTokens(fields []string, line string) error {
	for _, tok := range fields {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return parseError(ErrInvalidFormat, "gaussian.fchk", p.filename, "bad primitive value: "+line)
		}
		if p.shell >= len(p.qc.AOSpec) {
			return parseError(ErrInvalidFormat, "gaussian.fchk", p.filename, "more primitive values than declared")
		}
		p.qc.AOSpec[p.shell].Coeffs[p.count][p.coeffCol] = v
		p.count++
		p.aoNum--
		if p.count == p.qc.AOSpec[p.shell].PNum {
			p.shell++
			p.count = 0
		}
	}
	if p.aoNum <= 0 {
		p.section = fchkNone
	}
	return nil
}

func (p *fchkParser) moEnergyTokens(fields []string, line string) error {
	for _, tok := range fields {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return parseError(ErrInvalidFormat, "gaussian.fchk", p.filename, "bad orbital energy: "+line)
		}
		if p.moIdx >= len(p.qc.MOSpec) {
			return parseError(ErrInvalidFormat, "gaussian.fchk", p.filename, "more orbital energies than declared")
		}
		p.qc.MOSpec[p.moIdx].Energy = v
		p.moIdx++
		if p.moIdx-p.moBase == p.moNum {
			p.section = fchkNone
		}
	}
	return nil
}

// moCoeffTokens flattens the conceptually 2-D coefficient matrix back out
// of the 1-D token stream: basisCount tokens complete one orbital row, and
// the declared record length tells when the section is done.
func (p *fchkParser) moCoeffTokens(fields []string) error {
	for _, tok := range fields {
		if p.moFill >= len(p.qc.MOSpec) || p.count >= len(p.qc.MOSpec[p.moFill].Coeffs) {
			return parseError(ErrInvalidFormat, "gaussian.fchk", p.filename, "more MO coefficients than declared")
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			displayWarning("error in coefficient %d of MO %s, setting this coefficient to zero",
				p.count+1, p.qc.MOSpec[p.moFill].Sym)
			v = 0
		}
		p.qc.MOSpec[p.moFill].Coeffs[p.count] = v
		p.count++
		p.moNum--
		if p.count == p.basisCount {
			p.count = 0
			p.moFill++
		}
	}
	if p.moNum <= 0 {
		p.section = fchkNone
	}
	return nil
}
