/*
 * gamess.go, part of orbkit.
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

	"gonum.org/v1/gonum/mat"
)

type gamessSection int

const (
	gamessNone gamessSection = iota
	gamessGeo
	gamessAO
	gamessMO
	gamessTDM
)

type gamessTDMFlag int

const (
	tdmNoFlag gamessTDMFlag = iota
	tdmStateFlag
	tdmTransFlag
)

// gamessShell is one shell as printed in the basis section, before the
// per-element deduplication and the re-expansion over the geometry.
type gamessShell struct {
	atomType  string
	shellType string
	pnum      int
	coeffs    [][2]float64
}

// gamessMOLabelWidth is how many columns of an eigenvector row belong to
// the AO label; the orbital values start right after, at fixed offsets.
const gamessMOLabelWidth = 16

type gamessParser struct {
	filename string
	qc       *QCInfo
	section  gamessSection
	angs2au  float64

	//every section carries its own count of banner lines to skip
	geoSkip, aoSkip, moSkip int

	atomCount int
	occ       []int //occupied-orbital counts, alpha then beta

	shellGroups [][]gamessShell //one group per atom of the basis printout
	curAtomType string
	curTypes    string //expanded letters of the shell being read, e.g. "sp"
	newAO       bool

	initLen                   int //orbitals in the current column block
	lenMO                     int
	initMO, moNew, ene, blast bool

	nStates        int
	gsMulti        int
	tdmFlag        gamessTDMFlag
	tdmState       int
	tdmFrom, tdmTo int
	stateMulti     []float64
	stateEnergy    []float64
	stateDipole    *mat.Dense
	transDipole    []*mat.Dense
}

// ReadGamess reads a GAMESS-US output file into a QCInfo. If the output
// holds a CIS transition-dipole section, the per-state and transition
// dipoles are returned as well. See Read for the options.
func ReadGamess(filename string, opts *Options) (*QCInfo, error) {
	opts = defaulted(opts)
	lines, err := fileLines(filename)
	if err != nil {
		return nil, err
	}
	p := &gamessParser{filename: filename, qc: new(QCInfo), angs2au: 1.0}
	for _, line := range lines {
		fields := strings.Fields(line)
		switch {
		case strings.Contains(line, " ATOM      ATOMIC                      COORDINATES"):
			p.section = gamessGeo
			p.geoSkip = 1
			p.atomCount = 1
			if strings.Contains(line, "(BOHR)") {
				p.angs2au = 1.0
			} else {
				p.angs2au = Angs2Bohr
			}
		case strings.Contains(line, "ATOMIC BASIS SET"):
			p.section = gamessAO
			p.aoSkip = 6
		case strings.Contains(line, "          EIGENVECTORS"):
			p.section = gamessMO
			p.moSkip = 1
			p.initMO = false
			p.moNew = false
			p.ene = false
			p.lenMO = 0
		case strings.Contains(line, "CIS TRANSITION DIPOLE MOMENTS AND"):
			if p.nStates == 0 {
				return nil, parseError(ErrOrdering, "gamess", filename,
					"transition-dipole section before the NUMBER OF STATES REQUESTED line")
			}
			p.section = gamessTDM
			p.tdmFlag = tdmNoFlag
			p.initTDM()
		case strings.Contains(line, "NUMBER OF STATES REQUESTED"):
			n, err := atoiAfter(line, "=")
			if err != nil {
				return nil, parseError(ErrInvalidFormat, "gamess", filename, "bad state count: "+line)
			}
			p.nStates = n
		case strings.Contains(line, "SPIN MULTIPLICITY") && len(fields) >= 4:
			//odd way to get the ground-state multiplicity
			if m, err := strconv.Atoi(fields[3]); err == nil {
				p.gsMulti = m
			}
		case strings.Contains(line, " NUMBER OF OCCUPIED ORBITALS (ALPHA)          ="),
			strings.Contains(line, " NUMBER OF OCCUPIED ORBITALS (BETA )          ="),
			strings.Contains(line, " NUMBER OF OCCUPIED ORBITALS (ALPHA) KEPT IS    ="),
			strings.Contains(line, " NUMBER OF OCCUPIED ORBITALS (BETA ) KEPT IS    ="):
			n, err := strconv.Atoi(fields[len(fields)-1])
			if err != nil {
				return nil, parseError(ErrInvalidFormat, "gamess", filename, "bad occupied-orbital count: "+line)
			}
			p.occ = append(p.occ, n)
		case strings.Contains(line, "          ECP POTENTIALS"):
			//with effective core potentials the counts read so far are wrong
			p.occ = nil
		case strings.Contains(line, "FINAL"):
			//the (last) total energy
			if len(fields) >= 5 {
				if v, err := strconv.ParseFloat(fields[4], 64); err == nil {
					p.qc.Etot = v
				}
			}
		default:
			var err error
			switch p.section {
			case gamessGeo:
				err = p.geoLine(line, fields)
			case gamessAO:
				err = p.aoLine(line, fields)
			case gamessMO:
				err = p.moLine(line, fields)
			case gamessTDM:
				err = p.tdmLine(line, fields)
			}
			if err != nil {
				return nil, err
			}
		}
	}
	if err := p.expandBasis(); err != nil {
		return nil, err
	}
	p.assignOccupations()
	if p.stateDipole != nil {
		p.stateEnergy[0] = p.qc.Etot
		p.stateMulti[0] = float64(p.gsMulti)
		p.qc.TDMStates = &TDMStates{
			Multiplicity: p.stateMulti,
			Energy:       p.stateEnergy,
			Dipole:       p.stateDipole,
		}
		p.qc.TDMTransitions = &TDMTransitions{Dipole: p.transDipole}
	}
	if !opts.AllMO {
		p.qc.filterOccupied()
	}
	return p.qc, nil
}

// geoLine reads one atom of the coordinates section: element label,
// nuclear charge and cartesian coordinates. A blank line closes it.
func (p *gamessParser) geoLine(line string, fields []string) error {
	if p.geoSkip > 0 {
		p.geoSkip--
		return nil
	}
	if len(fields) == 0 {
		p.section = gamessNone
		return nil
	}
	if len(fields) < 5 {
		return parseError(ErrInvalidFormat, "gamess", p.filename, "truncated geometry line: "+line)
	}
	p.qc.GeoInfo = append(p.qc.GeoInfo, AtomEntry{Label: fields[0], Serial: p.atomCount, Extra: fields[1]})
	xyz := make([]float64, 3)
	for i, tok := range fields[2:5] {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return parseError(ErrInvalidFormat, "gamess", p.filename, "bad coordinate: "+line)
		}
		xyz[i] = v * p.angs2au
	}
	p.qc.GeoSpec = append(p.qc.GeoSpec, xyz)
	p.atomCount++
	return nil
}

// aoLine reads the basis printout. Shells are grouped under element-name
// lines; an L shell expands into sibling s and p shells sharing exponents
// but with their own contraction columns.
func (p *gamessParser) aoLine(line string, fields []string) error {
	if p.aoSkip > 0 {
		p.aoSkip--
		return nil
	}
	if strings.Contains(line, " TOTAL NUMBER OF BASIS SET SHELLS") {
		p.section = gamessNone
		return nil
	}
	switch {
	case len(fields) == 1:
		//an element name opens the shells of the next atom
		p.shellGroups = append(p.shellGroups, nil)
		p.curAtomType = fields[0]
		p.newAO = false
	case len(fields) == 0:
		if !p.newAO {
			p.newAO = true
		}
	default:
		if len(p.shellGroups) == 0 {
			return parseError(ErrInvalidFormat, "gamess", p.filename, "basis data before any atom name: "+line)
		}
		if len(fields) < 4 {
			return parseError(ErrInvalidFormat, "gamess", p.filename, "truncated basis line: "+line)
		}
		vals, err := toFloats(fields[3:])
		if err != nil {
			return parseError(ErrInvalidFormat, "gamess", p.filename, "bad basis line: "+line)
		}
		gi := len(p.shellGroups) - 1
		if p.newAO {
			p.curTypes = strings.ReplaceAll(strings.ToLower(fields[1]), "l", "sp")
			if len(vals) < len(p.curTypes)+1 {
				return parseError(ErrInvalidFormat, "gamess", p.filename, "missing contraction columns: "+line)
			}
			for i := 0; i < len(p.curTypes); i++ {
				p.shellGroups[gi] = append(p.shellGroups[gi], gamessShell{
					atomType:  p.curAtomType,
					shellType: string(p.curTypes[i]),
					pnum:      1,
					coeffs:    [][2]float64{{vals[0], vals[1+i]}},
				})
			}
			p.newAO = false
		} else {
			n := len(p.curTypes)
			if len(vals) < n+1 || len(p.shellGroups[gi]) < n {
				return parseError(ErrInvalidFormat, "gamess", p.filename, "stray basis line: "+line)
			}
			for i := 0; i < n; i++ {
				sh := &p.shellGroups[gi][len(p.shellGroups[gi])-n+i]
				sh.coeffs = append(sh.coeffs, [2]float64{vals[0], vals[1+i]})
				sh.pnum++
			}
		}
	}
	return nil
}

// moLine reads the eigenvector section. Orbitals arrive in column blocks:
// a blank line, the orbital numbers, their energies, their symmetry
// labels, then one coefficient row per basis function. Two consecutive
// blank lines, or the end-of-calculation banner, close the section.
func (p *gamessParser) moLine(line string, fields []string) error {
	if p.moSkip > 0 {
		p.moSkip--
		return nil
	}
	if strings.Contains(line, "...... END OF RHF CALCULATION ......") {
		p.section = gamessNone
		return nil
	}
	qc := p.qc
	switch {
	case len(fields) == 0:
		if p.blast {
			p.section = gamessNone
			p.blast = false
			return nil
		}
		p.blast = true
		p.initMO = true
		p.moNew = false
		p.ene = false
	case p.initMO && !p.moNew:
		//the orbital-number row opens a column block
		p.initLen = len(fields)
		for range fields {
			qc.MOSpec = append(qc.MOSpec, MolecularOrbital{})
		}
		p.initMO = false
		p.moNew = true
		p.blast = false
	case len(fields) == p.initLen && !p.ene:
		for i := 0; i < p.initLen; i++ {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return parseError(ErrInvalidFormat, "gamess", p.filename, "bad orbital energy: "+line)
			}
			qc.MOSpec[len(qc.MOSpec)-p.initLen+i].Energy = v
		}
		p.ene = true
	case len(fields) == p.initLen && p.ene:
		for i := 0; i < p.initLen; i++ {
			qc.MOSpec[len(qc.MOSpec)-p.initLen+i].Sym = fmt.Sprintf("%d.%s", p.lenMO, fields[i])
			p.lenMO++
		}
	case p.moNew:
		if len(line) <= gamessMOLabelWidth {
			return parseError(ErrInvalidFormat, "gamess", p.filename, "truncated coefficient row: "+line)
		}
		vals := strings.Fields(line[gamessMOLabelWidth:])
		if len(vals) < p.initLen {
			return parseError(ErrInvalidFormat, "gamess", p.filename, "missing coefficients: "+line)
		}
		for i := 0; i < p.initLen; i++ {
			mo := &qc.MOSpec[len(qc.MOSpec)-p.initLen+i]
			v, err := strconv.ParseFloat(vals[i], 64)
			if err != nil {
				displayWarning("error in a coefficient of MO %s, setting this coefficient to zero", mo.Sym)
				v = 0
			}
			mo.Coeffs = append(mo.Coeffs, v)
		}
	}
	return nil
}

func (p *gamessParser) initTDM() {
	n := p.nStates
	p.stateMulti = make([]float64, n+1)
	p.stateEnergy = make([]float64, n+1)
	p.stateDipole = mat.NewDense(n+1, 3, nil)
	p.transDipole = make([]*mat.Dense, n)
	for i := range p.transDipole {
		p.transDipole[i] = mat.NewDense(n+1, 3, nil)
	}
}

// tdmLine reads the CIS transition-dipole section. The output prints
// transitions involving the ground state differently from transitions
// between excited states, hence the second vocabulary of markers.
func (p *gamessParser) tdmLine(line string, fields []string) error {
	switch {
	case strings.Contains(line, "GROUND STATE (SCF) DIPOLE="):
		//the ground-state dipole is in debye; everything else in this
		//section is already in atomic units
		if len(fields) < 7 {
			return parseError(ErrInvalidFormat, "gamess", p.filename, "truncated ground-state dipole: "+line)
		}
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseFloat(fields[4+i], 64)
			if err != nil {
				return parseError(ErrInvalidFormat, "gamess", p.filename, "bad ground-state dipole: "+line)
			}
			p.stateDipole.Set(0, i, v*Debye2AU)
		}
		return nil
	case strings.Contains(line, "EXPECTATION VALUE DIPOLE MOMENT FOR EXCITED STATE"):
		n, err := atoiAfter(line, "EXCITED STATE")
		if err != nil || n < 1 || n > p.nStates {
			return parseError(ErrInvalidFormat, "gamess", p.filename, "bad excited-state number: "+line)
		}
		p.tdmState = n
		p.tdmFlag = tdmStateFlag
		return nil
	case strings.Contains(line, "TRANSITION FROM THE GROUND STATE TO EXCITED STATE"):
		n, err := atoiAfter(line, "EXCITED STATE")
		if err != nil || n < 1 || n > p.nStates {
			return parseError(ErrInvalidFormat, "gamess", p.filename, "bad excited-state number: "+line)
		}
		p.tdmFrom, p.tdmTo = 0, n
		p.tdmFlag = tdmTransFlag
		return nil
	case strings.Contains(line, "TRANSITION BETWEEN EXCITED STATES"):
		rest := strings.SplitN(line, "STATES", 2)[1]
		parts := strings.SplitN(rest, "AND", 2)
		if len(parts) < 2 {
			return parseError(ErrInvalidFormat, "gamess", p.filename, "bad transition line: "+line)
		}
		from, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		to, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil || from < 1 || from >= p.nStates || to < 0 || to > p.nStates {
			return parseError(ErrInvalidFormat, "gamess", p.filename, "bad transition states: "+line)
		}
		p.tdmFrom, p.tdmTo = from, to
		p.tdmFlag = tdmTransFlag
		return nil
	case strings.Contains(line, "CIS NATURAL ORBITAL OCCUPATION NUMBERS FOR EXCITED STATE"):
		p.section = gamessNone
		p.tdmFlag = tdmNoFlag
		return nil
	}
	switch p.tdmFlag {
	case tdmStateFlag:
		switch {
		case strings.Contains(line, "STATE MULTIPLICITY"):
			m, err := atoiAfter(line, "=")
			if err != nil {
				return parseError(ErrInvalidFormat, "gamess", p.filename, "bad state multiplicity: "+line)
			}
			p.stateMulti[p.tdmState] = float64(m)
		case strings.Contains(line, "STATE ENERGY"):
			parts := strings.SplitN(line, "=", 2)
			if len(parts) < 2 {
				return parseError(ErrInvalidFormat, "gamess", p.filename, "bad state energy: "+line)
			}
			ef := strings.Fields(parts[1])
			if len(ef) == 0 {
				return parseError(ErrInvalidFormat, "gamess", p.filename, "bad state energy: "+line)
			}
			v, err := strconv.ParseFloat(ef[0], 64)
			if err != nil {
				return parseError(ErrInvalidFormat, "gamess", p.filename, "bad state energy: "+line)
			}
			p.stateEnergy[p.tdmState] = v
		case strings.Contains(line, "E*BOHR"):
			if len(fields) < 6 {
				return parseError(ErrInvalidFormat, "gamess", p.filename, "truncated state dipole: "+line)
			}
			for i := 0; i < 3; i++ {
				v, err := strconv.ParseFloat(fields[3+i], 64)
				if err != nil {
					return parseError(ErrInvalidFormat, "gamess", p.filename, "bad state dipole: "+line)
				}
				p.stateDipole.Set(p.tdmState, i, v)
			}
		}
	case tdmTransFlag:
		if strings.Contains(line, "E*BOHR") {
			if len(fields) < 6 {
				return parseError(ErrInvalidFormat, "gamess", p.filename, "truncated transition dipole: "+line)
			}
			for i := 0; i < 3; i++ {
				v, err := strconv.ParseFloat(fields[3+i], 64)
				if err != nil {
					return parseError(ErrInvalidFormat, "gamess", p.filename, "bad transition dipole: "+line)
				}
				p.transDipole[p.tdmFrom].Set(p.tdmTo, i, v)
			}
		}
	}
	return nil
}

// expandBasis checks that all atoms of one element advertise the same
// contracted shells, then expands the canonical per-element shells back
// out over the geometry, in geometry order.
func (p *gamessParser) expandBasis() error {
	if len(p.shellGroups) == 0 {
		return nil //geometry-only outputs are fine
	}
	basisSet := make(map[string][]gamessShell)
	for _, group := range p.shellGroups {
		if len(group) == 0 {
			continue
		}
		atomType := group[0].atomType
		canon, ok := basisSet[atomType]
		if !ok {
			basisSet[atomType] = group
			continue
		}
		if !sameShells(canon, group) {
			return parseError(ErrInconsistentBasis, "gamess", p.filename,
				"atom type "+atomType+" appears with two different basis sets")
		}
	}
	for _, atom := range p.qc.GeoInfo {
		shells, ok := basisSet[atom.Label]
		if !ok {
			return parseError(ErrInvalidFormat, "gamess", p.filename,
				"no basis set found for atom type "+atom.Label)
		}
		for _, sh := range shells {
			coeffs := make([][2]float64, len(sh.coeffs))
			copy(coeffs, sh.coeffs)
			p.qc.AOSpec = append(p.qc.AOSpec, AOShell{
				Atom:   atom.Serial - 1,
				Type:   sh.shellType,
				PNum:   sh.pnum,
				Coeffs: coeffs,
			})
		}
	}
	return nil
}

func sameShells(a, b []gamessShell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].shellType != b[i].shellType || len(a[i].coeffs) != len(b[i].coeffs) {
			return false
		}
		for j := range a[i].coeffs {
			if a[i].coeffs[j] != b[i].coeffs[j] {
				return false
			}
		}
	}
	return true
}

// assignOccupations walks the orbitals in file order depleting the alpha
// and beta occupied counters: 2 electrons while both last, then 1, then 0.
func (p *gamessParser) assignOccupations() {
	var alpha, beta int
	if len(p.occ) > 0 {
		alpha = p.occ[0]
	}
	if len(p.occ) > 1 {
		beta = p.occ[1]
	}
	for i := range p.qc.MOSpec {
		switch {
		case alpha > 0 && beta > 0:
			p.qc.MOSpec[i].OccNum = 2
			alpha--
			beta--
		case alpha > 0:
			p.qc.MOSpec[i].OccNum = 1
			alpha--
		case beta > 0:
			p.qc.MOSpec[i].OccNum = 1
			beta--
		}
	}
}

// atoiAfter parses the first integer token following the last occurrence
// of sep in line.
func atoiAfter(line, sep string) (int, error) {
	idx := strings.LastIndex(line, sep)
	if idx < 0 {
		return 0, fmt.Errorf("no %q in %q", sep, line)
	}
	f := strings.Fields(line[idx+len(sep):])
	if len(f) == 0 {
		return 0, fmt.Errorf("nothing after %q in %q", sep, line)
	}
	return strconv.Atoi(f[0])
}

func toFloats(fields []string) ([]float64, error) {
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}
