/*
 * qcinfo.go, part of orbkit.
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
	"gonum.org/v1/gonum/mat"
)

// AtomEntry describes one atom of the geometry as the source program
// printed it.
type AtomEntry struct {
	Label  string //element symbol or atomic number, format dependent
	Serial int    //1-based position in the geometry section
	Extra  string //nuclear charge or atomic weight, format dependent
}

// AOShell is one contracted shell of the atomic-orbital basis.
type AOShell struct {
	Atom   int    //0-based index into the geometry
	Type   string //shell letter: s, p, d, f... or the combined sp
	PNum   int    //number of primitives
	Coeffs [][2]float64 //{exponent, contraction coefficient} per primitive
}

// Degeneracy returns the number of basis functions the shell contributes.
func (ao *AOShell) Degeneracy() int {
	deg, _ := shellDeg(ao.Type)
	return deg
}

// MolecularOrbital holds one orbital: its coefficients over the AO basis,
// energy, occupation and symmetry label.
type MolecularOrbital struct {
	Coeffs []float64
	Energy float64
	OccNum float64
	Sym    string
}

// TDMStates holds per-electronic-state dipole data from a CIS calculation.
// Index 0 is the ground state.
type TDMStates struct {
	Multiplicity []float64
	Energy       []float64
	Dipole       *mat.Dense //(nstates+1)x3, one dipole vector per row
}

// TDMTransitions holds the pairwise transition dipoles of a CIS
// calculation: Dipole[i] row j is the transition dipole between states
// i and j.
type TDMTransitions struct {
	Dipole []*mat.Dense //nstates matrices of (nstates+1)x3
}

// QCInfo is the unified record all readers produce. A fresh one is built
// per read call and not mutated afterwards, except by the occupied-orbital
// filter the caller can opt out of.
type QCInfo struct {
	Etot    float64      //total energy in hartree; zero if the file has none
	GeoInfo []AtomEntry  //one entry per atom, in file order
	GeoSpec [][]float64  //cartesian coordinates per atom, always in bohr
	AOSpec  []AOShell    //contracted shells, in file order
	MOSpec  []MolecularOrbital
	TDMStates      *TDMStates      //nil unless a transition-dipole section was read
	TDMTransitions *TDMTransitions //ditto
}

// BasisCount returns the total number of basis functions, the sum of the
// degeneracies of all shells. Every MO coefficient vector in a returned
// record has this length.
func (qc *QCInfo) BasisCount() int {
	total := 0
	for i := range qc.AOSpec {
		total += qc.AOSpec[i].Degeneracy()
	}
	return total
}

// CoordMatrix returns a copy of the geometry as a natoms x 3 matrix, in
// bohr.
func (qc *QCInfo) CoordMatrix() *mat.Dense {
	n := len(qc.GeoSpec)
	if n == 0 {
		return nil
	}
	coords := mat.NewDense(n, 3, nil)
	for i, xyz := range qc.GeoSpec {
		coords.SetRow(i, xyz)
	}
	return coords
}

// MOMatrix returns a copy of the MO coefficients as a len(MOSpec) x
// BasisCount matrix, one orbital per row.
func (qc *QCInfo) MOMatrix() *mat.Dense {
	n := len(qc.MOSpec)
	if n == 0 {
		return nil
	}
	momat := mat.NewDense(n, qc.BasisCount(), nil)
	for i := range qc.MOSpec {
		momat.SetRow(i, qc.MOSpec[i].Coeffs)
	}
	return momat
}

// Masses returns the per-atom masses for geometry entries whose label is an
// element symbol in the internal table, and zero for the rest.
func (qc *QCInfo) Masses() []float64 {
	masses := make([]float64, len(qc.GeoInfo))
	for i := range qc.GeoInfo {
		masses[i] = symbolMass[qc.GeoInfo[i].Label] //zero when unknown
	}
	return masses
}

// filterOccupied drops every orbital with a vanishing occupation,
// preserving the order of the survivors.
func (qc *QCInfo) filterOccupied() {
	kept := make([]MolecularOrbital, 0, len(qc.MOSpec))
	for _, mo := range qc.MOSpec {
		if mo.OccNum > occEpsilon {
			kept = append(kept, mo)
		}
	}
	qc.MOSpec = kept
}
