/*
 * gaussian_test.go, part of orbkit.
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
	"errors"
	"strings"
	"testing"
)

const gaussianGeoBanner = ` ---------------------------------------------------------------------
 Center     Atomic      Atomic             Coordinates (Angstroms)
 Number     Number       Type              X           Y           Z
 ---------------------------------------------------------------------
`

// A water optimization log: one input orientation, two standard
// orientations (the selection tests care about which one wins), a GFINPUT
// basis printout and an IOP(6/7=3) orbital block.
const gaussianLogWater = ` Entering Gaussian System
 #P RHF/STO-3G GFINPUT IOP(6/7=3)

 Standard basis: STO-3G (6D, 10F)
                         Input orientation:
` + gaussianGeoBanner +
	`      1          8           0        9.000000    9.000000    9.000000
      2          1           0        9.000000    9.000000    9.000000
      3          1           0        9.000000    9.000000    9.000000
 ---------------------------------------------------------------------
                         Standard orientation:
` + gaussianGeoBanner +
	`      1          8           0        0.000000    0.000000    1.000000
      2          1           0        0.000000    0.763239    1.000000
      3          1           0        0.000000   -0.763239    1.000000
 ---------------------------------------------------------------------
 AO basis set in the form of general basis input:
      1 0
 S   3 1.00       0.000000000000
      0.3425250914D+01 0.1543289673D+00
      0.6239137298D+00 0.5353281423D+00
      0.1688554040D+00 0.4446345422D+00
 ****
      2 0
 S   1 1.00       0.000000000000
      0.3425250914D+01 0.1000000000D+01
 ****
      3 0
 S   1 1.00       0.000000000000
      0.3425250914D+01 0.1000000000D+01
 ****

                         Standard orientation:
` + gaussianGeoBanner +
	`      1          8           0        0.000000    0.000000    0.119262
      2          1           0        0.000000    0.763239   -0.477047
      3          1           0        0.000000   -0.763239   -0.477047
 ---------------------------------------------------------------------
 SCF Done:  E(RHF) =  -74.9659012  A.U. after   10 cycles
 Orbital symmetries:
       Occupied  (A1) (A1)
       Virtual   (A1)
 The electronic state is 1-A1.
     Molecular Orbital Coefficients:
                           1         2         3
                           O         O         V
     Eigenvalues --     -20.24154  -1.27209   0.57622
   1 1   O  1S          0.99422   0.23377   0.00000
   2 2   H  1S          0.02585   0.84446   0.52346
   3 3   H  1S          0.00000   0.15560  -0.44453
 Normal termination of Gaussian
`

func TestGaussianLogRead(Te *testing.T) {
	path := writeTestFile(Te, "water.log", gaussianLogWater)
	qc, err := ReadGaussianLog(path, &Options{AllMO: true, Orientation: "standard", IGeo: -1, IAO: -1, IMO: -1})
	if err != nil {
		Te.Fatal(err)
	}
	if !closeTo(qc.Etot, -74.9659012) {
		Te.Errorf("wrong total energy: %v", qc.Etot)
	}
	if len(qc.GeoInfo) != 3 {
		Te.Fatalf("expected 3 atoms, got %d", len(qc.GeoInfo))
	}
	//index -1 selects the last standard orientation, not the input one
	if !closeTo(qc.GeoSpec[0][2], 0.119262*Angs2Bohr) {
		Te.Errorf("wrong geometry occurrence selected: %v", qc.GeoSpec[0])
	}
	if qc.GeoInfo[0].Label != "8" || qc.GeoInfo[0].Serial != 1 {
		Te.Errorf("bad first atom: %+v", qc.GeoInfo[0])
	}
	if len(qc.AOSpec) != 3 || qc.BasisCount() != 3 {
		Te.Fatalf("expected 3 s shells, got %d shells, %d functions", len(qc.AOSpec), qc.BasisCount())
	}
	if qc.AOSpec[0].PNum != 3 || !closeTo(qc.AOSpec[0].Coeffs[0][0], 3.425250914) {
		Te.Errorf("bad first shell: %+v", qc.AOSpec[0])
	}
	if len(qc.MOSpec) != 3 {
		Te.Fatalf("expected 3 orbitals, got %d", len(qc.MOSpec))
	}
	//symmetry labels get an ordinal counting earlier occurrences
	if qc.MOSpec[0].Sym != "1.A1" || qc.MOSpec[1].Sym != "2.A1" || qc.MOSpec[2].Sym != "3.A1" {
		Te.Errorf("bad symmetry labels: %q %q %q", qc.MOSpec[0].Sym, qc.MOSpec[1].Sym, qc.MOSpec[2].Sym)
	}
	occs := []float64{2, 2, 0}
	for i, want := range occs {
		if !closeTo(qc.MOSpec[i].OccNum, want) {
			Te.Errorf("MO %d occupation is %v, want %v", i, qc.MOSpec[i].OccNum, want)
		}
	}
	if !closeTo(qc.MOSpec[0].Energy, -20.24154) {
		Te.Errorf("bad orbital energy: %v", qc.MOSpec[0].Energy)
	}
	if !closeTo(qc.MOSpec[1].Coeffs[1], 0.84446) || !closeTo(qc.MOSpec[2].Coeffs[2], -0.44453) {
		Te.Errorf("bad coefficients: %v / %v", qc.MOSpec[1].Coeffs, qc.MOSpec[2].Coeffs)
	}
}

// An unrestricted water cation log: one orbital section made of an Alpha
// block and a Beta block, with separate symmetry listings per spin.
const gaussianLogDoublet = ` Entering Gaussian System
 #P UHF/STO-3G GFINPUT IOP(6/7=3)

 Standard basis: STO-3G (6D, 10F)
                         Standard orientation:
` + gaussianGeoBanner +
	`      1          8           0        0.000000    0.000000    0.119262
      2          1           0        0.000000    0.763239   -0.477047
      3          1           0        0.000000   -0.763239   -0.477047
 ---------------------------------------------------------------------
 AO basis set in the form of general basis input:
      1 0
 S   3 1.00       0.000000000000
      0.3425250914D+01 0.1543289673D+00
      0.6239137298D+00 0.5353281423D+00
      0.1688554040D+00 0.4446345422D+00
 ****
      2 0
 S   1 1.00       0.000000000000
      0.3425250914D+01 0.1000000000D+01
 ****
      3 0
 S   1 1.00       0.000000000000
      0.3425250914D+01 0.1000000000D+01
 ****

 SCF Done:  E(UHF) =  -74.5021340  A.U. after   12 cycles
 Orbital symmetries:
 Alpha Orbitals:
       Occupied  (A1) (A1)
       Virtual   (A1)
 Beta  Orbitals:
       Occupied  (A1)
       Virtual   (A1) (A1)
 The electronic state is 2-A1.
     Alpha Molecular Orbital Coefficients:
                           1         2         3
                           O         O         V
     Eigenvalues --     -20.41023  -1.31044   0.60125
   1 1   O  1S          0.99310   0.24011   0.00000
   2 2   H  1S          0.02711   0.83120   0.52780
   3 3   H  1S          0.00123   0.16011  -0.44981
     Beta Molecular Orbital Coefficients:
                           1         2         3
                           O         V         V
     Eigenvalues --     -20.38811  -1.10233   0.65012
   1 1   O  1S          0.99150   0.25561   0.00000
   2 2   H  1S          0.02944   0.82014   0.53101
   3 3   H  1S          0.00250   0.16750  -0.45520
 Normal termination of Gaussian
`

func TestGaussianLogAlphaBeta(Te *testing.T) {
	path := writeTestFile(Te, "doublet.log", gaussianLogDoublet)
	qc, err := ReadGaussianLog(path, &Options{AllMO: true, Orientation: "standard", IGeo: -1, IAO: -1, IMO: -1})
	if err != nil {
		Te.Fatal(err)
	}
	//the Alpha and Beta blocks form one section with 3+3 orbitals
	if len(qc.MOSpec) != 6 {
		Te.Fatalf("expected 6 orbitals, got %d", len(qc.MOSpec))
	}
	if qc.MOSpec[0].Sym != "1.A1(a)" || qc.MOSpec[3].Sym != "1.A1(b)" {
		Te.Errorf("bad spin labels: %q / %q", qc.MOSpec[0].Sym, qc.MOSpec[3].Sym)
	}
	//per-spin occupations are not doubled
	occs := []float64{1, 1, 0, 1, 0, 0}
	for i, want := range occs {
		if !closeTo(qc.MOSpec[i].OccNum, want) {
			Te.Errorf("MO %d occupation is %v, want %v", i, qc.MOSpec[i].OccNum, want)
		}
	}
	if !closeTo(qc.MOSpec[0].Energy, -20.41023) || !closeTo(qc.MOSpec[3].Energy, -20.38811) {
		Te.Errorf("spin blocks misassigned: energies %v / %v",
			qc.MOSpec[0].Energy, qc.MOSpec[3].Energy)
	}
	if !closeTo(qc.MOSpec[1].Coeffs[1], 0.83120) || !closeTo(qc.MOSpec[4].Coeffs[1], 0.82014) {
		Te.Errorf("bad coefficients: %v / %v", qc.MOSpec[1].Coeffs, qc.MOSpec[4].Coeffs)
	}
	if !closeTo(qc.MOSpec[5].Coeffs[2], -0.45520) {
		Te.Errorf("beta block misplaced: %v", qc.MOSpec[5].Coeffs)
	}
}

func TestGaussianLogGeometrySelection(Te *testing.T) {
	path := writeTestFile(Te, "water.log", gaussianLogWater)
	qc, err := ReadGaussianLog(path, &Options{IGeo: 0, IAO: -1, IMO: -1, Orientation: "standard"})
	if err != nil {
		Te.Fatal(err)
	}
	if !closeTo(qc.GeoSpec[0][2], 1.000000*Angs2Bohr) {
		Te.Errorf("index 0 should pick the first standard orientation: %v", qc.GeoSpec[0])
	}
}

func TestGaussianLogInteractiveSelection(Te *testing.T) {
	path := writeTestFile(Te, "water.log", gaussianLogWater)
	opts := &Options{
		Interactive: true,
		Prompt:      strings.NewReader("0\n"),
		Orientation: "standard",
	}
	qc, err := ReadGaussianLog(path, opts)
	if err != nil {
		Te.Fatal(err)
	}
	//only the geometry has more than one occurrence, so one answer suffices
	if !closeTo(qc.GeoSpec[0][2], 1.000000*Angs2Bohr) {
		Te.Errorf("interactive answer 0 should pick the first standard orientation: %v", qc.GeoSpec[0])
	}
}

func TestGaussianLogOrientationFallback(Te *testing.T) {
	//keep only the input orientation; requesting standard must silently
	//fall back to it
	onlyInput := strings.ReplaceAll(gaussianLogWater, "Standard orientation:", "Removed orientation:")
	path := writeTestFile(Te, "input.log", onlyInput)
	qc, err := ReadGaussianLog(path, &Options{Orientation: "standard", IGeo: -1, IAO: -1, IMO: -1})
	if err != nil {
		Te.Fatal(err)
	}
	if !closeTo(qc.GeoSpec[0][2], 9.000000*Angs2Bohr) {
		Te.Errorf("fallback did not pick the input orientation: %v", qc.GeoSpec[0])
	}
}

func TestGaussianLogMissingSections(Te *testing.T) {
	noMO := strings.ReplaceAll(gaussianLogWater, "Orbital Coefficients:", "Orbital Coefficients removed")
	path := writeTestFile(Te, "nomo.log", noMO)
	_, err := ReadGaussianLog(path, nil)
	if !errors.Is(err, ErrSectionNotFound) {
		Te.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
	//the message points at the route option that prints the section
	if !strings.Contains(err.Error(), "IOP(6/7=3)") {
		Te.Errorf("error does not name the missing route option: %v", err)
	}
	noGeo := strings.ReplaceAll(gaussianLogWater, " orientation:", " positions:")
	path = writeTestFile(Te, "nogeo.log", noGeo)
	_, err = ReadGaussianLog(path, nil)
	if !errors.Is(err, ErrSectionNotFound) {
		Te.Errorf("expected ErrSectionNotFound after the fallback, got %v", err)
	}
}

func TestGaussianLogSphericalBasis(Te *testing.T) {
	spherical := strings.ReplaceAll(gaussianLogWater, "(6D, 10F)", "(5D, 7F)")
	path := writeTestFile(Te, "spherical.log", spherical)
	_, err := ReadGaussianLog(path, nil)
	if !errors.Is(err, ErrUnsupportedConstruct) {
		Te.Errorf("expected ErrUnsupportedConstruct, got %v", err)
	}
}
