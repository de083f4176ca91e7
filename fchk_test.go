/*
 * fchk_test.go, part of orbkit.
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
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

// Water in a toy s-only basis as a formatted checkpoint: every array
// announces its length with N= and wraps its tokens at five per line.
const fchkWater = `water
SP        RHF                                                         STO-3G
Number of atoms                            I                3
Charge                                     I                0
Multiplicity                               I                1
Number of alpha electrons                  I                2
Number of beta electrons                   I                2
Atomic numbers                             I   N=           3
           8           1           1
Integer atomic weights                     I   N=           3
          16           1           1
Current cartesian coordinates              R   N=           9
  0.00000000E+00  0.00000000E+00  2.25380409E-01  0.00000000E+00  1.44242880E+00
 -9.01521637E-01  0.00000000E+00 -1.44242880E+00 -9.01521637E-01
Total Energy                               R     -7.49659012E+01
Shell types                                I   N=           3
           0           0           0
Number of primitives per shell             I   N=           3
           3           1           1
Shell to atom map                          I   N=           3
           1           2           3
Primitive exponents                        R   N=           5
  3.42525091E+00  6.23913730E-01  1.68855404E-01  3.42525091E+00  3.42525091E+00
Contraction coefficients                   R   N=           5
  1.54328967E-01  5.35328142E-01  4.44634542E-01  1.00000000E+00  1.00000000E+00
Alpha Orbital Energies                     R   N=           3
 -2.02415400E+01 -1.27209000E+00  5.76220000E-01
Alpha MO coefficients                      R   N=           9
  9.94216000E-01  2.58460000E-02  2.58460000E-02  2.33770000E-01  8.44450000E-01
  8.44450000E-01  0.00000000E+00  5.23460000E-01 -5.23460000E-01
`

func TestFchkRead(Te *testing.T) {
	path := writeTestFile(Te, "water.fchk", fchkWater)
	qc, err := ReadGaussianFchk(path, &Options{AllMO: true})
	if err != nil {
		Te.Fatal(err)
	}
	if !closeTo(qc.Etot, -74.9659012) {
		Te.Errorf("wrong total energy: %v", qc.Etot)
	}
	if len(qc.GeoInfo) != 3 {
		Te.Fatalf("expected 3 atoms, got %d", len(qc.GeoInfo))
	}
	//atomic numbers and integer weights fill the same entries
	if qc.GeoInfo[0].Label != "8" || qc.GeoInfo[0].Serial != 1 || qc.GeoInfo[0].Extra != "16" {
		Te.Errorf("bad first atom: %+v", qc.GeoInfo[0])
	}
	//checkpoint coordinates are already in bohr
	if !closeTo(qc.GeoSpec[1][1], 1.44242880) {
		Te.Errorf("bohr coordinates were converted: %v", qc.GeoSpec[1])
	}
	if len(qc.AOSpec) != 3 || qc.BasisCount() != 3 {
		Te.Fatalf("expected 3 s shells, got %d shells, %d functions", len(qc.AOSpec), qc.BasisCount())
	}
	if qc.AOSpec[0].Type != "s" || qc.AOSpec[0].PNum != 3 || qc.AOSpec[0].Atom != 0 {
		Te.Errorf("bad first shell: %+v", qc.AOSpec[0])
	}
	if !closeTo(qc.AOSpec[0].Coeffs[1][0], 0.623913730) || !closeTo(qc.AOSpec[0].Coeffs[1][1], 0.535328142) {
		Te.Errorf("exponent/contraction pairing broken: %v", qc.AOSpec[0].Coeffs)
	}
	if len(qc.MOSpec) != 3 {
		Te.Fatalf("expected 3 orbitals, got %d", len(qc.MOSpec))
	}
	//2 alpha + 2 beta electrons in a closed shell: occupations 2, 2, 0
	occs := []float64{2, 2, 0}
	for i, want := range occs {
		if !closeTo(qc.MOSpec[i].OccNum, want) {
			Te.Errorf("MO %d occupation is %v, want %v", i, qc.MOSpec[i].OccNum, want)
		}
	}
	if !closeTo(qc.MOSpec[0].Energy, -20.24154) {
		Te.Errorf("bad orbital energy: %v", qc.MOSpec[0].Energy)
	}
	//the 1-D token stream folds back into rows of basisCount coefficients
	if !closeTo(qc.MOSpec[1].Coeffs[0], 0.233770) || !closeTo(qc.MOSpec[2].Coeffs[2], -0.523460) {
		Te.Errorf("coefficient rows misfolded: %v / %v", qc.MOSpec[1].Coeffs, qc.MOSpec[2].Coeffs)
	}
	if qc.MOSpec[2].Sym != "3.1" {
		Te.Errorf("bad symmetry label: %q", qc.MOSpec[2].Sym)
	}
}

func TestFchkOccupiedFilter(Te *testing.T) {
	path := writeTestFile(Te, "water.fchk", fchkWater)
	qc, err := ReadGaussianFchk(path, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(qc.MOSpec) != 2 {
		Te.Errorf("expected 2 occupied orbitals, got %d", len(qc.MOSpec))
	}
}

func TestFchkCoefficientRecovery(Te *testing.T) {
	//Gaussian prints stars for values that overflow their field
	bad := strings.Replace(fchkWater, "2.33770000E-01", "**************", 1)
	path := writeTestFile(Te, "bad.fchk", bad)
	var diag bytes.Buffer
	SetDisplayWriter(&diag)
	defer SetDisplayWriter(io.Discard)
	qc, err := ReadGaussianFchk(path, &Options{AllMO: true})
	if err != nil {
		Te.Fatal(err)
	}
	if !closeTo(qc.MOSpec[1].Coeffs[0], 0.0) {
		Te.Errorf("bad coefficient not zeroed: %v", qc.MOSpec[1].Coeffs)
	}
	if !closeTo(qc.MOSpec[1].Coeffs[1], 0.844450) {
		Te.Errorf("recovery damaged the orbital: %v", qc.MOSpec[1].Coeffs)
	}
	if !strings.Contains(diag.String(), "setting this coefficient to zero") {
		Te.Error("no diagnostic was emitted for the recovered coefficient")
	}
}

// HeH in a minimal basis, one unpaired electron: separate alpha and beta
// energy and coefficient records.
const fchkHeHDoublet = `heh doublet
SP        UHF                                                         STO-3G
Number of atoms                            I                2
Charge                                     I                0
Multiplicity                               I                2
Number of alpha electrons                  I                2
Number of beta electrons                   I                1
Atomic numbers                             I   N=           2
           2           1
Integer atomic weights                     I   N=           2
           4           1
Current cartesian coordinates              R   N=           6
  0.00000000E+00  0.00000000E+00  0.00000000E+00  0.00000000E+00  0.00000000E+00
  1.46000000E+00
Total Energy                               R     -3.37000000E+00
Shell types                                I   N=           2
           0           0
Number of primitives per shell             I   N=           2
           1           1
Shell to atom map                          I   N=           2
           1           2
Primitive exponents                        R   N=           2
  6.36242139E-01  1.68855404E-01
Contraction coefficients                   R   N=           2
  1.00000000E+00  1.00000000E+00
Alpha Orbital Energies                     R   N=           2
 -1.30000000E+00  1.10000000E-01
Beta Orbital Energies                      R   N=           2
 -1.10000000E+00  2.30000000E-01
Alpha MO coefficients                      R   N=           4
  1.10000000E-01  1.20000000E-01  2.10000000E-01  2.20000000E-01
Beta MO coefficients                       R   N=           4
  3.10000000E-01  3.20000000E-01  4.10000000E-01  4.20000000E-01
`

func TestFchkOpenShell(Te *testing.T) {
	path := writeTestFile(Te, "heh.fchk", fchkHeHDoublet)
	qc, err := ReadGaussianFchk(path, &Options{AllMO: true})
	if err != nil {
		Te.Fatal(err)
	}
	//2 alpha + 2 beta orbitals, in file order
	if len(qc.MOSpec) != 4 {
		Te.Fatalf("expected 4 orbitals, got %d", len(qc.MOSpec))
	}
	occs := []float64{1, 1, 1, 0}
	for i, want := range occs {
		if !closeTo(qc.MOSpec[i].OccNum, want) {
			Te.Errorf("MO %d occupation is %v, want %v", i, qc.MOSpec[i].OccNum, want)
		}
	}
	if !closeTo(qc.MOSpec[0].Energy, -1.3) || !closeTo(qc.MOSpec[2].Energy, -1.1) {
		Te.Errorf("spin blocks misassigned: energies %v / %v",
			qc.MOSpec[0].Energy, qc.MOSpec[2].Energy)
	}
	//the alpha coefficient record fills the alpha orbitals, the beta
	//record continues into the beta ones
	if !closeTo(qc.MOSpec[0].Coeffs[0], 0.11) || !closeTo(qc.MOSpec[1].Coeffs[1], 0.22) {
		Te.Errorf("alpha coefficients lost: %v / %v", qc.MOSpec[0].Coeffs, qc.MOSpec[1].Coeffs)
	}
	if !closeTo(qc.MOSpec[2].Coeffs[0], 0.31) || !closeTo(qc.MOSpec[3].Coeffs[1], 0.42) {
		Te.Errorf("beta coefficients misplaced: %v / %v", qc.MOSpec[2].Coeffs, qc.MOSpec[3].Coeffs)
	}
}

func TestFchkOrdering(Te *testing.T) {
	//exponents before the shell types have no shells to go to
	early := `water
SP        RHF                                                         STO-3G
Primitive exponents                        R   N=           5
  3.42525091E+00  6.23913730E-01  1.68855404E-01  3.42525091E+00  3.42525091E+00
`
	path := writeTestFile(Te, "early.fchk", early)
	_, err := ReadGaussianFchk(path, nil)
	if !errors.Is(err, ErrOrdering) {
		Te.Errorf("expected ErrOrdering, got %v", err)
	}
}
