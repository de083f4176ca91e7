/*
 * atomicdata.go, part of orbkit.
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

// Unit conversion factors.
const (
	// Angs2Bohr converts lengths in Ångström to bohr radii.
	Angs2Bohr = 1 / 0.52917720859
	// Debye2AU converts dipole moments in debye to atomic units (e·bohr).
	Debye2AU = 0.393430307
)

// occEpsilon is the occupation below which an orbital counts as empty.
const occEpsilon = 1e-7

// lquant maps a shell letter to its angular-momentum quantum number l.
var lquant = map[string]int{
	"s": 0,
	"p": 1,
	"d": 2,
	"f": 3,
	"g": 4,
	"h": 5,
	"i": 6,
}

// orbit maps the absolute value of a formatted-checkpoint shell code to the
// corresponding shell letter.
var orbit = []string{"s", "p", "d", "f", "g", "h", "i"}

// lDeg returns the number of cartesian basis functions in a shell of
// angular momentum l.
func lDeg(l int) int {
	return (l + 1) * (l + 2) / 2
}

// shellDeg returns the basis-function degeneracy of a shell type. The
// combined "sp" shell contributes one s and three p functions. The second
// return value is false for shell letters we know nothing about.
func shellDeg(shellType string) (int, bool) {
	if shellType == "sp" {
		return 4, true
	}
	l, ok := lquant[shellType]
	if !ok {
		return 0, false
	}
	return lDeg(l), true
}

// A map for assigning mass to elements.
// Note that just common "bio-elements" are present
var symbolMass = map[string]float64{
	"H":  1.0,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"Se": 78.96,
	"K":  39.1,
	"Ca": 40.08,
	"Mg": 24.30,
	"Cl": 35.45,
	"Na": 22.99,
	"Cu": 63.55,
	"Zn": 65.38,
	"Co": 58.93,
	"Fe": 55.84,
	"Mn": 54.94,
	"Cr": 51.996,
	"Si": 28.08,
	"Be": 9.012,
	"F":  18.998,
	"Br": 79.904,
	"I":  126.90,
}
