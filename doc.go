/*
 * doc.go, part of orbkit.
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

/*Package orbkit reads the output files of quantum-chemistry programs into a
single in-memory record, the QCInfo.

Four input formats are supported:

    molden           the molden molecular format ([Atoms]/[GTO]/[MO])
    gamess           GAMESS-US output, including CIS transition dipoles
    gaussian.fchk    Gaussian formatted checkpoint files
    gaussian.log     Gaussian narrative log files

Each format is parsed by its own reader; Read dispatches on a format tag.
All readers fill the same record: geometry (always in bohr), the contracted
atomic-orbital basis, and the molecular orbitals with their energies,
occupations and symmetry labels. Unless all orbitals are requested, only
the occupied ones are kept.

The readers work on whole files held in memory, keep no state between
calls, and never return a partially-filled record together with an error.
Inputs compressed with gzip (a .gz suffix) are decompressed on the fly.
*/
package orbkit
