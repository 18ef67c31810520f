/*
 * doc.go, part of gospx.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
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

/*
Package chem contains the structural data that gospx needs from the
outside world: atoms with their element, species label and spin, the
periodic cell that contains them and their fractional coordinates, plus
units and a small element table.

The interesting parts of the library live in the subpackages:

    sx          The SPHInX input dialect: an ordered configuration tree,
                its renderer and a reader.

    sphinx      Writing SPHInX input files for a structure, and collecting
                the results (SCF energies, residues, spins, eigenvalues,
                relaxation history) from a finished or aborted run.

    sphinxplot  Convergence plots for collected results.

    v3          Nx3 matrices for cells, positions and forces.
*/
package chem
