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

//Package sphinx prepares inputs for, and reads the outputs of, the SPHInX
//plane-wave DFT program.
//
//Input files are built from an Input (the calculation settings) and a
//chem.Periodic structure by a Handle, which renders every section in
//memory before writing anything to disk. SPHInX wants the atoms grouped
//by species, so the Handle also keeps the AtomOrder between the order of
//the structure and the one in the files, and uses it to put the per-atom
//quantities it reads back in the original order.
//
//The log is read into a Record, with one entry per SCF loop for every
//quantity found. The relaxation history (relaxHist.sx) is read into a
//slice of Snapshots.
package sphinx
