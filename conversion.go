/*
 * conversion.go, part of gospx.
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

package chem

//This provides useful conversion factors and other constants
//CODATA 2014 values, which is what SPHInX inputs are written with.

//Conversions
const (
	Bohr2A = 0.52917721067 //Divide by this to go from A to bohr, so the numbers written are the same ones SPHInX reads.
	H2eV   = 27.21138602   //Hartree to eV
	Ry2eV  = H2eV / 2      //Rydberg to eV, SPHInX cutoffs are in Ry.
)

//Bohr3A3 returns the factor from bohr^3 to A^3
func Bohr3A3() float64 {
	b := Bohr2A
	return b * b * b
}

//HBohr2eVA converts a force in Hartree/bohr to eV/A
func HBohr2eVA(f float64) float64 {
	return f * H2eV / Bohr2A
}
