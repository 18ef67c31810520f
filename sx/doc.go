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
Package sx models the input language of the SPHInX plane-wave code.

A SPHInX input is a tree of named statements:

	format paw;
	include <parameters.sx>;
	basis {
		eCut = EnCut/13.606;
		kPoint {
			coords = [0.5, 0.5, 0.5];
			relative;
		}
		saveMemory;
	}

Group is an ordered container of such statements. Order is part of its
contract: Marshal writes the entries exactly in insertion order, and the
same name may appear more than once (two atom {} blocks, two atomicSpin
{} blocks). Values are never evaluated; an expression such as
EnCut/13.606 is kept as a Raw value and written back as it is.

Marshal renders a Group with one tab of indentation per level.
MarshalVariables renders the flat name=value; form SPHInX uses for
variable definitions. Parse reads the language back into a Group.
*/
package sx
