/*
Copyright © 2026 the StarChem authors.
This file is part of StarChem.

StarChem is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

StarChem is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with StarChem.  If not, see <http://www.gnu.org/licenses/>.
*/

package starchem

// Tracked chemical elements. The yield tables and particle chemistry
// arrays are indexed by these values, so their order is part of the
// table file convention. Iron must stay last: the SNIa yield vector is
// laid out with iron at this index.
const (
	ElemH = iota
	ElemHe
	ElemC
	ElemN
	ElemO
	ElemNe
	ElemMg
	ElemSi
	ElemFe

	// NElements is the number of tracked elements.
	NElements = iota
)

// ElementNames are the names of the tracked elements, in array order.
var ElementNames = []string{"Hydrogen", "Helium", "Carbon", "Nitrogen",
	"Oxygen", "Neon", "Magnesium", "Silicon", "Iron"}

// Stellar mass ranges for the enrichment channels [log10 solar masses].
const (
	log10SNIIMinMassMsun = 0.77815125038364363 // log10(6)
	log10SNIIMaxMassMsun = 2.0                 // log10(100)
	log10SNIaMaxMassMsun = 0.90308998699194354 // log10(8)
)

// logMinMetallicity is the floor [log10 mass fraction] below which yield
// interpolation collapses to the lowest metallicity bin.
const logMinMetallicity = -20.
