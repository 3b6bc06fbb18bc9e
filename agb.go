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

import "fmt"

// evolveAGB accumulates the enrichment from AGB mass loss for stars
// dying in the mass interval [log10MinMass, log10MaxMass] [log10 Msun]
// this step. The interval is restricted to masses below the SNII
// progenitor minimum; when the channel runs, element masses are always
// normalized against the IMF-integrated ejecta mass.
func evolveAGB(log10MinMass, log10MaxMass float64, props *StarsProperties, sp *StarParticle, scratch []float64) error {
	if !props.AGBMassTransfer {
		return nil
	}

	if log10MaxMass > log10SNIIMinMassMsun {
		log10MaxMass = log10SNIIMinMassMsun
	}
	if log10MinMass >= log10MaxMass {
		return nil
	}

	metals, metalMass, ejectaMass := integrateYields(props.YieldAGB, props.IMF, sp,
		log10MinMass, log10MaxMass, scratch)

	norm := metalMass + metals[ElemH] + metals[ElemHe]
	if norm <= 0 {
		return fmt.Errorf("starchem: AGB yield normalization failed: total ejected mass = %e", norm)
	}
	ratio := ejectaMass / norm

	for e := range metals {
		metals[e] *= ratio
	}
	metalMass *= ratio

	for e := range metals {
		sp.ElementsReleased[e] += metals[e]
		sp.MassFromAGB += metals[e]
	}
	sp.MetalMassReleased += metalMass
	sp.MetalsFromAGB += metalMass

	return nil
}
