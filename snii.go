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

// evolveSNII accumulates the enrichment from Type II supernovae whose
// progenitors die in the mass interval [log10MinMass, log10MaxMass]
// [log10 Msun] this step. The interval is clamped to the SNII
// progenitor mass range; element masses are normalized so that the
// total ejected mass matches the IMF-integrated ejecta mass implied by
// the table.
func evolveSNII(log10MinMass, log10MaxMass float64, props *StarsProperties, sp *StarParticle, scratch []float64) error {
	if log10MinMass < log10SNIIMinMassMsun {
		log10MinMass = log10SNIIMinMassMsun
	}
	if log10MaxMass > log10SNIIMaxMassMsun {
		log10MaxMass = log10SNIIMaxMassMsun
	}
	if log10MinMass >= log10MaxMass {
		return nil
	}

	metals, metalMass, ejectaMass := integrateYields(props.YieldSNII, props.IMF, sp,
		log10MinMass, log10MaxMass, scratch)

	if !props.SNIIMassTransfer {
		sp.MassFromSNII = 0
		sp.MetalsFromSNII = 0
		return nil
	}

	// Total ejected mass: metals plus the hydrogen and helium carried
	// out with them.
	norm := metalMass + metals[ElemH] + metals[ElemHe]
	if norm <= 0 {
		return fmt.Errorf("starchem: SNII yield normalization failed: total ejected mass = %e", norm)
	}
	ratio := ejectaMass / norm

	for e := range metals {
		sp.ElementsReleased[e] += metals[e] * ratio
		sp.MassFromSNII += metals[e] * ratio
	}
	sp.MetalMassReleased += metalMass * ratio
	sp.MetalsFromSNII += metalMass * ratio

	return nil
}
