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

import "math"

// evolveSNIa accumulates the enrichment from Type Ia supernovae whose
// progenitors die in the mass interval [log10MinMass, log10MaxMass]
// [log10 Msun] during the dtGyr timestep. The expected supernova count
// follows an e-folding delay-time distribution (Forster et al. 2006)
// windowed by the particle's time since last enrichment.
//
// If the interval extends past the SNIa progenitor mass limit it is
// clipped, and the time spent above the limit is folded forward into
// TimeSinceEnrichGyr so the delay-time window stays continuous across
// steps. Only this channel mutates that counter.
func evolveSNIa(log10MinMass, log10MaxMass float64, props *StarsProperties, sp *StarParticle, dtGyr float64) error {
	if log10MinMass >= log10SNIaMaxMassMsun {
		return nil
	}

	if log10MaxMass > log10SNIaMaxMassMsun {
		log10MaxMass = log10SNIaMaxMassMsun
		lifetimeGyr, err := props.LifetimeGyr(math.Exp(math.Ln10*log10SNIaMaxMassMsun),
			sp.Chemistry.MetalMassFractionTotal)
		if err != nil {
			return err
		}
		dtGyr = sp.TimeSinceEnrichGyr + dtGyr - lifetimeGyr
		sp.TimeSinceEnrichGyr = lifetimeGyr
	}

	numSNIaPerMsun := props.SNIaEfficiency *
		(math.Exp(-sp.TimeSinceEnrichGyr/props.SNIaTimescaleGyr) -
			math.Exp(-(sp.TimeSinceEnrichGyr+dtGyr)/props.SNIaTimescaleGyr))

	sp.NumSNIa = numSNIaPerMsun

	if !props.SNIaMassTransfer {
		sp.IronFromSNIa = 0
		sp.MetalsFromSNIa = 0
		sp.MassFromSNIa = 0
		return nil
	}

	for e := 0; e < NElements; e++ {
		sp.ElementsReleased[e] += numSNIaPerMsun * props.SNIa.Yield[e]
	}

	// SNIa remnants eject no hydrogen or helium, so the mass released
	// equals the metal mass released. The total metal yield covers all
	// metals, not only the tracked ones.
	sp.MassFromSNIa += numSNIaPerMsun * props.SNIa.TotalMetals
	sp.MetalsFromSNIa += numSNIaPerMsun * props.SNIa.TotalMetals
	sp.MetalMassReleased += numSNIaPerMsun * props.SNIa.TotalMetals
	sp.IronFromSNIa += numSNIaPerMsun * props.SNIa.Yield[ElemFe]

	return nil
}
