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

// ChemistryData holds the chemical composition of a star particle.
type ChemistryData struct {
	// MetalMassFractionTotal is the total mass fraction of all elements
	// heavier than helium.
	MetalMassFractionTotal float64

	// MetalMassFraction is the mass fraction of each tracked element,
	// including hydrogen and helium.
	MetalMassFraction [NElements]float64
}

// StarParticle is the per-particle state evolved by the enrichment model.
// Identity and kinematic fields are carried for input/output fidelity;
// the enrichment computation itself only reads Age and Chemistry and
// writes the accumulators below.
type StarParticle struct {
	// ID is the particle identifier.
	ID int64

	// Pos is the particle position [internal length units].
	Pos [3]float64

	// Vel is the particle velocity [internal speed units].
	Vel [3]float64

	// Mass is the current particle mass [internal mass units].
	Mass float64

	// MassInit is the particle mass at birth [internal mass units].
	MassInit float64

	// Age is the stellar population age [internal time units].
	Age float64

	// Chemistry is the particle composition.
	Chemistry ChemistryData

	// TimeSinceEnrichGyr is the time since the last enrichment step [Gyr].
	// It windows the SNIa exponential delay-time model and is only
	// mutated by the SNIa channel when its integration interval is
	// clipped at the SNIa mass limit.
	TimeSinceEnrichGyr float64

	// ElementsReleased accumulates the mass of each tracked element
	// returned to the surrounding medium this step [Msun per Msun of
	// stars formed].
	ElementsReleased [NElements]float64

	// MetalMassReleased accumulates the total metal mass returned this
	// step, including metals not individually tracked.
	MetalMassReleased float64

	// Per-channel mass and metal breakdown, written once per step.
	MassFromAGB    float64
	MetalsFromAGB  float64
	MassFromSNII   float64
	MetalsFromSNII float64
	MassFromSNIa   float64
	MetalsFromSNIa float64
	IronFromSNIa   float64

	// NumSNIa is the expected number of Type Ia supernovae this step
	// per unit stellar mass formed.
	NumSNIa float64
}

// resetEnrichment zeroes all per-step accumulators.
func (sp *StarParticle) resetEnrichment() {
	for i := range sp.ElementsReleased {
		sp.ElementsReleased[i] = 0
	}
	sp.MetalMassReleased = 0
	sp.MassFromAGB = 0
	sp.MetalsFromAGB = 0
	sp.MassFromSNII = 0
	sp.MetalsFromSNII = 0
	sp.MassFromSNIa = 0
	sp.MetalsFromSNIa = 0
	sp.IronFromSNIa = 0
	sp.NumSNIa = 0
}
