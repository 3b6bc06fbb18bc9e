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

import (
	"fmt"

	"github.com/GaryBoone/GoStats/stats"
	"gonum.org/v1/gonum/floats"
)

// RunStats summarizes the enrichment accumulated by a population during
// the last evolution step.
type RunStats struct {
	// Particles is the number of particles in the population.
	Particles int

	// ElementsReleased is the population total of each tracked element
	// released [Msun per Msun of stars formed].
	ElementsReleased [NElements]float64

	// MassReleased and MetalMassReleased are the population totals of
	// all tracked mass and of metal mass released.
	MassReleased      float64
	MetalMassReleased float64

	// Per-channel population totals.
	MassFromSNIa float64
	MassFromSNII float64
	MassFromAGB  float64

	// NumSNIa is the population total expected number of Type Ia
	// supernovae per unit stellar mass formed.
	NumSNIa float64

	// MeanMetalMass and StdDevMetalMass characterize the spread of
	// per-particle metal mass released.
	MeanMetalMass   float64
	StdDevMetalMass float64
}

// Stats computes summary statistics over the population's per-step
// accumulators.
func (pop Population) Stats() *RunStats {
	s := &RunStats{Particles: len(pop)}
	var d stats.Stats
	perElement := make([]float64, len(pop))
	for e := 0; e < NElements; e++ {
		for i, sp := range pop {
			perElement[i] = sp.ElementsReleased[e]
		}
		s.ElementsReleased[e] = floats.Sum(perElement)
		s.MassReleased += s.ElementsReleased[e]
	}
	for _, sp := range pop {
		s.MetalMassReleased += sp.MetalMassReleased
		s.MassFromSNIa += sp.MassFromSNIa
		s.MassFromSNII += sp.MassFromSNII
		s.MassFromAGB += sp.MassFromAGB
		s.NumSNIa += sp.NumSNIa
		d.Update(sp.MetalMassReleased)
	}
	if d.Count() > 0 {
		s.MeanMetalMass = d.Mean()
	}
	if d.Count() > 1 {
		s.StdDevMetalMass = d.SampleStandardDeviation()
	}
	return s
}

func (s *RunStats) String() string {
	return fmt.Sprintf("%d particles: mass released %.6g Msun/Msun "+
		"(metals %.6g; SNIa %.6g, SNII %.6g, AGB %.6g), %.6g SNIa/Msun",
		s.Particles, s.MassReleased, s.MetalMassReleased,
		s.MassFromSNIa, s.MassFromSNII, s.MassFromAGB, s.NumSNIa)
}
