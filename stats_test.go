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
	"math"
	"testing"
)

func TestPopulationStats(t *testing.T) {
	a := EnrichTestParticle(1)
	a.ElementsReleased[ElemH] = 2
	a.ElementsReleased[ElemFe] = 0.5
	a.MetalMassReleased = 1
	a.MassFromSNIa = 0.25
	a.NumSNIa = 1e-3
	b := EnrichTestParticle(2)
	b.ElementsReleased[ElemH] = 1
	b.MetalMassReleased = 3
	b.MassFromAGB = 0.75
	b.NumSNIa = 2e-3

	s := Population{a, b}.Stats()

	if s.Particles != 2 {
		t.Errorf("Particles = %d, want 2", s.Particles)
	}
	if s.ElementsReleased[ElemH] != 3 || s.ElementsReleased[ElemFe] != 0.5 {
		t.Errorf("element totals = %v", s.ElementsReleased)
	}
	if s.MassReleased != 3.5 {
		t.Errorf("MassReleased = %g, want 3.5", s.MassReleased)
	}
	if s.MetalMassReleased != 4 {
		t.Errorf("MetalMassReleased = %g, want 4", s.MetalMassReleased)
	}
	if s.MassFromSNIa != 0.25 || s.MassFromAGB != 0.75 || s.MassFromSNII != 0 {
		t.Errorf("channel totals: SNIa=%g SNII=%g AGB=%g",
			s.MassFromSNIa, s.MassFromSNII, s.MassFromAGB)
	}
	if diff := math.Abs(s.NumSNIa - 3e-3); diff > 1e-15 {
		t.Errorf("NumSNIa = %g, want 3e-3", s.NumSNIa)
	}
	if s.MeanMetalMass != 2 {
		t.Errorf("MeanMetalMass = %g, want 2", s.MeanMetalMass)
	}
	if diff := math.Abs(s.StdDevMetalMass - math.Sqrt2); diff > 1e-12 {
		t.Errorf("StdDevMetalMass = %g, want %g", s.StdDevMetalMass, math.Sqrt2)
	}
	if s.String() == "" {
		t.Error("empty stats summary")
	}
}

func TestPopulationStatsEmpty(t *testing.T) {
	s := Population{}.Stats()
	if s.Particles != 0 || s.MassReleased != 0 || s.MeanMetalMass != 0 || s.StdDevMetalMass != 0 {
		t.Errorf("empty population stats not zero: %+v", s)
	}
}
