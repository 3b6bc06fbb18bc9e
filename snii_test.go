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

// The normalization must make the total released mass, metals plus the
// hydrogen and helium carried with them, equal the IMF-integrated ejecta
// mass from the table.
func TestSNIIMassConservation(t *testing.T) {
	props := EnrichTestData()
	sp := EnrichTestParticle(0.01)
	scratch := make([]float64, props.IMF.NBins())
	lo, hi := math.Log10(10), math.Log10(40)

	if err := evolveSNII(lo, hi, props, sp, scratch); err != nil {
		t.Fatal(err)
	}

	_, _, wantEjecta := integrateYields(props.YieldSNII, props.IMF, sp, lo, hi, scratch)
	got := sp.MetalsFromSNII + sp.ElementsReleased[ElemH] + sp.ElementsReleased[ElemHe]
	if wantEjecta <= 0 {
		t.Fatalf("test setup gives non-positive ejecta mass %g", wantEjecta)
	}
	if diff := math.Abs(got/wantEjecta - 1); diff > testTolerance {
		t.Errorf("released mass = %g, want ejecta mass %g (relative diff %g)",
			got, wantEjecta, diff)
	}
	if sp.MetalsFromSNII <= 0 || sp.MassFromSNII <= 0 {
		t.Errorf("MetalsFromSNII = %g, MassFromSNII = %g, want > 0",
			sp.MetalsFromSNII, sp.MassFromSNII)
	}
}

// Intervals outside the progenitor mass range contribute nothing.
func TestSNIIMassRangeClamp(t *testing.T) {
	props := EnrichTestData()
	scratch := make([]float64, props.IMF.NBins())

	for _, c := range [][2]float64{
		{math.Log10(1), math.Log10(5)},     // below
		{math.Log10(110), math.Log10(120)}, // above
	} {
		sp := EnrichTestParticle(0.01)
		if err := evolveSNII(c[0], c[1], props, sp, scratch); err != nil {
			t.Fatal(err)
		}
		if sp.MassFromSNII != 0 || sp.MetalsFromSNII != 0 || sp.MetalMassReleased != 0 {
			t.Errorf("interval [%g, %g] outside progenitor range released mass", c[0], c[1])
		}
	}
}

func TestSNIINoMassTransfer(t *testing.T) {
	props := *EnrichTestData()
	props.SNIIMassTransfer = false
	sp := EnrichTestParticle(0.01)
	sp.MassFromSNII = 1 // stale value from a previous step
	sp.MetalsFromSNII = 1
	scratch := make([]float64, props.IMF.NBins())

	if err := evolveSNII(math.Log10(10), math.Log10(40), &props, sp, scratch); err != nil {
		t.Fatal(err)
	}
	if sp.MassFromSNII != 0 || sp.MetalsFromSNII != 0 {
		t.Errorf("disabled SNII mass transfer left MassFromSNII = %g, MetalsFromSNII = %g",
			sp.MassFromSNII, sp.MetalsFromSNII)
	}
	if sp.MetalMassReleased != 0 {
		t.Errorf("disabled SNII mass transfer released %g metal mass", sp.MetalMassReleased)
	}
}

// Per-element yield factors scale the synthesized contribution.
func TestSNIITypeIIFactor(t *testing.T) {
	f, err := imfForTest()
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{
		SNIaEfficiency:   2e-3,
		SNIaTimescaleGyr: 2,
		SNIIMassTransfer: true,
	}

	unit := make([]float64, NElements)
	for i := range unit {
		unit[i] = 1
	}
	opts.TypeIIFactor = unit
	withUnit, err := NewStarsProperties(Portinari, f, EnrichTestTables(), opts)
	if err != nil {
		t.Fatal(err)
	}
	opts.TypeIIFactor = nil
	plain, err := NewStarsProperties(Portinari, f, EnrichTestTables(), opts)
	if err != nil {
		t.Fatal(err)
	}

	scratch := make([]float64, f.NBins())
	lo, hi := math.Log10(8), math.Log10(60)
	spUnit, spPlain := EnrichTestParticle(0.01), EnrichTestParticle(0.01)
	if err := evolveSNII(lo, hi, withUnit, spUnit, scratch); err != nil {
		t.Fatal(err)
	}
	if err := evolveSNII(lo, hi, plain, spPlain, scratch); err != nil {
		t.Fatal(err)
	}
	if *spUnit != *spPlain {
		t.Error("unit yield factors changed the result")
	}

	boosted := make([]float64, NElements)
	copy(boosted, unit)
	boosted[ElemO] = 2
	opts.TypeIIFactor = boosted
	withBoost, err := NewStarsProperties(Portinari, f, EnrichTestTables(), opts)
	if err != nil {
		t.Fatal(err)
	}
	spBoost := EnrichTestParticle(0.01)
	if err := evolveSNII(lo, hi, withBoost, spBoost, scratch); err != nil {
		t.Fatal(err)
	}
	if spBoost.ElementsReleased[ElemO] <= spPlain.ElementsReleased[ElemO] {
		t.Errorf("doubled oxygen factor released %g oxygen, plain table released %g",
			spBoost.ElementsReleased[ElemO], spPlain.ElementsReleased[ElemO])
	}
}
