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

package imf

import (
	"math"
	"testing"
)

const tolerance = 1e-10

func TestNewInvalid(t *testing.T) {
	cases := []struct {
		model            Model
		minMass, maxMass float64
	}{
		{Chabrier, 0, 100},
		{Chabrier, -1, 100},
		{Chabrier, 100, 0.1},
		{Chabrier, 1, 1},
		{Model(99), 0.1, 100},
	}
	for _, c := range cases {
		if _, err := New(c.model, 2.3, c.minMass, c.maxMass); err == nil {
			t.Errorf("New(%v, 2.3, %g, %g): expected error", c.model, c.minMass, c.maxMass)
		}
	}
}

// The IMF must be normalized so the mass-weighted integral over the
// full mass range is one.
func TestMassNormalization(t *testing.T) {
	for _, model := range []Model{Chabrier, PowerLaw} {
		f, err := New(model, 2.3, 0.1, 100)
		if err != nil {
			t.Fatal(err)
		}
		total := f.Integrate(math.Log10(0.1), math.Log10(100), 0, ByMass, nil)
		if diff := math.Abs(total - 1); diff > tolerance {
			t.Errorf("%v: mass integral = %g, want 1 (diff %g)", model, total, diff)
		}
	}
}

// For a single power law the ratio of star counts in two mass intervals
// has a closed form that the sampled integration must reproduce.
func TestPowerLawNumberRatio(t *testing.T) {
	const exponent = 2.3
	f, err := New(PowerLaw, exponent, 0.1, 100)
	if err != nil {
		t.Fatal(err)
	}
	nLow := f.Integrate(0, 1, 0, ByNumber, nil)   // 1 to 10 Msun
	nHigh := f.Integrate(1, 2, 0, ByNumber, nil)  // 10 to 100 Msun
	count := func(a, b float64) float64 {         // ∫ m^-exponent dm
		return (math.Pow(a, 1-exponent) - math.Pow(b, 1-exponent)) / (exponent - 1)
	}
	want := count(1, 10) / count(10, 100)
	got := nLow / nHigh
	if diff := math.Abs(got/want - 1); diff > 1e-2 {
		t.Errorf("number ratio = %g, want %g (relative diff %g)", got, want, diff)
	}
}

// A unit yield array must integrate identically to the by-number mode.
func TestIntegrateUnitYield(t *testing.T) {
	f, err := New(Chabrier, 2.3, 0.1, 100)
	if err != nil {
		t.Fatal(err)
	}
	yield := make([]float64, f.NBins())
	for i := range yield {
		yield[i] = 1
	}
	a, b := math.Log10(0.5), math.Log10(30)
	byNumber := f.Integrate(a, b, 0, ByNumber, nil)
	byYield := f.Integrate(a, b, 0, ByYield, yield)
	if diff := math.Abs(byYield - byNumber); diff > tolerance {
		t.Errorf("unit-yield integral = %g, by-number integral = %g", byYield, byNumber)
	}
}

func TestIntegrateEmptyInterval(t *testing.T) {
	f, err := New(Chabrier, 2.3, 0.1, 100)
	if err != nil {
		t.Fatal(err)
	}
	if v := f.Integrate(1, 1, 0, ByMass, nil); v != 0 {
		t.Errorf("zero-width integral = %g, want 0", v)
	}
	if v := f.Integrate(1.5, 1, 0, ByMass, nil); v != 0 {
		t.Errorf("inverted-interval integral = %g, want 0", v)
	}
	// Intervals entirely outside the sampled range clamp to nothing.
	if v := f.Integrate(3, 4, 0, ByMass, nil); v != 0 {
		t.Errorf("out-of-range integral = %g, want 0", v)
	}
}

func TestBinsClamped(t *testing.T) {
	f, err := New(Chabrier, 2.3, 0.1, 100)
	if err != nil {
		t.Fatal(err)
	}
	low, high := f.Bins(-5, 5)
	if low != 0 || high != f.NBins()-1 {
		t.Errorf("Bins(-5, 5) = (%d, %d), want (0, %d)", low, high, f.NBins()-1)
	}
	low, high = f.Bins(0.9, 1.1)
	if low < 0 || high > f.NBins()-1 || low > high {
		t.Errorf("Bins(0.9, 1.1) = (%d, %d): out of order or range", low, high)
	}
	if lm := f.BinMass(low); math.Log10(lm) > 0.9+1e-12 {
		t.Errorf("low bin mass %g above interval start", lm)
	}
	if hm := f.BinMass(high); math.Log10(hm) < 1.1-1e-12 {
		t.Errorf("high bin mass %g below interval end", hm)
	}
}

// The integral over a partitioned interval must equal the integral over
// the whole, since partial end bins are handled exactly.
func TestIntegrateAdditive(t *testing.T) {
	f, err := New(Chabrier, 2.3, 0.1, 100)
	if err != nil {
		t.Fatal(err)
	}
	a, m, b := math.Log10(0.3), math.Log10(4.7), math.Log10(62)
	whole := f.Integrate(a, b, 0, ByMass, nil)
	parts := f.Integrate(a, m, 0, ByMass, nil) + f.Integrate(m, b, 0, ByMass, nil)
	if diff := math.Abs(whole - parts); diff > tolerance {
		t.Errorf("partitioned integral differs from whole by %g", diff)
	}
}
