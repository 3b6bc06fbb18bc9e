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

	"github.com/stellarmodel/starchem/imf"
)

// propsWithModel rebuilds the test properties with a different lifetime
// model.
func propsWithModel(t *testing.T, model LifetimeModel) *StarsProperties {
	t.Helper()
	f, err := imf.New(imf.Chabrier, 2.3, 0.1, 100)
	if err != nil {
		t.Fatal(err)
	}
	props, err := NewStarsProperties(model, f, EnrichTestTables(), Options{
		SNIaEfficiency:   2.0e-3,
		SNIaTimescaleGyr: 2.0,
		SNIaMassTransfer: true,
		SNIIMassTransfer: true,
		AGBMassTransfer:  true,
	})
	if err != nil {
		t.Fatal(err)
	}
	return props
}

// Older populations must have lower (or equal, once clamped) dying
// masses, for every lifetime model.
func TestDyingMassMonotonic(t *testing.T) {
	ages := []float64{1e-4, 1e-3, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 13}
	for _, model := range []LifetimeModel{PadovaniMatteucci, MaederMeynet, Portinari} {
		props := propsWithModel(t, model)
		for _, z := range []float64{0.0004, 0.0129, 0.05} {
			prev := math.Inf(1)
			for _, age := range ages {
				mass, err := props.DyingMassMsun(age, z)
				if err != nil {
					t.Fatal(err)
				}
				if mass > prev {
					t.Errorf("%v Z=%g: dying mass %g at %g Gyr exceeds %g at the previous age",
						model, z, mass, age, prev)
				}
				if mass > props.IMF.MaxMass() {
					t.Errorf("%v Z=%g: dying mass %g exceeds IMF maximum %g",
						model, z, mass, props.IMF.MaxMass())
				}
				prev = mass
			}
		}
	}
}

// For ages younger than the lifetime of the most massive star, no star
// has died yet and the dying mass sits at the IMF maximum.
func TestDyingMassYoungPopulation(t *testing.T) {
	for _, model := range []LifetimeModel{PadovaniMatteucci, MaederMeynet, Portinari} {
		props := propsWithModel(t, model)
		mass, err := props.DyingMassMsun(1e-5, 0.02)
		if err != nil {
			t.Fatal(err)
		}
		if mass != props.IMF.MaxMass() {
			t.Errorf("%v: dying mass at 1e-5 Gyr = %g, want IMF maximum %g",
				model, mass, props.IMF.MaxMass())
		}
	}
}

// DyingMassMsun inverts LifetimeGyr. At a tabulated metallicity knot the
// Portinari interpolations are exact inverses of each other; the
// Maeder-Meynet fits invert exactly within each piecewise branch.
func TestLifetimeRoundTripExact(t *testing.T) {
	cases := []struct {
		model  LifetimeModel
		z      float64
		masses []float64
	}{
		{Portinari, 0.02, []float64{1, 1.5, 3, 5, 8, 12, 24, 48}},
		{MaederMeynet, 0.02, []float64{1.1, 2, 5, 10, 30}},
	}
	for _, c := range cases {
		props := propsWithModel(t, c.model)
		for _, mass := range c.masses {
			lifetime, err := props.LifetimeGyr(mass, c.z)
			if err != nil {
				t.Fatal(err)
			}
			back, err := props.DyingMassMsun(lifetime, c.z)
			if err != nil {
				t.Fatal(err)
			}
			if diff := math.Abs(back/mass - 1); diff > 1e-9 {
				t.Errorf("%v: round trip of %g Msun through %g Gyr gives %g Msun (diff %g)",
					c.model, mass, lifetime, back, diff)
			}
		}
	}
}

// The Padovani-Matteucci forward and inverse fits use slightly different
// published constants, so the round trip is only approximate.
func TestLifetimeRoundTripPadovaniMatteucci(t *testing.T) {
	props := propsWithModel(t, PadovaniMatteucci)
	for _, mass := range []float64{1, 2, 4, 6} {
		lifetime, err := props.LifetimeGyr(mass, 0.02)
		if err != nil {
			t.Fatal(err)
		}
		back, err := props.DyingMassMsun(lifetime, 0.02)
		if err != nil {
			t.Fatal(err)
		}
		if diff := math.Abs(back/mass - 1); diff > 0.05 {
			t.Errorf("round trip of %g Msun through %g Gyr gives %g Msun (relative diff %g)",
				mass, lifetime, back, diff)
		}
	}
}

// Metallicities outside the tabulated range clamp to the edge rows.
func TestPortinariMetallicityClamp(t *testing.T) {
	props := propsWithModel(t, Portinari)
	lowEdge, err := props.DyingMassMsun(5, 0.0004)
	if err != nil {
		t.Fatal(err)
	}
	below, err := props.DyingMassMsun(5, 1e-8)
	if err != nil {
		t.Fatal(err)
	}
	if below != lowEdge {
		t.Errorf("dying mass below table range = %g, want edge value %g", below, lowEdge)
	}
	highEdge, err := props.DyingMassMsun(5, 0.05)
	if err != nil {
		t.Fatal(err)
	}
	above, err := props.DyingMassMsun(5, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	if above != highEdge {
		t.Errorf("dying mass above table range = %g, want edge value %g", above, highEdge)
	}
}

// With the tabulated model, a population whose log age falls between two
// grid lifetimes dies at a mass strictly inside the corresponding pair
// of mass knots, and ageing across a timestep moves the dying mass down
// without leaving the bracket.
func TestPortinariDyingMassBracket(t *testing.T) {
	props := propsWithModel(t, Portinari)
	const ageGyr, z, dtGyr = 5.0, 0.02, 0.1
	lt := props.Lifetimes

	iz := -1
	for i, v := range lt.Metallicity {
		if v == z {
			iz = i
		}
	}
	if iz < 0 {
		t.Fatalf("metallicity %g is not a knot of the test lifetime table", z)
	}

	logAgeYr := math.Log10(ageGyr * 1e9)
	lo := -1
	for i := 0; i < len(lt.Mass)-1; i++ {
		if lt.DyingTime.Get(iz, i) >= logAgeYr && logAgeYr > lt.DyingTime.Get(iz, i+1) {
			lo = i
			break
		}
	}
	if lo < 0 {
		t.Fatalf("log age %g yr is outside the tabulated lifetime range", logAgeYr)
	}

	start, err := props.DyingMassMsun(ageGyr, z)
	if err != nil {
		t.Fatal(err)
	}
	end, err := props.DyingMassMsun(ageGyr+dtGyr, z)
	if err != nil {
		t.Fatal(err)
	}
	for _, mass := range []float64{start, end} {
		if mass <= lt.Mass[lo] || mass >= lt.Mass[lo+1] {
			t.Errorf("dying mass %g Msun is not strictly inside the knot interval (%g, %g)",
				mass, lt.Mass[lo], lt.Mass[lo+1])
		}
	}
	if end >= start {
		t.Errorf("dying mass grew from %g to %g Msun across the timestep", start, end)
	}
}

// The synthetic lifetime grid follows a closed form, so interpolation at
// a grid knot must reproduce it exactly.
func TestPortinariLifetimeAtKnot(t *testing.T) {
	props := propsWithModel(t, Portinari)
	const mass, z = 8.0, 0.02
	want := math.Pow(10, 10-2.5*math.Log10(mass)+8*z) / 1e9
	got, err := props.LifetimeGyr(mass, z)
	if err != nil {
		t.Fatal(err)
	}
	if diff := math.Abs(got/want - 1); diff > 1e-12 {
		t.Errorf("lifetime at grid knot = %g Gyr, want %g Gyr", got, want)
	}
}
