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
	"math"

	"github.com/ctessum/sparse"

	"github.com/stellarmodel/starchem/imf"
)

// LifetimeTable holds tabulated stellar lifetimes as a function of
// birth mass and metallicity. It is immutable after load.
type LifetimeTable struct {
	// Mass is the stellar mass axis [Msun], ascending.
	Mass []float64

	// Metallicity is the metallicity axis [mass fraction], ascending.
	Metallicity []float64

	// DyingTime holds log10(lifetime [yr]) on a (metallicity, mass)
	// grid. Lifetimes decrease with mass at fixed metallicity.
	DyingTime *sparse.DenseArray
}

func (t *LifetimeTable) check() error {
	if len(t.Mass) < 2 || len(t.Metallicity) < 2 {
		return fmt.Errorf("starchem: lifetime table axes too short (%d mass, %d metallicity knots)",
			len(t.Mass), len(t.Metallicity))
	}
	if err := checkAscending("lifetime mass", t.Mass); err != nil {
		return err
	}
	if err := checkAscending("lifetime metallicity", t.Metallicity); err != nil {
		return err
	}
	if len(t.DyingTime.Shape) != 2 || t.DyingTime.Shape[0] != len(t.Metallicity) ||
		t.DyingTime.Shape[1] != len(t.Mass) {
		return fmt.Errorf("starchem: lifetime grid shape %v does not match axes (%d×%d)",
			t.DyingTime.Shape, len(t.Metallicity), len(t.Mass))
	}
	for _, v := range t.DyingTime.Elements {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("starchem: non-finite value in lifetime grid")
		}
	}
	return nil
}

// RawYieldTable holds a yield table as stored in the yield-table
// collection, before preparation for use by the enrichment model.
type RawYieldTable struct {
	// Mass is the stellar mass axis [Msun], ascending.
	Mass []float64

	// Metallicity is the metallicity axis [mass fraction], ascending.
	Metallicity []float64

	// Yield is the newly synthesized mass of each element on a
	// (metallicity, element, mass) grid [Msun].
	Yield *sparse.DenseArray

	// Ejecta is the pre-existing element mass expelled, on a
	// (metallicity, mass) grid [Msun].
	Ejecta *sparse.DenseArray

	// TotalMetals is the total newly synthesized metal mass on a
	// (metallicity, mass) grid [Msun].
	TotalMetals *sparse.DenseArray
}

func (t *RawYieldTable) check(name string) error {
	nz, nm := len(t.Metallicity), len(t.Mass)
	if nm < 2 || nz < 1 {
		return fmt.Errorf("starchem: %s yield table axes too short (%d mass, %d metallicity knots)", name, nm, nz)
	}
	if err := checkAscending(name+" mass", t.Mass); err != nil {
		return err
	}
	if err := checkAscending(name+" metallicity", t.Metallicity); err != nil {
		return err
	}
	if len(t.Yield.Shape) != 3 || t.Yield.Shape[0] != nz ||
		t.Yield.Shape[1] != NElements || t.Yield.Shape[2] != nm {
		return fmt.Errorf("starchem: %s yield grid shape %v does not match axes (%d×%d×%d)",
			name, t.Yield.Shape, nz, NElements, nm)
	}
	for _, g := range []*sparse.DenseArray{t.Ejecta, t.TotalMetals} {
		if len(g.Shape) != 2 || g.Shape[0] != nz || g.Shape[1] != nm {
			return fmt.Errorf("starchem: %s ejecta grid shape %v does not match axes (%d×%d)",
				name, g.Shape, nz, nm)
		}
	}
	for _, g := range []*sparse.DenseArray{t.Yield, t.Ejecta, t.TotalMetals} {
		for _, v := range g.Elements {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("starchem: non-finite value in %s yield table", name)
			}
		}
	}
	return nil
}

// prepare resamples the table onto the IMF mass-bin grid and converts
// the metallicity axis to log10, so that per-mass-bin yields can be
// staged directly against the IMF integration bins. factor, if
// non-nil, multiplies the synthesized yield of each element.
func (t *RawYieldTable) prepare(f *imf.IMF, factor []float64) (*YieldTable, error) {
	nz := len(t.Metallicity)
	nb := f.NBins()
	p := &YieldTable{
		Metallicity: make([]float64, nz),
		Yield:       sparse.ZerosDense(nz, NElements, nb),
		Ejecta:      sparse.ZerosDense(nz, nb),
		TotalMetals: sparse.ZerosDense(nz, nb),
	}
	for iz, z := range t.Metallicity {
		lz := math.Log10(z)
		if math.IsInf(lz, -1) {
			lz = logMinMetallicity
		}
		p.Metallicity[iz] = lz
		for k := 0; k < nb; k++ {
			m := f.BinMass(k)
			for e := 0; e < NElements; e++ {
				v := interpMass(t.Mass, m, func(im int) float64 { return t.Yield.Get(iz, e, im) })
				if factor != nil {
					v *= factor[e]
				}
				p.Yield.Set(v, iz, e, k)
			}
			p.Ejecta.Set(interpMass(t.Mass, m, func(im int) float64 { return t.Ejecta.Get(iz, im) }), iz, k)
			p.TotalMetals.Set(interpMass(t.Mass, m, func(im int) float64 { return t.TotalMetals.Get(iz, im) }), iz, k)
		}
	}
	return p, nil
}

// YieldTable is a yield table prepared for the enrichment model: the
// mass axis matches the IMF integration bins and the metallicity axis
// is log10. It is immutable after preparation.
type YieldTable struct {
	// Metallicity is the log10 metallicity axis, ascending.
	Metallicity []float64

	// Yield is newly synthesized element mass on a
	// (metallicity, element, IMF bin) grid [Msun].
	Yield *sparse.DenseArray

	// Ejecta is pre-existing ejected mass on a (metallicity, IMF bin)
	// grid [Msun].
	Ejecta *sparse.DenseArray

	// TotalMetals is total synthesized metal mass on a
	// (metallicity, IMF bin) grid [Msun].
	TotalMetals *sparse.DenseArray
}

// metallicityBin locates the metallicity bins bracketing logZ [log10
// mass fraction] and the interpolation weight between them. At or
// below the metallicity floor only the bottom bin contributes; above
// the covered range the top bin is used with no interpolation.
func (t *YieldTable) metallicityBin(logZ float64) (izLow, izHigh int, dz float64) {
	if logZ <= logMinMetallicity {
		return 0, 0, 0
	}
	nz := len(t.Metallicity)
	j := 0
	for j < nz-1 && logZ > t.Metallicity[j+1] {
		j++
	}
	izLow = j
	izHigh = izLow + 1
	if izHigh > nz-1 {
		izHigh = nz - 1
	}
	if logZ >= t.Metallicity[0] && logZ <= t.Metallicity[nz-1] {
		dz = logZ - t.Metallicity[izLow]
	}
	if deltaZ := t.Metallicity[izHigh] - t.Metallicity[izLow]; deltaZ > 0 {
		dz /= deltaZ
	} else {
		dz = 0
	}
	return izLow, izHigh, dz
}

// SNIaYields holds the fixed per-element yield of a single Type Ia
// supernova [Msun] plus the total metal mass it ejects. SNIa ejecta
// contain no hydrogen or helium, so the total metal yield equals the
// total ejected mass.
type SNIaYields struct {
	Yield       [NElements]float64
	TotalMetals float64
}

func (y *SNIaYields) check() error {
	for e, v := range y.Yield {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("starchem: non-finite SNIa yield for %s", ElementNames[e])
		}
	}
	if math.IsNaN(y.TotalMetals) || y.TotalMetals < 0 {
		return fmt.Errorf("starchem: invalid SNIa total metal yield %g", y.TotalMetals)
	}
	if y.Yield[ElemH] != 0 || y.Yield[ElemHe] != 0 {
		return fmt.Errorf("starchem: SNIa yields contain hydrogen or helium; element ordering is wrong")
	}
	return nil
}

// checkAscending verifies that axis values are finite and strictly
// increasing.
func checkAscending(name string, axis []float64) error {
	for i, v := range axis {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("starchem: non-finite %s knot at index %d", name, i)
		}
		if i > 0 && v <= axis[i-1] {
			return fmt.Errorf("starchem: %s axis not sorted ascending at index %d", name, i)
		}
	}
	return nil
}

// interpMass linearly interpolates a table value to stellar mass m
// [Msun], clamping to the end values outside the tabulated range.
func interpMass(mass []float64, m float64, val func(im int) float64) float64 {
	n := len(mass)
	if m <= mass[0] {
		return val(0)
	}
	if m >= mass[n-1] {
		return val(n - 1)
	}
	i := 0
	for i < n-1 && mass[i+1] < m {
		i++
	}
	dm := (m - mass[i]) / (mass[i+1] - mass[i])
	return (1-dm)*val(i) + dm*val(i+1)
}
