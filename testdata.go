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

	"github.com/ctessum/sparse"

	"github.com/stellarmodel/starchem/imf"
)

// EnrichTestTables returns a synthetic yield-table collection for use in
// testing. The lifetime grid follows log10(t [yr]) = 10 - 2.5 log10(m) +
// 8 Z, and the channel yields are linear in stellar mass, so test cases
// can compute expected interpolated values in closed form.
func EnrichTestTables() *TableSet {
	lifetimeMass := []float64{0.8, 1, 2, 4, 6, 8, 16, 32, 64, 100}
	lifetimeZ := []float64{0.0004, 0.004, 0.02, 0.05}
	dying := sparse.ZerosDense(len(lifetimeZ), len(lifetimeMass))
	for iz, z := range lifetimeZ {
		for im, m := range lifetimeMass {
			dying.Set(10-2.5*math.Log10(m)+8*z, iz, im)
		}
	}

	sniiMass := []float64{6, 8, 15, 30, 60, 100}
	sniiZ := []float64{0.0004, 0.004, 0.02}
	sniiYieldPerMass := [NElements]float64{
		ElemH: -0.02, ElemHe: 0.01, ElemC: 0.005, ElemN: 0.001,
		ElemO: 0.02, ElemNe: 0.004, ElemMg: 0.002, ElemSi: 0.003, ElemFe: 0.002,
	}
	snii := linearYieldTable(sniiMass, sniiZ, sniiYieldPerMass, 0.9, 0.05)

	agbMass := []float64{0.85, 1, 2, 4, 6}
	agbZ := []float64{0.004, 0.008, 0.019}
	agbYieldPerMass := [NElements]float64{
		ElemH: -0.004, ElemHe: 0.003, ElemC: 0.002, ElemN: 0.0005,
		ElemO: 0.0002, ElemNe: 5e-5, ElemMg: 2e-5, ElemSi: 1e-5, ElemFe: 0,
	}
	agb := linearYieldTable(agbMass, agbZ, agbYieldPerMass, 0.4, 0.008)

	return &TableSet{
		Lifetimes: &LifetimeTable{
			Mass:        lifetimeMass,
			Metallicity: lifetimeZ,
			DyingTime:   dying,
		},
		SNII: snii,
		AGB:  agb,
		SNIa: &SNIaYields{
			Yield: [NElements]float64{
				ElemC: 0.05, ElemN: 1e-6, ElemO: 0.14, ElemNe: 0.005,
				ElemMg: 0.009, ElemSi: 0.15, ElemFe: 0.74,
			},
			TotalMetals: 1.23,
		},
	}
}

// linearYieldTable builds a raw yield table whose grids are linear in
// stellar mass with the given per-element slopes, scaled per metallicity
// row by (1 + 5 Z).
func linearYieldTable(mass, metallicity []float64, yieldPerMass [NElements]float64,
	ejectaPerMass, metalsPerMass float64) *RawYieldTable {
	nz, nm := len(metallicity), len(mass)
	t := &RawYieldTable{
		Mass:        mass,
		Metallicity: metallicity,
		Yield:       sparse.ZerosDense(nz, NElements, nm),
		Ejecta:      sparse.ZerosDense(nz, nm),
		TotalMetals: sparse.ZerosDense(nz, nm),
	}
	for iz, z := range metallicity {
		zfac := 1 + 5*z
		for im, m := range mass {
			for e := 0; e < NElements; e++ {
				t.Yield.Set(yieldPerMass[e]*m*zfac, iz, e, im)
			}
			t.Ejecta.Set(ejectaPerMass*m, iz, im)
			t.TotalMetals.Set(metalsPerMass*m*zfac, iz, im)
		}
	}
	return t
}

// EnrichTestData returns enrichment model properties built from the
// synthetic tables, a Chabrier IMF over [0.1, 100] Msun and default
// options. It panics on error because the synthetic inputs are fixed.
func EnrichTestData() *StarsProperties {
	f, err := imf.New(imf.Chabrier, 2.3, 0.1, 100)
	if err != nil {
		panic(err)
	}
	props, err := NewStarsProperties(Portinari, f, EnrichTestTables(), Options{
		SNIaEfficiency:   2.0e-3,
		SNIaTimescaleGyr: 2.0,
		SNIaMassTransfer: true,
		SNIIMassTransfer: true,
		AGBMassTransfer:  true,
	})
	if err != nil {
		panic(err)
	}
	return props
}

// EnrichTestParticle returns a star particle of roughly solar
// composition for use in testing. Age is in Gyr when used with
// EnrichTestCosmology.
func EnrichTestParticle(ageGyr float64) *StarParticle {
	return &StarParticle{
		ID:       1,
		Mass:     1,
		MassInit: 1,
		Age:      ageGyr,
		Chemistry: ChemistryData{
			MetalMassFractionTotal: 0.0129,
			MetalMassFraction: [NElements]float64{
				ElemH: 0.7065, ElemHe: 0.2806, ElemC: 0.00207, ElemN: 0.000836,
				ElemO: 0.00549, ElemNe: 0.00141, ElemMg: 0.000591,
				ElemSi: 0.000683, ElemFe: 0.0011,
			},
		},
	}
}

// EnrichTestCosmology returns unit conversions where the internal time
// unit is one Gyr.
func EnrichTestCosmology() *Cosmology {
	return &Cosmology{TimeToGyr: 1}
}
