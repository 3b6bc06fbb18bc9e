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

	"github.com/stellarmodel/starchem/imf"
)

// integrateYields evaluates a prepared yield table over the dying-mass
// interval [log10MinMass, log10MaxMass] [log10 Msun] for particle sp.
//
// For each element it stages, into scratch, the per-mass-bin sum of
// newly synthesized yield and pre-existing ejecta weighted by the
// particle's own composition, interpolated between the two metallicity
// rows bracketing the particle metallicity, then integrates the staged
// values against the IMF. metals holds the integrated mass of each
// element; metalMass the integrated total metal mass; ejectaMass the
// integrated pre-existing ejecta mass used as the normalization target.
// Negative integrated masses are clamped to zero.
//
// scratch must hold one value per IMF mass bin and must not be shared
// between concurrent callers; only bins overlapping the interval are
// written.
func integrateYields(t *YieldTable, f *imf.IMF, sp *StarParticle,
	log10MinMass, log10MaxMass float64, scratch []float64) (metals [NElements]float64, metalMass, ejectaMass float64) {

	binLow, binHigh := f.Bins(log10MinMass, log10MaxMass)
	izLow, izHigh, dz := t.metallicityBin(math.Log10(sp.Chemistry.MetalMassFractionTotal))

	for e := 0; e < NElements; e++ {
		for k := binLow; k <= binHigh; k++ {
			scratch[k] = (1-dz)*(t.Yield.Get(izLow, e, k)+
				sp.Chemistry.MetalMassFraction[e]*t.Ejecta.Get(izLow, k)) +
				dz*(t.Yield.Get(izHigh, e, k)+
					sp.Chemistry.MetalMassFraction[e]*t.Ejecta.Get(izHigh, k))
		}
		metals[e] = f.Integrate(log10MinMass, log10MaxMass, 0, imf.ByYield, scratch)
	}

	for k := binLow; k <= binHigh; k++ {
		scratch[k] = (1-dz)*(t.TotalMetals.Get(izLow, k)+
			sp.Chemistry.MetalMassFractionTotal*t.Ejecta.Get(izLow, k)) +
			dz*(t.TotalMetals.Get(izHigh, k)+
				sp.Chemistry.MetalMassFractionTotal*t.Ejecta.Get(izHigh, k))
	}
	metalMass = f.Integrate(log10MinMass, log10MaxMass, 0, imf.ByYield, scratch)

	for e := range metals {
		if metals[e] < 0 {
			metals[e] = 0
		}
	}
	if metalMass < 0 {
		metalMass = 0
	}

	for k := binLow; k <= binHigh; k++ {
		scratch[k] = (1-dz)*t.Ejecta.Get(izLow, k) + dz*t.Ejecta.Get(izHigh, k)
	}
	ejectaMass = f.Integrate(log10MinMass, log10MaxMass, 0, imf.ByYield, scratch)

	return metals, metalMass, ejectaMass
}
