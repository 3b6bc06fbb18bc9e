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
	"runtime"
	"sync"
)

// EvolveStar advances the chemical enrichment of one star particle by
// dt [internal time units]. It zeroes the particle's per-step
// accumulators, determines the stellar mass range dying during the
// step, and accumulates the mass returned through the SNIa, SNII and
// AGB channels. All other particle fields are left untouched.
//
// The computation is a pure function of the particle state and the
// read-only properties, so distinct particles may be evolved
// concurrently.
func EvolveStar(sp *StarParticle, props *StarsProperties, cosmo *Cosmology, dt float64) error {
	scratch := make([]float64, props.IMF.NBins())
	return evolveStar(sp, props, cosmo, dt, scratch)
}

func evolveStar(sp *StarParticle, props *StarsProperties, cosmo *Cosmology, dt float64, scratch []float64) error {
	sp.resetEnrichment()

	dtGyr := dt * cosmo.TimeToGyr
	ageGyr := sp.Age * cosmo.TimeToGyr

	// Mass interval of stars dying during this step. Older deaths are
	// at lower masses, so the interval upper bound comes from the age
	// at the start of the step.
	maxDyingMass, err := props.DyingMassMsun(ageGyr, sp.Chemistry.MetalMassFractionTotal)
	if err != nil {
		return err
	}
	minDyingMass, err := props.DyingMassMsun(ageGyr+dtGyr, sp.Chemistry.MetalMassFractionTotal)
	if err != nil {
		return err
	}

	log10MaxDyingMass := math.Log10(maxDyingMass)
	log10MinDyingMass := math.Log10(minDyingMass)

	if log10MinDyingMass > log10MaxDyingMass {
		return fmt.Errorf("starchem: min dying mass %g is greater than max dying mass %g",
			minDyingMass, maxDyingMass)
	}
	// A zero-width interval means no star dies this step; this happens
	// when both bounds sit at the IMF maximum mass.
	if log10MinDyingMass == log10MaxDyingMass {
		return nil
	}

	// SNIa must run first: it clips its own copy of the interval and
	// advances the time-since-enrichment counter, while SNII and AGB
	// consume the unclipped bounds.
	if err := evolveSNIa(log10MinDyingMass, log10MaxDyingMass, props, sp, dtGyr); err != nil {
		return err
	}
	if err := evolveSNII(log10MinDyingMass, log10MaxDyingMass, props, sp, scratch); err != nil {
		return err
	}
	return evolveAGB(log10MinDyingMass, log10MaxDyingMass, props, sp, scratch)
}

// Population is a set of star particles evolved together.
type Population []*StarParticle

// Evolve concurrently advances the enrichment of every particle in the
// population by dt [internal time units]. Each worker uses its own
// staging buffer, so particles may be evolved in parallel safely. The
// first error encountered is returned.
func (pop Population) Evolve(props *StarsProperties, cosmo *Cosmology, dt float64) error {
	nprocs := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup

	errs := make([]error, nprocs)
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			scratch := make([]float64, props.IMF.NBins())
			for ii := pp; ii < len(pop); ii += nprocs {
				if err := evolveStar(pop[ii], props, cosmo, dt, scratch); err != nil {
					errs[pp] = err
					return
				}
			}
		}(pp)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
