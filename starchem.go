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

// Package starchem models stellar chemical enrichment: given a star
// particle's age, metallicity and elapsed timestep it determines which
// stellar mass range dies in that interval and how much mass of each
// tracked element is returned to the surrounding medium through Type Ia
// supernovae, Type II supernovae and AGB winds.
package starchem

import (
	"fmt"
	"math"

	"github.com/stellarmodel/starchem/imf"
)

// Version gives the version number.
const Version = "0.3.0"

// Cosmology supplies the conversions between the surrounding
// simulation's internal units and the physical units used here.
type Cosmology struct {
	// TimeToGyr converts internal time units to Gyr.
	TimeToGyr float64
}

// TableSet groups the tables read from a yield-table collection.
type TableSet struct {
	Lifetimes *LifetimeTable
	SNII      *RawYieldTable
	AGB       *RawYieldTable
	SNIa      *SNIaYields
}

// Options holds the tunable parameters of the enrichment model.
type Options struct {
	// SNIaEfficiency is the number of Type Ia supernovae per unit
	// stellar mass formed over the full delay-time distribution.
	SNIaEfficiency float64

	// SNIaTimescaleGyr is the e-folding timescale of the SNIa
	// delay-time distribution [Gyr].
	SNIaTimescaleGyr float64

	// Mass transfer toggles per channel. A disabled channel still runs
	// its bookkeeping but contributes no mass.
	SNIaMassTransfer bool
	SNIIMassTransfer bool
	AGBMassTransfer  bool

	// TypeIIFactor optionally scales the synthesized SNII yield of
	// each element. Nil means no adjustment.
	TypeIIFactor []float64
}

// StarsProperties holds the read-only configuration and tables shared
// by all enrichment computations. Build it once at startup with
// NewStarsProperties; it is safe for concurrent use.
type StarsProperties struct {
	// LifetimeModel selects the stellar lifetime model.
	LifetimeModel LifetimeModel

	// Lifetimes is the tabulated lifetime grid, required when
	// LifetimeModel is Portinari.
	Lifetimes *LifetimeTable

	// YieldSNII and YieldAGB are the prepared channel yield tables.
	YieldSNII *YieldTable
	YieldAGB  *YieldTable

	// SNIa holds the fixed Type Ia yields.
	SNIa *SNIaYields

	// IMF is the initial mass function used to weight yields.
	IMF *imf.IMF

	Options
}

// NewStarsProperties validates the tables and prepares them for use by
// the enrichment model. The returned value is immutable.
func NewStarsProperties(model LifetimeModel, f *imf.IMF, tables *TableSet, opts Options) (*StarsProperties, error) {
	switch model {
	case PadovaniMatteucci, MaederMeynet, Portinari:
	default:
		return nil, fmt.Errorf("starchem: stellar lifetime model %d not defined", int(model))
	}
	if f == nil {
		return nil, fmt.Errorf("starchem: missing IMF")
	}
	if tables == nil || tables.SNII == nil || tables.AGB == nil || tables.SNIa == nil {
		return nil, fmt.Errorf("starchem: incomplete table set")
	}
	if model == Portinari {
		if tables.Lifetimes == nil {
			return nil, fmt.Errorf("starchem: Portinari lifetime model requires a lifetime table")
		}
		if err := tables.Lifetimes.check(); err != nil {
			return nil, err
		}
	}
	if err := tables.SNII.check("SNII"); err != nil {
		return nil, err
	}
	if err := tables.AGB.check("AGB"); err != nil {
		return nil, err
	}
	if err := tables.SNIa.check(); err != nil {
		return nil, err
	}
	if opts.TypeIIFactor != nil && len(opts.TypeIIFactor) != NElements {
		return nil, fmt.Errorf("starchem: TypeIIFactor has %d entries; want %d",
			len(opts.TypeIIFactor), NElements)
	}
	if !(opts.SNIaTimescaleGyr > 0) {
		return nil, fmt.Errorf("starchem: non-positive SNIa timescale %g Gyr", opts.SNIaTimescaleGyr)
	}
	if opts.SNIaEfficiency < 0 || math.IsNaN(opts.SNIaEfficiency) {
		return nil, fmt.Errorf("starchem: invalid SNIa efficiency %g", opts.SNIaEfficiency)
	}

	snii, err := tables.SNII.prepare(f, opts.TypeIIFactor)
	if err != nil {
		return nil, err
	}
	agb, err := tables.AGB.prepare(f, nil)
	if err != nil {
		return nil, err
	}
	return &StarsProperties{
		LifetimeModel: model,
		Lifetimes:     tables.Lifetimes,
		YieldSNII:     snii,
		YieldAGB:      agb,
		SNIa:          tables.SNIa,
		IMF:           f,
		Options:       opts,
	}, nil
}
