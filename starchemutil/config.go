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

package starchemutil

import (
	"fmt"
	"os"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/stellarmodel/starchem"
	"github.com/stellarmodel/starchem/imf"
)

// LifetimeModelFromName parses a stellar lifetime model name.
func LifetimeModelFromName(name string) (starchem.LifetimeModel, error) {
	switch name {
	case "Portinari":
		return starchem.Portinari, nil
	case "Padovani-Matteucci":
		return starchem.PadovaniMatteucci, nil
	case "Maeder-Meynet":
		return starchem.MaederMeynet, nil
	}
	return 0, fmt.Errorf("starchem: invalid lifetime model %q; "+
		`valid options are "Portinari", "Padovani-Matteucci" and "Maeder-Meynet"`, name)
}

// IMFModelFromName parses an initial mass function model name.
func IMFModelFromName(name string) (imf.Model, error) {
	switch name {
	case "Chabrier":
		return imf.Chabrier, nil
	case "PowerLaw":
		return imf.PowerLaw, nil
	}
	return 0, fmt.Errorf("starchem: invalid IMF model %q; "+
		`valid options are "Chabrier" and "PowerLaw"`, name)
}

// yieldFactors converts the configured per-element yield factor strings
// to numbers. An empty list means no adjustment.
func yieldFactors(values []string) ([]float64, error) {
	if len(values) == 0 {
		return nil, nil
	}
	if len(values) != starchem.NElements {
		return nil, fmt.Errorf("starchem: SNII.YieldFactors has %d entries; want %d or none",
			len(values), starchem.NElements)
	}
	factors := make([]float64, len(values))
	for i, v := range values {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, fmt.Errorf("starchem: invalid SNII yield factor for %s: %v",
				starchem.ElementNames[i], err)
		}
		factors[i] = f
	}
	return factors, nil
}

// BuildProperties loads the yield tables and assembles the enrichment
// model from the configuration.
func BuildProperties(cfg *viper.Viper) (*starchem.StarsProperties, error) {
	model, err := LifetimeModelFromName(cfg.GetString("Lifetimes.Model"))
	if err != nil {
		return nil, err
	}
	imfModel, err := IMFModelFromName(cfg.GetString("IMF.Model"))
	if err != nil {
		return nil, err
	}
	f, err := imf.New(imfModel,
		cfg.GetFloat64("IMF.Exponent"),
		cfg.GetFloat64("IMF.MinMassMsun"),
		cfg.GetFloat64("IMF.MaxMassMsun"))
	if err != nil {
		return nil, err
	}
	tables, err := starchem.LoadTables(os.ExpandEnv(cfg.GetString("YieldTables")))
	if err != nil {
		return nil, err
	}
	factors, err := yieldFactors(cfg.GetStringSlice("SNII.YieldFactors"))
	if err != nil {
		return nil, err
	}
	return starchem.NewStarsProperties(model, f, tables, starchem.Options{
		SNIaEfficiency:   cfg.GetFloat64("SNIa.Efficiency"),
		SNIaTimescaleGyr: cfg.GetFloat64("SNIa.TimescaleGyr"),
		SNIaMassTransfer: cfg.GetBool("SNIa.MassTransfer"),
		SNIIMassTransfer: cfg.GetBool("SNII.MassTransfer"),
		AGBMassTransfer:  cfg.GetBool("AGB.MassTransfer"),
		TypeIIFactor:     factors,
	})
}
