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

// Package starchemutil translates configuration into starchem model
// runs: it holds the command-line interface, the configuration
// handling, and the particle input and output formats.
package starchemutil

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/stellarmodel/starchem"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to StarChem.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "YieldTables",
			usage: `
              YieldTables is the path to the NetCDF yield-table collection
              holding the stellar lifetime grid and the SNIa, SNII and AGB
              yields. The path can include environment variables.`,
			defaultVal: "yields.nc",
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), checkCmd.Flags()},
		},
		{
			name: "Particles",
			usage: `
              Particles is the path to the CSV file holding the star
              particles to evolve. The path can include environment
              variables.`,
			defaultVal: "particles.csv",
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path where the evolved particles are
              written. It can include environment variables.`,
			defaultVal: "starchem_output.csv",
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags()},
		},
		{
			name: "Timestep",
			usage: `
              Timestep is the length of each evolution step in internal
              time units.`,
			shorthand:  "t",
			defaultVal: 0.01,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags()},
		},
		{
			name: "NumSteps",
			usage: `
              NumSteps is the number of evolution steps to take. Particle
              ages advance by one timestep between steps.`,
			shorthand:  "n",
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags()},
		},
		{
			name: "Cosmology.TimeToGyr",
			usage: `
              Cosmology.TimeToGyr converts the simulation's internal time
              unit to Gyr.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags()},
		},
		{
			name: "Lifetimes.Model",
			usage: `
              Lifetimes.Model selects the stellar lifetime model. Valid
              options are "Portinari", "Padovani-Matteucci" and
              "Maeder-Meynet". Portinari uses the tabulated lifetime grid
              from the yield-table collection.`,
			defaultVal: "Portinari",
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), checkCmd.Flags()},
		},
		{
			name: "IMF.Model",
			usage: `
              IMF.Model selects the initial mass function. Valid options
              are "Chabrier" and "PowerLaw".`,
			defaultVal: "Chabrier",
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), checkCmd.Flags()},
		},
		{
			name: "IMF.Exponent",
			usage: `
              IMF.Exponent is the high-mass power-law slope of the initial
              mass function, by number.`,
			defaultVal: 2.3,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), checkCmd.Flags()},
		},
		{
			name: "IMF.MinMassMsun",
			usage: `
              IMF.MinMassMsun is the minimum stellar mass covered by the
              initial mass function [Msun].`,
			defaultVal: 0.1,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), checkCmd.Flags()},
		},
		{
			name: "IMF.MaxMassMsun",
			usage: `
              IMF.MaxMassMsun is the maximum stellar mass covered by the
              initial mass function [Msun].`,
			defaultVal: 100.0,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), checkCmd.Flags()},
		},
		{
			name: "SNIa.Efficiency",
			usage: `
              SNIa.Efficiency is the number of Type Ia supernovae per unit
              stellar mass formed over the full delay-time distribution.`,
			defaultVal: 2.0e-3,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), checkCmd.Flags()},
		},
		{
			name: "SNIa.TimescaleGyr",
			usage: `
              SNIa.TimescaleGyr is the e-folding timescale of the Type Ia
              supernova delay-time distribution [Gyr].`,
			defaultVal: 2.0,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), checkCmd.Flags()},
		},
		{
			name: "SNIa.MassTransfer",
			usage: `
              SNIa.MassTransfer controls whether the Type Ia supernova
              channel transfers mass to the surrounding medium. When false
              the channel still counts supernovae but moves no mass.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), checkCmd.Flags()},
		},
		{
			name: "SNII.MassTransfer",
			usage: `
              SNII.MassTransfer controls whether the Type II supernova
              channel transfers mass to the surrounding medium.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), checkCmd.Flags()},
		},
		{
			name: "SNII.YieldFactors",
			usage: `
              SNII.YieldFactors optionally scales the synthesized Type II
              yield of each tracked element. It must be empty or hold one
              value per element, in element order.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), checkCmd.Flags()},
		},
		{
			name: "AGB.MassTransfer",
			usage: `
              AGB.MassTransfer controls whether the AGB wind channel
              transfers mass to the surrounding medium.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), checkCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("STARCHEM")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(checkCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("starchem: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "starchem",
	Short: "A stellar chemical enrichment model.",
	Long: `StarChem computes the mass of heavy elements that an evolving stellar
population returns to the surrounding medium through Type Ia supernovae,
Type II supernovae and AGB winds.

Refer to the subcommand documentation for configuration options and default
settings. Configuration can be changed by using a configuration file (and
providing the path to the file using the --config flag), by using
command-line arguments, or by setting environment variables in the format
'STARCHEM_var' where 'var' is the name of the variable to be set. Refer to
https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of StarChem.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("StarChem v%s\n", starchem.Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evolve a star particle population.",
	Long: `run reads the star particles from the input file, advances their
chemical enrichment by the configured number of timesteps, and writes the
evolved particles to the output file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(
			os.ExpandEnv(Cfg.GetString("Particles")),
			os.ExpandEnv(Cfg.GetString("OutputFile")),
			Cfg,
		)
	},
	DisableAutoGenTag: true,
}

// checkCmd validates the yield tables and model configuration without
// running a simulation.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the yield tables and configuration",
	Long: `check loads the yield-table collection and builds the enrichment model
from the current configuration, reporting any validation errors without
evolving any particles.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		props, err := BuildProperties(Cfg)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"lifetimeModel": props.LifetimeModel.String(),
			"massBins":      props.IMF.NBins(),
			"minMassMsun":   props.IMF.MinMass(),
			"maxMassMsun":   props.IMF.MaxMass(),
		}).Info("yield tables and configuration are valid")
		return nil
	},
	DisableAutoGenTag: true,
}
