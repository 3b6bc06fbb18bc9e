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

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/stellarmodel/starchem"
)

// Run evolves the star particles in particleFile by the configured
// number of timesteps and writes the result to outputFile. Between
// steps the particle ages and SNIa delay-time windows advance by one
// timestep, so a multi-step run is equivalent to repeated single-step
// runs on the previous output.
func Run(particleFile, outputFile string, cfg *viper.Viper) error {
	props, err := BuildProperties(cfg)
	if err != nil {
		return err
	}
	pop, err := ReadParticles(particleFile)
	if err != nil {
		return err
	}
	cosmo := &starchem.Cosmology{TimeToGyr: cfg.GetFloat64("Cosmology.TimeToGyr")}
	if !(cosmo.TimeToGyr > 0) {
		return fmt.Errorf("starchem: non-positive time unit conversion %g", cosmo.TimeToGyr)
	}
	dt := cfg.GetFloat64("Timestep")
	if !(dt >= 0) {
		return fmt.Errorf("starchem: negative timestep %g", dt)
	}
	nSteps := cfg.GetInt("NumSteps")
	if nSteps < 1 {
		return fmt.Errorf("starchem: number of steps %d is less than one", nSteps)
	}

	log := logrus.WithFields(logrus.Fields{
		"particles": len(pop),
		"timestep":  dt,
	})
	log.Info("starting enrichment run")

	for step := 0; step < nSteps; step++ {
		if err := pop.Evolve(props, cosmo, dt); err != nil {
			return err
		}
		s := pop.Stats()
		log.WithFields(logrus.Fields{
			"step":              step + 1,
			"massReleased":      s.MassReleased,
			"metalMassReleased": s.MetalMassReleased,
			"numSNIa":           s.NumSNIa,
		}).Info("evolved population")

		if step == nSteps-1 {
			break
		}
		for _, sp := range pop {
			sp.Age += dt
			sp.TimeSinceEnrichGyr += dt * cosmo.TimeToGyr
		}
	}

	if err := WriteParticles(outputFile, pop); err != nil {
		return err
	}
	log.WithField("output", outputFile).Info("finished enrichment run")
	return nil
}
