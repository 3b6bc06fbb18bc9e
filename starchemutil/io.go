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
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/stellarmodel/starchem"
)

// Particle files are CSV with a header row. Columns are matched by
// name, so input files may carry extra columns (such as the output
// columns of a previous run) in any order.
var inputColumns = []string{
	"ID", "PosX", "PosY", "PosZ", "VelX", "VelY", "VelZ",
	"Mass", "MassInit", "Age", "MetalMassFractionTotal",
}

func init() {
	for _, name := range starchem.ElementNames {
		inputColumns = append(inputColumns, "MassFraction"+name)
	}
	inputColumns = append(inputColumns, "TimeSinceEnrichGyr")
}

// outputColumns are the per-step enrichment results appended to the
// input columns on write.
var outputColumns = []string{
	"MetalMassReleased", "MassFromSNIa", "MetalsFromSNIa", "IronFromSNIa",
	"MassFromSNII", "MetalsFromSNII", "MassFromAGB", "MetalsFromAGB", "NumSNIa",
}

// ReadParticles reads a star particle population from the CSV file at
// filename.
func ReadParticles(filename string) (starchem.Population, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("starchem: opening particle file: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("starchem: reading particle file %s: %v", filename, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("starchem: particle file %s has no header row", filename)
	}

	col := make(map[string]int)
	for i, name := range rows[0] {
		col[name] = i
	}
	for _, name := range inputColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("starchem: particle file %s is missing column %s", filename, name)
		}
	}

	pop := make(starchem.Population, 0, len(rows)-1)
	for ir, row := range rows[1:] {
		var rowErr error
		field := func(name string) float64 {
			v, err := strconv.ParseFloat(row[col[name]], 64)
			if err != nil && rowErr == nil {
				rowErr = fmt.Errorf("starchem: particle file %s row %d column %s: %v",
					filename, ir+2, name, err)
			}
			return v
		}
		sp := &starchem.StarParticle{
			ID:   int64(field("ID")),
			Pos:  [3]float64{field("PosX"), field("PosY"), field("PosZ")},
			Vel:  [3]float64{field("VelX"), field("VelY"), field("VelZ")},
			Mass: field("Mass"), MassInit: field("MassInit"),
			Age:                field("Age"),
			TimeSinceEnrichGyr: field("TimeSinceEnrichGyr"),
		}
		sp.Chemistry.MetalMassFractionTotal = field("MetalMassFractionTotal")
		for e, name := range starchem.ElementNames {
			sp.Chemistry.MetalMassFraction[e] = field("MassFraction" + name)
		}
		if rowErr != nil {
			return nil, rowErr
		}
		pop = append(pop, sp)
	}
	return pop, nil
}

// WriteParticles writes the population to a CSV file at filename,
// including the per-step enrichment results.
func WriteParticles(filename string, pop starchem.Population) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("starchem: creating particle file: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := make([]string, 0, len(inputColumns)+len(outputColumns)+starchem.NElements)
	header = append(header, inputColumns...)
	header = append(header, outputColumns...)
	for _, name := range starchem.ElementNames {
		header = append(header, "Released"+name)
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("starchem: writing particle file %s: %v", filename, err)
	}

	num := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for _, sp := range pop {
		row := []string{
			strconv.FormatInt(sp.ID, 10),
			num(sp.Pos[0]), num(sp.Pos[1]), num(sp.Pos[2]),
			num(sp.Vel[0]), num(sp.Vel[1]), num(sp.Vel[2]),
			num(sp.Mass), num(sp.MassInit), num(sp.Age),
			num(sp.Chemistry.MetalMassFractionTotal),
		}
		for _, v := range sp.Chemistry.MetalMassFraction {
			row = append(row, num(v))
		}
		row = append(row, num(sp.TimeSinceEnrichGyr),
			num(sp.MetalMassReleased),
			num(sp.MassFromSNIa), num(sp.MetalsFromSNIa), num(sp.IronFromSNIa),
			num(sp.MassFromSNII), num(sp.MetalsFromSNII),
			num(sp.MassFromAGB), num(sp.MetalsFromAGB),
			num(sp.NumSNIa))
		for _, v := range sp.ElementsReleased {
			row = append(row, num(v))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("starchem: writing particle file %s: %v", filename, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("starchem: writing particle file %s: %v", filename, err)
	}
	return nil
}
