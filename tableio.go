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
	"os"
	"strings"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// The yield-table collection is a NetCDF file holding the variables
// below. Masses are in solar masses, metallicities are mass fractions,
// and lifetimes are log10 years. The global attribute "elements" lists
// the tracked element names in table order; it must match ElementNames
// so that the per-element grids and the SNIa yield vector (iron last)
// line up with the particle chemistry arrays.
const (
	varLifetimeMass        = "lifetime_mass"
	varLifetimeMetallicity = "lifetime_metallicity"
	varLifetimeDyingTime   = "lifetime_dyingtime"

	varSNIIMass        = "SNII_mass"
	varSNIIMetallicity = "SNII_metallicity"
	varSNIIYield       = "SNII_yield"
	varSNIIEjecta      = "SNII_ejecta"
	varSNIITotalMetals = "SNII_total_metals"

	varAGBMass        = "AGB_mass"
	varAGBMetallicity = "AGB_metallicity"
	varAGBYield       = "AGB_yield"
	varAGBEjecta      = "AGB_ejecta"
	varAGBTotalMetals = "AGB_total_metals"

	varSNIaYield       = "SNIa_yield"
	varSNIaTotalMetals = "SNIa_total_metals"
)

// LoadTables reads a yield-table collection from the NetCDF file at
// filename. The returned tables are unvalidated; NewStarsProperties
// performs the consistency checks.
func LoadTables(filename string) (*TableSet, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("starchem: opening yield table file: %v", err)
	}
	defer f.Close()
	ff, err := cdf.Open(f)
	if err != nil {
		return nil, fmt.Errorf("starchem: reading yield table file %s: %v", filename, err)
	}

	elems, ok := ff.Header.GetAttribute("", "elements").(string)
	if !ok {
		return nil, fmt.Errorf("starchem: yield table file %s is missing the elements attribute", filename)
	}
	if want := strings.Join(ElementNames, ","); elems != want {
		return nil, fmt.Errorf("starchem: yield table element ordering %q does not match %q", elems, want)
	}

	t := new(TableSet)
	readErr := func(dst **sparse.DenseArray, name string) func() error {
		return func() error {
			data, err := readTableVar(ff, name)
			if err != nil {
				return err
			}
			*dst = data
			return nil
		}
	}

	var lifetimeGrid, sniiYield, sniiEjecta, sniiTotalMetals,
		agbYield, agbEjecta, agbTotalMetals, sniaYield, sniaTotalMetals *sparse.DenseArray
	var lifetimeMass, lifetimeZ, sniiMass, sniiZ, agbMass, agbZ []float64

	for _, read := range []func() error{
		readVector(ff, varLifetimeMass, &lifetimeMass),
		readVector(ff, varLifetimeMetallicity, &lifetimeZ),
		readErr(&lifetimeGrid, varLifetimeDyingTime),
		readVector(ff, varSNIIMass, &sniiMass),
		readVector(ff, varSNIIMetallicity, &sniiZ),
		readErr(&sniiYield, varSNIIYield),
		readErr(&sniiEjecta, varSNIIEjecta),
		readErr(&sniiTotalMetals, varSNIITotalMetals),
		readVector(ff, varAGBMass, &agbMass),
		readVector(ff, varAGBMetallicity, &agbZ),
		readErr(&agbYield, varAGBYield),
		readErr(&agbEjecta, varAGBEjecta),
		readErr(&agbTotalMetals, varAGBTotalMetals),
		readErr(&sniaYield, varSNIaYield),
		readErr(&sniaTotalMetals, varSNIaTotalMetals),
	} {
		if err := read(); err != nil {
			return nil, err
		}
	}

	t.Lifetimes = &LifetimeTable{
		Mass:        lifetimeMass,
		Metallicity: lifetimeZ,
		DyingTime:   lifetimeGrid,
	}
	t.SNII = &RawYieldTable{
		Mass:        sniiMass,
		Metallicity: sniiZ,
		Yield:       sniiYield,
		Ejecta:      sniiEjecta,
		TotalMetals: sniiTotalMetals,
	}
	t.AGB = &RawYieldTable{
		Mass:        agbMass,
		Metallicity: agbZ,
		Yield:       agbYield,
		Ejecta:      agbEjecta,
		TotalMetals: agbTotalMetals,
	}
	if len(sniaYield.Elements) != NElements {
		return nil, fmt.Errorf("starchem: SNIa yield vector has %d elements; want %d",
			len(sniaYield.Elements), NElements)
	}
	snia := new(SNIaYields)
	copy(snia.Yield[:], sniaYield.Elements)
	snia.TotalMetals = sniaTotalMetals.Elements[0]
	t.SNIa = snia

	return t, nil
}

// readTableVar reads one variable out of the NetCDF file into a dense
// array.
func readTableVar(ff *cdf.File, name string) (*sparse.DenseArray, error) {
	dims := ff.Header.Lengths(name)
	if len(dims) == 0 {
		return nil, fmt.Errorf("starchem: yield table variable %v not in file", name)
	}
	r := ff.Reader(name, nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("starchem: reading yield table variable %s: %v", name, err)
	}
	data := sparse.ZerosDense(dims...)
	switch b := buf.(type) {
	case []float64:
		copy(data.Elements, b)
	case []float32:
		for i, v := range b {
			data.Elements[i] = float64(v)
		}
	default:
		return nil, fmt.Errorf("starchem: yield table variable %s has unsupported type %T", name, buf)
	}
	return data, nil
}

func readVector(ff *cdf.File, name string, dst *[]float64) func() error {
	return func() error {
		data, err := readTableVar(ff, name)
		if err != nil {
			return err
		}
		if len(data.Shape) != 1 {
			return fmt.Errorf("starchem: yield table variable %s has shape %v; want a vector", name, data.Shape)
		}
		*dst = data.Elements
		return nil
	}
}

// WriteTables writes a yield-table collection to a NetCDF file at
// filename, in the layout LoadTables reads.
func WriteTables(filename string, t *TableSet) error {
	lengths := map[string]int{
		"lifetime_z":    len(t.Lifetimes.Metallicity),
		"lifetime_mass": len(t.Lifetimes.Mass),
		"SNII_z":        len(t.SNII.Metallicity),
		"SNII_mass":     len(t.SNII.Mass),
		"AGB_z":         len(t.AGB.Metallicity),
		"AGB_mass":      len(t.AGB.Mass),
		"element":       NElements,
		"one":           1,
	}
	dimNames := []string{"lifetime_z", "lifetime_mass", "SNII_z", "SNII_mass",
		"AGB_z", "AGB_mass", "element", "one"}
	dimLengths := make([]int, len(dimNames))
	for i, name := range dimNames {
		dimLengths[i] = lengths[name]
	}
	h := cdf.NewHeader(dimNames, dimLengths)
	h.AddAttribute("", "elements", strings.Join(ElementNames, ","))

	vars := []struct {
		name string
		dims []string
		data []float64
	}{
		{varLifetimeMass, []string{"lifetime_mass"}, t.Lifetimes.Mass},
		{varLifetimeMetallicity, []string{"lifetime_z"}, t.Lifetimes.Metallicity},
		{varLifetimeDyingTime, []string{"lifetime_z", "lifetime_mass"}, t.Lifetimes.DyingTime.Elements},
		{varSNIIMass, []string{"SNII_mass"}, t.SNII.Mass},
		{varSNIIMetallicity, []string{"SNII_z"}, t.SNII.Metallicity},
		{varSNIIYield, []string{"SNII_z", "element", "SNII_mass"}, t.SNII.Yield.Elements},
		{varSNIIEjecta, []string{"SNII_z", "SNII_mass"}, t.SNII.Ejecta.Elements},
		{varSNIITotalMetals, []string{"SNII_z", "SNII_mass"}, t.SNII.TotalMetals.Elements},
		{varAGBMass, []string{"AGB_mass"}, t.AGB.Mass},
		{varAGBMetallicity, []string{"AGB_z"}, t.AGB.Metallicity},
		{varAGBYield, []string{"AGB_z", "element", "AGB_mass"}, t.AGB.Yield.Elements},
		{varAGBEjecta, []string{"AGB_z", "AGB_mass"}, t.AGB.Ejecta.Elements},
		{varAGBTotalMetals, []string{"AGB_z", "AGB_mass"}, t.AGB.TotalMetals.Elements},
		{varSNIaYield, []string{"element"}, t.SNIa.Yield[:]},
		{varSNIaTotalMetals, []string{"one"}, []float64{t.SNIa.TotalMetals}},
	}
	for _, v := range vars {
		h.AddVariable(v.name, v.dims, []float64{0})
	}
	h.Define()
	for _, err := range h.Check() {
		return fmt.Errorf("starchem: creating yield table file: %v", err)
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("starchem: creating yield table file: %v", err)
	}
	defer f.Close()
	ff, err := cdf.Create(f, h)
	if err != nil {
		return fmt.Errorf("starchem: creating yield table file %s: %v", filename, err)
	}
	for _, v := range vars {
		begin := make([]int, len(v.dims))
		end := make([]int, len(v.dims))
		for i, dim := range v.dims {
			end[i] = lengths[dim]
		}
		w := ff.Writer(v.name, begin, end)
		if _, err := w.Write(v.data); err != nil {
			return fmt.Errorf("starchem: writing yield table variable %s: %v", v.name, err)
		}
	}
	return nil
}
