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
	"os"
	"path/filepath"
	"testing"

	"github.com/stellarmodel/starchem"
)

func TestParticlesRoundTrip(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "particles.csv")

	a := starchem.EnrichTestParticle(5)
	a.ID = 7
	a.Pos = [3]float64{1, 2, 3}
	a.Vel = [3]float64{-0.5, 0.25, 0}
	a.TimeSinceEnrichGyr = 4.5
	b := starchem.EnrichTestParticle(0.02)
	b.ID = 8
	b.Mass = 0.5
	want := starchem.Population{a, b}

	if err := WriteParticles(fname, want); err != nil {
		t.Fatal(err)
	}
	got, err := ReadParticles(fname)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("read %d particles, want %d", len(got), len(want))
	}
	for i := range want {
		if *got[i] != *want[i] {
			t.Errorf("particle %d does not round-trip:\n%+v\n%+v", i, got[i], want[i])
		}
	}
}

func TestReadParticlesMissingColumn(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "particles.csv")
	if err := WriteParticles(fname, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadParticles(fname); err != nil {
		t.Errorf("empty population with full header: unexpected error %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(bad, []byte("ID,Age\n1,5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadParticles(bad); err == nil {
		t.Error("missing columns: expected error")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	tablePath := filepath.Join(dir, "yields.nc")
	particlePath := filepath.Join(dir, "particles.csv")
	outputPath := filepath.Join(dir, "out.csv")

	if err := starchem.WriteTables(tablePath, starchem.EnrichTestTables()); err != nil {
		t.Fatal(err)
	}
	old := starchem.EnrichTestParticle(5)
	old.ID = 1
	old.TimeSinceEnrichGyr = 4.9
	young := starchem.EnrichTestParticle(0.02)
	young.ID = 2
	if err := WriteParticles(particlePath, starchem.Population{old, young}); err != nil {
		t.Fatal(err)
	}

	Cfg.Set("YieldTables", tablePath)
	Cfg.Set("Timestep", 0.01)
	Cfg.Set("NumSteps", 2)
	defer func() {
		Cfg.Set("YieldTables", "yields.nc")
		Cfg.Set("Timestep", 0.01)
		Cfg.Set("NumSteps", 1)
	}()

	if err := Run(particlePath, outputPath, Cfg); err != nil {
		t.Fatal(err)
	}

	got, err := ReadParticles(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("output has %d particles, want 2", len(got))
	}
	// Ages advance by one timestep between the two steps.
	if got[0].Age <= 5 || got[1].Age <= 0.02 {
		t.Errorf("particle ages did not advance: %g, %g", got[0].Age, got[1].Age)
	}
}
