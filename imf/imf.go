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

// Package imf implements stellar initial mass functions and their
// integration over evenly spaced logarithmic mass bins.
package imf

import (
	"fmt"
	"math"
)

// nBins is the number of mass bins the IMF is sampled onto.
const nBins = 200

// Model selects the functional form of the IMF.
type Model int

const (
	// Chabrier is the Chabrier (2003) IMF: lognormal below 1 Msun,
	// power law above.
	Chabrier Model = iota

	// PowerLaw is a single power law with a configurable exponent.
	PowerLaw
)

// String returns the name of the model.
func (m Model) String() string {
	switch m {
	case Chabrier:
		return "Chabrier"
	case PowerLaw:
		return "PowerLaw"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// Mode selects the weighting applied when integrating the IMF.
type Mode int

const (
	// ByNumber integrates the IMF by number of stars.
	ByNumber Mode = iota

	// ByMass integrates the IMF weighted by stellar mass.
	ByMass

	// ByYield integrates the IMF weighted by a per-mass-bin yield array.
	ByYield
)

// IMF is a stellar initial mass function sampled onto evenly spaced
// log10-mass bins and normalized so that the mass-weighted integral
// over the full mass range is one. It is immutable after creation.
type IMF struct {
	model    Model
	exponent float64

	minMass, maxMass float64

	// byNumber[i] is the IMF by number evaluated at massBin[i].
	byNumber []float64

	// massBin and massBinLog10 are the bin center masses [Msun] and
	// their base-10 logarithms. The log values are evenly spaced.
	massBin      []float64
	massBinLog10 []float64

	// binSize is the log10-mass spacing between bins.
	binSize float64
}

// Chabrier (2003) lognormal parameters for the sub-solar segment.
const (
	chabrierMc    = 0.079
	chabrierSigma = 0.69
)

// New creates an IMF of the given model covering stellar masses
// [minMass, maxMass] in solar masses. The exponent is the power-law
// slope by number (e.g. 2.3 for the Salpeter-like high-mass slope); it
// is ignored below 1 Msun for the Chabrier model.
func New(model Model, exponent, minMass, maxMass float64) (*IMF, error) {
	if !(minMass > 0) || !(maxMass > minMass) {
		return nil, fmt.Errorf("imf: invalid mass range [%g, %g]", minMass, maxMass)
	}
	if model != Chabrier && model != PowerLaw {
		return nil, fmt.Errorf("imf: unknown IMF model %d", int(model))
	}
	f := &IMF{
		model:        model,
		exponent:     exponent,
		minMass:      minMass,
		maxMass:      maxMass,
		byNumber:     make([]float64, nBins),
		massBin:      make([]float64, nBins),
		massBinLog10: make([]float64, nBins),
	}
	f.binSize = (math.Log10(maxMass) - math.Log10(minMass)) / float64(nBins-1)
	for i := 0; i < nBins; i++ {
		f.massBinLog10[i] = math.Log10(minMass) + float64(i)*f.binSize
		f.massBin[i] = math.Pow(10, f.massBinLog10[i])
		f.byNumber[i] = f.phi(f.massBin[i])
	}
	// Normalize so the total stellar mass formed per unit mass is one.
	norm := f.Integrate(f.massBinLog10[0], f.massBinLog10[nBins-1], 0, ByMass, nil)
	if !(norm > 0) {
		return nil, fmt.Errorf("imf: non-positive mass normalization %g", norm)
	}
	for i := range f.byNumber {
		f.byNumber[i] /= norm
	}
	return f, nil
}

// phi is the unnormalized IMF by number.
func (f *IMF) phi(mass float64) float64 {
	switch f.model {
	case Chabrier:
		if mass < 1 {
			dlm := math.Log10(mass) - math.Log10(chabrierMc)
			return math.Exp(-dlm*dlm/(2*chabrierSigma*chabrierSigma)) / mass
		}
		// Match the lognormal segment at 1 Msun.
		dlm := -math.Log10(chabrierMc)
		cont := math.Exp(-dlm * dlm / (2 * chabrierSigma * chabrierSigma))
		return cont * math.Pow(mass, -f.exponent)
	case PowerLaw:
		return math.Pow(mass, -f.exponent)
	}
	panic("imf: unknown IMF model")
}

// NBins returns the number of mass bins.
func (f *IMF) NBins() int { return nBins }

// MaxMass returns the maximum stellar mass covered by the IMF [Msun].
func (f *IMF) MaxMass() float64 { return f.maxMass }

// MinMass returns the minimum stellar mass covered by the IMF [Msun].
func (f *IMF) MinMass() float64 { return f.minMass }

// BinMass returns the stellar mass at the center of bin i [Msun].
func (f *IMF) BinMass(i int) float64 { return f.massBin[i] }

// Bins returns the indices of the lowest and highest mass bins
// overlapping the interval [log10Min, log10Max] in log10 solar masses.
// Indices are clamped to the sampled mass range.
func (f *IMF) Bins(log10Min, log10Max float64) (low, high int) {
	low = int(math.Floor((log10Min - f.massBinLog10[0]) / f.binSize))
	high = int(math.Ceil((log10Max - f.massBinLog10[0]) / f.binSize))
	if low < 0 {
		low = 0
	}
	if high > nBins-1 {
		high = nBins - 1
	}
	if high < low {
		high = low
	}
	return low, high
}

// Integrate integrates the IMF between log10Min and log10Max [log10
// solar masses] using the trapezoidal rule over the sampled bins, with
// exact treatment of partial bins at the interval ends. The integrand
// is weighted according to mode; for ByYield, yield must hold one value
// per mass bin (only bins overlapping the interval are read). A
// non-zero exponentOffset multiplies the integrand by mass raised to
// that power, for density-dependent IMF variants.
func (f *IMF) Integrate(log10Min, log10Max, exponentOffset float64, mode Mode, yield []float64) float64 {
	// Clamp to the sampled range.
	if log10Min < f.massBinLog10[0] {
		log10Min = f.massBinLog10[0]
	}
	if log10Max > f.massBinLog10[nBins-1] {
		log10Max = f.massBinLog10[nBins-1]
	}
	if log10Max <= log10Min {
		return 0
	}

	integrand := func(i int) float64 {
		v := f.byNumber[i] * f.massBin[i]
		switch mode {
		case ByMass:
			v *= f.massBin[i]
		case ByYield:
			v *= yield[i]
		}
		if exponentOffset != 0 {
			v *= math.Pow(f.massBin[i], exponentOffset)
		}
		return v
	}

	// Continuous bin coordinates of the integration limits.
	x0 := (log10Min - f.massBinLog10[0]) / f.binSize
	x1 := (log10Max - f.massBinLog10[0]) / f.binSize

	// Integrate the piecewise-linear integrand from x0 to x1.
	var sum float64
	i0 := int(math.Floor(x0))
	i1 := int(math.Ceil(x1)) - 1
	if i1 > nBins-2 {
		i1 = nBins - 2
	}
	for i := i0; i <= i1; i++ {
		a := math.Max(x0-float64(i), 0)
		b := math.Min(x1-float64(i), 1)
		if b <= a {
			continue
		}
		g0, g1 := integrand(i), integrand(i+1)
		// ∫ over the [a,b] sub-segment of a linear segment.
		sum += (b-a)*g0 + 0.5*(b*b-a*a)*(g1-g0)
	}
	return sum * f.binSize * math.Ln10
}
