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

	"github.com/ctessum/sparse"
)

// LifetimeModel selects the stellar lifetime model used to relate
// stellar mass, metallicity and main-sequence lifetime.
type LifetimeModel int

const (
	// PadovaniMatteucci is the Padovani & Matteucci (1993) fit.
	PadovaniMatteucci LifetimeModel = iota

	// MaederMeynet is the Maeder & Meynet (1989) fit.
	MaederMeynet

	// Portinari interpolates the tabulated lifetimes of
	// Portinari et al. (1998). This is the production model.
	Portinari
)

// String returns the name of the lifetime model.
func (m LifetimeModel) String() string {
	switch m {
	case PadovaniMatteucci:
		return "Padovani-Matteucci"
	case MaederMeynet:
		return "Maeder-Meynet"
	case Portinari:
		return "Portinari"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// DyingMassMsun returns the stellar mass [Msun] whose lifetime equals
// ageGyr for a population of the given metallicity [mass fraction]:
// stars above this mass have already died. When the age is below the
// youngest-death threshold the IMF maximum mass is returned, since no
// stars have died yet. The result never exceeds the IMF maximum mass.
func (props *StarsProperties) DyingMassMsun(ageGyr, metallicity float64) (float64, error) {
	var mass float64

	switch props.LifetimeModel {
	case PadovaniMatteucci:
		if ageGyr > 0.039765318659064693 {
			d := 1.338 - 0.1116*(9+math.Log10(ageGyr))
			mass = math.Exp(math.Ln10 * (7.764 - (1.79-d*d)/0.2232))
		} else if ageGyr > 0.003 {
			mass = math.Pow((ageGyr-0.003)/1.2, -1/1.85)
		} else {
			mass = props.IMF.MaxMass()
		}

	case MaederMeynet:
		switch {
		case ageGyr >= 8.4097378:
			mass = math.Exp(math.Ln10 * (1 - math.Log10(ageGyr)) / 0.6545)
		case ageGyr >= 0.35207776:
			mass = math.Exp(math.Ln10 * (1.35 - math.Log10(ageGyr)) / 3.7)
		case ageGyr >= 0.050931493:
			mass = math.Exp(math.Ln10 * (0.77 - math.Log10(ageGyr)) / 2.51)
		case ageGyr >= 0.010529099:
			mass = math.Exp(math.Ln10 * (0.17 - math.Log10(ageGyr)) / 1.78)
		case ageGyr >= 0.0037734787:
			mass = math.Exp(math.Ln10 * (-0.94 - math.Log10(ageGyr)) / 0.86)
		case ageGyr > 0.003:
			mass = math.Pow((ageGyr-0.003)/1.2, -0.54054053)
		default:
			mass = props.IMF.MaxMass()
		}

	case Portinari:
		if ageGyr <= 0 {
			return props.IMF.MaxMass(), nil
		}
		lt := props.Lifetimes
		nz, nm := len(lt.Metallicity), len(lt.Mass)
		logAgeYr := math.Log10(ageGyr * 1e9)

		var iz int
		var dz float64
		if metallicity <= lt.Metallicity[0] {
			iz, dz = 0, 0
		} else if metallicity >= lt.Metallicity[nz-1] {
			iz, dz = nz-2, 1
		} else {
			for iz = 0; iz < nz-1; iz++ {
				if lt.Metallicity[iz+1] > metallicity {
					break
				}
			}
			dz = (metallicity - lt.Metallicity[iz]) /
				(lt.Metallicity[iz+1] - lt.Metallicity[iz])
		}

		it1, dt1 := bracketLogAge(lt.DyingTime, iz, nm, logAgeYr)
		it2, dt2 := bracketLogAge(lt.DyingTime, iz+1, nm, logAgeYr)

		mass1 := interpol1d(lt.Mass, it1, dt1)
		mass2 := interpol1d(lt.Mass, it2, dt2)
		mass = (1-dz)*mass1 + dz*mass2

	default:
		return 0, fmt.Errorf("starchem: stellar lifetime model %d not defined", int(props.LifetimeModel))
	}

	if mass > props.IMF.MaxMass() {
		mass = props.IMF.MaxMass()
	}
	return mass, nil
}

// bracketLogAge locates the mass interval whose tabulated log-lifetime
// brackets logAgeYr along metallicity row iz. Ages outside the covered
// range clamp to the corresponding end of the mass axis; otherwise the
// interval is found by a linear scan from the high-mass end, where
// lifetimes are shortest.
func bracketLogAge(dyingTime *sparse.DenseArray, iz, nMass int, logAgeYr float64) (index int, frac float64) {
	if logAgeYr >= dyingTime.Get(iz, 0) {
		return 0, 0
	}
	if logAgeYr <= dyingTime.Get(iz, nMass-1) {
		return nMass - 2, 1
	}
	for i := nMass - 2; i >= 0; i-- {
		if dyingTime.Get(iz, i) >= logAgeYr {
			return i, (logAgeYr - dyingTime.Get(iz, i)) /
				(dyingTime.Get(iz, i+1) - dyingTime.Get(iz, i))
		}
	}
	// Unreachable for a grid that decreases in mass; fall back to the
	// low-mass end.
	return 0, 0
}

// LifetimeGyr returns the main-sequence lifetime [Gyr] of a star of the
// given mass [Msun] and metallicity [mass fraction]. It is the inverse
// of DyingMassMsun.
func (props *StarsProperties) LifetimeGyr(mass, metallicity float64) (float64, error) {
	var time float64

	switch props.LifetimeModel {
	case PadovaniMatteucci:
		switch {
		case mass <= 0.6:
			time = 160.0
		case mass <= 6.6:
			time = math.Pow(10, (0.334-math.Sqrt(1.790-0.2232*(7.764-math.Log10(mass))))/0.1116)
		default:
			time = 1.2*math.Pow(mass, -1.85) + 0.003
		}

	case MaederMeynet:
		switch {
		case mass <= 1.3:
			time = math.Pow(10, -0.6545*math.Log10(mass)+1.0)
		case mass <= 3.0:
			time = math.Pow(10, -3.7*math.Log10(mass)+1.35)
		case mass <= 7.0:
			time = math.Pow(10, -2.51*math.Log10(mass)+0.77)
		case mass <= 15.0:
			time = math.Pow(10, -1.78*math.Log10(mass)+0.17)
		case mass <= 60.0:
			time = math.Pow(10, -0.86*math.Log10(mass)-0.94)
		default:
			time = 1.2*math.Pow(mass, -1.85) + 0.003
		}

	case Portinari:
		lt := props.Lifetimes
		nz, nm := len(lt.Metallicity), len(lt.Mass)

		var im int
		var dm float64
		if mass <= lt.Mass[0] {
			im, dm = 0, 0
		} else if mass >= lt.Mass[nm-1] {
			im, dm = nm-2, 1
		} else {
			for im = 0; im < nm-1; im++ {
				if lt.Mass[im+1] > mass {
					break
				}
			}
			dm = (mass - lt.Mass[im]) / (lt.Mass[im+1] - lt.Mass[im])
		}

		var iz int
		var dz float64
		if metallicity <= lt.Metallicity[0] {
			iz, dz = 0, 0
		} else if metallicity >= lt.Metallicity[nz-1] {
			iz, dz = nz-2, 1
		} else {
			for iz = 0; iz < nz-1; iz++ {
				if lt.Metallicity[iz+1] > metallicity {
					break
				}
			}
			dz = (metallicity - lt.Metallicity[iz]) /
				(lt.Metallicity[iz+1] - lt.Metallicity[iz])
		}

		time = math.Exp(math.Ln10*interpol2d(lt.DyingTime, iz, im, dz, dm)) / 1e9

	default:
		return 0, fmt.Errorf("starchem: stellar lifetime model %d not defined", int(props.LifetimeModel))
	}

	return time, nil
}

// interpol1d linearly interpolates between table entries i and i+1.
func interpol1d(table []float64, i int, dx float64) float64 {
	return (1-dx)*table[i] + dx*table[i+1]
}

// interpol2d bilinearly interpolates a 2-D grid between rows i, i+1 and
// columns j, j+1.
func interpol2d(table *sparse.DenseArray, i, j int, dx, dy float64) float64 {
	return (1-dx)*(1-dy)*table.Get(i, j) + (1-dx)*dy*table.Get(i, j+1) +
		dx*(1-dy)*table.Get(i+1, j) + dx*dy*table.Get(i+1, j+1)
}
