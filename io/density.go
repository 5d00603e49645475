package io

import (
	"fmt"

	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/crust/math/interpolate"
	"github.com/phil-mansfield/crust/rock"
	"github.com/phil-mansfield/crust/summary"
)

// ReadDensityTable reads a density model from a whitespace-separated table.
// Column 0 is age in Myr, in strictly increasing order, and column k+1 is
// the density of rock.Mineral(k) in kg/m^3.
func ReadDensityTable(fname string) (*summary.DensityModel, error) {
	colIdxs := make([]int, rock.MineralCount+1)
	for i := range colIdxs {
		colIdxs[i] = i
	}
	cols, err := table.ReadTable(fname, colIdxs, nil)
	if err != nil {
		return nil, err
	}

	ages := cols[0]
	if len(ages) < 2 {
		return nil, fmt.Errorf(
			"Density table '%s' has %d rows, but needs at least 2.",
			fname, len(ages),
		)
	}
	for i := 1; i < len(ages); i++ {
		if !(ages[i] > ages[i-1]) {
			return nil, fmt.Errorf(
				"Ages in density table '%s' are not increasing at row %d.",
				fname, i,
			)
		}
	}

	model := &summary.DensityModel{}
	for m := 0; m < rock.MineralCount; m++ {
		rhos := cols[m+1]
		for i, rho := range rhos {
			if !(rho > 0) {
				return nil, fmt.Errorf(
					"%v density in row %d of '%s' is %g.",
					rock.Mineral(m), i, fname, rho,
				)
			}
		}
		model.Relations[m] = interpolate.NewLinear(ages, rhos)
	}
	return model, nil
}
