/*package rock models the rock column at each vertex of a grid.

A Stratum is one layer of rock: the mass of each mineral it contains, the
relative volumes of its particle size classes, and when it was deposited. A
Formation is a fixed-depth stack of strata at every vertex for one category
of rock, and a Crust is the collection of Formations which together make up
all the rock on the planet.

Strata within a column are ordered by deposition: layer 0 is the top of the
column and holds the most recently deposited stratum. Layers below the
deepest stratum hold the zero Stratum.
*/
package rock

import (
	"fmt"
)

// Mineral identifies the kind of material held in a MassPool.
type Mineral uint8

const (
	Quartz Mineral = iota
	Orthoclase
	Plagioclase
	Biotite
	Pyroxene
	Olivine
	Hematite
	Calcite
	Organics
)

// MineralCount is the number of mass pools in every Stratum.
const MineralCount = int(Organics) + 1

var mineralNames = [MineralCount]string{
	"Quartz", "Orthoclase", "Plagioclase", "Biotite", "Pyroxene",
	"Olivine", "Hematite", "Calcite", "Organics",
}

// IntrinsicDensities are the densities (kg/m^3) of freshly formed minerals.
// They weight particle size histograms when strata are combined. Age
// dependent densities used for summaries live in package summary.
var IntrinsicDensities = [MineralCount]float64{
	2650, 2560, 2690, 3090, 3300, 3320, 5260, 2710, 1100,
}

func (m Mineral) String() string {
	if int(m) < MineralCount {
		return mineralNames[m]
	}
	return fmt.Sprintf("Mineral(%d)", uint8(m))
}

// Minerals returns every Mineral in pool order.
func Minerals() []Mineral {
	ms := make([]Mineral, MineralCount)
	for i := range ms {
		ms[i] = Mineral(i)
	}
	return ms
}

// ParseMineral returns the Mineral with the given name.
func ParseMineral(name string) (Mineral, error) {
	for i, n := range mineralNames {
		if n == name {
			return Mineral(i), nil
		}
	}
	return 0, fmt.Errorf("'%s' is not a recognized mineral.", name)
}

// Grain is a particle size class. Bedrock is unweathered rock; the remaining
// classes follow the Wentworth scale from coarse to fine.
type Grain uint8

const (
	Bedrock Grain = iota
	Boulder
	Cobble
	Pebble
	Granule
	Sand
	Silt
	Clay
)

// GrainCount is the number of particle size bins in every Stratum.
const GrainCount = int(Clay) + 1

var grainNames = [GrainCount]string{
	"Bedrock", "Boulder", "Cobble", "Pebble", "Granule", "Sand", "Silt", "Clay",
}

func (g Grain) String() string {
	if int(g) < GrainCount {
		return grainNames[g]
	}
	return fmt.Sprintf("Grain(%d)", uint8(g))
}

// MassPool is the mass (kg) of one kind of mineral.
type MassPool struct {
	Kind Mineral
	Mass float64
}
