package generate

import (
	"github.com/phil-mansfield/crust/rock"
)

// Composition is a set of mineral mass fractions which sum to one.
type Composition [rock.MineralCount]float64

var (
	// Felsic is granitic continental crust.
	Felsic = Composition{
		rock.Quartz: 0.25, rock.Orthoclase: 0.20, rock.Plagioclase: 0.35,
		rock.Biotite: 0.10, rock.Pyroxene: 0.05, rock.Hematite: 0.05,
	}
	// Mafic is basaltic oceanic crust.
	Mafic = Composition{
		rock.Plagioclase: 0.45, rock.Pyroxene: 0.35, rock.Olivine: 0.15,
		rock.Hematite: 0.05,
	}
	// Clastic is continental runoff settled on the sea floor.
	Clastic = Composition{
		rock.Quartz: 0.55, rock.Orthoclase: 0.15, rock.Calcite: 0.25,
		rock.Organics: 0.05,
	}
)

// Density returns the density of freshly formed rock with this composition.
func (c *Composition) Density() float64 {
	vol := 0.0
	for i, w := range c {
		vol += w / rock.IntrinsicDensities[i]
	}
	return 1 / vol
}

// Masses splits a total mass across the composition's minerals.
func (c *Composition) Masses(mass float64) [rock.MineralCount]float64 {
	var out [rock.MineralCount]float64
	for i, w := range c {
		out[i] = w * mass
	}
	return out
}
