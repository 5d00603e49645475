package io

import (
	"fmt"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/crust/generate"
	"github.com/phil-mansfield/crust/motion"
)

const ExampleCrustFile = `[Crust]

#######################
# Required Parameters #
#######################

# Radius of the planet in meters.
Radius = 6.371e6

# Number of cells along each edge of the six cube faces. The grid has
# 6 * FaceCells^2 vertices.
FaceCells = 32

# File which the per-vertex results table is written to. Each row is one
# vertex: id, x, y, z, elevation, thickness, density, area density,
# buoyancy, displacement, intended displacement.
Output = crust.txt

#######################
# Optional Parameters #
#######################

# Seed for the elevation noise and plate layout. Default is 1.
# Seed = 1

# Number of tectonic plates the igneous crust is split into. Default is 7.
# Plates = 7

# Range of surface elevations in meters relative to sea level, and the level
# the mantle surface sits at. MinElevation must be above ReferenceElevation.
# Defaults are -4000, 6000 and -5000.
# MinElevation = -4000
# MaxElevation = 6000
# ReferenceElevation = -5000

# Current age of the world in Myr. Older rock is more compacted. Default is
# 4000.
# WorldAge = 4000

# Mantle properties in SI units. Defaults are 3300 kg/m^3, 1e21 Pa s and
# 9.81 m/s^2.
# MantleDensity = 3300
# MantleViscosity = 1e21
# Gravity = 9.81

# Table of mineral densities as a function of age. The first column is the
# age in Myr and the next nine are the densities (kg/m^3) of Quartz,
# Orthoclase, Plagioclase, Biotite, Pyroxene, Olivine, Hematite, Calcite and
# Organics. If not set, a built-in compaction model is used.
# DensityTable = path/to/densities.txt

# If set, a plot of achieved vs. intended displacement is written here.
# Requires python and matplotlib.
# Plot = displacement.png

# Number of worker goroutines. Zero (the default) uses every core.
# Threads = 0

# Log debugging output. Default is false.
# Verbose = false`

// CrustConfig holds the parameters of a single crust run.
type CrustConfig struct {
	// Required
	Radius    float64
	FaceCells int
	Output    string

	// Optional
	Seed                                           int64
	Plates                                         int
	MinElevation, MaxElevation, ReferenceElevation float64
	WorldAge                                       float64
	MantleDensity, MantleViscosity, Gravity        float64
	DensityTable, Plot                             string
	Threads                                        int
	Verbose                                        bool
}

type CrustWrapper struct {
	Crust CrustConfig
}

// DefaultCrustWrapper returns a wrapper with every optional parameter set to
// its default.
func DefaultCrustWrapper() *CrustWrapper {
	p := generate.DefaultParams()
	m := motion.DefaultMantle()
	con := CrustConfig{
		Seed:               p.Seed,
		Plates:             p.Plates,
		MinElevation:       p.MinElevation,
		MaxElevation:       p.MaxElevation,
		ReferenceElevation: p.ReferenceElevation,
		WorldAge:           p.WorldAge,
		MantleDensity:      m.Density,
		MantleViscosity:    m.Viscosity,
		Gravity:            m.Gravity,
	}
	return &CrustWrapper{con}
}

func (con *CrustConfig) ValidRadius() bool {
	return con.Radius > 0
}
func (con *CrustConfig) ValidFaceCells() bool {
	return con.FaceCells > 0
}
func (con *CrustConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *CrustConfig) ValidPlates() bool {
	return con.Plates > 0
}
func (con *CrustConfig) ValidElevations() bool {
	return con.MaxElevation > con.MinElevation &&
		con.MinElevation > con.ReferenceElevation
}
func (con *CrustConfig) ValidWorldAge() bool {
	return con.WorldAge >= 0
}
func (con *CrustConfig) ValidMantle() bool {
	return con.MantleDensity > generate.Mafic.Density() &&
		con.MantleViscosity > 0 && con.Gravity > 0
}
func (con *CrustConfig) ValidDensityTable() bool {
	return con.DensityTable != ""
}
func (con *CrustConfig) ValidPlot() bool {
	return con.Plot != ""
}
func (con *CrustConfig) ValidThreads() bool {
	return con.Threads >= 0
}

// CheckInit returns an error describing the first invalid parameter, if
// any. name is the file the config was read from.
func (con *CrustConfig) CheckInit(name string) error {
	if !con.ValidRadius() {
		return fmt.Errorf(
			"Need to specify a positive Radius in '%s', but it is %g.",
			name, con.Radius,
		)
	} else if !con.ValidFaceCells() {
		return fmt.Errorf(
			"Need to specify a positive FaceCells in '%s', but it is %d.",
			name, con.FaceCells,
		)
	} else if !con.ValidOutput() {
		return fmt.Errorf("Need to specify an Output file in '%s'.", name)
	} else if !con.ValidPlates() {
		return fmt.Errorf(
			"Plates in '%s' must be positive, but is %d.", name, con.Plates,
		)
	} else if !con.ValidElevations() {
		return fmt.Errorf(
			"Elevations in '%s' must satisfy ReferenceElevation < "+
				"MinElevation < MaxElevation, but are %g, %g and %g.",
			name, con.ReferenceElevation, con.MinElevation, con.MaxElevation,
		)
	} else if !con.ValidWorldAge() {
		return fmt.Errorf(
			"WorldAge in '%s' must be non-negative, but is %g.",
			name, con.WorldAge,
		)
	} else if !con.ValidMantle() {
		return fmt.Errorf(
			"Mantle in '%s' must have positive Gravity and MantleViscosity "+
				"and a MantleDensity above %.0f, but they are %g, %g and %g.",
			name, generate.Mafic.Density(),
			con.Gravity, con.MantleViscosity, con.MantleDensity,
		)
	} else if !con.ValidThreads() {
		return fmt.Errorf(
			"Threads in '%s' must be non-negative, but is %d.",
			name, con.Threads,
		)
	}
	return nil
}

// Params returns the generation parameters described by the config.
func (con *CrustConfig) Params() generate.Params {
	p := generate.DefaultParams()
	p.Seed = con.Seed
	p.Plates = con.Plates
	p.MinElevation = con.MinElevation
	p.MaxElevation = con.MaxElevation
	p.ReferenceElevation = con.ReferenceElevation
	p.WorldAge = con.WorldAge
	p.MantleDensity = con.MantleDensity
	return p
}

// Mantle returns the mantle described by the config.
func (con *CrustConfig) Mantle() motion.Mantle {
	return motion.Mantle{
		Density:   con.MantleDensity,
		Viscosity: con.MantleViscosity,
		Gravity:   con.Gravity,
	}
}

// ReadCrustConfig reads and validates a [Crust] config file, then applies
// any environment overrides.
func ReadCrustConfig(fname string) (*CrustConfig, error) {
	wrap := DefaultCrustWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	con := &wrap.Crust
	if err := ApplyEnv(con); err != nil {
		return nil, err
	}
	if err := con.CheckInit(fname); err != nil {
		return nil, err
	}
	return con, nil
}
