/*package motion computes the vertical and lateral motion of the crust from
its summary fields.

A column of crust of thickness h and density rho_c floats on a fluid mantle
of density rho_m. Its buoyancy per unit area is (rho_m - rho_c) g h, and at
isostatic equilibrium it rides h (1 - rho_c / rho_m) above the depth of its
base, which is the displacement returned here. Columns out of equilibrium
relax toward it on the viscous timescale of the mantle.
*/
package motion

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/crust/calculus"
	"github.com/phil-mansfield/crust/geom"
	"github.com/phil-mansfield/crust/parallel"
	"github.com/phil-mansfield/crust/summary"
)

// Mantle holds the properties of the fluid layer the crust floats on, in SI
// units.
type Mantle struct {
	Density   float64 // kg/m^3
	Viscosity float64 // Pa s
	Gravity   float64 // m/s^2
}

// DefaultMantle returns Earth-like upper mantle parameters.
func DefaultMantle() Mantle {
	return Mantle{Density: 3300, Viscosity: 1e21, Gravity: 9.81}
}

const minParameter = 1e-9

// Motion evaluates buoyancy and displacement fields over the grid of Ops.
type Motion struct {
	Ops    *calculus.Operators
	Mantle Mantle
}

// New returns a Motion for the given operators and mantle. A mantle density,
// viscosity or gravity which is zero or close to it causes a panic.
func New(ops *calculus.Operators, mantle Mantle) *Motion {
	checkPositive("Mantle density", mantle.Density)
	checkPositive("Mantle viscosity", mantle.Viscosity)
	checkPositive("Gravity", mantle.Gravity)
	return &Motion{Ops: ops, Mantle: mantle}
}

func checkPositive(name string, x float64) {
	if !(x > minParameter) {
		panic(fmt.Sprintf("%s is %g, but must be positive.", name, x))
	}
}

func (m *Motion) check(name string, n int) {
	if vc := m.Ops.Grid.VertexCount(); n != vc {
		panic(fmt.Sprintf(
			"%s has length %d, but grid has %d vertices.", name, n, vc,
		))
	}
}

func (m *Motion) out(out [][]float64) []float64 {
	if len(out) == 0 {
		return make([]float64, m.Ops.Grid.VertexCount())
	}
	m.check("Output field", len(out[0]))
	return out[0]
}

// Buoyancy computes the net upward force per unit area (Pa) on each column:
// the weight of the displaced mantle minus the weight of the column.
func (m *Motion) Buoyancy(s []summary.Summary, out ...[]float64) []float64 {
	checkPositive("Mantle density", m.Mantle.Density)
	checkPositive("Gravity", m.Mantle.Gravity)
	m.check("Summary field", len(s))
	b := m.out(out)

	rhoM, g := m.Mantle.Density, m.Mantle.Gravity
	parallel.Each(len(s), m.Ops.Workers, func(i int) {
		b[i] = (rhoM - s[i].Density) * g * s[i].Thickness
	})
	return b
}

// Displacement converts buoyancy into the height (m) at which each column
// rides above the base of the crust at isostatic equilibrium.
func (m *Motion) Displacement(buoyancy []float64, out ...[]float64) []float64 {
	checkPositive("Mantle density", m.Mantle.Density)
	checkPositive("Gravity", m.Mantle.Gravity)
	m.check("Buoyancy field", len(buoyancy))
	d := m.out(out)

	weight := m.Mantle.Density * m.Mantle.Gravity
	parallel.Each(len(buoyancy), m.Ops.Workers, func(i int) {
		d[i] = buoyancy[i] / weight
	})
	return d
}

// Velocity estimates the lateral creep velocity (m/s) of each column. Thin
// viscous layers flow down buoyancy gradients with a mean velocity of
// -h^2 / (3 mu) grad(b).
func (m *Motion) Velocity(
	s []summary.Summary, buoyancy []float64, out ...[]geom.Vec,
) []geom.Vec {
	checkPositive("Mantle viscosity", m.Mantle.Viscosity)
	m.check("Summary field", len(s))

	v := m.Ops.Gradient(buoyancy, out...)
	mu := m.Mantle.Viscosity
	parallel.Each(len(s), m.Ops.Workers, func(i int) {
		h := s[i].Thickness
		v[i] = v[i].Scale(-h * h / (3 * mu))
	})
	return v
}

// Timescale returns the e-folding time (s) over which a displacement
// perturbation of the given wavelength (m) relaxes: 4 pi mu / (rho_m g lambda).
func (m *Motion) Timescale(wavelength float64) float64 {
	checkPositive("Wavelength", wavelength)
	checkPositive("Mantle viscosity", m.Mantle.Viscosity)
	checkPositive("Mantle density", m.Mantle.Density)
	checkPositive("Gravity", m.Mantle.Gravity)
	return 4 * math.Pi * m.Mantle.Viscosity /
		(m.Mantle.Density * m.Mantle.Gravity * wavelength)
}

// Relax advances current displacements dt seconds toward their target
// equilibrium displacements.
func (m *Motion) Relax(
	current, target []float64, dt, wavelength float64, out ...[]float64,
) []float64 {
	m.check("Current displacement", len(current))
	m.check("Target displacement", len(target))
	if dt < 0 {
		panic(fmt.Sprintf("Relax() given negative time step %g.", dt))
	}
	res := m.out(out)

	decay := math.Exp(-dt / m.Timescale(wavelength))
	parallel.Each(len(current), m.Ops.Workers, func(i int) {
		res[i] = target[i] + (current[i]-target[i])*decay
	})
	return res
}
