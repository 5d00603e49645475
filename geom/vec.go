/*package geom contains the small amount of three-dimensional vector algebra
needed to reason about points and directions on the surface of a sphere.
*/
package geom

import (
	"math"
)

// Vec is a three dimensional vector. (Duh!)
type Vec [3]float64

// Add returns v1 + v2.
func (v1 Vec) Add(v2 Vec) Vec {
	return Vec{v1[0] + v2[0], v1[1] + v2[1], v1[2] + v2[2]}
}

// Sub returns v1 - v2.
func (v1 Vec) Sub(v2 Vec) Vec {
	return Vec{v1[0] - v2[0], v1[1] - v2[1], v1[2] - v2[2]}
}

// Scale returns k * v.
func (v Vec) Scale(k float64) Vec {
	return Vec{v[0] * k, v[1] * k, v[2] * k}
}

// Dot returns the inner product of v1 and v2.
func (v1 Vec) Dot(v2 Vec) float64 {
	return v1[0]*v2[0] + v1[1]*v2[1] + v1[2]*v2[2]
}

// Cross returns v1 x v2.
func (v1 Vec) Cross(v2 Vec) Vec {
	return Vec{
		v1[1]*v2[2] - v1[2]*v2[1],
		v1[2]*v2[0] - v1[0]*v2[2],
		v1[0]*v2[1] - v1[1]*v2[0],
	}
}

// Norm returns the Euclidean length of v.
func (v Vec) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns a unit vector pointing in the same direction as v. The
// zero vector has no direction and causes a panic.
func (v Vec) Normalize() Vec {
	n := v.Norm()
	if n == 0 {
		panic("Cannot normalize the zero vector.")
	}
	return v.Scale(1 / n)
}

// AddSelf adds v2 to v1 in place. Used in the inner loops of the operators,
// where it avoids copying the accumulator around.
func (v1 *Vec) AddSelf(v2 Vec) {
	v1[0] += v2[0]
	v1[1] += v2[1]
	v1[2] += v2[2]
}

// ScaleSelf multiplies v by k in place.
func (v *Vec) ScaleSelf(k float64) {
	v[0] *= k
	v[1] *= k
	v[2] *= k
}

// Tangent returns the component of v which is perpendicular to the unit
// vector n, i.e. the projection of v onto the plane tangent to a sphere at n.
func (v Vec) Tangent(n Vec) Vec {
	return v.Sub(n.Scale(v.Dot(n)))
}

// EpsEq returns true if every component of v1 and v2 differs by no more than
// eps.
func (v1 Vec) EpsEq(v2 Vec, eps float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(v1[i]-v2[i]) > eps {
			return false
		}
	}
	return true
}
