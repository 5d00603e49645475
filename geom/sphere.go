package geom

import (
	"math"
)

// Arc returns the angle in radians between two unit vectors. atan2 is used
// instead of acos so that very short arcs keep their precision.
func Arc(a, b Vec) float64 {
	return math.Atan2(a.Cross(b).Norm(), a.Dot(b))
}

// TriangleArea returns the area of the spherical triangle with the unit
// vector corners a, b, c on a sphere of unit radius, i.e. its spherical
// excess. Uses the formula of Van Oosterom & Strackee.
func TriangleArea(a, b, c Vec) float64 {
	num := math.Abs(a.Dot(b.Cross(c)))
	den := 1 + a.Dot(b) + b.Dot(c) + c.Dot(a)
	return 2 * math.Atan2(num, den)
}

// Geographic returns the latitude and longitude (radians) of the direction v
// with Y pointing to the north pole and X at zero longitude.
func Geographic(v Vec) (lat, lon float64) {
	r := v.Norm()
	if r == 0 {
		return 0, 0
	}
	return math.Asin(v[1] / r), math.Atan2(v[2], v[0])
}

// Cartesian is the inverse of Geographic for a sphere of radius r.
func Cartesian(lat, lon, r float64) Vec {
	cosLat := math.Cos(lat)
	return Vec{
		r * cosLat * math.Cos(lon),
		r * math.Sin(lat),
		r * cosLat * math.Sin(lon),
	}
}

// EulerMatrix creates a 3D rotation matrix from the Euler angles phi, theta,
// and psi. These represent three consecutive rotations around the x, y, and z
// axes, respectively. The matrix is stored in row-major order.
func EulerMatrix(phi, theta, psi float64) [9]float64 {
	return [9]float64{
		math.Cos(theta) * math.Cos(psi),
		math.Cos(phi)*math.Sin(psi) + math.Sin(phi)*math.Sin(theta)*math.Cos(psi),
		math.Sin(phi)*math.Sin(psi) - math.Cos(phi)*math.Sin(theta)*math.Cos(psi),
		-math.Cos(theta) * math.Sin(psi),
		math.Cos(phi)*math.Cos(psi) - math.Sin(phi)*math.Sin(theta)*math.Sin(psi),
		math.Sin(phi)*math.Cos(psi) + math.Cos(phi)*math.Sin(theta)*math.Sin(psi),
		math.Sin(theta),
		-math.Sin(phi) * math.Cos(theta),
		math.Cos(phi) * math.Cos(theta),
	}
}

// Rotate rotates a vector by the given row-major rotation matrix.
func (v Vec) Rotate(m *[9]float64) Vec {
	return Vec{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}
