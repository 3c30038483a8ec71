// Package geom provides the small amount of 3D linear algebra needed to
// compose rotation models: 3-vectors, 3x3 matrices, and axis-angle rotations.
package geom

import "math"

// Vec3 is a 3-vector.
type Vec3 [3]float64

// Mat3 is a 3x3 matrix in row-major order.
type Mat3 [9]float64

// Identity returns the 3x3 identity matrix.
func Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1}
}

// Neg returns the vector with every component negated.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Unit returns v scaled to unit length.  The zero vector is returned
// unchanged; callers treating vectors as directions should reject it first.
func (v Vec3) Unit() Vec3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return Vec3{v[0] / n, v[1] / n, v[2] / n}
}

// IsZero reports whether every component of v is exactly zero.
func (v Vec3) IsZero() bool {
	return v[0] == 0 && v[1] == 0 && v[2] == 0
}

// Mul returns the matrix product m * o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[3*i+j] = m[3*i]*o[j] + m[3*i+1]*o[3+j] + m[3*i+2]*o[6+j]
		}
	}
	return r
}

// MulVec returns the matrix-vector product m * v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2]}
}

// RotationAboutAxis returns the matrix rotating by angleDeg degrees about
// axis, using the Rodrigues formula.  The axis need not be pre-normalized.
func RotationAboutAxis(axis Vec3, angleDeg float64) Mat3 {
	n := axis.Unit()
	t := angleDeg * math.Pi / 180
	c := math.Cos(t)
	s := math.Sin(t)
	// R = c*I + s*[n]_x + (1-c)*(n (x) n)
	x, y, z := n[0], n[1], n[2]
	return Mat3{
		c + x*x*(1-c), x*y*(1-c) - z*s, x*z*(1-c) + y*s,
		y*x*(1-c) + z*s, c + y*y*(1-c), y*z*(1-c) - x*s,
		z*x*(1-c) - y*s, z*y*(1-c) + x*s, c + z*z*(1-c)}
}

// ApproxEqual reports whether u and v agree component-wise within tol.
func (v Vec3) ApproxEqual(u Vec3, tol float64) bool {
	for i := range v {
		if math.Abs(v[i]-u[i]) > tol {
			return false
		}
	}
	return true
}

// ApproxEqual reports whether m and o agree element-wise within tol.
func (m Mat3) ApproxEqual(o Mat3, tol float64) bool {
	for i := range m {
		if math.Abs(m[i]-o[i]) > tol {
			return false
		}
	}
	return true
}
