package math

import "math"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// Axis vectors used for object-space rotations.
var (
	AxisX = Vec3{X: 1}
	AxisY = Vec3{Y: 1}
	AxisZ = Vec3{Z: 1}
)

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	halfAngle := angle / 2
	s := float32(math.Sin(float64(halfAngle)))
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: float32(math.Cos(float64(halfAngle))),
	}
}

// QuatFromBasis builds the rotation whose local X, Y and Z axes map to the
// given orthonormal vectors.
func QuatFromBasis(x, y, z Vec3) Quat {
	m11, m12, m13 := x.X, y.X, z.X
	m21, m22, m23 := x.Y, y.Y, z.Y
	m31, m32, m33 := x.Z, y.Z, z.Z

	trace := m11 + m22 + m33
	switch {
	case trace > 0:
		s := 0.5 / sqrt32(trace+1)
		return Quat{
			W: 0.25 / s,
			X: (m32 - m23) * s,
			Y: (m13 - m31) * s,
			Z: (m21 - m12) * s,
		}
	case m11 > m22 && m11 > m33:
		s := 2 * sqrt32(1+m11-m22-m33)
		return Quat{
			W: (m32 - m23) / s,
			X: 0.25 * s,
			Y: (m12 + m21) / s,
			Z: (m13 + m31) / s,
		}
	case m22 > m33:
		s := 2 * sqrt32(1+m22-m11-m33)
		return Quat{
			W: (m13 - m31) / s,
			X: (m12 + m21) / s,
			Y: 0.25 * s,
			Z: (m23 + m32) / s,
		}
	default:
		s := 2 * sqrt32(1+m33-m11-m22)
		return Quat{
			W: (m21 - m12) / s,
			X: (m13 + m31) / s,
			Y: (m23 + m32) / s,
			Z: 0.25 * s,
		}
	}
}

// QuatLookAt returns the orientation that points an object's +Z axis from
// eye towards target, keeping its +Y axis as close to up as possible.
func QuatLookAt(eye, target, up Vec3) Quat {
	z := target.Sub(eye)
	if z.LengthSquared() == 0 {
		z.Z = 1
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.LengthSquared() == 0 {
		// up and forward are parallel
		if abs32(up.Z) == 1 {
			z.X += 0.0001
		} else {
			z.Z += 0.0001
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	return QuatFromBasis(x, y, z)
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	length := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Mul multiplies two quaternions (combines rotations).
// q.Mul(r) applies r first, then q.
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// RotateLocal applies a rotation of angle radians about axis expressed in the
// object's own frame (post-multiplication).
func (q Quat) RotateLocal(axis Vec3, angle float32) Quat {
	return q.Mul(QuatFromAxisAngle(axis, angle))
}

// Rotate rotates v by q.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	uv := u.Cross(v)
	uuv := u.Cross(uv)
	return v.Add(uv.Scale(2 * q.W)).Add(uuv.Scale(2))
}

// ToMat4 converts the quaternion to a 4x4 rotation matrix.
func (q Quat) ToMat4() Mat4 {
	// Normalize first
	q = q.Normalize()

	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + zw), 2 * (xz - yw), 0,
		2 * (xy - zw), 1 - 2*(xx+zz), 2 * (yz + xw), 0,
		2 * (xz + yw), 2 * (yz - xw), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}

func sqrt32(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
