package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(AxisY, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatRotateLocal(t *testing.T) {
	q := QuatIdentity().RotateLocal(AxisY, float32(math.Pi/2))
	got := q.Rotate(Vec3{1, 0, 0})
	want := Vec3{0, 0, -1}
	if got.Distance(want) > 0.0001 {
		t.Errorf("RotateLocal Y 90: got %v, want %v", got, want)
	}
}

func TestQuatRotateMatchesMatrix(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{1, 2, 3}.Normalize(), 1.2)
	v := Vec3{0.3, -2, 5}

	got := q.Rotate(v)
	want := q.ToMat4().TransformVec3(v)
	if got.Distance(want) > 0.0001 {
		t.Errorf("Rotate = %v, matrix = %v", got, want)
	}
}

func TestQuatLookAt(t *testing.T) {
	eye := Vec3{1, 2, 3}
	targets := []Vec3{
		{5, 2, 3},
		{1, 2, -4},
		{-3, 7, 0.5},
		{1, 9, 3}, // straight up, parallel to the up vector
	}

	for _, target := range targets {
		q := QuatLookAt(eye, target, AxisY)
		forward := q.Rotate(AxisZ)
		want := target.Sub(eye).Normalize()
		if forward.Distance(want) > 0.001 {
			t.Errorf("LookAt(%v): +Z maps to %v, want %v", target, forward, want)
		}

		n := math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W))
		if math.Abs(n-1) > 0.001 {
			t.Errorf("LookAt(%v): quaternion not unit length (%v)", target, n)
		}
	}
}

func TestQuatLookAtKeepsUp(t *testing.T) {
	q := QuatLookAt(Vec3{}, Vec3{1, 0, 0}, AxisY)
	up := q.Rotate(AxisY)
	if up.Distance(AxisY) > 0.0001 {
		t.Errorf("horizontal look should keep +Y up, got %v", up)
	}
}
