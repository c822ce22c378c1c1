package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformVec3(t *testing.T) {
	m := Translate(10, 20, 30).Mul(Scale(2, 2, 2))
	got := m.TransformVec3(Vec3{1, 2, 3})
	want := Vec3{12, 24, 36}
	if got != want {
		t.Errorf("TransformVec3: got %v, want %v", got, want)
	}
}

func TestComposeMatchesProduct(t *testing.T) {
	pos := Vec3{0.1, 3, 2}
	rot := QuatFromAxisAngle(AxisZ, float32(math.Pi*0.65))
	scale := Vec3{1, -1, 1}

	got := Compose(pos, rot, scale)
	want := Translate(pos.X, pos.Y, pos.Z).Mul(rot.ToMat4()).Mul(Scale(scale.X, scale.Y, scale.Z))

	for i := 0; i < 16; i++ {
		if abs(got[i]-want[i]) > 0.0001 {
			t.Errorf("Compose element %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDeterminant3(t *testing.T) {
	if d := Identity().Determinant3(); d != 1 {
		t.Errorf("identity determinant = %v, want 1", d)
	}
	if d := Scale(1, -1, 1).Determinant3(); d != -1 {
		t.Errorf("mirror determinant = %v, want -1", d)
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{15, 0.5, 15}
	view := LookAt(eye, Vec3{0, 10, 0}, AxisY)
	got := view.TransformVec3(eye)
	if got.Length() > 0.0001 {
		t.Errorf("eye in view space = %v, want origin", got)
	}
}
