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
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := TranslateVec(Vec3{5, 10, 15})

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestUniformScale(t *testing.T) {
	m := UniformScale(100)

	if m[0] != 100 || m[5] != 100 || m[10] != 100 || m[15] != 1 {
		t.Errorf("UniformScale diagonal: got (%f, %f, %f, %f)", m[0], m[5], m[10], m[15])
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

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformDirection(Vec3{0, 1, 0})
	if got != (Vec3{0, 1, 0}) {
		t.Errorf("TransformDirection: got %v, want (0, 1, 0)", got)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2)) // 90 degrees
	result := m.TransformVec3(Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotateX90(t *testing.T) {
	m := RotateX(float32(math.Pi / 2))
	result := m.TransformVec3(Vec3{0, 1, 0})

	// (0,1,0) rotated about +X by 90 degrees lands on +Z
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z-1) > 0.001 {
		t.Errorf("RotateX 90: got %v, want (0, 0, 1)", result)
	}
}

func TestRotateAxisMatchesPrincipalAxes(t *testing.T) {
	angle := Radians(35)

	if got := RotateAxis(Vec3{0, 1, 0}, angle); !got.ApproxEqual(RotateY(angle), 1e-6) {
		t.Errorf("RotateAxis(Y) = %v, want %v", got, RotateY(angle))
	}
	// Axis length must not matter
	if got := RotateAxis(Vec3{4, 0, 0}, angle); !got.ApproxEqual(RotateX(angle), 1e-6) {
		t.Errorf("RotateAxis(4X) = %v, want %v", got, RotateX(angle))
	}
}

func TestRadians(t *testing.T) {
	if got := Radians(180); abs(got-math.Pi) > 1e-6 {
		t.Errorf("Radians(180) = %f, want pi", got)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
