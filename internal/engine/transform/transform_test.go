package transform

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/showroom/internal/engine/mesh"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/pkg/math"
)

const eps = 1e-5

func assertMat(t *testing.T, want mgl32.Mat4, got math.Mat4, msg string) {
	t.Helper()
	assert.True(t, math.Mat4(want).ApproxEqual(got, eps), "%s\nwant %v\ngot  %v", msg, want, got)
}

func TestWheelComposition(t *testing.T) {
	s := NewStage(100, 4)

	for _, tt := range []float32{0, 0.5, 1, 7.25, 120} {
		body := s.Body(tt)
		bodyRef := mgl32.HomogRotate3DY(tt / 4)
		assertMat(t, bodyRef, body, "body")

		m := s.Matrices(tt, math.Vec3{})

		frontLeft := bodyRef.
			Mul4(mgl32.Translate3D(0.870, 0.180, 1.530)).
			Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(35))).
			Mul4(mgl32.HomogRotate3DX(3 * tt))
		assertMat(t, frontLeft, m[scene.SlotWheelFrontLeft], "front-left")

		backLeft := bodyRef.
			Mul4(mgl32.Translate3D(0.870, 0.180, -1.580)).
			Mul4(mgl32.HomogRotate3DX(3 * tt))
		assertMat(t, backLeft, m[scene.SlotWheelBackLeft], "back-left")

		backRight := bodyRef.
			Mul4(mgl32.Translate3D(-0.870, 0.180, -1.580)).
			Mul4(mgl32.HomogRotate3DX(3 * tt))
		assertMat(t, backRight, m[scene.SlotWheelBackRight], "back-right")

		frontRight := bodyRef.
			Mul4(mgl32.Translate3D(-0.870, 0.180, 1.530)).
			Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(35))).
			Mul4(mgl32.HomogRotate3DX(3 * tt))
		assertMat(t, frontRight, m[scene.SlotWheelFrontRight], "front-right")
	}
}

func TestWheelsTrackBody(t *testing.T) {
	s := NewStage(100, 4)
	m := s.Matrices(3, math.Vec3{})

	// The hub of every wheel sits at body * offset regardless of roll.
	for _, a := range Wheels {
		hub := m[a.Slot].TransformVec3(math.Vec3{})
		want := m[scene.SlotBody].TransformVec3(a.Offset)
		assert.InDelta(t, want.X, hub.X, eps, a.Name)
		assert.InDelta(t, want.Y, hub.Y, eps, a.Name)
		assert.InDelta(t, want.Z, hub.Z, eps, a.Name)
	}
}

func TestStaticSlots(t *testing.T) {
	s := NewStage(100, 4)
	eye := math.Vec3{X: 0, Y: 5, Z: 10}

	a := s.Matrices(0, eye)
	b := s.Matrices(42, eye)
	assert.Equal(t, a[scene.SlotGround], b[scene.SlotGround], "ground is static")
	assertMat(t, mgl32.Translate3D(0, -0.5, 0), a[scene.SlotGround], "ground")

	sky := mgl32.Translate3D(0, 1, 10).Mul4(mgl32.Scale3D(100, 100, 100))
	assertMat(t, sky, a[scene.SlotSkybox], "skybox")
}

func TestSkyboxFollowsEye(t *testing.T) {
	s := NewStage(100, 4)

	for _, eye := range []math.Vec3{{}, {X: 3, Y: 2, Z: -7}, {Y: 5, Z: 10}} {
		center := s.Skybox(eye).TransformVec3(math.Vec3{})
		assert.Equal(t, eye.Sub(math.Vec3{Y: 4}), center)
	}
}

func TestUpdateWritesScene(t *testing.T) {
	sc, err := scene.New(mesh.Plane("ground", 5), mesh.Plane("sky", 1), mesh.Plane("wheel", 1))
	require.NoError(t, err)

	s := NewStage(100, 4)
	s.Update(sc, 2, math.Vec3{Y: 5, Z: 10})
	assert.Equal(t, s.Matrices(2, math.Vec3{Y: 5, Z: 10}), sc.Matrices())
}

func TestApply(t *testing.T) {
	wheel := mesh.Plane("wheel", 1)
	sc, err := scene.New(mesh.Plane("ground", 5), mesh.Plane("sky", 1), wheel)
	require.NoError(t, err)
	require.NoError(t, sc.SwapMesh(scene.SlotBody, mesh.Plane("car", 2)))

	s := NewStage(100, 4)
	s.Update(sc, 1.5, math.Vec3{Y: 5, Z: 10})

	src := sc.Pack()
	dst := make([]mesh.Triangle, len(src))
	ranges := sc.Ranges()
	matrices := sc.Matrices()
	Apply(dst, src, ranges, matrices)

	for i := range src {
		slot, ok := scene.SlotOf(ranges, uint32(i))
		require.True(t, ok)
		m := matrices[slot]
		for v := 0; v < 3; v++ {
			want := m.TransformVec3(src[i].Pos[v].XYZ())
			got := dst[i].Pos[v]
			assert.InDelta(t, want.X, got[0], eps)
			assert.InDelta(t, want.Y, got[1], eps)
			assert.InDelta(t, want.Z, got[2], eps)
			assert.Equal(t, float32(1), got[3])
			assert.Equal(t, float32(1), dst[i].Normal[v][3])
			assert.InDelta(t, 1, dst[i].Normal[v].XYZ().Length(), eps)
			assert.Equal(t, src[i].UV[v], dst[i].UV[v])
		}
	}

	// Source block is untouched
	assert.Equal(t, wheel.Triangles[0], src[ranges[scene.SlotWheelFrontLeft].Offset])
}

func TestTransformTriangleNormals(t *testing.T) {
	tri := mesh.Plane("p", 1).Triangles[0]
	got := TransformTriangle(tri, math.RotateX(math.Radians(90)).Mul(math.UniformScale(100)))

	// +Y normal rotated about X by 90 degrees points along +Z, unit length
	for v := 0; v < 3; v++ {
		assert.InDelta(t, 0, got.Normal[v][0], eps)
		assert.InDelta(t, 0, got.Normal[v][1], eps)
		assert.InDelta(t, 1, got.Normal[v][2], eps)
	}
}
