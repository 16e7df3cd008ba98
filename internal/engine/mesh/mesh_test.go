package mesh

import (
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/showroom/pkg/formats"
)

const wedgeOBJ = `v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
vt 0 0
vt 1 0
vt 0 1
vn 0 0 -1
vn 0 -1 0
vn 1 0 0
f 1/1/1 3/3/2 2/2/3
f 1/1/2 2/2/2 4/3/2
`

func writeModel(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestTriangleLayout(t *testing.T) {
	assert.Equal(t, uintptr(TriangleSize), unsafe.Sizeof(Triangle{}))
}

func TestFromOBJ(t *testing.T) {
	obj, err := formats.ParseOBJ([]byte(wedgeOBJ))
	require.NoError(t, err)

	m := FromOBJ("wedge", obj)
	require.Equal(t, 2, m.TriangleCount())
	assert.Len(t, m.Triangles, obj.TriangleCount())

	tri := m.Triangles[0]
	assert.Equal(t, [4]float32{0, 1, 0, 1}, [4]float32(tri.Pos[1]))
	assert.Equal(t, [4]float32{0, 1, 0, 0}, [4]float32(tri.UV[1]))

	// Per-vertex normals differ across corners
	assert.False(t, tri.HasFaceNormal())
	// The second face references one normal three times
	assert.True(t, m.Triangles[1].HasFaceNormal())

	for _, tri := range m.Triangles {
		for j := 0; j < 3; j++ {
			assert.Equal(t, float32(1), tri.Pos[j][3], "position w")
			assert.Equal(t, float32(1), tri.Normal[j][3], "normal w")
		}
	}
}

func TestFromOBJ_Deterministic(t *testing.T) {
	path := writeModel(t, t.TempDir(), "wedge.3Dobj", wedgeOBJ)

	a, err := LoadFile("a", path)
	require.NoError(t, err)
	b, err := LoadFile("b", path)
	require.NoError(t, err)

	assert.Equal(t, a.Triangles, b.Triangles)
}

func TestPlaneHasFaceNormals(t *testing.T) {
	p := Plane("ground", 5)
	require.Equal(t, 2, p.TriangleCount())

	for i, tri := range p.Triangles {
		assert.True(t, tri.HasFaceNormal(), "triangle %d", i)
		assert.Equal(t, [4]float32{0, 1, 0, 1}, [4]float32(tri.Normal[0]))
		for j := 0; j < 3; j++ {
			assert.Equal(t, float32(0), tri.Pos[j][1])
			assert.Equal(t, float32(1), tri.Pos[j][3])
		}
	}
	assert.Equal(t, [4]float32{-5, 0, 5, 1}, [4]float32(p.Triangles[0].Pos[0]))
}

func TestNilMeshTriangleCount(t *testing.T) {
	var m *Mesh
	assert.Equal(t, 0, m.TriangleCount())
}
