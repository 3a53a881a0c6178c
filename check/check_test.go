package check

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMesh gives the tests direct control over every channel the checker
// reads, without going through a file loader.
type testMesh struct {
	dim        int
	vertices   []float64
	faces      []int
	voxels     []int
	numVoxels  int
	attributes map[string][]float64
}

func (m *testMesh) Dim() int                { return m.dim }
func (m *testMesh) NumVoxels() int          { return m.numVoxels }
func (m *testMesh) VertexBuffer() []float64 { return m.vertices }
func (m *testMesh) FaceBuffer() []int       { return m.faces }
func (m *testMesh) VoxelBuffer() []int      { return m.voxels }
func (m *testMesh) Attribute(name string) ([]float64, bool) {
	values, ok := m.attributes[name]
	return values, ok
}

func tetPair() *testMesh {
	return &testMesh{
		dim:       3,
		vertices:  []float64{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 1, 1, 1},
		faces:     []int{0, 1, 2, 0, 1, 3, 0, 2, 3},
		voxels:    []int{0, 1, 2, 3, 1, 2, 3, 4},
		numVoxels: 2,
	}
}

func TestVerticesEquivalent(t *testing.T) {
	c := NewChecker()
	m1, m2 := tetPair(), tetPair()
	assert.NoError(t, c.Vertices(m1, m2))
}

func TestVerticesDimensionMismatch(t *testing.T) {
	c := NewChecker()
	m1 := tetPair()
	m2 := tetPair()
	m2.dim = 2
	err := c.Vertices(m1, m2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension mismatch")
}

func TestVerticesLengthMismatch(t *testing.T) {
	c := NewChecker()
	m1 := tetPair()
	m2 := tetPair()
	m2.vertices = m2.vertices[:12]
	err := c.Vertices(m1, m2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length mismatch")
}

func TestVerticesCoordinateDrift(t *testing.T) {
	c := NewChecker()
	m1 := tetPair()
	m2 := tetPair()
	// Well above the coordinate tolerance, well below the attribute one:
	// coordinates must be held to the tighter bound
	m2.vertices[4] += 1e-9
	assert.Error(t, c.Vertices(m1, m2))
}

func TestFacesEquivalentAndMismatch(t *testing.T) {
	c := NewChecker()
	m1, m2 := tetPair(), tetPair()
	assert.NoError(t, c.Faces(m1, m2))

	m2.faces = append([]int{}, m1.faces...)
	m2.faces[5] = 0
	err := c.Faces(m1, m2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "faces")
}

func TestVoxelsEquivalent(t *testing.T) {
	c := NewChecker()
	m1, m2 := tetPair(), tetPair()
	assert.NoError(t, c.Voxels(m1, m2))
}

func TestVoxelsBothEmpty(t *testing.T) {
	c := NewChecker()
	m1, m2 := tetPair(), tetPair()
	m1.voxels, m1.numVoxels = nil, 0
	m2.voxels, m2.numVoxels = nil, 0
	assert.NoError(t, c.Voxels(m1, m2))
}

func TestVoxelsOneEmpty(t *testing.T) {
	c := NewChecker()
	m1, m2 := tetPair(), tetPair()
	m2.voxels, m2.numVoxels = nil, 0
	err := c.Voxels(m1, m2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length mismatch")
}

func TestAttributeToleranceBoundary(t *testing.T) {
	c := NewChecker()
	m1, m2 := tetPair(), tetPair()
	n := 10
	a1 := make([]float64, n)
	a2 := make([]float64, n)
	for i := range a2 {
		a2[i] = 1e-6
	}
	m1.attributes = map[string][]float64{"pressure": a1}
	m2.attributes = map[string][]float64{"pressure": a2}

	// Differing by exactly the tolerance at every element still passes
	assert.NoError(t, c.Attribute(m1, m2, "pressure"))

	for i := range a2 {
		a2[i] = 2e-6
	}
	err := c.Attribute(m1, m2, "pressure")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pressure")
}

func TestAttributeMissing(t *testing.T) {
	c := NewChecker()
	m1, m2 := tetPair(), tetPair()
	m1.attributes = map[string][]float64{"pressure": {1, 2}}
	m2.attributes = map[string][]float64{}
	err := c.Attribute(m1, m2, "pressure")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing from second mesh")

	err = c.Attribute(m2, m1, "pressure")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing from first mesh")
}

func TestAttributeLengthMismatch(t *testing.T) {
	c := NewChecker()
	m1, m2 := tetPair(), tetPair()
	m1.attributes = map[string][]float64{"pressure": {1, 2, 3}}
	m2.attributes = map[string][]float64{"pressure": {1, 2}}
	err := c.Attribute(m1, m2, "pressure")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length mismatch")
}

func TestVoxelTensorAttributeRoundTrip(t *testing.T) {
	c := NewChecker()
	m1, m2 := tetPair(), tetPair()
	stress := []float64{
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12,
	}
	m1.attributes = map[string][]float64{"voxel_stress": stress}
	m2.attributes = map[string][]float64{"voxel_stress": append([]float64{}, stress...)}
	assert.NoError(t, c.VoxelTensorAttribute(m1, m2, "voxel_stress"))
}

func TestVoxelTensorAttributePerturbation(t *testing.T) {
	c := NewChecker()
	m1, m2 := tetPair(), tetPair()
	stress := []float64{
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12,
	}
	perturbed := append([]float64{}, stress...)
	perturbed[8] += 5e-6 // lands in voxel 1
	m1.attributes = map[string][]float64{"voxel_stress": stress}
	m2.attributes = map[string][]float64{"voxel_stress": perturbed}

	err := c.VoxelTensorAttribute(m1, m2, "voxel_stress")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "voxel 1")
}

func TestVoxelTensorAttributeCrossEncoding(t *testing.T) {
	c := NewChecker()
	m1, m2 := tetPair(), tetPair()
	// Same two symmetric tensors: one side Voigt-like, the other the full
	// column-major expansion
	symmetric := []float64{
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12,
	}
	general := []float64{
		1, 6, 5, 6, 2, 4, 5, 4, 3,
		7, 12, 11, 12, 8, 10, 11, 10, 9,
	}
	m1.attributes = map[string][]float64{"voxel_stress": symmetric}
	m2.attributes = map[string][]float64{"voxel_stress": general}
	assert.NoError(t, c.VoxelTensorAttribute(m1, m2, "voxel_stress"))
}

func TestVoxelTensorAttributeInvalidStride(t *testing.T) {
	c := NewChecker()
	m1, m2 := tetPair(), tetPair()
	// 8 values over 2 voxels: divides evenly, but stride 4 is not a valid
	// flattened encoding
	m1.attributes = map[string][]float64{"voxel_stress": make([]float64, 8)}
	m2.attributes = map[string][]float64{"voxel_stress": make([]float64, 12)}

	err := c.VoxelTensorAttribute(m1, m2, "voxel_stress")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid flattened tensor size: 4")
}

func TestVoxelTensorAttributeIndivisible(t *testing.T) {
	c := NewChecker()
	m1, m2 := tetPair(), tetPair()
	m1.attributes = map[string][]float64{"voxel_stress": make([]float64, 7)}
	m2.attributes = map[string][]float64{"voxel_stress": make([]float64, 12)}

	err := c.VoxelTensorAttribute(m1, m2, "voxel_stress")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "do not divide over 2 voxels")
}

func TestCheckerCustomTolerance(t *testing.T) {
	c := NewChecker()
	c.AttributeTol = 1e-3
	m1, m2 := tetPair(), tetPair()
	m1.attributes = map[string][]float64{"pressure": {0, 0}}
	m2.attributes = map[string][]float64{"pressure": {5e-4, -5e-4}}
	assert.NoError(t, c.Attribute(m1, m2, "pressure"))
}

func ExampleChecker_Vertices() {
	c := NewChecker()
	m1, m2 := tetPair(), tetPair()
	m2.vertices[0] += 0.5
	fmt.Println(c.Vertices(m1, m2))
	// Output: vertices: coordinate difference outside 1e-12: min -0.5, max 0
}
