package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	_, err := New(4, nil, nil, nil)
	require.Error(t, err)

	_, err = New(3, []float64{1, 2}, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a multiple of dim")

	_, err = New(3, []float64{0, 0, 0}, []int{0, 0}, nil)
	require.Error(t, err)

	_, err = New(3, []float64{0, 0, 0}, nil, []int{0, 0, 0})
	require.Error(t, err)

	// Out-of-range connectivity
	_, err = New(3, []float64{0, 0, 0}, []int{0, 0, 1}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestMeshCounts(t *testing.T) {
	m := TwoTetMesh()
	assert.Equal(t, 3, m.Dim())
	assert.Equal(t, 5, m.NumVertices())
	assert.Equal(t, 6, m.NumFaces())
	assert.Equal(t, 2, m.NumVoxels())

	s := SurfaceTriMesh()
	assert.Equal(t, 4, s.NumVertices())
	assert.Equal(t, 2, s.NumFaces())
	assert.Equal(t, 0, s.NumVoxels())
	assert.Empty(t, s.VoxelBuffer())
}

func TestAttributes(t *testing.T) {
	m := TwoTetMesh()
	require.NoError(t, m.AddAttribute("voxel_stress", make([]float64, 12)))
	require.NoError(t, m.AddAttribute("pressure", make([]float64, 5)))

	_, ok := m.Attribute("voxel_stress")
	assert.True(t, ok)
	_, ok = m.Attribute("velocity")
	assert.False(t, ok)

	err := m.AddAttribute("pressure", make([]float64, 5))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	err = m.AddAttribute("", nil)
	require.Error(t, err)

	assert.Equal(t, []string{"pressure", "voxel_stress"}, m.AttributeNames())
}
