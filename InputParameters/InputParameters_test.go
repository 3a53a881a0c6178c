package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerificationParameters(t *testing.T) {
	data := []byte(`
Title: "Tet round trip"
CoordinateTolerance: 1.e-12
AttributeTolerance: 1.e-6
Channels:
  - vertices
  - faces
  - voxels
Attributes:
  - pressure
VoxelTensorAttributes:
  - voxel_stress
`)
	vp := &VerificationParameters{}
	require.NoError(t, vp.Parse(data))

	assert.Equal(t, "Tet round trip", vp.Title)
	assert.Equal(t, 1e-12, vp.CoordinateTolerance)
	assert.Equal(t, 1e-6, vp.AttributeTolerance)
	assert.Equal(t, []string{"vertices", "faces", "voxels"}, vp.Channels)
	assert.Equal(t, []string{"pressure"}, vp.Attributes)
	assert.Equal(t, []string{"voxel_stress"}, vp.VoxelTensorAttributes)
}

func TestParseRejectsUnknownChannel(t *testing.T) {
	data := []byte(`
Channels:
  - vertices
  - edges
`)
	vp := &VerificationParameters{}
	err := vp.Parse(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "edges")
}

func TestParseEmptyDocument(t *testing.T) {
	vp := &VerificationParameters{}
	require.NoError(t, vp.Parse([]byte("")))
	assert.Empty(t, vp.Channels)
	assert.Zero(t, vp.AttributeTolerance)
}
