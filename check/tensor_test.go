package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestUnflattenPlanarSymmetric(t *testing.T) {
	tensor, err := UnflattenTensor([]float64{1, 2, 3})
	require.NoError(t, err)

	expected := mat.NewDense(3, 3, []float64{
		1, 3, 0,
		3, 2, 0,
		0, 0, 0,
	})
	assert.True(t, mat.Equal(expected, tensor),
		"got:\n%v", mat.Formatted(tensor))
}

func TestUnflattenSymmetric(t *testing.T) {
	tensor, err := UnflattenTensor([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	expected := mat.NewDense(3, 3, []float64{
		1, 6, 5,
		6, 2, 4,
		5, 4, 3,
	})
	assert.True(t, mat.Equal(expected, tensor),
		"got:\n%v", mat.Formatted(tensor))
}

func TestUnflattenGeneral(t *testing.T) {
	tensor, err := UnflattenTensor([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.NoError(t, err)

	// Column-major fill
	expected := mat.NewDense(3, 3, []float64{
		1, 4, 7,
		2, 5, 8,
		3, 6, 9,
	})
	assert.True(t, mat.Equal(expected, tensor),
		"got:\n%v", mat.Formatted(tensor))
}

func TestUnflattenInvalidSizes(t *testing.T) {
	for _, size := range []int{0, 1, 2, 4, 5, 7, 8, 10} {
		tensor, err := UnflattenTensor(make([]float64, size))
		assert.Nil(t, tensor)
		require.Error(t, err, "size %d must be rejected", size)
		assert.Contains(t, err.Error(), "invalid flattened tensor size")
	}
}

func TestUnflattenSymmetry(t *testing.T) {
	// Length 3 and 6 encodings must always produce symmetric matrices
	for _, flat := range [][]float64{
		{0.25, -1.5, 3.75},
		{1.1, 2.2, 3.3, -4.4, 5.5, -6.6},
	} {
		tensor, err := UnflattenTensor(flat)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			for j := i + 1; j < 3; j++ {
				assert.Equal(t, tensor.At(i, j), tensor.At(j, i))
			}
		}
	}
}
