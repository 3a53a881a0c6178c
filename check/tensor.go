package check

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// UnflattenTensor reconstructs the canonical 3x3 matrix from a flattened
// tensor buffer. The encoding is implied by the length alone - the mesh
// formats carry no separate discriminator:
//
//	length 3: planar symmetric [xx, yy, xy], embedded in the top-left
//	          2x2 block with a zero third row and column
//	length 6: symmetric in Voigt-like order [xx, yy, zz, yz, xz, xy]
//	length 9: general tensor in column-major order
//
// The mapping is a pure re-indexing; no scaling or basis change is applied.
// Any other length is a data error.
func UnflattenTensor(flattened []float64) (*mat.Dense, error) {
	a := flattened
	switch len(a) {
	case 3:
		return mat.NewDense(3, 3, []float64{
			a[0], a[2], 0,
			a[2], a[1], 0,
			0, 0, 0,
		}), nil
	case 6:
		return mat.NewDense(3, 3, []float64{
			a[0], a[5], a[4],
			a[5], a[1], a[3],
			a[4], a[3], a[2],
		}), nil
	case 9:
		return mat.NewDense(3, 3, []float64{
			a[0], a[3], a[6],
			a[1], a[4], a[7],
			a[2], a[5], a[8],
		}), nil
	default:
		return nil, fmt.Errorf("invalid flattened tensor size: %d", len(a))
	}
}
