// Package check verifies that two meshes are numerically and structurally
// equivalent, channel by channel. Its main use is validating that a mesh
// survives a write/read round trip through a file format without loss:
// integer topology must match exactly, floating-point data within fixed
// absolute tolerances.
package check

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Mesh is the read-only view the checker needs. *mesh.Mesh satisfies it;
// any other loader's handle can be compared as long as it exposes the same
// flat buffers.
type Mesh interface {
	Dim() int
	NumVoxels() int
	VertexBuffer() []float64
	FaceBuffer() []int
	VoxelBuffer() []int
	Attribute(name string) ([]float64, bool)
}

// Default absolute tolerances. Coordinates are expected to be bit-for-bit
// stable across a round trip, so they get a much tighter bound than
// derived attribute data.
const (
	DefaultCoordinateTol = 1e-12
	DefaultAttributeTol  = 1e-6
)

// Checker compares mesh channels under configurable absolute tolerances.
// The zero value is unusable; call NewChecker for the defaults.
type Checker struct {
	CoordinateTol float64
	AttributeTol  float64
}

func NewChecker() Checker {
	return Checker{
		CoordinateTol: DefaultCoordinateTol,
		AttributeTol:  DefaultAttributeTol,
	}
}

// Vertices compares spatial dimension and coordinate buffers. The
// element-wise difference must stay within the coordinate tolerance at both
// its minimum and maximum.
func (c Checker) Vertices(m1, m2 Mesh) error {
	if m1.Dim() != m2.Dim() {
		return fmt.Errorf("vertices: dimension mismatch: %d vs %d", m1.Dim(), m2.Dim())
	}
	v1, v2 := m1.VertexBuffer(), m2.VertexBuffer()
	if len(v1) != len(v2) {
		return fmt.Errorf("vertices: buffer length mismatch: %d vs %d", len(v1), len(v2))
	}
	if len(v1) == 0 {
		return nil
	}
	min, max := diffRange(v1, v2)
	if math.Abs(min) > c.CoordinateTol || math.Abs(max) > c.CoordinateTol {
		return fmt.Errorf("vertices: coordinate difference outside %g: min %g, max %g",
			c.CoordinateTol, min, max)
	}
	return nil
}

// Faces compares face connectivity. Topology is integer data; the
// difference must be exactly zero everywhere.
func (c Checker) Faces(m1, m2 Mesh) error {
	return compareIndexBuffers("faces", m1.FaceBuffer(), m2.FaceBuffer())
}

// Voxels compares voxel connectivity like Faces, except that two meshes
// with no voxels at all are trivially equal and no difference is computed.
func (c Checker) Voxels(m1, m2 Mesh) error {
	v1, v2 := m1.VoxelBuffer(), m2.VoxelBuffer()
	if len(v1) == 0 && len(v2) == 0 {
		return nil
	}
	return compareIndexBuffers("voxels", v1, v2)
}

// Attribute compares a named attribute buffer present on both meshes. The
// element-wise difference must stay within the attribute tolerance.
func (c Checker) Attribute(m1, m2 Mesh, name string) error {
	a1, a2, err := lookupAttribute(m1, m2, name)
	if err != nil {
		return err
	}
	if len(a1) != len(a2) {
		return fmt.Errorf("attribute %q: buffer length mismatch: %d vs %d",
			name, len(a1), len(a2))
	}
	if len(a1) == 0 {
		return nil
	}
	min, max := diffRange(a1, a2)
	if math.Abs(min) > c.AttributeTol || math.Abs(max) > c.AttributeTol {
		return fmt.Errorf("attribute %q: difference outside %g: min %g, max %g",
			name, c.AttributeTol, min, max)
	}
	return nil
}

// VoxelTensorAttribute compares an attribute storing one flattened tensor
// per voxel. Each mesh's buffer must divide evenly over its voxels; the two
// sides may use different flattened encodings (e.g. one symmetric, one
// general) as long as each per-voxel stride is independently valid. Every
// voxel's segments are reconstructed to 3x3 form and compared within the
// attribute tolerance.
func (c Checker) VoxelTensorAttribute(m1, m2 Mesh, name string) error {
	a1, a2, err := lookupAttribute(m1, m2, name)
	if err != nil {
		return err
	}
	numVoxels := m1.NumVoxels()
	if numVoxels != m2.NumVoxels() {
		return fmt.Errorf("attribute %q: voxel count mismatch: %d vs %d",
			name, numVoxels, m2.NumVoxels())
	}
	if numVoxels == 0 {
		return nil
	}
	if len(a1)%numVoxels != 0 {
		return fmt.Errorf("attribute %q: %d values do not divide over %d voxels",
			name, len(a1), numVoxels)
	}
	if len(a2)%numVoxels != 0 {
		return fmt.Errorf("attribute %q: %d values do not divide over %d voxels",
			name, len(a2), numVoxels)
	}
	size1 := len(a1) / numVoxels
	size2 := len(a2) / numVoxels

	var diff mat.Dense
	for i := 0; i < numVoxels; i++ {
		t1, err := UnflattenTensor(a1[i*size1 : (i+1)*size1])
		if err != nil {
			return fmt.Errorf("attribute %q voxel %d: %v", name, i, err)
		}
		t2, err := UnflattenTensor(a2[i*size2 : (i+1)*size2])
		if err != nil {
			return fmt.Errorf("attribute %q voxel %d: %v", name, i, err)
		}
		diff.Sub(t1, t2)
		d := diff.RawMatrix().Data
		min, max := floats.Min(d), floats.Max(d)
		if math.Abs(min) > c.AttributeTol || math.Abs(max) > c.AttributeTol {
			return fmt.Errorf("attribute %q voxel %d: tensor difference outside %g: min %g, max %g",
				name, i, c.AttributeTol, min, max)
		}
	}
	return nil
}

func lookupAttribute(m1, m2 Mesh, name string) (a1, a2 []float64, err error) {
	var ok bool
	if a1, ok = m1.Attribute(name); !ok {
		return nil, nil, fmt.Errorf("attribute %q missing from first mesh", name)
	}
	if a2, ok = m2.Attribute(name); !ok {
		return nil, nil, fmt.Errorf("attribute %q missing from second mesh", name)
	}
	return a1, a2, nil
}

// diffRange returns the minimum and maximum of the element-wise difference
// a - b. Callers guarantee equal, non-zero lengths.
func diffRange(a, b []float64) (min, max float64) {
	diff := make([]float64, len(a))
	floats.SubTo(diff, a, b)
	return floats.Min(diff), floats.Max(diff)
}

func compareIndexBuffers(channel string, v1, v2 []int) error {
	if len(v1) != len(v2) {
		return fmt.Errorf("%s: buffer length mismatch: %d vs %d", channel, len(v1), len(v2))
	}
	min, max := 0, 0
	for i := range v1 {
		d := v1[i] - v2[i]
		if i == 0 || d < min {
			min = d
		}
		if i == 0 || d > max {
			max = d
		}
	}
	if min != 0 || max != 0 {
		return fmt.Errorf("%s: index difference must be zero: min %d, max %d", channel, min, max)
	}
	return nil
}
