package mesh

import (
	"fmt"
	"sort"
)

// Mesh holds a geometry mesh in flat-buffer form: vertex coordinates packed
// as [x0 y0 z0 x1 y1 z1 ...], face and voxel connectivity packed as vertex
// indices, and named floating-point attribute buffers keyed by name. A mesh
// is built once by a reader (or a test fixture) and read-only afterwards.
type Mesh struct {
	dim        int
	vertices   []float64
	faces      []int
	voxels     []int
	facePerEl  int
	voxelPerEl int
	attributes map[string][]float64
}

// VertexPerFace and VertexPerVoxel for the simplex elements this toolkit
// works with (triangle surfaces, tetrahedral volumes).
const (
	TriangleSize = 3
	TetSize      = 4
)

// New builds a mesh from flat buffers. voxels may be empty for surface-only
// meshes. Buffer lengths must be whole multiples of the element sizes.
func New(dim int, vertices []float64, faces, voxels []int) (*Mesh, error) {
	if dim < 2 || dim > 3 {
		return nil, fmt.Errorf("unsupported mesh dimension: %d", dim)
	}
	if len(vertices)%dim != 0 {
		return nil, fmt.Errorf("vertex buffer length %d is not a multiple of dim %d",
			len(vertices), dim)
	}
	if len(faces)%TriangleSize != 0 {
		return nil, fmt.Errorf("face buffer length %d is not a multiple of %d",
			len(faces), TriangleSize)
	}
	if len(voxels)%TetSize != 0 {
		return nil, fmt.Errorf("voxel buffer length %d is not a multiple of %d",
			len(voxels), TetSize)
	}
	numVertices := len(vertices) / dim
	for _, v := range faces {
		if v < 0 || v >= numVertices {
			return nil, fmt.Errorf("face vertex index %d out of range [0,%d)", v, numVertices)
		}
	}
	for _, v := range voxels {
		if v < 0 || v >= numVertices {
			return nil, fmt.Errorf("voxel vertex index %d out of range [0,%d)", v, numVertices)
		}
	}
	return &Mesh{
		dim:        dim,
		vertices:   vertices,
		faces:      faces,
		voxels:     voxels,
		facePerEl:  TriangleSize,
		voxelPerEl: TetSize,
		attributes: make(map[string][]float64),
	}, nil
}

func (m *Mesh) Dim() int         { return m.dim }
func (m *Mesh) NumVertices() int { return len(m.vertices) / m.dim }
func (m *Mesh) NumFaces() int    { return len(m.faces) / m.facePerEl }
func (m *Mesh) NumVoxels() int   { return len(m.voxels) / m.voxelPerEl }

// VertexBuffer returns the packed coordinate buffer, length NumVertices*Dim.
func (m *Mesh) VertexBuffer() []float64 { return m.vertices }

// FaceBuffer returns the packed face connectivity, length NumFaces*TriangleSize.
func (m *Mesh) FaceBuffer() []int { return m.faces }

// VoxelBuffer returns the packed voxel connectivity, empty for surface meshes.
func (m *Mesh) VoxelBuffer() []int { return m.voxels }

// AddAttribute registers a named attribute buffer. Readers call this while
// populating a mesh; duplicate names are rejected.
func (m *Mesh) AddAttribute(name string, values []float64) error {
	if name == "" {
		return fmt.Errorf("attribute name must not be empty")
	}
	if _, ok := m.attributes[name]; ok {
		return fmt.Errorf("attribute %q already exists", name)
	}
	m.attributes[name] = values
	return nil
}

// Attribute looks up an attribute buffer by name.
func (m *Mesh) Attribute(name string) ([]float64, bool) {
	values, ok := m.attributes[name]
	return values, ok
}

// AttributeNames returns the attribute names in sorted order, so writers
// produce deterministic output.
func (m *Mesh) AttributeNames() []string {
	names := make([]string, 0, len(m.attributes))
	for name := range m.attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PrintStatistics prints a summary of the mesh contents
func (m *Mesh) PrintStatistics() {
	fmt.Printf("Mesh Statistics:\n")
	fmt.Printf("  Dimension: %d\n", m.dim)
	fmt.Printf("  Vertices:  %d\n", m.NumVertices())
	fmt.Printf("  Faces:     %d\n", m.NumFaces())
	fmt.Printf("  Voxels:    %d\n", m.NumVoxels())
	for _, name := range m.AttributeNames() {
		fmt.Printf("  Attribute %q: %d values\n", name, len(m.attributes[name]))
	}
}
