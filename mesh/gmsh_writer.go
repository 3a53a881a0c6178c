package mesh

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
)

// WriteGmsh22 writes a mesh as a Gmsh MSH 2.2 ASCII file. Triangles are
// emitted first, then tets; attribute buffers become $NodeData or
// $ElementData sections depending on which element count divides them.
// Coordinates and attribute values are formatted with the shortest
// representation that parses back to the identical float64, so a write/read
// cycle through this format is lossless.
func WriteGmsh22(m *Mesh, filename string) error {
	if m.Dim() != 3 {
		return fmt.Errorf("gmsh output requires a 3-D mesh, got dim %d", m.Dim())
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	fmt.Fprintf(w, "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n")

	writeGmshNodes(w, m)
	writeGmshElements(w, m)

	for _, name := range m.AttributeNames() {
		values, _ := m.Attribute(name)
		if err := writeGmshData(w, m, name, values); err != nil {
			return err
		}
	}

	return w.Flush()
}

func writeGmshNodes(w *bufio.Writer, m *Mesh) {
	vertices := m.VertexBuffer()
	numVertices := m.NumVertices()

	fmt.Fprintf(w, "$Nodes\n%d\n", numVertices)
	for i := 0; i < numVertices; i++ {
		fmt.Fprintf(w, "%d %s %s %s\n", i+1,
			formatFloat(vertices[3*i]),
			formatFloat(vertices[3*i+1]),
			formatFloat(vertices[3*i+2]))
	}
	fmt.Fprintf(w, "$EndNodes\n")
}

func writeGmshElements(w *bufio.Writer, m *Mesh) {
	faces := m.FaceBuffer()
	voxels := m.VoxelBuffer()

	fmt.Fprintf(w, "$Elements\n%d\n", m.NumFaces()+m.NumVoxels())
	elemID := 1
	for i := 0; i < m.NumFaces(); i++ {
		fmt.Fprintf(w, "%d %d 2 0 0 %d %d %d\n", elemID, gmshTriangle,
			faces[3*i]+1, faces[3*i+1]+1, faces[3*i+2]+1)
		elemID++
	}
	for i := 0; i < m.NumVoxels(); i++ {
		fmt.Fprintf(w, "%d %d 2 0 0 %d %d %d %d\n", elemID, gmshTet,
			voxels[4*i]+1, voxels[4*i+1]+1, voxels[4*i+2]+1, voxels[4*i+3]+1)
		elemID++
	}
	fmt.Fprintf(w, "$EndElements\n")
}

func writeGmshData(w *bufio.Writer, m *Mesh, name string, values []float64) error {
	components, perVoxel, err := classifyAttribute(m, name, values)
	if err != nil {
		return err
	}

	section := "$NodeData"
	numEntities := m.NumVertices()
	// Tet element IDs follow the triangles in writeGmshElements
	idOffset := 1 + m.NumFaces()
	if perVoxel {
		section = "$ElementData"
		numEntities = m.NumVoxels()
	} else {
		idOffset = 1
	}

	fmt.Fprintf(w, "%s\n", section)
	fmt.Fprintf(w, "1\n\"%s\"\n", name)
	fmt.Fprintf(w, "1\n0\n")
	fmt.Fprintf(w, "3\n0\n%d\n%d\n", components, numEntities)
	for i := 0; i < numEntities; i++ {
		fmt.Fprintf(w, "%d", i+idOffset)
		for j := 0; j < components; j++ {
			fmt.Fprintf(w, " %s", formatFloat(values[i*components+j]))
		}
		fmt.Fprintf(w, "\n")
	}
	fmt.Fprintf(w, "$End%s\n", section[1:])
	return nil
}

// classifyAttribute decides whether a buffer is per-voxel or per-vertex.
// Nothing in the data model tags the association, so it is inferred from
// divisibility: voxel placement wins when the per-voxel stride is a
// plausible scalar/vector/tensor width, otherwise the buffer must divide
// evenly over the vertices.
func classifyAttribute(m *Mesh, name string, values []float64) (components int, perVoxel bool, err error) {
	if n := m.NumVoxels(); n > 0 && len(values)%n == 0 {
		stride := len(values) / n
		switch stride {
		case 1, 3, 6, 9:
			return stride, true, nil
		}
	}
	if n := m.NumVertices(); n > 0 && len(values)%n == 0 {
		return len(values) / n, false, nil
	}
	return 0, false, fmt.Errorf("attribute %q with %d values fits neither %d vertices nor %d voxels",
		name, len(values), m.NumVertices(), m.NumVoxels())
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
