package mesh

import (
	"bufio"
	"fmt"
	"os"
)

// WriteOBJ writes the surface channels of a mesh as Wavefront OBJ. Voxels
// and attributes have no representation in OBJ and must be absent -
// silently dropping them would make a round trip lossy without warning.
func WriteOBJ(m *Mesh, filename string) error {
	if m.Dim() != 3 {
		return fmt.Errorf("obj output requires a 3-D mesh, got dim %d", m.Dim())
	}
	if m.NumVoxels() > 0 {
		return fmt.Errorf("obj cannot represent %d voxels", m.NumVoxels())
	}
	if names := m.AttributeNames(); len(names) > 0 {
		return fmt.Errorf("obj cannot represent attributes %v", names)
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	vertices := m.VertexBuffer()
	for i := 0; i < m.NumVertices(); i++ {
		fmt.Fprintf(w, "v %s %s %s\n",
			formatFloat(vertices[3*i]),
			formatFloat(vertices[3*i+1]),
			formatFloat(vertices[3*i+2]))
	}

	faces := m.FaceBuffer()
	for i := 0; i < m.NumFaces(); i++ {
		fmt.Fprintf(w, "f %d %d %d\n", faces[3*i]+1, faces[3*i+1]+1, faces[3*i+2]+1)
	}

	return w.Flush()
}
