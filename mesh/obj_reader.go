package mesh

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReadOBJ reads a Wavefront OBJ surface mesh: vertex positions and
// triangular faces. Normals, texture coordinates and grouping directives
// are skipped; OBJ carries no volumetric elements or attribute data, so the
// result always has zero voxels and no attributes.
func ReadOBJ(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var (
		vertices []float64
		faces    []int
	)

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		switch parts[0] {
		case "v":
			if len(parts) < 4 {
				return nil, fmt.Errorf("line %d: invalid vertex: %s", lineNo, line)
			}
			for _, s := range parts[1:4] {
				x, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid coordinate %q", lineNo, s)
				}
				vertices = append(vertices, x)
			}

		case "f":
			if len(parts) != 4 {
				return nil, fmt.Errorf("line %d: only triangular faces are supported: %s",
					lineNo, line)
			}
			for _, s := range parts[1:4] {
				// Face entries may be v, v/vt, or v/vt/vn; the vertex
				// index is always the leading field
				vField := strings.SplitN(s, "/", 2)[0]
				v, err := strconv.Atoi(vField)
				if err != nil || v == 0 {
					return nil, fmt.Errorf("line %d: invalid face index %q", lineNo, s)
				}
				if v < 0 {
					// Negative indices are relative to the current vertex count
					v = len(vertices)/3 + v + 1
				}
				faces = append(faces, v-1)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}

	return New(3, vertices, faces, nil)
}
