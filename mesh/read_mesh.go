package mesh

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ReadFile reads a mesh file based on extension
func ReadFile(filename string) (*Mesh, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".msh":
		return ReadGmsh22(filename)
	case ".obj":
		return ReadOBJ(filename)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", ext)
	}
}

// WriteFile writes a mesh file based on extension
func WriteFile(m *Mesh, filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".msh":
		return WriteGmsh22(m, filename)
	case ".obj":
		return WriteOBJ(m, filename)
	default:
		return fmt.Errorf("unsupported mesh format: %s", ext)
	}
}
