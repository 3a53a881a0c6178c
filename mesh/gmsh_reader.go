package mesh

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Gmsh 2.2 element type codes used by this toolkit
const (
	gmshTriangle = 2
	gmshTet      = 4
)

// ReadGmsh22 reads a Gmsh MSH file format version 2.2 (ASCII), including
// $NodeData and $ElementData sections, which carry named per-vertex and
// per-voxel attributes.
func ReadGmsh22(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	r := &gmshReader{
		nodeIndex:  make(map[int]int),
		voxelIndex: make(map[int]int),
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "$MeshFormat":
			if err := r.readMeshFormat(scanner); err != nil {
				return nil, err
			}

		case "$Nodes":
			if err := r.readNodes(scanner); err != nil {
				return nil, err
			}

		case "$Elements":
			if err := r.readElements(scanner); err != nil {
				return nil, err
			}

		case "$NodeData", "$ElementData":
			if err := r.readDataSection(scanner, line); err != nil {
				return nil, err
			}

		default:
			// Skip sections this toolkit does not use
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				endMarker := "$End" + line[1:]
				for scanner.Scan() {
					if strings.TrimSpace(scanner.Text()) == endMarker {
						break
					}
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}

	msh, err := New(3, r.vertices, r.faces, r.voxels)
	if err != nil {
		return nil, err
	}
	for _, attr := range r.attributes {
		if err := msh.AddAttribute(attr.name, attr.values); err != nil {
			return nil, err
		}
	}
	return msh, nil
}

type namedBuffer struct {
	name   string
	values []float64
}

// gmshReader accumulates file contents before the Mesh is constructed. Node
// and element IDs in the file are arbitrary; nodeIndex and voxelIndex map
// them to 0-based buffer positions.
type gmshReader struct {
	vertices   []float64
	faces      []int
	voxels     []int
	nodeIndex  map[int]int
	voxelIndex map[int]int
	attributes []namedBuffer
}

func (r *gmshReader) readMeshFormat(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in MeshFormat")
	}

	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return fmt.Errorf("invalid MeshFormat line")
	}
	if parts[0] != "2.2" {
		return fmt.Errorf("unsupported MSH format version: %s", parts[0])
	}
	if fileType, _ := strconv.Atoi(parts[1]); fileType != 0 {
		return fmt.Errorf("binary MSH files are not supported")
	}

	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndMeshFormat" {
			break
		}
	}
	return nil
}

func (r *gmshReader) readNodes(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Nodes")
	}

	numNodes, _ := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	r.vertices = make([]float64, 0, 3*numNodes)

	for i := 0; i < numNodes; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading nodes")
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) < 4 {
			return fmt.Errorf("invalid node line: %s", scanner.Text())
		}

		nodeID, _ := strconv.Atoi(parts[0])
		x, _ := strconv.ParseFloat(parts[1], 64)
		y, _ := strconv.ParseFloat(parts[2], 64)
		z, _ := strconv.ParseFloat(parts[3], 64)

		r.nodeIndex[nodeID] = i
		r.vertices = append(r.vertices, x, y, z)
	}

	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndNodes" {
			break
		}
	}
	return nil
}

func (r *gmshReader) readElements(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Elements")
	}

	numElements, _ := strconv.Atoi(strings.TrimSpace(scanner.Text()))

	for i := 0; i < numElements; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading elements")
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) < 4 {
			return fmt.Errorf("invalid element line: %s", scanner.Text())
		}

		elemID, _ := strconv.Atoi(parts[0])
		elemType, _ := strconv.Atoi(parts[1])
		numTags, _ := strconv.Atoi(parts[2])

		nodeStart := 3 + numTags
		var numNodes int
		switch elemType {
		case gmshTriangle:
			numNodes = TriangleSize
		case gmshTet:
			numNodes = TetSize
		default:
			// Points, lines, higher-order elements: not part of the model
			continue
		}

		if len(parts) < nodeStart+numNodes {
			return fmt.Errorf("element %d: expected %d nodes, got %d",
				elemID, numNodes, len(parts)-nodeStart)
		}

		nodes := make([]int, numNodes)
		for j := 0; j < numNodes; j++ {
			nodeID, _ := strconv.Atoi(parts[nodeStart+j])
			idx, ok := r.nodeIndex[nodeID]
			if !ok {
				return fmt.Errorf("element %d references unknown node %d", elemID, nodeID)
			}
			nodes[j] = idx
		}

		switch elemType {
		case gmshTriangle:
			r.faces = append(r.faces, nodes...)
		case gmshTet:
			r.voxelIndex[elemID] = len(r.voxels) / TetSize
			r.voxels = append(r.voxels, nodes...)
		}
	}

	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndElements" {
			break
		}
	}
	return nil
}

// readDataSection reads a $NodeData or $ElementData block into a named
// attribute buffer. Entities are located through the ID maps built while
// reading $Nodes and $Elements, so the sections may appear in any order
// after them.
func (r *gmshReader) readDataSection(scanner *bufio.Scanner, section string) error {
	endMarker := "$End" + section[1:]

	name, numComponents, numEntities, err := readDataHeader(scanner, section)
	if err != nil {
		return err
	}

	values := make([]float64, numEntities*numComponents)
	for i := 0; i < numEntities; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF in %s", section)
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 1+numComponents {
			return fmt.Errorf("%s entity line has %d fields, want %d",
				section, len(parts), 1+numComponents)
		}

		id, _ := strconv.Atoi(parts[0])
		var idx int
		var ok bool
		if section == "$NodeData" {
			idx, ok = r.nodeIndex[id]
		} else {
			idx, ok = r.voxelIndex[id]
		}
		if !ok {
			return fmt.Errorf("%s %q references unknown entity %d", section, name, id)
		}
		if (idx+1)*numComponents > len(values) {
			return fmt.Errorf("%s %q: partial data sections are not supported", section, name)
		}

		for j := 0; j < numComponents; j++ {
			values[idx*numComponents+j], _ = strconv.ParseFloat(parts[1+j], 64)
		}
	}

	r.attributes = append(r.attributes, namedBuffer{name: name, values: values})

	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == endMarker {
			break
		}
	}
	return nil
}

// readDataHeader parses the string/real/integer tag preamble of a data
// section and returns the view name, component count and entity count.
func readDataHeader(scanner *bufio.Scanner, section string) (name string, numComponents, numEntities int, err error) {
	nextLine := func() (string, error) {
		if !scanner.Scan() {
			return "", fmt.Errorf("unexpected EOF in %s header", section)
		}
		return strings.TrimSpace(scanner.Text()), nil
	}

	line, err := nextLine()
	if err != nil {
		return
	}
	numStringTags, _ := strconv.Atoi(line)
	for i := 0; i < numStringTags; i++ {
		if line, err = nextLine(); err != nil {
			return
		}
		if i == 0 {
			name = strings.Trim(line, "\"")
		}
	}

	if line, err = nextLine(); err != nil {
		return
	}
	numRealTags, _ := strconv.Atoi(line)
	for i := 0; i < numRealTags; i++ {
		if _, err = nextLine(); err != nil {
			return
		}
	}

	if line, err = nextLine(); err != nil {
		return
	}
	numIntTags, _ := strconv.Atoi(line)
	intTags := make([]int, numIntTags)
	for i := 0; i < numIntTags; i++ {
		if line, err = nextLine(); err != nil {
			return
		}
		intTags[i], _ = strconv.Atoi(line)
	}

	// Integer tags are [timestep, numComponents, numEntities, ...]
	if numIntTags < 3 {
		err = fmt.Errorf("%s header has %d integer tags, want at least 3", section, numIntTags)
		return
	}
	numComponents, numEntities = intTags[1], intTags[2]
	if numComponents <= 0 || numEntities < 0 {
		err = fmt.Errorf("%s header has invalid sizes: %d components, %d entities",
			section, numComponents, numEntities)
	}
	return
}
