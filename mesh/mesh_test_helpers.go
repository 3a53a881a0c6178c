package mesh

// Standard fixture meshes shared by the I/O and verification tests. These
// mirror the kinds of inputs the round-trip suite exercises: a small
// volumetric mesh with voxels and a surface-only mesh without them.

// TwoTetMesh builds a 3-D mesh of two tetrahedra sharing a face, with the
// six boundary triangles listed as faces.
func TwoTetMesh() *Mesh {
	vertices := []float64{
		0, 0, 0, // 0: origin
		1, 0, 0, // 1: x
		0, 1, 0, // 2: y
		0, 0, 1, // 3: z
		1, 1, 1, // 4: apex of the second tet
	}
	faces := []int{
		0, 1, 2,
		0, 1, 3,
		0, 2, 3,
		1, 2, 4,
		1, 3, 4,
		2, 3, 4,
	}
	voxels := []int{
		0, 1, 2, 3,
		1, 2, 3, 4,
	}
	m, err := New(3, vertices, faces, voxels)
	if err != nil {
		panic(err)
	}
	return m
}

// SurfaceTriMesh builds a 3-D surface mesh (a unit square split into two
// triangles) with no voxels.
func SurfaceTriMesh() *Mesh {
	vertices := []float64{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	}
	faces := []int{
		0, 1, 2,
		0, 2, 3,
	}
	m, err := New(3, vertices, faces, nil)
	if err != nil {
		panic(err)
	}
	return m
}
