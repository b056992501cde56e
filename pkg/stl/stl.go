// Package stl writes triangle meshes as binary STL files so reconstructed
// vessels can be opened in standard 3D tooling.
package stl

import (
	"encoding/binary"
	"fmt"
	"os"

	"shardsto3d/pkg/reconstruction"
)

// Triangle is one STL facet: a normal and three vertices, all float32 as
// required by the binary STL layout.
type Triangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
}

// MeshToTriangles flattens an indexed mesh into STL facets. Face normals
// are recomputed from the winding so the file is self-consistent even if
// the mesh carries smoothed per-vertex normals.
func MeshToTriangles(mesh *reconstruction.Mesh) []Triangle {
	triangles := make([]Triangle, 0, mesh.TriangleCount())

	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a := mesh.Vertices[mesh.Indices[i]]
		b := mesh.Vertices[mesh.Indices[i+1]]
		c := mesh.Vertices[mesh.Indices[i+2]]

		n := b.Sub(a).Cross(c.Sub(a))
		if norm := n.Norm(); norm > 0 {
			n = n.Mul(1 / norm)
		}

		triangles = append(triangles, Triangle{
			Normal:  [3]float32{float32(n.X), float32(n.Y), float32(n.Z)},
			Vertex1: [3]float32{float32(a.X), float32(a.Y), float32(a.Z)},
			Vertex2: [3]float32{float32(b.X), float32(b.Y), float32(b.Z)},
			Vertex3: [3]float32{float32(c.X), float32(c.Y), float32(c.Z)},
		})
	}

	return triangles
}

// SaveToSTL writes triangles to filename in binary STL format: an 80-byte
// header, a uint32 triangle count, then 50 bytes per facet.
func SaveToSTL(filename string, triangles []Triangle) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create STL file: %w", err)
	}
	defer file.Close()

	var header [80]byte
	copy(header[:], "shardsto3d reconstruction")
	if _, err := file.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write STL header: %w", err)
	}

	if err := binary.Write(file, binary.LittleEndian, uint32(len(triangles))); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}

	for _, tri := range triangles {
		for _, vec := range [][3]float32{tri.Normal, tri.Vertex1, tri.Vertex2, tri.Vertex3} {
			if err := binary.Write(file, binary.LittleEndian, vec); err != nil {
				return fmt.Errorf("failed to write triangle data: %w", err)
			}
		}
		// Attribute byte count, unused.
		if err := binary.Write(file, binary.LittleEndian, uint16(0)); err != nil {
			return fmt.Errorf("failed to write attribute bytes: %w", err)
		}
	}

	return nil
}
