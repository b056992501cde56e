package reconstruction

import (
	"math"

	"github.com/golang/geo/r3"
)

// defaultLatheSegments is the number of angular steps used when revolving
// a profile around the vertical axis.
const defaultLatheSegments = 64

// minProfileSamples is the smallest merged profile the lathe will accept;
// anything shorter falls back to the default vase.
const minProfileSamples = 3

// Material is the fixed matte surface descriptor attached to every mesh.
type Material struct {
	// DiffuseColor is the RGB diffuse color in [0,1] per channel.
	DiffuseColor [3]float64

	// Metalness and Roughness are PBR parameters.
	Metalness float64
	Roughness float64

	// DoubleSided requests rendering of both faces; lathe meshes from
	// partial profiles are open surfaces.
	DoubleSided bool
}

// defaultMaterial is a matte terracotta clay look.
func defaultMaterial() Material {
	return Material{
		DiffuseColor: [3]float64{0.72, 0.45, 0.30},
		Metalness:    0.1,
		Roughness:    0.9,
		DoubleSided:  true,
	}
}

// Mesh is a triangulated surface of revolution. Ownership passes to the
// caller; the reconstruction engine keeps no reference after returning it.
type Mesh struct {
	// Vertices are the mesh vertex positions.
	Vertices []r3.Vector

	// Normals are per-vertex normals, parallel to Vertices.
	Normals []r3.Vector

	// Indices are triangle vertex indices, three per face.
	Indices []uint32

	// Material is the surface descriptor for the viewer.
	Material Material
}

// TriangleCount returns the number of faces in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// DefaultVaseProfile is the canonical fallback silhouette used when there
// is not enough data to reconstruct: 11 samples of r = 2 + 0.5*sin(pi*t)
// over heights 0..10.
func DefaultVaseProfile() Profile {
	const samples = 11
	profile := make(Profile, samples)
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples-1)
		profile[i] = ProfilePoint{
			R: 2 + 0.5*math.Sin(math.Pi*t),
			Y: 10 * t,
		}
	}
	return profile
}

// BuildMeshFromProfile revolves profile around the vertical axis in the
// given number of angular segments, producing a closed ring of vertices
// per profile sample. Profiles with fewer than 3 samples are replaced by
// the default vase so the caller always receives renderable geometry.
func BuildMeshFromProfile(profile Profile, segments int) *Mesh {
	if len(profile) < minProfileSamples {
		profile = DefaultVaseProfile()
	}
	if segments < 3 {
		segments = defaultLatheSegments
	}

	rings := len(profile)
	mesh := &Mesh{
		Vertices: make([]r3.Vector, 0, rings*segments),
		Material: defaultMaterial(),
	}

	for _, p := range profile {
		for j := 0; j < segments; j++ {
			theta := 2 * math.Pi * float64(j) / float64(segments)
			mesh.Vertices = append(mesh.Vertices, r3.Vector{
				X: p.R * math.Cos(theta),
				Y: p.Y,
				Z: p.R * math.Sin(theta),
			})
		}
	}

	// Two triangles per quad between consecutive rings; the seam wraps
	// back to segment 0 to close the surface.
	for i := 0; i < rings-1; i++ {
		for j := 0; j < segments; j++ {
			next := (j + 1) % segments

			a := uint32(i*segments + j)
			b := uint32(i*segments + next)
			c := uint32((i+1)*segments + j)
			d := uint32((i+1)*segments + next)

			mesh.Indices = append(mesh.Indices, a, c, b)
			mesh.Indices = append(mesh.Indices, b, c, d)
		}
	}

	mesh.Normals = vertexNormals(mesh.Vertices, mesh.Indices)
	return mesh
}

// vertexNormals accumulates area-weighted face normals per vertex and
// normalizes the result for smooth shading.
func vertexNormals(vertices []r3.Vector, indices []uint32) []r3.Vector {
	normals := make([]r3.Vector, len(vertices))

	for i := 0; i < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		face := vertices[b].Sub(vertices[a]).Cross(vertices[c].Sub(vertices[a]))
		normals[a] = normals[a].Add(face)
		normals[b] = normals[b].Add(face)
		normals[c] = normals[c].Add(face)
	}

	for i, n := range normals {
		if n.Norm() > 0 {
			normals[i] = n.Normalize()
		}
	}

	return normals
}
