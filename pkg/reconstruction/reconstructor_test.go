package reconstruction

import (
	"math"
	"testing"

	"shardsto3d/pkg/classify"
	"shardsto3d/pkg/pointcloud"
)

// TestReconstructEmptyStoreFallback verifies that reconstruction over an
// empty store returns the default-vase mesh.
func TestReconstructEmptyStoreFallback(t *testing.T) {
	store := NewFragmentStore()
	reconstructor := NewReconstructor(store, Params{})

	mesh := reconstructor.Reconstruct()
	expected := BuildMeshFromProfile(DefaultVaseProfile(), defaultLatheSegments)

	if !meshesEqual(mesh, expected) {
		t.Error("Empty store did not produce the default-vase mesh")
	}
}

// TestReconstructInsufficientDataFallback verifies that fragments whose
// merged profile has fewer than 3 samples fall back to the same default
// mesh as an empty store.
func TestReconstructInsufficientDataFallback(t *testing.T) {
	store := NewFragmentStore()
	// Two points in the same height bucket merge to a single sample.
	store.AddFragment(pointcloud.Cloud{
		{X: 2, Y: 0, Z: 0},
		{X: 2.2, Y: 0.1, Z: 0},
	}, classify.Result{Type: classify.Body})

	reconstructor := NewReconstructor(store, Params{})
	mesh := reconstructor.Reconstruct()

	empty := NewReconstructor(NewFragmentStore(), Params{}).Reconstruct()
	if !meshesEqual(mesh, empty) {
		t.Error("Insufficient data and empty store produced different fallback meshes")
	}
}

// TestReconstructEmptyFragment verifies that a fragment with an empty
// point list contributes nothing and does not crash reconstruction.
func TestReconstructEmptyFragment(t *testing.T) {
	store := NewFragmentStore()
	store.AddFragment(pointcloud.Cloud{}, classify.Result{Type: classify.Rim})

	reconstructor := NewReconstructor(store, Params{})
	mesh := reconstructor.Reconstruct()

	expected := BuildMeshFromProfile(DefaultVaseProfile(), defaultLatheSegments)
	if !meshesEqual(mesh, expected) {
		t.Error("Empty fragment did not fall back to the default mesh")
	}
}

// TestReconstructIdempotent verifies that repeated calls without store
// changes produce geometrically identical meshes.
func TestReconstructIdempotent(t *testing.T) {
	store := NewFragmentStore()
	store.AddFragment(circleFragment(2, 0, 2, 40), classify.Result{Type: classify.Rim})
	store.AddFragment(circleFragment(3, 2, 5, 60), classify.Result{Type: classify.Body})

	reconstructor := NewReconstructor(store, Params{})

	first := reconstructor.Reconstruct()
	second := reconstructor.Reconstruct()

	if !meshesEqual(first, second) {
		t.Error("Repeated reconstruction produced different meshes")
	}
}

// TestReconstructCylinder verifies that a cylindrical fragment set yields
// vertices near the expected radius.
func TestReconstructCylinder(t *testing.T) {
	store := NewFragmentStore()
	store.AddFragment(circleFragment(3, 0, 2, 80), classify.Result{Type: classify.Body})
	store.AddFragment(circleFragment(3, 2, 4, 80), classify.Result{Type: classify.Body})

	reconstructor := NewReconstructor(store, Params{LatheSegments: 32})
	mesh := reconstructor.Reconstruct()

	for i, v := range mesh.Vertices {
		r := math.Sqrt(v.X*v.X + v.Z*v.Z)
		if math.Abs(r-3) > 1e-6 {
			t.Fatalf("Vertex %d: expected radius ~3, got %f", i, r)
		}
	}
}

// TestReconstructAfterClear verifies that clearing the store returns
// reconstruction to the fallback behavior.
func TestReconstructAfterClear(t *testing.T) {
	store := NewFragmentStore()
	store.AddFragment(circleFragment(2, 0, 3, 50), classify.Result{Type: classify.Rim})

	reconstructor := NewReconstructor(store, Params{})
	withData := reconstructor.Reconstruct()

	store.Clear()
	cleared := reconstructor.Reconstruct()

	expected := BuildMeshFromProfile(DefaultVaseProfile(), defaultLatheSegments)
	if !meshesEqual(cleared, expected) {
		t.Error("Reconstruction after Clear did not fall back to the default mesh")
	}
	if meshesEqual(withData, cleared) {
		t.Error("Reconstruction with data unexpectedly matched the default mesh")
	}
}

// TestPresenceConstraintNoOp verifies the reserved constraint hook leaves
// the profile untouched for every type combination.
func TestPresenceConstraintNoOp(t *testing.T) {
	profile := Profile{{R: 1, Y: 0}, {R: 2, Y: 1}, {R: 1, Y: 2}}

	cases := []Stats{
		{},
		{Types: []classify.FragmentType{classify.Rim}},
		{Types: []classify.FragmentType{classify.Base}},
		{Types: []classify.FragmentType{classify.Rim, classify.Body, classify.Base}},
	}

	for _, stats := range cases {
		out := PresenceConstraint{}.Apply(profile, stats)
		if len(out) != len(profile) {
			t.Fatalf("Constraint changed profile length for %v", stats.Types)
		}
		for i := range profile {
			if out[i] != profile[i] {
				t.Errorf("Constraint modified sample %d for %v", i, stats.Types)
			}
		}
	}
}
