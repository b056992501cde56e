// Package reconstruction incrementally fuses pottery-fragment point clouds
// into a single surface-of-revolution mesh. Each fragment's cloud is
// reduced to a radius-vs-height profile under an assumed vertical symmetry
// axis, the profiles are merged by height-band averaging, and the consensus
// profile is revolved into a lathe mesh.
//
// The pipeline recomputes from scratch on every fragment addition. Point
// counts stay small in interactive use, so the simplicity of a full
// recompute wins over incremental updates.
package reconstruction

import (
	"go.uber.org/zap"
)

// Params configures a Reconstructor.
type Params struct {
	// LatheSegments is the number of angular steps for the final mesh.
	LatheSegments int

	// Constraint is applied to the merged profile before the lathe. Nil
	// defaults to PresenceConstraint, the documented no-op.
	Constraint ProfileConstraint

	// Logger receives per-stage progress. Nil defaults to a no-op logger.
	Logger *zap.SugaredLogger
}

// Reconstructor orchestrates the reconstruction pipeline over a
// FragmentStore:
//  1. extract a radius profile per fragment
//  2. merge profiles by height-band bucketing
//  3. apply fragment-presence constraints (currently a no-op hook)
//  4. revolve the consensus profile into a lathe mesh
//
// With no fragments, or too few merged samples, it returns the default
// vase so the viewer always has something renderable.
type Reconstructor struct {
	store      *FragmentStore
	segments   int
	constraint ProfileConstraint
	logger     *zap.SugaredLogger
}

// NewReconstructor creates a reconstructor over the given store.
func NewReconstructor(store *FragmentStore, params Params) *Reconstructor {
	segments := params.LatheSegments
	if segments < 3 {
		segments = defaultLatheSegments
	}
	constraint := params.Constraint
	if constraint == nil {
		constraint = PresenceConstraint{}
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Reconstructor{
		store:      store,
		segments:   segments,
		constraint: constraint,
		logger:     logger,
	}
}

// Store returns the fragment store this reconstructor reads from.
func (r *Reconstructor) Store() *FragmentStore {
	return r.store
}

// Reconstruct runs the full pipeline over the current store contents and
// returns the best current mesh. Repeated calls without store changes
// produce geometrically identical meshes.
func (r *Reconstructor) Reconstruct() *Mesh {
	fragments := r.store.Fragments()
	if len(fragments) == 0 {
		r.logger.Debug("no fragments registered, returning default vase")
		return BuildMeshFromProfile(nil, r.segments)
	}

	r.logger.Debugw("extracting profiles", "fragments", len(fragments))
	profiles := make([]Profile, 0, len(fragments))
	for _, frag := range fragments {
		profiles = append(profiles, ExtractProfile(frag.Points))
	}

	merged := MergeProfiles(profiles)
	r.logger.Debugw("merged profiles", "samples", len(merged))

	merged = r.constraint.Apply(merged, r.store.Stats())

	return BuildMeshFromProfile(merged, r.segments)
}
