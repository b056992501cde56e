package reconstruction

import (
	"sync"

	"shardsto3d/pkg/classify"
	"shardsto3d/pkg/pointcloud"
)

// Fragment is one captured shard's data package: its projected point cloud
// plus the classification tag attached at capture time. Fragments are never
// mutated after creation.
type Fragment struct {
	// Points is the fragment's point cloud in the shared vessel frame.
	Points pointcloud.Cloud

	// Type is the classifier's label for this fragment.
	Type classify.FragmentType

	// Confidence is the classifier's confidence in [0,1].
	Confidence float64

	// Order is the insertion index, starting at 0.
	Order int
}

// Stats summarizes the store contents for diagnostics. It plays no role in
// reconstruction itself.
type Stats struct {
	// FragmentCount is the number of registered fragments.
	FragmentCount int

	// TotalPoints is the sum of point counts across all fragments.
	TotalPoints int

	// Types lists the fragment types in insertion order.
	Types []classify.FragmentType
}

// FragmentStore owns the ordered collection of fragments contributed so
// far. It is the only owner: callers hand point clouds in and receive
// read-only views back. A mutex serializes mutation and reads so the store
// can be shared with a concurrent capture pipeline.
type FragmentStore struct {
	mu        sync.Mutex
	fragments []Fragment
}

// NewFragmentStore creates an empty store.
func NewFragmentStore() *FragmentStore {
	return &FragmentStore{}
}

// AddFragment appends a new fragment with the next insertion index. The
// point slice is stored as-is; callers must not modify it afterwards. An
// empty point cloud is accepted and simply contributes nothing downstream.
func (s *FragmentStore) AddFragment(points pointcloud.Cloud, result classify.Result) Fragment {
	s.mu.Lock()
	defer s.mu.Unlock()

	frag := Fragment{
		Points:     points,
		Type:       result.Type,
		Confidence: result.Confidence,
		Order:      len(s.fragments),
	}
	s.fragments = append(s.fragments, frag)
	return frag
}

// Clear removes all fragments. Subsequent reconstructions behave as if no
// data was ever added.
func (s *FragmentStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fragments = nil
}

// Fragments returns a snapshot of the stored fragments in insertion order.
func (s *FragmentStore) Fragments() []Fragment {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Fragment, len(s.fragments))
	copy(out, s.fragments)
	return out
}

// Stats reports fragment count, total point count, and the fragment types
// in insertion order.
func (s *FragmentStore) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{
		FragmentCount: len(s.fragments),
		Types:         make([]classify.FragmentType, 0, len(s.fragments)),
	}
	for _, frag := range s.fragments {
		stats.TotalPoints += len(frag.Points)
		stats.Types = append(stats.Types, frag.Type)
	}
	return stats
}
