package reconstruction

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// mergeBucketWidth is the height-band width used when merging fragment
// profiles. Two samples fall in the same bucket iff round(y/width) is
// equal for both.
const mergeBucketWidth = 0.5

// mergeWindow is the moving-average window applied to the merged profile.
// It is wider than the per-fragment window because bucket averages are
// sparser than raw samples.
const mergeWindow = 7

// MergeProfiles combines the per-fragment profiles into one consensus
// profile for the whole vessel. All samples are flattened into fixed-width
// height buckets, radii are averaged per bucket, and the bucketed profile
// is re-smoothed.
//
// Bucket averaging is a weighted spatial average that sidesteps explicit
// fragment registration: it assumes every fragment shares the vessel's
// vertical axis and origin. Fragments are never aligned to each other
// first, and that stays true on purpose.
//
// The result is invariant under reordering of the input profiles.
func MergeProfiles(profiles []Profile) Profile {
	buckets := make(map[int][]float64)
	for _, profile := range profiles {
		for _, p := range profile {
			idx := int(math.Round(p.Y / mergeBucketWidth))
			buckets[idx] = append(buckets[idx], p.R)
		}
	}

	indices := make([]int, 0, len(buckets))
	for idx := range buckets {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	merged := make(Profile, 0, len(indices))
	for _, idx := range indices {
		merged = append(merged, ProfilePoint{
			R: stat.Mean(buckets[idx], nil),
			Y: float64(idx) * mergeBucketWidth,
		})
	}

	return smoothProfile(merged, mergeWindow)
}
