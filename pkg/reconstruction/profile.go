package reconstruction

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"shardsto3d/pkg/pointcloud"
)

// ProfilePoint is one sample of a radius-vs-height silhouette.
type ProfilePoint struct {
	// R is the radial distance from the vertical symmetry axis. Never
	// negative.
	R float64

	// Y is the height of the sample.
	Y float64
}

// Profile is a radius-vs-height silhouette, sorted by Y ascending. It
// assumes rotational symmetry about the vertical axis through the origin.
type Profile []ProfilePoint

// profileWindow is the moving-average window for per-fragment profiles.
const profileWindow = 5

// ExtractProfile reduces a fragment's point cloud to its 2D silhouette
// under the assumed vertical symmetry axis: each point contributes
// r = sqrt(x^2 + z^2) at height y. Samples are sorted by height and then
// smoothed with a moving average. Heights may repeat; the profile is
// monotonic in index, not strictly monotonic in height.
func ExtractProfile(points pointcloud.Cloud) Profile {
	profile := make(Profile, 0, len(points))
	for _, p := range points {
		profile = append(profile, ProfilePoint{
			R: math.Sqrt(p.X*p.X + p.Z*p.Z),
			Y: p.Y,
		})
	}

	sort.Slice(profile, func(i, j int) bool {
		return profile[i].Y < profile[j].Y
	})

	return smoothProfile(profile, profileWindow)
}

// smoothProfile applies a centered moving average over both radius and
// height. The window shrinks at the profile boundaries instead of wrapping
// or padding. Profiles shorter than the window are returned unsmoothed.
func smoothProfile(profile Profile, window int) Profile {
	if len(profile) < window {
		return profile
	}

	half := window / 2
	out := make(Profile, len(profile))
	radii := make([]float64, 0, window)
	heights := make([]float64, 0, window)

	for i := range profile {
		start := i - half
		if start < 0 {
			start = 0
		}
		end := i + half + 1
		if end > len(profile) {
			end = len(profile)
		}

		radii = radii[:0]
		heights = heights[:0]
		for j := start; j < end; j++ {
			radii = append(radii, profile[j].R)
			heights = append(heights, profile[j].Y)
		}

		out[i] = ProfilePoint{
			R: stat.Mean(radii, nil),
			Y: stat.Mean(heights, nil),
		}
	}

	return out
}
