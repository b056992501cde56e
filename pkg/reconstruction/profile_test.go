package reconstruction

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"

	"shardsto3d/pkg/pointcloud"
)

// circleFragment generates points lying exactly on a circle of the given
// radius, with heights spread evenly over [minY, maxY].
func circleFragment(radius float64, minY, maxY float64, count int) pointcloud.Cloud {
	cloud := make(pointcloud.Cloud, 0, count)
	for i := 0; i < count; i++ {
		theta := 2 * math.Pi * float64(i) / float64(count)
		y := minY
		if count > 1 {
			y = minY + (maxY-minY)*float64(i)/float64(count-1)
		}
		cloud = append(cloud, r3.Vector{
			X: radius * math.Cos(theta),
			Y: y,
			Z: radius * math.Sin(theta),
		})
	}
	return cloud
}

// TestExtractProfileCircleRim verifies that a synthetic rim fragment whose
// points lie exactly on a circle r=2 produces r~2 for every sample after
// smoothing.
func TestExtractProfileCircleRim(t *testing.T) {
	profile := ExtractProfile(circleFragment(2, 0, 1, 50))

	if len(profile) != 50 {
		t.Fatalf("Expected 50 profile samples, got %d", len(profile))
	}
	for i, p := range profile {
		if math.Abs(p.R-2) > 1e-9 {
			t.Errorf("Sample %d: expected r~2, got %f", i, p.R)
		}
	}
}

// TestExtractProfileSortedByHeight verifies ascending Y ordering.
func TestExtractProfileSortedByHeight(t *testing.T) {
	cloud := pointcloud.Cloud{
		{X: 1, Y: 5, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 1, Y: 3, Z: 0},
	}

	profile := ExtractProfile(cloud)
	for i := 1; i < len(profile); i++ {
		if profile[i].Y < profile[i-1].Y {
			t.Fatalf("Profile not sorted by height: sample %d has y=%f after y=%f",
				i, profile[i].Y, profile[i-1].Y)
		}
	}
}

// TestExtractProfileRadius verifies the radial distance computation.
func TestExtractProfileRadius(t *testing.T) {
	cloud := pointcloud.Cloud{{X: 3, Y: 7, Z: 4}}

	profile := ExtractProfile(cloud)
	if len(profile) != 1 {
		t.Fatalf("Expected 1 sample, got %d", len(profile))
	}
	if math.Abs(profile[0].R-5) > 1e-12 {
		t.Errorf("Expected r=5 for point (3, 7, 4), got %f", profile[0].R)
	}
	if profile[0].Y != 7 {
		t.Errorf("Expected y=7, got %f", profile[0].Y)
	}
}

// TestExtractProfileEmpty verifies that an empty cloud produces an empty
// profile without errors.
func TestExtractProfileEmpty(t *testing.T) {
	profile := ExtractProfile(nil)
	if len(profile) != 0 {
		t.Errorf("Expected empty profile, got %d samples", len(profile))
	}
}

// TestSmoothProfileShortPassthrough verifies that profiles shorter than
// the window are returned unsmoothed.
func TestSmoothProfileShortPassthrough(t *testing.T) {
	profile := Profile{
		{R: 1, Y: 0},
		{R: 9, Y: 1},
		{R: 1, Y: 2},
	}

	smoothed := smoothProfile(profile, 5)
	for i := range profile {
		if smoothed[i] != profile[i] {
			t.Errorf("Sample %d modified despite short profile: %+v vs %+v",
				i, smoothed[i], profile[i])
		}
	}
}

// TestSmoothProfileBoundaryShrink verifies the moving-average boundary
// behavior: windows shrink at the ends instead of wrapping or padding.
func TestSmoothProfileBoundaryShrink(t *testing.T) {
	profile := Profile{
		{R: 0, Y: 0},
		{R: 1, Y: 1},
		{R: 2, Y: 2},
		{R: 3, Y: 3},
		{R: 4, Y: 4},
		{R: 5, Y: 5},
	}

	smoothed := smoothProfile(profile, 5)

	// First sample averages indices 0..2 only.
	if math.Abs(smoothed[0].R-1) > 1e-12 {
		t.Errorf("Expected first smoothed r=1, got %f", smoothed[0].R)
	}
	// A middle sample averages a full window centered on it.
	if math.Abs(smoothed[2].R-2) > 1e-12 {
		t.Errorf("Expected middle smoothed r=2, got %f", smoothed[2].R)
	}
	// Last sample averages indices 3..5 only.
	if math.Abs(smoothed[5].R-4) > 1e-12 {
		t.Errorf("Expected last smoothed r=4, got %f", smoothed[5].R)
	}
}
