package pointcloud

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// AlignResult reports the outcome of AlignClosestPoint.
type AlignResult struct {
	// Offset is the translation that maps the source cloud onto the target.
	Offset r3.Vector

	// RMSE is the root mean square distance between aligned source points
	// and their nearest target points after the final iteration.
	RMSE float64

	// Iterations is the number of refinement passes actually run.
	Iterations int
}

// AlignClosestPoint estimates a translation aligning source onto target by
// iterating nearest-neighbour correspondences, a translation-only variant
// of point-to-point ICP.
//
// The active reconstruction pipeline does not call this: profile merging
// assumes all fragments already share a common vertical axis and origin,
// and that assumption is part of the system's documented behavior. The
// helper exists for offline experiments on fragment registration.
func AlignClosestPoint(source, target Cloud, maxIterations int) (AlignResult, error) {
	if len(source) == 0 || len(target) == 0 {
		return AlignResult{}, fmt.Errorf("cannot align empty point clouds")
	}
	if maxIterations < 1 {
		maxIterations = 1
	}

	// Start from the centroid difference.
	offset := target.Centroid().Sub(source.Centroid())

	var result AlignResult
	for iter := 0; iter < maxIterations; iter++ {
		var correction r3.Vector
		var sqSum float64

		for _, p := range source {
			moved := p.Add(offset)
			nearest, dist := nearestPoint(moved, target)
			correction = correction.Add(nearest.Sub(moved))
			sqSum += dist * dist
		}

		n := float64(len(source))
		correction = correction.Mul(1 / n)
		offset = offset.Add(correction)

		result = AlignResult{
			Offset:     offset,
			RMSE:       math.Sqrt(sqSum / n),
			Iterations: iter + 1,
		}

		// Converged when the mean correction is negligible.
		if correction.Norm() < 1e-9 {
			break
		}
	}

	return result, nil
}

// nearestPoint does a linear scan for the closest target point. Clouds in
// this pipeline are small enough that a spatial index is not worth it.
func nearestPoint(p r3.Vector, target Cloud) (r3.Vector, float64) {
	best := target[0]
	bestDist := p.Sub(best).Norm()
	for _, q := range target[1:] {
		if d := p.Sub(q).Norm(); d < bestDist {
			best = q
			bestDist = d
		}
	}
	return best, bestDist
}
