// Package pointcloud back-projects depth fields into 3D point sets through a
// pinhole camera model and provides small utilities for working with the
// resulting clouds (bounds, centroid, PLY export, a standalone alignment
// helper).
package pointcloud

import (
	"fmt"

	"github.com/golang/geo/r3"

	"shardsto3d/pkg/depth"
)

// Intrinsics holds the pinhole camera parameters used for back-projection.
type Intrinsics struct {
	// Fx and Fy are the focal lengths in pixel units.
	Fx float64
	Fy float64

	// Cx and Cy are the principal point coordinates.
	Cx float64
	Cy float64
}

// DefaultIntrinsics derives intrinsics from the field dimensions:
// fx = width/2, fy = height/2, principal point at the image center.
func DefaultIntrinsics(width, height int) Intrinsics {
	return Intrinsics{
		Fx: float64(width) / 2,
		Fy: float64(height) / 2,
		Cx: float64(width) / 2,
		Cy: float64(height) / 2,
	}
}

// Projector converts normalized depth values into world-space points.
type Projector struct {
	// DepthScale converts normalized [0,1] depth into world units.
	DepthScale float64

	// BackgroundThreshold rejects near-zero depth after scaling; pixels at
	// or below it are treated as background and emit no point.
	BackgroundThreshold float64
}

// NewProjector returns a projector with the pipeline defaults
// (scale 10, background threshold 0.1).
func NewProjector() *Projector {
	return &Projector{
		DepthScale:          10,
		BackgroundThreshold: 0.1,
	}
}

// DepthToPointCloud back-projects every pixel of field through the pinhole
// model. Points are emitted in raster scan order, but the order carries no
// meaning for downstream consumers. A nil intrinsics uses defaults derived
// from the field dimensions.
func (p *Projector) DepthToPointCloud(field *depth.Field, intrinsics *Intrinsics) (Cloud, error) {
	if field == nil || field.Width == 0 || field.Height == 0 {
		return nil, fmt.Errorf("cannot project empty depth field")
	}

	var in Intrinsics
	if intrinsics != nil {
		in = *intrinsics
	} else {
		in = DefaultIntrinsics(field.Width, field.Height)
	}

	points := make(Cloud, 0, len(field.Values))
	for v := 0; v < field.Height; v++ {
		for u := 0; u < field.Width; u++ {
			z := field.At(u, v) * p.DepthScale
			if z <= p.BackgroundThreshold {
				continue
			}
			points = append(points, r3.Vector{
				X: (float64(u) - in.Cx) * z / in.Fx,
				Y: (float64(v) - in.Cy) * z / in.Fy,
				Z: z,
			})
		}
	}

	return points, nil
}
