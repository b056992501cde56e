package pointcloud

import (
	"bufio"
	"fmt"
	"io"

	"github.com/golang/geo/r3"
)

// Cloud is an unordered set of 3D points in a fragment-local frame.
type Cloud []r3.Vector

// Centroid returns the mean position of the cloud, or the zero vector for
// an empty cloud.
func (c Cloud) Centroid() r3.Vector {
	if len(c) == 0 {
		return r3.Vector{}
	}
	var sum r3.Vector
	for _, p := range c {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(c)))
}

// Bounds returns the axis-aligned bounding box of the cloud.
func (c Cloud) Bounds() (min, max r3.Vector) {
	if len(c) == 0 {
		return r3.Vector{}, r3.Vector{}
	}
	min, max = c[0], c[0]
	for _, p := range c[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	return min, max
}

// Translate returns a copy of the cloud shifted by offset.
func (c Cloud) Translate(offset r3.Vector) Cloud {
	out := make(Cloud, len(c))
	for i, p := range c {
		out[i] = p.Add(offset)
	}
	return out
}

// WritePLY writes the cloud as an ASCII PLY file for debug visualization.
func (c Cloud) WritePLY(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "ply\nformat ascii 1.0\nelement vertex %d\n"+
		"property float x\nproperty float y\nproperty float z\nend_header\n", len(c)); err != nil {
		return fmt.Errorf("failed to write PLY header: %w", err)
	}

	for _, p := range c {
		if _, err := fmt.Fprintf(bw, "%f %f %f\n", p.X, p.Y, p.Z); err != nil {
			return fmt.Errorf("failed to write PLY vertex: %w", err)
		}
	}

	return bw.Flush()
}
