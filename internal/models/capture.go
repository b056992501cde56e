package models

import (
	"image"

	"shardsto3d/pkg/classify"
)

// Capture is one fragment photo flowing from the capture collaborator into
// the reconstruction pipeline, with everything materialized up front: by
// the time a Capture exists there is no pending I/O.
type Capture struct {
	// Image is the decoded RGB raster.
	Image image.Image

	// Filename is the source filename of the capture.
	Filename string

	// Index is the position of this capture in the session.
	Index int

	// Classification is the (possibly fallback) classifier verdict.
	Classification classify.Result
}
