// Package visualization saves intermediary pipeline results (depth maps,
// point clouds) as files for debugging. Rendering the final mesh is the
// external viewer's job; nothing here affects reconstruction output.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"

	"shardsto3d/pkg/depth"
	"shardsto3d/pkg/pointcloud"
)

// DepthFieldToImage converts a normalized depth field to a 16-bit grayscale
// image, bright = near.
func DepthFieldToImage(field *depth.Field) image.Image {
	img := image.NewGray16(image.Rect(0, 0, field.Width, field.Height))

	for y := 0; y < field.Height; y++ {
		for x := 0; x < field.Width; x++ {
			v := field.At(x, y)
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			img.SetGray16(x, y, color.Gray16{Y: uint16(v * 65535)})
		}
	}

	return img
}

// SaveDepthMap writes a depth field as a JPEG image.
func SaveDepthMap(field *depth.Field, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create depth map file: %w", err)
	}
	defer file.Close()

	if err := jpeg.Encode(file, DepthFieldToImage(field), &jpeg.Options{Quality: 90}); err != nil {
		return fmt.Errorf("failed to encode depth map: %w", err)
	}

	return nil
}

// SavePointCloud writes a point cloud as an ASCII PLY file.
func SavePointCloud(cloud pointcloud.Cloud, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create point cloud file: %w", err)
	}
	defer file.Close()

	if err := cloud.WritePLY(file); err != nil {
		return fmt.Errorf("failed to write point cloud: %w", err)
	}

	return nil
}
