package visualization

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shardsto3d/pkg/depth"
	"shardsto3d/pkg/pointcloud"
)

// gradientField creates a depth field ramping from 0 to 1 across rows.
func gradientField(width, height int) *depth.Field {
	values := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			values[y*width+x] = float64(y) / float64(height-1)
		}
	}
	return &depth.Field{Values: values, Width: width, Height: height}
}

// TestDepthFieldToImage verifies dimensions and value mapping.
func TestDepthFieldToImage(t *testing.T) {
	field := gradientField(4, 4)
	img := DepthFieldToImage(field)

	bounds := img.Bounds()
	if bounds.Dx() != 4 || bounds.Dy() != 4 {
		t.Fatalf("Expected 4x4 image, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	top := img.At(0, 0).(color.Gray16).Y
	bottom := img.At(0, 3).(color.Gray16).Y
	if top != 0 {
		t.Errorf("Expected 0 at depth 0, got %d", top)
	}
	if bottom != 65535 {
		t.Errorf("Expected 65535 at depth 1, got %d", bottom)
	}
}

// TestDepthFieldToImageClamps verifies out-of-range values are clamped
// rather than wrapped.
func TestDepthFieldToImageClamps(t *testing.T) {
	field := &depth.Field{
		Values: []float64{-0.5, 1.5},
		Width:  2,
		Height: 1,
	}
	img := DepthFieldToImage(field)

	if v := img.At(0, 0).(color.Gray16).Y; v != 0 {
		t.Errorf("Expected negative depth clamped to 0, got %d", v)
	}
	if v := img.At(1, 0).(color.Gray16).Y; v != 65535 {
		t.Errorf("Expected depth > 1 clamped to 65535, got %d", v)
	}
}

// TestSaveDepthMap verifies the JPEG dump, including directory creation.
func TestSaveDepthMap(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "maps", "depth.jpg")

	if err := SaveDepthMap(gradientField(8, 8), filename); err != nil {
		t.Fatalf("SaveDepthMap failed: %v", err)
	}

	info, err := os.Stat(filename)
	if err != nil {
		t.Fatalf("Depth map file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Depth map file is empty")
	}
}

// TestSavePointCloud verifies the PLY dump.
func TestSavePointCloud(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "clouds", "fragment.ply")
	cloud := pointcloud.Cloud{{X: 1, Y: 2, Z: 3}}

	if err := SavePointCloud(cloud, filename); err != nil {
		t.Fatalf("SavePointCloud failed: %v", err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("Point cloud file missing: %v", err)
	}
	if !strings.HasPrefix(string(data), "ply\n") {
		t.Error("Point cloud file is not a PLY file")
	}
}
