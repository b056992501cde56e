// Package depth estimates per-pixel depth from a single RGB image using
// classical image-processing cues. There is no learned model involved: the
// estimator combines Sobel edge magnitude with a central-difference shading
// cue, smooths the result with a small Gaussian kernel, and normalizes the
// field to [0,1].
package depth

import (
	"errors"
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Estimation errors. EstimateDepth never recovers from these locally; the
// caller decides whether to drop the capture or surface the failure.
var (
	// ErrNotInitialized is returned when EstimateDepth is called before Init.
	ErrNotInitialized = errors.New("depth estimator not initialized")

	// ErrInvalidInput is returned for nil or zero-dimension input images.
	ErrInvalidInput = errors.New("invalid input image")
)

// normEpsilon guards the min-max normalization against a perfectly flat
// field, where max-min would otherwise be zero.
const normEpsilon = 1e-7

// Field is a rectangular grid of depth values, one per input pixel, stored
// in row-major order. After estimation all values lie in [0,1].
type Field struct {
	// Values holds the depth samples as Values[y*Width+x].
	Values []float64

	// Width and Height match the source image dimensions exactly.
	Width  int
	Height int
}

// At returns the depth value at pixel (x, y).
func (f *Field) At(x, y int) float64 {
	return f.Values[y*f.Width+x]
}

// Params controls the depth heuristic. The defaults reproduce the original
// demo behavior; they are exposed so the config file can tune them.
type Params struct {
	// KernelSize is the Gaussian smoothing kernel size. Must be odd.
	KernelSize int

	// EdgeWeight and GradientWeight blend the two depth cues. They should
	// sum to 1 but are not forced to.
	EdgeWeight     float64
	GradientWeight float64
}

// DefaultParams returns the parameters used by the original pipeline:
// a 3x3 Gaussian and a 0.6/0.4 edge/gradient blend.
func DefaultParams() Params {
	return Params{
		KernelSize:     3,
		EdgeWeight:     0.6,
		GradientWeight: 0.4,
	}
}

// Estimator turns one RGB image into a Field. It must be initialized once
// with Init before use; this replaces the original's polled readiness flag
// with an explicit fail-fast step.
type Estimator struct {
	params Params

	// gaussian is the smoothing kernel, precomputed by Init.
	gaussian    [][]float64
	initialized bool
}

// NewEstimator creates an estimator with the given parameters. Call Init
// before EstimateDepth.
func NewEstimator(params Params) *Estimator {
	return &Estimator{params: params}
}

// Init performs the one-time setup (Gaussian kernel precomputation).
// It is idempotent.
func (e *Estimator) Init() error {
	k := e.params.KernelSize
	if k < 1 || k%2 == 0 {
		return fmt.Errorf("gaussian kernel size must be a positive odd number, got %d", k)
	}
	e.gaussian = gaussianKernel(k, float64(k)/3.0)
	e.initialized = true
	return nil
}

// EstimateDepth computes a normalized depth field for img.
//
// The algorithm is deterministic and purely a function of the input:
//  1. reduce RGB to grayscale by channel mean, normalized to [0,1]
//  2. Sobel edge magnitude; depth-from-edges = 1 - magnitude
//  3. central-difference gradient magnitude as a shading cue
//  4. blend the two cues
//  5. Gaussian smoothing with same-size output
//  6. min-max normalization to exactly span [0,1]
//
// The returned field always has the same dimensions as img.
func (e *Estimator) EstimateDepth(img image.Image) (*Field, error) {
	if !e.initialized {
		return nil, ErrNotInitialized
	}
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidInput)
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: zero dimension %dx%d", ErrInvalidInput, width, height)
	}

	gray := grayscale(img)

	edges := sobelMagnitude(gray, width, height)
	depthFromEdges := make([]float64, len(edges))
	for i, m := range edges {
		depthFromEdges[i] = 1 - m
	}

	gradient := gradientMagnitude(gray, width, height)

	combined := make([]float64, len(gray))
	for i := range combined {
		combined[i] = e.params.EdgeWeight*depthFromEdges[i] + e.params.GradientWeight*gradient[i]
	}

	smoothed := convolve2D(combined, width, height, e.gaussian)

	normalize(smoothed)

	return &Field{Values: smoothed, Width: width, Height: height}, nil
}

// grayscale reduces an image to a [0,1] float buffer by channel mean.
func grayscale(img image.Image) []float64 {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	out := make([]float64, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA returns 16-bit channels; average and scale to [0,1].
			out[y*width+x] = (float64(r) + float64(g) + float64(b)) / 3.0 / 65535.0
		}
	}

	return out
}

// Sobel kernels for horizontal and vertical edge response.
var (
	sobelX = [][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = [][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// sobelMagnitude computes sqrt(gx^2 + gy^2) per pixel, clamped to [0,1].
func sobelMagnitude(data []float64, width, height int) []float64 {
	gx := convolve2D(data, width, height, sobelX)
	gy := convolve2D(data, width, height, sobelY)

	out := make([]float64, len(data))
	for i := range out {
		m := math.Sqrt(gx[i]*gx[i] + gy[i]*gy[i])
		if m > 1 {
			m = 1
		}
		out[i] = m
	}
	return out
}

// gradientMagnitude computes a shading cue from 1x3/3x1 central differences.
func gradientMagnitude(data []float64, width, height int) []float64 {
	out := make([]float64, len(data))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var dx, dy float64
			if x > 0 && x < width-1 {
				dx = (data[y*width+x+1] - data[y*width+x-1]) / 2
			}
			if y > 0 && y < height-1 {
				dy = (data[(y+1)*width+x] - data[(y-1)*width+x]) / 2
			}
			m := math.Sqrt(dx*dx + dy*dy)
			if m > 1 {
				m = 1
			}
			out[y*width+x] = m
		}
	}
	return out
}

// gaussianKernel builds a normalized isotropic Gaussian kernel.
func gaussianKernel(size int, sigma float64) [][]float64 {
	kernel := make([][]float64, size)
	half := size / 2
	sum := 0.0

	for i := 0; i < size; i++ {
		kernel[i] = make([]float64, size)
		for j := 0; j < size; j++ {
			dy := float64(i - half)
			dx := float64(j - half)
			v := math.Exp(-(dx*dx + dy*dy) / (2 * sigma * sigma))
			kernel[i][j] = v
			sum += v
		}
	}

	for i := range kernel {
		for j := range kernel[i] {
			kernel[i][j] /= sum
		}
	}

	return kernel
}

// convolve2D applies kernel to data with same-size output. Samples outside
// the image are clamped to the nearest edge pixel, which keeps a constant
// field constant under both the averaging and the signed kernels.
func convolve2D(data []float64, width, height int, kernel [][]float64) []float64 {
	out := make([]float64, len(data))
	kh := len(kernel)
	kw := len(kernel[0])
	halfH := kh / 2
	halfW := kw / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float64
			for ky := 0; ky < kh; ky++ {
				for kx := 0; kx < kw; kx++ {
					sy := clamp(y+ky-halfH, 0, height-1)
					sx := clamp(x+kx-halfW, 0, width-1)
					sum += data[sy*width+sx] * kernel[ky][kx]
				}
			}
			out[y*width+x] = sum
		}
	}

	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// normalize rescales values in place to exactly span [0,1], with an epsilon
// guard so a perfectly flat field stays finite.
func normalize(values []float64) {
	if len(values) == 0 {
		return
	}
	minV := floats.Min(values)
	maxV := floats.Max(values)
	span := maxV - minV + normEpsilon
	for i, v := range values {
		values[i] = (v - minV) / span
	}
}
