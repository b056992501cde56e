package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"shardsto3d/internal/models"
	"shardsto3d/pkg/classify"
	"shardsto3d/pkg/config"
	"shardsto3d/pkg/depth"
	"shardsto3d/pkg/pointcloud"
	"shardsto3d/pkg/reconstruction"
	"shardsto3d/pkg/stl"
	"shardsto3d/pkg/visualization"
)

func main() {
	inputDir := flag.String("input", "", "Directory containing fragment photos (JPEG or PNG)")
	outputName := flag.String("output", "vessel.stl", "Output STL filename")
	configPath := flag.String("config", "shardsto3d.yaml", "Configuration file path")
	segments := flag.Int("segments", 0, "Lathe segments (overrides config when > 0)")
	saveIntermediary := flag.Bool("save-intermediary", false, "Save depth maps and point clouds during processing")
	intermediaryDir := flag.String("intermediary-dir", "intermediary_results", "Directory to save intermediary results")
	flag.Parse()

	if *inputDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *segments > 0 {
		cfg.Reconstruction.LatheSegments = *segments
	}
	if *saveIntermediary {
		cfg.Output.SaveIntermediary = true
	}

	logger := newLogger(cfg.Output.Verbose)
	defer logger.Sync()

	fmt.Println("================================")
	fmt.Println("POTTERY FRAGMENT 3D RECONSTRUCTION")
	fmt.Println("depth-from-image -> point cloud -> lathe mesh")
	fmt.Println("================================")

	if err := run(cfg, logger, *inputDir, *outputName, *intermediaryDir); err != nil {
		logger.Fatalf("reconstruction failed: %v", err)
	}
}

func newLogger(verbose bool) *zap.SugaredLogger {
	zcfg := zap.NewDevelopmentConfig()
	if !verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	return logger.Sugar()
}

func run(cfg *config.Config, logger *zap.SugaredLogger, inputDir, outputName, intermediaryDir string) error {
	captures, err := loadCaptures(inputDir, classify.NewStaticClassifier())
	if err != nil {
		return fmt.Errorf("failed to load captures: %w", err)
	}
	logger.Infow("loaded captures", "count", len(captures))

	estimator := depth.NewEstimator(depth.Params{
		KernelSize:     cfg.Depth.KernelSize,
		EdgeWeight:     cfg.Depth.EdgeWeight,
		GradientWeight: cfg.Depth.GradientWeight,
	})
	if err := estimator.Init(); err != nil {
		return fmt.Errorf("failed to initialize depth estimator: %w", err)
	}

	projector := &pointcloud.Projector{
		DepthScale:          cfg.Projection.DepthScale,
		BackgroundThreshold: cfg.Projection.BackgroundThreshold,
	}

	store := reconstruction.NewFragmentStore()
	reconstructor := reconstruction.NewReconstructor(store, reconstruction.Params{
		LatheSegments: cfg.Reconstruction.LatheSegments,
		Logger:        logger,
	})

	for _, capture := range captures {
		field, err := estimator.EstimateDepth(capture.Image)
		if err != nil {
			// A bad capture fails on its own; accumulated fragments stay.
			logger.Warnw("skipping capture", "file", capture.Filename, "error", err)
			continue
		}

		cloud, err := projector.DepthToPointCloud(field, nil)
		if err != nil {
			logger.Warnw("skipping capture", "file", capture.Filename, "error", err)
			continue
		}

		store.AddFragment(cloud, capture.Classification)
		logger.Infow("registered fragment",
			"file", capture.Filename,
			"type", capture.Classification.Type,
			"points", len(cloud))

		if cfg.Output.SaveIntermediary {
			base := strings.TrimSuffix(filepath.Base(capture.Filename), filepath.Ext(capture.Filename))
			depthPath := filepath.Join(intermediaryDir, "01_depth_maps", base+".jpg")
			if err := visualization.SaveDepthMap(field, depthPath); err != nil {
				logger.Warnw("failed to save depth map", "file", depthPath, "error", err)
			}
			cloudPath := filepath.Join(intermediaryDir, "02_point_clouds", base+".ply")
			if err := visualization.SavePointCloud(cloud, cloudPath); err != nil {
				logger.Warnw("failed to save point cloud", "file", cloudPath, "error", err)
			}
		}
	}

	stats := store.Stats()
	logger.Infow("fragment store",
		"fragments", stats.FragmentCount,
		"points", stats.TotalPoints,
		"types", stats.Types)

	mesh := reconstructor.Reconstruct()
	logger.Infow("reconstructed mesh",
		"vertices", len(mesh.Vertices),
		"triangles", mesh.TriangleCount())

	if err := stl.SaveToSTL(outputName, stl.MeshToTriangles(mesh)); err != nil {
		return fmt.Errorf("failed to save STL file: %w", err)
	}

	fmt.Printf("\nOutput 3D model saved to: %s\n", outputName)
	return nil
}

// loadCaptures reads, decodes, and classifies all fragment photos in dir,
// sorted by the numeric part of their filenames.
func loadCaptures(dir string, classifier classify.Classifier) ([]models.Capture, error) {
	if readiness := classifier.Readiness(); readiness.State != classify.Ready {
		return nil, fmt.Errorf("classifier not ready: %v", readiness.Err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var imageFiles []string
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".jpg" || ext == ".jpeg" || ext == ".png" {
			imageFiles = append(imageFiles, entry.Name())
		}
	}
	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("no images found in input directory")
	}

	sort.Slice(imageFiles, func(i, j int) bool {
		return extractNumber(imageFiles[i]) < extractNumber(imageFiles[j])
	})

	captures := make([]models.Capture, 0, len(imageFiles))
	for i, filename := range imageFiles {
		img, err := loadImage(filepath.Join(dir, filename))
		if err != nil {
			return nil, fmt.Errorf("failed to load image %s: %w", filename, err)
		}

		result, err := classifier.Classify(img)
		if err != nil {
			return nil, fmt.Errorf("failed to classify image %s: %w", filename, err)
		}

		captures = append(captures, models.Capture{
			Image:          img,
			Filename:       filename,
			Index:          i,
			Classification: result,
		})
	}

	return captures, nil
}

// extractNumber extracts the numeric part from a filename for ordering.
func extractNumber(filename string) int {
	base := filepath.Base(filename)
	numStr := ""
	for _, c := range base {
		if c >= '0' && c <= '9' {
			numStr += string(c)
		}
	}

	if numStr != "" {
		if num, err := strconv.Atoi(numStr); err == nil {
			return num
		}
	}
	return 0
}

// loadImage decodes an image from a file.
func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}

	return img, nil
}
