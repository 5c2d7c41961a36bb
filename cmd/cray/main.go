// Command cray is the CLI host for the path tracer (spec.md §6): it
// reads a scene JSON document (optionally pre-seeded by a YAML render
// settings override), renders it with internal/render, and writes the
// resulting image with internal/imageio. Grounded on the teacher's
// flat flag.FlagSet-free, programmatic main() wiring style
// (vu.go/app.go never import a CLI framework), generalized here to an
// explicit flag.FlagSet since this is the process entrypoint rather
// than a library API.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/VKoskiv/c-ray/internal/imageio"
	"github.com/VKoskiv/c-ray/internal/rayerr"
	"github.com/VKoskiv/c-ray/internal/render"
	"github.com/VKoskiv/c-ray/internal/scene"
)

// settingsOverride is the YAML document accepted via -config: a subset
// of the JSON scene document's "renderer" object. It is read before the
// scene JSON is loaded and applied on top of the loaded scene's values
// by applyOverrides (SPEC_FULL.md §4.9). TileOrder is decoded but not
// applied.
type settingsOverride struct {
	ThreadCount int    `yaml:"threadCount"`
	SampleCount int    `yaml:"sampleCount"`
	Bounces     int    `yaml:"bounces"`
	TileWidth   int    `yaml:"tileWidth"`
	TileHeight  int    `yaml:"tileHeight"`
	TileOrder   string `yaml:"tileOrder"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("cray", flag.ContinueOnError)
	in := fs.String("in", "", "path to the scene JSON document")
	verbose := fs.Bool("v", false, "enable verbose (debug-level) logging")
	threads := fs.Int("threads", 0, "override renderer.threadCount (0 keeps the scene's value)")
	samples := fs.Int("samples", 0, "override renderer.sampleCount (0 keeps the scene's value)")
	dims := fs.String("WxH", "", "override scene.width/scene.height, e.g. 1920x1080")
	tileSize := fs.Int("tile", 0, "override renderer.tileWidth/tileHeight (0 keeps the scene's value)")
	config := fs.String("config", "", "optional YAML render-settings override file; overrides the -in scene's settings, flags override it")
	selfTest := fs.Bool("test", false, "run the built-in self-check suite and exit")

	if err := fs.Parse(args); err != nil {
		return -1
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *selfTest {
		if selfCheck(logger) {
			return 0
		}
		return -1
	}

	if *in == "" {
		logger.Error("missing required -in flag")
		return -1
	}

	var override *settingsOverride
	if *config != "" {
		o, err := loadOverride(*config)
		if err != nil {
			logger.Error("reading -config override", "error", err)
			return exitCode(err)
		}
		override = o
	}

	w, err := scene.LoadDocument(*in)
	if err != nil {
		logger.Error("loading scene", "path", *in, "error", err)
		return exitCode(err)
	}

	applyOverrides(w, override, *threads, *samples, *tileSize, *dims, logger)

	renderer := render.NewRenderer(w.Scene, w.Camera, w.Config)
	renderer.Progress = func(s render.Snapshot) {
		logger.Info("render progress",
			"percent", fmt.Sprintf("%.1f", s.PercentComplete),
			"us_per_path", fmt.Sprintf("%.1f", s.MicrosPerPath),
			"eta", s.ETA.Round(time.Second),
			"msamples_per_sec", fmt.Sprintf("%.2f", s.MegaSamplesPerSec),
		)
	}

	completed := renderer.Run()

	fileType, err := imageio.ParseFileType(w.OutputFileType)
	if err != nil {
		logger.Error("output file type", "error", err)
		return exitCode(err)
	}

	count := w.OutputCount
	if !completed {
		// spec.md §7: "on graceful abort the partial buffer is written
		// ... suffixed with the completed pass count."
		count = completedPassCount(renderer)
	}

	if err := imageio.WriteFrame(renderer.Frame, w.OutputDir, w.OutputName, count, fileType); err != nil {
		logger.Error("writing output", "error", err)
		return exitCode(err)
	}

	if !completed {
		logger.Warn("render aborted before completion; wrote partial frame",
			"path", imageio.OutputPath(w.OutputDir, w.OutputName, count, fileType))
		return exitCode(rayerr.New(rayerr.RenderAborted, "render aborted"))
	}

	logger.Info("render complete",
		"path", imageio.OutputPath(w.OutputDir, w.OutputName, count, fileType))
	return 0
}

// completedPassCount reports how many full sample passes every tile
// had finished when the render was aborted, for the abort-time output
// filename suffix spec.md §7 requires. Since tiles may finish at
// different sample counts, it reports the minimum across all tiles.
func completedPassCount(r *render.Renderer) int {
	min := r.Config.SampleCount
	for _, t := range r.Tiles() {
		if t.CompletedSamples < min {
			min = t.CompletedSamples
		}
	}
	if min < 0 {
		min = 0
	}
	return min
}

// exitCode maps a rayerr.Kind to a distinct negative exit code
// (spec.md §6: "exit code 0 on success, negative on parse/IO
// failure"), falling back to a generic -1 for errors not constructed
// through the rayerr taxonomy.
func exitCode(err error) int {
	var re *rayerr.Error
	if errors.As(err, &re) {
		return -int(re.Kind)
	}
	return -1
}

func loadOverride(path string) (*settingsOverride, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, rayerr.Wrap(rayerr.InputNotFound, path, err)
	}
	defer f.Close()

	var o settingsOverride
	if err := yaml.NewDecoder(f).Decode(&o); err != nil {
		return nil, rayerr.Wrap(rayerr.InputMalformed, path, err)
	}
	return &o, nil
}

// applyOverrides folds the YAML override (lowest precedence), then
// per-flag CLI overrides (highest precedence), onto the already-built
// World's render.Config and camera dimensions.
func applyOverrides(w *scene.World, override *settingsOverride, threads, samples, tile int, dims string, logger *slog.Logger) {
	if override != nil {
		if override.ThreadCount > 0 {
			w.Config.ThreadCount = override.ThreadCount
		}
		if override.SampleCount > 0 {
			w.Config.SampleCount = override.SampleCount
		}
		if override.Bounces > 0 {
			w.Config.Bounces = override.Bounces
		}
		if override.TileWidth > 0 {
			w.Config.TileWidth = override.TileWidth
		}
		if override.TileHeight > 0 {
			w.Config.TileHeight = override.TileHeight
		}
	}

	if threads > 0 {
		w.Config.ThreadCount = threads
	}
	if samples > 0 {
		w.Config.SampleCount = samples
	}
	if tile > 0 {
		w.Config.TileWidth = tile
		w.Config.TileHeight = tile
	}
	if dims != "" {
		width, height, err := parseDims(dims)
		if err != nil {
			logger.Warn("ignoring malformed -WxH override", "value", dims, "error", err)
		} else {
			w.Camera.ImageWidth = width
			w.Camera.ImageHeight = height
		}
	}
}

// discardLogger is used by tests that exercise selfCheck/run without
// wanting their output interleaved with `go test`'s own.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseDims(s string) (int, int, error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected WxH, got %q", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("width and height must be positive, got %dx%d", w, h)
	}
	return w, h, nil
}
