package render

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/VKoskiv/c-ray/internal/camera"
	"github.com/VKoskiv/c-ray/internal/integrator"
	"github.com/VKoskiv/c-ray/internal/sampler"
	"github.com/VKoskiv/c-ray/internal/tile"
)

// Config holds the renderer-level settings of spec.md §6's "renderer"
// scene-document object.
type Config struct {
	ThreadCount int
	SampleCount int
	Bounces     int
	TileWidth   int
	TileHeight  int
	TileOrder   tile.Order
}

// Renderer owns the tile partition, the accumulation buffer, the
// output frame, and the shared cancellation/progress state described
// in spec.md §5. One Renderer renders one image.
type Renderer struct {
	Scene  *integrator.Scene
	Camera *camera.Camera
	Config Config

	Buffer *Buffer
	Frame  *Frame

	// Progress is called from the coordinator goroutine roughly every
	// 280ms (spec.md §4.7). Optional; nil disables progress reporting.
	Progress func(Snapshot)

	tiles    []tile.Tile
	order    []int
	nextTile int32
	tileMu   sync.Mutex

	aborted int32 // atomic; set via Abort.

	pathsTraced   int64 // atomic.
	pathMicros    int64 // atomic; sum of per-path wall-clock microseconds.
	startedAt     time.Time
}

// NewRenderer builds a renderer for scene/camera at the image
// dimensions already baked into camera.
func NewRenderer(scene *integrator.Scene, cam *camera.Camera, cfg Config) *Renderer {
	tw, th := cfg.TileWidth, cfg.TileHeight
	if tw <= 0 {
		tw = 32
	}
	if th <= 0 {
		th = tw
	}
	tiles := tile.Partition(cam.ImageWidth, cam.ImageHeight, tw)
	// Square tiles only (tile.Partition is single-dimension); non-square
	// tileWidth/tileHeight beyond the square case is not modeled by the
	// source's tile.c either, so tw doubles as both dimensions here.
	_ = th
	order := tile.Reorder(tiles, cfg.TileOrder, rngForOrder(cfg.TileOrder))

	return &Renderer{
		Scene:  scene,
		Camera: cam,
		Config: cfg,
		Buffer: NewBuffer(cam.ImageWidth, cam.ImageHeight),
		Frame:  NewFrame(cam.ImageWidth, cam.ImageHeight),
		tiles:  tiles,
		order:  order,
	}
}

// Abort requests cooperative cancellation (spec.md §5): already-traced
// pixels remain valid; workers exit at their next pixel-loop boundary.
func (r *Renderer) Abort() {
	atomic.StoreInt32(&r.aborted, 1)
}

func (r *Renderer) isAborted() bool {
	return atomic.LoadInt32(&r.aborted) != 0
}

// Run launches Config.ThreadCount workers plus (if Progress is set) one
// coordinator goroutine, and blocks until every tile is either complete
// or the render is aborted. It returns true if the render ran to
// completion, false if it was aborted before every tile finished.
func (r *Renderer) Run() bool {
	if r.Config.ThreadCount <= 0 {
		r.Config.ThreadCount = 1
	}
	r.startedAt = time.Now()

	var stopProgress chan struct{}
	var progressWG sync.WaitGroup
	if r.Progress != nil {
		stopProgress = make(chan struct{})
		progressWG.Add(1)
		go r.runProgress(stopProgress, &progressWG)
	}

	var wg sync.WaitGroup
	for i := 0; i < r.Config.ThreadCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker()
		}()
	}
	wg.Wait()

	if stopProgress != nil {
		close(stopProgress)
		progressWG.Wait()
	}

	return !r.isAborted()
}

// Tiles returns a snapshot of every tile's current state, for hosts
// that need to report completed-pass counts after an abort (spec.md
// §7's abort-time output filename suffix).
func (r *Renderer) Tiles() []tile.Tile {
	r.tileMu.Lock()
	defer r.tileMu.Unlock()
	out := make([]tile.Tile, len(r.tiles))
	copy(out, r.tiles)
	return out
}

// claimTile atomically hands out the next tile index in traversal
// order, or -1 once every tile has been claimed (spec.md §4.7 step 1).
func (r *Renderer) claimTile() int {
	idx := atomic.AddInt32(&r.nextTile, 1) - 1
	if int(idx) >= len(r.order) {
		return -1
	}
	return r.order[idx]
}

// worker repeatedly claims tiles and renders them to completion or
// until the shared aborted flag is observed.
func (r *Renderer) worker() {
	for {
		if r.isAborted() {
			return
		}
		ti := r.claimTile()
		if ti < 0 {
			return
		}
		r.renderTile(ti)
	}
}

// renderTile runs every sample of every pixel of tile ti, in the fixed
// order spec.md §4.7 requires for determinism: samples outermost,
// pixels row-major within the tile.
func (r *Renderer) renderTile(ti int) {
	r.tileMu.Lock()
	r.tiles[ti].IsRendering = true
	r.tileMu.Unlock()

	t := r.tiles[ti]
	w := r.Camera.ImageWidth

	for sampleIndex := 1; sampleIndex <= r.Config.SampleCount; sampleIndex++ {
		if r.isAborted() {
			r.tileMu.Lock()
			r.tiles[ti].IsRendering = false
			r.tileMu.Unlock()
			return
		}
		for y := t.BeginY; y < t.EndY; y++ {
			for x := t.BeginX; x < t.EndX; x++ {
				if r.isAborted() {
					r.tileMu.Lock()
					r.tiles[ti].IsRendering = false
					r.tileMu.Unlock()
					return
				}
				start := time.Now()

				pixelIndex := y*w + x
				s := sampler.New(sampleIndex-1, pixelIndex)
				ray := r.Camera.Ray(x, y, s)
				sampleColor := integrator.Trace(ray, r.Scene, r.Config.Bounces, s)
				running := r.Buffer.Accumulate(x, y, sampleColor)
				r.Frame.Set(x, y, running)

				atomic.AddInt64(&r.pathsTraced, 1)
				atomic.AddInt64(&r.pathMicros, time.Since(start).Microseconds())
			}
		}
		r.tileMu.Lock()
		r.tiles[ti].CompletedSamples = sampleIndex
		r.tileMu.Unlock()
	}

	r.tileMu.Lock()
	r.tiles[ti].IsRendering = false
	r.tiles[ti].RenderComplete = true
	r.tileMu.Unlock()
}

func rngForOrder(order tile.Order) *rand.Rand {
	if order != tile.Random {
		return nil
	}
	return rand.New(rand.NewSource(1))
}
