package render

import (
	"sync"
	"sync/atomic"
	"time"
)

// progressInterval is how often the coordinator goroutine aggregates
// per-worker counters and reports a Snapshot (spec.md §4.7: "≈ every
// 280 ms").
const progressInterval = 280 * time.Millisecond

// Snapshot is one progress report: the fields of the source's
// "[%, µs/path, ETA, Msamples/s]" printer (spec.md §4.7), aggregated
// across every worker since render start.
type Snapshot struct {
	PercentComplete   float64
	MicrosPerPath     float64
	ETA               time.Duration
	MegaSamplesPerSec float64
}

// totalPaths is the number of (pixel, sample) paths the whole render
// will trace if it runs to completion.
func (r *Renderer) totalPaths() int64 {
	return int64(r.Camera.ImageWidth) * int64(r.Camera.ImageHeight) * int64(r.Config.SampleCount)
}

func (r *Renderer) snapshot() Snapshot {
	traced := atomic.LoadInt64(&r.pathsTraced)
	micros := atomic.LoadInt64(&r.pathMicros)
	total := r.totalPaths()

	var pct, usPerPath, msps float64
	if total > 0 {
		pct = 100 * float64(traced) / float64(total)
	}
	if traced > 0 {
		usPerPath = float64(micros) / float64(traced)
	}
	elapsed := time.Since(r.startedAt).Seconds()
	if elapsed > 0 {
		msps = float64(traced) / elapsed / 1e6
	}

	var eta time.Duration
	if traced > 0 && total > traced {
		perPath := time.Duration(usPerPath * float64(time.Microsecond))
		eta = perPath * time.Duration(total-traced)
	}

	return Snapshot{
		PercentComplete:   pct,
		MicrosPerPath:     usPerPath,
		ETA:               eta,
		MegaSamplesPerSec: msps,
	}
}

// runProgress periodically reports Snapshot to r.Progress until stop is
// closed, plus one final report so the caller always sees a 100% (or
// last-known) snapshot after Run returns.
func (r *Renderer) runProgress(stop <-chan struct{}, done *sync.WaitGroup) {
	defer done.Done()
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			r.Progress(r.snapshot())
			return
		case <-ticker.C:
			r.Progress(r.snapshot())
		}
	}
}
