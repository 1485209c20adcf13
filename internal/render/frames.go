package render

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// FrameMetrics tracks how long each drawn frame took. The picker exposes
// the numbers through its metrics snapshot.
type FrameMetrics struct {
	frames        atomic.Int64 // total frames since Reset
	periodFrames  atomic.Int64 // frames since the last FPS update
	lastFPS       atomic.Int64 // FPS * 1000
	lastFrameTime atomic.Int64
	minFrameTime  atomic.Int64
	maxFrameTime  atomic.Int64
	totalTime     atomic.Int64
	lastUpdate    atomic.Int64 // unix nanoseconds
	updatePeriod  time.Duration
}

// NewFrameMetrics creates a new FrameMetrics. FPS is recalculated every
// updatePeriod, one second when updatePeriod is not positive.
func NewFrameMetrics(updatePeriod time.Duration) *FrameMetrics {
	if updatePeriod <= 0 {
		updatePeriod = time.Second
	}
	fm := &FrameMetrics{updatePeriod: updatePeriod}
	fm.lastUpdate.Store(time.Now().UnixNano())
	fm.minFrameTime.Store(int64(time.Hour))
	return fm
}

// RecordFrame records one frame and its duration.
func (fm *FrameMetrics) RecordFrame(frameTime time.Duration) {
	n := frameTime.Nanoseconds()

	fm.frames.Add(1)
	fm.periodFrames.Add(1)
	fm.lastFrameTime.Store(n)
	fm.totalTime.Add(n)

	for {
		cur := fm.minFrameTime.Load()
		if n >= cur || fm.minFrameTime.CompareAndSwap(cur, n) {
			break
		}
	}
	for {
		cur := fm.maxFrameTime.Load()
		if n <= cur || fm.maxFrameTime.CompareAndSwap(cur, n) {
			break
		}
	}

	now := time.Now().UnixNano()
	last := fm.lastUpdate.Load()
	elapsed := time.Duration(now - last)
	if elapsed >= fm.updatePeriod && fm.lastUpdate.CompareAndSwap(last, now) {
		frames := fm.periodFrames.Swap(0)
		fm.lastFPS.Store(int64(float64(frames) / elapsed.Seconds() * 1000))
	}
}

// Frames returns the number of frames recorded since the last Reset.
func (fm *FrameMetrics) Frames() int64 {
	return fm.frames.Load()
}

// FPS returns the frames per second over the last full period.
func (fm *FrameMetrics) FPS() float64 {
	return float64(fm.lastFPS.Load()) / 1000.0
}

// LastFrameTime returns the duration of the last frame.
func (fm *FrameMetrics) LastFrameTime() time.Duration {
	return time.Duration(fm.lastFrameTime.Load())
}

// MinFrameTime returns the shortest frame, or zero before any frame.
func (fm *FrameMetrics) MinFrameTime() time.Duration {
	if fm.frames.Load() == 0 {
		return 0
	}
	return time.Duration(fm.minFrameTime.Load())
}

// MaxFrameTime returns the longest frame.
func (fm *FrameMetrics) MaxFrameTime() time.Duration {
	return time.Duration(fm.maxFrameTime.Load())
}

// AverageFrameTime returns the mean frame time since the last Reset.
func (fm *FrameMetrics) AverageFrameTime() time.Duration {
	count := fm.frames.Load()
	if count == 0 {
		return 0
	}
	return time.Duration(fm.totalTime.Load() / count)
}

// Reset clears all metrics to their initial state.
func (fm *FrameMetrics) Reset() {
	fm.frames.Store(0)
	fm.periodFrames.Store(0)
	fm.lastFPS.Store(0)
	fm.lastFrameTime.Store(0)
	fm.minFrameTime.Store(int64(time.Hour))
	fm.maxFrameTime.Store(0)
	fm.totalTime.Store(0)
	fm.lastUpdate.Store(time.Now().UnixNano())
}

// DrawOptionsPool recycles ebiten.DrawImageOptions between frames.
type DrawOptionsPool struct {
	pool sync.Pool
}

// NewDrawOptionsPool creates a new DrawOptionsPool.
func NewDrawOptionsPool() *DrawOptionsPool {
	return &DrawOptionsPool{
		pool: sync.Pool{
			New: func() any {
				return &ebiten.DrawImageOptions{}
			},
		},
	}
}

// Get returns options reset to their defaults.
func (p *DrawOptionsPool) Get() *ebiten.DrawImageOptions {
	op := p.pool.Get().(*ebiten.DrawImageOptions)
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.Blend = ebiten.BlendSourceOver
	op.Filter = ebiten.FilterNearest
	return op
}

// Put returns options to the pool.
func (p *DrawOptionsPool) Put(op *ebiten.DrawImageOptions) {
	if op != nil {
		p.pool.Put(op)
	}
}
