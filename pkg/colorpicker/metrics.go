package colorpicker

import (
	"expvar"
	"sync/atomic"
	"time"
)

// Metrics collects operational counters of a picker and can publish them
// through expvar at /debug/vars. Safe for concurrent use.
//
//	m := colorpicker.NewMetrics()
//	m.RegisterExpvar()
//	opts := colorpicker.DefaultOptions()
//	opts.Metrics = m
type Metrics struct {
	starts         atomic.Int64
	stops          atomic.Int64
	restarts       atomic.Int64
	configReloads  atomic.Int64
	colorChanges   atomic.Int64
	samples        atomic.Int64
	errorsTotal    atomic.Int64
	eventsEmitted  atomic.Int64
	historyWrites  atomic.Int64
	historyErrors  atomic.Int64
	surfaceExports atomic.Int64

	// Latencies in nanoseconds.
	redrawLatencyNs    atomic.Int64
	redrawLatencyCount atomic.Int64
	historyLatencyNs   atomic.Int64
	historyLatencyCnt  atomic.Int64

	currentlyRunning atomic.Int32
	attachedSurfaces atomic.Int32

	registered atomic.Bool
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RegisterExpvar publishes the metrics under colorpicker_* names. Only the
// first call registers; expvar names are process wide.
func (m *Metrics) RegisterExpvar() {
	if m.registered.Swap(true) {
		return
	}
	counters := map[string]*atomic.Int64{
		"colorpicker_starts_total":          &m.starts,
		"colorpicker_stops_total":           &m.stops,
		"colorpicker_restarts_total":        &m.restarts,
		"colorpicker_config_reloads_total":  &m.configReloads,
		"colorpicker_color_changes_total":   &m.colorChanges,
		"colorpicker_pointer_samples_total": &m.samples,
		"colorpicker_errors_total":          &m.errorsTotal,
		"colorpicker_events_emitted_total":  &m.eventsEmitted,
		"colorpicker_history_writes_total":  &m.historyWrites,
		"colorpicker_history_errors_total":  &m.historyErrors,
		"colorpicker_exports_total":         &m.surfaceExports,
	}
	for name, v := range counters {
		v := v
		expvar.Publish(name, expvar.Func(func() any { return v.Load() }))
	}

	expvar.Publish("colorpicker_running", expvar.Func(func() any { return m.currentlyRunning.Load() }))
	expvar.Publish("colorpicker_attached_surfaces", expvar.Func(func() any { return m.attachedSurfaces.Load() }))
	expvar.Publish("colorpicker_redraw_latency_avg_ms", expvar.Func(func() any {
		return averageMillis(m.redrawLatencyNs.Load(), m.redrawLatencyCount.Load())
	}))
	expvar.Publish("colorpicker_history_latency_avg_ms", expvar.Func(func() any {
		return averageMillis(m.historyLatencyNs.Load(), m.historyLatencyCnt.Load())
	}))
}

// MetricsSnapshot is a point-in-time copy of all metrics.
type MetricsSnapshot struct {
	Starts         int64
	Stops          int64
	Restarts       int64
	ConfigReloads  int64
	ColorChanges   int64
	PointerSamples int64
	ErrorsTotal    int64
	EventsEmitted  int64
	HistoryWrites  int64
	HistoryErrors  int64
	SurfaceExports int64

	Running          bool
	AttachedSurfaces int

	RedrawLatencyAvg  time.Duration
	HistoryLatencyAvg time.Duration
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Starts:         m.starts.Load(),
		Stops:          m.stops.Load(),
		Restarts:       m.restarts.Load(),
		ConfigReloads:  m.configReloads.Load(),
		ColorChanges:   m.colorChanges.Load(),
		PointerSamples: m.samples.Load(),
		ErrorsTotal:    m.errorsTotal.Load(),
		EventsEmitted:  m.eventsEmitted.Load(),
		HistoryWrites:  m.historyWrites.Load(),
		HistoryErrors:  m.historyErrors.Load(),
		SurfaceExports: m.surfaceExports.Load(),

		Running:          m.currentlyRunning.Load() > 0,
		AttachedSurfaces: int(m.attachedSurfaces.Load()),

		RedrawLatencyAvg:  safeDivide(m.redrawLatencyNs.Load(), m.redrawLatencyCount.Load()),
		HistoryLatencyAvg: safeDivide(m.historyLatencyNs.Load(), m.historyLatencyCnt.Load()),
	}
}

// IncrementStarts records a start.
func (m *Metrics) IncrementStarts() { m.starts.Add(1) }

// IncrementStops records a stop.
func (m *Metrics) IncrementStops() { m.stops.Add(1) }

// IncrementRestarts records a restart.
func (m *Metrics) IncrementRestarts() { m.restarts.Add(1) }

// IncrementConfigReloads records a configuration reload.
func (m *Metrics) IncrementConfigReloads() { m.configReloads.Add(1) }

// IncrementColorChanges records a change of the selected color.
func (m *Metrics) IncrementColorChanges() { m.colorChanges.Add(1) }

// IncrementPointerSamples records a color published by pointer input.
func (m *Metrics) IncrementPointerSamples() { m.samples.Add(1) }

// IncrementErrors records an error.
func (m *Metrics) IncrementErrors() { m.errorsTotal.Add(1) }

// IncrementEventsEmitted records an emitted event.
func (m *Metrics) IncrementEventsEmitted() { m.eventsEmitted.Add(1) }

// IncrementHistoryWrites records a persisted history update.
func (m *Metrics) IncrementHistoryWrites() { m.historyWrites.Add(1) }

// IncrementHistoryErrors records a failed history load or save.
func (m *Metrics) IncrementHistoryErrors() { m.historyErrors.Add(1) }

// IncrementSurfaceExports records a surface written as an image.
func (m *Metrics) IncrementSurfaceExports() { m.surfaceExports.Add(1) }

// SetRunning updates the running gauge.
func (m *Metrics) SetRunning(running bool) {
	if running {
		m.currentlyRunning.Store(1)
	} else {
		m.currentlyRunning.Store(0)
	}
}

// SetAttachedSurfaces updates the attached surfaces gauge.
func (m *Metrics) SetAttachedSurfaces(n int) {
	m.attachedSurfaces.Store(int32(n))
}

// RecordRedrawLatency records how long attached surfaces took to follow a
// color change.
func (m *Metrics) RecordRedrawLatency(d time.Duration) {
	m.redrawLatencyNs.Add(d.Nanoseconds())
	m.redrawLatencyCount.Add(1)
}

// RecordHistoryLatency records the duration of a history save.
func (m *Metrics) RecordHistoryLatency(d time.Duration) {
	m.historyLatencyNs.Add(d.Nanoseconds())
	m.historyLatencyCnt.Add(1)
}

// Reset clears all metrics. Useful for testing.
func (m *Metrics) Reset() {
	for _, v := range []*atomic.Int64{
		&m.starts, &m.stops, &m.restarts, &m.configReloads, &m.colorChanges,
		&m.samples, &m.errorsTotal, &m.eventsEmitted, &m.historyWrites,
		&m.historyErrors, &m.surfaceExports,
		&m.redrawLatencyNs, &m.redrawLatencyCount, &m.historyLatencyNs, &m.historyLatencyCnt,
	} {
		v.Store(0)
	}
	m.currentlyRunning.Store(0)
	m.attachedSurfaces.Store(0)
}

func safeDivide(total, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return time.Duration(total / count)
}

func averageMillis(totalNs, count int64) float64 {
	if count == 0 {
		return 0
	}
	return float64(totalNs) / float64(count) / 1e6
}

var defaultMetrics = NewMetrics()

// DefaultMetrics returns the process-wide Metrics instance.
func DefaultMetrics() *Metrics {
	return defaultMetrics
}
