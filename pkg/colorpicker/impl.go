package colorpicker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opd-ai/go-colorpicker/internal/colors"
	"github.com/opd-ai/go-colorpicker/internal/config"
	"github.com/opd-ai/go-colorpicker/internal/history"
	"github.com/opd-ai/go-colorpicker/internal/notation"
	"github.com/opd-ai/go-colorpicker/internal/palette"
	"github.com/opd-ai/go-colorpicker/internal/tabs"
)

// window is the open picker window.
type window interface {
	Accept()
	Cancel()
	RefreshTabs() error
}

// pickerImpl is the private implementation of the Picker interface.
//
// Locks are taken in the order window, mu, state. Nothing calls into the
// window or the color state while holding mu.
type pickerImpl struct {
	// Configuration
	cfg          *config.Config
	opts         Options
	configSource string
	configPath   string // absolute path of a disk config, "" otherwise
	configLoader func() (*config.Config, error)

	// Components
	state     *colorState
	notations *notation.Registry
	tabs      *tabs.Registry
	history   *history.History
	palette   []colors.Color
	metrics   *Metrics
	tracker   *ErrorTracker
	breaker   *CircuitBreaker
	watcher   *configWatcher
	window    window
	answered  atomic.Bool
	log       atomic.Pointer[sessionLogger]

	// State
	running      atomic.Bool
	startTime    time.Time
	session      SessionID
	notation     string
	initial      colors.Color
	colorChanges atomic.Uint64
	lastError    atomic.Value // stores error

	// Handlers
	errorHandler ErrorHandler
	eventHandler EventHandler

	// Synchronization
	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	wg     sync.WaitGroup
}

// Verify interface implementation at compile time.
var _ Picker = (*pickerImpl)(nil)

// newPicker validates cfg and builds a stopped picker around it.
func newPicker(cfg *config.Config, opts *Options, source string, loader func() (*config.Config, error)) (*pickerImpl, error) {
	if opts == nil {
		defaultOpts := DefaultOptions()
		opts = &defaultOpts
	}
	if err := cfg.Validate(); err != nil {
		return nil, NewCategorizedError(fmt.Errorf("invalid config: %w", err), ErrorCategoryConfig, SeverityError)
	}

	p := &pickerImpl{
		cfg:          cfg,
		opts:         *opts,
		configSource: source,
		configLoader: loader,
		notations:    notation.NewRegistry(),
		tabs:         tabs.NewRegistry(),
		palette:      defaultPalette(),
		metrics:      opts.Metrics,
		tracker:      opts.ErrorTracker,
		breaker:      opts.HistoryBreaker,
	}
	if p.metrics == nil {
		p.metrics = DefaultMetrics()
	}
	if p.tracker == nil {
		p.tracker = DefaultErrorTracker()
	}
	if p.breaker == nil {
		p.breaker = NewCircuitBreaker(DefaultCircuitBreakerConfig())
	}
	p.log.Store(newSessionLogger(opts.Logger, ""))

	if err := p.tabs.SetOrder(cfg.Picker.Tabs); err != nil {
		return nil, NewCategorizedError(fmt.Errorf("tab order: %w", err), ErrorCategoryConfig, SeverityError)
	}

	c, name, err := initialColor(cfg.Picker, opts.Color, p.notations)
	if err != nil {
		return nil, err
	}
	p.notation = name
	p.state = newColorState(c, cfg.Picker.AlphaChannel, cfg.Picker.MarkerSize)
	p.state.onChange = p.onColorChange
	p.initial = p.state.current()
	p.done = make(chan struct{})
	close(p.done)

	p.openHistory()
	return p, nil
}

// initialColor picks the starting color and notation. An explicit value
// wins and selects the notation it is written in; then the configured
// default, where "random" means a random color.
func initialColor(pc config.PickerConfig, explicit string, reg *notation.Registry) (colors.Color, string, error) {
	name := pc.Notation
	s := explicit
	if s != "" {
		name = reg.Select(s).Name
	} else {
		s = pc.DefaultColor
	}

	switch s {
	case "":
		s = config.DefaultColor
	case config.RandomColor:
		return colors.Random(), name, nil
	}
	c, err := colors.Parse(s)
	if err != nil {
		return colors.Color{}, "", NewCategorizedError(fmt.Errorf("initial color: %w", err), ErrorCategoryInput, SeverityError)
	}
	return c, name, nil
}

// openHistory loads the history, persisted through the breaker unless
// persistence is off.
func (p *pickerImpl) openHistory() {
	pc := p.cfg.Picker
	var store history.Store
	if pc.HistoryFile != "" && !p.opts.NoHistoryFile {
		store = &breakerStore{store: history.NewFileStore(pc.HistoryFile), breaker: p.breaker}
	}
	h, err := history.Open(pc.HistoryLength, store)
	p.history = h
	if err != nil {
		p.metrics.IncrementHistoryErrors()
		p.recordError(NewCategorizedError(err, ErrorCategoryHistory, SeverityWarning))
		p.logger().Warn("history not loaded", "file", pc.HistoryFile, "error", err)
	}
}

func (p *pickerImpl) logger() *sessionLogger {
	return p.log.Load()
}

// onColorChange runs with the state lock held for every applied color.
func (p *pickerImpl) onColorChange(c colors.Color, sample bool) {
	p.colorChanges.Add(1)
	p.metrics.IncrementColorChanges()
	if sample {
		p.metrics.IncrementPointerSamples()
		p.logger().Debug("pointer sample", "color", c.RGBString())
	}
}

// Start begins a picker session.
func (p *pickerImpl) Start() error {
	initial := p.state.current()

	p.mu.Lock()
	if p.running.Load() {
		p.mu.Unlock()
		return ErrAlreadyRunning
	}

	p.session = NewSessionID()
	p.ctx, p.cancel = context.WithCancel(context.Background())
	p.done = make(chan struct{})
	ctx, done, session := p.ctx, p.done, p.session
	headless := p.opts.Headless

	// Set running state BEFORE starting goroutine to avoid race
	p.running.Store(true)
	p.startTime = time.Now()
	p.initial = initial
	p.colorChanges.Store(0)
	p.mu.Unlock()

	p.log.Store(newSessionLogger(p.opts.Logger, session))
	p.metrics.IncrementStarts()
	p.metrics.SetRunning(true)
	p.startWatcher()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer close(done)
		defer p.running.Store(false)
		defer p.metrics.SetRunning(false)
		defer p.stopWatcher()

		if headless {
			<-ctx.Done()
		} else {
			p.runRenderLoop(ctx)

			// The window can close on its own; end the session with it.
			p.mu.RLock()
			cancel := p.cancel
			p.mu.RUnlock()
			if cancel != nil {
				cancel()
			}
		}

		p.logger().Info("picker stopped")
		p.emitEvent(EventStopped, "Picker stopped")
	}()

	p.logger().Info("picker started", "headless", headless, "config", p.configSource)
	p.emitEvent(EventStarted, "Picker started")
	return nil
}

// Stop ends the session.
func (p *pickerImpl) Stop() error {
	if !p.running.Load() {
		return nil // Already stopped
	}

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	timeout := p.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}

	select {
	case <-done:
		p.metrics.IncrementStops()
		return nil
	case <-time.After(timeout):
		err := fmt.Errorf("shutdown timeout after %v: session did not stop", timeout)
		p.notifyError(NewCategorizedError(err, ErrorCategoryRender, SeverityCritical))
		return err
	}
}

// Restart performs a stop followed by a start.
func (p *pickerImpl) Restart() error {
	if err := p.Stop(); err != nil {
		wrappedErr := fmt.Errorf("stop failed: %w", err)
		p.notifyError(wrappedErr)
		return wrappedErr
	}

	if p.configLoader != nil {
		cfg, err := p.loadConfig()
		if err != nil {
			wrappedErr := NewCategorizedError(fmt.Errorf("config reload failed: %w", err), ErrorCategoryConfig, SeverityError)
			p.notifyError(wrappedErr)
			return wrappedErr
		}
		if err := p.applyConfig(cfg); err != nil {
			wrappedErr := NewCategorizedError(fmt.Errorf("config apply failed: %w", err), ErrorCategoryConfig, SeverityError)
			p.notifyError(wrappedErr)
			return wrappedErr
		}
		p.emitEvent(EventConfigReloaded, "Configuration reloaded")
	}

	if err := p.Start(); err != nil {
		wrappedErr := fmt.Errorf("start failed: %w", err)
		p.notifyError(wrappedErr)
		return wrappedErr
	}

	p.metrics.IncrementRestarts()
	p.emitEvent(EventRestarted, "Picker restarted")
	return nil
}

// ReloadConfig reloads the configuration in place. An open window keeps
// its active tab when the tab is still listed.
func (p *pickerImpl) ReloadConfig() error {
	if !p.running.Load() {
		return ErrNotRunning
	}
	if p.configLoader == nil {
		return ErrNoConfigLoader
	}

	cfg, err := p.loadConfig()
	if err != nil {
		wrappedErr := NewCategorizedError(fmt.Errorf("config reload failed: %w", err), ErrorCategoryConfig, SeverityError)
		p.notifyError(wrappedErr)
		return wrappedErr
	}
	if err := p.applyConfig(cfg); err != nil {
		wrappedErr := NewCategorizedError(fmt.Errorf("config apply failed: %w", err), ErrorCategoryConfig, SeverityError)
		p.notifyError(wrappedErr)
		return wrappedErr
	}

	p.mu.RLock()
	win := p.window
	p.mu.RUnlock()
	if win != nil {
		if err := win.RefreshTabs(); err != nil {
			p.notifyError(NewCategorizedError(fmt.Errorf("refresh tabs: %w", err), ErrorCategoryRender, SeverityError))
		}
	}

	p.metrics.IncrementConfigReloads()
	p.logger().Info("configuration reloaded", "config", p.configSource)
	p.emitEvent(EventConfigReloaded, "Configuration reloaded in-place")
	return nil
}

// loadConfig runs the loader and validates the result.
func (p *pickerImpl) loadConfig() (*config.Config, error) {
	cfg, err := p.configLoader()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyConfig makes cfg current. The tab order is checked first so a bad
// order leaves everything untouched.
func (p *pickerImpl) applyConfig(cfg *config.Config) error {
	if err := p.tabs.SetOrder(cfg.Picker.Tabs); err != nil {
		return err
	}

	p.mu.Lock()
	old := p.cfg
	p.cfg = cfg
	if cfg.Picker.Notation != old.Picker.Notation {
		if _, ok := p.notations.Get(cfg.Picker.Notation); ok {
			p.notation = cfg.Picker.Notation
		}
	}
	p.mu.Unlock()

	if err := p.history.SetMax(cfg.Picker.HistoryLength); err != nil {
		p.metrics.IncrementHistoryErrors()
		p.notifyError(NewCategorizedError(err, ErrorCategoryHistory, SeverityWarning))
	}
	p.state.configure(cfg.Picker.AlphaChannel, cfg.Picker.MarkerSize)
	p.state.bump()
	return nil
}

// startWatcher watches the config file when asked to. A watcher that
// cannot start is reported and the session runs without it.
func (p *pickerImpl) startWatcher() {
	if !p.opts.WatchConfig || p.configPath == "" {
		return
	}
	w, err := newConfigWatcher(p.configPath, p.opts.WatchDebounce, p.ReloadConfig, func(err error) {
		p.notifyError(NewCategorizedError(fmt.Errorf("config watcher: %w", err), ErrorCategoryConfig, SeverityWarning))
	})
	if err != nil {
		p.notifyError(NewCategorizedError(fmt.Errorf("config watcher: %w", err), ErrorCategoryConfig, SeverityWarning))
		return
	}
	w.Start()

	p.mu.Lock()
	p.watcher = w
	p.mu.Unlock()
	p.logger().Debug("watching configuration", "path", p.configPath)
}

func (p *pickerImpl) stopWatcher() {
	p.mu.Lock()
	w := p.watcher
	p.watcher = nil
	p.mu.Unlock()
	if w != nil {
		w.Stop()
	}
}

// IsRunning returns true while a session is active.
func (p *pickerImpl) IsRunning() bool {
	return p.running.Load()
}

// Done returns the channel closed when the current session ends.
func (p *pickerImpl) Done() <-chan struct{} {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.done
}

// Status returns detailed status information about the picker.
func (p *pickerImpl) Status() Status {
	value, name := p.Value(), p.Notation()

	p.mu.RLock()
	startTime := p.startTime
	configSource := p.configSource
	session := p.session
	p.mu.RUnlock()

	return Status{
		Running:      p.running.Load(),
		StartTime:    startTime,
		ColorChanges: p.colorChanges.Load(),
		Value:        value,
		Notation:     name,
		Session:      session,
		LastError:    p.getError(),
		ConfigSource: configSource,
	}
}

// SetErrorHandler registers a callback for runtime errors.
func (p *pickerImpl) SetErrorHandler(handler ErrorHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errorHandler = handler
}

// SetEventHandler registers a callback for lifecycle events.
func (p *pickerImpl) SetEventHandler(handler EventHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.eventHandler = handler
}

// Color returns the selected color.
func (p *pickerImpl) Color() colors.Color {
	return p.state.current()
}

// Hue returns the cached hue.
func (p *pickerImpl) Hue() float64 {
	return p.state.currentHue()
}

// SetColor selects c.
func (p *pickerImpl) SetColor(c colors.Color) {
	p.state.set(c, false)
}

// SetString parses s and selects it.
func (p *pickerImpl) SetString(s string) error {
	c, err := colors.Parse(s)
	if err != nil {
		ce := NewCategorizedError(err, ErrorCategoryInput, SeverityWarning).WithContext("value", s)
		p.recordError(ce)
		return ce
	}
	p.state.set(c, false)
	return nil
}

// SetRGB replaces the color channels, keeping alpha.
func (p *pickerImpl) SetRGB(r, g, b uint8) {
	p.state.update(func(c colors.Color) colors.Color {
		return colors.RGBA(r, g, b, c.A)
	})
}

// SetHSV replaces hue, saturation and value, keeping alpha. The spectrum
// follows h even when s or v is zero.
func (p *pickerImpl) SetHSV(h, s, v float64) {
	p.state.setHSV(h, s, v)
}

// SetAlpha replaces the alpha channel.
func (p *pickerImpl) SetAlpha(a float64) {
	p.state.update(func(c colors.Color) colors.Color {
		return c.WithAlpha(a)
	})
}

// SetPaletteColor selects a swatch.
func (p *pickerImpl) SetPaletteColor(s string) error {
	return p.SetString(s)
}

// Publish applies a pointer sample.
func (p *pickerImpl) Publish(c colors.Color) {
	p.state.set(c, true)
}

// Subscribe registers fn for every color change.
func (p *pickerImpl) Subscribe(fn func(colors.Color)) (unsubscribe func()) {
	return p.state.subscribe(fn)
}

// Value returns the selected color in the current notation.
func (p *pickerImpl) Value() string {
	c := p.state.current()
	return p.notationFor(c).Format(c)
}

// Notation returns the name of the notation Value uses.
func (p *pickerImpl) Notation() string {
	return p.notationFor(p.state.current()).Name
}

// notationFor returns the selected notation, or the first one in order
// that can show c when the selected one cannot.
func (p *pickerImpl) notationFor(c colors.Color) notation.Notation {
	p.mu.RLock()
	name := p.notation
	p.mu.RUnlock()

	if n, ok := p.notations.Get(name); ok && !n.IsDisabled(c) {
		return n
	}
	for _, n := range p.notations.All() {
		if !n.IsDisabled(c) {
			return n
		}
	}
	return notation.RGB
}

// SetNotation selects a notation by name.
func (p *pickerImpl) SetNotation(name string) error {
	if _, ok := p.notations.Get(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNotation, name)
	}
	p.mu.Lock()
	p.notation = name
	p.mu.Unlock()
	p.state.bump()
	return nil
}

// CycleNotation moves to the next notation in order that can show the
// current color.
func (p *pickerImpl) CycleNotation() {
	c := p.state.current()
	all := p.notations.All()
	if len(all) == 0 {
		return
	}
	current := p.notationFor(c).Name
	start := 0
	for i, n := range all {
		if n.Name == current {
			start = i
			break
		}
	}
	for step := 1; step <= len(all); step++ {
		n := all[(start+step)%len(all)]
		if !n.IsDisabled(c) {
			p.mu.Lock()
			p.notation = n.Name
			p.mu.Unlock()
			break
		}
	}
	p.state.bump()
}

// TabNames returns the shown tabs in display order.
func (p *pickerImpl) TabNames() []string {
	return p.tabs.Names()
}

// History returns the accepted colors, newest first.
func (p *pickerImpl) History() []colors.Color {
	return p.history.Get()
}

// Palette returns the palette swatches.
func (p *pickerImpl) Palette() []colors.Color {
	return append([]colors.Color(nil), p.palette...)
}

// MaterialPalette returns the Material Design swatch groups.
func (p *pickerImpl) MaterialPalette() []MaterialGroup {
	return palette.Material()
}

// OK accepts the selected color.
func (p *pickerImpl) OK() (string, error) {
	p.answered.Store(true)
	c := p.state.current()
	value := p.notationFor(c).Format(c)

	start := time.Now()
	err := p.history.Add(c)
	p.metrics.RecordHistoryLatency(time.Since(start))
	p.state.bump()
	if err != nil {
		p.metrics.IncrementHistoryErrors()
		ce := NewCategorizedError(err, ErrorCategoryHistory, SeverityWarning)
		p.notifyError(ce)
		err = ce
	} else {
		p.metrics.IncrementHistoryWrites()
	}

	p.logger().Info("color accepted", "value", value)
	p.emitEvent(EventAccepted, value)
	p.closeWindow(window.Accept)
	return value, err
}

// Cancel restores the color the session started with.
func (p *pickerImpl) Cancel() {
	p.answered.Store(true)
	p.mu.RLock()
	initial := p.initial
	p.mu.RUnlock()

	p.state.set(initial, false)
	p.logger().Info("dialog cancelled", "restored", initial.RGBString())
	p.emitEvent(EventCancelled, initial.RGBString())
	p.closeWindow(window.Cancel)
}

func (p *pickerImpl) closeWindow(fn func(window)) {
	p.mu.RLock()
	win := p.window
	p.mu.RUnlock()
	if win != nil {
		fn(win)
	}
}

// Clear empties the history.
func (p *pickerImpl) Clear() error {
	err := p.history.Reset()
	p.state.bump()
	if err != nil {
		p.metrics.IncrementHistoryErrors()
		ce := NewCategorizedError(err, ErrorCategoryHistory, SeverityWarning)
		p.notifyError(ce)
		return ce
	}
	return nil
}

// getError retrieves the last error.
func (p *pickerImpl) getError() error {
	if v := p.lastError.Load(); v != nil {
		if err, ok := v.(error); ok {
			return err
		}
	}
	return nil
}

// recordError stores and tracks an error without invoking handlers.
func (p *pickerImpl) recordError(err error) {
	p.lastError.Store(err)
	p.metrics.IncrementErrors()
	p.tracker.Record(categorize(err))
}

// notifyError stores an error and invokes the error handler if registered.
func (p *pickerImpl) notifyError(err error) {
	p.recordError(err)
	p.logger().Error("picker error", "error", err)

	p.mu.RLock()
	handler := p.errorHandler
	p.mu.RUnlock()

	if handler != nil {
		go func() {
			defer func() {
				// Recover from panics in error handler to prevent crashing
				if r := recover(); r != nil {
					p.logger().Error("error handler panicked", "panic", r, "original_error", err)
				}
			}()
			handler(err)
		}()
	}

	p.emitEvent(EventError, err.Error())
}

// emitEvent sends an event to the event handler if configured.
func (p *pickerImpl) emitEvent(eventType EventType, message string) {
	p.metrics.IncrementEventsEmitted()

	p.mu.RLock()
	handler := p.eventHandler
	p.mu.RUnlock()

	if handler != nil {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					p.mu.RLock()
					errHandler := p.errorHandler
					p.mu.RUnlock()
					if errHandler != nil {
						if err, ok := r.(error); ok {
							errHandler(fmt.Errorf("panic in event handler: %w", err))
						} else {
							errHandler(fmt.Errorf("panic in event handler: %v", r))
						}
					}
				}
			}()

			handler(Event{
				Type:      eventType,
				Timestamp: time.Now(),
				Message:   message,
			})
		}()
	}
}

// Health returns a health check result for the picker.
func (p *pickerImpl) Health() HealthCheck {
	now := time.Now()
	components := make(map[string]ComponentHealth)
	running := p.running.Load()

	var uptime time.Duration
	p.mu.RLock()
	if running && !p.startTime.IsZero() {
		uptime = now.Sub(p.startTime)
	}
	p.mu.RUnlock()

	if running {
		components["instance"] = ComponentHealth{
			Status:      HealthOK,
			Message:     "Picker is running",
			LastUpdated: now,
		}
	} else {
		components["instance"] = ComponentHealth{
			Status:      HealthUnhealthy,
			Message:     "Picker is not running",
			LastUpdated: now,
		}
	}

	switch state := p.breaker.State(); state {
	case CircuitClosed:
		components["history"] = ComponentHealth{
			Status:      HealthOK,
			Message:     fmt.Sprintf("%d colors remembered", p.history.Len()),
			LastUpdated: now,
		}
	default:
		components["history"] = ComponentHealth{
			Status:      HealthDegraded,
			Message:     "History persistence circuit " + state.String(),
			LastUpdated: now,
		}
	}

	lastErr := p.getError()
	if lastErr != nil {
		components["errors"] = ComponentHealth{
			Status:      HealthDegraded,
			Message:     lastErr.Error(),
			LastUpdated: now,
		}
	} else {
		components["errors"] = ComponentHealth{
			Status:      HealthOK,
			Message:     "No recent errors",
			LastUpdated: now,
		}
	}

	overallStatus := HealthOK
	var message string
	switch {
	case !running:
		overallStatus = HealthUnhealthy
		message = "Picker is not running"
	case lastErr != nil || components["history"].Status != HealthOK:
		overallStatus = HealthDegraded
		message = "Running with recent errors"
	default:
		message = "All components healthy"
	}

	return HealthCheck{
		Status:     overallStatus,
		Timestamp:  now,
		Uptime:     uptime,
		Components: components,
		Message:    message,
	}
}

// Metrics returns the metrics collector for this picker.
func (p *pickerImpl) Metrics() *Metrics {
	return p.metrics
}

