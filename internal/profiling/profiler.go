// Package profiling records CPU and heap profiles of a picker session with
// runtime/pprof. The CLI starts a Profiler before the window opens and
// stops it once the dialog is answered.
package profiling

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"
)

// Errors returned by Profiler.
var (
	ErrRunning    = errors.New("profiler already running")
	ErrNotRunning = errors.New("profiler not running")
)

// Config names the profile outputs. An empty path disables that profile.
type Config struct {
	CPUProfilePath string
	MemProfilePath string
}

// Enabled reports whether any profile is configured.
func (c Config) Enabled() bool {
	return c.CPUProfilePath != "" || c.MemProfilePath != ""
}

// Profiler covers one session: the CPU profile runs from Start to Stop and
// the heap profile is written at Stop. Safe for concurrent use.
type Profiler struct {
	mu      sync.Mutex
	cfg     Config
	cpuFile *os.File
	running bool
}

// New returns a stopped profiler.
func New(cfg Config) *Profiler {
	return &Profiler{cfg: cfg}
}

// Start begins the session and the CPU profile when one is configured.
func (p *Profiler) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return ErrRunning
	}
	if p.cfg.CPUProfilePath != "" {
		f, err := os.Create(p.cfg.CPUProfilePath)
		if err != nil {
			return fmt.Errorf("create cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return fmt.Errorf("start cpu profile: %w", err)
		}
		p.cpuFile = f
	}
	p.running = true
	return nil
}

// Stop ends the session, flushing the CPU profile and writing the heap
// profile. Every failure is reported.
func (p *Profiler) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return ErrNotRunning
	}
	p.running = false

	var errs []error
	if p.cpuFile != nil {
		pprof.StopCPUProfile()
		if err := p.cpuFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close cpu profile: %w", err))
		}
		p.cpuFile = nil
	}
	if p.cfg.MemProfilePath != "" {
		if err := WriteHeapProfile(p.cfg.MemProfilePath); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// IsRunning reports whether a session is active.
func (p *Profiler) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// WriteHeapProfile collects garbage and writes a heap profile to path.
func WriteHeapProfile(path string) error {
	runtime.GC()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create heap profile: %w", err)
	}
	if err := pprof.WriteHeapProfile(f); err != nil {
		f.Close()
		return fmt.Errorf("write heap profile: %w", err)
	}
	return f.Close()
}
