// Package main provides the colorpicker-go command: a color picker dialog
// configured with Lua that prints the chosen color on stdout.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-colorpicker/internal/profiling"
	"github.com/opd-ai/go-colorpicker/pkg/colorpicker"
)

// Version is the current version of colorpicker-go.
// This default value can be overridden at build time using:
//
//	go build -ldflags "-X main.Version=x.y.z"
var Version = "0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("colorpicker-go", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("c", "", "Path to Lua configuration file (built-in defaults when empty)")
	initial := fs.String("color", "", "Initial color, e.g. \"#00ff00\" or \"hsl(120, 100%, 50%)\"")
	exportDir := fs.String("export", "", "Render every surface to PNG files in this directory and exit")
	version := fs.Bool("v", false, "Print version and exit")
	watch := fs.Bool("watch", false, "Reload the configuration when the file changes")
	logLevel := fs.String("log-level", "warn", "Log level: debug, info, warn or error")
	logJSON := fs.Bool("log-json", false, "Write logs as JSON")
	cpuProfile := fs.String("cpuprofile", "", "Write CPU profile to file")
	memProfile := fs.String("memprofile", "", "Write memory profile to file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *version {
		fmt.Fprintf(stdout, "colorpicker-go version %s\n", Version)
		return 0
	}

	profConfig := profiling.Config{
		CPUProfilePath: *cpuProfile,
		MemProfilePath: *memProfile,
	}
	if profConfig.Enabled() {
		profiler := profiling.New(profConfig)
		if err := profiler.Start(); err != nil {
			fmt.Fprintf(stderr, "Failed to start profiling: %v\n", err)
			return 1
		}
		defer func() {
			if err := profiler.Stop(); err != nil {
				fmt.Fprintf(stderr, "Warning: failed to stop profiling: %v\n", err)
			}
		}()
	}

	opts := &colorpicker.Options{
		Color:       *initial,
		Headless:    *exportDir != "",
		Logger:      colorpicker.NewLogger(stderr, colorpicker.ParseLevel(*logLevel), *logJSON),
		WatchConfig: *watch && *configPath != "",
	}

	p, err := newPicker(*configPath, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating color picker: %v\n", err)
		return 1
	}

	if *exportDir != "" {
		return runExport(p, *exportDir, stdout, stderr)
	}

	p.SetErrorHandler(func(err error) {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	})
	p.SetEventHandler(func(e colorpicker.Event) {
		fmt.Fprintf(stderr, "[%s] %s: %s\n", e.Timestamp.Format("15:04:05"), e.Type, e.Message)
	})

	if err := p.Start(); err != nil {
		fmt.Fprintf(stderr, "Failed to start: %v\n", err)
		return 1
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-p.Done():
			// Closing the window accepts the color.
			fmt.Fprintln(stdout, p.Value())
			return 0
		case sig := <-sigCh:
			if sig == syscall.SIGHUP {
				fmt.Fprintln(stderr, "Received SIGHUP, reloading configuration...")
				if err := p.ReloadConfig(); err != nil {
					fmt.Fprintf(stderr, "Reload failed: %v\n", err)
				}
				continue
			}
			fmt.Fprintln(stderr, "Shutting down...")
			if err := p.Stop(); err != nil {
				fmt.Fprintf(stderr, "Stop error: %v\n", err)
			}
			return 0
		}
	}
}

func newPicker(configPath string, opts *colorpicker.Options) (colorpicker.Picker, error) {
	if configPath == "" {
		return colorpicker.NewDefault(opts)
	}
	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", configPath)
		}
		return nil, fmt.Errorf("access configuration file %s: %w", configPath, err)
	}
	return colorpicker.New(configPath, opts)
}

// runExport writes the surface PNGs headless, lists them on stderr and
// prints the current value.
func runExport(p colorpicker.Picker, dir string, stdout, stderr io.Writer) int {
	written, err := p.Export(dir)
	if err != nil {
		fmt.Fprintf(stderr, "Export failed: %v\n", err)
		return 1
	}
	for _, path := range written {
		fmt.Fprintf(stderr, "wrote %s\n", path)
	}
	fmt.Fprintln(stdout, p.Value())
	return 0
}
