// Package colorpicker is the public API of go-colorpicker: a color picker
// dialog with gradient surfaces, channel sliders, a palette and a history
// of picked colors.
//
// # Basic Usage
//
// Create a picker from a Lua configuration file, start it and wait for the
// window to close:
//
//	p, err := colorpicker.New("/path/to/picker.lua", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := p.Start(); err != nil {
//		log.Fatal(err)
//	}
//	<-p.Done()
//	fmt.Println(p.Value())
//
// # Configuration Sources
//
//   - Disk file: [New] loads from a filesystem path and can watch it
//   - Embedded FS: [NewFromFS] loads from an [io/fs.FS]
//   - io.Reader: [NewFromReader] for generated configurations
//   - No file: [NewDefault] starts from built-in defaults
//
// # Color State
//
// The picker owns the selected color. Every change, whatever its source,
// reaches the attached surfaces and the callbacks registered with
// [Picker.Subscribe]. Pointer input arrives through [Picker.Publish]; the
// hue cache follows it even when the sample is gray, so the spectrum keeps
// its hue while the user drags through the gray column.
//
// # Dialog Semantics
//
// [Picker.OK] returns the value in the current notation and records the
// color in the history. [Picker.Cancel] restores the color the picker was
// started with.
//
// # Headless Mode
//
// With Options.Headless no window is opened. Surfaces can still be
// attached with [Picker.AttachSurface], driven with the pointer methods and
// exported as PNG images with [Picker.Export].
package colorpicker
