package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/agiangrant/formkit/forms"
	"github.com/agiangrant/formkit/platform/headless"
)

// Snapshot implements the 'formkit snapshot' command
// It renders the demo form once on the headless host and writes a PNG.
func Snapshot(args []string) error {
	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	out := fs.String("out", "", "Output PNG path (required)")
	scale := fs.Float64("scale", 1, "Device pixels per logical unit")
	themeName := fs.String("theme", "light", "Theme: light or dark")
	focus := fs.Bool("focus", false, "Always draw focus cues")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return errors.New("snapshot: -out is required")
	}
	if *scale <= 0 {
		return fmt.Errorf("snapshot: scale %v must be positive", *scale)
	}
	theme, ok := forms.ThemeByName(*themeName)
	if !ok {
		return fmt.Errorf("snapshot: unknown theme %q", *themeName)
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", *out, err)
	}
	defer f.Close()

	if err := renderDemo(f, *scale, theme, *focus); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", *out)
	return f.Close()
}

// renderDemo runs the demo form until its first frame and encodes it.
func renderDemo(w io.Writer, scale float64, theme *forms.Theme, focus bool) error {
	p := headless.New(headless.WithScale(scale), headless.WithTheme(theme))
	app := forms.New(p,
		forms.WithLogger(slog.New(slog.DiscardHandler)),
		forms.WithTheme(theme),
		forms.WithFocusCues(focus),
	)
	d := buildDemo(app, "formkit", forms.Size{Width: 260, Height: 264})

	requested := false
	app.Dispatcher().OnIdle(func() {
		win := p.MainWindow()
		if !requested && win != nil && win.Frames() > 0 {
			requested = true
			win.RequestClose()
		}
	})
	if err := app.RunForm(d.Form); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return p.MainWindow().Snapshot(w)
}
