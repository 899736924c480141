package commands

import (
	"flag"
	"fmt"
	"log/slog"

	"github.com/agiangrant/formkit/forms"
	"github.com/agiangrant/formkit/internal/config"
	"github.com/agiangrant/formkit/internal/logging"
	"github.com/agiangrant/formkit/platform/native"
	"github.com/agiangrant/formkit/platform/term"
)

// Demo implements the 'formkit demo' command
func Demo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "Path to config.toml")
	host := fs.String("host", "", "Host to run on: native, term or headless")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *host != "" {
		cfg.Host = *host
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, closeLog, err := logging.Configure(logging.Options{
		File:  cfg.Logging.File,
		Level: cfg.Logging.Level,
		Trace: cfg.Logging.Trace,
	})
	if err != nil {
		return err
	}
	defer closeLog()

	theme, _ := forms.ThemeByName(cfg.UI.Theme)
	platform, err := newPlatform(cfg, theme, logger)
	if err != nil {
		return err
	}

	app := forms.New(platform, appOptions(cfg, theme, logger)...)
	app.OnExit(func() { logging.Trace("app.exit", nil) })

	d := buildDemo(app, cfg.Window.Title, forms.Size{Width: cfg.Window.Width, Height: cfg.Window.Height})
	logger.Info("starting demo", "host", cfg.Host, "form", d.Form.InstanceID())
	if err := app.RunForm(d.Form); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	return nil
}

func newPlatform(cfg config.Config, theme *forms.Theme, logger *slog.Logger) (forms.Platform, error) {
	switch cfg.Host {
	case config.HostNative:
		return native.New(
			native.WithLibraryPath(cfg.Native.LibraryPath),
			native.WithTheme(theme),
			native.WithLogger(logger),
		), nil
	case config.HostTerm:
		return term.New(term.WithTheme(theme), term.WithLogger(logger)), nil
	case config.HostHeadless:
		return nil, fmt.Errorf("the headless host has no display; use 'formkit snapshot'")
	}
	return nil, fmt.Errorf("unknown host %q", cfg.Host)
}

func appOptions(cfg config.Config, theme *forms.Theme, logger *slog.Logger) []forms.Option {
	opts := []forms.Option{
		forms.WithLogger(logger),
		forms.WithTheme(theme),
		forms.WithFocusCues(cfg.UI.ShowFocusCues),
	}
	if cfg.UI.ScaleFactor > 0 {
		opts = append(opts, forms.WithScaleFactor(cfg.UI.ScaleFactor))
	}
	return opts
}
