// Package config loads formkit settings from defaults, a TOML file, and
// FORMKIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/agiangrant/formkit/forms"
)

// Hosts accepted by the host key.
const (
	HostNative   = "native"
	HostTerm     = "term"
	HostHeadless = "headless"
)

// Config holds application configuration.
type Config struct {
	Host    string        `toml:"host" mapstructure:"host"`
	Window  WindowConfig  `toml:"window" mapstructure:"window"`
	UI      UIConfig      `toml:"ui" mapstructure:"ui"`
	Logging LoggingConfig `toml:"logging" mapstructure:"logging"`
	Native  NativeConfig  `toml:"native" mapstructure:"native"`
}

// WindowConfig sizes the main form in logical units.
type WindowConfig struct {
	Title  string `toml:"title" mapstructure:"title"`
	Width  int    `toml:"width" mapstructure:"width"`
	Height int    `toml:"height" mapstructure:"height"`
}

type UIConfig struct {
	// ScaleFactor overrides the platform scale; 0 uses the platform's.
	ScaleFactor   float64 `toml:"scale_factor" mapstructure:"scale_factor"`
	ShowFocusCues bool    `toml:"show_focus_cues" mapstructure:"show_focus_cues"`
	Theme         string  `toml:"theme" mapstructure:"theme"`
}

type LoggingConfig struct {
	// File receives JSON logs; empty logs text to stderr.
	File  string `toml:"file" mapstructure:"file"`
	Level string `toml:"level" mapstructure:"level"`
	// Trace is a JSON lines file of input and popup events.
	Trace string `toml:"trace" mapstructure:"trace"`
}

type NativeConfig struct {
	LibraryPath string `toml:"library_path" mapstructure:"library_path"`
}

// DefaultHost picks the native host on desktop systems and headless
// elsewhere.
func DefaultHost() string {
	switch runtime.GOOS {
	case "darwin", "linux":
		return HostNative
	}
	return HostHeadless
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Host: DefaultHost(),
		Window: WindowConfig{
			Title:  "formkit",
			Width:  640,
			Height: 480,
		},
		UI: UIConfig{
			Theme: "light",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/formkit/config.toml, falling back to
// ~/.config.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "formkit", "config.toml")
}

// Load reads configuration from path, or FORMKIT_CONFIG, or DefaultPath.
// A missing file is only an error when path was given explicitly. Env var
// overrides use prefix FORMKIT_.
func Load(path string) (Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("host", d.Host)
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("ui.scale_factor", d.UI.ScaleFactor)
	v.SetDefault("ui.show_focus_cues", d.UI.ShowFocusCues)
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.trace", d.Logging.Trace)
	v.SetDefault("native.library_path", d.Native.LibraryPath)

	v.SetConfigType("toml")

	explicit := path != ""
	if !explicit {
		path = os.Getenv("FORMKIT_CONFIG")
		explicit = path != ""
	}
	if path == "" {
		path = DefaultPath()
	}

	v.SetEnvPrefix("FORMKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Host {
	case HostNative, HostTerm, HostHeadless:
	default:
		return fmt.Errorf("config: unknown host %q (want native, term or headless)", c.Host)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.UI.ScaleFactor < 0 {
		return fmt.Errorf("config: ui.scale_factor %v must not be negative", c.UI.ScaleFactor)
	}
	if _, ok := forms.ThemeByName(c.UI.Theme); !ok {
		return fmt.Errorf("config: unknown theme %q", c.UI.Theme)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Logging.Level)
	}
	return nil
}

// WriteDefault writes Default to path, creating its directory. An existing
// file is left alone.
func WriteDefault(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	data, err := toml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
