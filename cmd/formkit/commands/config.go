package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/agiangrant/formkit/internal/config"
)

// Config implements the 'formkit config' command
//
//	formkit config init [path]   write the default config
//	formkit config show [-config path]
func Config(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("config: expected init or show")
	}
	switch args[0] {
	case "init":
		path := config.DefaultPath()
		if len(args) > 1 {
			path = args[1]
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("✓ Created %s\n", path)
		return nil
	case "show":
		fs := flag.NewFlagSet("config show", flag.ContinueOnError)
		cfgPath := fs.String("config", "", "Path to config.toml")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			return err
		}
		data, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	}
	return fmt.Errorf("config: unknown subcommand %q", args[0])
}
