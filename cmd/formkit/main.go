package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/agiangrant/formkit/cmd/formkit/commands"
)

const version = "0.1.0"

// The native host must run on the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "demo":
		err = commands.Demo(args)
	case "snapshot":
		err = commands.Snapshot(args)
	case "config":
		err = commands.Config(args)
	case "version", "-v", "--version":
		fmt.Printf("formkit version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`formkit - desktop forms toolkit

Usage: formkit <command> [options]

Commands:
  demo            Run the demo form on the configured host
  snapshot        Render the demo form headless to a PNG
  config init     Write the default config.toml
  config show     Print the effective configuration
  version         Print version information
  help            Show this help message

Examples:
  formkit demo                          Run on the native host
  formkit demo -host term               Run in the terminal
  formkit snapshot -out demo.png        Render at scale 1
  formkit snapshot -out hi.png -scale 2 -theme dark
  formkit config init                   Create ~/.config/formkit/config.toml

Environment:
  FORMKIT_CONFIG      Config file path
  FORMKIT_LIB_PATH    Native host library path
  FORMKIT_*           Override any config key, e.g. FORMKIT_WINDOW_WIDTH=800`)
}
