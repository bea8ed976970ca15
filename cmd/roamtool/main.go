// roamtool drives a ROAM terrain landscape from the command line: it flies
// a camera over procedural or heightmap terrain, exports the refined mesh
// and prints the landscape layout.
package main

import (
	"fmt"
	"os"

	"github.com/Faultbox/midgard-roam/internal/config"
	"github.com/Faultbox/midgard-roam/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "fly":
		err = run(args, cmdFly)
	case "export":
		err = run(args, cmdExport)
	case "info":
		err = run(args, cmdInfo)
	case "save":
		err = run(args, cmdSave)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`roamtool - ROAM terrain level-of-detail driver

Usage:
  roamtool <command> [options]

Commands:
  fly                    Fly the camera for -frames frames, printing stats
  export [-o file.obj]   Refine one frame and write the mesh as OBJ
  info                   Show the effective config and patch layout
  save [-o file]         Write the effective config (default: user config dir)

Options:
  -config <file>         YAML or TOML config (default: roam.yaml / roam.toml)
  -debug                 Enable debug logging
  -accuracy <degrees>    Split threshold
  -patch-size <n>        Patch size in grid cells (power of two)
  -heightmap <file>      Use a grayscale image or .gat altitude table as terrain
  -frames <n>            Number of frames to fly
  -o <file>              Export destination, - for stdout (default: mesh.obj)

Examples:
  roamtool fly -frames 300
  roamtool fly -heightmap island.png -accuracy 0.05
  roamtool export -patch-size 32 -o mesh.obj
  roamtool fly -heightmap prontera.gat -frames 60
  roamtool info -config roam.toml
  roamtool save -accuracy 0.05 -o roam.toml`)
}

// run loads config, sets up logging and hands over to a command.
func run(args []string, cmd func(*config.Config, []string) error) error {
	if err := config.ParseFlags(args); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("config: %+v", cfg)
	return cmd(cfg, config.Args())
}
