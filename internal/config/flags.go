package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagAccuracy  = flag.Float64("accuracy", 0, "Split threshold in degrees")
	flagPatchSize = flag.Int("patch-size", 0, "Patch size in grid cells (power of two)")
	flagHeightmap = flag.String("heightmap", "", "Heightmap image; selects the heightmap source")
	flagFrames    = flag.Int("frames", -1, "Number of frames to simulate")
	flagOutput    = flag.String("o", "", "Output file for export (- for stdout)")
)

// ParseFlags parses command-line flags. Call this early in main() with the
// arguments that follow the subcommand.
func ParseFlags(args []string) error {
	return flag.CommandLine.Parse(args)
}

// Args returns the arguments left after the flags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// OutputPath returns the export destination if provided via -o.
func OutputPath() string {
	return *flagOutput
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAccuracy > 0 {
		cfg.Landscape.Accuracy = float32(*flagAccuracy)
	}
	if *flagPatchSize > 0 {
		cfg.Landscape.PatchSize = *flagPatchSize
	}
	if *flagHeightmap != "" {
		cfg.Terrain.Source = SourceHeightmap
		cfg.Terrain.Heightmap = *flagHeightmap
	}
	if *flagFrames >= 0 {
		cfg.Flight.Frames = *flagFrames
	}
}
