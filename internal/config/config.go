// Package config handles loading and saving roamtool settings.
package config

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-roam/internal/engine/terrain"
	"github.com/Faultbox/midgard-roam/internal/engine/terrain/roam"
)

// Terrain source kinds.
const (
	SourceNoise     = "noise"     // Procedural static grid
	SourceHeightmap = "heightmap" // Grayscale image or .gat altitude table
	SourceTiles     = "tiles"     // Procedural unbounded tiles
)

// Config holds all settings.
type Config struct {
	Terrain   TerrainConfig   `yaml:"terrain" toml:"terrain"`
	Landscape LandscapeConfig `yaml:"landscape" toml:"landscape"`
	Camera    CameraConfig    `yaml:"camera" toml:"camera"`
	Flight    FlightConfig    `yaml:"flight" toml:"flight"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
}

// TerrainConfig selects and shapes the terrain source.
type TerrainConfig struct {
	Source      string              `yaml:"source" toml:"source"`
	Heightmap   string              `yaml:"heightmap" toml:"heightmap"`       // Image or .gat path for the heightmap source
	HeightScale float32             `yaml:"height_scale" toml:"height_scale"` // Image luminance to elevation
	Size        int                 `yaml:"size" toml:"size"`                 // Samples per side of the noise grid
	XStep       float32             `yaml:"x_step" toml:"x_step"`
	YStep       float32             `yaml:"y_step" toml:"y_step"`
	TileSize    int                 `yaml:"tile_size" toml:"tile_size"`
	Colors      bool                `yaml:"colors" toml:"colors"`
	Noise       terrain.NoiseParams `yaml:"noise" toml:"noise"`
}

// LandscapeConfig tunes refinement.
type LandscapeConfig struct {
	PatchSize     int               `yaml:"patch_size" toml:"patch_size"`
	Accuracy      float32           `yaml:"accuracy" toml:"accuracy"` // Degrees
	TileWindow    int               `yaml:"tile_window" toml:"tile_window"`
	MaxOperations int               `yaml:"max_operations" toml:"max_operations"`
	PoolSize      int               `yaml:"pool_size" toml:"pool_size"`
	Queue         roam.QueueOptions `yaml:"queue" toml:"queue"`
}

// AccuracyRadians returns the split threshold in radians.
func (l LandscapeConfig) AccuracyRadians() float32 {
	return l.Accuracy * math32.Pi / 180
}

// CameraConfig holds the starting viewpoint and projection.
type CameraConfig struct {
	X        float32 `yaml:"x" toml:"x"`
	Z        float32 `yaml:"z" toml:"z"`
	Altitude float32 `yaml:"altitude" toml:"altitude"` // Height above ground
	Yaw      float32 `yaml:"yaw" toml:"yaw"`           // Degrees, 0 looks north
	Pitch    float32 `yaml:"pitch" toml:"pitch"`       // Degrees, negative looks down
	FovY     float32 `yaml:"fov" toml:"fov"`           // Degrees
	Aspect   float32 `yaml:"aspect" toml:"aspect"`
	Near     float32 `yaml:"near" toml:"near"`
	Far      float32 `yaml:"far" toml:"far"`
}

// FlightConfig describes the simulated flythrough.
type FlightConfig struct {
	Frames int     `yaml:"frames" toml:"frames"`
	Speed  float32 `yaml:"speed" toml:"speed"` // World units per frame
	Turn   float32 `yaml:"turn" toml:"turn"`   // Degrees of yaw per frame
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			Source:      SourceNoise,
			HeightScale: 200,
			Size:        513,
			XStep:       4,
			YStep:       4,
			TileSize:    64,
			Colors:      true,
			Noise:       terrain.DefaultNoiseParams(),
		},
		Landscape: LandscapeConfig{
			PatchSize:  roam.DefaultPatchSize,
			Accuracy:   0.1,
			TileWindow: roam.DefaultTileWindow,
			PoolSize:   roam.DefaultPoolSize,
			Queue:      roam.DefaultQueueOptions(),
		},
		Camera: CameraConfig{
			X:        1024,
			Z:        -256,
			Altitude: 60,
			Pitch:    -15,
			FovY:     60,
			Aspect:   16.0 / 9.0,
			Near:     1,
			Far:      4000,
		},
		Flight: FlightConfig{
			Frames: 120,
			Speed:  8,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings no landscape can be built from.
func (c *Config) Validate() error {
	switch c.Terrain.Source {
	case SourceNoise, SourceTiles:
	case SourceHeightmap:
		if c.Terrain.Heightmap == "" {
			return fmt.Errorf("%w: heightmap source needs a heightmap path", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown terrain source %q", ErrInvalid, c.Terrain.Source)
	}
	if c.Landscape.Accuracy <= 0 {
		return fmt.Errorf("%w: accuracy must be positive, got %v", ErrInvalid, c.Landscape.Accuracy)
	}
	if c.Flight.Frames < 0 {
		return fmt.Errorf("%w: negative frame count %d", ErrInvalid, c.Flight.Frames)
	}
	return nil
}
