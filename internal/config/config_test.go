package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/midgard-roam/internal/engine/terrain/roam"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Terrain.Source != SourceNoise {
		t.Errorf("expected noise source, got %s", cfg.Terrain.Source)
	}
	if cfg.Terrain.Size != 513 {
		t.Errorf("expected 513 samples, got %d", cfg.Terrain.Size)
	}
	if (cfg.Terrain.Size-1)%cfg.Landscape.PatchSize != 0 {
		t.Errorf("default grid %d does not divide into %d patches", cfg.Terrain.Size, cfg.Landscape.PatchSize)
	}

	if cfg.Landscape.PatchSize != roam.DefaultPatchSize {
		t.Errorf("expected patch size %d, got %d", roam.DefaultPatchSize, cfg.Landscape.PatchSize)
	}
	if cfg.Landscape.Accuracy != 0.1 {
		t.Errorf("expected accuracy 0.1, got %f", cfg.Landscape.Accuracy)
	}
	if got, want := cfg.Landscape.AccuracyRadians(), roam.DefaultAccuracy; got != want {
		t.Errorf("expected %v radians, got %v", want, got)
	}
	if cfg.Landscape.Queue != roam.DefaultQueueOptions() {
		t.Errorf("unexpected queue options %+v", cfg.Landscape.Queue)
	}

	if cfg.Flight.Frames != 120 {
		t.Errorf("expected 120 frames, got %d", cfg.Flight.Frames)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()

	yamlContent := `
terrain:
  source: tiles
  tile_size: 32
  noise:
    seed: 42
    octaves: 4
landscape:
  patch_size: 32
  accuracy: 0.25
  max_operations: 500
  queue:
    buckets: 1024
    top: 0.5
camera:
  altitude: 120
  fov: 75
flight:
  frames: 10
  speed: 2.5
logging:
  level: debug
  log_file: roam.log
`
	tomlContent := `
[terrain]
source = "tiles"
tile_size = 32

[terrain.noise]
seed = 42
octaves = 4

[landscape]
patch_size = 32
accuracy = 0.25
max_operations = 500

[landscape.queue]
buckets = 1024
top = 0.5

[camera]
altitude = 120.0
fov = 75.0

[flight]
frames = 10
speed = 2.5

[logging]
level = "debug"
log_file = "roam.log"
`

	tests := []struct {
		file    string
		content string
	}{
		{"roam.yaml", yamlContent},
		{"roam.toml", tomlContent},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			cfg := Default()
			if err := loadFromFile(cfg, path); err != nil {
				t.Fatalf("failed to load config: %v", err)
			}

			if cfg.Terrain.Source != SourceTiles || cfg.Terrain.TileSize != 32 {
				t.Errorf("terrain not loaded: %+v", cfg.Terrain)
			}
			if cfg.Terrain.Noise.Seed != 42 || cfg.Terrain.Noise.Octaves != 4 {
				t.Errorf("noise not loaded: %+v", cfg.Terrain.Noise)
			}
			if cfg.Terrain.Noise.Persistence != 0.5 {
				t.Errorf("unset noise fields should keep defaults, got %+v", cfg.Terrain.Noise)
			}
			if cfg.Landscape.PatchSize != 32 || cfg.Landscape.Accuracy != 0.25 || cfg.Landscape.MaxOperations != 500 {
				t.Errorf("landscape not loaded: %+v", cfg.Landscape)
			}
			if cfg.Landscape.Queue.Buckets != 1024 || cfg.Landscape.Queue.Top != 0.5 {
				t.Errorf("queue not loaded: %+v", cfg.Landscape.Queue)
			}
			if cfg.Camera.Altitude != 120 || cfg.Camera.FovY != 75 {
				t.Errorf("camera not loaded: %+v", cfg.Camera)
			}
			if cfg.Camera.Near != 1 {
				t.Errorf("unset camera fields should keep defaults, got %+v", cfg.Camera)
			}
			if cfg.Flight.Frames != 10 || cfg.Flight.Speed != 2.5 {
				t.Errorf("flight not loaded: %+v", cfg.Flight)
			}
			if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "roam.log" {
				t.Errorf("logging not loaded: %+v", cfg.Logging)
			}
		})
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	files := map[string]string{
		"invalid.yaml": "landscape:\n  patch_size: not a number\n  invalid syntax here\n",
		"invalid.toml": "[landscape\npatch_size = 'x'\n",
	}

	for name, content := range files {
		path := filepath.Join(tmpDir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		if err := loadFromFile(Default(), path); err == nil {
			t.Errorf("expected error loading %s, got nil", name)
		}
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	err := loadFromFile(Default(), "/nonexistent/path/roam.yaml")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"tiles", func(c *Config) { c.Terrain.Source = SourceTiles }, true},
		{"heightmap without path", func(c *Config) { c.Terrain.Source = SourceHeightmap }, false},
		{"heightmap with path", func(c *Config) {
			c.Terrain.Source = SourceHeightmap
			c.Terrain.Heightmap = "h.png"
		}, true},
		{"unknown source", func(c *Config) { c.Terrain.Source = "voxels" }, false},
		{"zero accuracy", func(c *Config) { c.Landscape.Accuracy = 0 }, false},
		{"negative frames", func(c *Config) { c.Flight.Frames = -2 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "roam.toml"), []byte("[flight]\nframes = 3\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); filepath.Base(path) != "roam.toml" {
		t.Errorf("expected roam.toml, got %q", path)
	}

	// YAML wins when both exist
	if err := os.WriteFile(filepath.Join(tmpDir, "roam.yaml"), []byte("flight:\n  frames: 4\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); filepath.Base(path) != "roam.yaml" {
		t.Errorf("expected roam.yaml, got %q", path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "accuracy flag",
			setup: func() { *flagAccuracy = 0.5 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Landscape.Accuracy != 0.5 {
					t.Errorf("expected accuracy 0.5, got %f", cfg.Landscape.Accuracy)
				}
			},
			teardown: func() { *flagAccuracy = 0 },
		},
		{
			name:  "patch size flag",
			setup: func() { *flagPatchSize = 16 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Landscape.PatchSize != 16 {
					t.Errorf("expected patch size 16, got %d", cfg.Landscape.PatchSize)
				}
			},
			teardown: func() { *flagPatchSize = 0 },
		},
		{
			name:  "heightmap flag",
			setup: func() { *flagHeightmap = "island.png" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.Source != SourceHeightmap || cfg.Terrain.Heightmap != "island.png" {
					t.Errorf("expected heightmap source, got %+v", cfg.Terrain)
				}
			},
			teardown: func() { *flagHeightmap = "" },
		},
		{
			name:  "zero frames",
			setup: func() { *flagFrames = 0 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Flight.Frames != 0 {
					t.Errorf("expected 0 frames, got %d", cfg.Flight.Frames)
				}
			},
			teardown: func() { *flagFrames = -1 },
		},
		{
			name:  "unset flags keep defaults",
			setup: func() {},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Flight.Frames != 120 || cfg.Landscape.PatchSize != roam.DefaultPatchSize {
					t.Errorf("defaults overridden: %+v", cfg)
				}
			},
			teardown: func() {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "roam.yaml")
	yamlContent := `
landscape:
  patch_size: 32
  accuracy: 0.3
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagPatchSize = 128
	defer func() {
		*flagConfig = ""
		*flagPatchSize = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Flag beats file
	if cfg.Landscape.PatchSize != 128 {
		t.Errorf("expected patch size 128 from flag, got %d", cfg.Landscape.PatchSize)
	}
	// File beats default
	if cfg.Landscape.Accuracy != 0.3 {
		t.Errorf("expected accuracy 0.3 from file, got %f", cfg.Landscape.Accuracy)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "roam.yaml")
	if err := os.WriteFile(configPath, []byte("terrain:\n  source: heightmap\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Landscape.PatchSize = 16
	cfg.Terrain.Noise.Seed = 99

	for _, name := range []string{"out/roam.yaml", "out/roam.toml"} {
		path := filepath.Join(dir, name)
		if err := cfg.SaveTo(path); err != nil {
			t.Fatalf("SaveTo(%s): %v", name, err)
		}

		loaded := Default()
		if err := loadFromFile(loaded, path); err != nil {
			t.Fatalf("reload %s: %v", name, err)
		}
		if loaded.Landscape.PatchSize != 16 || loaded.Terrain.Noise.Seed != 99 {
			t.Errorf("%s: values lost on save: %+v", name, loaded.Landscape)
		}
	}
}

func TestOutputPath(t *testing.T) {
	if OutputPath() != "" {
		t.Errorf("expected no output path, got %q", OutputPath())
	}

	*flagOutput = "mesh.obj"
	defer func() { *flagOutput = "" }()

	if OutputPath() != "mesh.obj" {
		t.Errorf("expected mesh.obj, got %q", OutputPath())
	}
}
