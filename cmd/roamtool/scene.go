package main

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-roam/internal/config"
	"github.com/Faultbox/midgard-roam/internal/engine/camera"
	"github.com/Faultbox/midgard-roam/internal/engine/terrain"
	"github.com/Faultbox/midgard-roam/internal/engine/terrain/roam"
	"github.com/Faultbox/midgard-roam/internal/logger"
	"github.com/Faultbox/midgard-roam/pkg/math"
)

const degrees = math32.Pi / 180

// scene bundles everything a command needs to refine terrain.
type scene struct {
	data      terrain.TerrainData
	ground    func(x, z float32) float32
	camera    *camera.Camera
	frustum   *camera.Frustum
	landscape *roam.Landscape
	altitude  float32
}

// newScene builds the terrain source, camera and landscape from config.
func newScene(cfg *config.Config) (*scene, error) {
	data, ground, err := newTerrain(cfg.Terrain)
	if err != nil {
		return nil, err
	}

	cc := cfg.Camera
	cam := camera.New()
	cam.FovY = cc.FovY * degrees
	cam.Aspect = cc.Aspect
	cam.Near = cc.Near
	cam.Far = cc.Far
	cam.Yaw = cc.Yaw * degrees
	cam.Pitch = cc.Pitch * degrees
	cam.MoveTo(math.Vec3{X: cc.X, Y: ground(cc.X, cc.Z) + cc.Altitude, Z: cc.Z})
	frustum := camera.NewFrustum(cam)

	lc := cfg.Landscape
	opts := []roam.Option{
		roam.WithAccuracy(lc.AccuracyRadians()),
		roam.WithQueueOptions(lc.Queue),
		roam.WithTileWindow(lc.TileWindow),
		roam.WithMaxOperations(lc.MaxOperations),
		roam.WithPoolSize(lc.PoolSize),
		roam.WithLogger(logger.Named("roam")),
	}
	if cfg.Terrain.Source != config.SourceTiles {
		opts = append(opts, roam.WithPatchSize(lc.PatchSize))
	}
	land, err := roam.NewLandscape(frustum, data, opts...)
	if err != nil {
		return nil, fmt.Errorf("create landscape: %w", err)
	}

	logger.Info("scene ready",
		zap.String("source", cfg.Terrain.Source),
		zap.Int("patchSize", land.PatchSize()),
		zap.Float32("accuracyDeg", lc.Accuracy))

	return &scene{
		data:      data,
		ground:    ground,
		camera:    cam,
		frustum:   frustum,
		landscape: land,
		altitude:  cc.Altitude,
	}, nil
}

// newTerrain creates the configured terrain source and a ground height
// lookup for keeping the camera above it.
func newTerrain(tc config.TerrainConfig) (terrain.TerrainData, func(x, z float32) float32, error) {
	fractal := terrain.NewFractal(tc.Noise)
	amp := 2 * tc.Noise.Amplitude

	switch tc.Source {
	case config.SourceHeightmap:
		hm, err := terrain.LoadHeightFile(tc.Heightmap, tc.XStep, tc.YStep, tc.HeightScale)
		if err != nil {
			return nil, nil, err
		}
		if tc.Colors {
			lo, hi := hm.Extent()
			hm.SetColorRamp(terrain.DefaultColorRamp(lo, hi))
		}
		return hm, hm.HeightAt, nil

	case config.SourceTiles:
		tiles, err := terrain.NewNoiseTiles(fractal.Height, tc.TileSize, tc.XStep, tc.YStep)
		if err != nil {
			return nil, nil, err
		}
		if tc.Colors {
			tiles.SetColorRamp(terrain.DefaultColorRamp(-amp, amp))
		}
		return tiles, fractal.Height, nil

	default:
		hm, err := terrain.NewHeightmapFunc(tc.Size, tc.Size, tc.XStep, tc.YStep, fractal.Height)
		if err != nil {
			return nil, nil, err
		}
		if tc.Colors {
			hm.SetColorRamp(terrain.DefaultColorRamp(-amp, amp))
		}
		return hm, hm.HeightAt, nil
	}
}

// advance moves the camera one frame along its heading, holding altitude
// above the ground, and turns it by turn radians.
func (s *scene) advance(speed, turn float32) {
	cam := s.camera
	cam.Turn(turn, 0)
	cam.Advance(speed, 0)
	pos := cam.Position()
	pos.Y = s.ground(pos.X, pos.Z) + s.altitude
	cam.MoveTo(pos)
}

// refine runs one landscape frame for the current camera.
func (s *scene) refine() roam.Stats {
	s.landscape.SetView(s.camera.Position(), s.camera.Direction())
	return s.landscape.Stats()
}
