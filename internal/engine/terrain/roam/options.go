package roam

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-roam/internal/engine/terrain"
)

// Landscape defaults.
const (
	DefaultPatchSize  = 64
	DefaultTileWindow = 8
)

// DefaultAccuracy is the split threshold: 0.1 degrees of screen-space
// error, in radians.
var DefaultAccuracy = float32(0.1) * math32.Pi / 180

type options struct {
	patchSize     int
	accuracy      float32
	appearanceGen terrain.AppearanceGenerator
	queue         QueueOptions
	tileWindow    int
	maxOperations int
	poolSize      int
	log           *zap.Logger
}

func defaultOptions() options {
	return options{
		accuracy:   DefaultAccuracy,
		queue:      DefaultQueueOptions(),
		tileWindow: DefaultTileWindow,
	}
}

// Option configures a Landscape.
type Option func(*options)

// WithPatchSize sets the patch side length in grid cells for static
// terrain. Tiled terrain always uses its tile size.
func WithPatchSize(size int) Option {
	return func(o *options) { o.patchSize = size }
}

// WithAccuracy sets the split threshold in radians.
func WithAccuracy(radians float32) Option {
	return func(o *options) {
		if radians > 0 {
			o.accuracy = radians
		}
	}
}

// WithAppearanceGenerator sets the source of per-patch appearances.
func WithAppearanceGenerator(g terrain.AppearanceGenerator) Option {
	return func(o *options) { o.appearanceGen = g }
}

// WithQueueOptions tunes the priority queue buckets.
func WithQueueOptions(q QueueOptions) Option {
	return func(o *options) { o.queue = q.normalized() }
}

// WithTileWindow sets the side of the square tile window kept around the
// viewer for tiled terrain.
func WithTileWindow(tiles int) Option {
	return func(o *options) {
		if tiles > 0 {
			o.tileWindow = tiles
		}
	}
}

// WithMaxOperations bounds the number of splits and merges per frame.
// Zero means refine until the mesh is stable.
func WithMaxOperations(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxOperations = n
		}
	}
}

// WithPoolSize sets how many idle nodes the landscape keeps for reuse.
func WithPoolSize(n int) Option {
	return func(o *options) { o.poolSize = n }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}
