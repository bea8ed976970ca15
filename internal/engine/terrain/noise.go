package terrain

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/chewxy/math32"
)

// NoiseParams holds configurable parameters for fractal terrain.
type NoiseParams struct {
	Seed        int64   `yaml:"seed" toml:"seed"`
	Octaves     int     `yaml:"octaves" toml:"octaves"`
	Frequency   float32 `yaml:"frequency" toml:"frequency"`
	Amplitude   float32 `yaml:"amplitude" toml:"amplitude"`
	Persistence float32 `yaml:"persistence" toml:"persistence"`
	Lacunarity  float32 `yaml:"lacunarity" toml:"lacunarity"`
}

// DefaultNoiseParams returns rolling hills a few hundred units across.
func DefaultNoiseParams() NoiseParams {
	return NoiseParams{
		Seed:        1,
		Octaves:     6,
		Frequency:   0.004,
		Amplitude:   120,
		Persistence: 0.5,
		Lacunarity:  2.0,
	}
}

// Fractal is a seeded multi-octave value noise height function.
type Fractal struct {
	params NoiseParams
	seed   uint32
}

// NewFractal creates a height function from params.
func NewFractal(params NoiseParams) *Fractal {
	h := fnv.New32a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(params.Seed))
	h.Write(buf[:])
	return &Fractal{params: params, seed: h.Sum32()}
}

// Height returns the elevation at world position (x, z).
func (f *Fractal) Height(x, z float32) float32 {
	p := f.params
	sum := float32(0)
	amplitude := p.Amplitude
	frequency := p.Frequency
	for i := range p.Octaves {
		sum += f.value(x*frequency, z*frequency, uint32(i)) * amplitude
		amplitude *= p.Persistence
		frequency *= p.Lacunarity
	}
	return sum
}

// value returns smoothed lattice noise in [-1, 1].
func (f *Fractal) value(x, z float32, octave uint32) float32 {
	x0 := math32.Floor(x)
	z0 := math32.Floor(z)
	ix, iz := int32(x0), int32(z0)
	tx := smoothstep(x - x0)
	tz := smoothstep(z - z0)

	v00 := f.lattice(ix, iz, octave)
	v10 := f.lattice(ix+1, iz, octave)
	v01 := f.lattice(ix, iz+1, octave)
	v11 := f.lattice(ix+1, iz+1, octave)

	a := v00 + (v10-v00)*tx
	b := v01 + (v11-v01)*tx
	return a + (b-a)*tz
}

func (f *Fractal) lattice(x, z int32, octave uint32) float32 {
	h := uint32(x)*0x8da6b343 ^ uint32(z)*0xd8163841 ^ octave*0xcb1ab31f ^ f.seed
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15
	return float32(h&0xffffff)/float32(0x7fffff) - 1
}

func smoothstep(t float32) float32 {
	return t * t * (3 - 2*t)
}
