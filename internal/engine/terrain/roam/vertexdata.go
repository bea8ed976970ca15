package roam

import "github.com/Faultbox/midgard-roam/pkg/math"

// VertexData is the flat triangle list of one patch. Buffers are sized for
// the finest possible mesh so they never grow.
type VertexData struct {
	coords    []float32 // x, y, z per vertex
	colors    []byte    // r, g, b per vertex
	texCoords []float32 // s, t per vertex

	hasColor   bool
	hasTexture bool
	count      int
}

// NewVertexData allocates buffers for patchSize² × 2 triangles.
func NewVertexData(patchSize int, hasTexture, hasColor bool) *VertexData {
	maxVerts := patchSize * patchSize * 2 * 3
	vd := &VertexData{
		coords:     make([]float32, maxVerts*3),
		hasColor:   hasColor,
		hasTexture: hasTexture,
	}
	if hasColor {
		vd.colors = make([]byte, maxVerts*3)
	}
	if hasTexture {
		vd.texCoords = make([]float32, maxVerts*2)
	}
	return vd
}

// AddVertex appends one vertex. Colour and texture coordinates are stored
// only when the buffer carries them.
func (vd *VertexData) AddVertex(p math.Vec3, color [3]float32, tex [2]float32) {
	i := vd.count * 3
	vd.coords[i] = p.X
	vd.coords[i+1] = p.Y
	vd.coords[i+2] = p.Z

	if vd.hasColor {
		vd.colors[i] = colorByte(color[0])
		vd.colors[i+1] = colorByte(color[1])
		vd.colors[i+2] = colorByte(color[2])
	}
	if vd.hasTexture {
		j := vd.count * 2
		vd.texCoords[j] = tex[0]
		vd.texCoords[j+1] = tex[1]
	}
	vd.count++
}

// Coords returns the live coordinate data, three floats per vertex.
func (vd *VertexData) Coords() []float32 { return vd.coords[:vd.count*3] }

// Colors returns the live colour data, three bytes per vertex, or nil.
func (vd *VertexData) Colors() []byte {
	if !vd.hasColor {
		return nil
	}
	return vd.colors[:vd.count*3]
}

// TexCoords returns the live texture coordinates, two floats per vertex,
// or nil.
func (vd *VertexData) TexCoords() []float32 {
	if !vd.hasTexture {
		return nil
	}
	return vd.texCoords[:vd.count*2]
}

// Vertex returns the position of vertex i.
func (vd *VertexData) Vertex(i int) math.Vec3 {
	return math.Vec3{X: vd.coords[i*3], Y: vd.coords[i*3+1], Z: vd.coords[i*3+2]}
}

// VertexCount returns the number of vertices written since the last Reset.
func (vd *VertexData) VertexCount() int { return vd.count }

// Capacity returns the maximum number of vertices.
func (vd *VertexData) Capacity() int { return len(vd.coords) / 3 }

// HasColor reports whether colours are stored.
func (vd *VertexData) HasColor() bool { return vd.hasColor }

// HasTexture reports whether texture coordinates are stored.
func (vd *VertexData) HasTexture() bool { return vd.hasTexture }

// Reset empties the buffer without releasing memory.
func (vd *VertexData) Reset() {
	vd.count = 0
}

func colorByte(c float32) byte {
	switch {
	case c <= 0:
		return 0
	case c >= 1:
		return 255
	}
	return byte(c*255 + 0.5)
}
