package desktop

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"roadrush/internal/game"
	"roadrush/internal/logging"
)

// Each vertex: x, y, r, g, b, a.
const floatsPerVertex = 6

type rgba [4]float32

var (
	roadColor   = rgba{0.23, 0.23, 0.25, 1}
	wallColor   = rgba{0.20, 0.45, 0.22, 1}
	wallAlt     = rgba{0.17, 0.40, 0.19, 1}
	playerColor = rgba{0.96, 0.80, 0.16, 1}
	scrapeColor = rgba{1.00, 0.42, 0.22, 1}
	enemyColor  = rgba{0.86, 0.16, 0.22, 1}
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type Renderer struct {
	prog    uint32
	uCamera int32
	uView   int32
	uDim    int32

	// Streaming buffer for the vehicle and enemies.
	dynVAO uint32
	dynVBO uint32
	dynCap int
	dynBuf []float32

	liveMeshes  int
	liveSprites int
}

func NewRenderer() (*Renderer, error) {
	prog, err := linkProgram(flatVertSrc, flatFragSrc)
	if err != nil {
		return nil, fmt.Errorf("flat program: %w", err)
	}
	r := &Renderer{prog: prog}

	gl.UseProgram(prog)
	r.uCamera = gl.GetUniformLocation(prog, gl.Str("uCamera\x00"))
	r.uView = gl.GetUniformLocation(prog, gl.Str("uView\x00"))
	r.uDim = gl.GetUniformLocation(prog, gl.Str("uDim\x00"))
	gl.Uniform1f(r.uDim, 1.0)

	gl.GenVertexArrays(1, &r.dynVAO)
	gl.GenBuffers(1, &r.dynVBO)
	gl.BindVertexArray(r.dynVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.dynVBO)
	r.dynCap = 64 * 6 * floatsPerVertex
	gl.BufferData(gl.ARRAY_BUFFER, r.dynCap*4, nil, gl.STREAM_DRAW)
	vertexLayout()

	gl.BindVertexArray(0)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	return r, nil
}

func vertexLayout() {
	stride := int32(floatsPerVertex * 4)
	// aPos (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	// aColor (vec4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, glOffset(2*4))
}

func (r *Renderer) Destroy() {
	if r.liveMeshes != 0 || r.liveSprites != 0 {
		logging.LogWarn("renderer: destroyed with %d block meshes and %d sprites still live", r.liveMeshes, r.liveSprites)
	}
	if r.dynVBO != 0 {
		gl.DeleteBuffers(1, &r.dynVBO)
	}
	if r.dynVAO != 0 {
		gl.DeleteVertexArrays(1, &r.dynVAO)
	}
	if r.prog != 0 {
		gl.DeleteProgram(r.prog)
	}
}

// blockMesh is the static wall geometry of one block. The block window
// releases it when the block is evicted.
type blockMesh struct {
	r     *Renderer
	vao   uint32
	vbo   uint32
	count int32
}

func (m *blockMesh) Release() {
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	m.vao, m.vbo = 0, 0
	m.r.liveMeshes--
}

// enemySprite tracks an enemy's slot in the streaming buffer.
type enemySprite struct{ r *Renderer }

func (s *enemySprite) Release() { s.r.liveSprites-- }

func (r *Renderer) meshFor(b *game.Block) *blockMesh {
	if m, ok := b.Resource().(*blockMesh); ok {
		return m
	}
	c := wallColor
	if b.Def.Index%2 == 1 {
		c = wallAlt
	}
	var verts []float32
	for _, p := range b.OffRoadPolygons() {
		verts = appendPolygon(verts, p, c)
	}

	m := &blockMesh{r: r, count: int32(len(verts) / floatsPerVertex)}
	if m.count > 0 {
		gl.GenVertexArrays(1, &m.vao)
		gl.GenBuffers(1, &m.vbo)
		gl.BindVertexArray(m.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(&verts[0]), gl.STATIC_DRAW)
		vertexLayout()
		gl.BindVertexArray(0)
	}
	b.Attach(m)
	r.liveMeshes++
	return m
}

// appendPolygon fans p into triangles. Off-road polygons are convex.
func appendPolygon(buf []float32, p game.Polygon, c rgba) []float32 {
	pts := p.Points
	for i := 1; i+1 < len(pts); i++ {
		for _, q := range [3]game.Point{pts[0], pts[i], pts[i+1]} {
			buf = append(buf, float32(q.X), float32(q.Y), c[0], c[1], c[2], c[3])
		}
	}
	return buf
}

// appendQuad adds a w x h rectangle centred on (x, y), rotated by rot radians.
func appendQuad(buf []float32, x, y, w, h, rot float64, c rgba) []float32 {
	cs, sn := math.Cos(rot), math.Sin(rot)
	corner := func(lx, ly float64) (float32, float32) {
		return float32(x + lx*cs - ly*sn), float32(y + lx*sn + ly*cs)
	}
	hw, hh := w/2, h/2
	x0, y0 := corner(-hw, -hh)
	x1, y1 := corner(hw, -hh)
	x2, y2 := corner(hw, hh)
	x3, y3 := corner(-hw, hh)
	for _, v := range [6][2]float32{{x0, y0}, {x1, y1}, {x2, y2}, {x0, y0}, {x2, y2}, {x3, y3}} {
		buf = append(buf, v[0], v[1], c[0], c[1], c[2], c[3])
	}
	return buf
}

// Draw renders the session's visible world with shake applied.
func (r *Renderer) Draw(s *game.Session, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(roadColor[0], roadColor[1], roadColor[2], roadColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(r.prog)
	cx, cy := s.Camera.EffectivePos()
	gl.Uniform2f(r.uCamera, float32(cx), float32(cy))
	gl.Uniform2f(r.uView, float32(s.Camera.Width), float32(s.Camera.Height))
	dim := float32(1.0)
	if s.State != game.StatePlaying {
		dim = 0.5
	}
	gl.Uniform1f(r.uDim, dim)

	for _, b := range s.Window.Blocks() {
		m := r.meshFor(b)
		if m.count == 0 {
			continue
		}
		gl.BindVertexArray(m.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	}

	r.dynBuf = r.dynBuf[:0]
	for _, e := range s.Enemies.Enemies() {
		if e.Sprite == nil {
			e.Sprite = &enemySprite{r: r}
			r.liveSprites++
		}
		r.dynBuf = appendQuad(r.dynBuf, e.X, e.Y, e.Width, e.Height, 0, enemyColor)
	}
	v := s.Vehicle
	c := playerColor
	if v.State.Collided {
		c = scrapeColor
	}
	r.dynBuf = appendQuad(r.dynBuf, v.State.X, v.State.Y, v.Config.Width, v.Config.Height, v.State.Rotation, c)

	gl.BindVertexArray(r.dynVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.dynVBO)
	if len(r.dynBuf) > r.dynCap {
		r.dynCap = len(r.dynBuf) * 2
		gl.BufferData(gl.ARRAY_BUFFER, r.dynCap*4, nil, gl.STREAM_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(r.dynBuf)*4, gl.Ptr(&r.dynBuf[0]))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.dynBuf)/floatsPerVertex))
	gl.BindVertexArray(0)
}
