package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingResource struct{ released int }

func (r *countingResource) Release() { r.released++ }

func threeRowDef() BlockDefinition {
	return BlockDefinition{
		Index:   3,
		Columns: 6,
		Rows: []RowMask{
			0b011110, // #....#
			0b011110, // #....#
			0b001111, // ....##
		},
	}
}

func TestNewBlockPlacement(t *testing.T) {
	b := NewBlock(0, 1000, threeRowDef(), 80)
	assert.Equal(t, 240.0, b.Height)
	assert.Equal(t, 480.0, b.Width)
	assert.Equal(t, 760.0, b.Top())
	assert.Equal(t, 1000.0, b.Bottom())
	assert.Equal(t, RectF{X0: 0, Y0: 760, X1: 480, Y1: 1000}, b.Bounds())
}

func TestBlockFreeSpaceIsCopy(t *testing.T) {
	def := threeRowDef()
	b := NewBlock(0, 1000, def, 80)
	assert.Equal(t, def.Rows, b.FreeSpace())
	def.Rows[0] = 0
	assert.Equal(t, RowMask(0b011110), b.FreeSpace()[0])
}

func TestBlockOffRoadPolygons(t *testing.T) {
	b := NewBlock(0, 1000, threeRowDef(), 80)
	want := []Polygon{
		RectPolygon(0, 760, 80, 920),
		RectPolygon(400, 760, 480, 920),
		RectPolygon(320, 920, 480, 1000),
	}
	got := b.OffRoadPolygons()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "polygon %d: got %v", i, got[i].Points)
	}
}

func TestBlockPolygonsCoverWalls(t *testing.T) {
	cfg := DefaultWorldConfig()
	cfg.IslandChance = 0.5
	defs := generate(77, cfg, 20)
	bottom := cfg.Bottom
	for _, def := range defs {
		b := NewBlock(0, bottom, def, cfg.CellSize())
		for r, row := range b.FreeSpace() {
			for c := 0; c < def.Columns; c++ {
				p := b.CellCenter(r, c)
				inside := false
				for _, poly := range b.OffRoadPolygons() {
					if poly.Contains(p.X, p.Y) {
						inside = true
						break
					}
				}
				require.Equal(t, !row.Free(c), inside, "block %d cell (%d,%d)", def.Index, r, c)
			}
		}
		bottom = b.Top()
	}
}

func TestBlockDeterministic(t *testing.T) {
	def := generate(11, DefaultWorldConfig(), 5)[4]
	a := NewBlock(0, 5000, def, 80)
	b := NewBlock(0, 5000, def, 80)
	assert.Equal(t, a.FreeSpace(), b.FreeSpace())
	assert.Equal(t, a.OffRoadPolygons(), b.OffRoadPolygons())
}

func TestBlockInCamera(t *testing.T) {
	b := NewBlock(0, 1000, threeRowDef(), 80)
	assert.True(t, b.InCamera(RectF{Y0: 900, Y1: 1700}))
	assert.True(t, b.InCamera(RectF{Y0: 0, Y1: 800}))
	assert.False(t, b.InCamera(RectF{Y0: 1000, Y1: 1800}))
	assert.False(t, b.InCamera(RectF{Y0: 0, Y1: 760}))
}

func TestBlockFreeAt(t *testing.T) {
	b := NewBlock(0, 1000, threeRowDef(), 80)
	assert.False(t, b.FreeAt(40, 780))
	assert.True(t, b.FreeAt(120, 780))
	assert.True(t, b.FreeAt(40, 950))
	assert.False(t, b.FreeAt(360, 950))
	assert.False(t, b.FreeAt(120, 1000))
	assert.False(t, b.FreeAt(-1, 800))
}

func TestBlockDestroyReleasesOnce(t *testing.T) {
	b := NewBlock(0, 1000, threeRowDef(), 80)
	res := &countingResource{}
	b.Attach(res)
	assert.Same(t, res, b.Resource())

	b.Destroy()
	b.Destroy()
	assert.True(t, b.Destroyed())
	assert.Equal(t, 1, res.released)
	assert.Nil(t, b.Resource())
}
