package game

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource repeats one layout forever, or nothing at all when starved.
type fixedSource struct {
	rows    []RowMask
	columns int
	defs    []BlockDefinition
	starved bool
}

func (s *fixedSource) GenerateNext() {
	if s.starved {
		return
	}
	s.defs = append(s.defs, BlockDefinition{
		Index:   len(s.defs),
		Columns: s.columns,
		Rows:    append([]RowMask(nil), s.rows...),
	})
}

func (s *fixedSource) Len() int { return len(s.defs) }

func (s *fixedSource) At(i int) BlockDefinition { return s.defs[i] }

func straightRoad(rows int) *fixedSource {
	r := make([]RowMask, rows)
	for i := range r {
		r[i] = 0b011110
	}
	return &fixedSource{rows: r, columns: 6}
}

func startView(cfg WorldConfig) RectF {
	return RectF{X0: 0, Y0: cfg.Bottom - 1000, X1: cfg.ViewportWidth, Y1: cfg.Bottom - 200}
}

func shifted(v RectF, dy float64) RectF {
	return RectF{X0: v.X0, Y0: v.Y0 + dy, X1: v.X1, Y1: v.Y1 + dy}
}

func TestBlockWindowInitialFill(t *testing.T) {
	cfg := DefaultWorldConfig()
	bus := NewEventBus()
	var added []int
	bus.Subscribe(EventBlockAdded, func(e Event) { added = append(added, e.Data) })

	w := NewBlockWindow(NewMapGenerator(1, cfg), cfg, bus, nil)
	assert.Equal(t, cfg.Bottom, w.Frontier())

	changed, err := w.Fill(startView(cfg), false)
	require.NoError(t, err)
	assert.True(t, changed)
	require.Len(t, w.Blocks(), 2)
	assert.Equal(t, []int{0, 1}, added)
	assert.Equal(t, 2, w.NextIndex())
	assert.Equal(t, cfg.Bottom, w.Blocks()[0].Bottom())
	assert.Equal(t, w.Blocks()[0].Top(), w.Blocks()[1].Bottom())
	assert.NoError(t, w.CheckInvariants(startView(cfg)))

	changed, err = w.Fill(startView(cfg), true)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestBlockWindowCoverageWhileScrolling(t *testing.T) {
	cfg := DefaultWorldConfig()
	bus := NewEventBus()
	evicted := 0
	bus.Subscribe(EventBlockEvicted, func(e Event) {
		evicted++
		assert.True(t, e.Block.Destroyed())
	})
	w := NewBlockWindow(NewMapGenerator(21, cfg), cfg, bus, nil)

	view := startView(cfg)
	for step := 0; step < 300; step++ {
		_, err := w.Fill(view, true)
		require.NoError(t, err)
		require.NoError(t, w.CheckInvariants(view), "step %d", step)
		require.NotEmpty(t, w.Blocks())
		assert.True(t, w.Blocks()[0].InCamera(view), "oldest block left behind at step %d", step)
		view = shifted(view, -137)
	}
	assert.Positive(t, evicted)
	assert.Less(t, len(w.Blocks()), 5)
}

func TestBlockWindowEvictsOnlyWithCleanup(t *testing.T) {
	cfg := DefaultWorldConfig()
	w := NewBlockWindow(NewMapGenerator(4, cfg), cfg, NewEventBus(), nil)
	res := &countingResource{}

	_, err := w.Fill(startView(cfg), false)
	require.NoError(t, err)
	w.Blocks()[0].Attach(res)

	far := shifted(startView(cfg), -3000)
	_, err = w.Fill(far, false)
	require.NoError(t, err)
	n := len(w.Blocks())
	assert.Greater(t, n, 4)
	assert.Equal(t, 0, res.released)

	changed, err := w.Fill(far, true)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Less(t, len(w.Blocks()), n)
	assert.Equal(t, 1, res.released)
	assert.True(t, w.Blocks()[0].InCamera(far))
}

func TestBlockWindowKeepsBlocksWhenNoneInView(t *testing.T) {
	cfg := DefaultWorldConfig()
	w := NewBlockWindow(NewMapGenerator(4, cfg), cfg, NewEventBus(), nil)
	_, err := w.Fill(startView(cfg), false)
	require.NoError(t, err)

	// A view entirely below the world overlaps nothing.
	below := RectF{X0: 0, Y0: cfg.Bottom + 10, X1: cfg.ViewportWidth, Y1: cfg.Bottom + 810}
	_, err = w.Fill(below, true)
	require.NoError(t, err)
	assert.Len(t, w.Blocks(), 2)
}

func TestBlockWindowAggregates(t *testing.T) {
	cfg := DefaultWorldConfig()
	w := NewBlockWindow(NewMapGenerator(8, cfg), cfg, NewEventBus(), nil)
	_, err := w.Fill(shifted(startView(cfg), -2000), false)
	require.NoError(t, err)
	blocks := w.Blocks()
	require.Greater(t, len(blocks), 2)

	// Matrix: rows of the top-most block first.
	var rows []RowMask
	for i := len(blocks) - 1; i >= 0; i-- {
		rows = append(rows, blocks[i].FreeSpace()...)
	}
	m := w.Matrix()
	assert.Equal(t, rows, m.Rows)
	assert.Equal(t, blocks[len(blocks)-1].Top(), m.Top)
	assert.Equal(t, cfg.CellSize(), m.RowHeight)

	// Polygons: generation order.
	var polys []Polygon
	for _, b := range blocks {
		polys = append(polys, b.OffRoadPolygons()...)
	}
	assert.Equal(t, polys, w.Polygons())

	for _, b := range blocks {
		for r := range b.FreeSpace() {
			for c := 0; c < cfg.Columns; c++ {
				p := b.CellCenter(r, c)
				assert.Equal(t, b.FreeAt(p.X, p.Y), w.FreeAt(p.X, p.Y))
			}
		}
	}
	assert.False(t, w.FreeAt(10, m.Top-1))
	assert.NotEmpty(t, m.String())
}

func TestBlockWindowHitAnyMatchesBruteForce(t *testing.T) {
	cfg := DefaultWorldConfig()
	cfg.IslandChance = 0.3
	w := NewBlockWindow(NewMapGenerator(33, cfg), cfg, NewEventBus(), nil)
	_, err := w.Fill(shifted(startView(cfg), -4000), false)
	require.NoError(t, err)

	top := w.Frontier()
	r := NewRand(5)
	for i := 0; i < 2000; i++ {
		p := Point{X: r.RangeF(-10, cfg.Width+10), Y: r.RangeF(top-10, cfg.Bottom+10)}
		want := false
		for _, poly := range w.Polygons() {
			if poly.Contains(p.X, p.Y) {
				want = true
				break
			}
		}
		require.Equal(t, want, w.HitAny([]Point{p}), "point %v", p)
	}
}

func TestBlockWindowHitAnyEmpty(t *testing.T) {
	cfg := DefaultWorldConfig()
	w := NewBlockWindow(straightRoad(cfg.RowsPerBlock), cfg, nil, nil)
	assert.False(t, w.HitAny([]Point{{X: 1, Y: 1}}))
}

func TestBlockWindowStarvation(t *testing.T) {
	cfg := DefaultWorldConfig()
	src := straightRoad(cfg.RowsPerBlock)
	src.starved = true
	w := NewBlockWindow(src, cfg, NewEventBus(), nil)

	_, err := w.Fill(startView(cfg), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGenerationStarvation))
	assert.Empty(t, w.Blocks())
}

func TestBlockWindowStarvationAfterProgress(t *testing.T) {
	cfg := DefaultWorldConfig()
	src := straightRoad(cfg.RowsPerBlock)
	w := NewBlockWindow(src, cfg, NewEventBus(), nil)
	_, err := w.Fill(startView(cfg), false)
	require.NoError(t, err)

	assert.Equal(t, 3, src.Len())

	// The buffered definition is still consumed; the fill fails only when
	// it cannot replace it.
	src.starved = true
	_, err = w.Fill(shifted(startView(cfg), -2000), true)
	assert.ErrorIs(t, err, ErrGenerationStarvation)
	assert.Len(t, w.Blocks(), 3)
	assert.Equal(t, 3, w.NextIndex())
	assert.Len(t, w.Matrix().Rows, 3*cfg.RowsPerBlock)
}

func TestBlockWindowKeepsDefinitionAhead(t *testing.T) {
	cfg := DefaultWorldConfig()
	gen := NewMapGenerator(2024, cfg)
	w := NewBlockWindow(gen, cfg, NewEventBus(), nil)

	view := startView(cfg)
	for step := 0; step < 200; step++ {
		_, err := w.Fill(view, step > 0)
		require.NoError(t, err)
		require.Greater(t, gen.Len(), w.NextIndex(), "step %d", step)
		view = shifted(view, -211)
	}
	assert.Equal(t, w.NextIndex()+1, gen.Len())
}

func TestBlockWindowRejectsNonFiniteView(t *testing.T) {
	cfg := DefaultWorldConfig()
	w := NewBlockWindow(straightRoad(cfg.RowsPerBlock), cfg, NewEventBus(), nil)
	_, err := w.Fill(RectF{Y0: math.NaN(), Y1: 0}, true)
	assert.ErrorIs(t, err, ErrInvalidView)
	_, err = w.Fill(RectF{Y0: math.Inf(-1), Y1: 0}, true)
	assert.ErrorIs(t, err, ErrInvalidView)
	assert.Empty(t, w.Blocks())
}
