package game

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"roadrush/internal/logging"
)

// ErrGenerationStarvation means the map source was asked for a definition
// and produced none. The generator is required to be infinite, so this is a
// logic error, never a transient condition.
var ErrGenerationStarvation = errors.New("map generator produced no new definition")

// ErrInvalidView is returned for views the coverage loop could never satisfy.
var ErrInvalidView = errors.New("camera view is not finite")

// FreeSpaceMatrix is the aggregate free-space rows of the visible window,
// ordered top to bottom in world space.
type FreeSpaceMatrix struct {
	Rows      []RowMask
	X, Top    float64
	RowHeight float64
	Columns   int
}

// FreeAt reports whether the world point lies on a drivable cell.
// Points outside the matrix are not drivable.
func (m FreeSpaceMatrix) FreeAt(x, y float64) bool {
	if len(m.Rows) == 0 || m.RowHeight <= 0 || y < m.Top || x < m.X {
		return false
	}
	r := int((y - m.Top) / m.RowHeight)
	c := int((x - m.X) / m.RowHeight)
	if r >= len(m.Rows) || c >= m.Columns {
		return false
	}
	return m.Rows[r].Free(c)
}

// String dumps the matrix one row per line.
func (m FreeSpaceMatrix) String() string {
	var sb strings.Builder
	for _, row := range m.Rows {
		sb.WriteString(row.Format(m.Columns))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// BlockWindow streams blocks in ahead of the camera and evicts the ones
// left behind. Blocks are kept in generation order: index 0 is the oldest,
// bottom-most block and every later block sits directly above its
// predecessor.
type BlockWindow struct {
	source  MapSource
	cfg     WorldConfig
	bus     *EventBus
	metrics *Metrics

	next   int // index of the next definition to materialise
	blocks []*Block

	matrix   FreeSpaceMatrix
	polygons []Polygon
	index    *QuadNode
}

func NewBlockWindow(source MapSource, cfg WorldConfig, bus *EventBus, metrics *Metrics) *BlockWindow {
	return &BlockWindow{
		source:  source,
		cfg:     cfg,
		bus:     bus,
		metrics: metrics,
		blocks:  make([]*Block, 0, 8),
		matrix:  FreeSpaceMatrix{RowHeight: cfg.CellSize(), Columns: cfg.Columns},
	}
}

// Blocks returns the visible blocks in generation order. Callers must not
// modify the slice.
func (w *BlockWindow) Blocks() []*Block { return w.blocks }

// Matrix returns the aggregate free-space matrix.
func (w *BlockWindow) Matrix() FreeSpaceMatrix { return w.matrix }

// Polygons returns the aggregate off-road polygon list.
func (w *BlockWindow) Polygons() []Polygon { return w.polygons }

// NextIndex is the index of the next definition the window will consume.
func (w *BlockWindow) NextIndex() int { return w.next }

// Frontier is the top edge of the newest block, or the world bottom when
// the window is empty.
func (w *BlockWindow) Frontier() float64 {
	if len(w.blocks) == 0 {
		return w.cfg.Bottom
	}
	return w.blocks[len(w.blocks)-1].Top()
}

// Fill materialises blocks until the newest one reaches CoverageMargin past
// the top of view, then, if cleanup is set, evicts every block before the
// first one still in view. The aggregate matrix and polygon list are rebuilt
// whenever the set changed. The returned flag reports that change.
//
// A nil error means the source holds at least one definition past NextIndex.
func (w *BlockWindow) Fill(view RectF, cleanup bool) (bool, error) {
	if math.IsNaN(view.Y0) || math.IsInf(view.Y0, 0) || math.IsNaN(view.Y1) || math.IsInf(view.Y1, 0) {
		return false, ErrInvalidView
	}

	changed := false
	limit := view.Y0 - w.cfg.CoverageMargin
	for {
		// Checked before the exit test too, so a fill that consumes the last
		// buffered definition still leaves one ahead.
		if err := w.ensureGenerated(); err != nil {
			if changed {
				w.rebuild()
			}
			return changed, err
		}
		if w.Frontier() <= limit {
			break
		}
		b := NewBlock(0, w.Frontier(), w.source.At(w.next), w.cfg.CellSize())
		w.blocks = append(w.blocks, b)
		w.next++
		changed = true
		w.bus.Emit(Event{Type: EventBlockAdded, Y: b.Y, Data: b.Def.Index, Block: b})
	}

	if cleanup && w.evict(view) > 0 {
		changed = true
	}

	if changed {
		w.rebuild()
	}
	return changed, nil
}

// ensureGenerated keeps at least one definition ahead of consumption.
func (w *BlockWindow) ensureGenerated() error {
	for w.source.Len() <= w.next {
		before := w.source.Len()
		w.source.GenerateNext()
		if w.source.Len() <= before {
			return fmt.Errorf("%w: need index %d, have %d", ErrGenerationStarvation, w.next, before)
		}
		w.metrics.generated()
	}
	return nil
}

// evict removes and destroys every block before the first block that is
// still in view. Nothing is removed when no block is in view.
func (w *BlockWindow) evict(view RectF) int {
	first := -1
	for i, b := range w.blocks {
		if b.InCamera(view) {
			first = i
			break
		}
	}
	if first <= 0 {
		return 0
	}

	removed := w.blocks[:first]
	for _, b := range removed {
		b.Destroy()
		w.bus.Emit(Event{Type: EventBlockEvicted, Y: b.Y, Data: b.Def.Index, Block: b})
	}
	w.blocks = append(w.blocks[:0:0], w.blocks[first:]...)
	w.metrics.evicted(first)
	logging.LogDebug("block window: evicted %d blocks, %d remain", first, len(w.blocks))
	return first
}

// rebuild recomputes both aggregates from scratch.
func (w *BlockWindow) rebuild() {
	sorted := append([]*Block(nil), w.blocks...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y < sorted[j].Y })

	rows := make([]RowMask, 0, len(sorted)*w.cfg.RowsPerBlock)
	for _, b := range sorted {
		rows = append(rows, b.FreeSpace()...)
	}
	w.matrix = FreeSpaceMatrix{
		Rows:      rows,
		RowHeight: w.cfg.CellSize(),
		Columns:   w.cfg.Columns,
	}
	if len(sorted) > 0 {
		w.matrix.X = sorted[0].X
		w.matrix.Top = sorted[0].Y
	}

	polys := make([]Polygon, 0, len(w.polygons))
	for _, b := range w.blocks {
		polys = append(polys, b.OffRoadPolygons()...)
	}
	w.polygons = polys

	w.index = nil
	if len(sorted) > 0 {
		bounds := sorted[0].Bounds()
		for _, b := range sorted[1:] {
			bb := b.Bounds()
			bounds.X0 = min(bounds.X0, bb.X0)
			bounds.Y0 = min(bounds.Y0, bb.Y0)
			bounds.X1 = max(bounds.X1, bb.X1)
			bounds.Y1 = max(bounds.Y1, bb.Y1)
		}
		w.index = NewQuadNode(bounds.Pad(1), 0)
		for i := range w.polygons {
			w.index.Insert(&w.polygons[i])
		}
	}

	w.metrics.window(len(w.blocks), len(w.polygons))
	if logging.Enabled(logging.DEBUG) {
		logging.LogDebug("block window: rebuilt %d blocks, %d rows, %d polygons\n%s",
			len(w.blocks), len(rows), len(w.polygons), w.matrix.String())
	}
}

// HitAny reports whether any point lies inside any aggregate polygon.
// Overlapping or degenerate polygons cannot cancel each other out: a single
// containing polygon is enough.
func (w *BlockWindow) HitAny(points []Point) bool {
	if w.index == nil {
		return false
	}
	for _, pt := range points {
		if w.index.QueryPoint(pt.X, pt.Y, func(p *Polygon) bool { return p.Contains(pt.X, pt.Y) }) {
			return true
		}
	}
	return false
}

// FreeAt reports whether a world point is drivable according to the
// aggregate free-space matrix.
func (w *BlockWindow) FreeAt(x, y float64) bool {
	return w.matrix.FreeAt(x, y)
}

// CheckInvariants verifies contiguity and, for a non-empty window,
// the coverage margin against view.
func (w *BlockWindow) CheckInvariants(view RectF) error {
	for i := 1; i < len(w.blocks); i++ {
		if w.blocks[i].Bottom() != w.blocks[i-1].Top() {
			return fmt.Errorf("block window: gap between block %d (top %v) and %d (bottom %v)",
				i-1, w.blocks[i-1].Top(), i, w.blocks[i].Bottom())
		}
	}
	if f := w.Frontier(); f > view.Y0-w.cfg.CoverageMargin {
		return fmt.Errorf("block window: frontier %v short of %v", f, view.Y0-w.cfg.CoverageMargin)
	}
	return nil
}
