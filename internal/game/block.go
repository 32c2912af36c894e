package game

import "sort"

// Resource is a visual or physical handle owned by a block or enemy.
// The host attaches one; the simulation releases it on eviction/removal.
type Resource interface {
	Release()
}

// Block is one materialised definition placed in world space. Y is the top
// edge; the block spans [Y, Y+Height).
type Block struct {
	Def      BlockDefinition
	X, Y     float64
	Width    float64
	Height   float64
	CellSize float64

	freeSpace []RowMask
	polygons  []Polygon

	resource  Resource
	destroyed bool
}

// NewBlock places def so that its bottom edge sits at bottom. The free-space
// slice and off-road polygons are derived from def alone.
func NewBlock(x, bottom float64, def BlockDefinition, cellSize float64) *Block {
	height := float64(len(def.Rows)) * cellSize
	b := &Block{
		Def:      def,
		X:        x,
		Y:        bottom - height,
		Width:    float64(def.Columns) * cellSize,
		Height:   height,
		CellSize: cellSize,
	}
	b.freeSpace = append([]RowMask(nil), def.Rows...)
	b.polygons = buildOffRoadPolygons(def, b.X, b.Y, cellSize)
	return b
}

func (b *Block) Top() float64    { return b.Y }
func (b *Block) Bottom() float64 { return b.Y + b.Height }

func (b *Block) Bounds() RectF {
	return RectF{X0: b.X, Y0: b.Y, X1: b.X + b.Width, Y1: b.Bottom()}
}

// FreeSpace returns the block's rows of the free-space matrix, top first.
func (b *Block) FreeSpace() []RowMask { return b.freeSpace }

// OffRoadPolygons returns the wall polygons in world space.
func (b *Block) OffRoadPolygons() []Polygon { return b.polygons }

// InCamera reports whether the block's Y-range overlaps the view.
func (b *Block) InCamera(view RectF) bool {
	return b.Y < view.Y1 && b.Bottom() > view.Y0
}

// FreeAt reports whether the world point lies on a drivable cell of this block.
func (b *Block) FreeAt(x, y float64) bool {
	if x < b.X || y < b.Y || x >= b.X+b.Width || y >= b.Bottom() {
		return false
	}
	r := clamp(int((y-b.Y)/b.CellSize), 0, len(b.freeSpace)-1)
	c := int((x - b.X) / b.CellSize)
	return b.freeSpace[r].Free(c)
}

// CellCenter returns the world centre of cell (r, c).
func (b *Block) CellCenter(r, c int) Point {
	return Point{
		X: b.X + (float64(c)+0.5)*b.CellSize,
		Y: b.Y + (float64(r)+0.5)*b.CellSize,
	}
}

// Attach hands the block a resource to release on Destroy.
func (b *Block) Attach(r Resource) { b.resource = r }

func (b *Block) Resource() Resource { return b.resource }

func (b *Block) Destroyed() bool { return b.destroyed }

// Destroy releases the attached resource. Further calls are no-ops.
func (b *Block) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	if b.resource != nil {
		b.resource.Release()
		b.resource = nil
	}
}

type wallRun struct{ start, end int }

type openRun struct {
	run      wallRun
	firstRow int
}

// buildOffRoadPolygons turns every maximal run of wall cells into a
// rectangle, merging identical runs in consecutive rows into one taller
// rectangle. Output is sorted by (top, left).
func buildOffRoadPolygons(def BlockDefinition, x, y, cell float64) []Polygon {
	var rects []RectF
	var active []openRun

	closeRun := func(o openRun, lastRow int) {
		rects = append(rects, RectF{
			X0: x + float64(o.run.start)*cell,
			Y0: y + float64(o.firstRow)*cell,
			X1: x + float64(o.run.end)*cell,
			Y1: y + float64(lastRow+1)*cell,
		})
	}

	for r, row := range def.Rows {
		runs := wallRuns(row, def.Columns)
		next := make([]openRun, 0, len(active))
		for _, o := range active {
			if containsRun(runs, o.run) {
				next = append(next, o)
			} else {
				closeRun(o, r-1)
			}
		}
		for _, run := range runs {
			if !containsOpen(next, run) {
				next = append(next, openRun{run: run, firstRow: r})
			}
		}
		active = next
	}
	for _, o := range active {
		closeRun(o, len(def.Rows)-1)
	}

	sort.Slice(rects, func(i, j int) bool {
		if rects[i].Y0 != rects[j].Y0 {
			return rects[i].Y0 < rects[j].Y0
		}
		return rects[i].X0 < rects[j].X0
	})

	polys := make([]Polygon, len(rects))
	for i, rc := range rects {
		polys[i] = RectPolygon(rc.X0, rc.Y0, rc.X1, rc.Y1)
	}
	return polys
}

func wallRuns(row RowMask, columns int) []wallRun {
	var runs []wallRun
	start := -1
	for c := 0; c < columns; c++ {
		if !row.Free(c) {
			if start < 0 {
				start = c
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, wallRun{start: start, end: c})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, wallRun{start: start, end: columns})
	}
	return runs
}

func containsRun(runs []wallRun, r wallRun) bool {
	for _, x := range runs {
		if x == r {
			return true
		}
	}
	return false
}

func containsOpen(list []openRun, r wallRun) bool {
	for _, o := range list {
		if o.run == r {
			return true
		}
	}
	return false
}
