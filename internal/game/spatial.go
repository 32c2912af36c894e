package game

// RectF is an axis-aligned rectangle in world space.
type RectF struct {
	X0, Y0 float64
	X1, Y1 float64
}

func (r RectF) Intersects(o RectF) bool {
	return r.X0 < o.X1 && r.X1 > o.X0 && r.Y0 < o.Y1 && r.Y1 > o.Y0
}

func (r RectF) Contains(o RectF) bool {
	return o.X0 >= r.X0 && o.X1 <= r.X1 && o.Y0 >= r.Y0 && o.Y1 <= r.Y1
}

// HasPoint is the closed containment test used for point lookups.
func (r RectF) HasPoint(x, y float64) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// Pad grows the rectangle by d on every side.
func (r RectF) Pad(d float64) RectF {
	return RectF{X0: r.X0 - d, Y0: r.Y0 - d, X1: r.X1 + d, Y1: r.Y1 + d}
}

// RectAround returns the w x h rectangle centred on (x, y).
func RectAround(x, y, w, h float64) RectF {
	return RectF{X0: x - w/2, Y0: y - h/2, X1: x + w/2, Y1: y + h/2}
}

// indexedPolygon caches a polygon's bounds next to it.
type indexedPolygon struct {
	poly *Polygon
	box  RectF
}

// QuadNode buckets polygons by bounding box. A polygon lives in the deepest
// quadrant that fully contains its box; boxes straddling a split stay put.
// Lookups only prune candidates, the visitor decides the exact test.
type QuadNode struct {
	area  RectF
	level int
	polys []indexedPolygon
	kids  []*QuadNode // nil until split, then four quadrants
}

func NewQuadNode(area RectF, level int) *QuadNode {
	return &QuadNode{area: area, level: level}
}

// Insert indexes p. The polygon must not change while it is indexed.
func (n *QuadNode) Insert(p *Polygon) {
	n.insert(indexedPolygon{poly: p, box: p.Bounds()})
}

func (n *QuadNode) insert(it indexedPolygon) {
	if k := n.kidFor(it.box); k != nil {
		k.insert(it)
		return
	}
	n.polys = append(n.polys, it)
	if n.kids == nil && len(n.polys) > QuadCapacity && n.level < QuadMaxDepth {
		n.split()
	}
}

func (n *QuadNode) split() {
	a := n.area
	mx, my := (a.X0+a.X1)*0.5, (a.Y0+a.Y1)*0.5
	n.kids = []*QuadNode{
		NewQuadNode(RectF{X0: a.X0, Y0: a.Y0, X1: mx, Y1: my}, n.level+1),
		NewQuadNode(RectF{X0: mx, Y0: a.Y0, X1: a.X1, Y1: my}, n.level+1),
		NewQuadNode(RectF{X0: a.X0, Y0: my, X1: mx, Y1: a.Y1}, n.level+1),
		NewQuadNode(RectF{X0: mx, Y0: my, X1: a.X1, Y1: a.Y1}, n.level+1),
	}
	stay := n.polys[:0]
	for _, it := range n.polys {
		if k := n.kidFor(it.box); k != nil {
			k.insert(it)
		} else {
			stay = append(stay, it)
		}
	}
	n.polys = stay
}

func (n *QuadNode) kidFor(box RectF) *QuadNode {
	for _, k := range n.kids {
		if k.area.Contains(box) {
			return k
		}
	}
	return nil
}

// Query calls visit for every polygon whose box intersects r until visit
// returns true. It reports whether the walk was stopped.
func (n *QuadNode) Query(r RectF, visit func(*Polygon) bool) bool {
	return n.walk(r.Intersects, visit)
}

// QueryPoint calls visit for every polygon whose box holds (x, y) until
// visit returns true. It reports whether the walk was stopped.
func (n *QuadNode) QueryPoint(x, y float64, visit func(*Polygon) bool) bool {
	return n.walk(func(b RectF) bool { return b.HasPoint(x, y) }, visit)
}

func (n *QuadNode) walk(overlaps func(RectF) bool, visit func(*Polygon) bool) bool {
	if !overlaps(n.area) {
		return false
	}
	for _, it := range n.polys {
		if overlaps(it.box) && visit(it.poly) {
			return true
		}
	}
	for _, k := range n.kids {
		if k.walk(overlaps, visit) {
			return true
		}
	}
	return false
}
