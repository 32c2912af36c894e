package game

// Point is a world-space position.
type Point struct {
	X, Y float64
}

// Polygon is a closed point sequence; the last point connects to the first.
type Polygon struct {
	Points []Point
}

// RectPolygon returns the axis-aligned rectangle [x0,x1)x[y0,y1) as a
// clockwise polygon (screen orientation).
func RectPolygon(x0, y0, x1, y1 float64) Polygon {
	return Polygon{Points: []Point{
		{X: x0, Y: y0},
		{X: x1, Y: y0},
		{X: x1, Y: y1},
		{X: x0, Y: y1},
	}}
}

// Contains is an even-odd crossing test. Degenerate polygons (fewer than
// three points) contain nothing.
func (p Polygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := p.Points[i], p.Points[j]
		if (pi.Y <= y && y < pj.Y) || (pj.Y <= y && y < pi.Y) {
			if x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
				inside = !inside
			}
		}
	}
	return inside
}

// Bounds returns the polygon's axis-aligned bounding box.
func (p Polygon) Bounds() RectF {
	if len(p.Points) == 0 {
		return RectF{}
	}
	b := RectF{X0: p.Points[0].X, Y0: p.Points[0].Y, X1: p.Points[0].X, Y1: p.Points[0].Y}
	for _, pt := range p.Points[1:] {
		b.X0 = min(b.X0, pt.X)
		b.Y0 = min(b.Y0, pt.Y)
		b.X1 = max(b.X1, pt.X)
		b.Y1 = max(b.Y1, pt.Y)
	}
	return b
}

// Equal reports point-wise equality.
func (p Polygon) Equal(o Polygon) bool {
	if len(p.Points) != len(o.Points) {
		return false
	}
	for i := range p.Points {
		if p.Points[i] != o.Points[i] {
			return false
		}
	}
	return true
}
