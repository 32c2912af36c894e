package game

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectIntersectsIsOpen(t *testing.T) {
	a := RectF{X0: 0, Y0: 0, X1: 10, Y1: 10}
	assert.True(t, a.Intersects(RectF{X0: 5, Y0: 5, X1: 15, Y1: 15}))
	assert.False(t, a.Intersects(RectF{X0: 10, Y0: 0, X1: 20, Y1: 10}))
	assert.True(t, a.Contains(RectF{X0: 1, Y0: 1, X1: 9, Y1: 9}))
	assert.Equal(t, RectF{X0: -1, Y0: -1, X1: 11, Y1: 11}, a.Pad(1))
	assert.Equal(t, RectF{X0: 80, Y0: 65, X1: 120, Y1: 135}, RectAround(100, 100, 40, 70))
}

func TestRectHasPointIsClosed(t *testing.T) {
	a := RectF{X0: 0, Y0: 0, X1: 10, Y1: 10}
	assert.True(t, a.HasPoint(0, 0))
	assert.True(t, a.HasPoint(10, 10))
	assert.False(t, a.HasPoint(10.01, 5))
}

// randomPolygons scatters n small rectangles over [0,1000)^2 and indexes them.
func randomPolygons(r *Rand, n int) (*QuadNode, []Polygon) {
	polys := make([]Polygon, n)
	for i := range polys {
		x, y := r.RangeF(0, 950), r.RangeF(0, 950)
		polys[i] = RectPolygon(x, y, x+r.RangeF(1, 50), y+r.RangeF(1, 50))
	}
	root := NewQuadNode(RectF{X0: 0, Y0: 0, X1: 1000, Y1: 1000}, 0)
	for i := range polys {
		root.Insert(&polys[i])
	}
	return root, polys
}

// collect runs a lookup and returns the visited polygons as sorted indexes.
func collect(polys []Polygon, lookup func(func(*Polygon) bool) bool) []int {
	var got []int
	lookup(func(p *Polygon) bool {
		for i := range polys {
			if &polys[i] == p {
				got = append(got, i)
			}
		}
		return false
	})
	sort.Ints(got)
	return got
}

func TestQuadTreeQueryMatchesBruteForce(t *testing.T) {
	r := NewRand(99)
	root, polys := randomPolygons(r, 300)

	for q := 0; q < 100; q++ {
		x, y := r.RangeF(0, 1000), r.RangeF(0, 1000)
		query := RectF{X0: x, Y0: y, X1: x + 40, Y1: y + 40}

		got := collect(polys, func(v func(*Polygon) bool) bool { return root.Query(query, v) })

		var want []int
		for i, p := range polys {
			if p.Bounds().Intersects(query) {
				want = append(want, i)
			}
		}
		assert.Equal(t, want, got)
	}
}

func TestQuadTreeQueryPointMatchesBruteForce(t *testing.T) {
	r := NewRand(7)
	root, polys := randomPolygons(r, 300)

	for q := 0; q < 200; q++ {
		x, y := r.RangeF(0, 1000), r.RangeF(0, 1000)

		got := collect(polys, func(v func(*Polygon) bool) bool { return root.QueryPoint(x, y, v) })

		var want []int
		for i, p := range polys {
			if p.Bounds().HasPoint(x, y) {
				want = append(want, i)
			}
		}
		assert.Equal(t, want, got)
	}
}

func TestQuadTreeStopsWhenVisitorReturnsTrue(t *testing.T) {
	polys := []Polygon{RectPolygon(0, 0, 10, 10), RectPolygon(5, 5, 15, 15)}
	root := NewQuadNode(RectF{X0: 0, Y0: 0, X1: 20, Y1: 20}, 0)
	for i := range polys {
		root.Insert(&polys[i])
	}

	visits := 0
	stopped := root.QueryPoint(7, 7, func(*Polygon) bool {
		visits++
		return true
	})
	assert.True(t, stopped)
	assert.Equal(t, 1, visits)

	assert.False(t, root.QueryPoint(19, 1, func(*Polygon) bool { return true }))
}
