package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolygonContainsRect(t *testing.T) {
	p := RectPolygon(0, 0, 80, 160)
	assert.True(t, p.Contains(40, 80))
	assert.True(t, p.Contains(0, 0))
	assert.False(t, p.Contains(80, 80))
	assert.False(t, p.Contains(40, 160))
	assert.False(t, p.Contains(-1, 10))
}

func TestPolygonContainsTriangle(t *testing.T) {
	p := Polygon{Points: []Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 100}}}
	assert.True(t, p.Contains(10, 10))
	assert.False(t, p.Contains(80, 80))
}

func TestPolygonDegenerate(t *testing.T) {
	assert.False(t, Polygon{}.Contains(0, 0))
	line := Polygon{Points: []Point{{X: 0, Y: 0}, {X: 10, Y: 10}}}
	assert.False(t, line.Contains(5, 5))
}

func TestPolygonBoundsAndEqual(t *testing.T) {
	p := RectPolygon(10, 20, 30, 60)
	assert.Equal(t, RectF{X0: 10, Y0: 20, X1: 30, Y1: 60}, p.Bounds())
	assert.Equal(t, RectF{}, Polygon{}.Bounds())
	assert.True(t, p.Equal(RectPolygon(10, 20, 30, 60)))
	assert.False(t, p.Equal(RectPolygon(10, 20, 30, 61)))
}
