package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCameraTrackAtCruise(t *testing.T) {
	cam := NewCamera(DefaultWorldConfig())
	cam.Track(VehicleState{Y: 100000, VY: InitialVelocity}, DefaultPlayerConfig())
	assert.Equal(t, 100000-CameraLeadFactor*ViewportHeight, cam.Y)
	assert.Equal(t, RectF{X0: 0, Y0: cam.Y, X1: ViewportWidth, Y1: cam.Y + ViewportHeight}, cam.View())
}

func TestCameraTrackDependsOnSpeed(t *testing.T) {
	cfg := DefaultPlayerConfig()
	cam := NewCamera(DefaultWorldConfig())

	cam.Track(VehicleState{Y: 100000, VY: MaxVelocity}, cfg)
	fast := cam.Y
	cam.Track(VehicleState{Y: 100000, VY: MinVelocity}, cfg)
	slow := cam.Y

	// Full speed pulls the camera back 250 units, crawling pushes it ahead.
	assert.InDelta(t, 100000-600+250, fast, 1e-9)
	assert.InDelta(t, 100000-600-250, slow, 1e-9)
}

func TestCameraClampedAtWorldBottom(t *testing.T) {
	cam := NewCamera(DefaultWorldConfig())
	cam.Track(VehicleState{Y: WorldBottom, VY: InitialVelocity}, DefaultPlayerConfig())
	assert.Equal(t, float64(WorldBottom-ViewportHeight), cam.Y)
}

func TestCameraShakeDecays(t *testing.T) {
	cam := NewCamera(DefaultWorldConfig())
	cam.AddShake(2.4, WallShakeDuration)
	cam.AddShake(1, 0.05)
	assert.Equal(t, 2.4, cam.ShakeIntensity)
	assert.Equal(t, WallShakeDuration, cam.ShakeTimer)

	cam.UpdateShake(tick, 1)
	assert.LessOrEqual(t, cam.ShakeX, 2.4)
	assert.GreaterOrEqual(t, cam.ShakeX, -2.4)

	for i := 0; i < 20; i++ {
		cam.UpdateShake(tick, uint64(i))
	}
	x, y := cam.EffectivePos()
	assert.Equal(t, cam.X, x)
	assert.Equal(t, cam.Y, y)
	assert.Zero(t, cam.ShakeIntensity)
}
