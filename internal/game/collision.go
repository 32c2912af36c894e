package game

// CollisionResolver tests the vehicle against the window's off-road
// polygons. Only the three probe points are sampled; any one of them inside
// any polygon is a hit. The result is recomputed every tick.
type CollisionResolver struct {
	window *BlockWindow
	camera *Camera
	bus    *EventBus
	shake  float64
}

func NewCollisionResolver(window *BlockWindow, camera *Camera, bus *EventBus) *CollisionResolver {
	return &CollisionResolver{
		window: window,
		camera: camera,
		bus:    bus,
		shake:  WallShakeFraction * camera.Width,
	}
}

// HitsWall reports whether any probe point of v lies off-road.
func (c *CollisionResolver) HitsWall(v *VehicleController) bool {
	pts := v.ProbePoints()
	return c.window.HitAny(pts[:])
}

// Resolve runs the wall test and applies the penalty: a camera shake and
// one deceleration step toward MinVelocity.
func (c *CollisionResolver) Resolve(v *VehicleController) bool {
	hit := c.HitsWall(v)
	v.State.Collided = hit
	if !hit {
		return false
	}
	c.camera.AddShake(c.shake, WallShakeDuration)
	v.Brake(v.Config.Deceleration)
	c.bus.Emit(Event{Type: EventWallHit, X: v.State.X, Y: v.State.Y})
	return true
}
