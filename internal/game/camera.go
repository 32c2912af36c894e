package game

// Camera is the viewport. X, Y is the top-left corner in world space.
type Camera struct {
	X, Y          float64
	Width, Height float64

	// MaxY keeps the view above the bottom of the world.
	MaxY float64

	// Screen shake.
	ShakeX, ShakeY float64 // current offset in world units
	ShakeTimer     float64 // remaining shake time
	ShakeIntensity float64 // max offset magnitude
}

func NewCamera(cfg WorldConfig) *Camera {
	return &Camera{
		Width:  cfg.ViewportWidth,
		Height: cfg.ViewportHeight,
		MaxY:   cfg.Bottom - cfg.ViewportHeight,
	}
}

// Track places the camera from the vehicle state alone: the player sits
// CameraLeadFactor down the viewport, pulled further back the faster the
// vehicle runs above cruise speed.
func (c *Camera) Track(s VehicleState, cfg PlayerConfig) {
	diff := lerp(0, s.VY-cfg.InitialVelocity, CameraLerpFactor)
	y := s.Y - CameraLeadFactor*c.Height - diff*CameraLerpScale
	if y > c.MaxY {
		y = c.MaxY
	}
	c.Y = y
}

// View returns the unshaken viewport rectangle.
func (c *Camera) View() RectF {
	return RectF{X0: c.X, Y0: c.Y, X1: c.X + c.Width, Y1: c.Y + c.Height}
}

// AddShake triggers screen shake with given intensity and duration.
func (c *Camera) AddShake(intensity, duration float64) {
	if intensity > c.ShakeIntensity {
		c.ShakeIntensity = intensity
	}
	if duration > c.ShakeTimer {
		c.ShakeTimer = duration
	}
}

// UpdateShake decays shake and computes random offsets.
func (c *Camera) UpdateShake(dt float64, seed uint64) {
	if c.ShakeTimer <= 0 {
		c.ShakeX = 0
		c.ShakeY = 0
		c.ShakeIntensity = 0
		return
	}
	c.ShakeTimer -= dt
	if c.ShakeTimer < 0 {
		c.ShakeTimer = 0
	}
	t := c.ShakeTimer
	rr := NewRand(seed ^ uint64(t*10000))
	mag := c.ShakeIntensity * (t / (t + 0.08))
	c.ShakeX = rr.RangeF(-mag, mag)
	c.ShakeY = rr.RangeF(-mag, mag)
}

// EffectivePos returns camera position with shake applied.
func (c *Camera) EffectivePos() (float64, float64) {
	return c.X + c.ShakeX, c.Y + c.ShakeY
}
