package game

import "math"

// Controls are the held-direction signals for one tick. Pause is an edge:
// true only on the tick the toggle was pressed.
type Controls struct {
	Left, Right bool
	Up, Down    bool
	Pause       bool
}

// VehicleState is the player's pose and motion. It is plain data so any
// physics host can mirror it onto its own body.
type VehicleState struct {
	X, Y     float64
	Rotation float64
	VX, VY   float64

	Collided         bool
	SlowdownVelocity float64
}

// VehicleController owns the player's VehicleState and applies the
// acceleration, steering and relaxation envelopes once per tick.
type VehicleController struct {
	State  VehicleState
	Config PlayerConfig

	minX, maxX float64
	upright    Tween
}

func NewVehicleController(cfg PlayerConfig, worldWidth float64) *VehicleController {
	return &VehicleController{
		Config: cfg,
		minX:   cfg.Width / 2,
		maxX:   worldWidth - cfg.Width/2,
	}
}

// Spawn places the vehicle upright at (x, y) cruising at InitialVelocity.
func (v *VehicleController) Spawn(x, y float64) {
	v.State = VehicleState{X: x, Y: y, VY: v.Config.InitialVelocity}
	v.upright.Stop()
}

// Steer applies one tick of input to rotation and velocity. Left wins when
// both lateral keys are held, Up wins over Down. Lateral and longitudinal
// input compose.
func (v *VehicleController) Steer(in Controls, dt float64) {
	cfg := v.Config
	s := &v.State
	turnLimit := cfg.TurnVelocity * TurnLimitFactor

	switch {
	case in.Left:
		v.upright.Stop()
		s.Rotation = clampF(s.Rotation-TiltStep, -TiltMax, 0)
		if s.VX > 0 {
			s.VX = 0
		}
		s.VX = clampF(s.VX-cfg.TurnVelocity, -turnLimit, 0)
	case in.Right:
		v.upright.Stop()
		s.Rotation = clampF(s.Rotation+TiltStep, 0, TiltMax)
		if s.VX < 0 {
			s.VX = 0
		}
		s.VX = clampF(s.VX+cfg.TurnVelocity, 0, turnLimit)
	default:
		s.VX = approach(s.VX, 0, cfg.TurnVelocity*TurnDecayFactor)
		if s.Rotation != 0 && !v.upright.Active() {
			v.upright.Start(s.Rotation, 0, UprightTweenTime)
		}
		if v.upright.Active() {
			s.Rotation = v.upright.Advance(dt)
		}
	}

	switch {
	case in.Up:
		s.VY = math.Max(s.VY-cfg.Acceleration, cfg.MaxVelocity)
	case in.Down:
		s.VY = math.Min(s.VY+cfg.Deceleration, cfg.MinVelocity)
	default:
		s.VY = approach(s.VY, cfg.InitialVelocity, cfg.Acceleration)
	}
}

// Integrate advances the position by dt seconds and keeps the vehicle
// inside the world's width.
func (v *VehicleController) Integrate(dt float64) {
	s := &v.State
	s.X += s.VX * dt
	s.Y += s.VY * dt
	if s.X < v.minX {
		s.X = v.minX
		s.VX = 0
	} else if s.X > v.maxX {
		s.X = v.maxX
		s.VX = 0
	}
}

// Brake pulls VY toward MinVelocity by step, never past it.
func (v *VehicleController) Brake(step float64) {
	v.State.VY = math.Min(v.State.VY+step, v.Config.MinVelocity)
}

// Bounds returns the vehicle's axis-aligned extent.
func (v *VehicleController) Bounds() RectF {
	return RectAround(v.State.X, v.State.Y, v.Config.Width, v.Config.Height)
}

// ProbePoints returns the three points tested against off-road polygons:
// the centre, the top-left corner and the bottom-right corner.
func (v *VehicleController) ProbePoints() [3]Point {
	s := v.State
	hw, hh := v.Config.Width/2, v.Config.Height/2
	return [3]Point{
		{X: s.X, Y: s.Y},
		{X: s.X - hw, Y: s.Y - hh},
		{X: s.X + hw, Y: s.Y + hh},
	}
}
