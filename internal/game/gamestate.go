package game

import (
	"github.com/prometheus/client_golang/prometheus"

	"roadrush/internal/logging"
)

type GameState int

const (
	StateIdle    GameState = iota // constructed, Create not yet run
	StatePlaying                  // ticking
	StatePaused                   // toggled by the player
	StateHalted                   // stopped after a fatal logic error
)

func (s GameState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateHalted:
		return "halted"
	}
	return "unknown"
}

// Session is one run of the game: the generator, the streamed block window,
// the player's vehicle, the camera and the enemies, all driven by one
// single-threaded tick.
type Session struct {
	Settings Settings
	State    GameState
	Err      error // set when the session halted

	Bus     *EventBus
	Metrics *Metrics

	Source    MapSource
	Window    *BlockWindow
	Vehicle   *VehicleController
	Camera    *Camera
	Collision *CollisionResolver
	Enemies   *EnemyManager

	Ticks uint64
}

// NewSession builds a session around a seeded MapGenerator primed with
// PrimedBlocks definitions. reg may be nil.
func NewSession(settings Settings, reg prometheus.Registerer) *Session {
	metrics := NewMetrics(reg)
	gen := NewMapGenerator(settings.Seed, settings.World)
	for i := 0; i < PrimedBlocks; i++ {
		gen.GenerateNext()
		metrics.generated()
	}
	return newSession(settings, gen, metrics)
}

// NewSessionWithSource builds a session around an arbitrary map source.
func NewSessionWithSource(settings Settings, source MapSource, reg prometheus.Registerer) *Session {
	return newSession(settings, source, NewMetrics(reg))
}

func newSession(settings Settings, source MapSource, metrics *Metrics) *Session {
	bus := NewEventBus()
	cam := NewCamera(settings.World)
	window := NewBlockWindow(source, settings.World, bus, metrics)
	s := &Session{
		Settings:  settings,
		State:     StateIdle,
		Bus:       bus,
		Metrics:   metrics,
		Source:    source,
		Window:    window,
		Vehicle:   NewVehicleController(settings.Player, settings.World.Width),
		Camera:    cam,
		Collision: NewCollisionResolver(window, cam, bus),
		Enemies:   NewEnemyManager(settings.Enemies, settings.Seed, settings.World.WarmupBlocks, bus, metrics),
	}
	bus.Subscribe(EventBlockAdded, func(e Event) {
		if e.Block != nil {
			s.Enemies.SpawnInBlock(e.Block)
		}
	})
	return s
}

// Create spawns the player and fills the window without eviction.
func (s *Session) Create() error {
	w := s.Settings.World
	s.Vehicle.Spawn(w.Width/2, w.Bottom-w.ViewportHeight/2)
	s.Camera.Track(s.Vehicle.State, s.Settings.Player)
	if _, err := s.Window.Fill(s.Camera.View(), false); err != nil {
		s.halt(err)
		return err
	}
	s.State = StatePlaying
	logging.LogInfo("session: created with seed %d, %d blocks visible", s.Settings.Seed, len(s.Window.Blocks()))
	return nil
}

// TogglePause flips between playing and paused. Halted sessions stay halted.
func (s *Session) TogglePause() {
	switch s.State {
	case StatePlaying:
		s.State = StatePaused
		s.Bus.Emit(Event{Type: EventPaused})
	case StatePaused:
		s.State = StatePlaying
		s.Bus.Emit(Event{Type: EventResumed})
	default:
		return
	}
	logging.LogInfo("session: %s", s.State)
}

// Tick runs one frame: streaming first, then motion, collision and camera.
// A paused or halted session does nothing beyond handling the pause edge.
func (s *Session) Tick(in Controls, dt float64) {
	if in.Pause {
		s.TogglePause()
	}
	if s.State != StatePlaying {
		return
	}
	if err := s.Stream(); err != nil {
		return
	}
	s.Update(in, dt)
}

// Stream is the render-pass hook: coverage plus eviction. Only Create fills
// without cleanup; every later pass evicts the blocks left below the view.
func (s *Session) Stream() error {
	if s.State != StatePlaying {
		return nil
	}
	view := s.Camera.View()
	if _, err := s.Window.Fill(view, true); err != nil {
		s.halt(err)
		return err
	}
	if s.Settings.Debug {
		if err := s.Window.CheckInvariants(view); err != nil {
			panic(err)
		}
	}
	return nil
}

// Update is the per-tick motion hook. Collision is tested against the pose
// the vehicle held at the start of the tick, before integration.
func (s *Session) Update(in Controls, dt float64) {
	if s.State != StatePlaying {
		return
	}
	v := s.Vehicle
	v.Steer(in, dt)

	if s.Collision.Resolve(v) {
		s.Metrics.wallHit()
	}
	s.resolveEnemyHit()

	v.Integrate(dt)
	s.Enemies.Update(dt)

	s.Camera.Track(v.State, s.Settings.Player)
	s.Enemies.Cull(s.Camera.View())
	s.Camera.UpdateShake(dt, s.Settings.Seed^s.Ticks)
	s.Ticks++
}

func (s *Session) resolveEnemyHit() {
	st := &s.Vehicle.State
	if e := s.Enemies.Hit(s.Vehicle.Bounds()); e != nil {
		st.Collided = true
		st.SlowdownVelocity = s.Settings.Enemies.Slowdown
		s.Metrics.enemyHit()
		s.Bus.Emit(Event{Type: EventEnemyHit, X: e.X, Y: e.Y, Enemy: e})
		logging.LogDebug("session: enemy %s hit at (%.0f, %.0f)", e.ID, e.X, e.Y)
		s.Enemies.Remove(e)
	}
	if st.SlowdownVelocity > 0 {
		s.Vehicle.Brake(st.SlowdownVelocity)
		st.SlowdownVelocity = 0
	}
}

// halt stops the simulation rather than continue with a corrupt window.
// In debug mode the error is raised as a panic instead.
func (s *Session) halt(err error) {
	if s.Settings.Debug {
		panic(err)
	}
	s.State = StateHalted
	s.Err = err
	logging.LogError("session: halted: %v", err)
	s.Bus.Emit(Event{Type: EventHalted})
}
