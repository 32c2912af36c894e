package game

// World defaults (in world units). Y grows downward and the vehicle drives
// toward negative Y, so "ahead" means a smaller Y.
const (
	WorldWidth     = 480
	WorldBottom    = 1250 * 100
	ViewportWidth  = 480
	ViewportHeight = 800
)

// Block grid. A row never has more than MaxColumns cells so it fits a RowMask.
const (
	BlockColumns   = 6
	BlockRows      = 10
	MaxColumns     = 8
	MinCorridor    = 2
	WarmupBlocks   = 2
	IslandChance   = 0.08
	PrimedBlocks   = 11
	CoverageMargin = 100.0
)

// Vehicle envelope defaults (units per second, steps per tick).
const (
	InitialVelocity = -1000.0
	MaxVelocity     = -1500.0
	MinVelocity     = -500.0
	TurnVelocity    = 30.0
	Acceleration    = 10.0
	Deceleration    = 15.0

	VehicleWidth  = 40.0
	VehicleHeight = 70.0
)

// Steering.
const (
	TiltMax          = 0.2  // rad
	TiltStep         = 0.02 // rad per tick
	TurnLimitFactor  = 20.0 // |vx| <= TurnLimitFactor*turnVelocity
	TurnDecayFactor  = 1.75
	UprightTweenTime = 0.1 // seconds
)

// Camera.
const (
	CameraLeadFactor  = 0.75 // player sits this far down the viewport
	CameraLerpFactor  = 0.1
	CameraLerpScale   = 5.0
	WallShakeFraction = 0.005
	WallShakeDuration = 0.1
)

// Enemies.
const (
	EnemySpawnChance = 0.35
	EnemyVelocity    = -400.0
	EnemyWidth       = 40.0
	EnemyHeight      = 70.0
	EnemySlowdown    = 75.0
	EnemyCullMargin  = 200.0
)

// Spatial index.
const (
	QuadCapacity = 16
	QuadMaxDepth = 8
)
