package game

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSettings wraps every validation failure from Settings.Validate.
var ErrInvalidSettings = errors.New("invalid settings")

// PlayerConfig is the vehicle's velocity envelope. Velocities are negative
// because the vehicle drives toward smaller Y; MaxVelocity is the fastest
// (most negative) and MinVelocity the slowest forward speed.
type PlayerConfig struct {
	InitialVelocity float64 `yaml:"initial_velocity"`
	MaxVelocity     float64 `yaml:"max_velocity"`
	MinVelocity     float64 `yaml:"min_velocity"`
	TurnVelocity    float64 `yaml:"turn_velocity"`
	Acceleration    float64 `yaml:"acceleration"`
	Deceleration    float64 `yaml:"deceleration"`
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
}

type WorldConfig struct {
	Width          float64 `yaml:"width"`
	Bottom         float64 `yaml:"bottom"`
	ViewportWidth  float64 `yaml:"viewport_width"`
	ViewportHeight float64 `yaml:"viewport_height"`
	Columns        int     `yaml:"columns"`
	RowsPerBlock   int     `yaml:"rows_per_block"`
	CoverageMargin float64 `yaml:"coverage_margin"`
	WarmupBlocks   int     `yaml:"warmup_blocks"`
	IslandChance   float64 `yaml:"island_chance"`
}

// CellSize is the edge length of one free-space cell.
func (w WorldConfig) CellSize() float64 {
	return w.Width / float64(w.Columns)
}

type EnemyConfig struct {
	SpawnChance float64 `yaml:"spawn_chance"`
	Velocity    float64 `yaml:"velocity"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Slowdown    float64 `yaml:"slowdown_velocity"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type AudioConfig struct {
	Enabled   bool    `yaml:"enabled"`
	SFXVolume float64 `yaml:"sfx_volume"`
}

type MetricsConfig struct {
	// Addr is the listen address for the Prometheus endpoint; empty disables it.
	Addr string `yaml:"addr"`
}

// Settings is the full runtime configuration of one session and its host.
type Settings struct {
	// Seed drives all generation. The desktop host replaces 0 with a
	// clock-derived seed and logs it.
	Seed     uint64        `yaml:"seed"`
	Player   PlayerConfig  `yaml:"player"`
	World    WorldConfig   `yaml:"world"`
	Enemies  EnemyConfig   `yaml:"enemies"`
	Window   WindowConfig  `yaml:"window"`
	Audio    AudioConfig   `yaml:"audio"`
	Metrics  MetricsConfig `yaml:"metrics"`
	LogLevel string        `yaml:"log_level"`
	LogDir   string        `yaml:"log_dir"`
	// Debug turns fatal invariant violations into panics instead of a halt.
	Debug bool `yaml:"debug"`
}

func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		InitialVelocity: InitialVelocity,
		MaxVelocity:     MaxVelocity,
		MinVelocity:     MinVelocity,
		TurnVelocity:    TurnVelocity,
		Acceleration:    Acceleration,
		Deceleration:    Deceleration,
		Width:           VehicleWidth,
		Height:          VehicleHeight,
	}
}

func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Width:          WorldWidth,
		Bottom:         WorldBottom,
		ViewportWidth:  ViewportWidth,
		ViewportHeight: ViewportHeight,
		Columns:        BlockColumns,
		RowsPerBlock:   BlockRows,
		CoverageMargin: CoverageMargin,
		WarmupBlocks:   WarmupBlocks,
		IslandChance:   IslandChance,
	}
}

func DefaultSettings() Settings {
	return Settings{
		Player: DefaultPlayerConfig(),
		World:  DefaultWorldConfig(),
		Enemies: EnemyConfig{
			SpawnChance: EnemySpawnChance,
			Velocity:    EnemyVelocity,
			Width:       EnemyWidth,
			Height:      EnemyHeight,
			Slowdown:    EnemySlowdown,
		},
		Window: WindowConfig{
			Width:  ViewportWidth,
			Height: ViewportHeight,
			Title:  "Road Rush",
		},
		Audio:    AudioConfig{Enabled: true, SFXVolume: 0.58},
		LogLevel: "info",
	}
}

// LoadSettings reads YAML settings on top of DefaultSettings.
// An empty path falls back to ROADRUSH_CONFIG; with neither set the
// defaults are returned. ROADRUSH_SEED overrides the seed in every case.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		path = os.Getenv("ROADRUSH_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return s, fmt.Errorf("read settings: %w", err)
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("parse settings %s: %w", path, err)
		}
	}
	if v := os.Getenv("ROADRUSH_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return s, fmt.Errorf("ROADRUSH_SEED: %w", err)
		}
		s.Seed = seed
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate checks that the envelopes are ordered and the grid fits a RowMask.
func (s Settings) Validate() error {
	p := s.Player
	if !(p.MaxVelocity <= p.InitialVelocity && p.InitialVelocity <= p.MinVelocity) {
		return fmt.Errorf("%w: need max_velocity <= initial_velocity <= min_velocity, got %v/%v/%v",
			ErrInvalidSettings, p.MaxVelocity, p.InitialVelocity, p.MinVelocity)
	}
	if p.Acceleration <= 0 || p.Deceleration <= 0 || p.TurnVelocity <= 0 {
		return fmt.Errorf("%w: acceleration, deceleration and turn_velocity must be positive", ErrInvalidSettings)
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: vehicle size must be positive", ErrInvalidSettings)
	}
	w := s.World
	if w.Columns < MinCorridor || w.Columns > MaxColumns {
		return fmt.Errorf("%w: columns must be in [%d, %d], got %d", ErrInvalidSettings, MinCorridor, MaxColumns, w.Columns)
	}
	if w.RowsPerBlock <= 0 {
		return fmt.Errorf("%w: rows_per_block must be positive", ErrInvalidSettings)
	}
	if w.Width <= 0 || w.ViewportWidth <= 0 || w.ViewportHeight <= 0 {
		return fmt.Errorf("%w: world and viewport sizes must be positive", ErrInvalidSettings)
	}
	if w.CoverageMargin < 0 {
		return fmt.Errorf("%w: coverage_margin must not be negative", ErrInvalidSettings)
	}
	if s.Enemies.SpawnChance < 0 || s.Enemies.SpawnChance > 1 {
		return fmt.Errorf("%w: enemies.spawn_chance must be in [0, 1]", ErrInvalidSettings)
	}
	return nil
}
