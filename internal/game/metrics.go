package game

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the simulation's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	BlocksGenerated prometheus.Counter
	BlocksEvicted   prometheus.Counter
	WallCollisions  prometheus.Counter
	EnemyHits       prometheus.Counter
	VisibleBlocks   prometheus.Gauge
	VisiblePolygons prometheus.Gauge
	ActiveEnemies   prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg when reg is
// not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BlocksGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roadrush",
			Name:      "blocks_generated_total",
			Help:      "Block definitions produced by the map generator.",
		}),
		BlocksEvicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roadrush",
			Name:      "blocks_evicted_total",
			Help:      "Blocks removed from the visible window after scrolling past the camera.",
		}),
		WallCollisions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roadrush",
			Name:      "wall_collisions_total",
			Help:      "Ticks on which the vehicle touched an off-road polygon.",
		}),
		EnemyHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roadrush",
			Name:      "enemy_hits_total",
			Help:      "Vehicle contacts with enemies.",
		}),
		VisibleBlocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "roadrush",
			Name:      "visible_blocks",
			Help:      "Blocks currently materialised in the window.",
		}),
		VisiblePolygons: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "roadrush",
			Name:      "visible_polygons",
			Help:      "Off-road polygons in the aggregate list.",
		}),
		ActiveEnemies: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "roadrush",
			Name:      "active_enemies",
			Help:      "Enemies currently alive.",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.BlocksGenerated,
			m.BlocksEvicted,
			m.WallCollisions,
			m.EnemyHits,
			m.VisibleBlocks,
			m.VisiblePolygons,
			m.ActiveEnemies,
		)
	}
	return m
}

func (m *Metrics) generated() {
	if m != nil {
		m.BlocksGenerated.Inc()
	}
}

func (m *Metrics) evicted(n int) {
	if m != nil {
		m.BlocksEvicted.Add(float64(n))
	}
}

func (m *Metrics) wallHit() {
	if m != nil {
		m.WallCollisions.Inc()
	}
}

func (m *Metrics) enemyHit() {
	if m != nil {
		m.EnemyHits.Inc()
	}
}

func (m *Metrics) window(blocks, polygons int) {
	if m != nil {
		m.VisibleBlocks.Set(float64(blocks))
		m.VisiblePolygons.Set(float64(polygons))
	}
}

func (m *Metrics) enemies(n int) {
	if m != nil {
		m.ActiveEnemies.Set(float64(n))
	}
}
