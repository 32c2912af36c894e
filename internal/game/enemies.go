package game

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Enemy is a hostile vehicle. Its behaviour is a constant forward velocity;
// the manager only governs its lifecycle.
type Enemy struct {
	ID            uuid.UUID
	X, Y          float64
	VY            float64
	Width, Height float64
	BlockIndex    int // definition index of the block it spawned in

	// Sprite is the host's visual handle, released on removal.
	Sprite Resource
}

func (e *Enemy) Bounds() RectF {
	return RectAround(e.X, e.Y, e.Width, e.Height)
}

// EnemyManager owns the active enemies of one session.
type EnemyManager struct {
	cfg     EnemyConfig
	seed    uint64
	warmup  int
	bus     *EventBus
	metrics *Metrics

	enemies []*Enemy
}

func NewEnemyManager(cfg EnemyConfig, seed uint64, warmup int, bus *EventBus, metrics *Metrics) *EnemyManager {
	return &EnemyManager{
		cfg:     cfg,
		seed:    seed ^ 0xE7E3,
		warmup:  warmup,
		bus:     bus,
		metrics: metrics,
		enemies: make([]*Enemy, 0, 16),
	}
}

// Enemies returns the active enemies. Callers must not modify the slice.
func (m *EnemyManager) Enemies() []*Enemy { return m.enemies }

func (m *EnemyManager) Add(e *Enemy) {
	m.enemies = append(m.enemies, e)
	m.metrics.enemies(len(m.enemies))
}

// Remove drops e by identity and releases its sprite. Removing an enemy that
// is not active is a programming error.
func (m *EnemyManager) Remove(e *Enemy) {
	i := slices.Index(m.enemies, e)
	if i < 0 {
		panic(fmt.Sprintf("enemies: remove of inactive enemy %s", e.ID))
	}
	m.enemies = slices.Delete(m.enemies, i, i+1)
	if e.Sprite != nil {
		e.Sprite.Release()
		e.Sprite = nil
	}
	m.metrics.enemies(len(m.enemies))
	m.bus.Emit(Event{Type: EventEnemyRemoved, X: e.X, Y: e.Y, Enemy: e})
}

// Clear removes every enemy.
func (m *EnemyManager) Clear() {
	for len(m.enemies) > 0 {
		m.Remove(m.enemies[len(m.enemies)-1])
	}
}

// SpawnInBlock places at most one enemy on a random free cell of b. The
// decision depends only on the seed and the block's definition index.
func (m *EnemyManager) SpawnInBlock(b *Block) *Enemy {
	if b.Def.Index < m.warmup || m.cfg.SpawnChance <= 0 {
		return nil
	}
	r := NewRand(blockSeed(m.seed, b.Def.Index))
	if r.Float64() >= m.cfg.SpawnChance {
		return nil
	}

	type cell struct{ r, c int }
	var free []cell
	for ri, row := range b.FreeSpace() {
		for c := 0; c < b.Def.Columns; c++ {
			if row.Free(c) {
				free = append(free, cell{r: ri, c: c})
			}
		}
	}
	if len(free) == 0 {
		return nil
	}
	pick := free[r.Intn(len(free))]
	at := b.CellCenter(pick.r, pick.c)

	e := &Enemy{
		ID:         uuid.New(),
		X:          at.X,
		Y:          at.Y,
		VY:         m.cfg.Velocity,
		Width:      m.cfg.Width,
		Height:     m.cfg.Height,
		BlockIndex: b.Def.Index,
	}
	m.Add(e)
	return e
}

// Update moves every enemy by its velocity.
func (m *EnemyManager) Update(dt float64) {
	for _, e := range m.enemies {
		e.Y += e.VY * dt
	}
}

// Cull removes enemies that fell more than EnemyCullMargin below the view.
func (m *EnemyManager) Cull(view RectF) int {
	var gone []*Enemy
	for _, e := range m.enemies {
		if e.Y-e.Height/2 > view.Y1+EnemyCullMargin {
			gone = append(gone, e)
		}
	}
	for _, e := range gone {
		m.Remove(e)
	}
	return len(gone)
}

// Hit returns the first enemy overlapping r, or nil.
func (m *EnemyManager) Hit(r RectF) *Enemy {
	for _, e := range m.enemies {
		if e.Bounds().Intersects(r) {
			return e
		}
	}
	return nil
}
