package game

import (
	"fmt"
	"math"
	"math/bits"
	"strings"

	"github.com/aquilax/go-perlin"
)

// RowMask is one free-space row: bit c set means cell c is drivable.
type RowMask uint8

// Free reports whether cell c is drivable.
func (m RowMask) Free(c int) bool {
	return c >= 0 && c < MaxColumns && m&(1<<uint(c)) != 0
}

// FreeCount returns the number of drivable cells.
func (m RowMask) FreeCount() int {
	return bits.OnesCount8(uint8(m))
}

// Format renders the row as '.' for free and '#' for wall cells.
func (m RowMask) Format(columns int) string {
	var sb strings.Builder
	for c := 0; c < columns; c++ {
		if m.Free(c) {
			sb.WriteByte('.')
		} else {
			sb.WriteByte('#')
		}
	}
	return sb.String()
}

func spanMask(left, right int) RowMask {
	var m RowMask
	for c := left; c < right; c++ {
		m |= 1 << uint(c)
	}
	return m
}

// BlockDefinition is the immutable terrain layout of one block. Rows are
// stored top to bottom.
type BlockDefinition struct {
	Index   int
	Columns int
	Rows    []RowMask
}

// MapSource is what BlockWindow pulls definitions from.
type MapSource interface {
	GenerateNext()
	Len() int
	At(i int) BlockDefinition
}

// Noise sampling. Perlin returns 0 on integer lattice points, so rows are
// sampled at a non-integer stride.
const (
	driftFreq  = 0.113
	widthFreq  = 0.071
	widthPlane = 7.5
)

// MapGenerator produces an unbounded, append-only sequence of block
// definitions. The corridor is generated bottom-up one row at a time so each
// block connects to the previous one. Output depends only on the seed.
type MapGenerator struct {
	columns int
	rows    int
	warmup  int
	islands float64

	noise *perlin.Perlin
	rng   *Rand

	maps []BlockDefinition

	row         int // global row counter, increases upward
	left, right int // corridor of the most recently generated (topmost) row
}

func NewMapGenerator(seed uint64, cfg WorldConfig) *MapGenerator {
	left := (cfg.Columns - MinCorridor*2) / 2
	if left < 0 {
		left = 0
	}
	right := cfg.Columns - left
	return &MapGenerator{
		columns: cfg.Columns,
		rows:    cfg.RowsPerBlock,
		warmup:  cfg.WarmupBlocks,
		islands: cfg.IslandChance,
		noise:   perlin.NewPerlin(2, 2, 3, int64(seed)),
		rng:     NewRand(seed ^ 0x15A7D5),
		maps:    make([]BlockDefinition, 0, 64),
		left:    left,
		right:   right,
	}
}

func (g *MapGenerator) Len() int { return len(g.maps) }

// At returns the i-th generated definition. Asking for a definition that was
// never generated is a programming error.
func (g *MapGenerator) At(i int) BlockDefinition {
	if i < 0 || i >= len(g.maps) {
		panic(fmt.Sprintf("mapgen: definition %d requested but only %d generated", i, len(g.maps)))
	}
	return g.maps[i]
}

// GenerateNext appends exactly one definition.
func (g *MapGenerator) GenerateNext() {
	idx := len(g.maps)
	rows := make([]RowMask, g.rows)
	warm := idx < g.warmup

	for r := g.rows - 1; r >= 0; r-- {
		if warm {
			rows[r] = spanMask(g.left, g.right)
		} else {
			g.step()
			rows[r] = spanMask(g.left, g.right)
			// Islands never sit on a block's edge rows so seams stay open.
			if r > 0 && r < g.rows-1 && g.right-g.left >= 4 && g.rng.Float64() < g.islands {
				mid := g.left + (g.right-g.left)/2
				rows[r] &^= 1 << uint(mid)
			}
		}
		g.row++
	}

	g.maps = append(g.maps, BlockDefinition{Index: idx, Columns: g.columns, Rows: rows})
}

// step advances the corridor by one row. Each edge moves at most one cell so
// consecutive rows always share a free cell.
func (g *MapGenerator) step() {
	y := float64(g.row)
	drift := g.noise.Noise2D(y*driftFreq, 0.5)
	spread := g.noise.Noise2D(y*widthFreq, widthPlane)

	maxWidth := g.columns - 1
	if maxWidth < MinCorridor {
		maxWidth = MinCorridor
	}
	width := MinCorridor + int(math.Round((spread+1)*0.5*float64(maxWidth-MinCorridor)))
	width = clamp(width, MinCorridor, maxWidth)

	center := float64(g.columns)*0.5 + drift*float64(g.columns)
	targetLeft := clamp(int(math.Round(center-float64(width)*0.5)), 0, g.columns-width)
	targetRight := targetLeft + width

	left := g.left + clamp(targetLeft-g.left, -1, 1)
	right := g.right + clamp(targetRight-g.right, -1, 1)

	left = clamp(left, 0, g.columns-MinCorridor)
	if right < left+MinCorridor {
		right = left + MinCorridor
	}
	if right > g.columns {
		right = g.columns
		left = right - MinCorridor
	}
	g.left, g.right = left, right
}
