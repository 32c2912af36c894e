package game

// splitmix64 is a fast, high-quality 64-bit mixer.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// blockSeed derives an independent stream seed for block index i.
func blockSeed(seed uint64, i int) uint64 {
	return splitmix64(seed ^ uint64(uint32(i))*0x9E3779B185EBCA87)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// approach moves cur toward target by at most maxDelta without overshooting.
func approach(cur, target, maxDelta float64) float64 {
	if cur < target {
		cur += maxDelta
		if cur > target {
			cur = target
		}
		return cur
	}
	if cur > target {
		cur -= maxDelta
		if cur < target {
			cur = target
		}
	}
	return cur
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Tween linearly eases a value from From to To over Duration seconds.
type Tween struct {
	From, To float64
	Duration float64
	elapsed  float64
	active   bool
}

// Start restarts the tween from the given value.
func (tw *Tween) Start(from, to, duration float64) {
	tw.From = from
	tw.To = to
	tw.Duration = duration
	tw.elapsed = 0
	tw.active = true
}

func (tw *Tween) Stop() { tw.active = false }

func (tw *Tween) Active() bool { return tw.active }

// Advance steps the tween by dt and returns the current value.
func (tw *Tween) Advance(dt float64) float64 {
	if !tw.active {
		return tw.To
	}
	tw.elapsed += dt
	if tw.Duration <= 0 || tw.elapsed >= tw.Duration {
		tw.active = false
		return tw.To
	}
	return lerp(tw.From, tw.To, tw.elapsed/tw.Duration)
}

// Rand is a tiny deterministic RNG (xorshift64*).
type Rand struct {
	s uint64
}

func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = 1
	}
	return &Rand{s: seed}
}

func (r *Rand) NextU64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}

func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.NextU64() % uint64(n))
}

func (r *Rand) Float64() float64 {
	return float64(r.NextU64()>>11) * (1.0 / (1 << 53))
}

func (r *Rand) RangeF(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + (max-min)*r.Float64()
}
