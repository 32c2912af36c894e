// Package sfx synthesises the game's sound effects as interleaved stereo
// float32 little-endian PCM. It has no audio device dependency; the desktop
// host feeds the buffers to its player.
package sfx

import "math"

const (
	SampleRate   = 44100
	ChannelCount = 2
	frameBytes   = 8
)

// Kind identifies a sound effect.
type Kind int

const (
	WallScrape Kind = iota
	Crash
	Halt
	Pause
	Resume
)

func (k Kind) String() string {
	switch k {
	case WallScrape:
		return "wall-scrape"
	case Crash:
		return "crash"
	case Halt:
		return "halt"
	case Pause:
		return "pause"
	case Resume:
		return "resume"
	}
	return "unknown"
}

// Generate renders one effect. seed only varies noise texture.
func Generate(kind Kind, seed uint64) []byte {
	switch kind {
	case WallScrape:
		return genScrape(seed)
	case Crash:
		return genCrash(seed)
	case Halt:
		return genHalt()
	case Pause:
		return genBlip(1100, 550)
	case Resume:
		return genBlip(550, 1100)
	}
	return nil
}

// Frames returns the number of stereo frames in buf.
func Frames(buf []byte) int { return len(buf) / frameBytes }

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for ch := 0; ch < ChannelCount; ch++ {
		o := i*frameBytes + ch*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

// softSat applies gentle tanh-like saturation, never clipping past ±1.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(n int) []byte { return make([]byte, n*frameBytes) }

// genScrape: short band-limited grind, tyres on gravel.
func genScrape(seed uint64) []byte {
	n := int(0.14 * SampleRate)
	buf := makeBuf(n)
	s := seed | 1
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.05, 0.3, 0.5, 0.4)
		lp += (lcg(&s) - lp) * 0.22
		grit := lp * 0.55
		rumble := math.Sin(2*math.Pi*(70+30*math.Sin(2*math.Pi*18*t))*t) * 0.25
		putStereoF32(buf, i, softSat((grit+rumble)*env))
	}
	return buf
}

// genCrash: low FM thump over a noise burst.
func genCrash(seed uint64) []byte {
	n := int(0.32 * SampleRate)
	buf := makeBuf(n)
	s := seed | 1
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.45, 0.15, 0.4)
		freq := 180 - 120*p
		v := fm(t, freq, 1.5, 3.2*(1-p)) * env * 0.5
		v += lcg(&s) * env * (1 - p) * 0.35
		putStereoF32(buf, i, softSat(v))
	}
	return buf
}

// genHalt: slow descending minor chord, staggered.
func genHalt() []byte {
	n := int(0.75 * SampleRate)
	notes := []struct{ freq, onset float64 }{
		{329.63, 0.00}, // E4
		{261.63, 0.14}, // C4
		{220.00, 0.28}, // A3
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.008, 0.25, 0.3, 0.45)
			freq := note.freq * (1 - np*0.025)
			v := fm(t, freq, 2.0, 2.0*env) * env * 0.32
			v += math.Sin(2*math.Pi*freq*0.5*t) * env * 0.1
			mix[i] += v
		}
	}
	buf := makeBuf(n)
	for i, v := range mix {
		putStereoF32(buf, i, softSat(v))
	}
	return buf
}

// genBlip: crisp click sweeping from one pitch to another.
func genBlip(from, to float64) []byte {
	n := SampleRate * 65 / 1000
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0.0, 0.1)
		freq := from + (to-from)*p
		putStereoF32(buf, i, softSat(fm(t, freq, 1.0, 0.6)*env*0.38))
	}
	return buf
}
