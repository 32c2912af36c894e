package desktop

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"roadrush/internal/game"
	"roadrush/internal/logging"
	"roadrush/internal/sfx"
)

// Audio plays procedural effects in response to session events.
type Audio struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64

	// At most one scrape plays at a time; a wall contact emits every tick.
	activeScrapes int32
	variant       uint64
}

// InitAudio opens the output device.
func InitAudio(cfg game.AudioConfig) (*Audio, error) {
	ctx, ready, err := oto.NewContext(sfx.SampleRate, sfx.ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, err
	}
	return &Audio{ctx: ctx, ready: ready, volume: clamp01(cfg.SFXVolume)}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Attach subscribes the effects to bus. A nil Audio attaches nothing.
func (a *Audio) Attach(bus *game.EventBus) {
	if a == nil {
		return
	}
	bus.Subscribe(game.EventWallHit, func(game.Event) { a.Play(sfx.WallScrape) })
	bus.Subscribe(game.EventEnemyHit, func(game.Event) { a.Play(sfx.Crash) })
	bus.Subscribe(game.EventHalted, func(game.Event) { a.Play(sfx.Halt) })
	bus.Subscribe(game.EventPaused, func(game.Event) { a.Play(sfx.Pause) })
	bus.Subscribe(game.EventResumed, func(game.Event) { a.Play(sfx.Resume) })
}

// Play starts kind on its own player and returns immediately.
func (a *Audio) Play(kind sfx.Kind) {
	if a == nil || a.volume <= 0 {
		return
	}
	select {
	case <-a.ready:
	default:
		return
	}
	if kind == sfx.WallScrape {
		if !atomic.CompareAndSwapInt32(&a.activeScrapes, 0, 1) {
			return
		}
	}
	samples := sfx.Generate(kind, atomic.AddUint64(&a.variant, 1))
	if len(samples) == 0 {
		if kind == sfx.WallScrape {
			atomic.StoreInt32(&a.activeScrapes, 0)
		}
		return
	}
	logging.LogTrace("audio: %s", kind)
	go func() {
		if kind == sfx.WallScrape {
			defer atomic.StoreInt32(&a.activeScrapes, 0)
		}
		player := a.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(a.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
