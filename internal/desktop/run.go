// Package desktop hosts a game.Session in a GLFW window with an OpenGL
// renderer and oto audio.
package desktop

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"roadrush/internal/game"
	"roadrush/internal/logging"
)

// Run opens the window and drives one session until the window closes.
func Run(settings game.Settings) error {
	runtime.LockOSThread()

	if settings.Seed == 0 {
		settings.Seed = uint64(time.Now().UnixNano())
		logging.LogInfo("desktop: no seed configured, using %d", settings.Seed)
	}

	window, err := initWindow(settings.Window)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	var audio *Audio
	if settings.Audio.Enabled {
		if audio, err = InitAudio(settings.Audio); err != nil {
			logging.LogWarn("audio init failed (continuing without sound): %v", err)
			audio = nil
		}
	}

	reg := newRegistry()
	if settings.Metrics.Addr != "" {
		stop := serveMetrics(settings.Metrics.Addr, reg)
		defer stop()
	}

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	session := game.NewSession(settings, reg)
	audio.Attach(session.Bus)
	session.Bus.Subscribe(game.EventHalted, func(game.Event) {
		window.SetTitle(settings.Window.Title + " (halted)")
	})
	if err := session.Create(); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	defer func() {
		for _, b := range session.Window.Blocks() {
			b.Destroy()
		}
		session.Enemies.Clear()
	}()

	input := NewInput()
	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.1 {
			dt = 0.1
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		session.Tick(input.Controls(window), dt)
		rend.Draw(session, fbW, fbH)
		window.SwapBuffers()
	}

	logging.LogInfo("desktop: closed after %d ticks, state %s", session.Ticks, session.State)
	return session.Err
}
