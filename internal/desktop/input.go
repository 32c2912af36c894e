package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"roadrush/internal/game"
)

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

func held(window *glfw.Window, keys ...glfw.Key) bool {
	for _, k := range keys {
		if window.GetKey(k) == glfw.Press {
			return true
		}
	}
	return false
}

// Controls samples the keyboard for one tick. Arrows and WASD steer;
// space or P toggles pause once per press.
func (in *Input) Controls(window *glfw.Window) game.Controls {
	space := in.JustPressed(window, glfw.KeySpace)
	p := in.JustPressed(window, glfw.KeyP)
	return game.Controls{
		Left:  held(window, glfw.KeyLeft, glfw.KeyA),
		Right: held(window, glfw.KeyRight, glfw.KeyD),
		Up:    held(window, glfw.KeyUp, glfw.KeyW),
		Down:  held(window, glfw.KeyDown, glfw.KeyS),
		Pause: space || p,
	}
}
