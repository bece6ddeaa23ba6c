package demo

import "github.com/go-gl/gl/v4.1-core/gl"

// Color is an RGB color with components in [0, 1].
type Color struct {
	R, G, B float32
}

// Actor is a colored screen rectangle. Its visibility is driven by the
// state manager through the stateset.Activatable contract.
type Actor struct {
	Name  string
	X, Y  int32
	W, H  int32
	Color Color

	visible   bool
	destroyed bool
}

// NewActor creates a hidden, live actor.
func NewActor(name string, x, y, w, h int32, c Color) *Actor {
	return &Actor{Name: name, X: x, Y: y, W: w, H: h, Color: c}
}

// SetActive shows or hides the actor.
func (a *Actor) SetActive(active bool) {
	a.visible = active
}

// Alive reports whether the actor still exists.
func (a *Actor) Alive() bool {
	return !a.destroyed
}

// Visible reports whether the actor is currently shown.
func (a *Actor) Visible() bool {
	return a.visible
}

// Destroy marks the actor dead and hides it. State wiring attached to a
// dead actor detaches itself on the next transition.
func (a *Actor) Destroy() {
	a.destroyed = true
	a.visible = false
}

// Draw paints the actor as a scissored color clear.
func (a *Actor) Draw() {
	if a.destroyed || !a.visible {
		return
	}
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(a.X, a.Y, a.W, a.H)
	gl.ClearColor(a.Color.R, a.Color.G, a.Color.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Disable(gl.SCISSOR_TEST)
}
