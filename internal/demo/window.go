// Package demo is the host collaborator for the stateset library: it
// builds named states from configuration, wires scene objects and event
// buses to them, and drives the manager from an SDL2 frame loop.
package demo

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Window wraps the SDL2 window and OpenGL context.
type Window struct {
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	width     int
	height    int
}

// NewWindow creates a window with an OpenGL 4.1 core context.
func NewWindow(title string, width, height int, vsync bool) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Attributes must be set before the window exists.
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	win, err := sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(width),
		int32(height),
		sdl.WINDOW_OPENGL,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	ctx, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if err := gl.Init(); err != nil {
		sdl.GLDeleteContext(ctx)
		win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("OpenGL init failed: %w", err)
	}

	if vsync {
		sdl.GLSetSwapInterval(1)
	} else {
		sdl.GLSetSwapInterval(0)
	}

	return &Window{
		sdlWindow: win,
		glContext: ctx,
		width:     width,
		height:    height,
	}, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}
	sdl.Quit()
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// Size returns the window size.
func (w *Window) Size() (int, int) {
	return w.width, w.height
}

// PollKeys drains the SDL event queue and returns the scancodes pressed
// this frame. quit reports whether a quit event arrived.
func PollKeys() (keys []sdl.Scancode, quit bool) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				keys = append(keys, e.Keysym.Scancode)
			}
		}
	}
	return keys, quit
}
