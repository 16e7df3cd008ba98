// Package input translates SDL2 events into showroom actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies a translated event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventScreenshot
)

// Event is a translated input event.
type Event struct {
	Type   EventType
	Width  int
	Height int
}

// Bindings maps key scancodes to event types.
type Bindings map[sdl.Scancode]EventType

// DefaultBindings closes on Escape and captures on F12.
func DefaultBindings() Bindings {
	return Bindings{
		sdl.SCANCODE_ESCAPE: EventQuit,
		sdl.SCANCODE_F12:    EventScreenshot,
	}
}

// Input polls SDL events.
type Input struct {
	bindings Bindings
	events   []Event
}

// New creates an input handler with the given key bindings.
func New(bindings Bindings) *Input {
	return &Input{
		bindings: bindings,
		events:   make([]Event, 0, 8),
	}
}

// Update drains the SDL queue. Returns true if the app should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		e, ok := i.Translate(event)
		if !ok {
			continue
		}
		i.events = append(i.events, e)
		if e.Type == EventQuit {
			quit = true
		}
	}
	return quit
}

// Translate converts one SDL event. Key repeats are dropped.
func (i *Input) Translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
			return Event{}, false
		}
		if t, ok := i.bindings[e.Keysym.Scancode]; ok {
			return Event{Type: t}, true
		}
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
