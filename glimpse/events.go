package glimpse

import (
	"fmt"
	"slices"
)

type Event interface {
	isEvent()
}

// CloseRequested is emitted when the user asks to close the window.
type CloseRequested struct{}

// Resized carries the new framebuffer size. Either dimension
// might be zero, e.g. if the window was minimized.
type Resized struct {
	Width, Height uint32
}

// RedrawRequested is emitted at most once per iteration of the event loop,
// after all pending os events were delivered.
type RedrawRequested struct{}

type KeyboardInput struct {
	Key     Key
	Pressed bool
}

type CursorMoved struct {
	X, Y float32
}

type MouseInput struct {
	Button  MouseButton
	Pressed bool
}

type Focused struct {
	Focused bool
}

func (CloseRequested) isEvent()  {}
func (Resized) isEvent()         {}
func (RedrawRequested) isEvent() {}
func (KeyboardInput) isEvent()   {}
func (CursorMoved) isEvent()     {}
func (MouseInput) isEvent()      {}
func (Focused) isEvent()         {}

func (r Resized) String() string {
	return fmt.Sprintf("Resized(%dx%d)", r.Width, r.Height)
}

// EventQueue collects events from the window callbacks until
// the event loop drains them.
type EventQueue struct {
	events []Event
}

func (q *EventQueue) Push(event Event) {
	q.events = append(q.events, event)
}

// Drain returns the queued events in order and resets the queue.
// The returned slice is only valid until the next call to Push.
func (q *EventQueue) Drain() []Event {
	events := q.events
	q.events = q.events[:0]
	return events
}

// DispatchFrame runs one iteration of an event loop: it delivers the queued
// events in order, followed by a RedrawRequested unless the events already
// contained one. Delivery stops at the first event that requests an exit or fails.
func DispatchFrame(handler Handler, events []Event) (ControlFlow, error) {
	flow, err := dispatch(handler, events)
	if err != nil || flow == ControlFlowExit {
		return flow, err
	}

	if slices.ContainsFunc(events, isRedraw) {
		return ControlFlowContinue, nil
	}

	return dispatch(handler, []Event{RedrawRequested{}})
}

func isRedraw(event Event) bool {
	_, ok := event.(RedrawRequested)
	return ok
}

// dispatch delivers events to the handler in order, stopping at the first
// event that requests an exit or fails.
func dispatch(handler Handler, events []Event) (ControlFlow, error) {
	for _, event := range events {
		flow, err := handler(event)
		if err != nil {
			return ControlFlowExit, err
		}

		if flow == ControlFlowExit {
			return ControlFlowExit, nil
		}
	}

	return ControlFlowContinue, nil
}
