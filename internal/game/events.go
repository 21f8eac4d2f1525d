package game

import "image"

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota + 1
	ButtonSecondary
	ButtonMiddle
)

// ScrollDir is the direction of a wheel step.
type ScrollDir int

const (
	ScrollUp ScrollDir = iota + 1
	ScrollDown
)

// Key is a keyboard key the core cares about.
type Key int

const (
	KeyOther Key = iota
	KeyEscape
)

// Event is an abstract input event delivered by a screen.
type Event interface {
	isEvent()
}

type PointerDown struct {
	Pos    image.Point
	Button Button
}

type PointerMove struct {
	Pos image.Point
}

type PointerUp struct {
	Pos    image.Point
	Button Button
}

type Scroll struct {
	Pos image.Point
	Dir ScrollDir
}

type KeyDown struct {
	Key Key
}

// Close is the window close request.
type Close struct{}

func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (Scroll) isEvent()      {}
func (KeyDown) isEvent()     {}
func (Close) isEvent()       {}

// Outcome describes what handling an event did.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomePickedUp
	OutcomeDragged
	OutcomeMoved
	OutcomeCaptured
	OutcomeRejected
	OutcomeScrolled
	OutcomeQuit
)

func (o Outcome) String() string {
	switch o {
	case OutcomePickedUp:
		return "picked_up"
	case OutcomeDragged:
		return "dragged"
	case OutcomeMoved:
		return "moved"
	case OutcomeCaptured:
		return "captured"
	case OutcomeRejected:
		return "rejected"
	case OutcomeScrolled:
		return "scrolled"
	case OutcomeQuit:
		return "quit"
	default:
		return "none"
	}
}
