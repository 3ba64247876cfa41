// Package hotkey delivers raw key transitions from the operating system (or a
// fake, in tests) and pumps them into a dispatcher.
package hotkey

import "mnemo/dispatch"

// Source produces key events after Register until Unregister.
type Source interface {
	Register() error
	Unregister()
	Events() <-chan dispatch.Event
}

const eventBuffer = 64
