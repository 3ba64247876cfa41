//go:build !linux

package hotkey

import (
	"fmt"
	"sync"

	"golang.design/x/hotkey"

	"mnemo/dispatch"
)

var letterKeys = []struct {
	name string
	key  hotkey.Key
}{
	{"a", hotkey.KeyA}, {"b", hotkey.KeyB}, {"c", hotkey.KeyC}, {"d", hotkey.KeyD},
	{"e", hotkey.KeyE}, {"f", hotkey.KeyF}, {"g", hotkey.KeyG}, {"h", hotkey.KeyH},
	{"i", hotkey.KeyI}, {"j", hotkey.KeyJ}, {"k", hotkey.KeyK}, {"l", hotkey.KeyL},
	{"m", hotkey.KeyM}, {"n", hotkey.KeyN}, {"o", hotkey.KeyO}, {"p", hotkey.KeyP},
	{"q", hotkey.KeyQ}, {"r", hotkey.KeyR}, {"s", hotkey.KeyS}, {"t", hotkey.KeyT},
	{"u", hotkey.KeyU}, {"v", hotkey.KeyV}, {"w", hotkey.KeyW}, {"x", hotkey.KeyX},
	{"y", hotkey.KeyY}, {"z", hotkey.KeyZ},
}

const globalMods = dispatch.ModCtrl | dispatch.ModShift

// xSource grabs Ctrl+Shift+<letter> through golang.design/x/hotkey
// (X11/Cocoa/Win32). Global hotkeys never see a bare modifier, so each
// combo is reported as a whole activator press wrapped around the letter.
type xSource struct {
	activator string
	hks       []*hotkey.Hotkey
	events    chan dispatch.Event
	stop      chan struct{}
	once      sync.Once
}

// New creates a global hotkey source reporting the activator as "alt".
func New() Source {
	return NewWithActivator(dispatch.KeyAlt)
}

func NewWithActivator(activator string) Source {
	return &xSource{
		activator: activator,
		events:    make(chan dispatch.Event, eventBuffer),
		stop:      make(chan struct{}),
	}
}

func (h *xSource) Register() error {
	for _, lk := range letterKeys {
		hk := hotkey.New([]hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift}, lk.key)
		if err := hk.Register(); err != nil {
			h.Unregister()
			return fmt.Errorf("registering ctrl+shift+%s: %w", lk.name, err)
		}
		h.hks = append(h.hks, hk)
		go h.forward(hk, lk.name)
	}
	return nil
}

func (h *xSource) forward(hk *hotkey.Hotkey, name string) {
	for {
		select {
		case <-h.stop:
			return
		case <-hk.Keydown():
			h.send(dispatch.KeyDown(h.activator, globalMods))
			h.send(dispatch.KeyDown(name, globalMods))
		case <-hk.Keyup():
			h.send(dispatch.KeyUp(name, globalMods))
			h.send(dispatch.KeyUp(h.activator, 0))
		}
	}
}

func (h *xSource) send(ev dispatch.Event) {
	select {
	case h.events <- ev:
	case <-h.stop:
	}
}

func (h *xSource) Unregister() {
	h.once.Do(func() {
		close(h.stop)
		for _, hk := range h.hks {
			hk.Unregister()
		}
	})
}

func (h *xSource) Events() <-chan dispatch.Event {
	return h.events
}

// Diagnose checks hotkey availability and returns a status message.
func Diagnose() (string, error) {
	return "global hotkeys available (Ctrl+Shift+<letter>)", nil
}
