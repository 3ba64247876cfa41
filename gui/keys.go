//go:build gui

package gui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"mnemo/dispatch"
)

type modifierKey struct {
	name string
	mod  dispatch.Modifiers
}

var modifierKeys = map[fyne.KeyName]modifierKey{
	desktop.KeyAltLeft:      {dispatch.KeyAlt, dispatch.ModAlt},
	desktop.KeyAltRight:     {dispatch.KeyAlt, dispatch.ModAlt},
	desktop.KeyControlLeft:  {dispatch.KeyCtrl, dispatch.ModCtrl},
	desktop.KeyControlRight: {dispatch.KeyCtrl, dispatch.ModCtrl},
	desktop.KeyShiftLeft:    {dispatch.KeyShift, dispatch.ModShift},
	desktop.KeyShiftRight:   {dispatch.KeyShift, dispatch.ModShift},
	desktop.KeySuperLeft:    {dispatch.KeyMeta, dispatch.ModMeta},
	desktop.KeySuperRight:   {dispatch.KeyMeta, dispatch.ModMeta},
}

// keyTracker turns fyne key events into dispatcher events, remembering
// which modifiers are down.
type keyTracker struct {
	held dispatch.Modifiers
}

func (k *keyTracker) translate(name fyne.KeyName, down bool) (ev dispatch.Event, modifier bool) {
	if mk, ok := modifierKeys[name]; ok {
		if down {
			k.held |= mk.mod
		} else {
			k.held &^= mk.mod
		}
		return dispatch.Event{Key: mk.name, Down: down, Mods: k.held}, true
	}
	return dispatch.Event{
		Key:   strings.ToLower(string(name)),
		Label: string(name),
		Down:  down,
		Mods:  k.held,
	}, false
}

func (k *keyTracker) reset() { k.held = 0 }
