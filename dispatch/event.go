package dispatch

import "strings"

// Modifiers is the set of modifier keys held while an event was delivered.
type Modifiers uint8

const (
	ModAlt Modifiers = 1 << iota
	ModCtrl
	ModShift
	ModMeta
)

// Logical names for modifier keys, as they appear in Event.Key.
const (
	KeyAlt   = "alt"
	KeyCtrl  = "ctrl"
	KeyShift = "shift"
	KeyMeta  = "meta"
)

var modNames = []struct {
	mod  Modifiers
	name string
}{
	{ModCtrl, KeyCtrl},
	{ModAlt, KeyAlt},
	{ModShift, KeyShift},
	{ModMeta, KeyMeta},
}

func (m Modifiers) Has(o Modifiers) bool {
	return m&o == o
}

func (m Modifiers) String() string {
	var parts []string
	for _, n := range modNames {
		if m.Has(n.mod) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

// ModifierByName maps "alt", "ctrl", "control", "shift", "meta", "super" or
// "cmd" to its bit. ok is false for anything else.
func ModifierByName(name string) (Modifiers, bool) {
	switch strings.ToLower(name) {
	case KeyAlt, "option":
		return ModAlt, true
	case KeyCtrl, "control":
		return ModCtrl, true
	case KeyShift:
		return ModShift, true
	case KeyMeta, "super", "cmd":
		return ModMeta, true
	}
	return 0, false
}

// Event is one key transition.
type Event struct {
	// Key is the logical key identity, e.g. "alt", "f10" or "n".
	Key string
	// Label is the printable text of the key. Empty means use Key.
	Label string
	Down  bool
	Mods  Modifiers
}

func KeyDown(key string, mods Modifiers) Event {
	return Event{Key: key, Down: true, Mods: mods}
}

func KeyUp(key string, mods Modifiers) Event {
	return Event{Key: key, Mods: mods}
}

// label is the text used to build a registry identifier.
func (e Event) label() string {
	if e.Label != "" {
		return e.Label
	}
	return e.Key
}

func (e Event) is(key string) bool {
	return strings.EqualFold(e.Key, key)
}
