package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"mnemo/dispatch"
)

// keyEventMsg carries an OS-level key event into the TUI loop so the
// dispatcher only ever runs on the Update goroutine.
type keyEventMsg struct{ ev dispatch.Event }

type statusMsg struct{ text string }

// programHandler forwards pumped key events to a running program.
type programHandler struct {
	p *tea.Program
}

func (h programHandler) HandleKey(ev dispatch.Event) bool {
	h.p.Send(keyEventMsg{ev: ev})
	return false
}

// splitKey turns a terminal key name like "ctrl+alt+n" into its key and
// modifiers.
func splitKey(s string) (string, dispatch.Modifiers) {
	var mods dispatch.Modifiers
	for {
		i := strings.IndexByte(s, '+')
		if i <= 0 || i == len(s)-1 {
			return s, mods
		}
		m, ok := dispatch.ModifierByName(s[:i])
		if !ok {
			return s, mods
		}
		mods |= m
		s = s[i+1:]
	}
}

// terminalEvents maps one terminal key message to dispatcher events.
// Terminals never report key-up or a bare modifier, so under the hold
// policy an <activator>+<key> message becomes a full activator press around
// the key.
func terminalEvents(s string, policy dispatch.Policy, activator string) []dispatch.Event {
	key, mods := splitKey(s)
	down := dispatch.Event{Key: strings.ToLower(key), Label: key, Down: true, Mods: mods}
	if policy == dispatch.PolicyToggle {
		return []dispatch.Event{down}
	}
	bit, ok := dispatch.ModifierByName(activator)
	if !ok || !mods.Has(bit) {
		return nil
	}
	up := down
	up.Down = false
	return []dispatch.Event{
		dispatch.KeyDown(activator, mods),
		down,
		up,
		dispatch.KeyUp(activator, mods&^bit),
	}
}
