// Package dispatch turns raw key transitions into shortcut invocations.
//
// A Machine owns the modifier state, reads a registry.Registry to resolve the
// pressed key, and writes a visibility.Flag that label renderers observe. It
// is not safe for concurrent use: feed it from one goroutine.
package dispatch

import (
	"fmt"

	"mnemo/log"
	"mnemo/registry"
	"mnemo/visibility"
)

// Policy selects how hints are revealed and when letters dispatch.
type Policy string

const (
	// PolicyHold shows hints while the activator is held; letters dispatch
	// only while it is down.
	PolicyHold Policy = "hold"
	// PolicyToggle flips hints with a dedicated key; letters dispatch while
	// hints are shown.
	PolicyToggle Policy = "toggle"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyHold, PolicyToggle:
		return Policy(s), nil
	}
	return "", fmt.Errorf("unknown policy %q (use hold or toggle)", s)
}

type State int

const (
	Idle State = iota
	ModifierHeld
)

func (s State) String() string {
	if s == ModifierHeld {
		return "modifier-held"
	}
	return "idle"
}

const (
	DefaultActivator = KeyAlt
	DefaultToggleKey = "f10"
)

type Machine struct {
	reg *registry.Registry
	vis *visibility.Flag

	policy         Policy
	activator      string
	toggleKey      string
	combiner       Modifiers
	combinerName   string
	toggleTriggers bool

	state State
}

type Option func(*Machine)

func WithPolicy(p Policy) Option {
	return func(m *Machine) { m.policy = p }
}

// WithActivator sets the key held to reveal hints under PolicyHold.
func WithActivator(key string) Option {
	return func(m *Machine) { m.activator = key }
}

// WithToggleKey sets the key that flips hints under PolicyToggle.
func WithToggleKey(key string) Option {
	return func(m *Machine) { m.toggleKey = key }
}

// WithCombiner sets the secondary modifier that prefixes identifiers under
// PolicyToggle: with mod held, "n" is looked up as "<name>+n".
func WithCombiner(mod Modifiers, name string) Option {
	return func(m *Machine) {
		m.combiner = mod
		m.combinerName = name
	}
}

// WithToggleTriggers controls whether the toggle key press that turns hints
// on is itself looked up as a shortcut. Defaults to true.
func WithToggleTriggers(on bool) Option {
	return func(m *Machine) { m.toggleTriggers = on }
}

func New(reg *registry.Registry, vis *visibility.Flag, opts ...Option) *Machine {
	m := &Machine{
		reg:            reg,
		vis:            vis,
		policy:         PolicyHold,
		activator:      DefaultActivator,
		toggleKey:      DefaultToggleKey,
		combiner:       ModCtrl,
		combinerName:   KeyCtrl,
		toggleTriggers: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine) Policy() Policy { return m.policy }
func (m *Machine) State() State   { return m.state }

// Reset drops any held-modifier state and hides hints. Hosts call it when
// they lose keyboard focus and will never see the modifier's key-up.
func (m *Machine) Reset() {
	m.state = Idle
	m.setVisible(false)
}

// HandleKey processes one event and reports whether a shortcut fired.
func (m *Machine) HandleKey(ev Event) bool {
	if m.policy == PolicyToggle {
		return m.handleToggle(ev)
	}
	return m.handleHold(ev)
}

func (m *Machine) handleHold(ev Event) bool {
	if ev.is(m.activator) {
		switch {
		case ev.Down && m.state == Idle:
			m.state = ModifierHeld
			m.setVisible(true)
		case !ev.Down && m.state == ModifierHeld:
			m.state = Idle
			m.setVisible(false)
		}
		return false
	}
	if m.state != ModifierHeld || !ev.Down {
		return false
	}
	return m.dispatch(ev.label())
}

func (m *Machine) handleToggle(ev Event) bool {
	if !ev.Down {
		return false
	}
	if ev.is(m.toggleKey) {
		visible := m.vis.Toggle()
		log.Visibility(visible)
		if !m.toggleTriggers {
			return false
		}
	}
	if !m.vis.Get() {
		return false
	}
	id := ev.label()
	if m.combiner != 0 && ev.Mods.Has(m.combiner) {
		id = registry.Combine(m.combinerName, id)
	}
	return m.dispatch(id)
}

func (m *Machine) dispatch(id string) bool {
	id = registry.Normalize(id)
	entry, ok := m.reg.Resolve(id)
	if !ok {
		log.Unmatched(id)
		return false
	}
	submitted := entry.Invoke()
	log.Dispatch(id, submitted)
	return true
}

func (m *Machine) setVisible(v bool) {
	if m.vis.Get() == v {
		return
	}
	m.vis.Set(v)
	log.Visibility(v)
}
