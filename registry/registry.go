// Package registry maps shortcut identifiers to the actions they trigger.
//
// Identifiers are case-insensitive: they are lowercased on the way in and on
// lookup. The registry does not interpret them, so "n" and "ctrl+n" are just
// two different keys.
package registry

import (
	"sort"
	"strings"
	"sync"

	"mnemo/log"
)

// Action is a shortcut callback. Actions belong to the registering widget and
// must be unregistered before that widget goes away.
type Action func()

// Entry is one configured shortcut.
type Entry struct {
	Focus          Action
	Submit         Action
	TriggersSubmit bool
}

// Direct builds an entry for a single action with no submit step.
func Direct(a Action) Entry {
	return Entry{Focus: a}
}

// Invoke runs Focus, then Submit when the entry asks for it. It reports
// whether the submit step ran.
func (e Entry) Invoke() bool {
	if e.Focus != nil {
		e.Focus()
	}
	if e.TriggersSubmit && e.Submit != nil {
		e.Submit()
		return true
	}
	return false
}

// Normalize returns the canonical form of an identifier.
func Normalize(id string) string {
	return strings.ToLower(id)
}

// Combine builds a "<modifier>+<key>" identifier.
func Combine(modifier, key string) string {
	return Normalize(modifier) + "+" + Normalize(key)
}

type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func New() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register stores e under id. A second registration for the same id replaces
// the first.
func (r *Registry) Register(id string, e Entry) {
	id = Normalize(id)
	r.mu.Lock()
	_, exists := r.entries[id]
	r.entries[id] = e
	r.mu.Unlock()
	if exists {
		log.Overwrite(id)
	}
}

func (r *Registry) RegisterFunc(id string, focus, submit Action, triggersSubmit bool) {
	r.Register(id, Entry{Focus: focus, Submit: submit, TriggersSubmit: triggersSubmit})
}

// Unregister removes id. Removing an unknown id does nothing.
func (r *Registry) Unregister(id string) {
	id = Normalize(id)
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
}

func (r *Registry) Resolve(id string) (Entry, bool) {
	id = Normalize(id)
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Identifiers returns the registered ids in sorted order.
func (r *Registry) Identifiers() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Strings(ids)
	return ids
}
