// Package visibility holds the shared "are shortcut hints shown" flag.
package visibility

import "sync"

// Flag is a boolean with synchronous change notification. Renderers read
// and subscribe to it; only the dispatcher should write it.
//
// Observers must not call Set from inside their own notification.
type Flag struct {
	mu        sync.RWMutex
	value     bool
	nextID    int
	observers []observer
}

type observer struct {
	id int
	fn func(bool)
}

func New() *Flag {
	return &Flag{}
}

func (f *Flag) Get() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.value
}

// Set stores v and notifies observers. Setting the current value is a no-op
// and fires nothing.
func (f *Flag) Set(v bool) {
	f.mu.Lock()
	if f.value == v {
		f.mu.Unlock()
		return
	}
	f.value = v
	obs := make([]observer, len(f.observers))
	copy(obs, f.observers)
	f.mu.Unlock()

	for _, o := range obs {
		o.fn(v)
	}
}

// Toggle flips the flag and returns the new value.
func (f *Flag) Toggle() bool {
	v := !f.Get()
	f.Set(v)
	return v
}

// Subscribe registers fn for every effective change. The returned cancel
// func may be called more than once.
func (f *Flag) Subscribe(fn func(bool)) (cancel func()) {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.observers = append(f.observers, observer{id: id, fn: fn})
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			for i, o := range f.observers {
				if o.id == id {
					f.observers = append(f.observers[:i:i], f.observers[i+1:]...)
					return
				}
			}
		})
	}
}
