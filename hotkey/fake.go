package hotkey

import (
	"sync"

	"mnemo/dispatch"
)

// FakeSource is a Source driven by Sim* calls.
type FakeSource struct {
	events chan dispatch.Event
	once   sync.Once
}

func NewFake() *FakeSource {
	return &FakeSource{events: make(chan dispatch.Event, eventBuffer)}
}

func (f *FakeSource) Register() error               { return nil }
func (f *FakeSource) Unregister()                   { f.once.Do(func() { close(f.events) }) }
func (f *FakeSource) Events() <-chan dispatch.Event { return f.events }

func (f *FakeSource) Sim(ev dispatch.Event) { f.events <- ev }

func (f *FakeSource) SimKeydown(key string, mods dispatch.Modifiers) {
	f.Sim(dispatch.KeyDown(key, mods))
}

func (f *FakeSource) SimKeyup(key string, mods dispatch.Modifiers) {
	f.Sim(dispatch.KeyUp(key, mods))
}
