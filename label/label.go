// Package label renders mnemonic labels and wires them to a registry.
package label

import (
	"github.com/charmbracelet/lipgloss"

	"mnemo/mnemonic"
	"mnemo/registry"
	"mnemo/visibility"
)

// Renderer draws a label, underlining its mnemonic letter while hints are
// visible.
type Renderer struct {
	Base lipgloss.Style
	Hint lipgloss.Style
}

func NewRenderer() Renderer {
	return Renderer{
		Base: lipgloss.NewStyle(),
		Hint: lipgloss.NewStyle().Underline(true).Bold(true),
	}
}

// Render returns the styled label. Labels without a mnemonic render as-is.
func (r Renderer) Render(text string, visible bool) string {
	m, ok := mnemonic.Extract(text)
	if !ok {
		return r.Base.Render(text)
	}
	if !visible {
		return r.Base.Render(m.Text())
	}
	hint := r.Hint.Inherit(r.Base)
	return r.Base.Render(m.Prefix) + hint.Render(m.Letter) + r.Base.Render(m.Suffix)
}

// Binding is a label registered with a registry. Release must be called
// before the owner of the entry's actions goes away.
type Binding struct {
	Text     string
	Mnemonic mnemonic.Mnemonic
	reg      *registry.Registry
	id       string
}

// Bind extracts the mnemonic from text and registers e under its letter,
// prefixed with modifier when it is non-empty. ok is false, and nothing is
// registered, when text has no mnemonic.
func Bind(reg *registry.Registry, text, modifier string, e registry.Entry) (b *Binding, ok bool) {
	m, ok := mnemonic.Extract(text)
	if !ok {
		return nil, false
	}
	id := m.Key()
	if modifier != "" {
		id = registry.Combine(modifier, id)
	}
	reg.Register(id, e)
	return &Binding{Text: text, Mnemonic: m, reg: reg, id: id}, true
}

func (b *Binding) ID() string { return b.id }

func (b *Binding) Release() {
	b.reg.Unregister(b.id)
}

// Live keeps a rendered string in sync with a visibility flag.
type Live struct {
	text     string
	renderer Renderer
	vis      *visibility.Flag
	onChange func(string)
	cancel   func()
}

// Watch renders text now and again on every visibility change, passing the
// result to onChange. Stop ends the subscription.
func Watch(vis *visibility.Flag, r Renderer, text string, onChange func(string)) *Live {
	l := &Live{text: text, renderer: r, vis: vis, onChange: onChange}
	l.cancel = vis.Subscribe(func(v bool) {
		l.onChange(l.renderer.Render(l.text, v))
	})
	onChange(r.Render(text, vis.Get()))
	return l
}

func (l *Live) Stop() { l.cancel() }
