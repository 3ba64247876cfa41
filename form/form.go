// Package form is a host-independent shortcut form: a set of labelled fields
// whose mnemonics are registered with a dispatcher. Hosts (terminal, GUI,
// scripted tests) supply the widgets through a Sink and feed key events in.
package form

import (
	"mnemo/clipboard"
	"mnemo/config"
	"mnemo/dispatch"
	"mnemo/label"
	"mnemo/log"
	"mnemo/mnemonic"
	"mnemo/registry"
	"mnemo/visibility"
)

// Sink is implemented by the host that owns the widgets.
type Sink interface {
	FieldFocused(index int)
	FieldValues() []string
	Submitted(pairs []clipboard.Pair, err error)
}

type Field struct {
	config.Field
	// Text is the label as displayed, without the marker.
	Text    string
	binding *label.Binding
}

// Key is the field's registry id, or "" when its label has no mnemonic.
func (f Field) Key() string {
	if f.binding == nil {
		return ""
	}
	return f.binding.ID()
}

type Form struct {
	Registry   *registry.Registry
	Visibility *visibility.Flag
	Machine    *dispatch.Machine
	Fields     []Field

	sink       Sink
	copier     func([]clipboard.Pair) error
	dispatched int
}

type Option func(*Form)

// WithCopier replaces clipboard.CopyPairs as the submit side effect.
func WithCopier(fn func([]clipboard.Pair) error) Option {
	return func(f *Form) { f.copier = fn }
}

// New builds the form and registers every field's mnemonic. cfg must have
// been validated.
func New(cfg config.Config, sink Sink, opts ...Option) *Form {
	reg := registry.New()
	vis := visibility.New()
	f := &Form{
		Registry:   reg,
		Visibility: vis,
		Machine:    dispatch.New(reg, vis, cfg.MachineOptions()...),
		sink:       sink,
		copier:     clipboard.CopyPairs,
	}
	for _, opt := range opts {
		opt(f)
	}
	for i, fc := range cfg.Fields {
		field := Field{Field: fc, Text: mnemonic.Strip(fc.Label)}
		entry := registry.Entry{
			Focus:          f.focusAction(i),
			Submit:         f.Submit,
			TriggersSubmit: fc.Submit,
		}
		if b, ok := label.Bind(reg, fc.Label, "", entry); ok {
			field.binding = b
		} else {
			log.Warnf("field %q has no mnemonic", fc.Label)
		}
		f.Fields = append(f.Fields, field)
	}
	return f
}

func (f *Form) focusAction(i int) registry.Action {
	return func() { f.sink.FieldFocused(i) }
}

// HandleKey feeds one event to the dispatcher.
func (f *Form) HandleKey(ev dispatch.Event) bool {
	if !f.Machine.HandleKey(ev) {
		return false
	}
	f.dispatched++
	return true
}

func (f *Form) Dispatched() int { return f.dispatched }

// Submit collects the text field values, copies them and reports to the sink.
func (f *Form) Submit() {
	values := f.sink.FieldValues()
	var pairs []clipboard.Pair
	for i, field := range f.Fields {
		if field.Button || i >= len(values) {
			continue
		}
		pairs = append(pairs, clipboard.Pair{Label: field.Text, Value: values[i]})
	}
	err := f.copier(pairs)
	if err != nil {
		log.Errorf("submit: %v", err)
	}
	f.sink.Submitted(pairs, err)
}

// Close unregisters every field's shortcut.
func (f *Form) Close() {
	for _, field := range f.Fields {
		if field.binding != nil {
			field.binding.Release()
		}
	}
}
