//go:build gui

package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// shortcutEntry is an Entry that reports raw key transitions to the app
// before the entry sees them, and drops text typed as part of a shortcut.
type shortcutEntry struct {
	widget.Entry
	app *App
}

func newShortcutEntry(a *App, secret bool) *shortcutEntry {
	e := &shortcutEntry{app: a}
	e.Password = secret
	e.ExtendBaseWidget(e)
	return e
}

func (e *shortcutEntry) KeyDown(ev *fyne.KeyEvent) {
	e.app.keyDown(ev)
	e.Entry.KeyDown(ev)
}

func (e *shortcutEntry) KeyUp(ev *fyne.KeyEvent) {
	e.app.keyUp(ev)
	e.Entry.KeyUp(ev)
}

func (e *shortcutEntry) TypedRune(r rune) {
	if e.app.swallow {
		return
	}
	e.Entry.TypedRune(r)
}
