//go:build gui

// Package gui is the desktop host: a fyne window showing the configured
// form with live mnemonic hints.
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"mnemo/clipboard"
	"mnemo/config"
	"mnemo/dispatch"
	"mnemo/form"
	"mnemo/log"
)

type App struct {
	form    *form.Form
	fyneApp fyne.App
	window  fyne.Window
	tray    desktop.App

	entries []*shortcutEntry
	buttons []*widget.Button
	labels  []*widget.RichText
	status  *widget.Label

	keys    keyTracker
	swallow bool
}

// Run builds the window and blocks until it is closed.
func Run(cfg config.Config) error {
	a := &App{}
	a.form = form.New(cfg, a)
	defer a.form.Close()

	a.fyneApp = app.NewWithID("io.mnemo.gui")
	a.fyneApp.Settings().SetTheme(&darkTheme{})
	a.window = a.fyneApp.NewWindow("mnemo")

	if desk, ok := a.fyneApp.(desktop.App); ok {
		a.tray = desk
		desk.SetSystemTrayMenu(fyne.NewMenu("mnemo",
			fyne.NewMenuItem("Show", func() { a.window.Show() }),
		))
		desk.SetSystemTrayIcon(iconHidden)
	}

	a.window.SetContent(a.build())
	a.window.Resize(fyne.NewSize(360, 0))
	a.window.CenterOnScreen()

	if dc, ok := a.window.Canvas().(desktop.Canvas); ok {
		dc.SetOnKeyDown(a.keyDown)
		dc.SetOnKeyUp(a.keyUp)
	}

	// a modifier released while another app has focus never reaches us
	a.fyneApp.Lifecycle().SetOnExitedForeground(func() {
		a.keys.reset()
		a.form.Machine.Reset()
	})

	cancel := a.form.Visibility.Subscribe(func(v bool) {
		fyne.Do(func() { a.showHints(v) })
	})
	defer cancel()

	a.window.ShowAndRun()
	log.SessionEnd(a.form.Dispatched())
	return nil
}

func (a *App) build() fyne.CanvasObject {
	rows := container.New(layout.NewFormLayout())
	var actions []fyne.CanvasObject

	a.entries = make([]*shortcutEntry, len(a.form.Fields))
	a.buttons = make([]*widget.Button, len(a.form.Fields))
	a.labels = make([]*widget.RichText, len(a.form.Fields))

	for i, f := range a.form.Fields {
		if f.Button {
			btn := widget.NewButton(buttonText(f.Label, false), a.form.Submit)
			if f.Submit {
				btn.Importance = widget.HighImportance
			}
			a.buttons[i] = btn
			actions = append(actions, btn)
			continue
		}
		lbl := widget.NewRichText(labelSegments(f.Label, false)...)
		entry := newShortcutEntry(a, f.Secret)
		entry.SetPlaceHolder(f.Text)
		a.labels[i] = lbl
		a.entries[i] = entry
		rows.Add(lbl)
		rows.Add(entry)
	}

	a.status = widget.NewLabel("")
	buttons := container.NewHBox(append([]fyne.CanvasObject{layout.NewSpacer()}, actions...)...)
	return container.NewVBox(rows, buttons, a.status)
}

func (a *App) showHints(visible bool) {
	for i, f := range a.form.Fields {
		switch {
		case a.buttons[i] != nil:
			a.buttons[i].SetText(buttonText(f.Label, visible))
		case a.labels[i] != nil:
			a.labels[i].Segments = labelSegments(f.Label, visible)
			a.labels[i].Refresh()
		}
	}
	if a.tray != nil {
		icon := iconHidden
		if visible {
			icon = iconShown
		}
		a.tray.SetSystemTrayIcon(icon)
	}
}

func (a *App) keyDown(ev *fyne.KeyEvent) {
	e, modifier := a.keys.translate(ev.Name, true)
	fired := a.form.HandleKey(e)
	if !modifier {
		a.swallow = fired || a.form.Machine.State() == dispatch.ModifierHeld
	}
}

func (a *App) keyUp(ev *fyne.KeyEvent) {
	e, _ := a.keys.translate(ev.Name, false)
	a.form.HandleKey(e)
}

// FieldFocused implements form.Sink.
func (a *App) FieldFocused(i int) {
	c := a.window.Canvas()
	switch {
	case a.entries[i] != nil:
		c.Focus(a.entries[i])
	case a.buttons[i] != nil:
		c.Focus(a.buttons[i])
	}
}

func (a *App) FieldValues() []string {
	values := make([]string, len(a.entries))
	for i, e := range a.entries {
		if e != nil {
			values[i] = e.Text
		}
	}
	return values
}

func (a *App) Submitted(pairs []clipboard.Pair, err error) {
	if err != nil {
		a.status.SetText(fmt.Sprintf("Submit failed: %v", err))
		return
	}
	a.status.SetText(fmt.Sprintf("Copied %d field(s) to the clipboard", len(pairs)))
}
