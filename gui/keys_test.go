//go:build gui

package gui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"mnemo/dispatch"
)

func TestKeyTracker(t *testing.T) {
	var k keyTracker

	ev, mod := k.translate(desktop.KeyAltLeft, true)
	if !mod || ev.Key != "alt" || !ev.Down || ev.Mods != dispatch.ModAlt {
		t.Fatalf("alt down = %+v, %v", ev, mod)
	}

	ev, mod = k.translate(fyne.KeyN, true)
	if mod || ev.Key != "n" || ev.Label != "N" || !ev.Mods.Has(dispatch.ModAlt) {
		t.Errorf("n down = %+v, %v", ev, mod)
	}

	ev, _ = k.translate(fyne.KeyF10, true)
	if ev.Key != "f10" {
		t.Errorf("F10 key = %q", ev.Key)
	}

	ev, _ = k.translate(desktop.KeyAltRight, false)
	if ev.Down || ev.Mods != 0 {
		t.Errorf("alt up = %+v", ev)
	}

	k.translate(desktop.KeyControlLeft, true)
	k.reset()
	if ev, _ := k.translate(fyne.KeyA, true); ev.Mods != 0 {
		t.Errorf("mods after reset = %v", ev.Mods)
	}
}

func TestRenderIcon(t *testing.T) {
	if len(iconHidden.Content()) == 0 || len(iconShown.Content()) == 0 {
		t.Fatal("empty icon")
	}
	if string(iconHidden.Content()) == string(iconShown.Content()) {
		t.Error("hint icon should differ from idle icon")
	}
}
