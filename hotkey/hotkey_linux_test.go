//go:build linux

package hotkey

import (
	"testing"

	"mnemo/dispatch"
)

func TestTranslateModifiers(t *testing.T) {
	var held dispatch.Modifiers

	ev, ok := translate(56, keyPress, &held)
	if !ok || ev.Key != dispatch.KeyAlt || !ev.Down {
		t.Fatalf("left alt press = %+v, %v", ev, ok)
	}
	if !held.Has(dispatch.ModAlt) {
		t.Error("alt should be held")
	}

	ev, _ = translate(49, keyPress, &held)
	if ev.Key != "n" || !ev.Mods.Has(dispatch.ModAlt) || ev.Label != "" {
		t.Errorf("n press = %+v", ev)
	}

	ev, _ = translate(100, keyRelease, &held)
	if ev.Key != dispatch.KeyAlt || ev.Down {
		t.Errorf("right alt release = %+v", ev)
	}
	if held != 0 {
		t.Errorf("held = %v after release, want none", held)
	}
}

func TestTranslateRepeatIsDown(t *testing.T) {
	var held dispatch.Modifiers
	ev, ok := translate(56, keyRepeat, &held)
	if !ok || !ev.Down {
		t.Errorf("repeat = %+v, %v; want a down event", ev, ok)
	}
}

func TestTranslateShiftLabel(t *testing.T) {
	var held dispatch.Modifiers
	translate(42, keyPress, &held)
	ev, _ := translate(30, keyPress, &held)
	if ev.Key != "a" || ev.Label != "A" {
		t.Errorf("shift+a = %+v, want key a label A", ev)
	}
}

func TestTranslateUnknown(t *testing.T) {
	var held dispatch.Modifiers
	if _, ok := translate(999, keyPress, &held); ok {
		t.Error("unknown code should be skipped")
	}
	if _, ok := translate(30, 7, &held); ok {
		t.Error("unknown value should be skipped")
	}
}

func TestModifiersSharedAcrossKeyboards(t *testing.T) {
	h := New().(*evdevSource)

	// ctrl on one keyboard, n on another; both readers go through h
	done := make(chan struct{})
	go func() {
		h.translate(29, keyPress)
		close(done)
	}()
	<-done

	ev, ok := h.translate(49, keyPress)
	if !ok || ev.Key != "n" || !ev.Mods.Has(dispatch.ModCtrl) {
		t.Errorf("n press = %+v, %v; want ctrl held", ev, ok)
	}

	h.translate(97, keyRelease)
	if ev, _ := h.translate(49, keyPress); ev.Mods != 0 {
		t.Errorf("mods after right ctrl release = %v, want none", ev.Mods)
	}
}
