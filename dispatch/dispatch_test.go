package dispatch

import (
	"testing"

	"mnemo/registry"
	"mnemo/visibility"
)

type recorder struct {
	calls []string
}

func (r *recorder) action(name string) registry.Action {
	return func() { r.calls = append(r.calls, name) }
}

func (r *recorder) expect(t *testing.T, want ...string) {
	t.Helper()
	if len(r.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", r.calls, want)
	}
	for i := range want {
		if r.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", r.calls, want)
		}
	}
}

func setup(opts ...Option) (*Machine, *registry.Registry, *visibility.Flag) {
	reg := registry.New()
	vis := visibility.New()
	return New(reg, vis, opts...), reg, vis
}

func countNotifications(vis *visibility.Flag) *int {
	n := new(int)
	vis.Subscribe(func(bool) { *n++ })
	return n
}

func TestHoldScenario(t *testing.T) {
	m, reg, vis := setup()
	rec := &recorder{}
	reg.RegisterFunc("n", rec.action("focus-n"), rec.action("submit-n"), false)
	reg.RegisterFunc("s", rec.action("focus-s"), rec.action("submit-s"), true)

	if m.State() != Idle || vis.Get() {
		t.Fatal("expected Idle with hints hidden")
	}

	m.HandleKey(KeyDown(KeyAlt, ModAlt))
	if m.State() != ModifierHeld || !vis.Get() {
		t.Fatalf("after alt down: state=%v visible=%v", m.State(), vis.Get())
	}

	if !m.HandleKey(KeyDown("n", ModAlt)) {
		t.Error("expected n to dispatch")
	}
	rec.expect(t, "focus-n")

	m.HandleKey(KeyUp(KeyAlt, 0))
	if m.State() != Idle || vis.Get() {
		t.Fatalf("after alt up: state=%v visible=%v", m.State(), vis.Get())
	}

	m.HandleKey(KeyDown(KeyAlt, ModAlt))
	m.HandleKey(KeyDown("s", ModAlt))
	m.HandleKey(KeyUp("s", ModAlt))
	m.HandleKey(KeyUp(KeyAlt, 0))
	rec.expect(t, "focus-n", "focus-s", "submit-s")
}

func TestHoldUsesLabelCaseInsensitive(t *testing.T) {
	m, reg, _ := setup()
	rec := &recorder{}
	reg.Register("n", registry.Direct(rec.action("n")))

	m.HandleKey(KeyDown(KeyAlt, ModAlt))
	m.HandleKey(Event{Key: "n", Label: "N", Down: true, Mods: ModAlt | ModShift})
	rec.expect(t, "n")
}

func TestHoldDuplicateActivatorDown(t *testing.T) {
	m, _, vis := setup()
	n := countNotifications(vis)

	m.HandleKey(KeyDown(KeyAlt, ModAlt))
	m.HandleKey(KeyDown(KeyAlt, ModAlt)) // key repeat
	m.HandleKey(KeyDown(KeyAlt, ModAlt))

	if !vis.Get() || m.State() != ModifierHeld {
		t.Error("hints should stay visible while activator is held")
	}
	if *n != 1 {
		t.Errorf("got %d notifications, want 1", *n)
	}
}

func TestHoldIgnoresKeysWhileIdle(t *testing.T) {
	m, reg, vis := setup()
	rec := &recorder{}
	reg.Register("n", registry.Direct(rec.action("n")))

	if m.HandleKey(KeyDown("n", 0)) {
		t.Error("n dispatched without activator")
	}
	m.HandleKey(KeyUp(KeyAlt, 0)) // stray release
	if m.State() != Idle || vis.Get() {
		t.Error("stray activator release changed state")
	}
	rec.expect(t)
}

func TestHoldOtherKeyUpKeepsState(t *testing.T) {
	m, _, vis := setup()
	m.HandleKey(KeyDown(KeyAlt, ModAlt))
	m.HandleKey(KeyUp("x", ModAlt))
	m.HandleKey(KeyUp(KeyShift, ModAlt))
	if m.State() != ModifierHeld || !vis.Get() {
		t.Error("non-activator key-up should not change state")
	}
}

func TestHoldUnmatched(t *testing.T) {
	m, reg, vis := setup()
	rec := &recorder{}
	reg.Register("n", registry.Direct(rec.action("n")))

	m.HandleKey(KeyDown(KeyAlt, ModAlt))
	if m.HandleKey(KeyDown("q", ModAlt)) {
		t.Error("unregistered key reported as dispatched")
	}
	rec.expect(t)
	if m.State() != ModifierHeld || !vis.Get() {
		t.Error("unmatched key changed state")
	}
}

func TestHoldCustomActivator(t *testing.T) {
	m, reg, vis := setup(WithActivator(KeyMeta))
	rec := &recorder{}
	reg.Register("k", registry.Direct(rec.action("k")))

	m.HandleKey(KeyDown(KeyAlt, ModAlt))
	if vis.Get() {
		t.Error("alt should not activate when activator is meta")
	}
	m.HandleKey(KeyDown(KeyMeta, ModMeta))
	m.HandleKey(KeyDown("k", ModMeta))
	rec.expect(t, "k")
}

func TestReset(t *testing.T) {
	m, _, vis := setup()
	m.HandleKey(KeyDown(KeyAlt, ModAlt))
	m.Reset()
	if m.State() != Idle || vis.Get() {
		t.Error("Reset should return to Idle and hide hints")
	}
}

func TestToggleScenario(t *testing.T) {
	m, reg, vis := setup(WithPolicy(PolicyToggle))
	rec := &recorder{}
	reg.Register("e", registry.Direct(rec.action("e")))

	if vis.Get() {
		t.Fatal("hints should start hidden")
	}
	m.HandleKey(KeyDown(DefaultToggleKey, 0))
	if !vis.Get() {
		t.Fatal("toggle key should show hints")
	}
	if !m.HandleKey(KeyDown("e", 0)) {
		t.Error("e should dispatch while hints visible")
	}
	rec.expect(t, "e")

	m.HandleKey(KeyDown(DefaultToggleKey, 0))
	if vis.Get() {
		t.Fatal("second toggle should hide hints")
	}
	if m.HandleKey(KeyDown("e", 0)) {
		t.Error("e dispatched while hints hidden")
	}
	rec.expect(t, "e")
}

func TestToggleIgnoresKeyUp(t *testing.T) {
	m, reg, vis := setup(WithPolicy(PolicyToggle))
	rec := &recorder{}
	reg.Register("e", registry.Direct(rec.action("e")))

	m.HandleKey(KeyUp(DefaultToggleKey, 0))
	if vis.Get() {
		t.Error("key-up of toggle key flipped hints")
	}
	m.HandleKey(KeyDown(DefaultToggleKey, 0))
	m.HandleKey(KeyUp("e", 0))
	rec.expect(t)
}

func TestToggleCombiner(t *testing.T) {
	m, reg, _ := setup(WithPolicy(PolicyToggle))
	rec := &recorder{}
	reg.Register("n", registry.Direct(rec.action("bare")))
	reg.Register("ctrl+n", registry.Direct(rec.action("combined")))

	m.HandleKey(KeyDown(DefaultToggleKey, 0))
	m.HandleKey(KeyDown("n", ModCtrl))
	m.HandleKey(KeyDown("N", 0))
	rec.expect(t, "combined", "bare")
}

func TestToggleSubmitOrder(t *testing.T) {
	m, reg, _ := setup(WithPolicy(PolicyToggle))
	rec := &recorder{}
	reg.RegisterFunc("g", rec.action("focus"), rec.action("submit"), true)

	m.HandleKey(KeyDown(DefaultToggleKey, 0))
	m.HandleKey(KeyDown("g", 0))
	rec.expect(t, "focus", "submit")
}

func TestToggleKeyItselfDispatches(t *testing.T) {
	m, reg, _ := setup(WithPolicy(PolicyToggle), WithToggleKey("`"))
	rec := &recorder{}
	reg.Register("`", registry.Direct(rec.action("tick")))

	if !m.HandleKey(KeyDown("`", 0)) {
		t.Error("toggle event that shows hints should also dispatch")
	}
	// hiding event: hints are off after the flip, nothing fires
	if m.HandleKey(KeyDown("`", 0)) {
		t.Error("toggle event that hides hints should not dispatch")
	}
	rec.expect(t, "tick")
}

func TestToggleTriggersDisabled(t *testing.T) {
	m, reg, vis := setup(WithPolicy(PolicyToggle), WithToggleKey("`"), WithToggleTriggers(false))
	rec := &recorder{}
	reg.Register("`", registry.Direct(rec.action("tick")))

	if m.HandleKey(KeyDown("`", 0)) {
		t.Error("toggle key dispatched with toggle triggers disabled")
	}
	if !vis.Get() {
		t.Error("toggle key should still flip hints")
	}
	rec.expect(t)
}

func TestToggleUnmatched(t *testing.T) {
	m, _, vis := setup(WithPolicy(PolicyToggle))
	m.HandleKey(KeyDown(DefaultToggleKey, 0))
	if m.HandleKey(KeyDown("z", ModCtrl)) {
		t.Error("unregistered key reported as dispatched")
	}
	if !vis.Get() {
		t.Error("unmatched key changed visibility")
	}
}

func TestActionPanicPropagates(t *testing.T) {
	m, reg, _ := setup()
	reg.Register("x", registry.Direct(func() { panic("stale action") }))
	m.HandleKey(KeyDown(KeyAlt, ModAlt))

	defer func() {
		if recover() == nil {
			t.Error("expected panic from action to propagate")
		}
	}()
	m.HandleKey(KeyDown("x", ModAlt))
}

func TestParsePolicy(t *testing.T) {
	for _, s := range []string{"hold", "toggle"} {
		if _, err := ParsePolicy(s); err != nil {
			t.Errorf("ParsePolicy(%q): %v", s, err)
		}
	}
	if _, err := ParsePolicy("hybrid"); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestModifiers(t *testing.T) {
	m := ModCtrl | ModShift
	if !m.Has(ModCtrl) || m.Has(ModAlt) {
		t.Errorf("Has() wrong for %v", m)
	}
	if m.String() != "ctrl+shift" {
		t.Errorf("String() = %q, want ctrl+shift", m.String())
	}
	if mod, ok := ModifierByName("Control"); !ok || mod != ModCtrl {
		t.Error("ModifierByName(Control) should be ModCtrl")
	}
	if _, ok := ModifierByName("hyper"); ok {
		t.Error("ModifierByName(hyper) should fail")
	}
}
