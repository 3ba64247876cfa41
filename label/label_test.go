package label

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"mnemo/registry"
	"mnemo/visibility"
)

func init() {
	// force styling so underline escapes appear in test output
	lipgloss.SetColorProfile(termenv.ANSI256)
}

func TestRenderHidden(t *testing.T) {
	r := NewRenderer()
	got := r.Render("Save &As", false)
	if got != "Save As" {
		t.Errorf("Render hidden = %q, want %q", got, "Save As")
	}
}

func TestRenderVisibleUnderlines(t *testing.T) {
	r := NewRenderer()
	got := r.Render("Save &As", true)
	want := r.Hint.Render("A")
	if !strings.Contains(got, want) {
		t.Errorf("Render visible = %q, want it to contain %q", got, want)
	}
	if !strings.HasPrefix(got, "Save ") || !strings.HasSuffix(got, "s") {
		t.Errorf("Render visible = %q, prefix/suffix lost", got)
	}
	if got == r.Render("Save &As", false) {
		t.Error("visible rendering should differ from hidden rendering")
	}
}

func TestRenderNoMnemonic(t *testing.T) {
	r := NewRenderer()
	for _, text := range []string{"Plain", "Trailing&"} {
		if got := r.Render(text, true); got != text {
			t.Errorf("Render(%q) = %q, want unchanged", text, got)
		}
	}
}

func TestBind(t *testing.T) {
	reg := registry.New()
	called := false
	b, ok := Bind(reg, "&Name", "", registry.Direct(func() { called = true }))
	if !ok {
		t.Fatal("Bind failed")
	}
	if b.ID() != "n" {
		t.Errorf("ID() = %q, want n", b.ID())
	}
	e, ok := reg.Resolve("N")
	if !ok {
		t.Fatal("letter not registered")
	}
	e.Invoke()
	if !called {
		t.Error("registered entry not invoked")
	}

	b.Release()
	if _, ok := reg.Resolve("n"); ok {
		t.Error("Release should unregister")
	}
}

func TestBindWithModifier(t *testing.T) {
	reg := registry.New()
	b, ok := Bind(reg, "Sub&mit", "ctrl", registry.Direct(func() {}))
	if !ok {
		t.Fatal("Bind failed")
	}
	if b.ID() != "ctrl+m" {
		t.Errorf("ID() = %q, want ctrl+m", b.ID())
	}
	if _, ok := reg.Resolve("ctrl+m"); !ok {
		t.Error("combined id not registered")
	}
}

func TestBindNoMnemonic(t *testing.T) {
	reg := registry.New()
	if _, ok := Bind(reg, "Plain", "", registry.Direct(func() {})); ok {
		t.Error("Bind should fail without a mnemonic")
	}
	if reg.Len() != 0 {
		t.Error("nothing should be registered")
	}
}

func TestWatch(t *testing.T) {
	vis := visibility.New()
	r := NewRenderer()
	var renders []string
	l := Watch(vis, r, "&Go", func(s string) { renders = append(renders, s) })

	vis.Set(true)
	vis.Set(false)
	l.Stop()
	vis.Set(true)

	if len(renders) != 3 {
		t.Fatalf("got %d renders, want 3: %q", len(renders), renders)
	}
	if renders[0] != "Go" || renders[2] != "Go" {
		t.Errorf("hidden renders = %q, %q, want Go", renders[0], renders[2])
	}
	if renders[1] == "Go" {
		t.Error("visible render should carry the hint style")
	}
}
