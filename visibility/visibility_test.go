package visibility

import "testing"

func TestSetNotifies(t *testing.T) {
	f := New()
	var got []bool
	f.Subscribe(func(v bool) { got = append(got, v) })

	f.Set(true)
	f.Set(false)

	if len(got) != 2 || got[0] != true || got[1] != false {
		t.Errorf("got %v, want [true false]", got)
	}
	if f.Get() {
		t.Error("expected flag to be false")
	}
}

func TestSetSameValueIsNoop(t *testing.T) {
	f := New()
	calls := 0
	f.Subscribe(func(bool) { calls++ })

	f.Set(false) // already false
	f.Set(true)
	f.Set(true) // duplicate
	f.Set(true)

	if calls != 1 {
		t.Errorf("got %d notifications, want 1", calls)
	}
}

func TestToggle(t *testing.T) {
	f := New()
	if !f.Toggle() {
		t.Error("first toggle should turn flag on")
	}
	if f.Toggle() {
		t.Error("second toggle should turn flag off")
	}
}

func TestSubscribeOrderAndCancel(t *testing.T) {
	f := New()
	var order []string
	cancelA := f.Subscribe(func(bool) { order = append(order, "a") })
	f.Subscribe(func(bool) { order = append(order, "b") })

	f.Set(true)
	cancelA()
	cancelA() // should not panic or remove "b"
	f.Set(false)

	want := []string{"a", "b", "b"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestObserverSeesNewValue(t *testing.T) {
	f := New()
	var seen bool
	f.Subscribe(func(bool) { seen = f.Get() })
	f.Set(true)
	if !seen {
		t.Error("observer should read the stored value during notification")
	}
}

func TestIndependentFlags(t *testing.T) {
	a, b := New(), New()
	a.Set(true)
	if b.Get() {
		t.Error("flags must not share state")
	}
}
