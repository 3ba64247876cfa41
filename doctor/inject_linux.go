//go:build linux

package doctor

import (
	"github.com/micmonay/keybd_event"

	"mnemo/dispatch"
)

// evdev sees every key, so the activator itself is injected.
const injectMods = dispatch.ModAlt

func applyInjectMods(kb *keybd_event.KeyBonding) {
	kb.HasALT(true)
}
