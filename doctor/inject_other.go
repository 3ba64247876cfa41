//go:build !linux

package doctor

import (
	"github.com/micmonay/keybd_event"

	"mnemo/dispatch"
)

// Global hotkeys are grabbed as Ctrl+Shift+<letter>.
const injectMods = dispatch.ModCtrl | dispatch.ModShift

func applyInjectMods(kb *keybd_event.KeyBonding) {
	kb.HasCTRL(true)
	kb.HasSHIFT(true)
}
