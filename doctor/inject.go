package doctor

import (
	"runtime"
	"time"

	"github.com/micmonay/keybd_event"
)

const injectKey = "m"

func inject() error {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return err
	}
	// uinput needs time before the new virtual device is picked up
	if runtime.GOOS == "linux" {
		time.Sleep(2 * time.Second)
	}
	kb.SetKeys(keybd_event.VK_M)
	applyInjectMods(&kb)
	return kb.Launching()
}
