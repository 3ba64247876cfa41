package doctor

import (
	"context"
	"fmt"
	"time"

	"mnemo/clipboard"
	"mnemo/dispatch"
	"mnemo/hotkey"
	"mnemo/shutdown"
)

const waitTimeout = 10 * time.Second

// Options control which checks run.
type Options struct {
	Activator string
	// Inject, when set, skips the prompt and runs the synthetic key check.
	Inject bool
}

// Run executes interactive diagnostic checks and returns an exit code (0=all pass, 1=any fail).
func Run(opts Options) int {
	ctx, stop := shutdown.Context(context.Background())
	defer stop()

	fmt.Println("mnemo doctor - interactive system diagnostics")
	fmt.Println("=============================================")

	if opts.Activator == "" {
		opts.Activator = dispatch.KeyAlt
	}

	allPass := true

	src := hotkey.NewWithActivator(opts.Activator)
	if !checkSource(src) {
		allPass = false
	} else {
		defer src.Unregister()
		if !checkActivator(ctx, src, opts.Activator) {
			allPass = false
		}
		if allPass && (opts.Inject || confirm("Inject a synthetic shortcut? [y/N] ")) {
			if !checkInjection(ctx, src) {
				allPass = false
			}
		}
	}
	if !checkClipboard() {
		allPass = false
	}

	fmt.Println()
	if allPass {
		fmt.Println("All checks passed!")
	} else {
		fmt.Println("Some checks failed. See details above.")
	}

	if allPass {
		return 0
	}
	return 1
}

func checkSource(src hotkey.Source) bool {
	fmt.Println()
	fmt.Println("[1/4] Key source")

	msg, err := hotkey.Diagnose()
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	if err := src.Register(); err != nil {
		fmt.Printf("  FAIL: could not register key source: %v\n", err)
		return false
	}
	fmt.Printf("  PASS: %s\n", msg)
	return true
}

func checkActivator(ctx context.Context, src hotkey.Source, activator string) bool {
	fmt.Println()
	fmt.Println("[2/4] Modifier detection")
	fmt.Printf("Hold %s and press any letter...\n", activator)

	held := false
	ev, err := waitFor(ctx, src, func(ev dispatch.Event) bool {
		if ev.Key == activator {
			held = ev.Down
			return false
		}
		return held && ev.Down && len(ev.Key) == 1
	})
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	fmt.Printf("  PASS: detected %s+%s\n", activator, ev.Key)
	return true
}

func checkInjection(ctx context.Context, src hotkey.Source) bool {
	fmt.Println()
	fmt.Println("[3/4] Synthetic shortcut")

	if err := inject(); err != nil {
		fmt.Printf("  FAIL: could not inject keystroke: %v\n", err)
		return false
	}
	ev, err := waitFor(ctx, src, func(ev dispatch.Event) bool {
		return ev.Down && ev.Key == injectKey && ev.Mods.Has(injectMods)
	})
	if err != nil {
		fmt.Printf("  FAIL: injected %s+%s not seen: %v\n", injectMods, injectKey, err)
		return false
	}
	fmt.Printf("  PASS: saw %s+%s\n", ev.Mods, ev.Key)
	return true
}

func checkClipboard() bool {
	fmt.Println()
	fmt.Println("[4/4] Clipboard (submit actions)")

	if !clipboard.Available() {
		fmt.Println("  FAIL: no clipboard backend (install xclip, xsel or wl-clipboard)")
		return false
	}
	const probe = "mnemo doctor"
	if err := clipboard.Copy(probe); err != nil {
		fmt.Printf("  FAIL: copy: %v\n", err)
		return false
	}
	got, err := clipboard.Read()
	if err != nil {
		fmt.Printf("  FAIL: read: %v\n", err)
		return false
	}
	if got != probe {
		fmt.Printf("  FAIL: read back %q, want %q\n", got, probe)
		return false
	}
	fmt.Println("  PASS: clipboard round trip")
	return true
}

// waitFor drains src until match accepts an event, the timeout passes or ctx
// is cancelled.
func waitFor(ctx context.Context, src hotkey.Source, match func(dispatch.Event) bool) (dispatch.Event, error) {
	timer := time.NewTimer(waitTimeout)
	defer timer.Stop()
	for {
		select {
		case ev, ok := <-src.Events():
			if !ok {
				return dispatch.Event{}, fmt.Errorf("key source closed")
			}
			if match(ev) {
				return ev, nil
			}
		case <-timer.C:
			return dispatch.Event{}, fmt.Errorf("timeout after %s", waitTimeout)
		case <-ctx.Done():
			return dispatch.Event{}, fmt.Errorf("interrupted")
		}
	}
}
