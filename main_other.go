//go:build !linux

package main

import (
	"os"
	"runtime"

	"golang.design/x/hotkey/mainthread"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	// The GUI owns the main thread itself; global hotkeys need it otherwise.
	for _, arg := range os.Args[1:] {
		if arg == "--gui" || arg == "-gui" {
			run()
			return
		}
	}
	mainthread.Init(run)
}
