//go:build gui

package main

import (
	"mnemo/config"
	"mnemo/gui"
)

func runGUI(cfg config.Config) error {
	return gui.Run(cfg)
}
