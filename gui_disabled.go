//go:build !gui

package main

import (
	"errors"

	"mnemo/config"
)

func runGUI(config.Config) error {
	return errors.New("built without GUI support (rebuild with -tags gui)")
}
