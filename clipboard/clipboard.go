// Package clipboard copies submitted form values to the system clipboard.
package clipboard

import (
	"fmt"
	"strings"

	cb "github.com/atotto/clipboard"
)

func Read() (string, error) {
	return cb.ReadAll()
}

func Copy(text string) error {
	return cb.WriteAll(text)
}

// Available reports whether a clipboard backend was found.
func Available() bool {
	return !cb.Unsupported
}

// Pair is one submitted form value.
type Pair struct {
	Label string
	Value string
}

// Format renders pairs as "label: value" lines.
func Format(pairs []Pair) string {
	var b strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&b, "%s: %s\n", p.Label, p.Value)
	}
	return b.String()
}

// CopyPairs formats pairs and copies them.
func CopyPairs(pairs []Pair) error {
	if err := Copy(Format(pairs)); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
