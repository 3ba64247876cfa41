// Package mnemonic finds the shortcut letter marked inside a display label.
package mnemonic

import (
	"strings"
	"unicode/utf8"
)

// Marker precedes the shortcut letter in a label, as in "&Save" or "Save &As".
const Marker = '&'

// Mnemonic is a label split around its shortcut letter. Letter keeps the case
// it had in the label.
type Mnemonic struct {
	Prefix string
	Letter string
	Suffix string
}

// Extract splits label at the first Marker. Only the first marker counts;
// later ones are left in Suffix as literal text. A label with no marker, or
// whose only marker is the last character, has no mnemonic.
func Extract(label string) (Mnemonic, bool) {
	i := strings.IndexRune(label, Marker)
	if i < 0 {
		return Mnemonic{}, false
	}
	rest := label[i+utf8.RuneLen(Marker):]
	if rest == "" {
		return Mnemonic{}, false
	}
	_, size := utf8.DecodeRuneInString(rest)
	return Mnemonic{
		Prefix: label[:i],
		Letter: rest[:size],
		Suffix: rest[size:],
	}, true
}

// Key is the registry identifier for the letter.
func (m Mnemonic) Key() string {
	return strings.ToLower(m.Letter)
}

// Text is the label as displayed, without the marker.
func (m Mnemonic) Text() string {
	return m.Prefix + m.Letter + m.Suffix
}

// Strip returns label as it should be displayed: the marker is removed when
// it designates a letter, otherwise label is returned unchanged.
func Strip(label string) string {
	m, ok := Extract(label)
	if !ok {
		return label
	}
	return m.Text()
}
