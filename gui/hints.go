//go:build gui

package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"mnemo/mnemonic"
)

var hintStyle = widget.RichTextStyle{
	Inline:    true,
	ColorName: theme.ColorNamePrimary,
	TextStyle: fyne.TextStyle{Bold: true},
}

// labelSegments renders a field label, highlighting the mnemonic letter
// while hints are visible.
func labelSegments(text string, visible bool) []widget.RichTextSegment {
	m, ok := mnemonic.Extract(text)
	if !ok {
		return []widget.RichTextSegment{plain(text)}
	}
	if !visible {
		return []widget.RichTextSegment{plain(m.Text())}
	}
	return []widget.RichTextSegment{
		plain(m.Prefix),
		&widget.TextSegment{Text: m.Letter, Style: hintStyle},
		plain(m.Suffix),
	}
}

// buttonText brackets the mnemonic letter since buttons carry plain text.
func buttonText(text string, visible bool) string {
	m, ok := mnemonic.Extract(text)
	if !ok {
		return text
	}
	if !visible {
		return m.Text()
	}
	return m.Prefix + "[" + m.Letter + "]" + m.Suffix
}

func plain(s string) *widget.TextSegment {
	return &widget.TextSegment{Text: s, Style: widget.RichTextStyleInline}
}
