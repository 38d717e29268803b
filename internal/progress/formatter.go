package progress

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"
)

// stepLine renders "[N/Total] Name" followed by suffix.
func stepLine(step Step, suffix string) string {
	return fmt.Sprintf("[%d/%d] %s%s", step.Number, step.Total, sentenceCase(step.Name), suffix)
}

// sentenceCase upper-cases the first rune of s.
func sentenceCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// paint colors a result mark when the terminal supports it. ASCII marks stay plain.
func paint(mark string, attr color.Attribute, supportsColor bool) string {
	if !supportsColor || strings.HasPrefix(mark, "[") {
		return mark
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(mark)
}
