package progress

import (
	"io"
	"os"

	"golang.org/x/term"
)

// fileDescriptor is implemented by *os.File.
type fileDescriptor interface {
	Fd() uintptr
}

// DetectTerminalCapabilities inspects the stream progress is written to.
// Writers that are not terminals (buffers, pipes, files) get plain output.
func DetectTerminalCapabilities(w io.Writer) TerminalCapabilities {
	isTTY := false
	width := 0
	if f, ok := w.(fileDescriptor); ok {
		fd := int(f.Fd())
		isTTY = term.IsTerminal(fd)
		if isTTY {
			if cols, _, err := term.GetSize(fd); err == nil {
				width = cols
			}
		}
	}

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("CONTENTLINT_ASCII") == "1"

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
		Width:           width,
	}
}

// SelectSymbols returns the mark and spinner set for the terminal.
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if !caps.SupportsUnicode {
		return ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9}
	}
	return ProgressSymbols{Checkmark: "✓", Failure: "✗", SpinnerSet: 14}
}
