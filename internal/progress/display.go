package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// Display prints the progress of a run's steps to a writer, normally stderr so
// reports on stdout stay clean.
type Display struct {
	capabilities TerminalCapabilities
	current      *Step
	spinner      *spinner.Spinner
	symbols      ProgressSymbols
	out          io.Writer
}

// NewDisplay creates a progress display writing to out.
func NewDisplay(caps TerminalCapabilities, out io.Writer) *Display {
	return &Display{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
		out:          out,
	}
}

// Start begins displaying progress for a step.
func (d *Display) Start(step Step) error {
	if err := step.Validate(); err != nil {
		return err
	}

	d.current = &step
	msg := stepLine(step, "...")

	if d.capabilities.IsTTY {
		d.spinner = spinner.New(
			spinner.CharSets[d.symbols.SpinnerSet],
			100*time.Millisecond,
		)
		d.spinner.Writer = d.out
		d.spinner.Suffix = " " + msg
		d.spinner.Start()
	} else {
		fmt.Fprintln(d.out, msg)
	}

	return nil
}

// Complete stops the spinner and prints the completion line with an optional detail.
func (d *Display) Complete(step Step, detail string) {
	d.Stop()

	mark := paint(d.symbols.Checkmark, color.FgGreen, d.capabilities.SupportsColor)
	suffix := " complete"
	if detail != "" {
		suffix += " (" + detail + ")"
	}
	fmt.Fprintln(d.out, mark, stepLine(step, suffix))

	d.current = nil
}

// Fail stops the spinner and prints the failure line.
func (d *Display) Fail(step Step, err error) {
	d.Stop()

	mark := paint(d.symbols.Failure, color.FgRed, d.capabilities.SupportsColor)
	fmt.Fprintln(d.out, mark, stepLine(step, fmt.Sprintf(" failed: %v", err)))

	d.current = nil
}

// Stop stops the spinner without printing a result line.
func (d *Display) Stop() {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}
