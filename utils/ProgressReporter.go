package utils

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// ProgressReporter defines methods for reporting progress.
type ProgressReporter interface {
	// SetTotal reinitializes the progress with the new total count. A total of zero or less means unknown.
	SetTotal(total int)
	// Increment increases the progress by one.
	Increment()
}

// BarProgressReporter is a concrete implementation using progressbar.
type BarProgressReporter struct {
	description string
	writer      io.Writer
	bar         *progressbar.ProgressBar
	total       int
}

// NewBarProgressReporter creates a new BarProgressReporter with the given total and description.
func NewBarProgressReporter(total int, description string) *BarProgressReporter {
	p := &BarProgressReporter{
		description: description,
		writer:      os.Stdout,
	}
	p.SetTotal(total)
	return p
}

// SetTotal reinitializes the progress bar; an unknown or zero total renders a spinner.
func (p *BarProgressReporter) SetTotal(total int) {
	if total <= 0 {
		total = -1
	}
	p.total = total
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionSetDescription(p.description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionThrottle(100e6),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(p.writer, "\n")
		}),
	)
}

// Increment increases the progress bar by one.
func (p *BarProgressReporter) Increment() {
	_ = p.bar.Add(1)
}

// NoopProgressReporter discards progress, used in Lambda mode and tests.
type NoopProgressReporter struct{}

func (NoopProgressReporter) SetTotal(int) {}

func (NoopProgressReporter) Increment() {}
