package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"
)

// SourceProgress shows a progress bar while data sources load.
type SourceProgress struct {
	bar    *progressbar.ProgressBar
	writer io.Writer
}

// NewSourceProgress creates a progress bar for total sources written to w.
func NewSourceProgress(w io.Writer, total int) *SourceProgress {
	p := &SourceProgress{writer: w}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Loading sources...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(p.writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
	return p
}

// Advance marks one source as processed.
func (p *SourceProgress) Advance(name string) {
	p.bar.Describe(fmt.Sprintf("[cyan][bold]Loaded %s[reset]", name))
	if err := p.bar.Add(1); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Finish completes the bar.
func (p *SourceProgress) Finish() {
	if err := p.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
}
