package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// fileProgress reports progress across the inputs of one command. It is a
// no-op unless stderr is a terminal and there is more than one input.
type fileProgress struct {
	bar *progressbar.ProgressBar
}

func newFileProgress(total int, quiet bool) *fileProgress {
	if quiet || total < 2 || !isTerminal(os.Stderr) {
		return &fileProgress{}
	}
	return &fileProgress{bar: newProgressBar(os.Stderr, total)}
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Parsing inputs"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}

func (p *fileProgress) Add() {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *fileProgress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
