package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
)

// extractProgress wraps a progress bar for the per-file extraction loop.
type extractProgress struct {
	bar   *progressbar.ProgressBar
	quiet bool
}

func newExtractProgress(totalFiles int, quiet bool) *extractProgress {
	p := &extractProgress{quiet: quiet}
	if quiet || totalFiles == 0 {
		return p
	}

	p.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Extracting messages"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
	return p
}

func (p *extractProgress) fileDone() {
	if p.bar != nil {
		p.bar.Add(1)
	}
}

func (p *extractProgress) finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}
