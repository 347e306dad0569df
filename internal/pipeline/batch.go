package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/pyforge/wheel-installer/internal/utils/logger"
)

// Batch fans a list of requirements out over a pool of workers, each
// running the shared Pipeline, and joins on all of them. A single
// requirement's failure never cancels its siblings.
type Batch struct {
	Pipeline *Pipeline
	// Workers bounds the number of requirements in flight at once.
	Workers int
	// Progress enables the batch progress bar on stderr.
	Progress bool
	// Out receives one line per failed requirement, in submission order.
	// This list is the sole machine-consumed output of a run.
	Out io.Writer
}

// Run processes every requirement and returns a report with one outcome
// per requirement, ordered by submission order regardless of completion
// order.
func (b *Batch) Run(ctx context.Context, reqs []Requirement) *Report {
	log := logger.Logger()

	workers := b.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(reqs) {
		workers = len(reqs)
	}

	total := len(reqs)
	outcomes := make([]Outcome, total)
	jobs := make(chan int, total)
	var wg sync.WaitGroup

	var bar *progressbar.ProgressBar
	if b.Progress && total > 0 {
		bar = progressbar.NewOptions(total,
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowDescriptionAtLineEnd(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(200*time.Millisecond),
			progressbar.OptionSpinnerType(10),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}

	log.Infof("processing %d requirements with %d workers", total, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				req := reqs[idx]
				if bar != nil {
					bar.Describe(req.String())
				}

				// Each slot is written by exactly one worker.
				outcomes[idx] = b.Pipeline.Run(ctx, req)

				if o := outcomes[idx]; o.Failed() {
					log.Warnf("%s: %s (%s)", o.Requirement, o.Kind, o.Detail)
				} else {
					log.Debugf("%s: %s", o.Requirement, o.Kind)
				}
				if bar != nil {
					if err := bar.Add(1); err != nil {
						log.Errorf("failed to add to progress bar: %v", err)
					}
				}
			}
		}()
	}

	for idx := range reqs {
		jobs <- idx
	}
	close(jobs)

	wg.Wait()

	if bar != nil {
		if err := bar.Finish(); err != nil {
			log.Errorf("failed to finish progress bar: %v", err)
		}
	}

	report := &Report{Outcomes: outcomes}

	if b.Out != nil {
		for _, line := range report.FailedLines() {
			fmt.Fprintln(b.Out, line)
		}
	}

	return report
}
