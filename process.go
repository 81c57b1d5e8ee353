package vbfplot

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/decibelcooper/vbfplot/ntuple"
	"github.com/decibelcooper/vbfplot/vbf"
)

// VisitFunc is called for every event of every input file. Calls for
// different files may run concurrently; calls for the same file run in
// entry order on a single goroutine.
type VisitFunc func(file int, entry int64, ev *vbf.Event) error

// cancelCheck is the number of events read between checks for cancellation.
const cancelCheck = 1024

// ProcessFiles reads the files concurrently, at most workers at a time, and
// visits their events. workers <= 0 reads all files at once. The first error,
// from a file or from visit, cancels the remaining work.
func ProcessFiles(ctx context.Context, files []string, menu *vbf.TriggerMenu, workers int, bar *progressbar.ProgressBar, visit VisitFunc) error {
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			var entry int64
			return ntuple.ScanFile(name, menu, func(ev *vbf.Event) error {
				if entry%cancelCheck == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				if err := visit(i, entry, ev); err != nil {
					return fmt.Errorf("%s: entry %d: %w", name, entry, err)
				}
				entry++
				if bar != nil {
					bar.Add(1)
				}
				return nil
			})
		})
	}
	return g.Wait()
}

// CountEntries returns the total number of events in the files.
func CountEntries(files []string) (int64, error) {
	var n int64
	menu := vbf.NewTriggerMenu()
	for _, name := range files {
		r, err := ntuple.Open(name, menu)
		if err != nil {
			return 0, err
		}
		n += r.Entries()
		r.Close()
	}
	return n, nil
}

// NewProgressBar returns a bar on stderr counting events. A negative total
// shows a spinner instead.
func NewProgressBar(total int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("events"),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
