package renderer

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers returns the number of logical CPUs, falling back to the Go
// runtime's view when the host cannot be queried
func DefaultWorkers() int {
	if count, err := cpu.Counts(true); err == nil && count > 0 {
		return count
	}
	return runtime.NumCPU()
}

// runRows calls renderRow for every row in [0, rows) on at most workers
// goroutines. Dispatch stops once ctx is cancelled or a row fails; the first
// error is returned.
func runRows(ctx context.Context, rows, workers int, renderRow func(ctx context.Context, row int) error) error {
	if workers <= 0 {
		workers = DefaultWorkers()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for row := 0; row < rows; row++ {
		if gctx.Err() != nil {
			break
		}
		row := row
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return renderRow(gctx, row)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
