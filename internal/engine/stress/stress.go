// Package stress exercises concurrent cloning and releasing of one shared string.
package stress

import (
	"context"
	"sync/atomic"

	"go.trai.ch/arcstr"
	"go.trai.ch/arcstr/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// maxHeld is the largest number of clones one goroutine holds at a time.
const maxHeld = 8

// Runner runs stress workloads.
type Runner struct{}

// NewRunner creates a new Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run spawns cfg.Goroutines workers that each clone and release a shared copy of
// cfg.Payload cfg.Iterations times. It fails with domain.ErrStressMismatch when the
// shared string does not end with exactly one reference or a block is left allocated.
func (r *Runner) Run(ctx context.Context, cfg domain.StressConfig) (domain.StressReport, error) {
	if err := cfg.Validate(); err != nil {
		return domain.StressReport{}, err
	}

	before := arcstr.Stats()
	shared, err := arcstr.New(cfg.Payload.String())
	if err != nil {
		return domain.StressReport{}, zerr.Wrap(err, "failed to build payload")
	}

	var peak atomic.Uint64
	g, ctx := errgroup.WithContext(ctx)
	for w := range cfg.Goroutines {
		g.Go(func() error {
			return work(ctx, shared, w, cfg.Iterations, &peak)
		})
	}
	runErr := g.Wait()

	final, _ := shared.StrongCount()
	shared.Release()
	after := arcstr.Stats()

	report := domain.StressReport{
		Goroutines:   cfg.Goroutines,
		Iterations:   cfg.Iterations,
		PayloadBytes: cfg.Payload.Len(),
		PeakCount:    uint(peak.Load()),
		FinalCount:   final,
		Allocs:       after.Allocs - before.Allocs,
		Frees:        after.Frees - before.Frees,
		LiveBlocks:   after.LiveBlocks - before.LiveBlocks,
	}

	if runErr != nil {
		return report, zerr.Wrap(runErr, "stress run aborted")
	}
	if final != 1 {
		return report, zerr.With(zerr.Wrap(domain.ErrStressMismatch, "shared string did not return to one reference"), "final_count", final)
	}
	if report.LiveBlocks != 0 {
		return report, zerr.With(zerr.Wrap(domain.ErrStressMismatch, "blocks left allocated"), "live_blocks", report.LiveBlocks)
	}
	return report, nil
}

func work(ctx context.Context, shared arcstr.ArcStr, worker, iterations int, peak *atomic.Uint64) error {
	held := make([]arcstr.ArcStr, 0, maxHeld)
	defer func() {
		for i := range held {
			held[i].Release()
		}
	}()

	for i := range iterations {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		for range (worker+i)%maxHeld + 1 {
			held = append(held, shared.Clone())
		}
		if n, ok := shared.StrongCount(); ok {
			updatePeak(peak, uint64(n))
		}

		// A substring keeps the block alive after every clone is gone.
		sub, err := held[0].Slice(0, held[0].Len())
		if err != nil {
			return err
		}
		for j := range held {
			held[j].Release()
		}
		held = held[:0]

		if !sub.EqualArcStr(shared) {
			sub.Release()
			return zerr.With(zerr.Wrap(domain.ErrStressMismatch, "content changed"), "worker", worker)
		}
		sub.Release()
	}
	return nil
}

func updatePeak(peak *atomic.Uint64, n uint64) {
	for {
		cur := peak.Load()
		if n <= cur || peak.CompareAndSwap(cur, n) {
			return
		}
	}
}
