package runner

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/codelint/pkg/analyzer"
	"github.com/yaklabco/codelint/pkg/protocol"
)

// Walker yields candidate file paths beneath a root, already filtered
// by ignore rules. The runner defines the interface it consumes;
// pkg/walker provides the default implementation.
//
// The sequence must be lazy and finite, and restartable across calls.
// Returning false from yield stops the walk early.
type Walker interface {
	Walk(ctx context.Context, root string, yield func(path string) bool) error
}

// Runner dispatches per-file analysis across a worker pool.
type Runner struct {
	// Analyzer runs the staged pipeline for one file. Its engine
	// handle is shared, read-only, across all concurrent tasks.
	Analyzer *analyzer.Analyzer

	// Walker enumerates candidate paths.
	Walker Walker
}

// New creates a Runner.
func New(a *analyzer.Analyzer, w Walker) *Runner {
	return &Runner{Analyzer: a, Walker: w}
}

// RunFull analyzes every eligible file under opts.Roots and returns the
// aggregate once all dispatched work completes. The pipeline is a
// three-stage chain: a producer walks the roots into an unbuffered work
// channel, a bounded pool of workers analyzes paths, and the calling
// goroutine aggregates results until the last worker finishes. The
// unbuffered channels give natural backpressure: the producer can never
// run arbitrarily far ahead of analysis.
//
// Clean files appear in the aggregate with an empty diagnostic list so
// the editor layer can clear stale diagnostics for them.
func (r *Runner) RunFull(ctx context.Context, opts Options) (*Result, error) {
	workCh := make(chan string)
	outCh := make(chan FileResult)

	var discovered atomic.Int64

	group, gctx := errgroup.WithContext(ctx)

	// Producer: enumerate paths into the work queue, counting what was
	// forwarded. The count travels back through the Result.
	group.Go(func() error {
		defer close(workCh)
		for _, root := range opts.Roots {
			walkErr := r.Walker.Walk(gctx, root, func(path string) bool {
				if !opts.eligible(path) {
					return true
				}
				select {
				case <-gctx.Done():
					return false
				case workCh <- path:
					discovered.Add(1)
					return true
				}
			})
			if walkErr != nil {
				return fmt.Errorf("enumerate %s: %w", root, walkErr)
			}
			if gctx.Err() != nil {
				return gctx.Err()
			}
		}
		return nil
	})

	// Fan-out: a fixed pool drains the work queue.
	var workers errgroup.Group
	for range opts.effectiveJobs() {
		workers.Go(func() error {
			for path := range workCh {
				fr, err := r.analyzeOne(gctx, path)
				if err != nil {
					return err
				}
				select {
				case <-gctx.Done():
					return gctx.Err()
				case outCh <- fr:
				}
			}
			return nil
		})
	}
	group.Go(func() error {
		defer close(outCh)
		return workers.Wait()
	})

	// Aggregator: drain until the last worker signals completion by
	// closing the results channel.
	result := &Result{}
	for fr := range outCh {
		result.accumulate(fr)
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	result.Stats.FilesDiscovered = int(discovered.Load())
	return result, nil
}

// RunSingle analyzes one file, bypassing the fan-out machinery. A path
// without a recognized extension returns (nil, nil): not applicable
// rather than an error.
func (r *Runner) RunSingle(ctx context.Context, opts Options, path string) (*FileResult, error) {
	if !opts.eligible(path) {
		return nil, nil
	}
	fr, err := r.analyzeOne(ctx, path)
	if err != nil {
		return nil, err
	}
	return &fr, nil
}

// analyzeOne wraps one analyzer invocation, materializing clean files
// as an empty diagnostic list.
func (r *Runner) analyzeOne(ctx context.Context, path string) (FileResult, error) {
	outcome, err := r.Analyzer.AnalyzePath(ctx, path)
	if err != nil {
		return FileResult{}, err
	}
	if outcome == nil {
		return FileResult{Path: path, Diagnostics: []protocol.Diagnostic{}}, nil
	}
	return FileResult{
		Path:        outcome.Path,
		Diagnostics: outcome.Diagnostics,
		Fixed:       outcome.Fixed,
		Failed:      outcome.Failed,
	}, nil
}
