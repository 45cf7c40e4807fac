package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"stitch.dev/pkg/stitch/internal/adapter"
	m "stitch.dev/pkg/stitch/internal/model"
)

// BatchArgs configures one corpus generation run.
type BatchArgs struct {
	// Count is the number of test cases to generate.
	Count int
	// TargetLength is the statement count a test case grows toward.
	TargetLength int
	// Workers bounds the number of test cases generated concurrently. Each
	// worker owns exactly one test case at a time.
	Workers int
	// Seed is the base seed; worker i draws from an independent stream
	// seeded Seed+i, so a run is reproducible regardless of scheduling.
	Seed int64
	// Progress, when non-nil, receives an update after every finished test
	// case. The channel is not closed by the generator.
	Progress chan<- m.Progress
}

// Generator produces whole test cases by repeatedly asking the factory to
// append randomly chosen accessibles.
type Generator interface {
	GenerateCorpus(ctx context.Context, args BatchArgs) ([]*m.TestCase, error)
}

type generator struct {
	config  Config
	catalog adapter.Catalog
}

// NewGenerator creates a Generator over the given catalog.
func NewGenerator(config Config, catalog adapter.Catalog) Generator {
	return &generator{config: config, catalog: catalog}
}

// GenerateCorpus implements Generator. Test cases are generated one per
// worker; a test case that ends up empty because every construction attempt
// failed is returned as nil in its slot.
func (g *generator) GenerateCorpus(ctx context.Context, args BatchArgs) ([]*m.TestCase, error) {
	if args.Count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", args.Count)
	}

	if args.TargetLength <= 0 {
		return nil, fmt.Errorf("target length must be positive, got %d", args.TargetLength)
	}

	if len(g.catalog.Accessibles()) == 0 {
		return nil, fmt.Errorf("catalog has no accessible objects")
	}

	workers := args.Workers
	if workers <= 0 {
		workers = 1
	}

	testCases := make([]*m.TestCase, args.Count)

	var (
		mu       sync.Mutex
		done     int
		stmts    int
		failures int
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i := range args.Count {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			testCase, failed := g.generateOne(NewRandomness(args.Seed + int64(i)), args.TargetLength)
			testCases[i] = testCase

			mu.Lock()
			done++
			stmts += testCase.Size()
			failures += failed
			update := m.Progress{Done: done, Total: args.Count, Statements: stmts, Failures: failures}
			mu.Unlock()

			if args.Progress != nil {
				select {
				case args.Progress <- update:
				case <-groupCtx.Done():
					return groupCtx.Err()
				}
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return testCases, nil
}

// generateOne grows a single test case toward the target length. Failed
// construction attempts are counted, not retried; the factory never retries
// internally either.
func (g *generator) generateOne(random Randomness, targetLength int) (*m.TestCase, int) {
	factory := NewFactory(g.config, random, g.catalog)
	testCase := m.NewTestCase()
	accessibles := g.catalog.Accessibles()
	failures := 0

	// A catalog full of unsatisfiable entries must not spin forever.
	maxAttempts := targetLength * 3

	for attempt := 0; testCase.Size() < targetLength && attempt < maxAttempts; attempt++ {
		accessible := Choice(random, accessibles)

		if _, err := factory.AppendAccessible(testCase, accessible, -1, 0, true); err != nil {
			slog.Debug("construction attempt failed", "accessible", accessible.Describe(), "error", err)

			failures++
		}
	}

	return testCase, failures
}
