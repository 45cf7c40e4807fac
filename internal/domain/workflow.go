package domain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stitch.dev/pkg/stitch/internal/adapter"
	"stitch.dev/pkg/stitch/internal/controller"
	m "stitch.dev/pkg/stitch/internal/model"
	"stitch.dev/pkg/stitch/pkg"
)

// GenerateArgs configures one end-to-end generation run.
type GenerateArgs struct {
	CatalogPath  string
	OutputDir    string
	Count        int
	TargetLength int
	Workers      int
	Seed         int64
}

// ListArgs configures a catalog listing.
type ListArgs struct {
	CatalogPath string
}

// Workflow ties catalog loading, generation, rendering, and persistence
// together behind the CLI commands.
type Workflow interface {
	Generate(ctx context.Context, args GenerateArgs) error
	List(ctx context.Context, args ListArgs) error
}

type workflow struct {
	config Config
	store  adapter.CorpusStore
	ui     controller.UI
}

// NewWorkflow constructs a Workflow backed by the provided corpus store and
// UI.
func NewWorkflow(config Config, store adapter.CorpusStore, ui controller.UI) Workflow {
	return &workflow{
		config: config,
		store:  store,
		ui:     ui,
	}
}

// Generate loads the catalog, generates the requested corpus, renders every
// test case, and writes it to the output directory.
func (w *workflow) Generate(ctx context.Context, args GenerateArgs) error {
	catalog, subject, err := adapter.LoadCatalog(args.CatalogPath)
	if err != nil {
		slog.Error("failed to load catalog", "path", args.CatalogPath, "error", err)
		return err
	}

	slog.Info("starting generation",
		"subject", subject,
		"count", args.Count,
		"targetLength", args.TargetLength,
		"workers", args.Workers,
		"seed", args.Seed)

	start := time.Now()

	testCases, lastProgress, err := w.generateObserved(ctx, catalog, args)
	if err != nil {
		slog.Error("generation failed", "error", err)
		return fmt.Errorf("generation failed: %w", err)
	}

	corpus, err := pkg.NewSpill[m.CorpusEntry]()
	if err != nil {
		return fmt.Errorf("failed to create corpus spill: %w", err)
	}

	defer func() {
		if err := corpus.Close(); err != nil {
			slog.Error("failed to close corpus spill", "error", err)
		}
	}()

	generated, statements, err := w.renderCorpus(testCases, corpus)
	if err != nil {
		return err
	}

	if args.OutputDir != "" {
		if _, err := w.store.Save(ctx, args.OutputDir, corpus); err != nil {
			slog.Error("failed to save corpus", "dir", args.OutputDir, "error", err)
			return fmt.Errorf("failed to save corpus: %w", err)
		}
	}

	report := m.GenerationReport{
		Subject:    subject,
		Requested:  args.Count,
		Generated:  generated,
		Failed:     lastProgress.Failures,
		Statements: statements,
		Seed:       args.Seed,
		OutputDir:  args.OutputDir,
		Elapsed:    time.Since(start),
	}

	return w.ui.DisplayReport(ctx, report)
}

// generateObserved runs the generator while forwarding progress updates to
// the UI. The forwarder retains the last update for the final report.
func (w *workflow) generateObserved(
	ctx context.Context,
	catalog adapter.Catalog,
	args GenerateArgs,
) ([]*m.TestCase, m.Progress, error) {
	updates := make(chan m.Progress)
	forwarded := make(chan m.Progress)
	uiDone := make(chan error, 1)
	lastSeen := make(chan m.Progress, 1)

	go func() {
		uiDone <- w.ui.ObserveProgress(ctx, forwarded)
	}()

	// The forwarder owns the last update and hands it over only after the
	// updates channel drains, so an early-returning UI cannot race the read.
	go func() {
		var last m.Progress

		for update := range updates {
			last = update

			select {
			case forwarded <- update:
			case <-ctx.Done():
			}
		}

		close(forwarded)
		lastSeen <- last
	}()

	generator := NewGenerator(w.config, catalog)
	testCases, err := generator.GenerateCorpus(ctx, BatchArgs{
		Count:        args.Count,
		TargetLength: args.TargetLength,
		Workers:      args.Workers,
		Seed:         args.Seed,
		Progress:     updates,
	})

	close(updates)
	last := <-lastSeen

	if uiErr := <-uiDone; uiErr != nil && err == nil {
		err = uiErr
	}

	if err != nil {
		return nil, last, err
	}

	return testCases, last, nil
}

// renderCorpus renders every non-empty test case and appends it to the
// spill. It returns the number of rendered cases and their total statement
// count.
func (w *workflow) renderCorpus(testCases []*m.TestCase, corpus pkg.Spill[m.CorpusEntry]) (int, int, error) {
	generated := 0
	statements := 0

	for i, testCase := range testCases {
		if testCase == nil || testCase.Size() == 0 {
			slog.Warn("skipping empty test case", "index", i)
			continue
		}

		rendered, err := adapter.RenderTestCase(testCase)
		if err != nil {
			return generated, statements, fmt.Errorf("failed to render test case %d: %w", i, err)
		}

		entry := m.CorpusEntry{
			ID:       uint(i),
			Length:   testCase.Size(),
			Rendered: rendered,
		}

		if err := corpus.Append(entry); err != nil {
			return generated, statements, fmt.Errorf("failed to spill test case %d: %w", i, err)
		}

		generated++
		statements += testCase.Size()
	}

	return generated, statements, nil
}

// List loads the catalog and displays its contents.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	catalog, subject, err := adapter.LoadCatalog(args.CatalogPath)
	if err != nil {
		slog.Error("failed to load catalog", "path", args.CatalogPath, "error", err)
		return err
	}

	return w.ui.DisplayCatalog(ctx, SummarizeCatalog(subject, catalog))
}

// SummarizeCatalog converts catalog contents into display rows.
func SummarizeCatalog(subject string, catalog adapter.Catalog) m.CatalogSummary {
	accessibles := catalog.Accessibles()
	entries := make([]m.CatalogEntry, 0, len(accessibles))

	for _, accessible := range accessibles {
		entries = append(entries, catalogEntry(accessible))
	}

	return m.CatalogSummary{Subject: subject, Entries: entries}
}

func catalogEntry(accessible m.Accessible) m.CatalogEntry {
	entry := m.CatalogEntry{Produces: accessible.GeneratedType().String()}

	switch a := accessible.(type) {
	case *m.Constructor:
		entry.Kind = "constructor"
		entry.Name = string(a.Declaring)
		entry.Signature = a.Signature.String()
	case *m.Method:
		entry.Kind = "method"
		entry.Name = fmt.Sprintf("%s.%s", a.OwnerType, a.Name)
		entry.Signature = a.Signature.String()
	case *m.Function:
		entry.Kind = "function"
		entry.Name = a.Name
		entry.Signature = a.Signature.String()
	case *m.Field:
		entry.Kind = "field"
		entry.Name = fmt.Sprintf("%s.%s", a.OwnerType, a.Name)
	default:
		entry.Kind = "unknown"
		entry.Name = accessible.Describe()
	}

	return entry
}
