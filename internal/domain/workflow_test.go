package domain

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stitch.dev/pkg/stitch/internal/adapter"
	m "stitch.dev/pkg/stitch/internal/model"
)

const workflowCatalogYAML = `subject: calc
types:
  - name: Calc
    constructors:
      - params: []
    methods:
      - name: Add
        params:
          - name: n
            type: int
        returns: int
functions:
  - name: double
    params:
      - name: n
        type: int
    returns: int
`

// recordingUI captures everything the workflow displays.
type recordingUI struct {
	mu       sync.Mutex
	catalog  m.CatalogSummary
	report   m.GenerationReport
	progress int
}

func (u *recordingUI) ObserveProgress(_ context.Context, updates <-chan m.Progress) error {
	for range updates {
		u.mu.Lock()
		u.progress++
		u.mu.Unlock()
	}

	return nil
}

func (u *recordingUI) DisplayCatalog(_ context.Context, summary m.CatalogSummary) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.catalog = summary

	return nil
}

func (u *recordingUI) DisplayReport(_ context.Context, report m.GenerationReport) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.report = report

	return nil
}

// detachedUI returns from ObserveProgress immediately and drains in the
// background, the way the TUI does after a quit key press.
type detachedUI struct {
	recordingUI
}

func (u *detachedUI) ObserveProgress(_ context.Context, updates <-chan m.Progress) error {
	go func() {
		for range updates {
		}
	}()

	return nil
}

func writeWorkflowCatalog(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(workflowCatalogYAML), 0o600))

	return path
}

func TestWorkflowGenerate(t *testing.T) {
	t.Run("writes the corpus and reports the outcome", func(t *testing.T) {
		ui := &recordingUI{}
		outputDir := filepath.Join(t.TempDir(), "corpus")
		workflow := NewWorkflow(DefaultConfig(), adapter.NewCorpusStore(), ui)

		err := workflow.Generate(context.Background(), GenerateArgs{
			CatalogPath:  writeWorkflowCatalog(t),
			OutputDir:    outputDir,
			Count:        3,
			TargetLength: 4,
			Workers:      2,
			Seed:         5,
		})
		require.NoError(t, err)

		assert.Equal(t, "calc", ui.report.Subject)
		assert.Equal(t, 3, ui.report.Requested)
		assert.Equal(t, 3, ui.report.Generated)
		assert.Positive(t, ui.report.Statements)
		assert.Equal(t, int64(5), ui.report.Seed)
		assert.Equal(t, outputDir, ui.report.OutputDir)
		assert.Equal(t, 3, ui.progress)

		entries, err := os.ReadDir(outputDir)
		require.NoError(t, err)
		assert.Len(t, entries, 3)

		content, err := os.ReadFile(filepath.Join(outputDir, "case_0000.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "v0 :=")
	})

	t.Run("skips persistence without an output dir", func(t *testing.T) {
		ui := &recordingUI{}
		workflow := NewWorkflow(DefaultConfig(), adapter.NewCorpusStore(), ui)

		err := workflow.Generate(context.Background(), GenerateArgs{
			CatalogPath:  writeWorkflowCatalog(t),
			Count:        1,
			TargetLength: 2,
			Workers:      1,
			Seed:         1,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, ui.report.Generated)
		assert.Empty(t, ui.report.OutputDir)
	})

	t.Run("survives a UI that stops observing early", func(t *testing.T) {
		ui := &detachedUI{}
		workflow := NewWorkflow(DefaultConfig(), adapter.NewCorpusStore(), ui)

		err := workflow.Generate(context.Background(), GenerateArgs{
			CatalogPath:  writeWorkflowCatalog(t),
			Count:        4,
			TargetLength: 3,
			Workers:      2,
			Seed:         9,
		})
		require.NoError(t, err)
		assert.Equal(t, 4, ui.report.Generated)
		assert.Positive(t, ui.report.Statements)
	})

	t.Run("missing catalog fails", func(t *testing.T) {
		ui := &recordingUI{}
		workflow := NewWorkflow(DefaultConfig(), adapter.NewCorpusStore(), ui)

		err := workflow.Generate(context.Background(), GenerateArgs{
			CatalogPath:  filepath.Join(t.TempDir(), "missing.yaml"),
			Count:        1,
			TargetLength: 1,
		})
		require.Error(t, err)
	})
}

func TestWorkflowList(t *testing.T) {
	ui := &recordingUI{}
	workflow := NewWorkflow(DefaultConfig(), adapter.NewCorpusStore(), ui)

	err := workflow.List(context.Background(), ListArgs{CatalogPath: writeWorkflowCatalog(t)})
	require.NoError(t, err)

	assert.Equal(t, "calc", ui.catalog.Subject)
	require.Len(t, ui.catalog.Entries, 3)

	kinds := map[string]int{}
	for _, entry := range ui.catalog.Entries {
		kinds[entry.Kind]++
	}

	assert.Equal(t, 1, kinds["constructor"])
	assert.Equal(t, 1, kinds["method"])
	assert.Equal(t, 1, kinds["function"])
}

func TestSummarizeCatalog(t *testing.T) {
	catalog := newCatalog(
		emptyCtor("Foo"),
		&m.Method{OwnerType: "Foo", Name: "Bar", Signature: m.Signature{Returns: m.Concrete(m.TypeInt)}},
		&m.Field{OwnerType: "Foo", Name: "Size", Type: m.Concrete(m.TypeInt)},
	)

	summary := SummarizeCatalog("demo", catalog)

	assert.Equal(t, "demo", summary.Subject)
	require.Len(t, summary.Entries, 3)

	assert.Equal(t, "constructor", summary.Entries[0].Kind)
	assert.Equal(t, "Foo", summary.Entries[0].Name)
	assert.Equal(t, "Foo", summary.Entries[0].Produces)

	assert.Equal(t, "method", summary.Entries[1].Kind)
	assert.Equal(t, "Foo.Bar", summary.Entries[1].Name)
	assert.Equal(t, "int", summary.Entries[1].Produces)

	assert.Equal(t, "field", summary.Entries[2].Kind)
	assert.Equal(t, "Foo.Size", summary.Entries[2].Name)
	assert.Empty(t, summary.Entries[2].Signature)
}
