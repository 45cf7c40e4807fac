// Package controller provides output adapters for displaying catalogs and
// generation results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	m "stitch.dev/pkg/stitch/internal/model"
)

// UI defines the interface for displaying catalog listings and generation
// progress. Implementations can use different output methods (simple text,
// TUI, etc).
type UI interface {
	// ObserveProgress consumes progress updates until the channel closes or
	// the context is cancelled. An implementation that returns early must
	// keep draining the channel in the background so the producer never
	// blocks.
	ObserveProgress(ctx context.Context, updates <-chan m.Progress) error
	// DisplayCatalog shows the contents of a loaded catalog.
	DisplayCatalog(ctx context.Context, summary m.CatalogSummary) error
	// DisplayReport shows the summary of a finished generation batch.
	DisplayReport(ctx context.Context, report m.GenerationReport) error
}

// NewUI selects the TUI when the output is interactive, plain text
// otherwise.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	if interactive {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether the given file is a character device.
func IsTTY(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}
