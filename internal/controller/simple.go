package controller

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "stitch.dev/pkg/stitch/internal/model"
)

// timeRounding keeps elapsed durations readable in summaries.
const timeRounding = time.Millisecond

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// ObserveProgress prints a line for every tenth finished test case and for
// the last one.
func (s *SimpleUI) ObserveProgress(ctx context.Context, updates <-chan m.Progress) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}

			if update.Done%10 == 0 || update.Done == update.Total {
				s.printf("Generated %d/%d test cases (%d statements, %d failed attempts)\n",
					update.Done, update.Total, update.Statements, update.Failures)
			}
		}
	}
}

// DisplayCatalog renders the catalog contents as a table.
func (s *SimpleUI) DisplayCatalog(ctx context.Context, summary m.CatalogSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if summary.Subject != "" {
		s.printf("Catalog for %s:\n", summary.Subject)
	}

	s.printf("\n%s", renderCatalogTable(summary.Entries))

	return nil
}

func renderCatalogTable(entries []m.CatalogEntry) string {
	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Kind", "Name", "Produces", "Signature"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
	})

	for _, entry := range entries {
		table.Append([]string{entry.Kind, entry.Name, entry.Produces, entry.Signature})
	}

	table.SetFooter([]string{"", "", "", fmt.Sprintf("Total %d", len(entries))})
	table.Render()

	return buffer.String()
}

// DisplayReport prints the generation summary.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.GenerationReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\nGeneration summary:\n")

	if report.Subject != "" {
		s.printf("Subject: %s\n", report.Subject)
	}

	s.printf("Test cases: %d/%d | Statements: %d | Failed attempts: %d\n",
		report.Generated, report.Requested, report.Statements, report.Failed)
	s.printf("Seed: %d | Elapsed: %s\n", report.Seed, report.Elapsed.Round(timeRounding))

	if report.OutputDir != "" {
		s.printf("Corpus written to %s\n", report.OutputDir)
	}

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
