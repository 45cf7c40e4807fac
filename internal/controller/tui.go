package controller

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "stitch.dev/pkg/stitch/internal/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// ObserveProgress runs an interactive progress view until the updates
// channel closes or the context is cancelled.
func (p *TUI) ObserveProgress(ctx context.Context, updates <-chan m.Progress) error {
	model := newProgressModel()
	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithContext(ctx))

	go func() {
		for update := range updates {
			program.Send(progressMsg(update))
		}

		program.Send(generationDoneMsg{})
	}()

	_, err := program.Run()

	// The program can quit before the channel closes, on a key press or on
	// cancellation; keep draining so the producer never blocks.
	go func() {
		for range updates {
		}
	}()

	return err
}

// DisplayCatalog renders a styled catalog listing. The listing is static, so
// it is printed directly rather than run as a program.
func (p *TUI) DisplayCatalog(ctx context.Context, summary m.CatalogSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder

	title := "Catalog"
	if summary.Subject != "" {
		title = fmt.Sprintf("Catalog for %s", summary.Subject)
	}

	b.WriteString(titleStyle.Render(title) + "\n\n")

	for _, entry := range summary.Entries {
		fmt.Fprintf(&b, "  %s %s %s %s\n",
			labelStyle.Render(fmt.Sprintf("%-12s", entry.Kind)),
			valueStyle.Render(entry.Name),
			labelStyle.Render("->"),
			valueStyle.Render(entry.Produces))
	}

	fmt.Fprintf(&b, "\n  %s %s\n",
		labelStyle.Render("Total:"),
		valueStyle.Render(fmt.Sprintf("%d accessible objects", len(summary.Entries))))

	_, err := fmt.Fprint(p.output, b.String())

	return err
}

// DisplayReport renders a styled generation summary.
func (p *TUI) DisplayReport(ctx context.Context, report m.GenerationReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder

	b.WriteString("\n" + titleStyle.Render("Generation summary") + "\n\n")

	if report.Subject != "" {
		writeReportLine(&b, "Subject", report.Subject)
	}

	writeReportLine(&b, "Test cases", fmt.Sprintf("%d/%d", report.Generated, report.Requested))
	writeReportLine(&b, "Statements", fmt.Sprintf("%d", report.Statements))

	failed := fmt.Sprintf("%d", report.Failed)
	if report.Failed > 0 {
		failed = failedStyle.Render(failed)
	}

	writeReportLine(&b, "Failed attempts", failed)
	writeReportLine(&b, "Seed", fmt.Sprintf("%d", report.Seed))
	writeReportLine(&b, "Elapsed", report.Elapsed.Round(timeRounding).String())

	if report.OutputDir != "" {
		writeReportLine(&b, "Corpus", report.OutputDir)
	}

	_, err := fmt.Fprint(p.output, b.String())

	return err
}

func writeReportLine(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-16s", label)), valueStyle.Render(value))
}

// progressMsg delivers a generation progress update into the program.
type progressMsg m.Progress

// generationDoneMsg signals that the updates channel closed.
type generationDoneMsg struct{}

// progressModel is the Bubble Tea model for the generation progress view.
type progressModel struct {
	spinner  spinner.Model
	bar      progress.Model
	latest   m.Progress
	finished bool
}

func newProgressModel() progressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = titleStyle

	return progressModel{
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient()),
	}
}

func (pm progressModel) Init() tea.Cmd {
	return pm.spinner.Tick
}

func (pm progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		pm.latest = m.Progress(msg)
		return pm, nil

	case generationDoneMsg:
		pm.finished = true
		return pm, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		pm.spinner, cmd = pm.spinner.Update(msg)

		return pm, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return pm, tea.Quit
		}

	case tea.WindowSizeMsg:
		pm.bar.Width = msg.Width - 8
		return pm, nil
	}

	return pm, nil
}

func (pm progressModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Stitch - generating test cases") + "\n\n")

	percent := 0.0
	if pm.latest.Total > 0 {
		percent = float64(pm.latest.Done) / float64(pm.latest.Total)
	}

	if pm.finished {
		fmt.Fprintf(&b, "  done %s\n", pm.bar.ViewAs(percent))
	} else {
		fmt.Fprintf(&b, "  %s %s\n", pm.spinner.View(), pm.bar.ViewAs(percent))
	}

	fmt.Fprintf(&b, "\n  %s %s\n",
		labelStyle.Render("Test cases:"),
		valueStyle.Render(fmt.Sprintf("%d/%d", pm.latest.Done, pm.latest.Total)))
	fmt.Fprintf(&b, "  %s %s\n",
		labelStyle.Render("Statements:"),
		valueStyle.Render(fmt.Sprintf("%d", pm.latest.Statements)))

	if pm.latest.Failures > 0 {
		fmt.Fprintf(&b, "  %s %s\n",
			labelStyle.Render("Failed attempts:"),
			failedStyle.Render(fmt.Sprintf("%d", pm.latest.Failures)))
	}

	if !pm.finished {
		b.WriteString("\n  " + labelStyle.Render("q: quit") + "\n")
	}

	return b.String()
}
