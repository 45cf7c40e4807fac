package model

import "time"

// CatalogEntry is one row of a catalog listing.
type CatalogEntry struct {
	Kind      string
	Name      string
	Produces  string
	Signature string
}

// CatalogSummary describes a loaded catalog for display.
type CatalogSummary struct {
	Subject string
	Entries []CatalogEntry
}

// CorpusEntry is one generated test case in rendered form.
type CorpusEntry struct {
	ID       uint
	Length   int
	Rendered string
}

// Progress reports the state of a running generation batch.
type Progress struct {
	Done       int
	Total      int
	Statements int
	Failures   int
}

// GenerationReport summarizes a finished generation batch.
type GenerationReport struct {
	Subject    string
	Requested  int
	Generated  int
	Failed     int
	Statements int
	Seed       int64
	OutputDir  string
	Elapsed    time.Duration
}
