package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	m "stitch.dev/pkg/stitch/internal/model"
	"stitch.dev/pkg/stitch/pkg"
)

// CorpusStore persists rendered test cases under an output directory.
type CorpusStore interface {
	Save(ctx context.Context, dir string, corpus pkg.Spill[m.CorpusEntry]) (int, error)
}

type fileCorpusStore struct{}

// NewCorpusStore creates a store writing one file per test case.
func NewCorpusStore() CorpusStore {
	return &fileCorpusStore{}
}

// Save implements CorpusStore. Entries are written as case_<id>.txt files;
// the number of written files is returned.
func (s *fileCorpusStore) Save(ctx context.Context, dir string, corpus pkg.Spill[m.CorpusEntry]) (int, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		slog.Error("failed to create corpus dir", "dir", dir, "error", err)
		return 0, fmt.Errorf("failed to create corpus dir: %w", err)
	}

	written := 0

	err := corpus.Range(func(_ uint64, entry m.CorpusEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(dir, fmt.Sprintf("case_%04d.txt", entry.ID))

		if err := os.WriteFile(path, []byte(entry.Rendered), 0o600); err != nil {
			slog.Error("failed to write corpus entry", "path", path, "error", err)
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		written++

		return nil
	})
	if err != nil {
		return written, err
	}

	slog.Info("saved corpus", "dir", dir, "entries", written)

	return written, nil
}
