package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/caldermed/traceworks/internal/record"
	"github.com/caldermed/traceworks/internal/store"
)

// LoadSnapshotFile reads a YAML snapshot of record collections.
//
// Decoding is tolerant within records (the record types absorb malformed
// scalars), but a file that is not a YAML mapping at all is a command
// error - there is nothing to degrade to.
func LoadSnapshotFile(path string) (*record.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("cannot read snapshot %s", path), err)
	}

	var snap record.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("cannot parse snapshot %s", path), err)
	}
	slog.Debug("loaded snapshot file", "path", path,
		"tasks", len(snap.Tasks), "requirements", len(snap.Requirements))
	return &snap, nil
}

// resolveSnapshot loads the record collections for an analytics command:
// from the SQLite database when --db is set, otherwise from the snapshot
// file argument.
func resolveSnapshot(ctx context.Context, opts *RootOptions, args []string) (*record.Snapshot, error) {
	if opts.DBPath != "" {
		s, err := store.Open(opts.DBPath)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("cannot open database %s", opts.DBPath), err)
		}
		defer s.Close()

		snap, err := s.LoadSnapshot(ctx)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "cannot load records from database", err)
		}
		slog.Debug("loaded snapshot from database", "path", opts.DBPath)
		return snap, nil
	}

	if len(args) < 1 {
		return nil, NewExitError(ExitCommandError, "a snapshot file argument or --db is required")
	}
	return LoadSnapshotFile(args[0])
}
