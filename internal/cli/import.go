package cli

import (
	"github.com/spf13/cobra"

	"github.com/caldermed/traceworks/internal/store"
)

// ImportResult reports what an import wrote, per collection.
type ImportResult struct {
	Written int            `json:"written"`
	Counts  map[string]int `json:"counts"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <snapshot.yaml>",
		Short: "Import a snapshot file into a SQLite database",
		Long: `Replace the database contents with the record collections from a YAML
snapshot. Records without an id are assigned one on the way in. Requires
--db.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runImport(opts *RootOptions, cmd *cobra.Command, path string) error {
	formatter := newFormatter(opts, cmd)

	if opts.DBPath == "" {
		return NewExitError(ExitCommandError, "import requires --db")
	}

	snap, err := LoadSnapshotFile(path)
	if err != nil {
		return err
	}

	s, err := store.Open(opts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot open database", err)
	}
	defer s.Close()

	written, err := s.ImportSnapshot(cmd.Context(), snap)
	if err != nil {
		return WrapExitError(ExitCommandError, "import failed", err)
	}
	counts, err := s.Counts(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot count records", err)
	}

	result := &ImportResult{Written: written, Counts: counts}
	if formatter.Format == "json" {
		return formatter.JSON(result)
	}
	formatter.Textf("imported %d record(s) into %s\n", written, opts.DBPath)
	for _, c := range store.Collections {
		if counts[c] > 0 {
			formatter.Textf("  %-14s %d\n", c, counts[c])
		}
	}
	return nil
}
