package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/caldermed/traceworks/internal/engine"
	"github.com/caldermed/traceworks/internal/record"
)

// NewActionsCommand creates the actions command.
func NewActionsCommand(rootOpts *RootOptions) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "actions [snapshot.yaml]",
		Short: "Aggregate action items across reviews and changes",
		Long: `Flatten the action items nested in design reviews and design changes
into one list with provenance labels. Items past their due date that are
not completed are reclassified Overdue against the reference date
(--as-of, default today).`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActions(rootOpts, cmd, args, asOf)
		},
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "reference date for overdue derivation (YYYY-MM-DD, default today)")
	return cmd
}

func runActions(opts *RootOptions, cmd *cobra.Command, args []string, asOf string) error {
	formatter := newFormatter(opts, cmd)

	referenceDate := time.Now().UTC().Truncate(24 * time.Hour)
	if asOf != "" {
		d := record.ParseDate(asOf)
		if !d.Valid() {
			return NewExitError(ExitCommandError, fmt.Sprintf("invalid --as-of date %q", asOf))
		}
		referenceDate = d.Time()
	}

	snap, err := resolveSnapshot(cmd.Context(), opts, args)
	if err != nil {
		return err
	}

	items := engine.Aggregate(snap.Reviews, snap.Changes, referenceDate)

	if formatter.Format == "json" {
		return formatter.JSON(items)
	}
	if len(items) == 0 {
		formatter.Textf("no action items recorded\n")
		return nil
	}
	for _, item := range items {
		due := item.DueDate.String()
		if due == "" {
			due = "-"
		}
		formatter.Textf("%-10s %-12s due=%-10s owner=%-12s %s\n",
			item.ID, item.Status, due, item.Owner, item.Source)
	}
	return nil
}
