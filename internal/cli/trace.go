package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/caldermed/traceworks/internal/engine"
)

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace [snapshot.yaml]",
		Short: "Build the requirement traceability matrix",
		Long: `Resolve requirement -> output -> verification -> validation links and
classify every requirement as linked or gapped at each stage. Validation
applies to user needs only; other requirements show n/a.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(rootOpts, cmd, args)
		},
	}
	return cmd
}

func runTrace(opts *RootOptions, cmd *cobra.Command, args []string) error {
	formatter := newFormatter(opts, cmd)

	snap, err := resolveSnapshot(cmd.Context(), opts, args)
	if err != nil {
		return err
	}

	matrix, err := engine.BuildMatrix(snap.Requirements, snap.Outputs, snap.Verifications, snap.Validations)
	if err != nil {
		if engine.IsNoRequirementsError(err) {
			return WrapExitError(ExitFailure, "trace failed", err)
		}
		return err
	}

	if formatter.Format == "json" {
		return formatter.JSON(matrix)
	}
	writeTraceText(formatter, matrix)
	return nil
}

func writeTraceText(f *OutputFormatter, matrix *engine.TraceMatrix) {
	for _, row := range matrix.Rows {
		f.Textf("%-12s output=%s verification=%s validation=%s\n",
			row.RequirementID,
			cellText(row.Output), cellText(row.Verification), cellText(row.Validation))
	}
	for _, w := range matrix.Warnings {
		f.Textf("warning [%s]: %s\n", w.Code, w.Message)
	}
}

func cellText(cell engine.TraceCell) string {
	if cell.State == engine.LinkLinked {
		return "linked(" + strings.Join(cell.Refs, ",") + ")"
	}
	return string(cell.State)
}
