package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caldermed/traceworks/internal/engine"
)

// NewScheduleCommand creates the schedule command.
func NewScheduleCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule [snapshot.yaml]",
		Short: "Compute the project critical path",
		Long: `Run the critical path method over the task dependency graph.

Outputs per-task ES/EF/LS/LF annotations, slack, and the zero-slack
critical set. Tasks with missing or unparseable dates are dropped with a
warning; a cyclic dependency relation is a failure.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(rootOpts, cmd, args)
		},
	}
	return cmd
}

func runSchedule(opts *RootOptions, cmd *cobra.Command, args []string) error {
	formatter := newFormatter(opts, cmd)

	snap, err := resolveSnapshot(cmd.Context(), opts, args)
	if err != nil {
		return err
	}
	formatter.VerboseLog("scheduling %d task(s)", len(snap.Tasks))

	sched, err := engine.ComputeCriticalPath(snap.Tasks)
	if err != nil {
		var ae *engine.AnalyticsError
		if errors.As(err, &ae) {
			return WrapExitError(ExitFailure, "schedule failed", err)
		}
		return err
	}

	if formatter.Format == "json" {
		return formatter.JSON(sched)
	}
	writeScheduleText(formatter, sched)
	return nil
}

func writeScheduleText(f *OutputFormatter, sched *engine.Schedule) {
	if len(sched.Tasks) == 0 {
		f.Textf("no schedulable tasks\n")
	}
	for _, ts := range sched.Tasks {
		marker := " "
		if ts.Critical {
			marker = "*"
		}
		f.Textf("%s %-12s dur=%-3d ES=%-3d EF=%-3d LS=%-3d LF=%-3d slack=%d\n",
			marker, ts.ID, ts.Duration,
			ts.EarliestStart, ts.EarliestFinish, ts.LatestStart, ts.LatestFinish, ts.Slack)
	}
	if len(sched.CriticalPath) > 0 {
		f.Textf("critical path: %s (finish day %d)\n",
			strings.Join(sched.CriticalPath, " -> "), sched.ProjectFinish)
	}
	for _, w := range sched.Warnings {
		f.Textf("warning [%s]: %s\n", w.Code, w.Message)
	}
}
