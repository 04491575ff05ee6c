package cli

import (
	"github.com/spf13/cobra"

	"github.com/caldermed/traceworks/internal/engine"
)

// RiskReport is the derived risk view: per-hazard bands plus the band
// tallies used for chart aggregation.
type RiskReport struct {
	Hazards []engine.HazardAssessment `json:"hazards"`
	Initial engine.BandCounts         `json:"initial"`
	Final   engine.BandCounts         `json:"final"`
}

// NewRiskCommand creates the risk command.
func NewRiskCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk [snapshot.yaml]",
		Short: "Classify hazard risk levels",
		Long: `Derive initial and final risk bands for every hazard from its severity
and occurrence ratings, plus per-band tallies. Hazards with missing or
malformed ratings classify as N/A and stay in the table.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRisk(rootOpts, cmd, args)
		},
	}
	return cmd
}

func runRisk(opts *RootOptions, cmd *cobra.Command, args []string) error {
	formatter := newFormatter(opts, cmd)

	snap, err := resolveSnapshot(cmd.Context(), opts, args)
	if err != nil {
		return err
	}

	assessments := engine.AnnotateHazards(snap.Hazards)
	initial, final := engine.CountLevels(assessments)
	report := &RiskReport{Hazards: assessments, Initial: initial, Final: final}

	if formatter.Format == "json" {
		return formatter.JSON(report)
	}
	for _, a := range report.Hazards {
		f := "-"
		if a.RiskControlReqID != "" {
			f = a.RiskControlReqID
		}
		formatter.Textf("%-12s initial=%-6s final=%-6s control=%s\n",
			a.HazardID, a.InitialRisk, a.FinalRisk, f)
	}
	formatter.Textf("initial bands: low=%d medium=%d high=%d na=%d\n",
		report.Initial.Low, report.Initial.Medium, report.Initial.High, report.Initial.NA)
	formatter.Textf("final bands:   low=%d medium=%d high=%d na=%d\n",
		report.Final.Low, report.Final.Medium, report.Final.High, report.Final.NA)
	return nil
}
