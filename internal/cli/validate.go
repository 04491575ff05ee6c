package cli

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// ValidationFinding is one advisory shape problem in a snapshot.
type ValidationFinding struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool                `json:"valid"`
	Findings []ValidationFinding `json:"findings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <snapshot.yaml>",
		Short: "Check a snapshot against the advisory record schema",
		Long: `Validate a YAML snapshot against the CUE record schema.

Findings are advisory: the analytics commands tolerate the same defects
by degrading row by row. Validate surfaces them ahead of time so the
data can be fixed at the source.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	data, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("cannot read snapshot %s", path), err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("cannot parse snapshot %s", path), err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	findings, err := validateSnapshot(normalizeDoc(doc))
	if err != nil {
		return WrapExitError(ExitCommandError, "schema validation unavailable", err)
	}

	result := &ValidationResult{Valid: len(findings) == 0, Findings: findings}
	if formatter.Format == "json" {
		if err := formatter.JSON(result); err != nil {
			return err
		}
	} else {
		if result.Valid {
			formatter.Textf("snapshot is valid\n")
		}
		for _, f := range findings {
			if f.Path != "" {
				formatter.Textf("finding at %s: %s\n", f.Path, f.Message)
			} else {
				formatter.Textf("finding: %s\n", f.Message)
			}
		}
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d validation finding(s)", len(findings)))
	}
	return nil
}

// normalizeDoc rewrites YAML-native timestamps as ISO date strings so the
// decoded document only carries scalar kinds the schema speaks.
func normalizeDoc(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeDoc(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeDoc(item)
		}
		return out
	case time.Time:
		return val.UTC().Format("2006-01-02")
	default:
		return v
	}
}

// validateSnapshot unifies the decoded snapshot with the embedded CUE
// schema and collects every violation.
func validateSnapshot(doc any) ([]ValidationFinding, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	snapshot := schema.LookupPath(cue.ParsePath("#Snapshot"))
	if err := snapshot.Err(); err != nil {
		return nil, fmt.Errorf("lookup #Snapshot: %w", err)
	}

	value := ctx.Encode(doc)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	unified := snapshot.Unify(value)
	err := unified.Validate(cue.Concrete(false))
	if err == nil {
		return nil, nil
	}

	var findings []ValidationFinding
	for _, e := range cueerrors.Errors(err) {
		findings = append(findings, ValidationFinding{
			Path:    strings.Join(e.Path(), "."),
			Message: e.Error(),
		})
	}
	return findings, nil
}
