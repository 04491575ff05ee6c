// Package harness runs conformance scenarios over the analytics engine.
//
// A scenario is a YAML file bundling one record snapshot with a fixed
// reference date. Running it executes all four analytics and captures the
// combined derived view; golden files under testdata/golden pin the exact
// output byte for byte, which doubles as the idempotence check - a pure
// engine must reproduce the golden on every run.
package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/caldermed/traceworks/internal/engine"
	"github.com/caldermed/traceworks/internal/record"
)

// Scenario bundles a record snapshot with a fixed reference date so runs
// are reproducible.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// AsOf is the reference date for overdue derivation (YYYY-MM-DD).
	// Scenarios must pin it; an empty AsOf means no item is overdue.
	AsOf string `yaml:"as_of,omitempty"`

	// Snapshot holds the record collections under test.
	Snapshot record.Snapshot `yaml:"snapshot"`
}

// ReferenceDate returns the pinned reference date, or the zero time when
// the scenario does not set one.
func (s *Scenario) ReferenceDate() time.Time {
	return record.ParseDate(s.AsOf).Time()
}

// LoadScenario reads a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("scenario %s has no name", path)
	}
	return &sc, nil
}

// LoadScenarios reads every *.yaml scenario in a directory, sorted by
// file name for deterministic test order.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("scan scenarios: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		sc, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

// AnalyticsSnapshot captures one full engine run over a scenario. The
// structural errors the engine can return are recorded as strings so a
// failing analytics pass is itself golden-testable.
type AnalyticsSnapshot struct {
	ScenarioName  string                    `json:"scenario_name"`
	Schedule      *engine.Schedule          `json:"schedule,omitempty"`
	ScheduleError string                    `json:"schedule_error,omitempty"`
	Trace         *engine.TraceMatrix       `json:"trace,omitempty"`
	TraceError    string                    `json:"trace_error,omitempty"`
	Hazards       []engine.HazardAssessment `json:"hazards"`
	InitialBands  engine.BandCounts         `json:"initial_bands"`
	FinalBands    engine.BandCounts         `json:"final_bands"`
	Actions       []engine.ActionItem       `json:"actions"`
}

// Run executes all four analytics over the scenario's snapshot.
func Run(sc *Scenario) *AnalyticsSnapshot {
	result := &AnalyticsSnapshot{ScenarioName: sc.Name}

	sched, err := engine.ComputeCriticalPath(sc.Snapshot.Tasks)
	if err != nil {
		result.ScheduleError = err.Error()
	} else {
		result.Schedule = sched
	}

	matrix, err := engine.BuildMatrix(
		sc.Snapshot.Requirements, sc.Snapshot.Outputs,
		sc.Snapshot.Verifications, sc.Snapshot.Validations)
	if err != nil {
		result.TraceError = err.Error()
	} else {
		result.Trace = matrix
	}

	result.Hazards = engine.AnnotateHazards(sc.Snapshot.Hazards)
	result.InitialBands, result.FinalBands = engine.CountLevels(result.Hazards)

	result.Actions = engine.Aggregate(sc.Snapshot.Reviews, sc.Snapshot.Changes, sc.ReferenceDate())
	return result
}
