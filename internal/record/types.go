package record

// SourceType values for Requirement records. The set is fixed by the
// data-entry surface; the engine only gives SourceTypeUserNeed special
// meaning (validation traceability applies to user needs alone).
const (
	SourceTypeUserNeed    = "User Need"
	SourceTypeQSR         = "QSR (Device)"
	SourceTypeCGMP        = "cGMP (Drug Interface)"
	SourceTypeStandard    = "Standard"
	SourceTypeRiskControl = "Risk Control"
)

// ActionItem status values. StatusOverdue is derived, never stored.
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusOverdue    = "Overdue"
)

// Task is one row of the project plan. Dates and dependencies are
// tolerant fields; scheduling discards rows it cannot interpret.
type Task struct {
	ID           string  `yaml:"id" json:"id"`
	Name         string  `yaml:"name,omitempty" json:"name,omitempty"`
	StartDate    Date    `yaml:"start_date" json:"start_date"`
	EndDate      Date    `yaml:"end_date" json:"end_date"`
	Dependencies RefList `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
}

// Requirement is a design input, the spine of the traceability matrix.
type Requirement struct {
	ID              string `yaml:"id" json:"id"`
	Description     string `yaml:"description,omitempty" json:"description,omitempty"`
	SourceType      string `yaml:"source_type,omitempty" json:"source_type,omitempty"`
	IsRiskControl   bool   `yaml:"is_risk_control,omitempty" json:"is_risk_control,omitempty"`
	RelatedHazardID string `yaml:"related_hazard_id,omitempty" json:"related_hazard_id,omitempty"`
}

// Output is a design output document linked back to one design input.
type Output struct {
	ID            string `yaml:"id" json:"id"`
	Title         string `yaml:"title,omitempty" json:"title,omitempty"`
	LinkedInputID string `yaml:"linked_input_id,omitempty" json:"linked_input_id,omitempty"`
}

// VerificationTest verifies one design output, and optionally confirms a
// risk-control requirement.
type VerificationTest struct {
	ID                    string `yaml:"id" json:"id"`
	TestName              string `yaml:"test_name,omitempty" json:"test_name,omitempty"`
	OutputVerified        string `yaml:"output_verified,omitempty" json:"output_verified,omitempty"`
	RiskControlVerifiedID string `yaml:"risk_control_verified_id,omitempty" json:"risk_control_verified_id,omitempty"`
}

// ValidationStudy validates one user-need requirement directly.
type ValidationStudy struct {
	ID                string `yaml:"id" json:"id"`
	StudyName         string `yaml:"study_name,omitempty" json:"study_name,omitempty"`
	UserNeedValidated string `yaml:"user_need_validated,omitempty" json:"user_need_validated,omitempty"`
}

// Hazard is one row of the risk management file. Initial ratings are
// pre-mitigation, final ratings post-mitigation; risk levels are derived
// from severity x occurrence by the risk matrix, never stored.
type Hazard struct {
	HazardID          string  `yaml:"hazard_id" json:"hazard_id"`
	Description       string  `yaml:"description,omitempty" json:"description,omitempty"`
	PotentialHarm     string  `yaml:"potential_harm,omitempty" json:"potential_harm,omitempty"`
	InitialSeverity   Ordinal `yaml:"initial_severity,omitempty" json:"initial_severity,omitempty"`
	InitialOccurrence Ordinal `yaml:"initial_occurrence,omitempty" json:"initial_occurrence,omitempty"`
	InitialDetection  Ordinal `yaml:"initial_detection,omitempty" json:"initial_detection,omitempty"`
	FinalSeverity     Ordinal `yaml:"final_severity,omitempty" json:"final_severity,omitempty"`
	FinalOccurrence   Ordinal `yaml:"final_occurrence,omitempty" json:"final_occurrence,omitempty"`
	FinalDetection    Ordinal `yaml:"final_detection,omitempty" json:"final_detection,omitempty"`
	RiskControlReqID  string  `yaml:"risk_control_req_id,omitempty" json:"risk_control_req_id,omitempty"`
}

// ActionItem is one tracked action, nested inside a Review or Change.
type ActionItem struct {
	ID          string `yaml:"id" json:"id"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Owner       string `yaml:"owner,omitempty" json:"owner,omitempty"`
	DueDate     Date   `yaml:"due_date,omitempty" json:"due_date,omitempty"`
	Status      string `yaml:"status,omitempty" json:"status,omitempty"`
}

// Review is a design review meeting with its action items.
type Review struct {
	ID          string       `yaml:"id,omitempty" json:"id,omitempty"`
	Date        Date         `yaml:"date,omitempty" json:"date,omitempty"`
	Phase       string       `yaml:"phase,omitempty" json:"phase,omitempty"`
	ActionItems []ActionItem `yaml:"action_items,omitempty" json:"action_items,omitempty"`
}

// Change is a design change request with its action items.
type Change struct {
	ID          string       `yaml:"id" json:"id"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	ActionItems []ActionItem `yaml:"action_items,omitempty" json:"action_items,omitempty"`
}

// Snapshot is one consistent view of every record collection, as handed
// over by the storage collaborator. The engine never mutates it.
type Snapshot struct {
	Tasks         []Task             `yaml:"tasks,omitempty" json:"tasks,omitempty"`
	Requirements  []Requirement      `yaml:"requirements,omitempty" json:"requirements,omitempty"`
	Outputs       []Output           `yaml:"outputs,omitempty" json:"outputs,omitempty"`
	Verifications []VerificationTest `yaml:"verifications,omitempty" json:"verifications,omitempty"`
	Validations   []ValidationStudy  `yaml:"validations,omitempty" json:"validations,omitempty"`
	Hazards       []Hazard           `yaml:"hazards,omitempty" json:"hazards,omitempty"`
	Reviews       []Review           `yaml:"reviews,omitempty" json:"reviews,omitempty"`
	Changes       []Change           `yaml:"changes,omitempty" json:"changes,omitempty"`
}
