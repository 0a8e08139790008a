package rule

import "time"

// Condition is one atomic metric comparison. Metric, Operator and Value are
// kept as raw strings: the value preserves whatever the user typed so edits
// round-trip exactly, and unknown enum values pass through compilation as-is
// instead of failing.
type Condition struct {
	ID       string `json:"id"`
	Metric   string `json:"metric"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// Complete reports whether all three fields are set. Only complete conditions
// may enter a group.
func (c Condition) Complete() bool {
	return c.Metric != "" && c.Operator != "" && c.Value != ""
}

// ConditionGroup combines its own conditions with LogicalOperator and chains
// to the previous group via Type. The first group conventionally carries
// Type "IF", which has no combinational meaning.
type ConditionGroup struct {
	ID              string      `json:"id"`
	Type            string      `json:"type"`            // "IF" | "AND" | "OR"
	LogicalOperator string      `json:"logicalOperator"` // "AND" | "OR"
	Conditions      []Condition `json:"conditions"`
}

// Action describes one effect to apply when the rule fires. Exactly one of
// Amount/Percentage is set for budget actions; Message is only meaningful for
// telegram notifications; campaign actions carry no payload at all.
type Action struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Label      string `json:"label,omitempty"`
	Amount     string `json:"amount,omitempty"`
	Percentage string `json:"percentage,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Execution modes for rule scheduling.
const (
	ModeContinuous = "continuous"
	ModeSpecific   = "specific"
	ModeInterval   = "interval"
)

// Rule statuses. A rule is born as draft client-side; the backend owns every
// other transition.
const (
	StatusActive = "active"
	StatusPaused = "paused"
	StatusError  = "error"
	StatusDraft  = "draft"
)

// Schedule holds the execution timing configuration of a rule. Which fields
// are meaningful depends on ExecutionMode.
type Schedule struct {
	ExecutionMode    string              `json:"executionMode"`
	SelectedTimes    []string            `json:"selectedTimes,omitempty"`
	SelectedDays     []string            `json:"selectedDays,omitempty"`
	SelectedDates    []string            `json:"selectedDates,omitempty"`
	DateTimeMap      map[string][]string `json:"dateTimeMap,omitempty"`
	SelectedInterval int                 `json:"selectedInterval,omitempty"` // seconds
	CustomInterval   int                 `json:"customInterval,omitempty"`   // seconds, overrides SelectedInterval
}

// Telemetry fields are owned by the backend; the builder only displays them
// and never constructs or mutates them.
type Telemetry struct {
	Triggers    int        `json:"triggers,omitempty"`
	SuccessRate float64    `json:"successRate,omitempty"`
	ErrorCount  int        `json:"errorCount,omitempty"`
	LastRun     *time.Time `json:"lastRun,omitempty"`
	LastCheck   *time.Time `json:"lastCheck,omitempty"`
	NextCheck   *time.Time `json:"nextCheck,omitempty"`
}

// Rule is the aggregate document round-tripped with the backend.
type Rule struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Priority    string `json:"priority"` // low | medium | high
	Status      string `json:"status"`

	Schedule

	RuleGroups []ConditionGroup `json:"ruleGroups"`
	Actions    []Action         `json:"actions"`

	// Target assignment. CampaignAssignments is derived by grouping
	// CampaignIDs by owning account and is recomputed on every save.
	Usernames           []string            `json:"usernames,omitempty"`
	CampaignIDs         []string            `json:"campaignIds,omitempty"`
	CampaignAssignments map[string][]string `json:"campaignAssignments,omitempty"`

	Telemetry
}
