package rule

import (
	"fmt"
	"strconv"
	"strings"
)

// Constraints are the tunable limits applied when validating a rule document.
// They come from service configuration and may be swapped at runtime.
type Constraints struct {
	// MaxActionsPerRule bounds the configured actions. Zero disables the
	// check. The conventional product limit is one action per rule.
	MaxActionsPerRule int
	// MinIntervalSeconds is the floor for interval-mode scheduling.
	MinIntervalSeconds int
}

// DefaultConstraints mirrors the product defaults.
func DefaultConstraints() Constraints {
	return Constraints{MaxActionsPerRule: 1, MinIntervalSeconds: 300}
}

var validCategories = map[string]bool{
	"budget":       true,
	"campaign":     true,
	"performance":  true,
	"notification": true,
	"other":        true,
}

var validPriorities = map[string]bool{"low": true, "medium": true, "high": true}

var validStatuses = map[string]bool{
	StatusActive: true,
	StatusPaused: true,
	StatusError:  true,
	StatusDraft:  true,
}

var budgetActionTypes = map[string]bool{
	"add_budget":      true,
	"reduce_budget":   true,
	"subtract_budget": true,
	"set_budget":      true,
}

// ValidationError collects every problem found in a rule document so the
// caller can surface them all at once.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid rule: " + strings.Join(e.Problems, "; ")
}

// Validate checks a rule document against the schema and the given
// constraints. It returns nil or a *ValidationError; compilation never
// depends on validation having passed.
func Validate(r Rule, c Constraints) error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(r.Name) == "" {
		add("name is required")
	}
	if r.Category != "" && !validCategories[r.Category] {
		add("unknown category %q", r.Category)
	}
	if r.Priority != "" && !validPriorities[r.Priority] {
		add("priority must be low, medium or high")
	}
	if r.Status != "" && !validStatuses[r.Status] {
		add("unknown status %q", r.Status)
	}

	validateSchedule(r.Schedule, c, add)

	if c.MaxActionsPerRule > 0 && len(r.Actions) > c.MaxActionsPerRule {
		add("at most %d action(s) allowed, got %d", c.MaxActionsPerRule, len(r.Actions))
	}
	for i, a := range r.Actions {
		validateAction(i, a, add)
	}

	for _, g := range r.RuleGroups {
		for _, cond := range g.Conditions {
			if !cond.Complete() {
				add("group %s has an incomplete condition", g.ID)
				break
			}
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

func validateSchedule(s Schedule, c Constraints, add func(string, ...any)) {
	switch s.ExecutionMode {
	case ModeContinuous:
		// nothing to check

	case ModeSpecific:
		if len(s.SelectedTimes) == 0 && len(s.SelectedDays) == 0 && len(s.SelectedDates) == 0 {
			add("specific schedule needs at least one time, day or date")
		}
		for _, d := range s.SelectedDates {
			if len(s.DateTimeMap[d]) == 0 {
				add("date %s has no execution times", d)
			}
		}

	case ModeInterval:
		iv := s.SelectedInterval
		if s.CustomInterval > 0 {
			iv = s.CustomInterval
		}
		if iv < c.MinIntervalSeconds {
			add("interval must be at least %d seconds", c.MinIntervalSeconds)
		}

	default:
		add("unknown execution mode %q", s.ExecutionMode)
	}
}

func validateAction(i int, a Action, add func(string, ...any)) {
	if !budgetActionTypes[a.Type] {
		return
	}
	switch {
	case a.Amount != "" && a.Percentage != "":
		add("action %d: amount and percentage are mutually exclusive", i)
	case a.Amount == "" && a.Percentage == "":
		add("action %d: budget action needs an amount or percentage", i)
	case a.Percentage != "":
		p, err := strconv.ParseFloat(a.Percentage, 64)
		if err != nil || p < 0 || p > 100 {
			add("action %d: percentage must be between 0 and 100", i)
		}
	}
}
