package rule

import (
	"strconv"
	"strings"
)

// The expression compilers translate the machine-readable rule structure into
// the "JIKA ... MAKA ..." summary shown to the user and stored alongside the
// rule document. Both are pure: same input, byte-identical output, no state.
// They never fail: missing labels, unknown enum values and malformed numbers
// all degrade to raw pass-through or fixed fallback text.

// SegmentKind tags one token of compiled output so renderers can style
// tokens individually. Glue segments carry spacing, parentheses and line
// breaks; concatenating Text over all segments yields the plain-text form.
type SegmentKind string

const (
	SegHeading    SegmentKind = "heading"
	SegGlue       SegmentKind = "glue"
	SegMetric     SegmentKind = "metric"
	SegOperator   SegmentKind = "operator"
	SegValue      SegmentKind = "value"
	SegConnective SegmentKind = "connective"
	SegAction     SegmentKind = "action"
	SegAmount     SegmentKind = "amount"
	SegMessage    SegmentKind = "message"
	SegAnnotation SegmentKind = "annotation"
	SegFallback   SegmentKind = "fallback"
)

// Segment is one token of compiled expression output.
type Segment struct {
	Kind SegmentKind `json:"kind"`
	Text string      `json:"text"`
}

// Options carries external context the compilers may annotate with. The zero
// value is always valid.
type Options struct {
	// CampaignCount is the number of campaigns the rule targets, sourced
	// from the target-selection step. Zero means unknown and campaign
	// actions render without a count.
	CampaignCount int
}

// Render concatenates a segment stream into plain text.
func Render(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

// CompileConditions translates condition groups into the JIKA clause.
//
// Groups without conditions are skipped entirely. A group with two or more
// conditions is parenthesized; a single condition is not. Conditions inside a
// group join on the group's own logical operator; consecutive groups join on
// the type of the group that comes SECOND. That look-ahead is part of the
// established output contract, easy to invert by accident, and kept as-is.
func CompileConditions(groups []ConditionGroup) []Segment {
	var live []ConditionGroup
	for _, g := range groups {
		if len(g.Conditions) > 0 {
			live = append(live, g)
		}
	}

	if len(live) == 0 {
		return []Segment{
			{Kind: SegHeading, Text: "JIKA"},
			{Kind: SegGlue, Text: " "},
			{Kind: SegFallback, Text: "tidak ada kondisi yang ditetapkan"},
		}
	}

	segs := []Segment{
		{Kind: SegHeading, Text: "JIKA"},
		{Kind: SegGlue, Text: "\n "},
	}
	for i, g := range live {
		if i > 0 {
			segs = append(segs, Segment{Kind: SegConnective, Text: " " + Connector(g.Type) + " "})
		}
		segs = append(segs, compileGroup(g)...)
	}
	return segs
}

func compileGroup(g ConditionGroup) []Segment {
	var segs []Segment
	wrap := len(g.Conditions) > 1
	if wrap {
		segs = append(segs, Segment{Kind: SegGlue, Text: "("})
	}
	for i, c := range g.Conditions {
		if i > 0 {
			segs = append(segs, Segment{Kind: SegConnective, Text: " " + Connector(g.LogicalOperator) + " "})
		}
		segs = append(segs,
			Segment{Kind: SegMetric, Text: MetricLabel(c.Metric)},
			Segment{Kind: SegGlue, Text: " "},
			Segment{Kind: SegOperator, Text: OperatorLabel(c.Operator)},
			Segment{Kind: SegGlue, Text: " "},
			Segment{Kind: SegValue, Text: FormatConditionValue(c.Value)},
		)
	}
	if wrap {
		segs = append(segs, Segment{Kind: SegGlue, Text: ")"})
	}
	return segs
}

// CompileActions translates the action list into the MAKA clause, one line
// per action.
func CompileActions(actions []Action, opts Options) []Segment {
	segs := []Segment{{Kind: SegHeading, Text: "MAKA"}}

	if len(actions) == 0 {
		return append(segs,
			Segment{Kind: SegGlue, Text: "\n "},
			Segment{Kind: SegFallback, Text: "tidak ada aksi yang dikonfigurasi"},
		)
	}

	for _, a := range actions {
		segs = append(segs, Segment{Kind: SegGlue, Text: "\n "})
		segs = append(segs, compileAction(a, opts)...)
	}
	return segs
}

func compileAction(a Action, opts Options) []Segment {
	label := Segment{Kind: SegAction, Text: ActionLabel(a)}

	switch a.Type {
	case "add_budget", "reduce_budget", "subtract_budget", "set_budget":
		payload := budgetPayload(a)
		if payload == "" {
			return []Segment{label}
		}
		return []Segment{label,
			{Kind: SegGlue, Text: " "},
			{Kind: SegAmount, Text: payload},
		}

	case "start_campaign", "pause_campaign", "duplicate_campaign":
		if opts.CampaignCount > 0 {
			return []Segment{label,
				{Kind: SegGlue, Text: " "},
				{Kind: SegAnnotation, Text: "(" + strconv.Itoa(opts.CampaignCount) + " iklan)"},
			}
		}
		return []Segment{label}

	case "telegram_notification":
		msg := strings.TrimSpace(a.Message)
		if msg == "" {
			msg = "Pesan kosong"
		}
		return []Segment{label,
			{Kind: SegGlue, Text: " "},
			{Kind: SegMessage, Text: `"` + msg + `"`},
		}

	default:
		// Unknown action type: the label fallback chain already covers it.
		return []Segment{label}
	}
}

// budgetPayload renders a budget action's amount or percentage, whichever is
// set. Amount wins when both are present.
func budgetPayload(a Action) string {
	if a.Amount != "" {
		return FormatAmount(a.Amount)
	}
	if a.Percentage != "" {
		return a.Percentage + "%"
	}
	return ""
}

// ConditionText is the plain-text form of the JIKA clause.
func ConditionText(groups []ConditionGroup) string {
	return Render(CompileConditions(groups))
}

// ActionText is the plain-text form of the MAKA clause.
func ActionText(actions []Action, opts Options) string {
	return Render(CompileActions(actions, opts))
}

// Summary renders both clauses of a rule, JIKA over MAKA.
func Summary(groups []ConditionGroup, actions []Action, opts Options) string {
	return ConditionText(groups) + "\n" + ActionText(actions, opts)
}
