package rule

import (
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: compilation is a pure function. Compiling the same input twice is
// byte-identical, and no input makes it panic or error.
func TestCompile_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	metrics := gen.OneConstOf("broad_gmv", "broad_order", "broad_roi", "acos",
		"click", "cost", "cpc", "ctr", "impression", "view", "cpm", "saldo", "bogus")
	operators := gen.OneConstOf("greater_than", "less_than", "greater_equal",
		"less_equal", "equal", "not_equal", "bogus_op")

	properties.Property("recompilation is byte-identical", prop.ForAll(
		func(metric, op, value, logical, typ string) bool {
			groups := []ConditionGroup{
				{ID: "g1", Type: "IF", LogicalOperator: logical,
					Conditions: []Condition{{ID: "c1", Metric: metric, Operator: op, Value: value}}},
				{ID: "g2", Type: typ, LogicalOperator: logical,
					Conditions: []Condition{{ID: "c2", Metric: metric, Operator: op, Value: value}}},
			}
			return ConditionText(groups) == ConditionText(groups)
		},
		metrics, operators, gen.AnyString(), gen.OneConstOf("AND", "OR"), gen.OneConstOf("AND", "OR"),
	))

	properties.Property("compilation never panics on arbitrary input", prop.ForAll(
		func(metric, op, value string) bool {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("CompileConditions panicked: %v", r)
				}
			}()
			groups := []ConditionGroup{
				{ID: "g", Type: "IF", LogicalOperator: "AND",
					Conditions: []Condition{{ID: "c", Metric: metric, Operator: op, Value: value}}},
			}
			_ = ConditionText(groups)
			return true
		},
		gen.AnyString(), gen.AnyString(), gen.AnyString(),
	))

	properties.Property("multi-condition groups are always parenthesized", prop.ForAll(
		func(n int) bool {
			conds := make([]Condition, n)
			for i := range conds {
				conds[i] = Condition{ID: "c", Metric: "click", Operator: "equal", Value: "1"}
			}
			groups := []ConditionGroup{{ID: "g", Type: "IF", LogicalOperator: "OR", Conditions: conds}}
			body := strings.TrimPrefix(ConditionText(groups), "JIKA\n ")
			if n > 1 {
				return strings.HasPrefix(body, "(") && strings.HasSuffix(body, ")")
			}
			return !strings.HasPrefix(body, "(")
		},
		gen.IntRange(1, 6),
	))

	properties.Property("amount formatting is idempotent under re-display", prop.ForAll(
		func(amount int) bool {
			raw := Action{ID: "a", Type: "set_budget", Amount: strconv.Itoa(amount)}
			once := ActionText([]Action{raw}, Options{})

			// feed the already formatted amount back in
			formatted := strings.TrimPrefix(strings.TrimPrefix(once, "MAKA\n Set Budget "), "Rp ")
			again := ActionText([]Action{{ID: "a", Type: "set_budget", Amount: formatted}}, Options{})
			return once == again
		},
		gen.IntRange(0, 1_000_000_000),
	))

	properties.TestingRun(t)
}
