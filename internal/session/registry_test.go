package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ads-rule-builder/internal/rule"
)

func TestRegistry_CreateSeedsInitialGroup(t *testing.T) {
	reg := NewRegistry(time.Minute)
	s := reg.Create(nil, nil)

	st := s.State()
	require.Len(t, st.RuleGroups, 1)
	assert.Equal(t, "IF", st.RuleGroups[0].Type)
	assert.Equal(t, st.RuleGroups[0].ID, st.ActiveGroupID)
	assert.Empty(t, st.Actions)
}

func TestRegistry_CreateResumesExistingRule(t *testing.T) {
	reg := NewRegistry(time.Minute)
	groups := []rule.ConditionGroup{
		{ID: "g1", Type: "IF", LogicalOperator: "AND",
			Conditions: []rule.Condition{{ID: "c1", Metric: "acos", Operator: "greater_than", Value: "30"}}},
	}
	actions := []rule.Action{{ID: "a1", Type: "pause_campaign"}}

	s := reg.Create(groups, actions)
	st := s.State()
	assert.Equal(t, groups, st.RuleGroups)
	assert.Equal(t, actions, st.Actions)
}

func TestRegistry_GetDelete(t *testing.T) {
	reg := NewRegistry(time.Minute)
	s := reg.Create(nil, nil)

	got, err := reg.Get(s.ID())
	require.NoError(t, err)
	assert.Equal(t, s.ID(), got.ID())

	_, err = reg.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, reg.Delete(s.ID()))
	assert.ErrorIs(t, reg.Delete(s.ID()), ErrNotFound)
	assert.Equal(t, 0, reg.Len())
}

func TestSession_ActionLimit(t *testing.T) {
	reg := NewRegistry(time.Minute)
	s := reg.Create(nil, nil)

	added, err := s.AddAction(rule.Action{Type: "add_budget", Amount: "50000"}, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)

	_, err = s.AddAction(rule.Action{Type: "pause_campaign"}, 1)
	assert.ErrorIs(t, err, rule.ErrTooManyActions)

	// no limit configured
	_, err = s.AddAction(rule.Action{Type: "pause_campaign"}, 0)
	assert.NoError(t, err)

	_, err = s.AddAction(rule.Action{}, 0)
	assert.ErrorIs(t, err, ErrIncompleteAction)
}

func TestSession_ActionUpdateRemove(t *testing.T) {
	reg := NewRegistry(time.Minute)
	s := reg.Create(nil, nil)

	added, err := s.AddAction(rule.Action{Type: "add_budget", Amount: "50000"}, 0)
	require.NoError(t, err)

	require.NoError(t, s.UpdateAction(added.ID, rule.Action{Type: "set_budget", Amount: "75000"}))
	st := s.State()
	require.Len(t, st.Actions, 1)
	assert.Equal(t, added.ID, st.Actions[0].ID) // id survives updates
	assert.Equal(t, "set_budget", st.Actions[0].Type)

	assert.ErrorIs(t, s.UpdateAction("missing", rule.Action{Type: "x"}), rule.ErrActionNotFound)

	require.NoError(t, s.RemoveAction(added.ID))
	assert.ErrorIs(t, s.RemoveAction(added.ID), rule.ErrActionNotFound)
}

func TestSession_SummarizeCompilesFreshEveryCall(t *testing.T) {
	reg := NewRegistry(time.Minute)
	s := reg.Create(nil, nil)
	groupID := s.State().ActiveGroupID

	sum := s.Summarize(rule.Options{})
	assert.Equal(t, "JIKA tidak ada kondisi yang ditetapkan", sum.ConditionText)
	assert.Equal(t, "MAKA\n tidak ada aksi yang dikonfigurasi", sum.ActionText)

	_, err := s.AddCondition(groupID, rule.Condition{Metric: "broad_roi", Operator: "less_than", Value: "3"})
	require.NoError(t, err)
	_, err = s.AddAction(rule.Action{Type: "add_budget", Amount: "50000"}, 1)
	require.NoError(t, err)

	sum = s.Summarize(rule.Options{})
	assert.Equal(t, "JIKA\n ROAS kurang dari 3", sum.ConditionText)
	assert.Equal(t, "MAKA\n Tambah Budget Rp 50.000", sum.ActionText)
	assert.Equal(t, "JIKA\n ROAS kurang dari 3\nMAKA\n Tambah Budget Rp 50.000", sum.Summary)
}

func TestRegistry_SweepEvictsIdleSessions(t *testing.T) {
	reg := NewRegistry(10 * time.Millisecond)
	reg.Create(nil, nil)
	reg.Create(nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go reg.Sweep(ctx, 5*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_EvictKeepsFreshSessions(t *testing.T) {
	reg := NewRegistry(time.Hour)
	reg.Create(nil, nil)

	assert.Equal(t, 0, reg.evictExpired())
	assert.Equal(t, 1, reg.Len())
}
