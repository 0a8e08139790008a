package rule

import "github.com/google/uuid"

// GroupStore maintains the ordered condition groups of one rule under edit.
// It is owned by a single editing session and is not safe for concurrent use;
// the session layer serializes access.
//
// Invariants the store enforces itself rather than trusting callers:
// at least one group always exists, and only complete conditions enter a
// group. Violations come back as errors, never as silent corruption of the
// compiled output.
type GroupStore struct {
	groups   []ConditionGroup
	activeID string
}

// NewGroupStore returns a store seeded with the conventional first group:
// type "IF", conditions joined with AND.
func NewGroupStore() *GroupStore {
	g := ConditionGroup{
		ID:              uuid.NewString(),
		Type:            "IF",
		LogicalOperator: "AND",
	}
	return &GroupStore{groups: []ConditionGroup{g}, activeID: g.ID}
}

// Restore builds a store from existing groups, e.g. when editing a saved
// rule. Empty input falls back to the seeded initial state.
func Restore(groups []ConditionGroup) *GroupStore {
	if len(groups) == 0 {
		return NewGroupStore()
	}
	s := &GroupStore{groups: cloneGroups(groups)}
	s.activeID = s.groups[0].ID
	return s
}

// Groups returns a deep copy of the current groups in order.
func (s *GroupStore) Groups() []ConditionGroup {
	return cloneGroups(s.groups)
}

// ActiveGroupID identifies the group currently targeted by edits.
func (s *GroupStore) ActiveGroupID() string { return s.activeID }

// AddGroup appends a fresh AND group and makes it the active editing target.
func (s *GroupStore) AddGroup() ConditionGroup {
	g := ConditionGroup{
		ID:              uuid.NewString(),
		Type:            "AND",
		LogicalOperator: "AND",
	}
	s.groups = append(s.groups, g)
	s.activeID = g.ID
	return g
}

// RemoveGroup deletes a group. The last remaining group cannot be removed.
// If the removed group was active, the first remaining group becomes active.
func (s *GroupStore) RemoveGroup(groupID string) error {
	if len(s.groups) == 1 {
		return ErrLastGroup
	}
	i := s.indexOf(groupID)
	if i < 0 {
		return ErrGroupNotFound
	}
	s.groups = append(s.groups[:i], s.groups[i+1:]...)
	if s.activeID == groupID {
		s.activeID = s.groups[0].ID
	}
	return nil
}

// SetLogicalOperator changes how a group's own conditions combine.
func (s *GroupStore) SetLogicalOperator(groupID, op string) error {
	if op != "AND" && op != "OR" {
		return ErrInvalidOperator
	}
	i := s.indexOf(groupID)
	if i < 0 {
		return ErrGroupNotFound
	}
	s.groups[i].LogicalOperator = op
	return nil
}

// SetCombinator changes how a group chains to the group before it.
func (s *GroupStore) SetCombinator(groupID, typ string) error {
	if typ != "AND" && typ != "OR" {
		return ErrInvalidOperator
	}
	i := s.indexOf(groupID)
	if i < 0 {
		return ErrGroupNotFound
	}
	s.groups[i].Type = typ
	return nil
}

// AddCondition appends a condition to a group. Incomplete conditions are
// rejected. A missing ID is filled in; an existing ID is kept for round-trips.
func (s *GroupStore) AddCondition(groupID string, c Condition) (Condition, error) {
	i := s.indexOf(groupID)
	if i < 0 {
		return Condition{}, ErrGroupNotFound
	}
	if !c.Complete() {
		return Condition{}, ErrIncompleteCondition
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	s.groups[i].Conditions = append(s.groups[i].Conditions, c)
	return c, nil
}

// ConditionPatch updates a condition in place. Nil fields are untouched; the
// condition ID is stable and cannot be patched.
type ConditionPatch struct {
	Metric   *string `json:"metric,omitempty"`
	Operator *string `json:"operator,omitempty"`
	Value    *string `json:"value,omitempty"`
}

// UpdateCondition applies a patch to one condition of a group.
func (s *GroupStore) UpdateCondition(groupID, conditionID string, p ConditionPatch) error {
	i := s.indexOf(groupID)
	if i < 0 {
		return ErrGroupNotFound
	}
	for j, c := range s.groups[i].Conditions {
		if c.ID != conditionID {
			continue
		}
		if p.Metric != nil {
			c.Metric = *p.Metric
		}
		if p.Operator != nil {
			c.Operator = *p.Operator
		}
		if p.Value != nil {
			c.Value = *p.Value
		}
		if !c.Complete() {
			return ErrIncompleteCondition
		}
		s.groups[i].Conditions[j] = c
		return nil
	}
	return ErrConditionNotFound
}

// RemoveCondition deletes the condition at index from a group.
func (s *GroupStore) RemoveCondition(groupID string, index int) error {
	i := s.indexOf(groupID)
	if i < 0 {
		return ErrGroupNotFound
	}
	conds := s.groups[i].Conditions
	if index < 0 || index >= len(conds) {
		return ErrConditionNotFound
	}
	s.groups[i].Conditions = append(conds[:index], conds[index+1:]...)
	return nil
}

func (s *GroupStore) indexOf(groupID string) int {
	for i, g := range s.groups {
		if g.ID == groupID {
			return i
		}
	}
	return -1
}

func cloneGroups(groups []ConditionGroup) []ConditionGroup {
	out := make([]ConditionGroup, len(groups))
	for i, g := range groups {
		g.Conditions = append([]Condition(nil), g.Conditions...)
		out[i] = g
	}
	return out
}
