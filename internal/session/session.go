package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"ads-rule-builder/internal/rule"
)

// Session is one rule-editing workspace: a group store plus the configured
// action list. The UI re-compiles the summary after every mutation, so each
// method leaves the session in a state the compilers can always render.
//
// A session is owned by one editor at a time by construction; the mutex only
// guards against concurrent HTTP requests carrying the same id.
type Session struct {
	id string

	mu        sync.Mutex
	store     *rule.GroupStore
	actions   []rule.Action
	updatedAt time.Time
}

// State is the outward snapshot of a session.
type State struct {
	ID            string                `json:"id"`
	ActiveGroupID string                `json:"activeGroupId"`
	RuleGroups    []rule.ConditionGroup `json:"ruleGroups"`
	Actions       []rule.Action         `json:"actions"`
}

// ID identifies the session.
func (s *Session) ID() string { return s.id }

// State snapshots the session for responses.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		ID:            s.id,
		ActiveGroupID: s.store.ActiveGroupID(),
		RuleGroups:    s.store.Groups(),
		Actions:       append([]rule.Action(nil), s.actions...),
	}
}

func (s *Session) touch() { s.updatedAt = time.Now() }

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.updatedAt) > ttl
}

// AddGroup appends a fresh group and makes it the active target.
func (s *Session) AddGroup() rule.ConditionGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.store.AddGroup()
}

// RemoveGroup deletes a group, keeping the last-group invariant.
func (s *Session) RemoveGroup(groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.RemoveGroup(groupID); err != nil {
		return err
	}
	s.touch()
	return nil
}

// SetLogicalOperator changes how a group's conditions combine.
func (s *Session) SetLogicalOperator(groupID, op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.SetLogicalOperator(groupID, op); err != nil {
		return err
	}
	s.touch()
	return nil
}

// SetCombinator changes how a group chains to its predecessor.
func (s *Session) SetCombinator(groupID, typ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.SetCombinator(groupID, typ); err != nil {
		return err
	}
	s.touch()
	return nil
}

// AddCondition appends a complete condition to a group.
func (s *Session) AddCondition(groupID string, c rule.Condition) (rule.Condition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	added, err := s.store.AddCondition(groupID, c)
	if err != nil {
		return rule.Condition{}, err
	}
	s.touch()
	return added, nil
}

// UpdateCondition patches a condition in place.
func (s *Session) UpdateCondition(groupID, conditionID string, p rule.ConditionPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.UpdateCondition(groupID, conditionID, p); err != nil {
		return err
	}
	s.touch()
	return nil
}

// RemoveCondition deletes the condition at index from a group.
func (s *Session) RemoveCondition(groupID string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.RemoveCondition(groupID, index); err != nil {
		return err
	}
	s.touch()
	return nil
}

// AddAction appends an action, bounded by maxActions when positive.
func (s *Session) AddAction(a rule.Action, maxActions int) (rule.Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.Type == "" {
		return rule.Action{}, ErrIncompleteAction
	}
	if maxActions > 0 && len(s.actions) >= maxActions {
		return rule.Action{}, rule.ErrTooManyActions
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	s.actions = append(s.actions, a)
	s.touch()
	return a, nil
}

// UpdateAction replaces an action, keeping its id stable.
func (s *Session) UpdateAction(actionID string, a rule.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.Type == "" {
		return ErrIncompleteAction
	}
	for i := range s.actions {
		if s.actions[i].ID != actionID {
			continue
		}
		a.ID = actionID
		s.actions[i] = a
		s.touch()
		return nil
	}
	return rule.ErrActionNotFound
}

// RemoveAction deletes an action by id.
func (s *Session) RemoveAction(actionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.actions {
		if s.actions[i].ID == actionID {
			s.actions = append(s.actions[:i], s.actions[i+1:]...)
			s.touch()
			return nil
		}
	}
	return rule.ErrActionNotFound
}

// Summary holds both freshly compiled clauses of a session.
type Summary struct {
	ConditionText     string         `json:"conditionText"`
	ActionText        string         `json:"actionText"`
	Summary           string         `json:"summary"`
	ConditionSegments []rule.Segment `json:"conditionSegments"`
	ActionSegments    []rule.Segment `json:"actionSegments"`
}

// Summarize compiles both clauses from the current session state.
func (s *Session) Summarize(opts rule.Options) Summary {
	s.mu.Lock()
	groups := s.store.Groups()
	actions := append([]rule.Action(nil), s.actions...)
	s.mu.Unlock()

	condSegs := rule.CompileConditions(groups)
	actSegs := rule.CompileActions(actions, opts)
	condText := rule.Render(condSegs)
	actText := rule.Render(actSegs)
	return Summary{
		ConditionText:     condText,
		ActionText:        actText,
		Summary:           condText + "\n" + actText,
		ConditionSegments: condSegs,
		ActionSegments:    actSegs,
	}
}
