package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ads-rule-builder/internal/observability"
	"ads-rule-builder/internal/rule"
	"ads-rule-builder/internal/session"
)

// Handler serves the rule-builder API. Constraints are read through a
// provider so config reloads take effect without restarting.
type Handler struct {
	Reg         *session.Registry
	Constraints func() rule.Constraints
}

func NewHandler(reg *session.Registry, constraints func() rule.Constraints) *Handler {
	return &Handler{Reg: reg, Constraints: constraints}
}

// envelope matches the response contract the dashboard expects.
type envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Error   string   `json:"error,omitempty"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Error: msg})
}

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, rule.ErrGroupNotFound),
		errors.Is(err, rule.ErrConditionNotFound),
		errors.Is(err, rule.ErrActionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, rule.ErrLastGroup),
		errors.Is(err, rule.ErrTooManyActions):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, rule.ErrIncompleteCondition),
		errors.Is(err, session.ErrIncompleteAction),
		errors.Is(err, rule.ErrInvalidOperator):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

type previewRequest struct {
	RuleGroups    []rule.ConditionGroup `json:"ruleGroups"`
	Actions       []rule.Action         `json:"actions"`
	CampaignCount int                   `json:"campaignCount,omitempty"`
}

type previewResponse struct {
	ConditionText     string         `json:"conditionText"`
	ActionText        string         `json:"actionText"`
	Summary           string         `json:"summary"`
	ConditionSegments []rule.Segment `json:"conditionSegments"`
	ActionSegments    []rule.Segment `json:"actionSegments"`
}

// Preview compiles an ad-hoc rule body without touching any session.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	condSegs := rule.CompileConditions(req.RuleGroups)
	actSegs := rule.CompileActions(req.Actions, rule.Options{CampaignCount: req.CampaignCount})
	recordCompile(condSegs, actSegs)

	condText := rule.Render(condSegs)
	actText := rule.Render(actSegs)
	writeData(w, http.StatusOK, previewResponse{
		ConditionText:     condText,
		ActionText:        actText,
		Summary:           condText + "\n" + actText,
		ConditionSegments: condSegs,
		ActionSegments:    actSegs,
	})
}

// ValidateRule checks a full rule document against the current constraints.
func (h *Handler) ValidateRule(w http.ResponseWriter, r *http.Request) {
	var doc rule.Rule
	if err := decode(r, &doc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := rule.Validate(doc, h.Constraints()); err != nil {
		var verr *rule.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, envelope{
				Success: false,
				Error:   "rule validation failed",
				Details: verr.Problems,
			})
			return
		}
		h.writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"valid": true})
}

type assignmentsRequest struct {
	CampaignIDs []string           `json:"campaignIds"`
	Campaigns   []rule.CampaignRef `json:"campaigns"`
}

// Assignments groups selected campaign ids by owning account, the same
// derivation the dashboard runs on every save.
func (h *Handler) Assignments(w http.ResponseWriter, r *http.Request) {
	var req assignmentsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	out := rule.GroupCampaignAssignments(req.CampaignIDs, req.Campaigns)
	writeData(w, http.StatusOK, map[string]any{"campaignAssignments": out})
}

type createSessionRequest struct {
	RuleGroups []rule.ConditionGroup `json:"ruleGroups"`
	Actions    []rule.Action         `json:"actions"`
}

// CreateSession opens an editing session, optionally resuming from a saved
// rule's groups and actions.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decode(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	s := h.Reg.Create(req.RuleGroups, req.Actions)
	writeData(w, http.StatusCreated, s.State())
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := h.Reg.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeDomainError(w, err)
		return nil, false
	}
	return s, true
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	if s, ok := h.session(w, r); ok {
		writeData(w, http.StatusOK, s.State())
	}
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.Reg.Delete(chi.URLParam(r, "sessionID")); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) AddGroup(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeData(w, http.StatusCreated, s.AddGroup())
}

func (h *Handler) RemoveGroup(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.RemoveGroup(chi.URLParam(r, "groupID")); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, s.State())
}

type groupPatch struct {
	LogicalOperator *string `json:"logicalOperator,omitempty"`
	Type            *string `json:"type,omitempty"`
}

func (h *Handler) PatchGroup(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var p groupPatch
	if err := decode(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	groupID := chi.URLParam(r, "groupID")
	if p.LogicalOperator != nil {
		if err := s.SetLogicalOperator(groupID, *p.LogicalOperator); err != nil {
			h.writeDomainError(w, err)
			return
		}
	}
	if p.Type != nil {
		if err := s.SetCombinator(groupID, *p.Type); err != nil {
			h.writeDomainError(w, err)
			return
		}
	}
	writeData(w, http.StatusOK, s.State())
}

func (h *Handler) AddCondition(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var c rule.Condition
	if err := decode(r, &c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	added, err := s.AddCondition(chi.URLParam(r, "groupID"), c)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusCreated, added)
}

func (h *Handler) UpdateCondition(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var p rule.ConditionPatch
	if err := decode(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	err := s.UpdateCondition(chi.URLParam(r, "groupID"), chi.URLParam(r, "conditionRef"), p)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, s.State())
}

func (h *Handler) RemoveCondition(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "conditionRef"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "condition index must be an integer")
		return
	}
	if err := s.RemoveCondition(chi.URLParam(r, "groupID"), index); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, s.State())
}

func (h *Handler) AddAction(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var a rule.Action
	if err := decode(r, &a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	added, err := s.AddAction(a, h.Constraints().MaxActionsPerRule)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusCreated, added)
}

func (h *Handler) UpdateAction(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var a rule.Action
	if err := decode(r, &a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.UpdateAction(chi.URLParam(r, "actionID"), a); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, s.State())
}

func (h *Handler) RemoveAction(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.RemoveAction(chi.URLParam(r, "actionID")); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, s.State())
}

// SessionSummary compiles the session's current JIKA/MAKA clauses.
func (h *Handler) SessionSummary(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	count, _ := strconv.Atoi(r.URL.Query().Get("campaignCount"))
	sum := s.Summarize(rule.Options{CampaignCount: count})
	recordCompile(sum.ConditionSegments, sum.ActionSegments)
	writeData(w, http.StatusOK, sum)
}

func recordCompile(condSegs, actSegs []rule.Segment) {
	observability.CompileTotal.WithLabelValues("condition").Inc()
	observability.CompileTotal.WithLabelValues("action").Inc()
	if hasFallback(condSegs) {
		observability.CompileFallbackTotal.WithLabelValues("condition").Inc()
	}
	if hasFallback(actSegs) {
		observability.CompileFallbackTotal.WithLabelValues("action").Inc()
	}
}

func hasFallback(segs []rule.Segment) bool {
	for _, s := range segs {
		if s.Kind == rule.SegFallback {
			return true
		}
	}
	return false
}
