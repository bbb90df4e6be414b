package queries

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"claimdesk/internal/agents"
	"claimdesk/internal/authz"
	"claimdesk/internal/models"
)

type EmployeeResolver interface {
	ByEmail(ctx context.Context, email string) (*models.Employee, error)
}

type AgentResolver interface {
	ByEmail(ctx context.Context, email string) (*models.Agent, error)
}

type Handler struct {
	svc       *Service
	employees EmployeeResolver
	agentsRes AgentResolver
}

func NewHandler(svc *Service, employees EmployeeResolver, agentsRes AgentResolver) *Handler {
	return &Handler{svc: svc, employees: employees, agentsRes: agentsRes}
}

func writeQueryErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrQueryNotFound), errors.Is(err, agents.ErrAgentNotFound):
		models.WriteProblem(w, http.StatusNotFound, "Not Found", err.Error(), nil)
	case errors.Is(err, ErrNotAssignedAgent):
		models.WriteProblem(w, http.StatusForbidden, "Forbidden", err.Error(), nil)
	case errors.Is(err, ErrAlreadyResolved):
		models.WriteProblem(w, http.StatusConflict, "Conflict", err.Error(), nil)
	case errors.Is(err, agents.ErrAgentOffline):
		models.WriteProblem(w, http.StatusConflict, "Conflict", err.Error(), nil)
	default:
		models.WriteProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error(), nil)
	}
}

func (h *Handler) currentAgent(r *http.Request) (*models.Agent, bool) {
	p, ok := authz.PrincipalFrom(r.Context())
	if !ok {
		return nil, false
	}
	a, err := h.agentsRes.ByEmail(r.Context(), p.Subject)
	if err != nil {
		return nil, false
	}
	return a, true
}

// POST /employee/queries {agent_id, query_text}
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	p, ok := authz.PrincipalFrom(r.Context())
	if !ok {
		models.WriteProblem(w, http.StatusUnauthorized, "Unauthorized", "no principal", nil)
		return
	}
	emp, err := h.employees.ByEmail(r.Context(), p.Subject)
	if err != nil {
		models.WriteProblem(w, http.StatusUnauthorized, "Unauthorized", "unknown employee", nil)
		return
	}

	var in struct {
		AgentID   uint   `json:"agent_id"`
		QueryText string `json:"query_text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.AgentID == 0 || in.QueryText == "" {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "agent_id and query_text required", nil)
		return
	}
	q, err := h.svc.Submit(r.Context(), emp.ID, in.AgentID, in.QueryText)
	if err != nil {
		writeQueryErr(w, err)
		return
	}
	models.WriteJSON(w, http.StatusCreated, q)
}

// GET /employee/queries
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	p, ok := authz.PrincipalFrom(r.Context())
	if !ok {
		models.WriteProblem(w, http.StatusUnauthorized, "Unauthorized", "no principal", nil)
		return
	}
	emp, err := h.employees.ByEmail(r.Context(), p.Subject)
	if err != nil {
		models.WriteProblem(w, http.StatusUnauthorized, "Unauthorized", "unknown employee", nil)
		return
	}
	list, err := h.svc.ForEmployee(r.Context(), emp.ID)
	if err != nil {
		writeQueryErr(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, list)
}

// pathAgentID сверяет agentId из пути с принципалом: свои списки
// агент читает только за себя.
func (h *Handler) pathAgentID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	agent, ok := h.currentAgent(r)
	if !ok {
		models.WriteProblem(w, http.StatusUnauthorized, "Unauthorized", "unknown agent", nil)
		return 0, false
	}
	id64, err := strconv.ParseUint(mux.Vars(r)["agentId"], 10, 64)
	if err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "bad agent id", nil)
		return 0, false
	}
	if uint(id64) != agent.ID {
		models.WriteProblem(w, http.StatusForbidden, "Forbidden", "not your queries", nil)
		return 0, false
	}
	return agent.ID, true
}

// GET /agent/queries/pending/{agentId}
func (h *Handler) PendingForAgent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathAgentID(w, r)
	if !ok {
		return
	}
	list, err := h.svc.PendingForAgent(r.Context(), id)
	if err != nil {
		writeQueryErr(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, list)
}

// GET /agent/queries/all/{agentId}
func (h *Handler) AllForAgent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathAgentID(w, r)
	if !ok {
		return
	}
	list, err := h.svc.ForAgent(r.Context(), id)
	if err != nil {
		writeQueryErr(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, list)
}

// PUT /agent/queries/respond/{queryId} {response}
func (h *Handler) Respond(w http.ResponseWriter, r *http.Request) {
	agent, ok := h.currentAgent(r)
	if !ok {
		models.WriteProblem(w, http.StatusUnauthorized, "Unauthorized", "unknown agent", nil)
		return
	}
	id64, err := strconv.ParseUint(mux.Vars(r)["queryId"], 10, 64)
	if err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "bad query id", nil)
		return
	}
	var in struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Response == "" {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "response required", nil)
		return
	}
	q, err := h.svc.Respond(r.Context(), uint(id64), agent.ID, in.Response)
	if err != nil {
		writeQueryErr(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, q)
}
