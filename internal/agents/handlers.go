package agents

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"claimdesk/internal/authz"
	"claimdesk/internal/models"
)

type Resolver interface {
	ByEmail(ctx context.Context, email string) (*models.Agent, error)
}

type Handler struct {
	svc      *Service
	resolver Resolver
}

func NewHandler(svc *Service, resolver Resolver) *Handler {
	return &Handler{svc: svc, resolver: resolver}
}

func writeAgentErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrAgentNotFound):
		models.WriteProblem(w, http.StatusNotFound, "Not Found", err.Error(), nil)
	case errors.Is(err, ErrAgentOffline):
		models.WriteProblem(w, http.StatusConflict, "Conflict", err.Error(), nil)
	default:
		models.WriteProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error(), nil)
	}
}

// GET /agent — все агенты
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.store.All(r.Context())
	if err != nil {
		writeAgentErr(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, list)
}

// POST /agent/availability — агент объявляет своё окно.
// Чьё окно — решает токен, а не тело запроса.
func (h *Handler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	p, ok := authz.PrincipalFrom(r.Context())
	if !ok {
		models.WriteProblem(w, http.StatusUnauthorized, "Unauthorized", "no principal", nil)
		return
	}
	agent, err := h.resolver.ByEmail(r.Context(), p.Subject)
	if err != nil {
		models.WriteProblem(w, http.StatusUnauthorized, "Unauthorized", "unknown agent", nil)
		return
	}

	var in struct {
		Available bool       `json:"available"`
		StartTime *time.Time `json:"start_time"`
		EndTime   *time.Time `json:"end_time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "invalid body", nil)
		return
	}
	start := time.Time{}
	if in.StartTime != nil {
		start = *in.StartTime
	}
	av, err := h.svc.SetAvailability(r.Context(), agent.ID, in.Available, start, in.EndTime)
	if err != nil {
		writeAgentErr(w, err)
		return
	}
	models.WriteJSON(w, http.StatusCreated, av)
}

// GET /agent/{id}/availability — текущее окно агента
func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	id64, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "bad agent id", nil)
		return
	}
	av, err := h.svc.Latest(r.Context(), uint(id64))
	if err != nil {
		writeAgentErr(w, err)
		return
	}
	online, err := h.svc.IsOnline(r.Context(), uint(id64))
	if err != nil {
		writeAgentErr(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, map[string]any{"window": av, "online": online})
}

// GET /agent/availability/all
func (h *Handler) AllAvailability(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.AllAvailability(r.Context())
	if err != nil {
		writeAgentErr(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, views)
}

// GET /agent/available — только онлайновые
func (h *Handler) Online(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.OnlineAgents(r.Context())
	if err != nil {
		writeAgentErr(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, list)
}
