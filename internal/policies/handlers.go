package policies

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"claimdesk/internal/models"
	"claimdesk/internal/repo"
)

// Handler — CRUD полисов: публичное чтение активных, админский полный доступ.
type Handler struct{ store *repo.PolicyStore }

func NewHandler(store *repo.PolicyStore) *Handler { return &Handler{store: store} }

func pathID(r *http.Request) (uint, error) {
	id64, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	return uint(id64), err
}

// GET /policies — активные полисы для выбора при подаче заявки
func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ByStatus(r.Context(), models.PolicyStatusActive)
	if err != nil {
		models.WriteProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error(), nil)
		return
	}
	models.WriteJSON(w, http.StatusOK, list)
}

// GET /admin/policies
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.All(r.Context())
	if err != nil {
		models.WriteProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error(), nil)
		return
	}
	models.WriteJSON(w, http.StatusOK, list)
}

// POST /admin/policies
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var p models.Policy
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.PolicyName == "" {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "policy_name required", nil)
		return
	}
	p.ID = 0
	if err := h.store.Create(r.Context(), &p); err != nil {
		models.WriteProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error(), nil)
		return
	}
	models.WriteJSON(w, http.StatusCreated, p)
}

// GET /admin/policies/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "bad policy id", nil)
		return
	}
	p, err := h.store.ByID(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		models.WriteProblem(w, http.StatusNotFound, "Not Found", "policy not found", nil)
		return
	}
	if err != nil {
		models.WriteProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error(), nil)
		return
	}
	models.WriteJSON(w, http.StatusOK, p)
}

// PUT /admin/policies/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "bad policy id", nil)
		return
	}
	existing, err := h.store.ByID(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		models.WriteProblem(w, http.StatusNotFound, "Not Found", "policy not found", nil)
		return
	}
	if err != nil {
		models.WriteProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error(), nil)
		return
	}

	var in models.Policy
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "invalid body", nil)
		return
	}
	existing.PolicyName = in.PolicyName
	existing.PolicyType = in.PolicyType
	existing.ProviderName = in.ProviderName
	existing.CoverageAmount = in.CoverageAmount
	existing.MonthlyPremium = in.MonthlyPremium
	existing.RenewalDate = in.RenewalDate
	existing.PolicyStatus = in.PolicyStatus
	existing.PolicyDescription = in.PolicyDescription
	if err := h.store.Update(r.Context(), existing); err != nil {
		models.WriteProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error(), nil)
		return
	}
	models.WriteJSON(w, http.StatusOK, existing)
}

// DELETE /admin/policies/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "bad policy id", nil)
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			models.WriteProblem(w, http.StatusNotFound, "Not Found", "policy not found", nil)
			return
		}
		models.WriteProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error(), nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
