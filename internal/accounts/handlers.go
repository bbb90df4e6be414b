package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"claimdesk/internal/models"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func writeAuthErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrEmployeeIDTaken):
		models.WriteProblem(w, http.StatusConflict, "Conflict", err.Error(), nil)
	case errors.Is(err, ErrBadCredentials):
		models.WriteProblem(w, http.StatusUnauthorized, "Unauthorized", "bad credentials", nil)
	default:
		models.WriteProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error(), nil)
	}
}

// POST /auth/register
func (h *Handler) RegisterEmployee(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		EmployeeID string `json:"employee_id"`
		Password   string `json:"password"`
	}
	if err := decode(r, &in); err != nil || in.Email == "" || in.Password == "" {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "email and password required", nil)
		return
	}
	e, err := h.svc.RegisterEmployee(r.Context(), RegisterEmployeeInput(in))
	if err != nil {
		writeAuthErr(w, err)
		return
	}
	models.WriteJSON(w, http.StatusCreated, e)
}

// POST /auth/login — identifier: email или корпоративный код
func (h *Handler) LoginEmployee(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Identifier string `json:"identifier"`
		Email      string `json:"email"` // исторический вариант поля
		Password   string `json:"password"`
	}
	if err := decode(r, &in); err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "invalid body", nil)
		return
	}
	id := in.Identifier
	if id == "" {
		id = in.Email
	}
	sess, err := h.svc.LoginEmployee(r.Context(), id, in.Password)
	if err != nil {
		writeAuthErr(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, sess)
}

// GET /auth/employees (только HR — см. таблицу Policy)
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.AllEmployees(r.Context())
	if err != nil {
		writeAuthErr(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, list)
}

// POST /agent/register
func (h *Handler) RegisterAgent(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r, &in); err != nil || in.Email == "" || in.Password == "" {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "email and password required", nil)
		return
	}
	a, err := h.svc.RegisterAgent(r.Context(), RegisterAgentInput(in))
	if err != nil {
		writeAuthErr(w, err)
		return
	}
	models.WriteJSON(w, http.StatusCreated, a)
}

// POST /agent/login
func (h *Handler) LoginAgent(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.svc.LoginAgent)
}

// POST /hr/login
func (h *Handler) LoginHr(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.svc.LoginHr)
}

// POST /admin/login
func (h *Handler) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.svc.LoginAdmin)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request,
	fn func(ctx context.Context, email, password string) (*Session, error)) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r, &in); err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "invalid body", nil)
		return
	}
	sess, err := fn(r.Context(), in.Email, in.Password)
	if err != nil {
		writeAuthErr(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, sess)
}

// POST /admin/register/hr
func (h *Handler) RegisterHr(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		HrID        string `json:"hr_id"`
		PhoneNumber string `json:"phone_number"`
	}
	if err := decode(r, &in); err != nil || in.Email == "" || in.Password == "" {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "email and password required", nil)
		return
	}
	hr, err := h.svc.RegisterHr(r.Context(), RegisterHrInput(in))
	if err != nil {
		writeAuthErr(w, err)
		return
	}
	models.WriteJSON(w, http.StatusCreated, hr)
}

// POST /admin/register/agent
func (h *Handler) RegisterAgentByAdmin(w http.ResponseWriter, r *http.Request) {
	h.RegisterAgent(w, r)
}
