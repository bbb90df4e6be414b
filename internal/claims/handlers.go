package claims

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"claimdesk/internal/authz"
	"claimdesk/internal/models"
	"claimdesk/internal/uploads"
)

// Резолверы принципала: subject токена — email учётки.
type EmployeeResolver interface {
	ByEmail(ctx context.Context, email string) (*models.Employee, error)
}

type HrResolver interface {
	ByEmail(ctx context.Context, email string) (*models.Hr, error)
}

type Handler struct {
	svc       *Service
	employees EmployeeResolver
	hrs       HrResolver
	storage   uploads.Storage
}

func NewHandler(svc *Service, employees EmployeeResolver, hrs HrResolver, storage uploads.Storage) *Handler {
	return &Handler{svc: svc, employees: employees, hrs: hrs, storage: storage}
}

func (h *Handler) currentEmployee(r *http.Request) (*models.Employee, bool) {
	p, ok := authz.PrincipalFrom(r.Context())
	if !ok {
		return nil, false
	}
	e, err := h.employees.ByEmail(r.Context(), p.Subject)
	if err != nil {
		return nil, false
	}
	return e, true
}

func (h *Handler) currentHr(r *http.Request) (*models.Hr, bool) {
	p, ok := authz.PrincipalFrom(r.Context())
	if !ok {
		return nil, false
	}
	hr, err := h.hrs.ByEmail(r.Context(), p.Subject)
	if err != nil {
		return nil, false
	}
	return hr, true
}

func writeClaimErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrExceedsCoverage):
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", err.Error(), nil)
	case errors.Is(err, ErrPolicyNotFound), errors.Is(err, ErrClaimNotFound):
		models.WriteProblem(w, http.StatusNotFound, "Not Found", err.Error(), nil)
	case errors.Is(err, ErrNotOwner), errors.Is(err, ErrNotAssignedHr):
		models.WriteProblem(w, http.StatusForbidden, "Forbidden", err.Error(), nil)
	case errors.Is(err, ErrAlreadyResolved):
		models.WriteProblem(w, http.StatusConflict, "Conflict", err.Error(), nil)
	default:
		models.WriteProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error(), nil)
	}
}

const maxUploadBytes = 32 << 20

// POST /employee/claims — JSON либо multipart (поля + файлы "documents")
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.currentEmployee(r)
	if !ok {
		models.WriteProblem(w, http.StatusUnauthorized, "Unauthorized", "unknown employee", nil)
		return
	}

	in := SubmitInput{EmployeeID: emp.ID}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := h.parseMultipart(r, &in); err != nil {
			models.WriteProblem(w, http.StatusBadRequest, "Bad Request", err.Error(), nil)
			return
		}
	} else {
		var body struct {
			Title       string     `json:"title"`
			Description string     `json:"description"`
			Amount      float64    `json:"amount"`
			PolicyID    uint       `json:"policy_id"`
			ClaimDate   *time.Time `json:"claim_date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "invalid body", nil)
			return
		}
		in.Title = body.Title
		in.Description = body.Description
		in.Amount = body.Amount
		in.PolicyID = body.PolicyID
		in.ClaimDate = body.ClaimDate
	}
	if in.Title == "" || in.PolicyID == 0 {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "title and policy_id required", nil)
		return
	}

	c, err := h.svc.Submit(r.Context(), in)
	if err != nil {
		writeClaimErr(w, err)
		return
	}
	models.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) parseMultipart(r *http.Request, in *SubmitInput) error {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return err
	}
	in.Title = r.FormValue("title")
	in.Description = r.FormValue("description")
	amount, err := strconv.ParseFloat(r.FormValue("amount"), 64)
	if err != nil {
		return errors.New("bad amount")
	}
	in.Amount = amount
	pid, err := strconv.ParseUint(r.FormValue("policy_id"), 10, 64)
	if err != nil {
		return errors.New("bad policy_id")
	}
	in.PolicyID = uint(pid)
	if v := r.FormValue("claim_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return errors.New("bad claim_date")
		}
		in.ClaimDate = &t
	}

	if r.MultipartForm == nil {
		return nil
	}
	for _, fh := range r.MultipartForm.File["documents"] {
		f, err := fh.Open()
		if err != nil {
			return err
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return err
		}
		path, err := h.storage.Store(data, fh.Filename)
		if err != nil {
			return err
		}
		in.Documents = append(in.Documents, path)
	}
	return nil
}

// GET /employee/claims
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.currentEmployee(r)
	if !ok {
		models.WriteProblem(w, http.StatusUnauthorized, "Unauthorized", "unknown employee", nil)
		return
	}
	list, err := h.svc.ByEmployee(r.Context(), emp.ID)
	if err != nil {
		writeClaimErr(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, list)
}

// PUT /employee/claims/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.currentEmployee(r)
	if !ok {
		models.WriteProblem(w, http.StatusUnauthorized, "Unauthorized", "unknown employee", nil)
		return
	}
	id, err := pathID(r)
	if err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "bad claim id", nil)
		return
	}
	var in UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "invalid body", nil)
		return
	}
	c, err := h.svc.Update(r.Context(), id, emp.ID, in)
	if err != nil {
		writeClaimErr(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, c)
}

// GET /hr/claims[?status=Pending]
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	var (
		list []models.Claim
		err  error
	)
	if status := r.URL.Query().Get("status"); status != "" {
		list, err = h.svc.ByStatus(r.Context(), status)
	} else {
		list, err = h.svc.All(r.Context())
	}
	if err != nil {
		writeClaimErr(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, list)
}

// GET /hr/claims/assigned — заявки текущего HR
func (h *Handler) ListAssigned(w http.ResponseWriter, r *http.Request) {
	hr, ok := h.currentHr(r)
	if !ok {
		models.WriteProblem(w, http.StatusUnauthorized, "Unauthorized", "unknown hr", nil)
		return
	}
	list, err := h.svc.ByAssignedHr(r.Context(), hr.ID)
	if err != nil {
		writeClaimErr(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, list)
}

type remarksBody struct {
	Remarks string `json:"remarks"`
}

// PUT /hr/claims/{id}/approve
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.svc.Approve)
}

// PUT /hr/claims/{id}/reject
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.svc.Reject)
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request,
	fn func(ctx context.Context, claimID, hrID uint, remarks string) (*models.Claim, error)) {
	hr, ok := h.currentHr(r)
	if !ok {
		models.WriteProblem(w, http.StatusUnauthorized, "Unauthorized", "unknown hr", nil)
		return
	}
	id, err := pathID(r)
	if err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", "bad claim id", nil)
		return
	}
	var body remarksBody
	_ = json.NewDecoder(r.Body).Decode(&body) // remarks опциональны
	c, err := fn(r.Context(), id, hr.ID, body.Remarks)
	if err != nil {
		writeClaimErr(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, c)
}

func pathID(r *http.Request) (uint, error) {
	id64, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	return uint(id64), err
}
