package claims

import (
	"net/http"

	"github.com/gorilla/mux"
)

func RegisterRoutes(r *mux.Router, h *Handler) {
	emp := r.PathPrefix("/employee/claims").Subrouter()
	emp.HandleFunc("", h.Submit).Methods(http.MethodPost)
	emp.HandleFunc("", h.ListMine).Methods(http.MethodGet)
	emp.HandleFunc("/{id:[0-9]+}", h.Update).Methods(http.MethodPut)

	hr := r.PathPrefix("/hr/claims").Subrouter()
	hr.HandleFunc("", h.ListAll).Methods(http.MethodGet)
	hr.HandleFunc("/assigned", h.ListAssigned).Methods(http.MethodGet)
	hr.HandleFunc("/{id:[0-9]+}/approve", h.Approve).Methods(http.MethodPut)
	hr.HandleFunc("/{id:[0-9]+}/reject", h.Reject).Methods(http.MethodPut)
}
