package policies

import (
	"net/http"

	"github.com/gorilla/mux"
)

func RegisterRoutes(r *mux.Router, h *Handler) {
	r.HandleFunc("/policies", h.ListActive).Methods(http.MethodGet)

	admin := r.PathPrefix("/admin/policies").Subrouter()
	admin.HandleFunc("", h.ListAll).Methods(http.MethodGet)
	admin.HandleFunc("", h.Create).Methods(http.MethodPost)
	admin.HandleFunc("/{id:[0-9]+}", h.Get).Methods(http.MethodGet)
	admin.HandleFunc("/{id:[0-9]+}", h.Update).Methods(http.MethodPut)
	admin.HandleFunc("/{id:[0-9]+}", h.Delete).Methods(http.MethodDelete)
}
