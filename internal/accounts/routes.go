package accounts

import (
	"net/http"

	"github.com/gorilla/mux"
)

func RegisterRoutes(r *mux.Router, h *Handler) {
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", h.RegisterEmployee).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.LoginEmployee).Methods(http.MethodPost)
	auth.HandleFunc("/employees", h.ListEmployees).Methods(http.MethodGet)

	r.HandleFunc("/agent/register", h.RegisterAgent).Methods(http.MethodPost)
	r.HandleFunc("/agent/login", h.LoginAgent).Methods(http.MethodPost)

	r.HandleFunc("/hr/login", h.LoginHr).Methods(http.MethodPost)

	admin := r.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/login", h.LoginAdmin).Methods(http.MethodPost)
	admin.HandleFunc("/register/hr", h.RegisterHr).Methods(http.MethodPost)
	admin.HandleFunc("/register/agent", h.RegisterAgentByAdmin).Methods(http.MethodPost)
}
