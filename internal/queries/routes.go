package queries

import (
	"net/http"

	"github.com/gorilla/mux"
)

func RegisterRoutes(r *mux.Router, h *Handler) {
	emp := r.PathPrefix("/employee/queries").Subrouter()
	emp.HandleFunc("", h.Submit).Methods(http.MethodPost)
	emp.HandleFunc("", h.ListMine).Methods(http.MethodGet)

	ag := r.PathPrefix("/agent/queries").Subrouter()
	ag.HandleFunc("/pending/{agentId:[0-9]+}", h.PendingForAgent).Methods(http.MethodGet)
	ag.HandleFunc("/all/{agentId:[0-9]+}", h.AllForAgent).Methods(http.MethodGet)
	ag.HandleFunc("/respond/{queryId:[0-9]+}", h.Respond).Methods(http.MethodPut)
}
