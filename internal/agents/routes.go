package agents

import (
	"net/http"

	"github.com/gorilla/mux"
)

func RegisterRoutes(r *mux.Router, h *Handler) {
	r.HandleFunc("/agent", h.List).Methods(http.MethodGet)
	// порядок важен: availability/all раньше {id}/availability
	r.HandleFunc("/agent/availability/all", h.AllAvailability).Methods(http.MethodGet)
	r.HandleFunc("/agent/availability", h.SetAvailability).Methods(http.MethodPost)
	r.HandleFunc("/agent/available", h.Online).Methods(http.MethodGet)
	r.HandleFunc("/agent/{id:[0-9]+}/availability", h.GetAvailability).Methods(http.MethodGet)
}
