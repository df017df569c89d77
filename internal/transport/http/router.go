package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the health probe, the metrics endpoint and the game websocket.
func NewRouter(ws *WSHandler, metrics http.Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	if metrics != nil {
		r.Handle("/metrics", metrics).Methods(http.MethodGet)
	}
	ws.Register(r)
	return r
}
