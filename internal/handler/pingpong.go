package handler

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/angeloszaimis/log-output/internal/pingpong"
)

type PongsResponse struct {
	Pongs int64 `json:"pongs"`
}

type PingPongHandler struct {
	counter *pingpong.Counter
}

func NewPingPongHandler(counter *pingpong.Counter) *PingPongHandler {
	return &PingPongHandler{counter: counter}
}

func (h *PingPongHandler) Register(r *mux.Router) {
	r.HandleFunc("/", h.root).Methods(http.MethodGet)
	r.HandleFunc("/pingpong", h.ping).Methods(http.MethodGet)
	r.HandleFunc("/pongs", h.pongs).Methods(http.MethodGet)
}

func (h *PingPongHandler) root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, message{Message: "Hello World"})
}

func (h *PingPongHandler) ping(w http.ResponseWriter, r *http.Request) {
	n := h.counter.Increment()
	respondJSON(w, http.StatusOK, message{Message: fmt.Sprintf("pong %d", n)})
}

func (h *PingPongHandler) pongs(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, PongsResponse{Pongs: h.counter.Value()})
}
