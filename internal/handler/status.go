package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/angeloszaimis/log-output/internal/generator"
)

// StatusUnavailable is shown until the generator has written a line.
const StatusUnavailable = "Status not available yet."

// Counter yields the pong count. It never fails; a fetcher falls back to
// its default.
type Counter interface {
	Count(ctx context.Context) int
}

type StatusResponse struct {
	CurrentStatus string `json:"current_status"`
	Pongs         int    `json:"pongs"`
}

type StatusHandler struct {
	logger     *slog.Logger
	counter    Counter
	statusFile string
}

func NewStatusHandler(logger *slog.Logger, counter Counter, statusFile string) *StatusHandler {
	return &StatusHandler{
		logger:     logger,
		counter:    counter,
		statusFile: statusFile,
	}
}

func (h *StatusHandler) Register(r *mux.Router) {
	r.HandleFunc("/", h.root).Methods(http.MethodGet)
	r.HandleFunc("/status", h.status).Methods(http.MethodGet)
}

func (h *StatusHandler) root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, message{Message: "Log Server is running. Check /status for the latest log."})
}

// status always renders, with the fallback count when the ping-pong
// backend cannot be reached and a placeholder when no line exists yet.
func (h *StatusHandler) status(w http.ResponseWriter, r *http.Request) {
	line, err := generator.ReadStatus(h.statusFile)
	if err != nil {
		if !errors.Is(err, generator.ErrNoStatus) {
			h.logger.Warn("Failed to read status file",
				slog.String("file", h.statusFile),
				slog.Any("err", err))
		}
		line = StatusUnavailable
	}

	respondJSON(w, http.StatusOK, StatusResponse{
		CurrentStatus: line,
		Pongs:         h.counter.Count(r.Context()),
	})
}
