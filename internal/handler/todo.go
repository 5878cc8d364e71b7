package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/angeloszaimis/log-output/internal/todo"
)

const maxTodoBody = 64 << 10

type TodosResponse struct {
	Todos []todo.Todo `json:"todos"`
}

type createTodoRequest struct {
	Text string `json:"text"`
}

type TodoHandler struct {
	logger *slog.Logger
	store  todo.Store
}

func NewTodoHandler(logger *slog.Logger, store todo.Store) *TodoHandler {
	return &TodoHandler{logger: logger, store: store}
}

func (h *TodoHandler) Register(r *mux.Router) {
	r.HandleFunc("/", h.root).Methods(http.MethodGet)
	r.HandleFunc("/todos", h.list).Methods(http.MethodGet)
	r.HandleFunc("/todos", h.create).Methods(http.MethodPost)
}

func (h *TodoHandler) root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, message{Message: "Todo backend is running"})
}

func (h *TodoHandler) list(w http.ResponseWriter, r *http.Request) {
	todos, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list todos", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "failed to list todos")
		return
	}

	respondJSON(w, http.StatusOK, TodosResponse{Todos: todos})
}

func (h *TodoHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTodoBody)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.store.Create(r.Context(), req.Text)
	if errors.Is(err, todo.ErrEmptyText) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("Failed to create todo", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "failed to create todo")
		return
	}

	h.logger.Info("Created todo", slog.Int("id", t.ID))
	respondJSON(w, http.StatusCreated, t)
}
