package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gorilla/mux"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/log-output/internal/handler"
	"github.com/angeloszaimis/log-output/internal/todo"
)

type brokenStore struct{}

func (brokenStore) List(ctx context.Context) ([]todo.Todo, error) {
	return nil, errors.New("connection refused")
}

func (brokenStore) Create(ctx context.Context, text string) (todo.Todo, error) {
	return todo.Todo{}, errors.New("connection refused")
}

var _ = Describe("TodoHandler", func() {
	var (
		router *mux.Router
		log    *slog.Logger
	)

	BeforeEach(func() {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
		router = mux.NewRouter()
		handler.NewTodoHandler(log, todo.NewMemoryStore()).Register(router)
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader(body)))
		return w
	}

	It("should list the seeded todos", func() {
		w := do(http.MethodGet, "/todos", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp handler.TodosResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Todos).To(Equal(todo.Seed()))
	})

	It("should create a todo with the next id", func() {
		w := do(http.MethodPost, "/todos", `{"text":"Buy milk"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var created todo.Todo
		Expect(json.Unmarshal(w.Body.Bytes(), &created)).To(Succeed())
		Expect(created).To(Equal(todo.Todo{ID: 4, Text: "Buy milk"}))

		var resp handler.TodosResponse
		Expect(json.Unmarshal(do(http.MethodGet, "/todos", "").Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Todos).To(HaveLen(4))
	})

	DescribeTable("should reject bad input",
		func(body string) {
			w := do(http.MethodPost, "/todos", body)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("error"))
		},
		Entry("malformed JSON", `{"text":`),
		Entry("empty text", `{"text":""}`),
		Entry("blank text", `{"text":"   "}`),
		Entry("missing text", `{}`),
		Entry("wrong type", `{"text":5}`),
	)

	Context("when the store fails", func() {
		BeforeEach(func() {
			router = mux.NewRouter()
			handler.NewTodoHandler(log, brokenStore{}).Register(router)
		})

		It("should return 500 on list", func() {
			Expect(do(http.MethodGet, "/todos", "").Code).To(Equal(http.StatusInternalServerError))
		})

		It("should return 500 on create", func() {
			Expect(do(http.MethodPost, "/todos", `{"text":"x"}`).Code).To(Equal(http.StatusInternalServerError))
		})
	})
})
