package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/log-output/internal/handler"
)

type fixedCounter struct {
	value int
	calls int
}

func (c *fixedCounter) Count(ctx context.Context) int {
	c.calls++
	return c.value
}

var _ = Describe("StatusHandler", func() {
	var (
		router     *mux.Router
		counter    *fixedCounter
		tempDir    string
		statusFile string
		log        *slog.Logger
	)

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "status-handler-*")
		Expect(err).NotTo(HaveOccurred())
		statusFile = filepath.Join(tempDir, "status.txt")

		log = slog.New(slog.NewTextHandler(io.Discard, nil))
		counter = &fixedCounter{value: 7}
		router = mux.NewRouter()
		handler.NewStatusHandler(log, counter, statusFile).Register(router)
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	It("should serve a banner on the root path", func() {
		w := get("/")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("/status"))
	})

	It("should render the latest line with the pong count", func() {
		Expect(os.WriteFile(statusFile, []byte("a: 1\nb: 2\n"), 0644)).To(Succeed())

		w := get("/status")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(Equal("application/json"))

		var resp handler.StatusResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp).To(Equal(handler.StatusResponse{CurrentStatus: "b: 2", Pongs: 7}))
		Expect(counter.calls).To(Equal(1))
	})

	It("should still render the count before the first line is written", func() {
		w := get("/status")
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp handler.StatusResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.CurrentStatus).To(Equal(handler.StatusUnavailable))
		Expect(resp.Pongs).To(Equal(7))
	})

	It("should render the fallback count", func() {
		counter.value = 0
		Expect(os.WriteFile(statusFile, []byte("line\n"), 0644)).To(Succeed())

		var resp handler.StatusResponse
		Expect(json.Unmarshal(get("/status").Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Pongs).To(BeZero())
	})

	It("should reject other methods", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/status", nil))
		Expect(w.Code).To(Equal(http.StatusMethodNotAllowed))
	})
})

var _ = Describe("Logging", func() {
	It("should log the request and its status", func() {
		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))

		router := mux.NewRouter()
		router.Use(handler.Logging(log))
		router.HandleFunc("/teapot", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})

		req := httptest.NewRequest(http.MethodGet, "/teapot", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusTeapot))
		Expect(buf.String()).To(ContainSubstring("Handled request"))
		Expect(buf.String()).To(ContainSubstring("status=418"))
		Expect(buf.String()).To(ContainSubstring("from=10.0.0.1"))
		Expect(buf.String()).To(ContainSubstring("path=/teapot"))
	})
})
