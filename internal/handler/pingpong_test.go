package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gorilla/mux"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/log-output/internal/handler"
	"github.com/angeloszaimis/log-output/internal/pingpong"
)

var _ = Describe("PingPongHandler", func() {
	var router *mux.Router

	BeforeEach(func() {
		router = mux.NewRouter()
		handler.NewPingPongHandler(pingpong.NewCounter()).Register(router)
	})

	get := func(path string) map[string]interface{} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		Expect(w.Code).To(Equal(http.StatusOK))

		var body map[string]interface{}
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		return body
	}

	It("should greet on the root path", func() {
		Expect(get("/")).To(HaveKeyWithValue("message", "Hello World"))
	})

	It("should report zero pongs before any ping", func() {
		Expect(get("/pongs")).To(HaveKeyWithValue("pongs", BeNumerically("==", 0)))
	})

	It("should count pings", func() {
		Expect(get("/pingpong")).To(HaveKeyWithValue("message", "pong 1"))
		Expect(get("/pingpong")).To(HaveKeyWithValue("message", "pong 2"))
		Expect(get("/pongs")).To(HaveKeyWithValue("pongs", BeNumerically("==", 2)))
	})

	It("should not count reads of /pongs", func() {
		get("/pongs")
		get("/pongs")
		Expect(get("/pingpong")).To(HaveKeyWithValue("message", "pong 1"))
	})
})
