//go:build ignore

// Pongbackend is a stand-in for the ping-pong service used to exercise the
// status service's fetch chain against misbehaving backends.
//
// Usage:
//
//	go run pongbackend.go -port 1234 -pongs 42
//	go run pongbackend.go -port 1234 -delay 10s
//	go run pongbackend.go -port 1234 -mode status
//
// Modes:
//   - ok:      200 with {"pongs": N}
//   - status:  503
//   - garbage: 200 with a non-JSON body
//   - missing: 200 with {"count": N}
//   - float:   200 with {"pongs": N.5}
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"
)

func main() {
	port := flag.Int("port", 1234, "port to listen on")
	pongs := flag.Int("pongs", 0, "value reported on /pongs")
	delay := flag.Duration("delay", 0, "sleep before answering")
	mode := flag.String("mode", "ok", "ok, status, garbage, missing or float")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("/pongs", func(w http.ResponseWriter, r *http.Request) {
		log.Printf("request: method=%s path=%s from=%s mode=%s", r.Method, r.URL.Path, r.RemoteAddr, *mode)

		if *delay > 0 {
			select {
			case <-time.After(*delay):
			case <-r.Context().Done():
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		switch *mode {
		case "status":
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"error":"unavailable"}`)
		case "garbage":
			fmt.Fprint(w, "<html>not json</html>")
		case "missing":
			fmt.Fprintf(w, `{"count":%d}`, *pongs)
		case "float":
			fmt.Fprintf(w, `{"pongs":%d.5}`, *pongs)
		default:
			fmt.Fprintf(w, `{"pongs":%d}`, *pongs)
		}
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("starting pong backend on %s (mode=%s)", addr, *mode)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
