//go:build ignore

// Statusprobe hammers the status service and reports latency percentiles
// and the distribution of reported pong counts. With an unreachable
// backend every response should still be 200 with pongs=0, and latency
// bounded by the fetch chain budget.
//
// Usage:
//
//	go run statusprobe.go -url http://localhost:8080/status -concurrency 10 -requests 200
//	go run statusprobe.go -requests 500 -out summary.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type statusBody struct {
	CurrentStatus string `json:"current_status"`
	Pongs         int    `json:"pongs"`
}

func main() {
	var (
		url         = flag.String("url", "http://localhost:8080/status", "Target URL")
		concurrency = flag.Int("concurrency", 10, "Number of concurrent workers")
		requests    = flag.Int("requests", 100, "Total number of requests to send")
		timeout     = flag.Duration("timeout", 30*time.Second, "Per-request timeout")
		outJSON     = flag.String("out", "", "Write JSON summary to this file (optional)")
		verbose     = flag.Bool("v", false, "Verbose per-request logging to stdout")
	)
	flag.Parse()

	client := &http.Client{Timeout: *timeout}

	jobs := make(chan int)
	var wg sync.WaitGroup

	var success, failure int32

	var latencies []time.Duration
	pongCounts := make(map[int]int)
	statusCodes := make(map[int]int)
	var mu sync.Mutex

	testStart := time.Now()

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range jobs {
				start := time.Now()
				resp, err := client.Get(*url)
				dur := time.Since(start)

				if err != nil {
					atomic.AddInt32(&failure, 1)
					if *verbose {
						fmt.Printf("[%d] idx=%d error=%v\n", workerID, idx, err)
					}
					continue
				}

				var body statusBody
				decodeErr := json.NewDecoder(resp.Body).Decode(&body)
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()

				mu.Lock()
				latencies = append(latencies, dur)
				statusCodes[resp.StatusCode]++
				if decodeErr == nil {
					pongCounts[body.Pongs]++
				}
				mu.Unlock()

				if resp.StatusCode == http.StatusOK && decodeErr == nil {
					atomic.AddInt32(&success, 1)
				} else {
					atomic.AddInt32(&failure, 1)
				}

				if *verbose {
					fmt.Printf("[%d] idx=%d status=%d pongs=%d dur=%v\n", workerID, idx, resp.StatusCode, body.Pongs, dur)
				}
			}
		}(i)
	}

	go func() {
		for i := 0; i < *requests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	wg.Wait()
	totalDuration := time.Since(testStart)

	fmt.Println("--- Status Probe Summary ---")
	fmt.Printf("Target: %s\n", *url)
	fmt.Printf("Requests: %d  Concurrency: %d\n", *requests, *concurrency)
	fmt.Printf("Success: %d  Failure: %d  Duration: %v\n", success, failure, totalDuration)

	fmt.Println("\nStatus codes:")
	for _, k := range sortedKeys(statusCodes) {
		fmt.Printf("  %d -> %d\n", k, statusCodes[k])
	}

	fmt.Println("\nReported pongs:")
	for _, k := range sortedKeys(pongCounts) {
		fmt.Printf("  %d -> %d\n", k, pongCounts[k])
	}

	report := map[string]interface{}{
		"target":      *url,
		"requests":    *requests,
		"concurrency": *concurrency,
		"success":     success,
		"failure":     failure,
		"duration_ms": totalDuration.Milliseconds(),
	}

	if len(latencies) > 0 {
		sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
		p := func(pct float64) time.Duration {
			return latencies[int(float64(len(latencies)-1)*pct)]
		}
		fmt.Println("\nLatencies:")
		fmt.Printf("  samples=%d min=%v max=%v p50=%v p90=%v p99=%v\n",
			len(latencies), latencies[0], latencies[len(latencies)-1], p(0.50), p(0.90), p(0.99))

		report["p50_ms"] = p(0.50).Milliseconds()
		report["p90_ms"] = p(0.90).Milliseconds()
		report["p99_ms"] = p(0.99).Milliseconds()
		report["max_ms"] = latencies[len(latencies)-1].Milliseconds()
	}

	if *outJSON != "" {
		f, err := os.Create(*outJSON)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create json file: %v\n", err)
			os.Exit(1)
		}
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		enc.Encode(report)
		f.Close()
		fmt.Printf("\nWrote JSON summary to %s\n", *outJSON)
	}

	if failure > 0 {
		os.Exit(2)
	}
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
