package main

import (
	"bytes"
	"fmt"
	json "github.com/goccy/go-json"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:8090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numSessions  = 200
)

var metrics = []string{
	"sentiment", "retention", "virality", "velocity", "crossPlatform", "locationAnalytics",
	"retentionGraphs", "aiRecommendations", "captionUsage", "calendarInsights", "bestPostingTimes",
}

var interactionTypes = []string{"hover", "tap", "click", "longHover"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== intentd Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Sessions: %d\n\n", numWorkers, testDuration, numSessions)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Opening sessions (POST /sessions) ---")
	for i := 0; i < numSessions; i++ {
		if r := doOpen(sessionID(i)); r.err {
			fmt.Printf("FAILED: open session %d returned %d\n", i, r.status)
			return
		}
	}
	fmt.Printf("Opened %d sessions\n", numSessions)

	fmt.Println("\n--- Phase 2: Write-heavy load (80% interactions, 20% reads) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.70:
			return doInteraction(rng)
		case r < 0.80:
			return doTrial(rng)
		case r < 0.90:
			return doGet(rng, "/summary")
		default:
			return doGet(rng, "/prompt")
		}
	})

	fmt.Println("\n--- Phase 3: Read-heavy load (10% interactions, 90% reads) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doInteraction(rng)
		case r < 0.40:
			return doGet(rng, "/summary")
		case r < 0.70:
			return doGet(rng, "/prompt")
		case r < 0.85:
			return doGet(rng, "/trials/status")
		default:
			return doGet(rng, "/modal")
		}
	})
}

func sessionID(i int) string {
	return fmt.Sprintf("load_%d", i)
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func post(endpoint, url string, body any, ok int) result {
	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(url, "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != ok && resp.StatusCode != http.StatusOK}
}

func doOpen(id string) result {
	return post("POST /sessions", baseURL+"/sessions", map[string]string{"sessionId": id}, http.StatusCreated)
}

func doInteraction(rng *rand.Rand) result {
	body := map[string]interface{}{
		"metricId":        metrics[rng.Intn(len(metrics))],
		"interactionType": interactionTypes[rng.Intn(len(interactionTypes))],
		"source":          "card",
	}
	if rng.Float64() < 0.5 {
		body["duration"] = rng.Intn(4000) + 500
	}
	url := fmt.Sprintf("%s/interactions?s=%s", baseURL, sessionID(rng.Intn(numSessions)))
	return post("POST /interactions", url, body, http.StatusCreated)
}

func doTrial(rng *rand.Rand) result {
	body := map[string]interface{}{
		"metricId":   metrics[rng.Intn(len(metrics))],
		"durationMs": rng.Intn(5000) + 1000,
	}
	url := fmt.Sprintf("%s/trials?s=%s", baseURL, sessionID(rng.Intn(numSessions)))
	return post("POST /trials", url, body, http.StatusCreated)
}

func doGet(rng *rand.Rand, path string) result {
	endpoint := "GET " + path
	url := fmt.Sprintf("%s%s?s=%s", baseURL, path, sessionID(rng.Intn(numSessions)))
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
