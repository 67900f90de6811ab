package main

import (
	"bytes"
	"encoding/json"
	"fmt"
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
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numUsers     = 200
	numGuests    = 100
	numSeries    = 50
	numEpisodes  = 400
)

var categorySlugs = []string{"", "comedy", "drama", "romance", "action", "thriller"}

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
	fmt.Println("=== HomeFeed Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n", numWorkers, testDuration)
	fmt.Printf("Users: %d | Guests: %d | Series: %d | Episodes: %d\n\n", numUsers, numGuests, numSeries, numEpisodes)

	// Wait for server
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

	// Phase 1: Seed watch history with POST requests
	fmt.Println("\n--- Phase 1: Seeding watch history (POST /progress) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doSaveProgress(rng)
	})

	// Let the trending cache settle between phases
	fmt.Println("\nWaiting 2s before mixed load...")
	time.Sleep(2 * time.Second)

	// Phase 2: Mixed read/write load
	fmt.Println("\n--- Phase 2: Mixed load (40% POST, 60% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.40:
			return doSaveProgress(rng)
		case r < 0.70:
			return doGetHome(rng)
		case r < 0.90:
			return doGetTrending(rng)
		default:
			return doGetFollowing(rng)
		}
	})

	// Phase 3: Read-heavy load
	fmt.Println("\n--- Phase 3: Read-heavy load (10% POST, 90% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doSaveProgress(rng)
		case r < 0.55:
			return doGetHome(rng)
		case r < 0.85:
			return doGetTrending(rng)
		default:
			return doGetFollowing(rng)
		}
	})
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

// addIdentity attaches either a user header or a guest cookie; a small share
// of requests stays anonymous.
func addIdentity(rng *rand.Rand, req *http.Request) {
	r := rng.Float64()
	switch {
	case r < 0.6:
		req.Header.Set("X-User-Id", fmt.Sprintf("user_%d", rng.Intn(numUsers)))
	case r < 0.9:
		req.AddCookie(&http.Cookie{Name: "guest_id", Value: fmt.Sprintf("guest_%d", rng.Intn(numGuests))})
	}
}

func doSaveProgress(rng *rand.Rand) result {
	series := rng.Intn(numSeries) + 1
	episode := rng.Intn(numEpisodes) + 1
	duration := 600 + rng.Intn(1200)

	body := map[string]interface{}{
		"seriesId":        fmt.Sprintf("s_%d", series),
		"episodeId":       fmt.Sprintf("e_%d", episode),
		"progressSeconds": rng.Intn(duration + 1),
		"durationSeconds": duration,
	}

	data, _ := json.Marshal(body)
	req, err := http.NewRequest(http.MethodPost, baseURL+"/progress", bytes.NewReader(data))
	if err != nil {
		return result{"POST /progress", 0, 0, true}
	}
	req.Header.Set("Content-Type", "application/json")
	addIdentity(rng, req)

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{"POST /progress", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"POST /progress", resp.StatusCode, lat, resp.StatusCode != 201}
}

func doGetHome(rng *rand.Rand) result {
	slug := categorySlugs[rng.Intn(len(categorySlugs))]
	url := baseURL + "/home"
	if slug != "" {
		url += "?category=" + slug
	}
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	addIdentity(rng, req)

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /home", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	// unknown categories 404 by design when the seed lacks them
	ok := resp.StatusCode == 200 || resp.StatusCode == 404
	return result{"GET /home", resp.StatusCode, lat, !ok}
}

func doGetTrending(rng *rand.Rand) result {
	slug := categorySlugs[rng.Intn(len(categorySlugs))]
	url := fmt.Sprintf("%s/trending?limit=%d", baseURL, rng.Intn(20)+1)
	if slug != "" {
		url += "&category=" + slug
	}
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /trending", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	ok := resp.StatusCode == 200 || resp.StatusCode == 404
	return result{"GET /trending", resp.StatusCode, lat, !ok}
}

func doGetFollowing(rng *rand.Rand) result {
	n := rng.Intn(5) + 1
	ids := make([]byte, 0, n*6)
	for i := 0; i < n; i++ {
		if i > 0 {
			ids = append(ids, ',')
		}
		ids = append(ids, fmt.Sprintf("s_%d", rng.Intn(numSeries)+1)...)
	}
	req, _ := http.NewRequest(http.MethodGet, baseURL+"/following?ids="+string(ids), nil)
	addIdentity(rng, req)

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /following", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /following", resp.StatusCode, lat, resp.StatusCode != 200}
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
