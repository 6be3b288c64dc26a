package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/api/dto"
)

// TestResult contains metrics for a single request
type TestResult struct {
	Success      bool
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	TotalTime          time.Duration
	MinResponseTime    time.Duration
	MaxResponseTime    time.Duration
	TotalResponseTime  time.Duration
	ResponseTimes      []time.Duration
	ErrorCounts        map[string]int
	Lock               sync.Mutex
}

// apiClient issues authenticated requests against the ledger API
type apiClient struct {
	http     *http.Client
	baseURL  string
	username string
	password string
}

func main() {
	concurrency := flag.Int("c", 10, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 200, "Total number of deposits to make")
	amountText := flag.String("amount", "1.00", "Amount of every deposit")
	account := flag.String("account", entity.DefaultAccountName, "Account receiving the deposits")
	username := flag.String("user", "loadtest", "User to sign up (if missing) and deposit as")
	password := flag.String("password", "loadtest-password", "Password of the user")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 0, "Delay between requests of one worker in milliseconds")
	flag.Parse()

	amount, err := entity.ParseAmount(*amountText)
	if err != nil || amount <= 0 {
		fmt.Fprintf(os.Stderr, "invalid -amount %q\n", *amountText)
		os.Exit(2)
	}

	client := &apiClient{
		http:     &http.Client{Timeout: 10 * time.Second},
		baseURL:  *baseURL,
		username: *username,
		password: *password,
	}

	if err := client.ensureUser(); err != nil {
		fmt.Fprintf(os.Stderr, "signup failed: %v\n", err)
		os.Exit(1)
	}
	initial, err := client.balance(*account)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading initial balance failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Depositing %s into %s/%s\n", entity.FormatAmount(amount), *username, *account)
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)
	fmt.Printf("Initial balance: %s\n", entity.FormatAmount(initial))

	stats := &TestStats{
		TotalRequests:   *totalRequests,
		MinResponseTime: time.Hour,
		ErrorCounts:     make(map[string]int),
		ResponseTimes:   make([]time.Duration, 0, *totalRequests),
	}

	results := make(chan TestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(client, *account, *amountText, *delayMs, jobs, results)
		}()
	}

	for i := 0; i < *totalRequests; i++ {
		jobs <- i
	}
	close(jobs)

	var collected sync.WaitGroup
	collected.Add(1)
	go func() {
		defer collected.Done()
		for result := range results {
			stats.record(result)
		}
	}()

	startTime := time.Now()
	fmt.Println("Test running...")

	ticker := time.NewTicker(1 * time.Second)
	go func() {
		for range ticker.C {
			stats.Lock.Lock()
			completed := stats.SuccessfulRequests + stats.FailedRequests
			stats.Lock.Unlock()
			fmt.Printf("Progress: %d/%d requests completed\n", completed, stats.TotalRequests)
		}
	}()

	wg.Wait()
	close(results)
	collected.Wait()
	ticker.Stop()
	stats.TotalTime = time.Since(startTime)

	final, err := client.balance(*account)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading final balance failed: %v\n", err)
		os.Exit(1)
	}

	printResults(stats)

	// Every acknowledged deposit must be reflected exactly once
	expected := initial + int64(stats.SuccessfulRequests)*amount
	fmt.Println("\n================= CONSISTENCY =================")
	fmt.Printf("Expected balance: %s\n", entity.FormatAmount(expected))
	fmt.Printf("Actual balance:   %s\n", entity.FormatAmount(final))
	if final != expected {
		fmt.Println("❌ BALANCE MISMATCH")
		os.Exit(1)
	}
	fmt.Println("✅ Balance matches the acknowledged deposits")
}

func worker(client *apiClient, account, amount string, delayMs int, jobs <-chan int, results chan<- TestResult) {
	for range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		startTime := time.Now()
		status, err := client.post("/accounts/"+url.PathEscape(account)+"/deposits",
			dto.MovementRequest{Amount: amount, Note: "load test"})
		result := TestResult{ResponseTime: time.Since(startTime), StatusCode: status}

		switch {
		case err != nil:
			result.Error = err
		case status != http.StatusOK:
			result.Error = fmt.Errorf("HTTP status code %d", status)
		default:
			result.Success = true
		}
		results <- result
	}
}

func (s *TestStats) record(result TestResult) {
	s.Lock.Lock()
	defer s.Lock.Unlock()

	if result.Success {
		s.SuccessfulRequests++
	} else {
		s.FailedRequests++
		errMsg := "unknown"
		if result.Error != nil {
			errMsg = result.Error.Error()
		}
		s.ErrorCounts[errMsg]++
	}

	s.ResponseTimes = append(s.ResponseTimes, result.ResponseTime)
	s.TotalResponseTime += result.ResponseTime
	s.MinResponseTime = min(s.MinResponseTime, result.ResponseTime)
	s.MaxResponseTime = max(s.MaxResponseTime, result.ResponseTime)
}

func (c *apiClient) ensureUser() error {
	status, err := c.post("/users", dto.SignupRequest{Username: c.username, Password: c.password})
	if err != nil {
		return err
	}
	if status != http.StatusCreated && status != http.StatusConflict {
		return fmt.Errorf("HTTP status code %d", status)
	}
	return nil
}

func (c *apiClient) balance(account string) (int64, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/accounts/"+url.PathEscape(account), nil)
	if err != nil {
		return 0, err
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP status code %d", resp.StatusCode)
	}
	var body dto.AccountResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}
	return body.Balance.Cents, nil
}

func (c *apiClient) post(path string, payload any) (int, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	_ = resp.Body.Close()
	return resp.StatusCode, nil
}

func printResults(stats *TestStats) {
	tps := float64(stats.SuccessfulRequests) / stats.TotalTime.Seconds()

	var avgResponseTime time.Duration
	if len(stats.ResponseTimes) > 0 {
		avgResponseTime = stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))
	}

	var p50, p90, p99 time.Duration
	if len(stats.ResponseTimes) > 0 {
		sortedTimes := slices.Clone(stats.ResponseTimes)
		slices.Sort(sortedTimes)
		p50 = sortedTimes[len(sortedTimes)*50/100]
		p90 = sortedTimes[len(sortedTimes)*90/100]
		p99 = sortedTimes[len(sortedTimes)*99/100]
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Successful Requests: %d\n", stats.SuccessfulRequests)
	fmt.Printf("Failed Requests:     %d\n", stats.FailedRequests)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())
	fmt.Printf("TPS:                 %.2f\n", tps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avgResponseTime)
	fmt.Printf("Minimum Response:    %v\n", stats.MinResponseTime)
	fmt.Printf("Maximum Response:    %v\n", stats.MaxResponseTime)
	fmt.Printf("P50 Response:        %v\n", p50)
	fmt.Printf("P90 Response:        %v\n", p90)
	fmt.Printf("P99 Response:        %v\n", p99)

	if stats.FailedRequests > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d\n", errMsg, count)
		}
	}
}
