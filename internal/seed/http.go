package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/okian/pacetrend/internal/domain/model"
	"github.com/okian/pacetrend/internal/domain/types"
	"github.com/okian/pacetrend/pkg/logger"
)

const maxErrorBody = 4 << 10

// Client talks to a running pace trend service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient swaps the transport, e.g. for an httptest server.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.http = hc
	}
	return c
}

// Health checks GET /healthz.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", http.NoBody)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	return nil
}

// PostActivities submits one batch to POST /activities.
func (c *Client) PostActivities(ctx context.Context, batch []model.Activity) (types.IngestResult, error) {
	var res types.IngestResult
	body, err := json.Marshal(batch)
	if err != nil {
		return res, fmt.Errorf("failed to marshal batch: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/activities", bytes.NewReader(body))
	if err != nil {
		return res, err
	}
	req.Header.Set("Content-Type", "application/json")
	err = c.do(req, &res)
	return res, err
}

// Report fetches GET /report.
func (c *Client) Report(ctx context.Context) (*types.Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/report", http.NoBody)
	if err != nil {
		return nil, err
	}
	var rep types.Report
	if err := c.do(req, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// submit posts the activities in batches with a pool of workers and sums the results.
func submit(ctx context.Context, c *Client, cfg *Config, activities []model.Activity, stats *Stats) error {
	var batches [][]model.Activity
	for start := 0; start < len(activities); start += cfg.BatchSize {
		end := min(start+cfg.BatchSize, len(activities))
		batches = append(batches, activities[start:end])
	}
	logger.Get().Info(ctx, "submitting activities",
		logger.Int("records", len(activities)),
		logger.Int("batches", len(batches)),
		logger.Int("workers", cfg.Workers),
	)

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)
	batchChan := make(chan []model.Activity, cfg.Workers*workerChannelDepth)

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range batchChan {
				res, err := c.PostActivities(ctx, batch)

				mu.Lock()
				stats.BatchesSubmitted++
				if err != nil {
					stats.BatchesFailed++
					if firstErr == nil {
						firstErr = err
					}
				} else {
					stats.Ingest.Received += res.Received
					stats.Ingest.Accepted += res.Accepted
					stats.Ingest.Replaced += res.Replaced
					stats.Ingest.Ignored += res.Ignored
					stats.Ingest.Rejected = append(stats.Ingest.Rejected, res.Rejected...)
					stats.Ingest.Stored = max(stats.Ingest.Stored, res.Stored)
				}
				mu.Unlock()

				if cfg.Verbose {
					logger.Get().Debug(ctx, "batch submitted",
						logger.Int("records", len(batch)),
						logger.Int("accepted", res.Accepted),
						logger.Any("error", err),
					)
				}
			}
		}()
	}

	go func() {
		defer close(batchChan)
		for _, b := range batches {
			select {
			case <-ctx.Done():
				return
			case batchChan <- b:
			}
		}
	}()

	wg.Wait()
	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
