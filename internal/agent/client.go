// Package agent implements the CUPS polling agent: it detects completed
// print jobs on the local machine and reports them to the ingestion API.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kmurdhar/PrinterManagementSystem/internal/observability/tracing"
)

// Report is the wire payload for one completed print job. Field names match
// the ingestion endpoint's contract.
type Report struct {
	JobID        string `json:"jobId,omitempty"`
	UserName     string `json:"userName"`
	MachineName  string `json:"machineName"`
	PrinterName  string `json:"printerName"`
	DocumentName string `json:"documentName,omitempty"`
	PageCount    int    `json:"pageCount"`
	PrintTime    string `json:"printTime,omitempty"`
	Status       string `json:"status,omitempty"`
	FileSize     int64  `json:"fileSize,omitempty"`

	// dedupKey is the raw scheduler identifier, stable across polls. JobID is
	// not usable here: it carries a per-scan timestamp suffix.
	dedupKey string
}

// Key is the best-effort dedup key for a report. It is a hint only: the
// cache is in-memory and lost on restart, and the server tolerates duplicate
// submissions.
func (r Report) Key() string {
	if r.dedupKey != "" {
		return r.dedupKey
	}
	return r.JobID + "|" + r.PrinterName + "|" + r.DocumentName
}

// Client talks to the ingestion API.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// NewClient builds a reporting client for the API at baseURL.
func NewClient(baseURL string, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    tracing.WrapHTTPClient(&http.Client{Timeout: 10 * time.Second}),
		log:     log.Named("agent.client"),
	}
}

// Health probes the liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer drain(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health probe returned %d", resp.StatusCode)
	}
	return nil
}

// Send posts one job report. Any non-201 response is an error; the caller
// decides whether to retry.
func (c *Client) Send(ctx context.Context, report Report) error {
	body, err := json.Marshal(report)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/print-jobs", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer drain(resp.Body)

	if resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	c.log.Info("job reported",
		zap.String("document", report.DocumentName),
		zap.String("user", report.UserName),
		zap.String("printer", report.PrinterName),
	)
	return nil
}

func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
	_ = body.Close()
}
