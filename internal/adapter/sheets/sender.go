// Package sheets delivers survey records to the spreadsheet collection endpoint.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pscheid92/huella/internal/domain"
	"github.com/pscheid92/huella/internal/platform/version"
)

const DefaultTimeout = 15 * time.Second

// maxErrorBody limits how much of a rejected response is quoted in the error.
const maxErrorBody = 512

// Sender POSTs each payload as JSON to a single endpoint.
//
// By default only transport failures are errors: the endpoint is treated as a one-way
// sink whose answer is never inspected. With requireAck set, a non-2xx status also fails
// the attempt so the queue retries it.
type Sender struct {
	endpoint   string
	requireAck bool
	client     *http.Client
}

func NewSender(endpoint string, requireAck bool, timeout time.Duration) *Sender {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Sender{
		endpoint:   endpoint,
		requireAck: requireAck,
		client:     &http.Client{Timeout: timeout},
	}
}

func (s *Sender) Send(ctx context.Context, payload domain.Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sheets request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if s.requireAck && (resp.StatusCode < 200 || resp.StatusCode >= 300) {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("sheets request rejected: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
