package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// HTTPSMSSender delivers SMS messages through an HTTP gateway. The gateway
// accepts a JSON POST with the recipient number and message body.
type HTTPSMSSender struct {
	client     *http.Client
	gatewayURL string
}

// NewHTTPSMSSender creates a sender that posts to the given gateway URL.
func NewHTTPSMSSender(gatewayURL string) *HTTPSMSSender {
	return &HTTPSMSSender{
		client:     &http.Client{Timeout: 10 * time.Second},
		gatewayURL: gatewayURL,
	}
}

// SendSMS posts the message to the gateway and fails on any non-2xx status.
func (s *HTTPSMSSender) SendSMS(ctx context.Context, to, body string) error {
	payload, err := json.Marshal(map[string]string{
		"to":      to,
		"message": body,
	})
	if err != nil {
		return fmt.Errorf("marshal sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.gatewayURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}

// LogEmailSender writes outbound email to the structured log instead of an
// SMTP server. Used until a mail provider is configured for a deployment.
type LogEmailSender struct {
	log zerolog.Logger
}

func NewLogEmailSender(log zerolog.Logger) *LogEmailSender {
	return &LogEmailSender{log: log}
}

func (s *LogEmailSender) SendEmail(_ context.Context, to, subject, body string) error {
	s.log.Info().
		Str("to", to).
		Str("subject", subject).
		Int("body_bytes", len(body)).
		Msg("email dispatched to log sink")
	return nil
}
