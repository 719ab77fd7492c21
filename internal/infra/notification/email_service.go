package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"dealradar/internal/domain/service"

	"github.com/pkg/errors"
)

// httpMailer hands emails to an external delivery service over HTTP.
type httpMailer struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPMailer is the constructor for httpMailer.
func NewHTTPMailer(baseURL string, logger *slog.Logger) service.Mailer {
	return &httpMailer{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Send posts the message to the delivery service. Non-2xx responses are
// errors; callers decide whether delivery failures abort the request.
func (m *httpMailer) Send(ctx context.Context, msg *service.EmailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("email service returned non-success status: %d", resp.StatusCode)
	}

	m.logger.Debug("Email handed to delivery service",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)

	return nil
}

// noopMailer stands in when no email service is configured.
type noopMailer struct {
	logger *slog.Logger
}

// NewNoopMailer is the constructor for noopMailer.
func NewNoopMailer(logger *slog.Logger) service.Mailer {
	return &noopMailer{logger: logger}
}

func (m *noopMailer) Send(_ context.Context, msg *service.EmailMessage) error {
	m.logger.Debug("[NoopMail] Email disabled, skipping",
		slog.String("to", msg.To),
	)

	return nil
}
