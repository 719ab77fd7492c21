package notification

import (
	"context"
	"log/slog"

	"dealradar/internal/domain/service"
)

// noopPushSender stands in when Firebase credentials are not configured.
type noopPushSender struct {
	logger *slog.Logger
}

// NewNoopPushSender is the constructor for noopPushSender.
func NewNoopPushSender(logger *slog.Logger) service.PushSender {
	return &noopPushSender{logger: logger}
}

func (s *noopPushSender) SendPush(_ context.Context, token, title, _ string, _ map[string]string) error {
	s.logger.Debug("[NoopPush] Push disabled, skipping",
		slog.String("token", token),
		slog.String("title", title),
	)

	return nil
}
