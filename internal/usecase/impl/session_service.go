package impl

import (
	"context"
	"log/slog"

	deliverycontext "dealradar/internal/delivery/context"
	domainerrors "dealradar/internal/domain/errors"
	"dealradar/internal/domain/service"
	"dealradar/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	tokenService service.TokenService
	validator    service.SessionValidator
	logger       *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	TokenService service.TokenService
	Validator    service.SessionValidator
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		tokenService: params.TokenService,
		validator:    params.Validator,
		logger:       params.Logger,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RotateRefreshToken replaces a valid refresh token with a fresh one
// carrying a reset lifetime. The subject and profile claims carry over
// unchanged.
func (srv *sessionService) RotateRefreshToken(ctx context.Context, refreshToken string) (*usecase.RotateOutput, error) {
	claims, err := srv.tokenService.ParseRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, service.ErrTokenExpired) {
			return nil, domainerrors.ErrSessionExpired.WrapMessage("refresh token expired")
		}

		return nil, domainerrors.ErrSessionInvalid.WrapMessage("refresh token rejected")
	}

	if err := srv.validator.Validate(ctx, claims); err != nil {
		srv.log(ctx).Warn("Session validator rejected refresh token", slog.Any("error", err))

		return nil, domainerrors.ErrSessionInvalid.WrapMessage("session rejected")
	}

	next, err := srv.tokenService.IssueRefreshToken(claims.UserID, claims.UserData)
	if err != nil {
		srv.log(ctx).Error("Failed to issue rotated refresh token", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to rotate refresh token")
	}

	srv.log(ctx).Debug("Refresh token rotated", slog.String("userID", claims.UserID))

	return &usecase.RotateOutput{RefreshToken: next}, nil
}
