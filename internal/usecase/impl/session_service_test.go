package impl

import (
	"context"
	"testing"

	domainerrors "dealradar/internal/domain/errors"
	"dealradar/internal/domain/service"
	"dealradar/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSessionService(t *testing.T, tokens *fakeTokenService, validator *fakeValidator) usecase.SessionUsecase {
	t.Helper()

	return NewSessionService(SessionServiceParams{
		TokenService: tokens,
		Validator:    validator,
		Logger:       newDiscardLogger(),
	})
}

func TestSessionService_RotateRefreshToken_Success(t *testing.T) {
	tokens := &fakeTokenService{
		parseRefreshFn: func(token string) (*service.Claims, error) {
			assert.Equal(t, "current-refresh", token)

			return &service.Claims{
				UserID:   "user-123",
				UserData: service.UserData{Name: "Test User", Email: "test@example.com"},
				Type:     service.TokenTypeRefresh,
			}, nil
		},
	}

	svc := createTestSessionService(t, tokens, &fakeValidator{})

	output, err := svc.RotateRefreshToken(context.Background(), "current-refresh")
	require.NoError(t, err)

	// The subject carries over; the token itself is brand new.
	assert.Equal(t, "refresh-user-123", output.RefreshToken)
}

func TestSessionService_RotateRefreshToken_Expired(t *testing.T) {
	tokens := &fakeTokenService{
		parseRefreshFn: func(string) (*service.Claims, error) {
			return nil, errors.Wrap(service.ErrTokenExpired, "token is expired")
		},
	}

	svc := createTestSessionService(t, tokens, &fakeValidator{})

	output, err := svc.RotateRefreshToken(context.Background(), "stale-refresh")
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionExpired))
}

func TestSessionService_RotateRefreshToken_Invalid(t *testing.T) {
	tokens := &fakeTokenService{
		parseRefreshFn: func(string) (*service.Claims, error) {
			return nil, errors.Wrap(service.ErrTokenInvalid, "bad signature")
		},
	}

	svc := createTestSessionService(t, tokens, &fakeValidator{})

	output, err := svc.RotateRefreshToken(context.Background(), "forged-refresh")
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionInvalid))
}

func TestSessionService_RotateRefreshToken_ValidatorRejects(t *testing.T) {
	tokens := &fakeTokenService{
		parseRefreshFn: func(string) (*service.Claims, error) {
			return &service.Claims{UserID: "user-123", Type: service.TokenTypeRefresh}, nil
		},
	}
	validator := &fakeValidator{err: errors.New("session revoked")}

	svc := createTestSessionService(t, tokens, validator)

	output, err := svc.RotateRefreshToken(context.Background(), "revoked-refresh")
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionInvalid))
}
