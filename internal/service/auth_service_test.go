package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronicle-app/chronicle-api/internal/dto"
	appErrors "github.com/chronicle-app/chronicle-api/pkg/errors"
)

func newAuthServiceForTest() *AuthService {
	return NewAuthService(nil, nil, AuthConfig{
		Secret:    "test-secret",
		AccessKey: "let-me-in",
		TokenTTL:  time.Hour,
		Issuer:    "chronicle-api",
	})
}

func TestAuthServiceIssueToken(t *testing.T) {
	svc := newAuthServiceForTest()

	resp, err := svc.IssueToken(dto.TokenRequest{AccessKey: "let-me-in"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), resp.ExpiresAt, time.Minute)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "chronicle-api", claims.Issuer)
}

func TestAuthServiceIssueTokenWrongKey(t *testing.T) {
	svc := newAuthServiceForTest()

	_, err := svc.IssueToken(dto.TokenRequest{AccessKey: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceIssueTokenMissingKey(t *testing.T) {
	svc := newAuthServiceForTest()

	_, err := svc.IssueToken(dto.TokenRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenRejectsForeignSignature(t *testing.T) {
	issuer := NewAuthService(nil, nil, AuthConfig{
		Secret:    "other-secret",
		AccessKey: "let-me-in",
		TokenTTL:  time.Hour,
	})
	resp, err := issuer.IssueToken(dto.TokenRequest{AccessKey: "let-me-in"})
	require.NoError(t, err)

	svc := newAuthServiceForTest()
	_, err = svc.ValidateToken(resp.Token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
