package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentassist/dentsync/config"
	"github.com/dentassist/dentsync/internal/model"
	pkgauth "github.com/dentassist/dentsync/pkg/auth"
	"github.com/dentassist/dentsync/pkg/security"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	hash, err := security.NewBcryptHasher(4).Hash("correct horse")
	require.NoError(t, err)

	return NewService(
		config.AdminConfig{Username: "drsmith", PasswordHash: hash},
		pkgauth.NewJWTService("test-secret", time.Hour),
	)
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc := newTestService(t)

	tokens, err := svc.Login(&model.LoginRequest{Username: "drsmith", Password: "correct horse"})
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, int64(3600), tokens.ExpiresIn)

	claims, err := svc.Validate(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "drsmith", claims.Username)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(&model.LoginRequest{Username: "drsmith", Password: "wrong"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, err = svc.Login(&model.LoginRequest{Username: "intruder", Password: "correct horse"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	svc := newTestService(t)
	other := NewService(
		config.AdminConfig{Username: "drsmith"},
		pkgauth.NewJWTService("different-secret", time.Hour),
	)

	tokens, err := svc.Login(&model.LoginRequest{Username: "drsmith", Password: "correct horse"})
	require.NoError(t, err)

	_, err = other.Validate(tokens.AccessToken)
	assert.Error(t, err)
}
