package identity_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"assignment-service/internal/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func resolveWithToken(t *testing.T, resolver *identity.TokenResolver, token string) int {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	actor, err := resolver.Resolve(req)
	require.NoError(t, err)
	if actor == nil {
		return 0
	}
	return actor.ID
}

func TestTokenResolver(t *testing.T) {
	users := seedUsers(t)
	resolver := identity.NewTokenResolver(users, testSecret)

	t.Run("RoundTrip", func(t *testing.T) {
		token, err := identity.GenerateToken(testSecret, 2, 15*time.Minute)
		require.NoError(t, err)

		assert.Equal(t, 2, resolveWithToken(t, resolver, token))
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token, err := identity.GenerateToken("other-secret", 2, 15*time.Minute)
		require.NoError(t, err)

		assert.Equal(t, 0, resolveWithToken(t, resolver, token))
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		token, err := identity.GenerateToken(testSecret, 2, -time.Minute)
		require.NoError(t, err)

		assert.Equal(t, 0, resolveWithToken(t, resolver, token))
	})

	t.Run("UnknownUser", func(t *testing.T) {
		token, err := identity.GenerateToken(testSecret, 42, 15*time.Minute)
		require.NoError(t, err)

		assert.Equal(t, 0, resolveWithToken(t, resolver, token))
	})

	t.Run("NoHeader", func(t *testing.T) {
		assert.Equal(t, 0, resolveWithToken(t, resolver, ""))
	})

	t.Run("GarbageToken", func(t *testing.T) {
		assert.Equal(t, 0, resolveWithToken(t, resolver, "not.a.jwt"))
	})
}
