package security

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("casamento2026")
	require.NoError(t, err)

	assert.NotEqual(t, "casamento2026", hash)
	assert.True(t, CheckPassword("casamento2026", hash))
	assert.False(t, CheckPassword("wrong", hash))

	again, err := HashPassword("casamento2026")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "hashes must be salted")
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", 7*24*time.Hour)

	token, expiresAt, err := svc.GenerateToken("noivos@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "noivos@example.com", claims.Email)
	assert.Equal(t, TokenIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenRejections(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	valid, _, err := svc.GenerateToken("noivos@example.com")
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := NewTokenService("test-secret", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

		_, err := later.ValidateToken(valid)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenService("other-secret", time.Hour)
		_, err := other.ValidateToken(valid)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, AdminClaims{
			Email: "noivos@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    TokenIssuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(raw)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("missing expiry", func(t *testing.T) {
		noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{
			Email:            "noivos@example.com",
			RegisteredClaims: jwt.RegisteredClaims{Issuer: TokenIssuer},
		})
		raw, err := noExp.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.ValidateToken(raw)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"), "limits are per IP")

	now = now.Add(time.Minute)
	assert.True(t, rl.Allow("10.0.0.1"), "tokens refill after the window")

	now = now.Add(5 * time.Minute)
	rl.Allow("10.0.0.3")
	rl.mu.Lock()
	_, stale := rl.visitors["10.0.0.2"]
	rl.mu.Unlock()
	assert.False(t, stale, "idle visitors are swept")
}

func TestClientIPIgnoresForwardingHeadersFromUntrustedPeers(t *testing.T) {
	resolver, err := NewClientIPResolver(nil)
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/api/access/12345678", nil)
	r.RemoteAddr = "192.0.2.10:51234"
	assert.Equal(t, "192.0.2.10", resolver.ClientIP(r))

	r.Header.Set("X-Real-IP", "198.51.100.7")
	r.Header.Set("X-Forwarded-For", "203.0.113.5")
	assert.Equal(t, "192.0.2.10", resolver.ClientIP(r))
}

func TestClientIPBehindTrustedProxy(t *testing.T) {
	resolver, err := NewClientIPResolver([]string{"10.0.0.0/8", "127.0.0.1"})
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/api/access/12345678", nil)
	r.RemoteAddr = "10.1.2.3:443"
	assert.Equal(t, "10.1.2.3", resolver.ClientIP(r), "no headers falls back to the peer")

	r.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", resolver.ClientIP(r))

	// A spoofed leftmost entry is ignored in favor of the last untrusted hop
	r.Header.Set("X-Forwarded-For", "1.2.3.4, 203.0.113.5, 10.0.0.9")
	assert.Equal(t, "203.0.113.5", resolver.ClientIP(r))

	r.RemoteAddr = "127.0.0.1:8080"
	assert.Equal(t, "203.0.113.5", resolver.ClientIP(r))
}

func TestNewClientIPResolverRejectsInvalidEntries(t *testing.T) {
	_, err := NewClientIPResolver([]string{"not-an-ip"})
	assert.Error(t, err)

	_, err = NewClientIPResolver([]string{"10.0.0.0/99"})
	assert.Error(t, err)

	resolver, err := NewClientIPResolver([]string{" ", "::1"})
	require.NoError(t, err)
	assert.Len(t, resolver.trusted, 1)
}
