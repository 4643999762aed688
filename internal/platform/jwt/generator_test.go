package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task_backend/internal/shared/apperror"
)

// TestNewGenerator は各種設定でGeneratorが正しく生成されることを検証します。
func TestNewGenerator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		secret     string
		expiration time.Duration
	}{
		{"standard config", "my-secret-key", 24 * time.Hour},
		{"long expiration", "secret", 24 * time.Hour * 30},
		{"short expiration", "s", time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := NewGenerator(tt.secret, tt.expiration)

			require.NotNil(t, gen)
			assert.Equal(t, tt.secret, string(gen.secret))
			assert.Equal(t, tt.expiration, gen.expiration)
		})
	}
}

// TestGenerator_RoundTrip は生成したトークンを検証すると同じペイロードが得られることを検証します。
func TestGenerator_RoundTrip(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("round-trip-secret", time.Hour)

	token, err := gen.GenerateToken("7c9e6679-7425-40de-944b-e07fc1f90ae7", "user@example.com")
	require.NoError(t, err)

	claims, err := gen.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, claims.UserID, claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

// TestGenerator_VerifyToken_Failures は署名不一致・期限切れ・不正形式がすべて認証エラーになることを検証します。
func TestGenerator_VerifyToken_Failures(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("correct-secret", time.Hour)
	other := NewGenerator("other-secret", time.Hour)

	wrongSig, err := other.GenerateToken("u1", "a@b.com")
	require.NoError(t, err)

	expired := NewGenerator("correct-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.GenerateToken("u1", "a@b.com")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	emptyUser, err := gen.GenerateToken("", "a@b.com")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"wrong signature", wrongSig},
		{"expired", expiredToken},
		{"malformed", "not.a.jwt"},
		{"empty", ""},
		{"none algorithm", noneToken},
		{"missing user id", emptyUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims, err := gen.VerifyToken(tt.token)

			assert.Nil(t, claims)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperror.ErrAuthentication)
			var appErr *apperror.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, InvalidTokenMessage, appErr.Message)
		})
	}
}
