package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	ok, err := VerifyPassword(hash, "correct horse")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = HashPassword("short")
	assert.Error(t, err)

	_, err = VerifyPassword("not-a-hash", "correct horse")
	assert.Error(t, err)
}

func TestTokenIssuer(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.GenerateToken(42, "a@b.co", "admin")
	require.NoError(t, err)

	claims, err := issuer.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "a@b.co", claims.Email)
	assert.Equal(t, "admin", claims.Role)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewTokenIssuer("other", time.Hour).ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewTokenIssuer("test-secret", time.Minute)
		expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
		old, err := expired.GenerateToken(1, "x@y.z", "customer")
		require.NoError(t, err)

		_, err = issuer.ValidateToken(old)
		assert.Error(t, err)
	})
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Classic T-Shirt":   "classic-t-shirt",
		"  Men's  Shoes!! ": "men-s-shoes",
		"XL":                "xl",
		"Café Crème 2024":   "café-crème-2024",
		"---":               "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "USD 0.05", FormatMoney(5, "USD"))
	assert.Equal(t, "USD 12.50", FormatMoney(1250, "USD"))
	assert.Equal(t, "USD 1,234.56", FormatMoney(123456, "USD"))
	assert.Equal(t, "EUR -1,000,000.00", FormatMoney(-100000000, "EUR"))
	assert.Equal(t, "999.99", FormatMoney(99999, ""))
}
