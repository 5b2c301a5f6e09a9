package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJwt(t *testing.T) {
	secret := []byte("test-secret")
	issuer := NewJwtIssuer("leads", secret, 0)
	validator := NewJwtValidator("leads", secret)
	issuedAt := time.Now()

	t.Log("token without ttl has no expiration")
	{
		token, err := issuer.Sign("admin@company.com", issuedAt)
		require.NoError(t, err, "failed to sign token")

		claims, err := validator.Verify(token)
		require.NoError(t, err, "issued token must be valid")
		require.Equal(t, "admin@company.com", claims.Subject)
		require.NotEmpty(t, claims.ID)
		require.Nil(t, claims.ExpiresAt)
	}

	t.Log("every token gets unique id")
	{
		first, err := issuer.Sign("admin@company.com", issuedAt)
		require.NoError(t, err)
		second, err := issuer.Sign("admin@company.com", issuedAt)
		require.NoError(t, err)
		require.NotEqual(t, first, second)
	}

	t.Log("token signed with other secret is rejected")
	{
		token, err := NewJwtIssuer("leads", []byte("other"), 0).Sign("admin@company.com", issuedAt)
		require.NoError(t, err)

		_, err = validator.Verify(token)
		require.Error(t, err)
	}

	t.Log("token of other issuer is rejected")
	{
		token, err := NewJwtIssuer("someone", secret, 0).Sign("admin@company.com", issuedAt)
		require.NoError(t, err)

		_, err = validator.Verify(token)
		require.Error(t, err)
	}

	t.Log("expired token is rejected")
	{
		token, err := NewJwtIssuer("leads", secret, time.Minute).Sign("admin@company.com", issuedAt.Add(-time.Hour))
		require.NoError(t, err)

		_, err = validator.Verify(token)
		require.Error(t, err)
	}

	t.Log("garbage is rejected")
	{
		_, err := validator.Verify("not-a-token")
		require.Error(t, err)
	}
}

func TestStaticVerifier(t *testing.T) {
	v := NewStaticVerifier("admin@company.com", "12345")

	require.True(t, v.Verify("admin@company.com", "12345"))
	require.False(t, v.Verify("admin@company.com", "123456"))
	require.False(t, v.Verify("Admin@company.com", "12345"), "email is compared exactly")
	require.False(t, v.Verify("", ""))
}

func TestBcryptVerifier(t *testing.T) {
	hash, err := GeneratePasswordHash("s3cret")
	require.NoError(t, err, "failed to generate password hash")

	v := NewBcryptVerifier("admin@company.com", hash)

	require.True(t, v.Verify("admin@company.com", "s3cret"))
	require.False(t, v.Verify("admin@company.com", "wrong"))
	require.False(t, v.Verify("other@company.com", "s3cret"))
}
