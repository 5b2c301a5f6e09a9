package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// JwtClaims represents JWT claims
type JwtClaims struct {
	jwt.RegisteredClaims
}

// JwtIssuer issues HMAC signed session tokens
type JwtIssuer struct {
	issuer     string
	method     jwt.SigningMethod
	timeToLive time.Duration
	secret     []byte
}

// NewJwtIssuer builds JwtIssuer, zero ttl issues tokens without expiration
func NewJwtIssuer(issuer string, secret []byte, ttl time.Duration) *JwtIssuer {
	return &JwtIssuer{
		issuer:     issuer,
		method:     jwt.SigningMethodHS256,
		timeToLive: ttl,
		secret:     secret,
	}
}

// Sign issues new token for subj
func (j *JwtIssuer) Sign(subj string, issuedAt time.Time) (string, error) {
	claims := JwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Issuer:   j.issuer,
			Subject:  subj,
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
	}

	if j.timeToLive > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(issuedAt.Add(j.timeToLive))
	}

	return jwt.NewWithClaims(j.method, claims).SignedString(j.secret)
}

// JwtValidator verifies tokens issued by JwtIssuer with the same secret
type JwtValidator struct {
	issuer string
	method jwt.SigningMethod
	secret []byte
}

// NewJwtValidator builds new JwtValidator
func NewJwtValidator(issuer string, secret []byte) *JwtValidator {
	return &JwtValidator{issuer: issuer, method: jwt.SigningMethodHS256, secret: secret}
}

// Verify checks if jwt valid
func (j *JwtValidator) Verify(rawToken string) (JwtClaims, error) {
	var claims JwtClaims
	if _, err := jwt.ParseWithClaims(rawToken, &claims, j.keyFunc); err != nil {
		return JwtClaims{}, err
	}

	if j.issuer != "" && !claims.VerifyIssuer(j.issuer, true) {
		return JwtClaims{}, errors.New("token is issued by unknown party")
	}
	return claims, nil
}

func (j *JwtValidator) keyFunc(token *jwt.Token) (any, error) {
	if token.Method.Alg() != j.method.Alg() {
		return nil, errors.New("failed to verify signing algorithm")
	}
	return j.secret, nil
}
