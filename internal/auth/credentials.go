package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier decides whether email and password belong to the admin
type CredentialVerifier interface {
	Verify(email, password string) bool
}

type staticVerifier struct {
	email    string
	password string
}

// NewStaticVerifier builds CredentialVerifier accepting exactly one plain text pair
func NewStaticVerifier(email, password string) CredentialVerifier {
	return &staticVerifier{email: email, password: password}
}

func (v *staticVerifier) Verify(email, password string) bool {
	emailOk := subtle.ConstantTimeCompare([]byte(email), []byte(v.email)) == 1
	passwordOk := subtle.ConstantTimeCompare([]byte(password), []byte(v.password)) == 1
	return emailOk && passwordOk
}

type bcryptVerifier struct {
	email string
	hash  []byte
}

// NewBcryptVerifier builds CredentialVerifier checking password against bcrypt hash
func NewBcryptVerifier(email, hash string) CredentialVerifier {
	return &bcryptVerifier{email: email, hash: []byte(hash)}
}

func (v *bcryptVerifier) Verify(email, password string) bool {
	emailOk := subtle.ConstantTimeCompare([]byte(email), []byte(v.email)) == 1
	passwordOk := bcrypt.CompareHashAndPassword(v.hash, []byte(password)) == nil
	return emailOk && passwordOk
}

// GeneratePasswordHash creates hash based on provided password
func GeneratePasswordHash(pass string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
