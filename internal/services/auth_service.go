package services

import (
	"golang.org/x/crypto/bcrypt"
)

// SecretHasher is the hashing capability injected into the OTP store: the
// one-time code is kept at rest only as a digest, comparison is constant-time.
type SecretHasher interface {
	HashSecret(plain string) (string, error)
	CompareSecret(plain, digest string) bool
}

type AuthService interface {
	SecretHasher
	HashPassword(password string) (string, error)
	CheckPassword(password, hash string) error
}

type authService struct{}

func NewAuthService() AuthService { return &authService{} }

func (s *authService) HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *authService) CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *authService) HashSecret(plain string) (string, error) {
	return s.HashPassword(plain)
}

func (s *authService) CompareSecret(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
