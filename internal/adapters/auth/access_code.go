package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"eventdesk/internal/domain"
)

type bcryptAccessCodeHasher struct {
	cost int
}

// NewBcryptAccessCodeHasher returns an AccessCodeHasher backed by bcrypt.
func NewBcryptAccessCodeHasher(cost int) domain.AccessCodeHasher {
	return &bcryptAccessCodeHasher{cost: cost}
}

func (h *bcryptAccessCodeHasher) Hash(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash access code: %w", err)
	}
	return string(hash), nil
}

func (h *bcryptAccessCodeHasher) Compare(hash, code string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code))
}
