package models

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type AdminModelInterface interface {
	Authenticate(password string) error
}

// AdminModel checks the single admin password against a bcrypt hash.
type AdminModel struct {
	PasswordHash []byte
}

func (m *AdminModel) Authenticate(password string) error {
	// With no hash configured, every attempt is rejected.
	if len(m.PasswordHash) == 0 {
		return ErrInvalidCredentials
	}

	err := bcrypt.CompareHashAndPassword(m.PasswordHash, []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("password hash comparison: %w", err)
	}

	return nil
}
