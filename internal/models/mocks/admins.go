package mocks

import "github.com/mabego/admingate/internal/models"

const ValidPassword = "pa$$word"

type AdminModel struct{}

func (m *AdminModel) Authenticate(password string) error {
	if password == ValidPassword {
		return nil
	}
	return models.ErrInvalidCredentials
}
