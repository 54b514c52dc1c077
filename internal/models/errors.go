package models

import "errors"

var ErrInvalidCredentials = errors.New("models: invalid credentials")
