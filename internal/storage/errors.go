// Package storage содержит ошибки, общие для всех реализаций хранилищ.
package storage

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
