package repository

import "errors"

var (
	ErrNotFound      = errors.New("гиг не найден")
	ErrAlreadyExists = errors.New("гиг с таким id уже существует")
)
