package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Sentinels returned (wrapped) by every service. Handlers match them with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrConflict            = errors.New("conflict")
	ErrTransientDependency = errors.New("transient dependency failure")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

// notFoundOr maps gorm's not-found error onto ErrNotFound and passes
// anything else through untouched.
func notFoundOr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}

// conflictOr maps a unique-index violation onto ErrConflict.
func conflictOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", msg, ErrConflict)
	}
	return err
}

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}
