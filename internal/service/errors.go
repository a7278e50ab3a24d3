package service

import (
	"errors"
	"fmt"
)

var (
	ErrQuestionNotFound    = errors.New("question not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmptyResponse       = errors.New("response payload empty")
	ErrInvalidEmoji        = errors.New("emoji ordinal out of range")
	ErrInvalidQuestionType = errors.New("invalid question type")
	ErrInvalidAction       = errors.New("invalid state action")
	ErrStoreUnavailable    = errors.New("store unavailable")
)

// storeError clasifica fallas del almacén como indisponibilidad transitoria.
// El core no reintenta; la política de reintento es del caller.
func storeError(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
