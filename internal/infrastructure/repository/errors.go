package repository

import (
	"errors"

	"github.com/sangkips/invoice-ticket-api/pkg/apperror"
	"gorm.io/gorm"
)

// translate turns driver-independent gorm errors into application errors
func translate(err error, conflictMessage string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.NewConflictError(conflictMessage)
	}
	return err
}
