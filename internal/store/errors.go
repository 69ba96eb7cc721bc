package store

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	apperrors "manufacturing-backend/internal/pkg/errors"
)

// translate maps a driver or gorm error onto the application error kinds.
// Errors that are already AppErrors pass through unchanged.
func (r *repo[T]) translate(err error, op string) error {
	if _, ok := apperrors.IsAppError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound("%s not found", r.res.Singular)
	case isDuplicate(err):
		return apperrors.Wrap(err, apperrors.KindValidation,
			fmt.Sprintf("%s with this name already exists", r.res.Singular), http.StatusBadRequest)
	case isForeignKey(err):
		return apperrors.Wrap(err, apperrors.KindReference,
			fmt.Sprintf("%s references a missing contact, wire or process", r.res.Singular), http.StatusBadRequest)
	default:
		return apperrors.Store(err, fmt.Sprintf("failed to %s %s", op, r.res.Plural))
	}
}

// Drivers without gorm's error translator are matched by message.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "Duplicate entry")
}

func isForeignKey(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "violates foreign key constraint") ||
		strings.Contains(msg, "a foreign key constraint fails")
}
