package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/lynxview-api/internal/metrics"
	"github.com/yukikurage/lynxview-api/internal/repository"
	"github.com/yukikurage/lynxview-api/internal/utils"
	"gorm.io/gorm"
)

// lookupError maps a repository miss to notFound and wraps any other failure
func lookupError(err error, notFound error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("failed to find %s: %w", what, err)
}

type existsFunc func(ctx context.Context, id uint64) (bool, error)

// ensureExists returns notFound unless a row with id exists
func ensureExists(ctx context.Context, exists existsFunc, id uint64, notFound error, what string) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", what, err)
	}
	if !ok {
		return notFound
	}
	return nil
}

// deleted turns the repository result into the service contract
func deleted(ok bool, err error, notFound error, what string) error {
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", what, err)
	}
	if !ok {
		return notFound
	}
	return nil
}

// observe records the outcome of a write and passes err through
func observe(entity, operation string, err error) error {
	result := metrics.ResultSuccess
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		result = metrics.ResultNotFound
	case errors.Is(err, ErrValidation):
		result = metrics.ResultInvalid
	default:
		result = metrics.ResultError
	}
	metrics.ObserveWrite(entity, operation, result)
	return err
}

// putOptional copies a supplied field into patch, writing NULL for null
func putOptional[T any](patch repository.Patch, column string, o utils.Optional[T]) {
	if !o.Set {
		return
	}
	if o.Value == nil {
		patch[column] = nil
		return
	}
	patch[column] = *o.Value
}

// notNull rejects an explicit null for a required field
func notNull[T any](o utils.Optional[T], field string) error {
	if o.IsNull() {
		return validationErrorf("%s cannot be null", field)
	}
	return nil
}

// effective returns the supplied value, or current when the field is omitted
func effective[T any](o utils.Optional[T], current *T) *T {
	if o.Set {
		return o.Value
	}
	return current
}

func checkLength(field, value string, min, max int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n < min || n > max {
		if min == 0 {
			return validationErrorf("%s must be at most %d characters", field, max)
		}
		return validationErrorf("%s must be between %d and %d characters", field, min, max)
	}
	return nil
}

func checkOptionalLength(field string, value *string, max int) error {
	if value == nil {
		return nil
	}
	return checkLength(field, *value, 0, max)
}

func checkNonNegative(field string, value *float64) error {
	if value != nil && *value < 0 {
		return validationErrorf("%s must be greater than or equal to 0", field)
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
