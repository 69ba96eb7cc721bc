package store

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	apperrors "manufacturing-backend/internal/pkg/errors"
)

// Fields is a decoded JSON object from a create or update request, keyed by
// the external field name. Numbers are expected as json.Number.
type Fields map[string]any

// Has reports whether key was supplied, even with a null value.
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Setter assigns one external field onto an entity.
type Setter[T any] func(entity *T, value any) error

// textField builds a setter for an opaque text column.
func textField[T any](name string, target func(*T) *string) Setter[T] {
	return func(entity *T, value any) error {
		s, ok := asText(value)
		if !ok {
			return apperrors.Validation("Invalid value for field: %s", name)
		}
		*target(entity) = s
		return nil
	}
}

// idField builds a setter for an integer foreign key column.
func idField[T any](name string, target func(*T) *int64) Setter[T] {
	return func(entity *T, value any) error {
		id, ok := AsID(value)
		if !ok {
			return apperrors.Validation("Invalid value for field: %s", name)
		}
		*target(entity) = id
		return nil
	}
}

// asText accepts strings and scalar JSON values; measurement fields are kept as text.
func asText(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// AsID converts a JSON value into an entity id. Integral numbers and numeric
// strings are accepted.
func AsID(value any) (int64, bool) {
	switch v := value.(type) {
	case json.Number:
		if id, err := v.Int64(); err == nil {
			return id, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return floatID(f)
	case float64:
		return floatID(v)
	case int:
		return int64(v), true
	case int64:
		return v, true
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}

// floatID accepts integral floats that fit in an int64. NaN fails the
// integral check and infinities fail the range check.
func floatID(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
