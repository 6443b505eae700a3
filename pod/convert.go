package pod

import (
	"math"

	"github.com/podwire/podcodec/errors"
)

// Typed conversions between codec values and native Go types. Widening
// is implicit; narrowing is validated and fails with overflow.

// IDAs downcasts an Id pod and converts the identifier to a typed
// registry enum.
func IDAs[E ~uint32](v View) (E, error) {
	id, err := v.ID()
	if err != nil {
		return 0, err
	}
	return E(id), nil
}

// IDOf wraps a typed registry enum as an Id value.
func IDOf[E ~uint32](e E) ID {
	return ID(e)
}

// ToInt32 converts a numeric value to int32.
func ToInt32(v Value) (int32, error) {
	switch val := v.(type) {
	case Int:
		return int32(val), nil
	case Long:
		if int64(val) > math.MaxInt32 || int64(val) < math.MinInt32 {
			return 0, errors.Overflow(errors.PhaseConvert, nil, int64(val), "Int")
		}
		return int32(val), nil
	default:
		return 0, errors.TypeMismatch(errors.PhaseConvert, nil, "Int", tagName(v))
	}
}

// ToInt64 converts a numeric value to int64.
func ToInt64(v Value) (int64, error) {
	switch val := v.(type) {
	case Int:
		return int64(val), nil
	case Long:
		return int64(val), nil
	default:
		return 0, errors.TypeMismatch(errors.PhaseConvert, nil, "Long", tagName(v))
	}
}

// ToUint32 converts an identifier or non-negative Int to uint32.
func ToUint32(v Value) (uint32, error) {
	switch val := v.(type) {
	case ID:
		return uint32(val), nil
	case Int:
		if val < 0 {
			return 0, errors.Overflow(errors.PhaseConvert, nil, int32(val), "Id")
		}
		return uint32(val), nil
	default:
		return 0, errors.TypeMismatch(errors.PhaseConvert, nil, "Id", tagName(v))
	}
}

// ToFloat64 converts any numeric value to float64.
func ToFloat64(v Value) (float64, error) {
	switch val := v.(type) {
	case Float:
		return float64(val), nil
	case Double:
		return float64(val), nil
	case Int:
		return float64(val), nil
	case Long:
		return float64(val), nil
	default:
		return 0, errors.TypeMismatch(errors.PhaseConvert, nil, "Double", tagName(v))
	}
}

// ToBool converts a Bool value to bool.
func ToBool(v Value) (bool, error) {
	if val, ok := v.(Bool); ok {
		return bool(val), nil
	}
	return false, errors.TypeMismatch(errors.PhaseConvert, nil, "Bool", tagName(v))
}

// ToString converts a String value to string.
func ToString(v Value) (string, error) {
	if val, ok := v.(String); ok {
		return string(val), nil
	}
	return "", errors.TypeMismatch(errors.PhaseConvert, nil, "String", tagName(v))
}

func tagName(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.Tag().String()
}
