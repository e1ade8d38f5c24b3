package solar

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, compared with errors.Is.
var (
	// ErrInvalidInput indicates non-numeric or out-of-range text or values
	// entered in place of a numeric field.
	ErrInvalidInput = constError("invalid input")

	// ErrDivisionGuard indicates a derived divisor (energy per panel, carbon
	// offset per panel, grid emission factor) would be zero.
	ErrDivisionGuard = constError("division guard")

	// ErrInvalidUnit indicates an unrecognized energy or emissions unit.
	ErrInvalidUnit = constError("invalid unit")

	// ErrUnknownPreset indicates an unrecognized grid emission factor preset.
	ErrUnknownPreset = constError("unknown grid factor preset")
)

// InputError names the field whose value was rejected.
type InputError struct {
	Field string
	Value float64
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s = %g", e.Err, e.Field, e.Value)
}

func (e *InputError) Unwrap() error { return e.Err }

// ParseError reports text that could not be read as a number.
type ParseError struct {
	Field string
	Text  string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %q is not a number", ErrInvalidInput, e.Text)
	}
	return fmt.Sprintf("%s: %s %q is not a number", ErrInvalidInput, e.Field, e.Text)
}

// Unwrap exposes both ErrInvalidInput and the underlying strconv error.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidInput}
	}
	return []error{ErrInvalidInput, e.Err}
}

func invalid(field string, value float64) error {
	return &InputError{Field: field, Value: value, Err: ErrInvalidInput}
}

func guard(field string, value float64) error {
	return &InputError{Field: field, Value: value, Err: ErrDivisionGuard}
}
