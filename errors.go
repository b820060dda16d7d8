package ethqr

import "fmt"

var (
	ErrInvalidFormat     = fmt.Errorf("invalid QR format")
	ErrInvalidCRC        = fmt.Errorf("CRC validation failed")
	ErrMissingField      = fmt.Errorf("missing required field")
	ErrInvalidValue      = fmt.Errorf("invalid field value")
	ErrValueTooLong      = fmt.Errorf("field value too long")
	ErrUnsupportedScheme = fmt.Errorf("unsupported scheme")
	ErrPayloadTooLong    = fmt.Errorf("QR payload too long")

	ErrValidation = fmt.Errorf("validation error")
	ErrBuilder    = fmt.Errorf("builder error")
)

// FieldError reports a single field that failed validation. Err is one of
// ErrMissingField, ErrInvalidValue or ErrValueTooLong.
type FieldError struct {
	Field     string
	Value     string
	Length    int
	MaxLength int
	Err       error
}

func (fe *FieldError) Error() string {
	switch fe.Err {
	case ErrValueTooLong:
		return fmt.Sprintf("%v for %s: %d > %d", fe.Err, fe.Field, fe.Length, fe.MaxLength)
	case ErrInvalidValue:
		return fmt.Sprintf("%v for %s: %q", fe.Err, fe.Field, fe.Value)
	default:
		return fmt.Sprintf("%v: %s", fe.Err, fe.Field)
	}
}

func (fe *FieldError) Unwrap() error {
	return fe.Err
}

// PayloadTooLongError is returned when the assembled payload, CRC included,
// exceeds Max bytes.
type PayloadTooLongError struct {
	Length int
	Max    int
}

func (pe *PayloadTooLongError) Error() string {
	return fmt.Sprintf("%v: %d > %d", ErrPayloadTooLong, pe.Length, pe.Max)
}

func (pe *PayloadTooLongError) Unwrap() error {
	return ErrPayloadTooLong
}

// SchemeError identifies which configured scheme failed to encode.
type SchemeError struct {
	Index int
	Err   error
}

func (se *SchemeError) Error() string {
	return fmt.Sprintf("scheme %d: %v", se.Index, se.Err)
}

func (se *SchemeError) Unwrap() error {
	return se.Err
}

func tooLong(field string, length, max int) error {
	return &FieldError{Field: field, Length: length, MaxLength: max, Err: ErrValueTooLong}
}

func invalid(field, value string) error {
	return &FieldError{Field: field, Value: value, Err: ErrInvalidValue}
}

func missing(field string) error {
	return &FieldError{Field: field, Err: ErrMissingField}
}
