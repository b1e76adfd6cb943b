package domain

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrBirthDataMissing       = errors.New("birth data missing")
	ErrInterpretationNotFound = errors.New("interpretation not found")
	ErrHoroscopeNotFound      = errors.New("daily horoscope not found")
	ErrInvalidBirthForm       = errors.New("invalid birth form")
)

// ValidationError carries a user-facing Turkish explanation of bad input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidBirthForm
}
