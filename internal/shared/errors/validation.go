package errors

import (
	"fmt"
	"sort"
	"strings"
)

// Тексты ошибок валидации полей. Клиенты показывают их пользователю как есть.
const (
	MsgRequired        = "This field is required."
	MsgBlank           = "This field may not be blank."
	MsgInvalidEmail    = "Enter a valid email address."
	MsgInvalidInteger  = "A valid integer is required."
	MsgInvalidString   = "Not a valid string."
	MsgInvalidBoolean  = "Must be a valid boolean."
	MsgEmailTaken      = "user with this email already exists."
	MsgMaxDigits       = "Ensure that there are no more than 5 digits in total."
	MsgMaxDecimals     = "Ensure that there are no more than 2 decimal places."
	MsgMaxWhole        = "Ensure that there are no more than 3 digits before the decimal point."
	MsgPasswordsDiffer = "The two password fields didn't match."
)

// MsgMaxLength — сообщение о превышении длины строки.
func MsgMaxLength(n int) string {
	return fmt.Sprintf("Ensure this field has no more than %d characters.", n)
}

// MsgMaxValue — число больше допустимого.
func MsgMaxValue(n int64) string {
	return fmt.Sprintf("Ensure this value is less than or equal to %d.", n)
}

// MsgMinValue — число меньше допустимого.
func MsgMinValue(n int64) string {
	return fmt.Sprintf("Ensure this value is greater than or equal to %d.", n)
}

// MsgMinLength — сообщение о слишком короткой строке.
func MsgMinLength(n int) string {
	return fmt.Sprintf("Ensure this field has at least %d characters.", n)
}

// ValidationError описывает ошибки валидации по полям.
//
// errors.Is(err, ErrInvalidInput) возвращает true для любой ValidationError,
// поэтому хендлеры обрабатывают её в той же ветке, что и ErrInvalidInput.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError создаёт пустой набор ошибок.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// FieldError — короткий способ вернуть ошибку по одному полю.
func FieldError(field, msg string) *ValidationError {
	v := NewValidationError()
	v.Add(field, msg)
	return v
}

// Add добавляет сообщение для поля.
func (v *ValidationError) Add(field, msg string) {
	v.Fields[field] = append(v.Fields[field], msg)
}

// Has сообщает, есть ли ошибки по полю.
func (v *ValidationError) Has(field string) bool {
	return len(v.Fields[field]) > 0
}

// Empty сообщает, что ошибок нет.
func (v *ValidationError) Empty() bool {
	return len(v.Fields) == 0
}

// OrNil возвращает nil, если ошибок нет. Удобно в конце валидации:
//
//	return verr.OrNil()
func (v *ValidationError) OrNil() error {
	if v == nil || v.Empty() {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(v.Fields[k], " "))
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

// Is позволяет матчить ValidationError как ErrInvalidInput.
func (v *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
