package service

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	serr "github.com/aaronsummercloud/recipe-api-project/internal/shared/errors"
)

const (
	maxCharLen = 255

	priceMaxDigits   = 5
	priceMaxDecimals = 2
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// requiredString проверяет обязательную строку: nil — required, пусто — blank.
// Возвращает обрезанное значение.
func requiredString(v *serr.ValidationError, field string, s *string, maxLen int) string {
	if s == nil {
		v.Add(field, serr.MsgRequired)
		return ""
	}
	val := strings.TrimSpace(*s)
	if val == "" {
		v.Add(field, serr.MsgBlank)
		return ""
	}
	if maxLen > 0 && utf8.RuneCountInString(val) > maxLen {
		v.Add(field, serr.MsgMaxLength(maxLen))
	}
	return val
}

// optionalString проверяет необязательную строку, пустая допустима.
func optionalString(v *serr.ValidationError, field string, s string, maxLen int) string {
	val := strings.TrimSpace(s)
	if maxLen > 0 && utf8.RuneCountInString(val) > maxLen {
		v.Add(field, serr.MsgMaxLength(maxLen))
	}
	return val
}

// validateInt32 проверяет, что число помещается в колонку INTEGER.
func validateInt32(v *serr.ValidationError, field string, n int) {
	switch {
	case int64(n) > math.MaxInt32:
		v.Add(field, serr.MsgMaxValue(math.MaxInt32))
	case int64(n) < math.MinInt32:
		v.Add(field, serr.MsgMinValue(math.MinInt32))
	}
}

func validateEmail(v *serr.ValidationError, email string) {
	if v.Has("email") {
		return
	}
	if !emailRe.MatchString(email) {
		v.Add("email", serr.MsgInvalidEmail)
	}
}

func validatePassword(v *serr.ValidationError, field, password string, minLen int) {
	if v.Has(field) {
		return
	}
	if utf8.RuneCountInString(password) < minLen {
		v.Add(field, serr.MsgMinLength(minLen))
	}
}

// validatePrice проверяет точность цены: не больше 5 цифр, из них не больше 2 после запятой.
func validatePrice(v *serr.ValidationError, field string, d decimal.Decimal) {
	digits := int(d.NumDigits())
	exp := int(d.Exponent())

	var total, decimals, whole int
	switch {
	case exp >= 0:
		total = digits + exp
		decimals = 0
		whole = total
	case digits > -exp:
		total = digits
		decimals = -exp
		whole = total - decimals
	default:
		total = -exp
		decimals = total
		whole = 0
	}

	switch {
	case total > priceMaxDigits:
		v.Add(field, serr.MsgMaxDigits)
	case decimals > priceMaxDecimals:
		v.Add(field, serr.MsgMaxDecimals)
	case whole > priceMaxDigits-priceMaxDecimals:
		v.Add(field, serr.MsgMaxWhole)
	}
}
