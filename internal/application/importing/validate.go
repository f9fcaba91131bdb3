package importing

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// NonNegative rejects a negative amount.
func NonNegative[T any](label string, value func(T) float64) Rule[T] {
	return func(row T) []string {
		if value(row) < 0 {
			return []string{fmt.Sprintf("%s must not be negative", label)}
		}
		return nil
	}
}

// OptionalDate rejects a non-empty value that is not a YYYY-MM-DD date.
func OptionalDate[T any](label string, value func(T) string) Rule[T] {
	return func(row T) []string {
		v := value(row)
		if v == "" || IsDate(v) {
			return nil
		}
		return []string{fmt.Sprintf("%s '%s' is not a valid date", label, v)}
	}
}

// DateOrder rejects an end date before the start date when both are valid.
func DateOrder[T any](startLabel, endLabel string, start, end func(T) string) Rule[T] {
	return func(row T) []string {
		from, err := ParseDate(start(row))
		if err != nil {
			return nil
		}
		to, err := ParseDate(end(row))
		if err != nil {
			return nil
		}
		if to.Before(from) {
			return []string{fmt.Sprintf("%s must not be before %s", endLabel, strings.ToLower(startLabel))}
		}
		return nil
	}
}

// OptionalEmail rejects a non-empty value that is not an email address.
func OptionalEmail[T any](label string, value func(T) string) Rule[T] {
	return func(row T) []string {
		v := value(row)
		if v == "" {
			return nil
		}
		if err := validate.Var(v, "email"); err != nil {
			return []string{fmt.Sprintf("%s '%s' is not a valid email", label, v)}
		}
		return nil
	}
}
