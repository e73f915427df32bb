package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/ignatzorin/moderation-backend/internal/pkg/apperror"
)

// MaxReasonLength - ограничение на причину жалобы или санкции.
const MaxReasonLength = 1000

// ValidateLength проверяет длину строки в рунах. Нулевая граница не проверяется.
func ValidateLength(value string, min, max int) bool {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return false
	}
	if max > 0 && length > max {
		return false
	}
	return true
}

// Reason нормализует причину: обрезает пробелы, требует непустую строку не длиннее MaxReasonLength.
func Reason(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperror.ErrEmptyReason
	}
	if !ValidateLength(value, 1, MaxReasonLength) {
		return "", apperror.ErrReasonTooLong
	}
	return value, nil
}
