// Package errors tags errors with a short, stable name for structured logs.
package errors

import (
	goerrors "errors"
	"reflect"
	"strings"

	apperrors "github.com/target/mmk-rag-console/internal/errors"
)

// Classify returns a normalized error type name suitable for log attributes.
// Console errors report their AppError code; anything else is named after its
// innermost concrete type in snake_case-ish form (e.g. "net_operror").
func Classify(err error) string {
	if err == nil {
		return ""
	}

	var appErr *apperrors.AppError
	if goerrors.As(err, &appErr) && appErr.Code != "" {
		if appErr.Code == apperrors.ErrCodeTransport && appErr.Cause != nil {
			return string(appErr.Code) + ":" + innermostType(appErr.Cause)
		}
		return string(appErr.Code)
	}

	return innermostType(err)
}

func innermostType(err error) string {
	for {
		unwrapped := goerrors.Unwrap(err)
		if unwrapped == nil {
			break
		}
		err = unwrapped
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}

	name := strings.ToLower(strings.ReplaceAll(t.String(), "*", ""))
	name = strings.ReplaceAll(name, ".", "_")
	if name == "" {
		return "unknown"
	}
	return name
}
