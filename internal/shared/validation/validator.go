// Package validation configures the request validator used by gin binding and
// turns its failures into client-facing messages.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Apurer/pet-adoption-api/internal/shared/ids"
)

// TagResourceID validates a 32-character hex identifier.
const TagResourceID = "resourceid"

var initOnce sync.Once

// Init configures the global validator used by gin's binding.
// Field errors are reported with their JSON names.
func Init() {
	initOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			Configure(v)
		}
	})
}

// Configure applies the project's tag name function and custom tags to v.
func Configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		}
		return name
	})
	_ = v.RegisterValidation(TagResourceID, func(fl validator.FieldLevel) bool {
		return ids.Valid(fl.Field().String())
	})
}

// Message converts a binding or validation error into a single sentence
// describing the first offending field.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, io.EOF) {
		return "request body is required"
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		return fmt.Sprintf("%s must be %s", fieldName(ute.Field), typeDescription(ute.Type))
	}
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return "request body must be valid JSON"
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fe.Field() + " " + formatFieldError(fe)
	}
	return "invalid request payload"
}

func fieldName(path string) string {
	if path == "" {
		return "value"
	}
	return path
}

func typeDescription(t reflect.Type) string {
	if t == nil {
		return "of a different type"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch {
	case isIntegerKind(t.Kind()):
		return "an integer"
	case t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64:
		return "a number"
	case t.Kind() == reflect.String:
		return "a string"
	case t.Kind() == reflect.Bool:
		return "a boolean"
	default:
		return "of a different type"
	}
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "uri", "url":
		return "must be a valid uri"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case TagResourceID:
		return "must be a valid identifier"
	case "hexadecimal":
		return "must be hexadecimal"
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", param)
	case "min":
		if isNumberKind(fe.Kind()) {
			return "must be greater than or equal to " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "must be less than or equal to " + param
		}
		return "must be at most " + param + " characters long"
	case "gte":
		return "must be greater than or equal to " + param
	case "gt":
		return "must be greater than " + param
	case "hostname_port":
		return "must be a valid host:port address"
	default:
		if param != "" {
			return fmt.Sprintf("failed the '%s=%s' check", fe.Tag(), param)
		}
		return fmt.Sprintf("failed the '%s' check", fe.Tag())
	}
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

func isNumberKind(k reflect.Kind) bool {
	return isIntegerKind(k) || k == reflect.Float32 || k == reflect.Float64
}
