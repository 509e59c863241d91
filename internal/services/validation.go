package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"dailydiet/internal/models"

	"github.com/go-playground/validator/v10"
)

// ParseTimestamp parses a meal's dateAndHour. Surrounding whitespace is
// rejected; callers trim input before validating it.
func ParseTimestamp(s string) (time.Time, error) {
	return models.ParseDateAndHour(s)
}

// NewValidator returns a validator that reports JSON field names and knows
// the "timestamp" tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("timestamp", func(fl validator.FieldLevel) bool {
		_, err := ParseTimestamp(fl.Field().String())
		return err == nil
	})
	return v
}

// toValidationError converts validator output into a ValidationError.
func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return &ValidationError{Fields: fields}
}
