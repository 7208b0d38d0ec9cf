package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":     "{field} is required",
	"gt":           "{field} must be greater than {param}",
	"gte":          "{field} must be greater than or equal to {param}",
	"lte":          "{field} must be less than or equal to {param}",
	"oneof":        "{field} must be one of {param}",
	"max":          "{field} must be at most {param}",
	"min":          "{field} must be at least {param}",
	"len":          "{field} must have length {param}",
	"email":        "{field} must be a valid email address",
	"uuid":         "{field} must be a valid UUID",
	"e164":         "{field} must be a phone number in international format",
	"alpha":        "{field} must contain letters only",
	"datetime":     "{field} must match the format {param}",
	"nefield":      "{field} must differ from {param}",
	tagMimetypes:   "{field} must be one of {param}",
	tagMaxFileSize: "{field} must not exceed {param} MB",
}

// message renders the first failed rule in plain words.
func message(err error) string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, valErr := range valErrors {
		template, ok := messages[valErr.Tag()]
		if !ok {
			continue
		}

		return strings.NewReplacer("{field}", valErr.Field(), "{param}", valErr.Param()).Replace(template)
	}

	return valErrors.Error()
}
