package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

// Templates use {field} for the JSON name of the offending field and {param}
// for the tag argument.
var messages = map[string]string{
	"required":    "{field} is required",
	"min":         "{field} must be at least {param}",
	"max":         "{field} must be at most {param}",
	"gte":         "{field} must be at least {param}",
	"lte":         "{field} must be at most {param}",
	"len":         "{field} must be exactly {param} characters long",
	"oneof":       "{field} must be one of {param}",
	"numeric":     "{field} must contain digits only",
	"nefield":     "{field} must differ from {param}",
	"clock":       "{field} must be a time in HH:MM format",
	"calendar":    "{field} must be a date in YYYY-MM-DD format",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not exceed {param} MB",
}

// message renders the first failure that has a template. Failures without one
// fall back to the validator's own text.
func message(err error) string {
	var failures val.ValidationErrors
	if !errors.As(err, &failures) {
		return err.Error()
	}

	for _, fe := range failures {
		template, ok := messages[fe.Tag()]
		if !ok {
			continue
		}

		return strings.NewReplacer("{field}", fe.Field(), "{param}", fe.Param()).Replace(template)
	}

	return failures.Error()
}
