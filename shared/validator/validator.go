package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"campusroom/internal/domains/availability/interval"
	"campusroom/shared/constant"
	"campusroom/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

const bytesPerMB = 1024 * 1024

func registerMimetypeValidation(field val.FieldLevel) bool {
	file, ok := field.Field().Interface().(multipart.FileHeader)
	if !ok {
		return false
	}

	contentType := file.Header.Get(constant.RequestHeaderContentType)

	return slices.Contains(strings.Split(field.Param(), " "), contentType)
}

func registerFileSizeValidation(field val.FieldLevel) bool {
	file, ok := field.Field().Interface().(multipart.FileHeader)
	if !ok {
		return false
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return float64(file.Size) <= maxSizeMB*bytesPerMB
}

func registerClockValidation(field val.FieldLevel) bool {
	text, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := interval.ToMinutes(text)

	return err == nil
}

func registerCalendarValidation(field val.FieldLevel) bool {
	text, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse(constant.CalendarFormat, text)

	return err == nil
}

// jsonName reports fields by their JSON key so messages match the request
// body. Fields without a json tag keep the Go name.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return constant.Empty
	case constant.Empty:
		return field.Name
	default:
		return name
	}
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonName)

	validations := map[string]val.Func{
		"empty": func(fl val.FieldLevel) bool {
			return fl.Field().IsZero()
		},
		"clock":       registerClockValidation,
		"calendar":    registerCalendarValidation,
		"mimetypes":   registerMimetypeValidation,
		"maxfilesize": registerFileSizeValidation,
	}

	for tag, fn := range validations {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate decodes a JSON body into data and validates it. Unknown fields
// are ignored.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
