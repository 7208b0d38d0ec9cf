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

	"afristay/shared/constant"
	"afristay/shared/failure"

	val "github.com/go-playground/validator/v10"
)

const (
	tagMimetypes   = "mimetypes"
	tagMaxFileSize = "maxfilesize"
	bytesPerMB     = 1024 * 1024
)

var validate *val.Validate

// fileHeader unwraps the upload behind a field; the validator hands over dereferenced pointers.
func fileHeader(field reflect.Value) (multipart.FileHeader, bool) {
	switch file := field.Interface().(type) {
	case multipart.FileHeader:
		return file, true
	case *multipart.FileHeader:
		if file == nil {
			return multipart.FileHeader{}, false
		}

		return *file, true
	default:
		return multipart.FileHeader{}, false
	}
}

// mimetypes=image/png image/jpeg checks the part's declared Content-Type.
func validateMimetypes(field val.FieldLevel) bool {
	file, ok := fileHeader(field.Field())
	if !ok {
		return false
	}

	contentType := file.Header.Get(constant.RequestHeaderContentType)

	return slices.Contains(strings.Fields(field.Param()), contentType)
}

// maxfilesize=5 caps the upload in megabytes.
func validateMaxFileSize(field val.FieldLevel) bool {
	file, ok := fileHeader(field.Field())
	if !ok {
		return false
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return float64(file.Size) <= maxSizeMB*bytesPerMB
}

// jsonName reports fields by their wire name so messages match what the client sent.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return field.Name
	case "":
		return field.Name
	default:
		return name
	}
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonName)

	if err := validate.RegisterValidation(tagMimetypes, validateMimetypes); err != nil {
		panic(err)
	}

	if err := validate.RegisterValidation(tagMaxFileSize, validateMaxFileSize); err != nil {
		panic(err)
	}
}

// Validate decodes a JSON body into data and validates it.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
