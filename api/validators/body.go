package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync/atomic"

	"github.com/go-playground/validator/v10"

	"github.com/angelmondragon/mixtrack-backend/internal/receipts"
	"github.com/angelmondragon/mixtrack-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/mixtrack-backend/pkg/errors"
	"github.com/angelmondragon/mixtrack-backend/pkg/types"
)

var (
	validate = newValidator()
	kinds    atomic.Pointer[enums.ReceiptKindSet]
)

func init() {
	defaults := enums.NewReceiptKindSet(nil)
	kinds.Store(&defaults)
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
		return types.IsISODate(fl.Field().String())
	})
	mustRegister(v, "numericstr", func(fl validator.FieldLevel) bool {
		return receipts.IsPositiveNumeric(fl.Field().String())
	})
	mustRegister(v, "receiptkind", func(fl validator.FieldLevel) bool {
		return kinds.Load().Contains(fl.Field().String())
	})
	mustRegister(v, "mixstatus", func(fl validator.FieldLevel) bool {
		return enums.MixStatus(fl.Field().String()).IsValid()
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// RegisterKinds sets the kinds accepted by the receiptkind tag.
func RegisterKinds(set enums.ReceiptKindSet) {
	kinds.Store(&set)
}

// DecodeJSONBody decodes a single JSON object into dest, rejecting unknown
// fields, and runs the struct's validate tags.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return pkgerrors.New(pkgerrors.CodeValidation, "request body is required")
		}
		details := pkgerrors.FieldErrors{}.Add(decodeField(err), err.Error())
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").WithDetails(details)
	}
	if decoder.More() {
		return pkgerrors.New(pkgerrors.CodeValidation, "request body must contain a single JSON object")
	}
	return ValidateStruct(dest)
}

// ValidateStruct runs the validate tags of value.
func ValidateStruct(value any) error {
	if err := validate.Struct(value); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func decodeField(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field
	}
	const unknownPrefix = "json: unknown field "
	if msg := err.Error(); strings.HasPrefix(msg, unknownPrefix) {
		return strings.Trim(strings.TrimPrefix(msg, unknownPrefix), `"`)
	}
	return "body"
}

func formatValidationErrors(err error) *pkgerrors.Error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		var details pkgerrors.FieldErrors
		for _, fieldErr := range errs {
			details = details.Add(fieldPath(fieldErr), validationMessage(fieldErr))
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

// fieldPath drops the root struct name from the namespace so nested fields
// read as mixes[0].quantity.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, found := strings.Cut(ns, "."); found {
		return rest
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "isodate":
		return "must be a valid date (YYYY-MM-DD)"
	case "numericstr":
		return "must be a number greater than 0"
	case "receiptkind":
		return "must be one of: " + strings.Join(kinds.Load().Strings(), ", ")
	case "mixstatus":
		return "must be one of: pending, delivered"
	}
	return "is invalid"
}
