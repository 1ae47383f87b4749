package validator

import (
	"context"
	"errors"
	"reflect"
	"regexp"
	"strings"

	apperrors "github.com/7Pranavv/Evenoo/pkg/app_errors"

	"github.com/go-playground/validator/v10"
)

var (
	global        *validator.Validate
	ticketIDRegex = regexp.MustCompile(`^EVN-TKT-[A-Z0-9]{6}$`)
)

const (
	ErrInvalidFormat      = "invalid format"
	ErrFieldRequired      = "field is required"
	ErrFieldExceedsMaxLen = "field exceeds maximum length"
	ErrFieldBelowMinLen   = "field is below minimum length"
	ErrFieldExceedsMaxVal = "field exceeds maximum value"
	ErrFieldBelowMinVal   = "field is below minimum value"
	ErrUnknownValidation  = "invalid value"
)

func init() {
	SetValidator(New())
}

func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("ticketid", validateTicketID)
	return v
}

func SetValidator(v *validator.Validate) {
	global = v
}

func Validator() *validator.Validate {
	return global
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func validateTicketID(fl validator.FieldLevel) bool {
	return ticketIDRegex.MatchString(fl.Field().String())
}

// IsTicketID reports whether id is a canonical ticket id.
func IsTicketID(id string) bool {
	return ticketIDRegex.MatchString(id)
}

// Validate checks struct tags and returns the first failure as a ValidationError.
func Validate(ctx context.Context, structure any) error {
	return parseValidationErrors(Validator().StructCtx(ctx, structure))
}

func parseValidationErrors(err error) error {
	if err == nil {
		return nil
	}
	var vErrors validator.ValidationErrors
	if !errors.As(err, &vErrors) || len(vErrors) == 0 {
		return apperrors.NewValidationError("", err.Error())
	}
	ve := vErrors[0]
	var msg string
	switch ve.Tag() {
	case "required":
		msg = ErrFieldRequired
	case "max":
		msg = ErrFieldExceedsMaxLen
	case "min":
		msg = ErrFieldBelowMinLen
	case "lt", "lte":
		msg = ErrFieldExceedsMaxVal
	case "gt", "gte":
		msg = ErrFieldBelowMinVal
	case "oneof", "email", "url", "uuid", "ticketid":
		msg = ErrInvalidFormat
	default:
		msg = ErrUnknownValidation
	}
	return apperrors.NewValidationError(ve.Field(), msg)
}
