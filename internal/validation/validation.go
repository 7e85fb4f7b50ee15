// Package validation holds the field rules for customer and borewell
// payloads. Everything here is pure: no I/O, no clocks.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Decimal-degree coordinate patterns. The longitude pattern is asymmetric
// (it accepts "-180.0" but not "180.5") and is kept that way for
// compatibility with records already stored.
var (
	latitudePattern  = regexp.MustCompile(`^-?([1-8]?[0-9]\.{1}\d{1,6}$|90\.{1}0{1,6}$)`)
	longitudePattern = regexp.MustCompile(`^-?([1]?[0-7][0-9]\.{1}\d{1,6}$|180\.{1}0{1,6}$|[1-9]?[0-9]\.{1}\d{1,6}$)`)
	phonePattern     = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// FieldError is a single rejected field, named by its JSON key.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError aggregates every rejected field of one payload.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	reasons := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		reasons = append(reasons, f.Reason)
	}
	return strings.Join(reasons, ", ")
}

// FieldsOf returns the field errors carried anywhere in err's chain.
func FieldsOf(err error) []FieldError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

// New returns a validator with the coordinate and phone rules registered
// and field names reported by their JSON keys.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	must(v.RegisterValidation("latitude_dd", matches(latitudePattern)))
	must(v.RegisterValidation("longitude_dd", matches(longitudePattern)))
	must(v.RegisterValidation("phone", matches(phonePattern)))
	return v
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

var std = New()

// messages maps "<json field>.<tag>" to the reason shown to clients.
var messages = map[string]string{
	"latitude.latitude_dd":   "Please provide a valid latitude",
	"longitude.longitude_dd": "Please provide a valid longitude",
	"wellType.oneof":         "Well type must be one of dug-well, drilled-well, other",
	"depthType.max":          "Depth type cannot exceed 100 characters",
	"wallType.max":           "Wall type cannot exceed 100 characters",
	"supplySystem.max":       "Supply system cannot exceed 100 characters",
	"exactDepth.gte":         "Depth cannot be negative",
	"description.max":        "Description cannot exceed 500 characters",

	"name.required":        "Please provide your name",
	"name.max":             "Name cannot exceed 100 characters",
	"email.required":       "Please provide your email",
	"email.email":          "Please provide a valid email",
	"phoneNumber.required": "Please provide your phone number",
	"phoneNumber.phone":    "Please provide a valid phone number",
	"address.required":     "Please provide your address",
	"address.max":          "Address cannot exceed 200 characters",
	"password.required":    "Please provide a password",
	"password.min":         "Password must be at least 6 characters long",
}

// check runs struct validation and converts the result into a ValidationError.
func check(s any) error {
	err := std.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		reason, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			reason = fmt.Sprintf("%s is invalid", fe.Field())
		}
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Reason: reason})
	}
	return out
}
