package form

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bancoplus/catalog/internal/products"
)

// Cross-field violation messages.
const (
	MsgReleaseBeforeToday = "Release date must be today or later."
	MsgRevisionNotPlusOne = "Revision date must be exactly one year after release date."
)

var strictDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// FieldError is a single field-level validation violation.
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors is an ordered list of violations; a field may appear more
// than once.
type FieldErrors []FieldError

// For returns all messages recorded for the given field.
func (fe FieldErrors) For(field string) []string {
	var msgs []string
	for _, e := range fe {
		if e.Field == field {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// fieldMessages translates (field, failed rule) pairs into the user-facing
// texts the UI renders.
var fieldMessages = map[string]map[string]string{
	FieldID: {
		"required": "ID is required",
		"min":      "ID must be at least 3 characters",
		"max":      "ID must be at most 10 characters",
	},
	FieldName: {
		"required": "Name is required",
		"min":      "Name must be at least 6 characters",
		"max":      "Name must be at most 100 characters",
	},
	FieldDescription: {
		"required": "Description is required",
		"min":      "Description must be at least 10 characters",
		"max":      "Description must be at most 200 characters",
	},
	FieldLogo: {
		"required": "Logo is required",
		"url":      "Logo must be a valid URL",
	},
	FieldDateRelease: {
		"required":   "Release date is required",
		"strictdate": "Release date must be YYYY-MM-DD",
	},
	FieldDateRevision: {
		"required":   "Revision date is required",
		"strictdate": "Revision date must be YYYY-MM-DD",
	},
}

// Schema validates form values: per-field rules plus the cross-field date
// refinement. The date-relationship checks run only when both dates pass
// the strict format check, so format errors are never stacked with
// relationship errors.
type Schema struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewSchema builds the validation schema.
func NewSchema() *Schema {
	v := validator.New()

	// Report violations under the UI field names rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// The built-in datetime rule tolerates unpadded components, so strict
	// YYYY-MM-DD needs its own rule.
	_ = v.RegisterValidation("strictdate", func(fl validator.FieldLevel) bool {
		_, err := parseStrictDate(fl.Field().String())
		return err == nil
	})

	return &Schema{validate: v, now: time.Now}
}

// Validate trims and checks the given values. On success it returns the
// trimmed value set ready for submission; on failure it returns the
// violations in field order.
func (s *Schema) Validate(v Values) (Values, FieldErrors) {
	norm := v.normalized()

	var fieldErrs FieldErrors
	if err := s.validate.Struct(norm); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fieldErrs = append(fieldErrs, FieldError{
					Field:   fe.Field(),
					Message: messageFor(fe.Field(), fe.Tag()),
				})
			}
		} else {
			fieldErrs = append(fieldErrs, FieldError{Message: err.Error()})
		}
	}

	release, relErr := parseStrictDate(norm.DateRelease)
	revision, revErr := parseStrictDate(norm.DateRevision)
	if relErr == nil && revErr == nil {
		today := startOfDay(s.now())
		if release.Before(today) {
			fieldErrs = append(fieldErrs, FieldError{Field: FieldDateRelease, Message: MsgReleaseBeforeToday})
		}
		if !revision.Equal(addOneYear(release)) {
			fieldErrs = append(fieldErrs, FieldError{Field: FieldDateRevision, Message: MsgRevisionNotPlusOne})
		}
	}

	if len(fieldErrs) > 0 {
		return Values{}, fieldErrs
	}
	return norm, nil
}

func messageFor(field, tag string) string {
	if msgs, ok := fieldMessages[field]; ok {
		if msg, ok := msgs[tag]; ok {
			return msg
		}
	}
	return "Invalid value"
}

// parseStrictDate accepts only exact YYYY-MM-DD values naming a real
// calendar day.
func parseStrictDate(value string) (time.Time, error) {
	if !strictDatePattern.MatchString(value) {
		return time.Time{}, errors.New("form: not a strict YYYY-MM-DD date")
	}
	return time.ParseInLocation(products.DateLayout, value, time.Local)
}

// startOfDay truncates to the device-local calendar day. Both the today
// check and the one-year offset use local calendar-day semantics.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// addOneYear advances one calendar year, clamping month-end overflow to
// the last day of the target month: Feb 29 maps to Feb 28 of the next
// year, never Mar 1.
func addOneYear(t time.Time) time.Time {
	r := t.AddDate(1, 0, 0)
	if r.Day() != t.Day() {
		r = r.AddDate(0, 0, -r.Day())
	}
	return r
}
