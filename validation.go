package yoga

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
)

const TextCodeValidationFailed = "VALIDATION_FAILED"

// sessionDateLayouts are accepted for session dates, the client sends
// plain dates on create and update
var sessionDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05",
}

// ParseSessionDate accepts plain dates as well as RFC 3339 timestamps
func ParseSessionDate(value string) (time.Time, error) {
	for _, layout := range sessionDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validatePayload("Invalid login request payload", func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required),
			validation.Field(&r.Password, validation.Required),
		)
	})
}

// Validate will run validation rules
func (r SignupRequest) Validate() error {
	return validatePayload("Invalid signup request payload", func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required, validation.Length(1, 50), is.Email),
			validation.Field(&r.FirstName, validation.Required, validation.Length(3, 20)),
			validation.Field(&r.LastName, validation.Required, validation.Length(3, 20)),
			validation.Field(&r.Password, validation.Required, validation.Length(6, 40)),
		)
	})
}

// Validate will run validation rules
func (r SessionRequest) Validate() error {
	return validatePayload("Invalid session payload", func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Name, validation.Required, validation.Length(1, 50)),
			validation.Field(&r.Date, validation.Required, validation.By(validDate)),
			validation.Field(&r.TeacherID, validation.Required, validation.Min(int64(1))),
			validation.Field(&r.Description, validation.Required, validation.Length(1, 2500)),
		)
	})
}

func validDate(value any) error {
	s, _ := value.(string)
	if _, err := ParseSessionDate(s); err != nil {
		return errors.New("must be a valid date")
	}
	return nil
}

func validatePayload(message string, fn func() error) error {
	verr := goerrors.ValidateWithOzzo(fn, message)
	if verr == nil {
		return nil
	}

	verr = verr.WithCode(goerrors.CodeBadRequest)
	if verr.TextCode == "" {
		verr = verr.WithTextCode(TextCodeValidationFailed)
	}

	var fields validation.Errors
	if errors.As(fn(), &fields) {
		verr = verr.WithMetadata(map[string]any{"fields": fieldMessages(fields)})
	}
	return verr
}

func fieldMessages(fields validation.Errors) map[string]string {
	out := make(map[string]string, len(fields))
	for name, err := range fields {
		if err != nil {
			out[name] = err.Error()
		}
	}
	return out
}
