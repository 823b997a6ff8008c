package services

import (
	"regexp"
	"strings"

	"quarhire/internal/domain"
	"quarhire/internal/utils"

	"github.com/go-playground/validator/v10"
)

var (
	validate       = validator.New()
	referenceRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{4,64}$`)
)

// field pairs a JSON field name with its submitted value.
type field struct {
	name  string
	value string
}

// fieldErrors collects missing and malformed input in submission order.
type fieldErrors struct {
	missing []string
	invalid []string
}

func (f *fieldErrors) require(fields ...field) {
	for _, fl := range fields {
		if strings.TrimSpace(fl.value) == "" {
			f.missing = append(f.missing, fl.name)
		}
	}
}

func (f *fieldErrors) invalidIf(cond bool, name string) {
	if cond {
		f.invalid = append(f.invalid, name)
	}
}

// email marks name invalid when value is present but malformed.
func (f *fieldErrors) email(name, value string) {
	if v := strings.TrimSpace(value); v != "" && !validEmail(v) {
		f.invalid = append(f.invalid, name)
	}
}

func (f *fieldErrors) err() error {
	if len(f.missing) == 0 && len(f.invalid) == 0 {
		return nil
	}
	return domain.ValidationError{Missing: f.missing, Invalid: f.invalid}
}

func validEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

func validReference(s string) bool {
	return referenceRegex.MatchString(s)
}

func validDate(s string) bool {
	_, err := utils.ParseDate(s)
	return err == nil
}

func validClock(s string) bool {
	_, err := utils.ParseClock(s)
	return err == nil
}
