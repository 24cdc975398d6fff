// Package validation implements form-field validation: every submitted value
// is sanitized (trimmed and HTML-escaped) before any rule runs, every rule of
// every field is evaluated without short-circuiting, and violations are
// collected in declaration order so the form can be redisplayed with the full
// error list.
package validation

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// currency matches values like "$9.99" or "$12": a dollar sign, one or more
// digits, optionally a decimal point followed by one or more digits.
var currencyRegexp = regexp.MustCompile(`^\$[0-9]+(\.[0-9]+)?$`)

type (
	// FieldError is a single rule violation, carrying the rule author's
	// message verbatim.
	FieldError struct {
		Field   string
		Message string
	}

	// Rule pairs a validator/v10 tag with the message reported on violation.
	Rule struct {
		Tag     string
		Message string
	}

	Engine struct {
		validate *validator.Validate
	}
)

func NewEngine() (*Engine, error) {
	validate := validator.New()

	err := validate.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return currencyRegexp.MatchString(fl.Field().String())
	})
	if err != nil {
		return nil, fmt.Errorf("validation.NewEngine: register currency rule: %w", err)
	}

	return &Engine{validate: validate}, nil
}

// Check runs every rule against the (already sanitized) value and returns one
// FieldError per violated rule, in rule order. Rules are independent; a value
// failing several rules reports all of them.
func (e *Engine) Check(field, value string, rules ...Rule) []FieldError {
	var errs []FieldError
	for _, rule := range rules {
		if err := e.validate.Var(value, rule.Tag); err != nil {
			errs = append(errs, FieldError{Field: field, Message: rule.Message})
		}
	}
	return errs
}

// Sanitize trims leading and trailing whitespace and escapes HTML-unsafe
// characters. The sanitized value is what gets validated, persisted and
// redisplayed.
func Sanitize(raw string) string {
	return html.EscapeString(strings.TrimSpace(raw))
}

// SanitizeAll sanitizes every element; a nil input yields an empty, non-nil
// slice so absent multi-value fields normalize to an empty sequence.
func SanitizeAll(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for _, value := range raw {
		sanitized = append(sanitized, Sanitize(value))
	}
	return sanitized
}
