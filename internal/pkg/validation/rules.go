package validation

import (
	"regexp"
	"unicode"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// ISSN: 4 digits, dash, 3 digits, check digit or X
	ISSNPattern = `^\d{4}-\d{3}[\dXx]$`

	// Program slot times, 24h HH:MM
	ClockPattern = `^([01]\d|2[0-3]):[0-5]\d$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email *regexp.Regexp
	ISSN  *regexp.Regexp
	Clock *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
	ISSN:  regexp.MustCompile(ISSNPattern),
	Clock: regexp.MustCompile(ClockPattern),
}

// IsValidISSN reports whether s is a well-formed ISSN
func IsValidISSN(s string) bool {
	return NewStringValidation(s).WithPattern(CompiledPatterns.ISSN).Validate()
}

// IsValidClock reports whether s is a 24h HH:MM time
func IsValidClock(s string) bool {
	return NewStringValidation(s).WithPattern(CompiledPatterns.Clock).Validate()
}

// IsStrongPassword: en az 8 karakter, en az bir harf ve bir rakam
func IsStrongPassword(password string) bool {
	if !NewStringValidation(password).WithMinLength(PasswordMinLength).Validate() {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// String validation
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation. Lengths are counted in runes so Turkish
// characters count once.
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}

	n := len([]rune(v.Value))
	if v.MinLen > 0 && n < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && n > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}
