package rules

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/dmitrymomot/shapekit/pkg/shape"
)

var alphanumericRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// Pattern requires a string matching expr. It panics if expr does not compile.
// The description names the format in messages; expr is used when it is empty.
func Pattern(expr, description string) *shape.Validator {
	re := regexp.MustCompile(expr)
	if description == "" {
		description = expr
	}
	return matching("Pattern("+description+")", re, description)
}

// Alphanumeric requires a non-empty string of ASCII letters and digits.
func Alphanumeric() *shape.Validator {
	return matching("Alphanumeric", alphanumericRegex, "letters and digits")
}

func matching(name string, re *regexp.Regexp, description string) *shape.Validator {
	return newRule(name, func(v any) *violation {
		s, ok := v.(string)
		if !ok {
			return notApplicable(name, v)
		}
		if re.MatchString(s) {
			return nil
		}
		return &violation{
			sentinel: ErrInvalidFormat,
			message:  fmt.Sprintf("must match %s", description),
			key:      "validation.regex_pattern",
			values:   map[string]any{"pattern": description},
		}
	})
}

// Email requires a bare address such as user@example.com. Display names and
// angle brackets are rejected.
func Email() *shape.Validator {
	const name = "Email"
	return newRule(name, func(v any) *violation {
		s, ok := v.(string)
		if !ok {
			return notApplicable(name, v)
		}
		if validEmail(s) {
			return nil
		}
		return &violation{
			sentinel: ErrInvalidFormat,
			message:  "must be a valid email address",
			key:      "validation.email",
		}
	})
}

func validEmail(s string) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}
