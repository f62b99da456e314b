package validators

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Optional trims s and returns nil when nothing is left.
func Optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// NormalizeEmail trims and lowercases an optional email.
func NormalizeEmail(email string) *string {
	e := Optional(email)
	if e == nil {
		return nil
	}
	lower := strings.ToLower(*e)
	return &lower
}
