package form

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	timeRegex   = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	brDateRegex = regexp.MustCompile(`^(0[1-9]|[12][0-9]|3[01])/(0[1-9]|1[0-2])/(19|20)\d\d$`)
)

// IsValidTime aceita apenas HH:MM em 24 horas.
func IsValidTime(s string) bool {
	return timeRegex.MatchString(s)
}

func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsValidBRDate aceita DD/MM/AAAA entre 1900 e 2099.
func IsValidBRDate(s string) bool {
	return brDateRegex.MatchString(s)
}

// MinLen conta runas, não bytes: "Zé" tem 2 caracteres.
func MinLen(s string, n int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= n
}
