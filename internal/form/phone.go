package form

import (
	"regexp"
	"strings"
)

var phoneRegex = regexp.MustCompile(`^(\d{2})(\d{2})(\d{5})(\d{4})$`)

func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone formata 13 dígitos como "+55 (17) 99111-2233"; qualquer outra
// coisa volta como veio.
func FormatPhone(s string) string {
	return phoneRegex.ReplaceAllString(s, "+$1 ($2) $3-$4")
}
