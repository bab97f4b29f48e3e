package form

import (
	"strconv"
	"strings"
)

// FormatCurrency aplica a máscara de reais a uma digitação livre: mantém só
// os dígitos, trata os dois últimos como centavos e formata "R$ 1.234,56".
// Sem dígitos devolve "".
func FormatCurrency(raw string) string {
	digits := strings.TrimLeft(DigitsOnly(raw), "0")
	if DigitsOnly(raw) == "" {
		return ""
	}
	for len(digits) < 3 {
		digits = "0" + digits
	}
	intPart, cents := digits[:len(digits)-2], digits[len(digits)-2:]
	return "R$ " + groupThousands(intPart) + "," + cents
}

// ParseCurrency lê um valor mascarado por FormatCurrency. Entradas sem
// máscara ("150", "150,5") são aceitas como reais.
func ParseCurrency(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
