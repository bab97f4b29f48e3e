package form

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	LayoutISODate = "2006-01-02"
	LayoutBRDate  = "02/01/2006"
	LayoutTime    = "15:04"
)

// CombineDateTime junta a data escolhida e a hora digitada num único
// instante no fuso loc. Segundos e nanos são zerados.
func CombineDateTime(date time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	if !IsValidTime(hhmm) {
		return time.Time{}, fmt.Errorf("form: invalid time %q", hhmm)
	}
	h, _ := strconv.Atoi(hhmm[:2])
	m, _ := strconv.Atoi(hhmm[3:])
	d := date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, loc), nil
}

// SplitDateTime é o inverso de CombineDateTime.
func SplitDateTime(t time.Time, loc *time.Location) (time.Time, string) {
	local := t.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return day, local.Format(LayoutTime)
}

// ParseISODate lê o valor de um <input type="date">.
func ParseISODate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(LayoutISODate, strings.TrimSpace(s), loc)
}

// ParseBRDate lê DD/MM/AAAA.
func ParseBRDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !IsValidBRDate(s) {
		return time.Time{}, fmt.Errorf("form: invalid date %q", s)
	}
	return time.ParseInLocation(LayoutBRDate, s, loc)
}

// BRDateToISO converte DD/MM/AAAA em AAAA-MM-DD sem passar por time.Time.
func BRDateToISO(s string) string {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return ""
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0]
}

// ISODateToBR aceita "1995-06-29" ou "1995-06-29T00:00:00.000Z".
func ISODateToBR(s string) string {
	d, _, _ := strings.Cut(s, "T")
	parts := strings.Split(d, "-")
	if len(parts) != 3 {
		return ""
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}
