package form

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	e := Errors{}
	assert.False(t, e.Any())

	e.Set("time", "Selecione a hora da consulta")
	assert.True(t, e.Any())
	assert.True(t, e.Has("time"))
	assert.Equal(t, "Selecione a hora da consulta", e.Get("time"))

	e.Clear("time")
	assert.False(t, e.Any())
	assert.Equal(t, "", e.Get("time"))
}

func TestIsValidTime(t *testing.T) {
	for _, ok := range []string{"00:00", "09:05", "14:30", "23:59"} {
		assert.True(t, IsValidTime(ok), ok)
	}
	for _, bad := range []string{"", "9:05", "24:00", "12:60", "12h30", "12:301"} {
		assert.False(t, IsValidTime(bad), bad)
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("ana@clinica.com.br"))
	assert.False(t, IsValidEmail("ana@clinica"))
	assert.False(t, IsValidEmail("ana clinica.com"))
}

func TestIsValidBRDate(t *testing.T) {
	assert.True(t, IsValidBRDate("29/06/1995"))
	assert.False(t, IsValidBRDate("1995-06-29"))
	assert.False(t, IsValidBRDate("32/01/2000"))
	assert.False(t, IsValidBRDate("01/13/2000"))
	assert.False(t, IsValidBRDate("01/01/1899"))
}

func TestMinLen(t *testing.T) {
	assert.True(t, MinLen("Zé ", 2))
	assert.False(t, MinLen("  a ", 3))
	assert.True(t, MinLen("abc", 3))
}

func TestCombineAndSplitDateTime(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	day := time.Date(2024, 12, 1, 0, 0, 0, 0, loc)
	got, err := CombineDateTime(day, "14:30", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 1, 14, 30, 0, 0, loc), got)

	d, hhmm := SplitDateTime(got, loc)
	assert.Equal(t, "14:30", hhmm)
	assert.Equal(t, day, d)

	_, err = CombineDateTime(day, "25:00", loc)
	assert.Error(t, err)
}

func TestSplitDateTimeConvertsFromUTC(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// 10:00Z é 07:00 em São Paulo (sem horário de verão desde 2019).
	d, hhmm := SplitDateTime(time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC), loc)
	assert.Equal(t, "07:00", hhmm)
	assert.Equal(t, 1, d.Day())
}

func TestDateConversions(t *testing.T) {
	assert.Equal(t, "29/06/1995", ISODateToBR("1995-06-29T00:00:00.000Z"))
	assert.Equal(t, "29/06/1995", ISODateToBR("1995-06-29"))
	assert.Equal(t, "", ISODateToBR("bogus"))
	assert.Equal(t, "1995-06-29", BRDateToISO("29/06/1995"))
	assert.Equal(t, "", BRDateToISO("1995-06-29"))

	d, err := ParseBRDate("29/06/1995", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(1995, 6, 29, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseBRDate("29-06-1995", time.UTC)
	assert.Error(t, err)

	d, err = ParseISODate("2024-12-01", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
}

func TestFormatCurrency(t *testing.T) {
	cases := map[string]string{
		"":           "",
		"abc":        "",
		"0":          "R$ 0,00",
		"5":          "R$ 0,05",
		"15000":      "R$ 150,00",
		"R$ 150,005": "R$ 1.500,05",
		"123456789":  "R$ 1.234.567,89",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatCurrency(in), in)
	}
}

func TestParseCurrency(t *testing.T) {
	v, ok := ParseCurrency("R$ 1.234,56")
	assert.True(t, ok)
	assert.InDelta(t, 1234.56, v, 0.0001)

	v, ok = ParseCurrency("150")
	assert.True(t, ok)
	assert.InDelta(t, 150.0, v, 0.0001)

	_, ok = ParseCurrency("")
	assert.False(t, ok)

	_, ok = ParseCurrency("R$ abc")
	assert.False(t, ok)
}

func TestPhone(t *testing.T) {
	assert.Equal(t, "5517991112233", DigitsOnly("+55 (17) 99111-2233"))
	assert.Equal(t, "+55 (17) 99111-2233", FormatPhone("5517991112233"))
	assert.Equal(t, "12345", FormatPhone("12345"))
}

func TestOptionsAndToggle(t *testing.T) {
	type item struct{ id, name string }
	opts := Options([]item{{"1", "Ana"}, {"2", "Bia"}},
		func(i item) string { return i.id },
		func(i item) string { return i.name }, "2")
	require.Len(t, opts, 2)
	assert.False(t, opts[0].Selected)
	assert.True(t, opts[1].Selected)
	assert.Equal(t, "Bia", opts[1].Label)

	yn := YesNo(true)
	assert.True(t, yn[0].Checked)
	assert.False(t, yn[1].Checked)
}
