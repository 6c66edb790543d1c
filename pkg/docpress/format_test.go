package docpress

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{name: "zero", amount: 0, want: "0 ₫"},
		{name: "small", amount: 500, want: "500 ₫"},
		{name: "thousands", amount: 100000, want: "100.000 ₫"},
		{name: "millions", amount: 1250000, want: "1.250.000 ₫"},
		{name: "exact group boundary", amount: 1000, want: "1.000 ₫"},
		{name: "rounds fractions", amount: 19999.6, want: "20.000 ₫"},
		{name: "negative", amount: -45000, want: "-45.000 ₫"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.amount, LocaleVI))
		})
	}
}

func TestFormatCurrencyLocaleInvariant(t *testing.T) {
	for _, amount := range []float64{0, 100000, 9999999} {
		en := FormatCurrency(amount, LocaleEN)
		vi := FormatCurrency(amount, LocaleVI)
		assert.Equal(t, en, vi, "amount %v", amount)
		assert.Equal(t, 1, strings.Count(en, currencySymbol))
	}
}

func TestFormatDate(t *testing.T) {
	date := time.Date(2026, 3, 9, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name   string
		value  interface{}
		locale Locale
		want   string
	}{
		{name: "en month first", value: date, locale: LocaleEN, want: "03/09/2026"},
		{name: "vi day first", value: date, locale: LocaleVI, want: "09/03/2026"},
		{name: "iso string", value: "2026-03-09", locale: LocaleVI, want: "09/03/2026"},
		{name: "rfc3339 string", value: "2026-03-09T15:04:05Z", locale: LocaleEN, want: "03/09/2026"},
		{name: "unix seconds", value: date.Unix(), locale: LocaleVI, want: "09/03/2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatDate(tt.value, tt.locale)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDateInvalid(t *testing.T) {
	inputs := []interface{}{
		"not a date",
		"31/31/2026",
		time.Time{},
		(*time.Time)(nil),
		struct{}{},
	}

	for _, input := range inputs {
		_, err := FormatDate(input, LocaleEN)
		require.Error(t, err, "input %v", input)
		assert.True(t, IsInvalidDate(err), "input %v", input)
	}
}

func TestFormatAddress(t *testing.T) {
	addr := Address{
		Name:       "Trần Thị Lan",
		Lines:      []string{"123 Lê Lợi", "Phường Bến Thành"},
		City:       "TP. Hồ Chí Minh",
		PostalCode: "700000",
		Country:    "Việt Nam",
		Phone:      "0912345678",
	}

	t.Run("vi layout", func(t *testing.T) {
		got := FormatAddress(addr, LocaleVI)
		want := "Trần Thị Lan\n" +
			"123 Lê Lợi\n" +
			"Phường Bến Thành\n" +
			"TP. Hồ Chí Minh 700000\n" +
			"Việt Nam\n" +
			"Điện thoại: +84 912345678"
		assert.Equal(t, want, got)
	})

	t.Run("en only changes the phone label", func(t *testing.T) {
		got := FormatAddress(addr, LocaleEN)
		assert.Contains(t, got, "Phone: ")
		assert.NotContains(t, got, "Điện thoại")

		// Same line order in both locales.
		viLines := strings.Split(FormatAddress(addr, LocaleVI), "\n")
		enLines := strings.Split(got, "\n")
		require.Equal(t, len(viLines), len(enLines))
		for i := range viLines[:len(viLines)-1] {
			assert.Equal(t, viLines[i], enLines[i])
		}
	})

	t.Run("empty fields are skipped", func(t *testing.T) {
		got := FormatAddress(Address{Name: "A", City: "Huế"}, LocaleEN)
		assert.Equal(t, "A\nHuế", got)
	})

	t.Run("state joins the locality line", func(t *testing.T) {
		got := FormatAddress(Address{City: "Portland", State: "OR", PostalCode: "97201"}, LocaleEN)
		assert.Equal(t, "Portland, OR 97201", got)
	})
}

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		name   string
		phone  string
		locale Locale
		want   string
	}{
		{name: "vi trunk prefix rewritten", phone: "0912345678", locale: LocaleVI, want: "+84 912345678"},
		{name: "vi with separators", phone: "091 234-5678", locale: LocaleVI, want: "+84 912345678"},
		{name: "vi already international", phone: "+84 912345678", locale: LocaleVI, want: "+84 912345678"},
		{name: "vi non numeric passes through", phone: "0abc", locale: LocaleVI, want: "0abc"},
		{name: "vi bare trunk digit passes through", phone: "0", locale: LocaleVI, want: "0"},
		{name: "en has no trunk rule", phone: "0912345678", locale: LocaleEN, want: "0912345678"},
		{name: "empty", phone: "", locale: LocaleVI, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPhoneNumber(tt.phone, tt.locale))
		})
	}
}
