package docpress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		locale Locale
		params map[string]string
		want   string
	}{
		{name: "en lookup", key: "order.title", locale: LocaleEN, want: "Order Confirmation"},
		{name: "vi lookup", key: "order.title", locale: LocaleVI, want: "Xác nhận đơn hàng"},
		{name: "missing key returns key", key: "nonexistentKey", locale: LocaleVI, want: "nonexistentKey"},
		{name: "unknown locale falls back to default", key: "order.title", locale: Locale("fr"), want: "Order Confirmation"},
		{
			name:   "params interpolate",
			key:    "order.greeting",
			locale: LocaleEN,
			params: map[string]string{"name": "Lan"},
			want:   "Hello Lan, thank you for your order!",
		},
		{
			name:   "unmatched param placeholder stays",
			key:    "order.greeting",
			locale: LocaleEN,
			want:   "Hello {name}, thank you for your order!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Translate(tt.key, tt.locale, tt.params))
		})
	}
}

func TestCatalogMerge(t *testing.T) {
	catalog := DefaultCatalog()
	catalog.Merge(LocaleEN, map[string]string{
		"order.title": "Your Order",
		"custom.key":  "Custom",
	})

	assert.Equal(t, "Your Order", catalog.Lookup("order.title", LocaleEN, nil))
	assert.Equal(t, "Custom", catalog.Lookup("custom.key", LocaleEN, nil))
	// Untouched keys keep their built-in entries.
	assert.Equal(t, "Invoice", catalog.Lookup("invoice.title", LocaleEN, nil))
}

func TestCatalogCloneIsIndependent(t *testing.T) {
	a := DefaultCatalog()
	a.Merge(LocaleEN, map[string]string{"order.title": "Changed"})

	b := DefaultCatalog()
	assert.Equal(t, "Order Confirmation", b.Lookup("order.title", LocaleEN, nil))
}

func TestCatalogMergeYAML(t *testing.T) {
	catalog := NewCatalog(LocaleEN)
	err := catalog.MergeYAML(LocaleEN, []byte(`
status:
  returned: "Returned"
toplevel: "Top"
`))
	require.NoError(t, err)

	assert.Equal(t, "Returned", catalog.Lookup("status.returned", LocaleEN, nil))
	assert.Equal(t, "Top", catalog.Lookup("toplevel", LocaleEN, nil))
}

func TestCatalogMergeYAMLInvalid(t *testing.T) {
	catalog := NewCatalog(LocaleEN)
	err := catalog.MergeYAML(LocaleEN, []byte("not: [valid"))
	require.Error(t, err)
}

func TestDefaultCatalogCoversAllLocales(t *testing.T) {
	// Every built-in en key should have a vi entry; a hole would silently
	// fall back to the key text in production documents.
	for key := range defaultCatalog.tables[LocaleEN] {
		got := defaultCatalog.Lookup(key, LocaleVI, nil)
		assert.NotEqual(t, key, got, "missing vi translation for %s", key)
	}
}
