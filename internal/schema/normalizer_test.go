package schema

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ns(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func TestDecodeImagesJSONArray(t *testing.T) {
	row := ProductRow{
		ID:     1,
		Name:   ns("Widget"),
		Images: ns(`["a.png","b.png"]`),
	}

	p, anomalies := DecodeProduct(row)

	assert.Empty(t, anomalies)
	assert.Equal(t, []string{"a.png", "b.png"}, p.Images)
}

func TestDecodeImagesMalformedJSON(t *testing.T) {
	cases := map[string]string{
		"truncated object": `{not json`,
		"bare scalar":      `a.png`,
		"json object":      `{"url":"a.png"}`,
		"json number":      `42`,
	}

	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			p, anomalies := DecodeProduct(ProductRow{ID: 7, Images: ns(value)})

			require.NotNil(t, p.Images)
			assert.Empty(t, p.Images)
			assert.Contains(t, anomalies, AnomalyImages)
		})
	}
}

func TestDecodeImagesEmptyOrNull(t *testing.T) {
	// NULL column, empty string and JSON null all decode to an empty
	// slice without counting as anomalies.
	for name, row := range map[string]ProductRow{
		"absent column": {},
		"empty string":  {Images: ns("")},
		"json null":     {Images: ns("null")},
	} {
		t.Run(name, func(t *testing.T) {
			p, anomalies := DecodeProduct(row)

			require.NotNil(t, p.Images)
			assert.Empty(t, p.Images)
			assert.Empty(t, anomalies)
		})
	}
}

func TestDecodeScalarImageTakesPrecedence(t *testing.T) {
	row := ProductRow{
		Image:  ns("main.png"),
		Images: ns(`["a.png","b.png"]`),
	}

	p, _ := DecodeProduct(row)

	assert.Equal(t, []string{"main.png"}, p.Images)
}

func TestDecodeAvailableDefaultsTrue(t *testing.T) {
	p, _ := DecodeProduct(ProductRow{})
	assert.True(t, p.Available)

	p, _ = DecodeProduct(ProductRow{Available: NullFlag{Bool: false, Valid: true}})
	assert.False(t, p.Available)

	p, _ = DecodeProduct(ProductRow{Available: NullFlag{Bool: true, Valid: true}})
	assert.True(t, p.Available)
}

func TestNullFlagScan(t *testing.T) {
	cases := []struct {
		value interface{}
		valid bool
		want  bool
	}{
		{nil, false, false},
		{true, true, true},
		{false, true, false},
		{int64(1), true, true},
		{int64(0), true, false},
		{[]byte("t"), true, true},
		{[]byte("f"), true, false},
		{"0", true, false},
		{"FALSE", true, false},
		{"yes", true, true},
	}

	for _, tc := range cases {
		var f NullFlag
		require.NoError(t, f.Scan(tc.value), "scan %v", tc.value)
		assert.Equal(t, tc.valid, f.Valid, "valid for %v", tc.value)
		assert.Equal(t, tc.want, f.Bool, "bool for %v", tc.value)
	}
}

func TestDecodeNumericFields(t *testing.T) {
	p, anomalies := DecodeProduct(ProductRow{
		Price:    ns("9.99"),
		Discount: ns("2.50"),
	})
	assert.Empty(t, anomalies)
	assert.Equal(t, 9.99, p.Price)
	assert.Equal(t, 2.50, p.Discount)

	// Missing discount column defaults to zero without an anomaly.
	p, anomalies = DecodeProduct(ProductRow{Price: ns("5")})
	assert.Empty(t, anomalies)
	assert.Equal(t, float64(0), p.Discount)

	// Garbage is an anomaly but still decodes.
	p, anomalies = DecodeProduct(ProductRow{Price: ns("free")})
	assert.Equal(t, float64(0), p.Price)
	assert.Contains(t, anomalies, AnomalyPrice)
}

func TestEncodeNumericCoercion(t *testing.T) {
	rec := EncodeProduct(ProductInput{Name: "Widget", Price: "9.99"})
	assert.Equal(t, 9.99, rec.Price)

	rec = EncodeProduct(ProductInput{Name: "Widget", Price: 12.5, Discount: nil})
	assert.Equal(t, 12.5, rec.Price)
	assert.Equal(t, float64(0), rec.Discount)

	rec = EncodeProduct(ProductInput{Name: "Widget", Price: "not a number", Discount: "??"})
	assert.Equal(t, float64(0), rec.Price)
	assert.Equal(t, float64(0), rec.Discount)

	rec = EncodeProduct(ProductInput{Name: "Widget", Price: -3.0})
	assert.Equal(t, float64(0), rec.Price)
}

func TestEncodeAvailable(t *testing.T) {
	// Missing encodes as available, matching the decode default.
	rec := EncodeProduct(ProductInput{Name: "Widget"})
	assert.Equal(t, 1, rec.Available)

	rec = EncodeProduct(ProductInput{Name: "Widget", Available: false})
	assert.Equal(t, 0, rec.Available)

	rec = EncodeProduct(ProductInput{Name: "Widget", Available: float64(0)})
	assert.Equal(t, 0, rec.Available)

	rec = EncodeProduct(ProductInput{Name: "Widget", Available: true})
	assert.Equal(t, 1, rec.Available)

	rec = EncodeProduct(ProductInput{Name: "Widget", Available: "false"})
	assert.Equal(t, 0, rec.Available)
}

func TestEncodeImagesAlwaysJSONArray(t *testing.T) {
	rec := EncodeProduct(ProductInput{Name: "Widget"})
	assert.Equal(t, "[]", rec.Images)

	rec = EncodeProduct(ProductInput{Name: "Widget", Images: []string{"a.png", "b.png"}})
	assert.Equal(t, `["a.png","b.png"]`, rec.Images)
}

func TestEncodeTrimsName(t *testing.T) {
	rec := EncodeProduct(ProductInput{Name: "  Widget  "})
	assert.Equal(t, "Widget", rec.Name)

	rec = EncodeProduct(ProductInput{Name: "   "})
	assert.Equal(t, "", rec.Name)
}

func TestImagesRoundTrip(t *testing.T) {
	for _, imgs := range [][]string{
		{},
		{"a.png"},
		{"a.png", "b.png", "https://cdn.example/c.webp"},
	} {
		rec := EncodeProduct(ProductInput{Name: "Widget", Images: imgs})
		p, anomalies := DecodeProduct(ProductRow{Images: ns(rec.Images)})

		assert.Empty(t, anomalies)
		assert.Equal(t, imgs, p.Images)
	}
}
