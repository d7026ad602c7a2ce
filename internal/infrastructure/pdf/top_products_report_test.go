package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":       "0",
		"999":     "999",
		"25000":   "25.000",
		"1000000": "1.000.000",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(in), in)
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$1.234,50", formatPrice(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$0,00", formatPrice(decimal.Zero))
	assert.Equal(t, "-$10,00", formatPrice(decimal.NewFromInt(-10)))
}

func TestGenerateTopProductsPDF(t *testing.T) {
	gen := NewMarotoReportGenerator("Stockroom")
	products := []*entity.Product{
		{Name: "Laptop", SKU: "LAP-1", Type: "Electronics", Quantity: 10, Price: decimal.RequireFromString("1500.00")},
		{Name: "Mouse", SKU: "MOU-1", Type: "Accessories", Quantity: 7, Price: decimal.RequireFromString("25.5")},
	}

	out, err := gen.GenerateTopProductsPDF(context.Background(), products, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
}

func TestGenerateTopProductsPDF_SinProductos(t *testing.T) {
	out, err := NewMarotoReportGenerator("").GenerateTopProductsPDF(context.Background(), nil, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
