package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

func TestGenerateStockReport_DevuelvePDF(t *testing.T) {
	g := NewMarotoPDFGenerator("Inventario de prueba")
	products := []*entity.Product{
		{ID: 1, Name: "Laptop Pro 15", Unit: "pcs", Category: "Electronics", Brand: "TechBrand", Stock: 45, Status: entity.StatusInStock},
		{ID: 2, Name: "Office Chair", Unit: "pcs", Category: "Furniture", Brand: "ComfortFit", Stock: 0, Status: entity.StatusOutOfStock},
	}

	out, err := g.GenerateStockReport(context.Background(), products, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateStockReport_SinProductos(t *testing.T) {
	out, err := NewMarotoPDFGenerator("").GenerateStockReport(context.Background(), nil, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestSummarize_CuentaUnidadesYAgotados(t *testing.T) {
	got := summarize([]*entity.Product{{Stock: 5}, {Stock: 0}, {Stock: 12}})
	assert.Equal(t, reportTotals{products: 3, units: 17, outOfStock: 1}, got)
}

func TestFormatThousands(t *testing.T) {
	assert.Equal(t, "999", formatThousands("999"))
	assert.Equal(t, "25.000", formatThousands("25000"))
	assert.Equal(t, "1.000.000", formatThousands("1000000"))
}
