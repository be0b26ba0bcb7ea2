package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

func openTestDB(t *testing.T) *ProductRepo {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewProductRepository(db)
}

func newProduct(name string, stock int) *entity.Product {
	p := &entity.Product{Name: name, Unit: "pcs", Category: "Misc", Brand: "Acme", Stock: stock}
	p.ApplyDerivedStatus()
	return p
}

func TestCreate_IndiceUnicoSinDistinguirMayusculas(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, newProduct("Desk Lamp", 1))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newProduct("DESK LAMP", 2))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreate_CheckRechazaEstadoInconsistente(t *testing.T) {
	repo := openTestDB(t)
	p := newProduct("Broken", 5)
	p.Status = entity.StatusOutOfStock

	_, err := repo.Create(context.Background(), p)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrConflict)
}

func TestGetByID_SinFilaDevuelveNil(t *testing.T) {
	repo := openTestDB(t)
	p, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestDelete_IndicaSiExistia(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()
	id, err := repo.Create(ctx, newProduct("Mouse", 1))
	require.NoError(t, err)

	ok, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestContainsPattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
	assert.Equal(t, `%c:\\d%`, containsPattern(`c:\d`))
}

func TestDSN_AgregaPragmas(t *testing.T) {
	assert.Equal(t, "file:inventory.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate", dsn("inventory.db"))
	assert.Equal(t, "file::memory:?cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate", dsn("file::memory:?cache=shared"))
}

func TestTimestamp_ScanTexto(t *testing.T) {
	var ts timestamp
	require.NoError(t, ts.Scan("2026-03-01 10:20:30.123"))
	assert.Equal(t, 2026, ts.Year())
	assert.Equal(t, 123000000, ts.Nanosecond())
}
