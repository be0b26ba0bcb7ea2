package inventory_test

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/sqlite"
)

type fakePublisher struct {
	mu     sync.Mutex
	events []dto.StockChangedEvent
	err    error
}

func (p *fakePublisher) PublishStockChanged(_ context.Context, e dto.StockChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func newUseCase(t *testing.T) (*inventory.InventoryUseCase, *fakePublisher) {
	t.Helper()
	uc, pub, _ := newUseCaseAt(t, ":memory:")
	return uc, pub
}

func newUseCaseAt(t *testing.T, path string) (*inventory.InventoryUseCase, *fakePublisher, *sqlx.DB) {
	t.Helper()
	db, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	pub := &fakePublisher{}
	uc := inventory.NewInventoryUseCase(
		sqlite.NewTxRunner(db),
		sqlite.NewProductRepository(db),
		sqlite.NewInventoryLogRepository(db),
		pub,
		nil,
		"admin",
	)
	return uc, pub, db
}

func intPtr(n int) *int { return &n }

func request(name string, stock int) dto.ProductRequest {
	return dto.ProductRequest{
		Name:     name,
		Unit:     "pcs",
		Category: "Electronics",
		Brand:    "TechBrand",
		Stock:    intPtr(stock),
	}
}

func TestCreate_DerivaEstadoDesdeStock(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	in := request("Laptop Pro 15", 45)
	in.Status = entity.StatusOutOfStock // se ignora
	p, err := uc.Create(ctx, in)
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, entity.StatusInStock, p.Status)
	assert.Equal(t, "", p.Image)

	zero, err := uc.Create(ctx, request("Office Chair", 0))
	require.NoError(t, err)
	assert.Equal(t, entity.StatusOutOfStock, zero.Status)

	logs, err := uc.History(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, logs, "el stock inicial no genera historial")
}

func TestCreate_ValidaEntrada(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	missing := request("", 1)
	_, err := uc.Create(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	blank := request("   ", 1)
	_, err = uc.Create(ctx, blank)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	noStock := request("Mouse", 1)
	noStock.Stock = nil
	_, err = uc.Create(ctx, noStock)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, request("Mouse", -1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_RechazaNombreDuplicadoSinDistinguirMayusculas(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, request("Laptop Pro 15", 1))
	require.NoError(t, err)

	_, err = uc.Create(ctx, request("laptop PRO 15", 3))
	assert.ErrorIs(t, err, domain.ErrConflict)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUpdate_SinCambioDeStockNoRegistraHistorial(t *testing.T) {
	uc, pub := newUseCase(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, request("Desk Lamp", 67))
	require.NoError(t, err)

	in := request("Desk Lamp", 67)
	in.Brand = "LightCo"
	updated, err := uc.Update(ctx, p.ID, in, "")
	require.NoError(t, err)
	assert.Equal(t, "LightCo", updated.Brand)

	logs, err := uc.History(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)
	assert.Empty(t, pub.events)
}

func TestUpdate_CambioDeStockRegistraUnaEntrada(t *testing.T) {
	uc, pub := newUseCase(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, request("Notebook A4", 10))
	require.NoError(t, err)

	updated, err := uc.Update(ctx, p.ID, request("Notebook A4", 0), "")
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)
	assert.Equal(t, entity.StatusOutOfStock, updated.Status)

	logs, err := uc.History(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, p.ID, logs[0].ProductID)
	assert.Equal(t, 10, logs[0].OldStock)
	assert.Equal(t, 0, logs[0].NewStock)
	assert.Equal(t, "admin", logs[0].ChangedBy)
	assert.False(t, logs[0].Timestamp.IsZero())

	require.Len(t, pub.events, 1)
	assert.Equal(t, inventory.EventTypeStockChanged, pub.events[0].Type)
	assert.Equal(t, 10, pub.events[0].OldStock)
	assert.Equal(t, 0, pub.events[0].NewStock)
}

func TestUpdate_UsaActorRecibido(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, request("Running Shoes", 34))
	require.NoError(t, err)
	_, err = uc.Update(ctx, p.ID, request("Running Shoes", 30), "maria")
	require.NoError(t, err)

	logs, err := uc.History(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "maria", logs[0].ChangedBy)
}

func TestUpdate_FalloDelPublicadorNoAfectaRespuesta(t *testing.T) {
	uc, pub := newUseCase(t)
	pub.err = errors.New("broker no disponible")
	ctx := context.Background()

	p, err := uc.Create(ctx, request("Coffee Maker", 0))
	require.NoError(t, err)
	updated, err := uc.Update(ctx, p.ID, request("Coffee Maker", 5), "")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInStock, updated.Status)

	logs, err := uc.History(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestUpdate_FalloDelHistorialRevierteActualizacion(t *testing.T) {
	uc, pub, db := newUseCaseAt(t, ":memory:")
	ctx := context.Background()

	p, err := uc.Create(ctx, request("Yoga Mat", 5))
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `DROP TABLE inventory_logs`)
	require.NoError(t, err)

	_, err = uc.Update(ctx, p.ID, request("Yoga Mat", 9), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registrar cambio de stock")
	assert.False(t, errors.Is(err, domain.ErrInvalidInput))
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.False(t, errors.Is(err, domain.ErrConflict))

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)
	assert.Equal(t, entity.StatusInStock, got.Status)
	assert.Empty(t, pub.events)
}

func TestUpdate_ConcurrentesMantienenCadenaDeHistorial(t *testing.T) {
	uc, pub, _ := newUseCaseAt(t, filepath.Join(t.TempDir(), "inventory.db"))
	ctx := context.Background()

	p, err := uc.Create(ctx, request("Desk Lamp", 0))
	require.NoError(t, err)

	const workers = 40
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 1; i <= workers; i++ {
		wg.Add(1)
		go func(stock int) {
			defer wg.Done()
			_, err := uc.Update(ctx, p.ID, request("Desk Lamp", stock), "")
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	logs, err := uc.History(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, logs, workers)
	sort.Slice(logs, func(i, j int) bool { return logs[i].ID < logs[j].ID })

	assert.Equal(t, 0, logs[0].OldStock)
	for i := 1; i < len(logs); i++ {
		assert.Equal(t, logs[i-1].NewStock, logs[i].OldStock, "entrada %d", logs[i].ID)
	}

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, logs[len(logs)-1].NewStock, got.Stock)
	assert.Len(t, pub.events, workers)
}

func TestUpdate_RechazaStockNegativoSinCambios(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, request("Wireless Mouse", 120))
	require.NoError(t, err)

	_, err = uc.Update(ctx, p.ID, request("Wireless Mouse", -3), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, got.Stock)
}

func TestUpdate_ProductoInexistente(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.Update(context.Background(), 999, request("Nada", 1), "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_NombreDeOtroProductoEsConflicto(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, request("Laptop Pro 15", 1))
	require.NoError(t, err)
	lamp, err := uc.Create(ctx, request("Desk Lamp", 2))
	require.NoError(t, err)

	_, err = uc.Update(ctx, lamp.ID, request("LAPTOP pro 15", 2), "")
	assert.ErrorIs(t, err, domain.ErrConflict)

	// su propio nombre, con otra capitalización, sí se permite
	renamed, err := uc.Update(ctx, lamp.ID, request("DESK LAMP", 2), "")
	require.NoError(t, err)
	assert.Equal(t, "DESK LAMP", renamed.Name)
}

func TestDelete_EliminaProductoEHistorial(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, request("Sports Water Bottle", 89))
	require.NoError(t, err)
	_, err = uc.Update(ctx, p.ID, request("Sports Water Bottle", 80), "")
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, p.ID))

	_, err = uc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	logs, err := uc.History(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)

	assert.ErrorIs(t, uc.Delete(ctx, p.ID), domain.ErrNotFound)
}

func TestList_OrdenDescendentePorID(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	a, err := uc.Create(ctx, request("A", 1))
	require.NoError(t, err)
	b, err := uc.Create(ctx, request("B", 1))
	require.NoError(t, err)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)
}

func TestSearch_SubcadenaSinDistinguirMayusculas(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, request("Laptop Pro 15", 1))
	require.NoError(t, err)
	_, err = uc.Create(ctx, request("Desk Lamp", 1))
	require.NoError(t, err)

	got, err := uc.Search(ctx, "lap")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Laptop Pro 15", got[0].Name)

	got, err = uc.Search(ctx, "LAMP")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Desk Lamp", got[0].Name)
}

func TestSearch_ComodinesSeTratanLiteralmente(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, request("100% Cotton", 1))
	require.NoError(t, err)
	_, err = uc.Create(ctx, request("Cotton Shirt", 1))
	require.NoError(t, err)

	got, err := uc.Search(ctx, "%")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "100% Cotton", got[0].Name)

	got, err = uc.Search(ctx, "_")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearch_NombreVacioEsInvalido(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.Search(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistory_OrdenMasRecientePrimero(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, request("Laptop Pro 15", 45))
	require.NoError(t, err)
	for _, s := range []int{40, 30, 20} {
		_, err := uc.Update(ctx, p.ID, request("Laptop Pro 15", s), "")
		require.NoError(t, err)
	}

	logs, err := uc.History(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, 20, logs[0].NewStock)
	assert.Equal(t, 30, logs[1].NewStock)
	assert.Equal(t, 40, logs[2].NewStock)
	assert.Equal(t, 45, logs[2].OldStock)
}

func TestHistory_IDDesconocidoDevuelveListaVacia(t *testing.T) {
	uc, _ := newUseCase(t)
	logs, err := uc.History(context.Background(), 12345)
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)
}

func TestImportProduct_DuplicadoDevuelveIDExistente(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	first, existing, err := uc.ImportProduct(ctx, entity.Product{Name: "Desk Lamp", Unit: "pcs", Category: "Furniture", Brand: "LightCo", Stock: 3})
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Zero(t, existing)

	dup, existing, err := uc.ImportProduct(ctx, entity.Product{Name: "desk lamp", Unit: "pcs", Category: "Furniture", Brand: "LightCo", Stock: 9})
	require.NoError(t, err)
	assert.Nil(t, dup)
	assert.Equal(t, first.ID, existing)
}

func TestSeedIfEmpty_SoloConBaseVacia(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	n, err := uc.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(inventory.SampleProducts), n)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	for _, p := range list {
		assert.Equal(t, entity.DeriveStatus(p.Stock), p.Status)
	}

	n, err = uc.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
