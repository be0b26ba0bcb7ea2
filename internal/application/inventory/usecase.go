package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
	"github.com/jhoicas/inventory-tracker/pkg/logger"
)

// EventTypeStockChanged tipo de evento publicado tras un cambio de stock.
const EventTypeStockChanged = "stock.changed"

// InventoryUseCase es el único camino de escritura sobre productos e historial:
// deriva Status desde Stock, valida unicidad de nombre y registra cada cambio de stock
// en la misma transacción que la actualización.
type InventoryUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	logRepo      repository.InventoryLogRepository
	publisher    StockEventPublisher
	log          *logger.Logger
	defaultActor string
}

// NewInventoryUseCase construye el caso de uso. publisher puede ser nil (NopPublisher).
func NewInventoryUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	logRepo repository.InventoryLogRepository,
	publisher StockEventPublisher,
	log *logger.Logger,
	defaultActor string,
) *InventoryUseCase {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	if defaultActor == "" {
		defaultActor = "admin"
	}
	return &InventoryUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		logRepo:      logRepo,
		publisher:    publisher,
		log:          log,
		defaultActor: defaultActor,
	}
}

// Create valida la entrada, rechaza nombres duplicados (sin distinguir mayúsculas) y
// persiste el producto con Status derivado. No genera historial para el stock inicial.
func (uc *InventoryUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	product, err := productFromRequest(in)
	if err != nil {
		return nil, err
	}
	var created *entity.Product
	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.InventoryLogRepository) error {
		existing, err := productRepo.FindByNameFold(ctx, product.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return duplicateNameErr(product.Name)
		}
		created, err = insertProduct(ctx, productRepo, product)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(created), nil
}

// ImportProduct crea un producto desde una fila de importación en una sola transacción.
// Si ya existe un producto con el mismo nombre devuelve (nil, id existente, nil) sin escribir.
func (uc *InventoryUseCase) ImportProduct(ctx context.Context, product entity.Product) (*dto.ProductResponse, int64, error) {
	if !product.HasRequiredFields() {
		return nil, 0, fmt.Errorf("%w: name, unit, category y brand son requeridos", domain.ErrInvalidInput)
	}
	if product.Stock < 0 {
		return nil, 0, fmt.Errorf("%w: stock debe ser mayor o igual a 0", domain.ErrInvalidInput)
	}
	trimProduct(&product)

	var created *entity.Product
	var existingID int64
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.InventoryLogRepository) error {
		existing, err := productRepo.FindByNameFold(ctx, product.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			existingID = existing.ID
			return nil
		}
		created, err = insertProduct(ctx, productRepo, &product)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	if created == nil {
		return nil, existingID, nil
	}
	return toProductResponse(created), 0, nil
}

// Update reemplaza todos los campos del producto id. Orden de validación:
// campos requeridos, stock >= 0, existencia, unicidad de nombre. Con la fila bloqueada
// compara el stock anterior con el nuevo y, solo si difieren, agrega una entrada al historial
// dentro de la misma transacción. actor vacío usa el actor por defecto.
func (uc *InventoryUseCase) Update(ctx context.Context, id int64, in dto.ProductRequest, actor string) (*dto.ProductResponse, error) {
	product, err := productFromRequest(in)
	if err != nil {
		return nil, err
	}
	product.ID = id
	if actor = strings.TrimSpace(actor); actor == "" {
		actor = uc.defaultActor
	}

	var updated *entity.Product
	var change *entity.InventoryLogEntry
	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, logRepo repository.InventoryLogRepository) error {
		current, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return productNotFoundErr(id)
		}
		other, err := productRepo.FindByNameFold(ctx, product.Name)
		if err != nil {
			return err
		}
		if other != nil && other.ID != id {
			return duplicateNameErr(product.Name)
		}

		product.ApplyDerivedStatus()
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}

		if current.Stock != product.Stock {
			entry := &entity.InventoryLogEntry{
				ProductID: id,
				OldStock:  current.Stock,
				NewStock:  product.Stock,
				ChangedBy: actor,
			}
			if err := logRepo.Create(ctx, entry); err != nil {
				return fmt.Errorf("registrar cambio de stock: %w", err)
			}
			change = entry
		}

		updated, err = productRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if updated == nil {
			return productNotFoundErr(id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if change != nil {
		uc.publishStockChanged(ctx, change)
	}
	return toProductResponse(updated), nil
}

// Delete elimina el producto y todo su historial en la misma transacción.
func (uc *InventoryUseCase) Delete(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, logRepo repository.InventoryLogRepository) error {
		if err := logRepo.DeleteByProduct(ctx, id); err != nil {
			return err
		}
		deleted, err := productRepo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return productNotFoundErr(id)
		}
		return nil
	})
}

// GetByID obtiene un producto por ID.
func (uc *InventoryUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, productNotFoundErr(id)
	}
	return toProductResponse(product), nil
}

// List devuelve todos los productos, el más reciente primero.
func (uc *InventoryUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.productRepo.ListDesc(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Search busca productos cuyo nombre contenga name (sin distinguir mayúsculas).
func (uc *InventoryUseCase) Search(ctx context.Context, name string) ([]dto.ProductResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: el parámetro name es requerido", domain.ErrInvalidInput)
	}
	list, err := uc.productRepo.SearchByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// History devuelve el historial de stock del producto, del más reciente al más antiguo.
// No verifica que el producto exista: un id desconocido produce una lista vacía.
func (uc *InventoryUseCase) History(ctx context.Context, productID int64) ([]dto.InventoryLogResponse, error) {
	entries, err := uc.logRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.InventoryLogResponse{
			ID:        e.ID,
			ProductID: e.ProductID,
			OldStock:  e.OldStock,
			NewStock:  e.NewStock,
			ChangedBy: e.ChangedBy,
			Timestamp: e.Timestamp,
		})
	}
	return out, nil
}

// ListForExport devuelve todos los productos por id ascendente.
func (uc *InventoryUseCase) ListForExport(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.ListAsc(ctx)
}

// publishStockChanged se ejecuta después del commit; un fallo solo se registra.
func (uc *InventoryUseCase) publishStockChanged(ctx context.Context, e *entity.InventoryLogEntry) {
	event := dto.StockChangedEvent{
		Type:      EventTypeStockChanged,
		ProductID: e.ProductID,
		OldStock:  e.OldStock,
		NewStock:  e.NewStock,
		ChangedBy: e.ChangedBy,
		Timestamp: e.Timestamp,
	}
	if err := uc.publisher.PublishStockChanged(ctx, event); err != nil {
		uc.log.Warn().Err(err).
			Int64("product_id", e.ProductID).
			Int("old_stock", e.OldStock).
			Int("new_stock", e.NewStock).
			Msg("no se pudo publicar el evento de stock")
	}
}

func insertProduct(ctx context.Context, productRepo repository.ProductRepository, product *entity.Product) (*entity.Product, error) {
	product.ApplyDerivedStatus()
	id, err := productRepo.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	created, err := productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("producto %d no encontrado tras insertar", id)
	}
	return created, nil
}

// productFromRequest valida campos requeridos y stock >= 0 (mismo criterio en alta y edición).
// Status del request se descarta.
func productFromRequest(in dto.ProductRequest) (*entity.Product, error) {
	p := &entity.Product{
		Name:     in.Name,
		Unit:     in.Unit,
		Category: in.Category,
		Brand:    in.Brand,
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if !p.HasRequiredFields() || in.Stock == nil {
		return nil, fmt.Errorf("%w: name, unit, category, brand y stock son requeridos", domain.ErrInvalidInput)
	}
	p.Stock = *in.Stock
	if p.Stock < 0 {
		return nil, fmt.Errorf("%w: stock debe ser mayor o igual a 0", domain.ErrInvalidInput)
	}
	trimProduct(p)
	return p, nil
}

func trimProduct(p *entity.Product) {
	p.Name = strings.TrimSpace(p.Name)
	p.Unit = strings.TrimSpace(p.Unit)
	p.Category = strings.TrimSpace(p.Category)
	p.Brand = strings.TrimSpace(p.Brand)
	p.Image = strings.TrimSpace(p.Image)
}

func duplicateNameErr(name string) error {
	return fmt.Errorf("%w: ya existe un producto con el nombre %q", domain.ErrConflict, name)
}

func productNotFoundErr(id int64) error {
	return fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Unit:     p.Unit,
		Category: p.Category,
		Brand:    p.Brand,
		Stock:    p.Stock,
		Status:   p.Status,
		Image:    p.Image,
	}
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out
}
