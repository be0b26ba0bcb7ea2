package inventory

import (
	"context"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// SampleProducts catálogo de demostración que se carga cuando la BD está vacía.
var SampleProducts = []entity.Product{
	{Name: "Laptop Pro 15", Unit: "pcs", Category: "Electronics", Brand: "TechBrand", Stock: 45,
		Image: "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=400"},
	{Name: "Wireless Mouse", Unit: "pcs", Category: "Electronics", Brand: "TechBrand", Stock: 120,
		Image: "https://images.unsplash.com/photo-1527814050087-3793815479db?w=400"},
	{Name: "Office Chair", Unit: "pcs", Category: "Furniture", Brand: "ComfortFit", Stock: 0,
		Image: "https://images.unsplash.com/photo-1580480055273-228ff5388ef8?w=400"},
	{Name: "Desk Lamp", Unit: "pcs", Category: "Furniture", Brand: "LightCo", Stock: 67,
		Image: "https://images.unsplash.com/photo-1507473885765-e6ed057f782c?w=400"},
	{Name: "Notebook A4", Unit: "pcs", Category: "Books", Brand: "PaperPro", Stock: 234,
		Image: "https://images.unsplash.com/photo-1531346878377-a5be20888e57?w=400"},
	{Name: "Sports Water Bottle", Unit: "pcs", Category: "Sports", Brand: "HydroFit", Stock: 89,
		Image: "https://images.unsplash.com/photo-1602143407151-7111542de6e8?w=400"},
	{Name: "Running Shoes", Unit: "pairs", Category: "Sports", Brand: "RunFast", Stock: 34,
		Image: "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=400"},
	{Name: "Coffee Maker", Unit: "pcs", Category: "Electronics", Brand: "BrewMaster", Stock: 0,
		Image: "https://images.unsplash.com/photo-1517668808822-9ebb02f2a0e6?w=400"},
}

// SeedIfEmpty inserta SampleProducts solo si no hay ningún producto. Devuelve cuántos insertó.
func (uc *InventoryUseCase) SeedIfEmpty(ctx context.Context) (int, error) {
	n, err := uc.productRepo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	added := 0
	for _, p := range SampleProducts {
		created, _, err := uc.ImportProduct(ctx, p)
		if err != nil {
			return added, err
		}
		if created != nil {
			added++
		}
	}
	uc.log.Info().Int("products", added).Msg("catálogo de ejemplo cargado")
	return added, nil
}
