// Package catalog expone el catálogo de materiales y su historial de precios.
package catalog

import (
	"context"
	"fmt"

	"github.com/dcconcretos/concreto-api/internal/application/dto"
	"github.com/dcconcretos/concreto-api/internal/domain"
	"github.com/dcconcretos/concreto-api/internal/domain/repository"
)

// MaterialUseCase lecturas del catálogo de materiales.
type MaterialUseCase struct {
	materialRepo repository.MaterialRepository
	priceRepo    repository.MaterialPriceRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(materialRepo repository.MaterialRepository, priceRepo repository.MaterialPriceRepository) *MaterialUseCase {
	return &MaterialUseCase{materialRepo: materialRepo, priceRepo: priceRepo}
}

// List devuelve el catálogo completo ordenado por nombre.
func (uc *MaterialUseCase) List(ctx context.Context) ([]dto.MaterialDTO, error) {
	materiales, err := uc.materialRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar materiales: %w", err)
	}
	result := make([]dto.MaterialDTO, 0, len(materiales))
	for _, m := range materiales {
		result = append(result, dto.NewMaterialDTO(m))
	}
	return result, nil
}

// ListPrices devuelve el historial de precios de un material (vigentes y
// cerrados), en orden de inserción.
func (uc *MaterialUseCase) ListPrices(ctx context.Context, materialID string) ([]dto.MaterialPriceDTO, error) {
	existentes, err := uc.materialRepo.GetByIDs(ctx, []string{materialID})
	if err != nil {
		return nil, fmt.Errorf("buscar material: %w", err)
	}
	if len(existentes) == 0 {
		return nil, domain.ErrNotFound
	}

	precios, err := uc.priceRepo.ListByMaterial(ctx, materialID)
	if err != nil {
		return nil, fmt.Errorf("listar precios: %w", err)
	}
	result := make([]dto.MaterialPriceDTO, 0, len(precios))
	for _, p := range precios {
		result = append(result, dto.NewMaterialPriceDTO(p))
	}
	return result, nil
}
