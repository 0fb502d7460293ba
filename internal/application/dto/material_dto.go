package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcconcretos/concreto-api/internal/domain/entity"
)

// MaterialDTO fila del catálogo de materiales.
type MaterialDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Category string `json:"category"`
	Unit     string `json:"unit"`
}

// NewMaterialDTO convierte la entidad de catálogo.
func NewMaterialDTO(m entity.Material) MaterialDTO {
	return MaterialDTO{ID: m.ID, Name: m.Name, Code: m.Code, Category: m.Category, Unit: m.Unit}
}

// MaterialPriceDTO fila del historial de precios de un material.
type MaterialPriceDTO struct {
	ID            string          `json:"id"`
	MaterialID    string          `json:"material_id"`
	PlantID       string          `json:"plant_id,omitempty"`
	PricePerUnit  decimal.Decimal `json:"price_per_unit"`
	EffectiveDate time.Time       `json:"effective_date"`
	EndDate       *time.Time      `json:"end_date,omitempty"`
}

// NewMaterialPriceDTO convierte la entidad de precio.
func NewMaterialPriceDTO(p entity.MaterialPrice) MaterialPriceDTO {
	return MaterialPriceDTO{
		ID:            p.ID,
		MaterialID:    p.MaterialID,
		PlantID:       p.PlantID,
		PricePerUnit:  p.PricePerUnit,
		EffectiveDate: p.EffectiveDate,
		EndDate:       p.EndDate,
	}
}
