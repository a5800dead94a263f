package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type StockUpdateEntry struct {
	ItemID         string `json:"item_id"         validate:"required"`
	QuantityChange int    `json:"quantity_change" validate:"required"`
	Type           string `json:"type"            validate:"required"`
	Notes          string `json:"notes"           validate:"omitempty,max=500"`
}

type UpdateStockRequest struct {
	Entries []StockUpdateEntry `json:"entries" validate:"required,min=1,dive"`
}

type MaterialRequest struct {
	ID           string          `json:"id"             validate:"required"`
	Name         string          `json:"name"           validate:"required,min=2,max=100"`
	Stock        int             `json:"stock"          validate:"min=0"`
	Unit         string          `json:"unit"           validate:"required"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" validate:"omitempty"`
}

type ReplaceMaterialsRequest struct {
	Materials []MaterialRequest `json:"materials" validate:"required,dive"`
}

type GarmentPatternRequest struct {
	Title              string `json:"title"                validate:"required,min=2,max=100"`
	DefaultWeightGrams int    `json:"default_weight_grams" validate:"min=0"`
}

type ReplaceGarmentPatternsRequest struct {
	Patterns []GarmentPatternRequest `json:"patterns" validate:"required,dive"`
}

type ProductionOutputLineRequest struct {
	Model     string `json:"model"      validate:"required"`
	Size      string `json:"size"       validate:"required"`
	ColorName string `json:"color_name" validate:"required"`
	ColorCode string `json:"color_code" validate:"omitempty"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

type AddProductionReportRequest struct {
	SelectedGarment string                        `json:"selected_garment" validate:"required"`
	Output          []ProductionOutputLineRequest `json:"output"           validate:"required,min=1,dive"`
	HPPPerGarment   decimal.Decimal               `json:"hpp_per_garment"`
	SellingPrice    decimal.Decimal               `json:"selling_price_per_garment"`
}
