package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Stock mutation sources recorded in the ledger.
const (
	StockTypeInProduction = "in-production"
	StockTypeSaleOnline   = "sale-online"
	StockTypeSaleDirect   = "sale-direct"
	StockTypeAdjustment   = "adjustment"
	StockTypePurchase     = "purchase"
	StockTypeReturn       = "return"
)

// Material is a raw inventory item (fabric, thread, buttons).
type Material struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Stock        int             `json:"stock"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
}

// FinishedGood is a sellable garment variant. Its ID is the deterministic
// variant key produced by GoodKey, so production output lines always land on
// the same entry.
type FinishedGood struct {
	ID                 string           `json:"id"`
	ProductionReportID string           `json:"productionReportId,omitempty"`
	Name               string           `json:"name"`
	Model              string           `json:"model"`
	Size               string           `json:"size"`
	ColorName          string           `json:"colorName"`
	ColorCode          string           `json:"colorCode,omitempty"`
	Stock              int              `json:"stock"`
	HPP                decimal.Decimal  `json:"hpp"`
	SellingPrice       decimal.Decimal  `json:"sellingPrice"`
	SalePrice          *decimal.Decimal `json:"salePrice,omitempty"`
	// WeightGrams feeds shipping-rate calculation.
	WeightGrams int      `json:"weight"`
	ImageURLs   []string `json:"imageUrls,omitempty"`
}

// DisplayName is the ledger-facing label: "Kaos Basic L (Merah)".
func (g FinishedGood) DisplayName() string {
	return fmt.Sprintf("%s %s (%s)", g.Name, g.Size, g.ColorName)
}

// EffectivePrice returns SalePrice when set, otherwise SellingPrice.
func (g FinishedGood) EffectivePrice() decimal.Decimal {
	if g.SalePrice != nil {
		return *g.SalePrice
	}
	return g.SellingPrice
}

// GoodKey derives the deterministic finished-good id from garment name,
// model, size and color: lowercased, runs of whitespace become hyphens.
func GoodKey(garment, model, size, color string) string {
	key := fmt.Sprintf("%s-%s-%s-%s", garment, model, size, color)
	return strings.ToLower(strings.Join(strings.Fields(key), "-"))
}

// StockHistoryEntry is one append-only ledger row. FinalStock must equal the
// item's balance immediately after the mutation was applied.
type StockHistoryEntry struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	FinalStock  int       `json:"finalStock"`
	Source      string    `json:"source"`
	UserID      string    `json:"userId"`
}

// GarmentPattern is a catalog entry providing per-garment defaults, most
// importantly the default unit weight for newly created finished goods.
type GarmentPattern struct {
	Title string `json:"title"`
	// DefaultWeightGrams seeds FinishedGood.WeightGrams for goods created
	// from production receipts. Zero means "use the global fallback".
	DefaultWeightGrams int `json:"defaultWeight"`
}

// DefaultGoodWeightGrams is used when the garment pattern catalog has no
// weight for a garment.
const DefaultGoodWeightGrams = 250

// ProductionOutputLine is one variant row of a production report's output.
type ProductionOutputLine struct {
	Model     string `json:"model"`
	Size      string `json:"size"`
	ColorName string `json:"colorName"`
	ColorCode string `json:"colorCode,omitempty"`
	Quantity  int    `json:"quantity"`
}

// ProductionReport is the production department's finished batch, reconciled
// into warehouse stock by the receive-production-goods action.
type ProductionReport struct {
	ID                    string                 `json:"id"`
	SelectedGarment       string                 `json:"selectedGarment"`
	Output                []ProductionOutputLine `json:"output"`
	HPPPerGarment         decimal.Decimal        `json:"hppPerGarment"`
	SellingPricePerUnit   decimal.Decimal        `json:"sellingPricePerGarment"`
	IsReceivedInWarehouse bool                   `json:"isReceivedInWarehouse"`
	CreatedAt             time.Time              `json:"createdAt"`
}
