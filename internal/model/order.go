package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Address is a shipping destination resolved through the four-level region
// cascade. PostalCodeProvisional marks postal codes synthesized client-side
// because the region reference source does not provide them.
type Address struct {
	Street                string `json:"street,omitempty"`
	Subdistrict           string `json:"subdistrict,omitempty"` // village / kelurahan
	District              string `json:"district,omitempty"`    // kecamatan
	City                  string `json:"city,omitempty"`        // regency / kota
	Province              string `json:"province,omitempty"`
	PostalCode            string `json:"postalCode,omitempty"`
	PostalCodeProvisional bool   `json:"postalCodeProvisional,omitempty"`
}

// SaleItem is a priced, weighted line item shared by carts, orders and sales.
type SaleItem struct {
	ProductID   string          `json:"productId"`
	Name        string          `json:"name"`
	Size        string          `json:"size,omitempty"`
	ColorName   string          `json:"colorName,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	WeightGrams int             `json:"weight"`
}

// Subtotal returns price × quantity summed over items.
func Subtotal(items []SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// TotalWeightGrams sums item weight × quantity, for shipping quotes.
func TotalWeightGrams(items []SaleItem) int {
	total := 0
	for _, it := range items {
		total += it.WeightGrams * it.Quantity
	}
	return total
}

// OrderStatus is the lifecycle state of an online order.
type OrderStatus string

const (
	StatusPendingPayment          OrderStatus = "pending_payment"
	StatusPendingDP               OrderStatus = "pending_dp"
	StatusInProduction            OrderStatus = "in_production"
	StatusPendingPaymentRemaining OrderStatus = "pending_payment_remaining"
	StatusPendingGudang           OrderStatus = "pending_gudang"
	StatusApprovedGudang          OrderStatus = "approved_gudang"
	StatusReadyForPickup          OrderStatus = "ready_for_pickup"
	StatusReadyToShip             OrderStatus = "ready_to_ship"
	StatusSiapKirim               OrderStatus = "siap_kirim"
	StatusDiterimaKurir           OrderStatus = "diterima_kurir"
	StatusSelesai                 OrderStatus = "selesai"
	StatusDibatalkan              OrderStatus = "dibatalkan"
)

// Order flavors.
const (
	OrderTypeDirect = "direct"
	OrderTypePO     = "po"
)

// IsTerminal reports whether no further transitions are accepted.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusSelesai || s == StatusDibatalkan
}

// Status rank tables per order flavor. A transition must move strictly
// forward within its flavor; dibatalkan is reachable from any non-terminal
// state. ready_for_pickup and ready_to_ship share a rank as alternate
// fulfilment branches after warehouse approval.
var directStatusRank = map[OrderStatus]int{
	StatusPendingPayment: 10,
	StatusPendingGudang:  20,
	StatusApprovedGudang: 30,
	StatusReadyForPickup: 40,
	StatusReadyToShip:    40,
	StatusSiapKirim:      50,
	StatusDiterimaKurir:  60,
	StatusSelesai:        70,
}

var poStatusRank = map[OrderStatus]int{
	StatusPendingDP:               10,
	StatusInProduction:            20,
	StatusPendingPaymentRemaining: 30,
	StatusPendingGudang:           40,
	StatusApprovedGudang:          50,
	StatusReadyForPickup:          60,
	StatusReadyToShip:             60,
	StatusSiapKirim:               70,
	StatusDiterimaKurir:           80,
	StatusSelesai:                 90,
}

// CanTransition reports whether an order of the given flavor may move from
// one status to another. Terminal states reject everything; cancellation is
// always allowed before that; otherwise both statuses must belong to the
// flavor's flow and the move must be strictly forward.
func CanTransition(orderType string, from, to OrderStatus) bool {
	if from.IsTerminal() || from == to {
		return false
	}
	if to == StatusDibatalkan {
		return true
	}
	ranks := directStatusRank
	if orderType == OrderTypePO {
		ranks = poStatusRank
	}
	fromRank, okFrom := ranks[from]
	toRank, okTo := ranks[to]
	return okFrom && okTo && toRank > fromRank
}

// StatusChange is one append-only history row of an order.
type StatusChange struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	// UserID is empty when the change was made by an anonymous customer
	// session (guest checkout).
	UserID string `json:"userId,omitempty"`
}

// OnlineOrder is a customer order. History is append-only: every accepted
// status change adds exactly one row and existing rows are never rewritten.
type OnlineOrder struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	// CustomerID is empty for guest checkouts.
	CustomerID          string           `json:"customerId,omitempty"`
	CustomerName        string           `json:"customerName"`
	ShippingAddress     Address          `json:"shippingAddress"`
	Notes               string           `json:"notes,omitempty"`
	PaymentMethod       string           `json:"paymentMethod"`
	ShippingMethod      string           `json:"shippingMethod"`
	ShippingCost        decimal.Decimal  `json:"shippingCost"`
	DownPaymentProofURL string           `json:"downPaymentProofUrl,omitempty"`
	Status              OrderStatus      `json:"status"`
	Items               []SaleItem       `json:"items"`
	History             []StatusChange   `json:"history"`
	OrderType           string           `json:"orderType"`
	DownPayment         *decimal.Decimal `json:"downPayment,omitempty"`
	RemainingPayment    *decimal.Decimal `json:"remainingPayment,omitempty"`
	TrackingNumber      string           `json:"trackingNumber,omitempty"`
	Courier             string           `json:"courier,omitempty"`
	AssignedTo          string           `json:"assignedTo,omitempty"`
	EstimatedCompletion string           `json:"estimatedCompletionDate,omitempty"`
}

// SaleResult is the computed money breakdown of a finalized sale.
type SaleResult struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
}

// Sale is a finalized transaction record, immutable once created.
type Sale struct {
	ID            string     `json:"id"`
	Timestamp     time.Time  `json:"timestamp"`
	UserID        string     `json:"userId"`
	CustomerName  string     `json:"customerName"`
	Items         []SaleItem `json:"items"`
	Result        SaleResult `json:"result"`
	Type          string     `json:"type"` // "online" | "direct"
	Status        string     `json:"status"`
	OnlineOrderID string     `json:"onlineOrderId,omitempty"`
}
