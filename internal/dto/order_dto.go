package dto

import "github.com/shopspring/decimal"

// ─── Cart DTOs ───────────────────────────────────────────────────────────────

type CartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

type ReplaceCartRequest struct {
	Items []CartItemRequest `json:"items" validate:"dive"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AddressRequest struct {
	Street                string `json:"street"      validate:"required,min=5"`
	Subdistrict           string `json:"subdistrict" validate:"required"`
	District              string `json:"district"    validate:"required"`
	City                  string `json:"city"        validate:"required"`
	Province              string `json:"province"    validate:"required"`
	PostalCode            string `json:"postal_code" validate:"required,len=5,numeric"`
	PostalCodeProvisional bool   `json:"postal_code_provisional"`
}

type PlaceOrderRequest struct {
	CustomerName        string         `json:"customer_name"          validate:"required,min=2"`
	ShippingAddress     AddressRequest `json:"shipping_address"       validate:"required"`
	Notes               string         `json:"notes"                  validate:"omitempty,max=500"`
	PaymentMethod       string         `json:"payment_method"         validate:"required"`
	ShippingMethod      string         `json:"shipping_method"        validate:"required"`
	ShippingCost        decimal.Decimal `json:"shipping_cost"         validate:"omitempty"`
	DownPaymentProofURL string         `json:"down_payment_proof_url" validate:"omitempty,url"`
	// CartKey identifies the cart to check out; defaults to the caller's user id.
	CartKey string `json:"cart_key" validate:"omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status              string `json:"status"               validate:"required"`
	AssigneeID          string `json:"assignee_id"          validate:"omitempty,uuid"`
	EstimatedCompletion string `json:"estimated_completion" validate:"omitempty"`
}

type DispatchOrderRequest struct {
	TrackingNumber string `json:"tracking_number" validate:"required,min=5"`
	Courier        string `json:"courier"         validate:"required"`
}

type WarrantyClaimRequest struct {
	OrderID  string `json:"order_id"  validate:"required"`
	Reason   string `json:"reason"    validate:"required,min=10,max=1000"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url"`
}

type UpdateWarrantyStatusRequest struct {
	Status     string `json:"status"      validate:"required,oneof=approved rejected"`
	AdminNotes string `json:"admin_notes" validate:"omitempty,max=1000"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderPlacedResponse struct {
	OrderID          string           `json:"order_id"`
	Status           string           `json:"status"`
	OrderType        string           `json:"order_type"`
	Subtotal         decimal.Decimal  `json:"subtotal"`
	ShippingCost     decimal.Decimal  `json:"shipping_cost"`
	DownPayment      *decimal.Decimal `json:"down_payment,omitempty"`
	RemainingPayment *decimal.Decimal `json:"remaining_payment,omitempty"`
}
