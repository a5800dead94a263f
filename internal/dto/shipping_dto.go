package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ShippingCostRequest is the storefront proxy body. Field names are camelCase
// because deployed storefront clients already send them that way; the area
// name is forwarded to the provider as destination_city.
type ShippingCostRequest struct {
	DestinationPostalCode string `json:"destinationPostalCode" validate:"required,len=5,numeric"`
	DestinationAreaName   string `json:"destinationAreaName"   validate:"required"`
	// Weight is the total package weight in grams.
	Weight int `json:"weight" validate:"required,min=1"`
}

// TrackPackageRequest is the storefront tracking proxy body, camelCase for the
// same compatibility reason.
type TrackPackageRequest struct {
	TrackingNumber string `json:"trackingNumber" validate:"required,min=5"`
	Courier        string `json:"courier"        validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ShippingOption is the normalized rate quote returned to storefront clients.
type ShippingOption struct {
	CourierCode string          `json:"courier_code"`
	Service     string          `json:"service"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
	ETD         string          `json:"etd"`
}

// TrackingEvent is one normalized tracking history row, newest first.
type TrackingEvent struct {
	Status    string `json:"status"`
	Note      string `json:"note"`
	Location  string `json:"location,omitempty"`
	Timestamp string `json:"timestamp"`
}

type TrackingResponse struct {
	Success        bool            `json:"success"`
	TrackingNumber string          `json:"tracking_number"`
	Courier        string          `json:"courier"`
	Status         string          `json:"status"`
	Events         []TrackingEvent `json:"events"`
}
