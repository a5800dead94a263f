package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Courier allowlist forwarded on every rate request.
const DefaultCouriers = "jne,jnt,sicepat,anteraja"

// RateRequest is the payload sent to the provider's multi-courier rate
// endpoint. Weight is in kilograms (already ceiling-converted).
type RateRequest struct {
	OriginPostalCode      string `json:"origin_postal_code"`
	DestinationPostalCode string `json:"destination_postal_code"`
	DestinationCity       string `json:"destination_city"`
	Couriers              string `json:"couriers"`
	WeightKg              int    `json:"weight"`
}

// RatePricing is one per-courier pricing row of a rate response.
type RatePricing struct {
	CourierCode          string  `json:"courier_code"`
	CourierServiceCode   string  `json:"courier_service_code"`
	CourierServiceName   string  `json:"courier_service_name"`
	Price                float64 `json:"price"`
	EstimationOfDelivery string  `json:"estimation_of_delivery"`
}

// RateResponse is the provider's rate envelope.
type RateResponse struct {
	Success bool            `json:"success"`
	Pricing []RatePricing   `json:"pricing"`
	Raw     json.RawMessage `json:"-"`
}

// TrackingEvent is one row of a tracking history response.
type TrackingEvent struct {
	UpdatedAt string `json:"updated_at"`
	Status    string `json:"status"`
	Note      string `json:"note"`
	Location  string `json:"location"`
}

// TrackResponse is the provider's tracking envelope.
type TrackResponse struct {
	Success bool            `json:"success"`
	History []TrackingEvent `json:"history"`
	Raw     json.RawMessage `json:"-"`
}

// BiteshipClient talks to the third-party shipping provider. The API key
// never leaves this process; storefront clients go through the proxy
// endpoints instead.
type BiteshipClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewBiteshipClient(baseURL, apiKey string) *BiteshipClient {
	return &BiteshipClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured reports whether a provider credential is present. A missing key
// is a fatal configuration error surfaced as HTTP 500 by the proxy.
func (c *BiteshipClient) Configured() bool { return c.apiKey != "" }

// Rates requests per-courier pricing for a destination and weight.
// Returns the decoded envelope plus the raw body (the proxy endpoint relays
// the provider JSON untouched on success).
func (c *BiteshipClient) Rates(ctx context.Context, req RateRequest) (*RateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("biteship: marshal rate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/rates/couriers", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("biteship: create request: %w", err)
	}
	httpReq.Header.Set("Authorization", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	raw, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}
	var out RateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("biteship: decode rate response: %w", err)
	}
	out.Raw = raw
	return &out, nil
}

// Track fetches the tracking history of one shipment.
func (c *BiteshipClient) Track(ctx context.Context, trackingNumber, courier string) (*TrackResponse, error) {
	url := fmt.Sprintf("%s/v1/trackings/%s/couriers/%s", c.baseURL, trackingNumber, courier)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("biteship: create request: %w", err)
	}
	httpReq.Header.Set("Authorization", c.apiKey)

	raw, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}
	var out TrackResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("biteship: decode tracking response: %w", err)
	}
	out.Raw = raw
	return &out, nil
}

func (c *BiteshipClient) do(req *http.Request) (json.RawMessage, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("biteship: provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("biteship: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("biteship: provider returned %d: %s", resp.StatusCode, providerErrorMessage(buf.Bytes()))
	}
	return buf.Bytes(), nil
}

// providerErrorMessage pulls the provider's error/message field out of a
// failure body, falling back to a generic string.
func providerErrorMessage(body []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return "upstream error"
}

// WeightToKg converts grams to the provider's kilogram unit: ceiling
// division with a 1 kg minimum.
func WeightToKg(grams int) int {
	kg := (grams + 999) / 1000
	if kg < 1 {
		kg = 1
	}
	return kg
}
