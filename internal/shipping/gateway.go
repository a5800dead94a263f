// Package shipping quotes courier rates and tracks shipments through the
// Biteship provider, normalizing its responses for storefront clients.
package shipping

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/dto"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/infra"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Quotes are cached briefly: courier tariffs change rarely, but carts change
// often, so the key includes destination and total weight.
const quoteCacheTTL = 10 * time.Minute

// Gateway wraps the provider client with a circuit breaker and a Redis quote
// cache. Normalization is lossy on purpose: storefront clients only need
// code, service, cost and ETD.
type Gateway struct {
	client           *infra.BiteshipClient
	breaker          *infra.CircuitBreaker
	rdb              *redis.Client
	originPostalCode string
}

func NewGateway(client *infra.BiteshipClient, rdb *redis.Client, originPostalCode string) *Gateway {
	return &Gateway{
		client:           client,
		breaker:          infra.NewCircuitBreaker(infra.DefaultCBConfig()),
		rdb:              rdb,
		originPostalCode: originPostalCode,
	}
}

// BreakerState exposes the circuit breaker for health reporting.
func (g *Gateway) BreakerState() infra.CBState { return g.breaker.State() }

// Configured reports whether a provider credential is present.
func (g *Gateway) Configured() bool { return g.client.Configured() }

// Quote returns normalized rate options for shipping items to a destination.
// Any provider failure yields an empty slice and a nil error: checkout
// degrades to manual shipping arrangement instead of blocking the customer.
func (g *Gateway) Quote(ctx context.Context, destinationPostalCode, couriers string, items []model.SaleItem) []dto.ShippingOption {
	if couriers == "" {
		couriers = infra.DefaultCouriers
	}

	weightGrams := model.TotalWeightGrams(items)
	cacheKey := g.quoteCacheKey(destinationPostalCode, couriers, weightGrams)
	if g.rdb != nil {
		if cached, err := g.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var options []dto.ShippingOption
			if err := json.Unmarshal(cached, &options); err == nil {
				return options
			}
		}
	}

	req := infra.RateRequest{
		OriginPostalCode:      g.originPostalCode,
		DestinationPostalCode: destinationPostalCode,
		Couriers:              couriers,
		WeightKg:              infra.WeightToKg(weightGrams),
	}

	var resp *infra.RateResponse
	err := g.breaker.Execute(func() error {
		var callErr error
		resp, callErr = g.client.Rates(ctx, req)
		return callErr
	})
	if err != nil {
		log.Warn().Err(err).
			Str("destination", destinationPostalCode).
			Int("weight_grams", weightGrams).
			Msg("shipping quote failed")
		return []dto.ShippingOption{}
	}

	options := make([]dto.ShippingOption, 0, len(resp.Pricing))
	for _, p := range resp.Pricing {
		options = append(options, dto.ShippingOption{
			CourierCode: p.CourierCode,
			Service:     p.CourierServiceCode,
			Description: p.CourierServiceName,
			Cost:        decimal.NewFromFloat(p.Price),
			ETD:         p.EstimationOfDelivery,
		})
	}
	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Cost.LessThan(options[j].Cost)
	})

	if g.rdb != nil && len(options) > 0 {
		if payload, err := json.Marshal(options); err == nil {
			if err := g.rdb.Set(ctx, cacheKey, payload, quoteCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("shipping quote cache write failed")
			}
		}
	}
	return options
}

// Track returns the normalized tracking history of a shipment, newest event
// first. Provider failures yield an empty event list, never an error page.
func (g *Gateway) Track(ctx context.Context, trackingNumber, courier string) dto.TrackingResponse {
	out := dto.TrackingResponse{
		TrackingNumber: trackingNumber,
		Courier:        courier,
		Events:         []dto.TrackingEvent{},
	}

	var resp *infra.TrackResponse
	err := g.breaker.Execute(func() error {
		var callErr error
		resp, callErr = g.client.Track(ctx, trackingNumber, courier)
		return callErr
	})
	if err != nil {
		log.Warn().Err(err).
			Str("tracking_number", trackingNumber).
			Str("courier", courier).
			Msg("shipment tracking failed")
		return out
	}

	for _, ev := range resp.History {
		out.Events = append(out.Events, dto.TrackingEvent{
			Status:    ev.Status,
			Note:      ev.Note,
			Location:  ev.Location,
			Timestamp: ev.UpdatedAt,
		})
	}
	// Provider history is oldest-first; clients render newest-first.
	sort.SliceStable(out.Events, func(i, j int) bool {
		return out.Events[i].Timestamp > out.Events[j].Timestamp
	})

	out.Success = true
	if len(out.Events) > 0 {
		out.Status = out.Events[0].Status
	}
	return out
}

// RawQuote forwards a proxy request and returns the provider's raw JSON body,
// for the storefront-compatible proxy endpoint. The area name rides along as
// destination_city, which the provider requires next to the postal code.
func (g *Gateway) RawQuote(ctx context.Context, req dto.ShippingCostRequest) (json.RawMessage, error) {
	rateReq := infra.RateRequest{
		OriginPostalCode:      g.originPostalCode,
		DestinationPostalCode: req.DestinationPostalCode,
		DestinationCity:       req.DestinationAreaName,
		Couriers:              infra.DefaultCouriers,
		WeightKg:              infra.WeightToKg(req.Weight),
	}

	var resp *infra.RateResponse
	err := g.breaker.Execute(func() error {
		var callErr error
		resp, callErr = g.client.Rates(ctx, rateReq)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return resp.Raw, nil
}

// RawTrack forwards a tracking proxy request, returning the provider's raw
// JSON body on success.
func (g *Gateway) RawTrack(ctx context.Context, trackingNumber, courier string) (json.RawMessage, error) {
	var resp *infra.TrackResponse
	err := g.breaker.Execute(func() error {
		var callErr error
		resp, callErr = g.client.Track(ctx, trackingNumber, courier)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return resp.Raw, nil
}

func (g *Gateway) quoteCacheKey(destination, couriers string, weightGrams int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%d", g.originPostalCode, destination, couriers, weightGrams)))
	return "shipping:quote:" + hex.EncodeToString(sum[:8])
}
