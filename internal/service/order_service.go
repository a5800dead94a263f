package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/dto"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/store"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/worker"

	"github.com/rs/zerolog/log"
)

var ErrProductNotFound = errors.New("produk tidak ditemukan")

type OrderService interface {
	Cart(ctx context.Context, cartKey string, preOrder bool) []model.SaleItem
	ReplaceCart(ctx context.Context, cartKey string, preOrder bool, req dto.ReplaceCartRequest) ([]model.SaleItem, error)
	PlaceOrder(ctx context.Context, actor store.Actor, cartKey string, preOrder bool, req dto.PlaceOrderRequest) (*dto.OrderPlacedResponse, error)
	ApprovePayment(ctx context.Context, actor store.Actor, orderID string) error
	UpdateStatus(ctx context.Context, actor store.Actor, orderID string, req dto.UpdateOrderStatusRequest) error
	Dispatch(ctx context.Context, actor store.Actor, orderID string, req dto.DispatchOrderRequest) error
	ListOrders(ctx context.Context) []model.OnlineOrder
	Order(ctx context.Context, orderID string) (model.OnlineOrder, error)
	ListSales(ctx context.Context) []model.Sale
	SubmitWarrantyClaim(ctx context.Context, actor store.Actor, req dto.WarrantyClaimRequest) error
	ReviewWarrantyClaim(ctx context.Context, actor store.Actor, claimID string, req dto.UpdateWarrantyStatusRequest) error
	ListWarrantyClaims(ctx context.Context) []model.WarrantyClaim
}

type orderService struct {
	st         *store.Store
	dispatcher *worker.Dispatcher
}

func NewOrderService(st *store.Store, dispatcher *worker.Dispatcher) OrderService {
	return &orderService{st: st, dispatcher: dispatcher}
}

func (s *orderService) Cart(ctx context.Context, cartKey string, preOrder bool) []model.SaleItem {
	items := []model.SaleItem{}
	s.st.View(func(st *store.AppState) {
		carts := st.Carts
		if preOrder {
			carts = st.PreOrderCarts
		}
		items = append(items, carts[cartKey]...)
	})
	return items
}

// ReplaceCart resolves product ids against the finished-goods catalog so
// price and weight always come from the server, never the client.
func (s *orderService) ReplaceCart(ctx context.Context, cartKey string, preOrder bool, req dto.ReplaceCartRequest) ([]model.SaleItem, error) {
	items := make([]model.SaleItem, 0, len(req.Items))
	var resolveErr error
	s.st.View(func(st *store.AppState) {
		for _, line := range req.Items {
			var good *model.FinishedGood
			for i := range st.FinishedGoods {
				if st.FinishedGoods[i].ID == line.ProductID {
					good = &st.FinishedGoods[i]
					break
				}
			}
			if good == nil {
				resolveErr = fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
				return
			}
			weight := good.WeightGrams
			if weight <= 0 {
				weight = model.DefaultGoodWeightGrams
			}
			items = append(items, model.SaleItem{
				ProductID:   good.ID,
				Name:        good.DisplayName(),
				Size:        good.Size,
				ColorName:   good.ColorName,
				Quantity:    line.Quantity,
				Price:       good.EffectivePrice(),
				WeightGrams: weight,
			})
		}
	})
	if resolveErr != nil {
		return nil, resolveErr
	}
	if err := s.st.Dispatch(store.ReplaceCart{CartKey: cartKey, PreOrder: preOrder, Items: items}); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *orderService) PlaceOrder(ctx context.Context, actor store.Actor, cartKey string, preOrder bool, req dto.PlaceOrderRequest) (*dto.OrderPlacedResponse, error) {
	info := model.OnlineOrder{
		CustomerName: req.CustomerName,
		ShippingAddress: model.Address{
			Street:                req.ShippingAddress.Street,
			Subdistrict:           req.ShippingAddress.Subdistrict,
			District:              req.ShippingAddress.District,
			City:                  req.ShippingAddress.City,
			Province:              req.ShippingAddress.Province,
			PostalCode:            req.ShippingAddress.PostalCode,
			PostalCodeProvisional: req.ShippingAddress.PostalCodeProvisional,
		},
		Notes:               req.Notes,
		PaymentMethod:       req.PaymentMethod,
		ShippingMethod:      req.ShippingMethod,
		ShippingCost:        req.ShippingCost,
		DownPaymentProofURL: req.DownPaymentProofURL,
	}

	var action store.Action
	if preOrder {
		action = store.PlacePreOrder{Actor: actor, CartKey: cartKey, Info: info}
	} else {
		action = store.PlaceOnlineOrder{Actor: actor, CartKey: cartKey, Info: info}
	}
	// The reducer prepends the new order; reading it back under the same
	// lock as the commit keeps a concurrent checkout from slipping its own
	// order in front.
	var placed model.OnlineOrder
	if err := s.st.DispatchView(action, func(st *store.AppState) {
		placed = st.OnlineOrders[0]
	}); err != nil {
		return nil, err
	}

	return &dto.OrderPlacedResponse{
		OrderID:          placed.ID,
		Status:           string(placed.Status),
		OrderType:        placed.OrderType,
		Subtotal:         model.Subtotal(placed.Items),
		ShippingCost:     placed.ShippingCost,
		DownPayment:      placed.DownPayment,
		RemainingPayment: placed.RemainingPayment,
	}, nil
}

func (s *orderService) ApprovePayment(ctx context.Context, actor store.Actor, orderID string) error {
	return s.st.Dispatch(store.ApprovePayment{Actor: actor, OrderID: orderID})
}

func (s *orderService) UpdateStatus(ctx context.Context, actor store.Actor, orderID string, req dto.UpdateOrderStatusRequest) error {
	return s.st.Dispatch(store.UpdateOrderStatus{
		Actor:               actor,
		OrderID:             orderID,
		Status:              model.OrderStatus(req.Status),
		AssigneeID:          req.AssigneeID,
		EstimatedCompletion: req.EstimatedCompletion,
	})
}

// Dispatch finalizes an order into a sale and hands the receipt off to the
// background pipeline.
func (s *orderService) Dispatch(ctx context.Context, actor store.Actor, orderID string, req dto.DispatchOrderRequest) error {
	if err := s.st.Dispatch(store.DispatchOnlineOrder{
		Actor:          actor,
		OrderID:        orderID,
		TrackingNumber: req.TrackingNumber,
		Courier:        req.Courier,
	}); err != nil {
		return err
	}

	var (
		saleID        string
		customerEmail string
	)
	s.st.View(func(st *store.AppState) {
		for i := range st.Sales {
			if st.Sales[i].OnlineOrderID == orderID {
				saleID = st.Sales[i].ID
				break
			}
		}
		for i := range st.OnlineOrders {
			if st.OnlineOrders[i].ID != orderID {
				continue
			}
			customerID := st.OnlineOrders[i].CustomerID
			if customerID == "" {
				break // guest checkout, no email on file
			}
			for _, u := range st.Users {
				if u.ID.String() == customerID {
					customerEmail = u.Email
					break
				}
			}
			break
		}
	})

	if saleID != "" {
		if err := s.dispatcher.EnqueueReceipt(ctx, worker.ReceiptJobPayload{
			SaleID:        saleID,
			OrderID:       orderID,
			CustomerEmail: customerEmail,
		}); err != nil {
			// The sale is already committed; receipt generation can be
			// replayed manually, so dispatch does not fail here.
			log.Error().Err(err).Str("sale_id", saleID).Msg("failed to enqueue receipt job")
		}
	}
	return nil
}

func (s *orderService) ListOrders(ctx context.Context) []model.OnlineOrder {
	orders := []model.OnlineOrder{}
	s.st.View(func(st *store.AppState) {
		orders = append(orders, st.OnlineOrders...)
	})
	return orders
}

func (s *orderService) Order(ctx context.Context, orderID string) (model.OnlineOrder, error) {
	var order model.OnlineOrder
	err := store.ErrNotFound
	s.st.View(func(st *store.AppState) {
		for i := range st.OnlineOrders {
			if st.OnlineOrders[i].ID == orderID {
				order = st.OnlineOrders[i]
				err = nil
				return
			}
		}
	})
	return order, err
}

func (s *orderService) ListSales(ctx context.Context) []model.Sale {
	sales := []model.Sale{}
	s.st.View(func(st *store.AppState) {
		sales = append(sales, st.Sales...)
	})
	return sales
}

func (s *orderService) SubmitWarrantyClaim(ctx context.Context, actor store.Actor, req dto.WarrantyClaimRequest) error {
	return s.st.Dispatch(store.SubmitWarrantyClaim{
		Actor:    actor,
		OrderID:  req.OrderID,
		Reason:   req.Reason,
		PhotoURL: req.PhotoURL,
	})
}

func (s *orderService) ReviewWarrantyClaim(ctx context.Context, actor store.Actor, claimID string, req dto.UpdateWarrantyStatusRequest) error {
	return s.st.Dispatch(store.UpdateWarrantyClaimStatus{
		Actor:      actor,
		ClaimID:    claimID,
		Status:     req.Status,
		AdminNotes: req.AdminNotes,
	})
}

func (s *orderService) ListWarrantyClaims(ctx context.Context) []model.WarrantyClaim {
	claims := []model.WarrantyClaim{}
	s.st.View(func(st *store.AppState) {
		claims = append(claims, st.WarrantyClaims...)
	})
	return claims
}
