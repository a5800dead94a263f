package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/dto"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/store"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/worker"
)

func orderFixture(t *testing.T) OrderService {
	t.Helper()
	salePrice := decimal.NewFromInt(79000)
	st := store.NewState()
	st.FinishedGoods = []model.FinishedGood{
		{
			ID: "kaos-basic-l-merah", Name: "Kaos Basic", Size: "L", ColorName: "Merah",
			Stock: 20, SellingPrice: decimal.NewFromInt(95000), WeightGrams: 300,
		},
		{
			ID: "kaos-basic-m-hitam", Name: "Kaos Basic", Size: "M", ColorName: "Hitam",
			Stock: 20, SellingPrice: decimal.NewFromInt(95000), SalePrice: &salePrice,
		},
	}
	return NewOrderService(store.New(st), worker.NewDispatcher(nil))
}

func TestReplaceCartResolvesPricingServerSide(t *testing.T) {
	svc := orderFixture(t)

	items, err := svc.ReplaceCart(context.Background(), "sesi-1", false, dto.ReplaceCartRequest{
		Items: []dto.CartItemRequest{
			{ProductID: "kaos-basic-l-merah", Quantity: 2},
			{ProductID: "kaos-basic-m-hitam", Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Kaos Basic L (Merah)", items[0].Name)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(95000)))
	assert.Equal(t, 300, items[0].WeightGrams)

	// Discounted price and the weight fallback both come from the catalog.
	assert.True(t, items[1].Price.Equal(decimal.NewFromInt(79000)))
	assert.Equal(t, model.DefaultGoodWeightGrams, items[1].WeightGrams)
}

func TestReplaceCartRejectsUnknownProduct(t *testing.T) {
	svc := orderFixture(t)

	_, err := svc.ReplaceCart(context.Background(), "sesi-1", false, dto.ReplaceCartRequest{
		Items: []dto.CartItemRequest{{ProductID: "tidak-ada", Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGuestCheckoutFlow(t *testing.T) {
	svc := orderFixture(t)
	ctx := context.Background()

	_, err := svc.ReplaceCart(ctx, "sesi-tamu", false, dto.ReplaceCartRequest{
		Items: []dto.CartItemRequest{{ProductID: "kaos-basic-l-merah", Quantity: 2}},
	})
	require.NoError(t, err)

	// A zero actor places the order against the anonymous session cart.
	resp, err := svc.PlaceOrder(ctx, store.Actor{}, "sesi-tamu", false, dto.PlaceOrderRequest{
		CustomerName:  "Tamu",
		PaymentMethod: "transfer",
		ShippingAddress: dto.AddressRequest{
			Street: "Jl. Merdeka 1", Province: "Jawa Barat", City: "Bandung",
			District: "Coblong", Subdistrict: "Dago", PostalCode: "40135",
		},
		ShippingCost: decimal.NewFromInt(12000),
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD-0001", resp.OrderID)
	assert.Equal(t, string(model.StatusPendingPayment), resp.Status)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(190000)))
	assert.Nil(t, resp.DownPayment)

	assert.Empty(t, svc.Cart(ctx, "sesi-tamu", false))

	order, err := svc.Order(ctx, "ORD-0001")
	require.NoError(t, err)
	assert.Empty(t, order.CustomerID)
	assert.Equal(t, "40135", order.ShippingAddress.PostalCode)
}

func TestPreOrderCheckoutReportsDownPayment(t *testing.T) {
	svc := orderFixture(t)
	ctx := context.Background()
	actor := store.Actor{UserID: "cust-1", Username: "ani"}

	_, err := svc.ReplaceCart(ctx, "cust-1", true, dto.ReplaceCartRequest{
		Items: []dto.CartItemRequest{{ProductID: "kaos-basic-l-merah", Quantity: 4}},
	})
	require.NoError(t, err)

	resp, err := svc.PlaceOrder(ctx, actor, "cust-1", true, dto.PlaceOrderRequest{
		CustomerName: "Ani", PaymentMethod: "transfer",
	})
	require.NoError(t, err)
	assert.Equal(t, "PO-0001", resp.OrderID)
	assert.Equal(t, model.OrderTypePO, resp.OrderType)
	require.NotNil(t, resp.DownPayment)
	assert.True(t, resp.DownPayment.Equal(decimal.NewFromInt(190000)))
}

func TestPlaceOrderWithEmptyCart(t *testing.T) {
	svc := orderFixture(t)

	_, err := svc.PlaceOrder(context.Background(), store.Actor{}, "sesi-kosong", false, dto.PlaceOrderRequest{
		CustomerName: "Tamu", PaymentMethod: "transfer",
	})
	assert.ErrorIs(t, err, store.ErrEmptyCart)
}

func TestDispatchCreatesSaleEvenWithoutQueue(t *testing.T) {
	svc := orderFixture(t)
	ctx := context.Background()
	admin := store.Actor{UserID: "u-admin", Username: "admin"}

	_, err := svc.ReplaceCart(ctx, "cust-1", false, dto.ReplaceCartRequest{
		Items: []dto.CartItemRequest{{ProductID: "kaos-basic-l-merah", Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = svc.PlaceOrder(ctx, store.Actor{UserID: "cust-1", Username: "ani"}, "cust-1", false, dto.PlaceOrderRequest{
		CustomerName: "Ani", PaymentMethod: "transfer",
	})
	require.NoError(t, err)

	require.NoError(t, svc.ApprovePayment(ctx, admin, "ORD-0001"))
	require.NoError(t, svc.UpdateStatus(ctx, admin, "ORD-0001", dto.UpdateOrderStatusRequest{
		Status: string(model.StatusApprovedGudang),
	}))
	// The dispatcher has no Redis connection in this test; the receipt job is
	// dropped with a warning and the dispatch itself still succeeds.
	require.NoError(t, svc.Dispatch(ctx, admin, "ORD-0001", dto.DispatchOrderRequest{
		TrackingNumber: "JNE123", Courier: "jne",
	}))

	sales := svc.ListSales(ctx)
	require.Len(t, sales, 1)
	assert.Equal(t, "INV-0001", sales[0].ID)
	assert.Equal(t, "ORD-0001", sales[0].OnlineOrderID)

	order, err := svc.Order(ctx, "ORD-0001")
	require.NoError(t, err)
	assert.Equal(t, model.StatusSiapKirim, order.Status)
	assert.Equal(t, "JNE123", order.TrackingNumber)
}
