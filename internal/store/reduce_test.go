package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"
)

var testClock = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

// testEnv returns a deterministic Env: a fixed clock and sequential ids
// id-001, id-002, …
func testEnv() Env {
	n := 0
	return Env{
		Now: func() time.Time { return testClock },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%03d", n)
		},
	}
}

func testActor() Actor {
	return Actor{UserID: "u-gudang", Username: "budi"}
}

func seededInventory() AppState {
	st := NewState()
	st.Materials = []model.Material{
		{ID: "mat-kain", Name: "Kain Cotton Combed", Unit: "kg", Stock: 40},
	}
	st.FinishedGoods = []model.FinishedGood{
		{
			ID: "kaos-basic-l-merah", Name: "Kaos Basic", Model: "Basic",
			Size: "L", ColorName: "Merah", Stock: 12,
			SellingPrice: decimal.NewFromInt(95000),
			WeightGrams:  300,
		},
	}
	return st
}

// ── Stock ────────────────────────────────────────────────────────────────────

func TestUpdateStockAppliesBatchWithLedger(t *testing.T) {
	st := seededInventory()

	next, err := Reduce(st, UpdateStock{
		Actor: testActor(),
		Entries: []StockUpdate{
			{ItemID: "mat-kain", QuantityChange: -5, Type: model.StockTypeAdjustment, Notes: "susut gudang"},
			{ItemID: "kaos-basic-l-merah", QuantityChange: 8, Type: model.StockTypePurchase},
		},
	}, testEnv())
	require.NoError(t, err)

	assert.Equal(t, 35, next.Materials[0].Stock)
	assert.Equal(t, 20, next.FinishedGoods[0].Stock)

	// One ledger row per entry, newest first, carrying the post-update balance.
	require.Len(t, next.StockHistory, 2)
	assert.Equal(t, "kaos-basic-l-merah", next.StockHistory[0].ProductID)
	assert.Equal(t, 8, next.StockHistory[0].Quantity)
	assert.Equal(t, 20, next.StockHistory[0].FinalStock)
	assert.Equal(t, "Kaos Basic L (Merah)", next.StockHistory[0].ProductName)
	assert.Equal(t, "mat-kain", next.StockHistory[1].ProductID)
	assert.Equal(t, -5, next.StockHistory[1].Quantity)
	assert.Equal(t, 35, next.StockHistory[1].FinalStock)
	assert.Equal(t, "susut gudang", next.StockHistory[1].Source)
	assert.Equal(t, "u-gudang", next.StockHistory[1].UserID)
}

func TestUpdateStockUnknownItemRejectsWholeBatch(t *testing.T) {
	st := seededInventory()

	next, err := Reduce(st, UpdateStock{
		Actor: testActor(),
		Entries: []StockUpdate{
			{ItemID: "mat-kain", QuantityChange: -5, Type: model.StockTypeAdjustment},
			{ItemID: "tidak-ada", QuantityChange: 1, Type: model.StockTypeAdjustment},
		},
	}, testEnv())
	require.ErrorIs(t, err, ErrNotFound)

	// The first entry must not leak through.
	assert.Equal(t, 40, next.Materials[0].Stock)
	assert.Empty(t, next.StockHistory)
}

func TestUpdateStockRequiresActor(t *testing.T) {
	_, err := Reduce(seededInventory(), UpdateStock{
		Entries: []StockUpdate{{ItemID: "mat-kain", QuantityChange: 1}},
	}, testEnv())
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

// ── Production receipt ───────────────────────────────────────────────────────

func TestReceiveProductionGoodsCreatesVariants(t *testing.T) {
	st := NewState()
	st.GarmentPatterns["Kaos"] = model.GarmentPattern{Title: "Kaos", DefaultWeightGrams: 320}
	st.ProductionReports = []model.ProductionReport{{
		ID:              "PRD-0001",
		SelectedGarment: "Kaos",
		Output: []model.ProductionOutputLine{
			{Model: "Basic", Size: "L", ColorName: "Merah", Quantity: 20},
			{Model: "Basic", Size: "M", ColorName: "Hitam", Quantity: 15},
		},
		HPPPerGarment:       decimal.NewFromInt(42000),
		SellingPricePerUnit: decimal.NewFromInt(95000),
	}}

	next, err := Reduce(st, ReceiveProductionGoods{Actor: testActor(), ReportID: "PRD-0001"}, testEnv())
	require.NoError(t, err)

	require.Len(t, next.FinishedGoods, 2)
	good := next.FinishedGoods[0]
	assert.Equal(t, "kaos-basic-l-merah", good.ID)
	assert.Equal(t, "Kaos Basic", good.Name)
	assert.Equal(t, 20, good.Stock)
	assert.Equal(t, 320, good.WeightGrams)
	assert.True(t, good.HPP.Equal(decimal.NewFromInt(42000)))
	assert.True(t, good.SellingPrice.Equal(decimal.NewFromInt(95000)))
	assert.Equal(t, "PRD-0001", good.ProductionReportID)

	require.Len(t, next.StockHistory, 2)
	assert.Equal(t, "Masuk dari produksi #PRD-0001", next.StockHistory[0].Source)
	assert.Equal(t, model.StockTypeInProduction, next.StockHistory[0].Type)

	assert.True(t, next.ProductionReports[0].IsReceivedInWarehouse)
}

func TestReceiveProductionGoodsAccumulatesAndFallsBackOnWeight(t *testing.T) {
	st := seededInventory() // has kaos-basic-l-merah at stock 12, no patterns
	st.ProductionReports = []model.ProductionReport{{
		ID:              "PRD-0002",
		SelectedGarment: "Kaos",
		Output: []model.ProductionOutputLine{
			{Model: "Basic", Size: "L", ColorName: "Merah", Quantity: 10},
			{Model: "Oversize", Size: "XL", ColorName: "Putih", Quantity: 5},
		},
	}}

	next, err := Reduce(st, ReceiveProductionGoods{Actor: testActor(), ReportID: "PRD-0002"}, testEnv())
	require.NoError(t, err)

	// Existing variant accumulates instead of duplicating.
	require.Len(t, next.FinishedGoods, 2)
	assert.Equal(t, 22, next.FinishedGoods[0].Stock)

	// New variant without a pattern gets the global default weight.
	created := next.FinishedGoods[1]
	assert.Equal(t, "kaos-oversize-xl-putih", created.ID)
	assert.Equal(t, model.DefaultGoodWeightGrams, created.WeightGrams)
}

func TestReceiveProductionGoodsOnlyOnce(t *testing.T) {
	st := NewState()
	st.ProductionReports = []model.ProductionReport{{
		ID:              "PRD-0003",
		SelectedGarment: "Kaos",
		Output:          []model.ProductionOutputLine{{Model: "Basic", Size: "S", ColorName: "Biru", Quantity: 3}},
	}}

	next, err := Reduce(st, ReceiveProductionGoods{Actor: testActor(), ReportID: "PRD-0003"}, testEnv())
	require.NoError(t, err)

	_, err = Reduce(next, ReceiveProductionGoods{Actor: testActor(), ReportID: "PRD-0003"}, testEnv())
	assert.ErrorIs(t, err, ErrAlreadyReceived)
}

// ── Orders ───────────────────────────────────────────────────────────────────

func cartItems() []model.SaleItem {
	return []model.SaleItem{
		{ProductID: "kaos-basic-l-merah", Name: "Kaos Basic", Quantity: 2, Price: decimal.NewFromInt(95000), WeightGrams: 300},
		{ProductID: "kaos-basic-m-hitam", Name: "Kaos Basic", Quantity: 1, Price: decimal.NewFromInt(99999), WeightGrams: 300},
	}
}

func TestPlaceOrderUsesCartAndClearsIt(t *testing.T) {
	st := NewState()
	st.Carts["cust-1"] = cartItems()

	actor := Actor{UserID: "cust-1", Username: "ani"}
	next, err := Reduce(st, PlaceOnlineOrder{
		Actor:   actor,
		CartKey: "cust-1",
		Info:    model.OnlineOrder{CustomerName: "Ani", PaymentMethod: "transfer"},
	}, testEnv())
	require.NoError(t, err)

	require.Len(t, next.OnlineOrders, 1)
	order := next.OnlineOrders[0]
	assert.Equal(t, "ORD-0001", order.ID)
	assert.Equal(t, model.OrderTypeDirect, order.OrderType)
	assert.Equal(t, model.StatusPendingPayment, order.Status)
	assert.Equal(t, "cust-1", order.CustomerID)
	assert.Len(t, order.Items, 2)
	require.Len(t, order.History, 1)
	assert.Equal(t, model.StatusPendingPayment, order.History[0].Status)

	assert.Empty(t, next.Carts["cust-1"])
	assert.Nil(t, order.DownPayment)
}

func TestPlacePreOrderSplitsPaymentInHalf(t *testing.T) {
	st := NewState()
	st.PreOrderCarts["cust-1"] = cartItems() // subtotal 289999

	next, err := Reduce(st, PlacePreOrder{
		Actor:   Actor{UserID: "cust-1", Username: "ani"},
		CartKey: "cust-1",
		Info:    model.OnlineOrder{CustomerName: "Ani"},
	}, testEnv())
	require.NoError(t, err)

	order := next.OnlineOrders[0]
	assert.Equal(t, "PO-0001", order.ID)
	assert.Equal(t, model.OrderTypePO, order.OrderType)
	assert.Equal(t, model.StatusPendingDP, order.Status)

	subtotal := decimal.NewFromInt(289999)
	require.NotNil(t, order.DownPayment)
	require.NotNil(t, order.RemainingPayment)
	assert.True(t, order.DownPayment.Equal(subtotal.Div(decimal.NewFromInt(2))))
	assert.True(t, order.DownPayment.Add(*order.RemainingPayment).Equal(subtotal))
	assert.Empty(t, next.PreOrderCarts["cust-1"])
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	_, err := Reduce(NewState(), PlaceOnlineOrder{
		Actor:   Actor{UserID: "cust-1", Username: "ani"},
		CartKey: "cust-1",
	}, testEnv())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func placedOrder(t *testing.T) AppState {
	t.Helper()
	st := NewState()
	st.Carts["cust-1"] = cartItems()
	next, err := Reduce(st, PlaceOnlineOrder{
		Actor:   Actor{UserID: "cust-1", Username: "ani"},
		CartKey: "cust-1",
		Info:    model.OnlineOrder{CustomerName: "Ani"},
	}, testEnv())
	require.NoError(t, err)
	return next
}

func TestOrderTransitionsAppendOneHistoryRowEach(t *testing.T) {
	st := placedOrder(t)
	admin := Actor{UserID: "u-admin", Username: "admin"}

	st, err := Reduce(st, ApprovePayment{Actor: admin, OrderID: "ORD-0001"}, testEnv())
	require.NoError(t, err)
	assert.Equal(t, model.StatusPendingGudang, st.OnlineOrders[0].Status)
	assert.Len(t, st.OnlineOrders[0].History, 2)

	// Backward moves are rejected and leave the history alone.
	_, err = Reduce(st, UpdateOrderStatus{
		Actor: admin, OrderID: "ORD-0001", Status: model.StatusPendingPayment,
	}, testEnv())
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Len(t, st.OnlineOrders[0].History, 2)

	st, err = Reduce(st, UpdateOrderStatus{
		Actor: admin, OrderID: "ORD-0001", Status: model.StatusApprovedGudang, AssigneeID: "u-gudang",
	}, testEnv())
	require.NoError(t, err)
	assert.Equal(t, "u-gudang", st.OnlineOrders[0].AssignedTo)
	assert.Len(t, st.OnlineOrders[0].History, 3)
}

func TestCancelAllowedUntilTerminal(t *testing.T) {
	st := placedOrder(t)
	admin := Actor{UserID: "u-admin", Username: "admin"}

	st, err := Reduce(st, UpdateOrderStatus{
		Actor: admin, OrderID: "ORD-0001", Status: model.StatusDibatalkan,
	}, testEnv())
	require.NoError(t, err)
	assert.Equal(t, model.StatusDibatalkan, st.OnlineOrders[0].Status)

	// Terminal: nothing moves anymore, not even another cancel.
	_, err = Reduce(st, UpdateOrderStatus{
		Actor: admin, OrderID: "ORD-0001", Status: model.StatusPendingGudang,
	}, testEnv())
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = Reduce(st, UpdateOrderStatus{
		Actor: admin, OrderID: "ORD-0001", Status: model.StatusDibatalkan,
	}, testEnv())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDispatchOrderFinalizesSale(t *testing.T) {
	st := placedOrder(t)
	admin := Actor{UserID: "u-admin", Username: "admin"}
	env := testEnv()

	var err error
	st, err = Reduce(st, ApprovePayment{Actor: admin, OrderID: "ORD-0001"}, env)
	require.NoError(t, err)
	st, err = Reduce(st, UpdateOrderStatus{Actor: admin, OrderID: "ORD-0001", Status: model.StatusApprovedGudang}, env)
	require.NoError(t, err)

	st, err = Reduce(st, DispatchOnlineOrder{
		Actor: admin, OrderID: "ORD-0001", TrackingNumber: "JNE123456", Courier: "jne",
	}, env)
	require.NoError(t, err)

	order := st.OnlineOrders[0]
	assert.Equal(t, model.StatusSiapKirim, order.Status)
	assert.Equal(t, "JNE123456", order.TrackingNumber)
	assert.Equal(t, "jne", order.Courier)

	require.Len(t, st.Sales, 1)
	sale := st.Sales[0]
	assert.Equal(t, "INV-0001", sale.ID)
	assert.Equal(t, "ORD-0001", sale.OnlineOrderID)
	assert.Equal(t, "online", sale.Type)
	subtotal := decimal.NewFromInt(289999)
	assert.True(t, sale.Result.Subtotal.Equal(subtotal))
	assert.True(t, sale.Result.GrandTotal.Equal(subtotal))
	assert.True(t, sale.Result.DiscountAmount.IsZero())
	assert.True(t, sale.Result.TaxAmount.IsZero())
}

// ── Session ──────────────────────────────────────────────────────────────────

func staffUser(id byte, username string) model.User {
	var raw [16]byte
	raw[15] = id
	return model.User{ID: uuid.UUID(raw), Username: username, Role: model.RolePenjualan, IsApproved: true}
}

func TestLoginKeepsRecentListDedupedAndCapped(t *testing.T) {
	st := NewState()
	env := testEnv()

	var err error
	for i := byte(1); i <= 6; i++ {
		st, err = Reduce(st, Login{User: staffUser(i, fmt.Sprintf("user%d", i))}, env)
		require.NoError(t, err)
	}
	require.Len(t, st.LastLoggedInUsers, 5)
	assert.Equal(t, "user6", st.LastLoggedInUsers[0].Username)
	assert.Equal(t, "user2", st.LastLoggedInUsers[4].Username)

	// Re-login moves an existing entry to the front without duplicating it.
	st, err = Reduce(st, Login{User: staffUser(3, "user3")}, env)
	require.NoError(t, err)
	require.Len(t, st.LastLoggedInUsers, 5)
	assert.Equal(t, "user3", st.LastLoggedInUsers[0].Username)

	assert.Equal(t, "Pengguna user3 berhasil login.", st.ActivityLog[0].Description)
}

func TestActivityLogCapped(t *testing.T) {
	st := NewState()
	for i := 0; i < model.ActivityLogCap; i++ {
		st.ActivityLog = append(st.ActivityLog, model.ActivityLog{ID: fmt.Sprintf("old-%d", i)})
	}

	next, err := Reduce(st, Login{User: staffUser(1, "user1")}, testEnv())
	require.NoError(t, err)

	assert.Len(t, next.ActivityLog, model.ActivityLogCap)
	assert.Equal(t, "Pengguna user1 berhasil login.", next.ActivityLog[0].Description)
}

func TestLogoutClearsActorCarts(t *testing.T) {
	st := NewState()
	st.Carts["cust-1"] = cartItems()
	st.PreOrderCarts["cust-1"] = cartItems()
	st.Carts["cust-2"] = cartItems()

	next, err := Reduce(st, Logout{Actor: Actor{UserID: "cust-1", Username: "ani"}}, testEnv())
	require.NoError(t, err)
	assert.NotContains(t, next.Carts, "cust-1")
	assert.NotContains(t, next.PreOrderCarts, "cust-1")
	assert.Contains(t, next.Carts, "cust-2")

	// Anonymous logout is a no-op.
	next, err = Reduce(next, Logout{}, testEnv())
	require.NoError(t, err)
	assert.Contains(t, next.Carts, "cust-2")
}

// ── Attendance & payroll ─────────────────────────────────────────────────────

func TestClockInOncePerDay(t *testing.T) {
	env := testEnv()
	actor := testActor()

	st, err := Reduce(NewState(), AddAttendance{Actor: actor, Status: model.AttendanceHadir}, env)
	require.NoError(t, err)
	require.Len(t, st.AttendanceRecords, 1)
	assert.Equal(t, "2026-03-02", st.AttendanceRecords[0].Date)

	_, err = Reduce(st, AddAttendance{Actor: actor, Status: model.AttendanceSakit}, env)
	assert.ErrorIs(t, err, ErrAlreadyClockedIn)

	// A different user on the same day is fine.
	_, err = Reduce(st, AddAttendance{Actor: Actor{UserID: "u-2", Username: "siti"}, Status: model.AttendanceHadir}, env)
	assert.NoError(t, err)
}

func TestConfirmPayrollOnlyByOwnerAndOnlyOnce(t *testing.T) {
	st := NewState()
	st.PayrollHistory = []model.PayrollEntry{{
		ID: "pay-1", UserID: "u-gudang", Period: "2026-02",
		NetSalary: decimal.NewFromInt(4500000), Status: model.PayrollPending,
	}}

	_, err := Reduce(st, ConfirmPayroll{Actor: Actor{UserID: "u-lain", Username: "lain"}, PayrollID: "pay-1"}, testEnv())
	assert.ErrorIs(t, err, ErrForbidden)

	next, err := Reduce(st, ConfirmPayroll{Actor: testActor(), PayrollID: "pay-1"}, testEnv())
	require.NoError(t, err)
	assert.Equal(t, model.PayrollConfirmed, next.PayrollHistory[0].Status)
	require.NotNil(t, next.PayrollHistory[0].ConfirmedAt)

	_, err = Reduce(next, ConfirmPayroll{Actor: testActor(), PayrollID: "pay-1"}, testEnv())
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
}

// ── Chat ─────────────────────────────────────────────────────────────────────

func TestMarkChatReadIsIdempotent(t *testing.T) {
	st := NewState()
	env := testEnv()

	st, err := Reduce(st, SendChatMessage{
		Actor: Actor{UserID: "cust-1", Username: "ani"}, CustomerID: "cust-1",
		Sender: model.ChatReaderCustomer, Text: "Halo, pesanan saya?",
	}, env)
	require.NoError(t, err)
	assert.False(t, st.Chats["cust-1"].Messages[0].ReadByAdmin)
	assert.True(t, st.Chats["cust-1"].Messages[0].ReadByCustomer)

	st, err = Reduce(st, MarkChatRead{CustomerID: "cust-1", Reader: model.ChatReaderAdmin}, env)
	require.NoError(t, err)
	assert.True(t, st.Chats["cust-1"].Messages[0].ReadByAdmin)

	// Re-marking an already read thread changes nothing and does not error.
	again, err := Reduce(st, MarkChatRead{CustomerID: "cust-1", Reader: model.ChatReaderAdmin}, env)
	require.NoError(t, err)
	assert.Equal(t, st.Chats["cust-1"], again.Chats["cust-1"])

	// Unknown threads are ignored.
	_, err = Reduce(st, MarkChatRead{CustomerID: "tidak-ada", Reader: model.ChatReaderAdmin}, env)
	assert.NoError(t, err)
}

// ── Purity ───────────────────────────────────────────────────────────────────

func TestReduceNeverMutatesItsInput(t *testing.T) {
	st := seededInventory()

	next, err := Reduce(st, UpdateStock{
		Actor:   testActor(),
		Entries: []StockUpdate{{ItemID: "mat-kain", QuantityChange: -5, Type: model.StockTypeAdjustment}},
	}, testEnv())
	require.NoError(t, err)

	assert.Equal(t, 40, st.Materials[0].Stock, "input state must stay untouched")
	assert.Empty(t, st.StockHistory)
	assert.Equal(t, 35, next.Materials[0].Stock)
}
