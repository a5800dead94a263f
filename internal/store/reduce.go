package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/performance"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/prayer"
)

// Reducer errors. Handlers map ErrNoActiveSession to 401, ErrNotFound to 404,
// the rest to 400.
var (
	ErrNoActiveSession    = errors.New("no active session")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrUnknownAction      = errors.New("unknown action")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrAlreadyReceived    = errors.New("production report already received")
	ErrAlreadyResolved    = errors.New("request already resolved")
	ErrAlreadyClockedIn   = errors.New("attendance already recorded for today")
	ErrAlreadyConfirmed   = errors.New("payroll entry already confirmed")
	ErrForbidden          = errors.New("not allowed for this actor")
)

// Env supplies the reducer's only impure inputs. Tests inject fixed values.
type Env struct {
	Now   func() time.Time
	NewID func() string
}

// DefaultEnv uses the wall clock and random UUIDs.
func DefaultEnv() Env {
	return Env{Now: time.Now, NewID: uuid.NewString}
}

// Reduce applies one action to the state and returns the resulting value.
// It never mutates its input: the work happens on a deep clone, and on error
// the original value is returned unchanged.
func Reduce(st AppState, action Action, env Env) (AppState, error) {
	next := st.Clone()
	next.normalize()
	if err := apply(&next, action, env); err != nil {
		return st, err
	}
	return next, nil
}

func apply(st *AppState, action Action, env Env) error {
	switch a := action.(type) {
	case Login:
		return applyLogin(st, a, env)
	case Logout:
		return applyLogout(st, a, env)
	case RegisterUser:
		return applyRegisterUser(st, a, env)
	case ApproveUser:
		return applyApproveUser(st, a, env)
	case UpdateProfile:
		return applyUpdateProfile(st, a, env)
	case CreateAccountRequest:
		return applyCreateAccountRequest(st, a, env)
	case ResolveAccountRequest:
		return applyResolveAccountRequest(st, a, env)
	case UpdateStock:
		return applyUpdateStock(st, a, env)
	case AddProductionReport:
		return applyAddProductionReport(st, a, env)
	case ReceiveProductionGoods:
		return applyReceiveProductionGoods(st, a, env)
	case ReplaceMaterials:
		return requireActor(a.Actor, func() error {
			st.Materials = cloneSlice(a.Materials)
			return nil
		})
	case ReplaceGarmentPatterns:
		return requireActor(a.Actor, func() error {
			st.GarmentPatterns = cloneMap(a.Patterns)
			return nil
		})
	case ReplaceCompanyInfo:
		return requireActor(a.Actor, func() error {
			st.CompanyInfo = a.Info
			return nil
		})
	case ReplaceCart:
		setCart(st, a.CartKey, a.PreOrder, cloneSlice(a.Items))
		return nil
	case TransformCart:
		prev := cloneSlice(getCart(st, a.CartKey, a.PreOrder))
		setCart(st, a.CartKey, a.PreOrder, a.Transform(prev))
		return nil
	case PlaceOnlineOrder:
		return applyPlaceOrder(st, a.Actor, a.CartKey, a.Info, false, env)
	case PlacePreOrder:
		return applyPlaceOrder(st, a.Actor, a.CartKey, a.Info, true, env)
	case ApprovePayment:
		return applyApprovePayment(st, a, env)
	case UpdateOrderStatus:
		return applyUpdateOrderStatus(st, a, env)
	case DispatchOnlineOrder:
		return applyDispatchOrder(st, a, env)
	case AddAttendance:
		return applyAddAttendance(st, a, env)
	case ClockOut:
		return applyClockOut(st, a, env)
	case AddPrayerRecord:
		return applyAddPrayerRecord(st, a, env)
	case SubmitSurvey:
		return applySubmitSurvey(st, a, env)
	case AddPayrollEntry:
		return requireActor(a.Actor, func() error {
			st.PayrollHistory = append(st.PayrollHistory, a.Entry)
			return nil
		})
	case ConfirmPayroll:
		return applyConfirmPayroll(st, a, env)
	case SubmitWarrantyClaim:
		return applySubmitWarrantyClaim(st, a, env)
	case UpdateWarrantyClaimStatus:
		return applyUpdateWarrantyClaimStatus(st, a, env)
	case SendChatMessage:
		return applySendChatMessage(st, a, env)
	case MarkChatRead:
		return applyMarkChatRead(st, a)
	case AddActivity:
		return requireActor(a.Actor, func() error {
			addActivity(st, a.Actor, a.Type, a.Description, a.RelatedID, env)
			return nil
		})
	default:
		return fmt.Errorf("%w: %T", ErrUnknownAction, action)
	}
}

func requireActor(actor Actor, fn func() error) error {
	if actor.IsZero() {
		return ErrNoActiveSession
	}
	return fn()
}

// addActivity prepends an audit row, keeping only the most recent entries.
// A zero actor is recorded as "system".
func addActivity(st *AppState, actor Actor, typ, description, relatedID string, env Env) {
	userID := "system"
	if !actor.IsZero() {
		userID = actor.UserID
	}
	entry := model.ActivityLog{
		ID:          env.NewID(),
		Timestamp:   env.Now(),
		UserID:      userID,
		Type:        typ,
		Description: description,
		RelatedID:   relatedID,
	}
	log := append([]model.ActivityLog{entry}, st.ActivityLog...)
	if len(log) > model.ActivityLogCap {
		log = log[:model.ActivityLogCap]
	}
	st.ActivityLog = log
}

// addStockHistory prepends one ledger row. finalStock is the balance right
// after the mutation, so the ledger invariant finalStock = previous + delta
// holds by construction.
func addStockHistory(st *AppState, actor Actor, itemID, itemName, typ string, delta, finalStock int, notes string, env Env) {
	userID := "system"
	if !actor.IsZero() {
		userID = actor.UserID
	}
	entry := model.StockHistoryEntry{
		ID:          env.NewID(),
		Timestamp:   env.Now(),
		ProductID:   itemID,
		ProductName: itemName,
		Type:        typ,
		Quantity:    delta,
		FinalStock:  finalStock,
		Source:      notes,
		UserID:      userID,
	}
	st.StockHistory = append([]model.StockHistoryEntry{entry}, st.StockHistory...)
}

// recalculateScores recomputes performance scores for every qualifying user
// from the accumulated attendance and prayer records.
func recalculateScores(st *AppState) {
	for i := range st.Users {
		u := &st.Users[i]
		if !performance.Qualifies(u.Role) {
			continue
		}
		score, history := performance.Calculate(u.ID.String(), st.AttendanceRecords, st.PrayerRecords)
		u.PerformanceScore = score
		u.PointHistory = history
	}
}

// nextSeq issues the next sequential display id for a prefix: ORD-0001, …
func nextSeq(st *AppState, prefix string) string {
	st.Sequences[prefix]++
	return fmt.Sprintf("%s-%04d", prefix, st.Sequences[prefix])
}

func getCart(st *AppState, key string, preOrder bool) []model.SaleItem {
	if preOrder {
		return st.PreOrderCarts[key]
	}
	return st.Carts[key]
}

func setCart(st *AppState, key string, preOrder bool, items []model.SaleItem) {
	if preOrder {
		st.PreOrderCarts[key] = items
		return
	}
	st.Carts[key] = items
}

// ── Session & accounts ───────────────────────────────────────────────────────

// LandingPageFor derives the initial page for a freshly logged-in staff user
// through a fixed priority table: role first, then department, then the
// production default. Customers get none.
func LandingPageFor(u model.User) string {
	switch {
	case u.Role == model.RoleCustomer:
		return ""
	case u.Role == model.RoleSuperAdmin:
		return "recapitulation"
	case u.Role == model.RoleKepalaGudang:
		return "warehouse"
	case u.Role == model.RoleKepalaProduksi:
		return "production"
	case u.Role == model.RoleKepalaPenjualan || u.Role == model.RolePenjualan:
		return "salesCalculator"
	case u.Department == model.DeptGudang:
		return "warehouse"
	case u.Department == model.DeptPenjualan:
		return "salesCalculator"
	default:
		return "production"
	}
}

func applyLogin(st *AppState, a Login, env Env) error {
	user := a.User
	if user.ID == uuid.Nil {
		return fmt.Errorf("%w: user", ErrNotFound)
	}

	// MRU list: drop any previous entry for this user, prepend, cap at 5.
	refs := make([]model.LoginRef, 0, len(st.LastLoggedInUsers)+1)
	refs = append(refs, model.LoginRef{UserID: user.ID, Username: user.Username})
	for _, ref := range st.LastLoggedInUsers {
		if ref.UserID != user.ID {
			refs = append(refs, ref)
		}
	}
	if len(refs) > 5 {
		refs = refs[:5]
	}
	st.LastLoggedInUsers = refs

	actor := Actor{UserID: user.ID.String(), Username: user.Username}
	addActivity(st, actor, model.ActivityAccount,
		fmt.Sprintf("Pengguna %s berhasil login.", user.Username), "", env)
	return nil
}

func applyLogout(st *AppState, a Logout, env Env) error {
	if a.Actor.IsZero() {
		return nil
	}
	delete(st.Carts, a.Actor.UserID)
	delete(st.PreOrderCarts, a.Actor.UserID)
	addActivity(st, a.Actor, model.ActivityAccount,
		fmt.Sprintf("Pengguna %s logout.", a.Actor.Username), "", env)
	return nil
}

func applyRegisterUser(st *AppState, a RegisterUser, env Env) error {
	st.Users = append(st.Users, cloneUser(a.User))
	actor := Actor{UserID: a.User.ID.String(), Username: a.User.Username}
	addActivity(st, actor, model.ActivityAccount,
		fmt.Sprintf("Akun baru mendaftar: %s", a.User.Username), a.User.ID.String(), env)
	return nil
}

func applyApproveUser(st *AppState, a ApproveUser, env Env) error {
	if a.Actor.IsZero() {
		return ErrNoActiveSession
	}
	user := st.userByID(a.UserID)
	if user == nil {
		return fmt.Errorf("%w: user %s", ErrNotFound, a.UserID)
	}
	user.IsApproved = true
	if a.Role != "" {
		user.Role = a.Role
	}
	if a.Department != "" {
		user.Department = a.Department
	}
	user.UpdatedAt = env.Now()
	addActivity(st, a.Actor, model.ActivityAccount,
		fmt.Sprintf("Menyetujui akun %s.", user.Username), a.UserID, env)
	return nil
}

func applyUpdateProfile(st *AppState, a UpdateProfile, env Env) error {
	if a.Actor.IsZero() {
		return ErrNoActiveSession
	}
	if a.User.ID.String() != a.Actor.UserID {
		return ErrForbidden
	}
	user := st.userByID(a.Actor.UserID)
	if user == nil {
		return fmt.Errorf("%w: user %s", ErrNotFound, a.Actor.UserID)
	}
	updated := cloneUser(a.User)
	// Credential, approval and score fields are not profile-editable.
	updated.PasswordHash = user.PasswordHash
	updated.Role = user.Role
	updated.IsApproved = user.IsApproved
	updated.PerformanceScore = user.PerformanceScore
	updated.PointHistory = user.PointHistory
	updated.CreatedAt = user.CreatedAt
	updated.UpdatedAt = env.Now()
	*user = updated
	addActivity(st, a.Actor, model.ActivityAccount, "Memperbarui profil pribadi.", "", env)
	return nil
}

func applyCreateAccountRequest(st *AppState, a CreateAccountRequest, env Env) error {
	st.AccountChangeRequests = append(st.AccountChangeRequests, model.AccountChangeRequest{
		ID:          env.NewID(),
		UserID:      a.UserID,
		Username:    a.Username,
		Type:        a.Type,
		Status:      model.RequestPending,
		RequestedAt: env.Now(),
	})
	return nil
}

func applyResolveAccountRequest(st *AppState, a ResolveAccountRequest, env Env) error {
	if a.Actor.IsZero() {
		return ErrNoActiveSession
	}
	var req *model.AccountChangeRequest
	for i := range st.AccountChangeRequests {
		if st.AccountChangeRequests[i].ID == a.RequestID {
			req = &st.AccountChangeRequests[i]
			break
		}
	}
	if req == nil {
		return fmt.Errorf("%w: request %s", ErrNotFound, a.RequestID)
	}
	if req.Status != model.RequestPending {
		return ErrAlreadyResolved
	}
	now := env.Now()
	req.ResolvedAt = &now
	req.ResolvedBy = a.Actor.UserID
	if !a.Approve {
		req.Status = model.RequestRejected
		return nil
	}
	req.Status = model.RequestApproved
	if req.Type == model.RequestPasswordReset && a.NewPasswordHash != "" {
		user := st.userByID(req.UserID)
		if user == nil {
			return fmt.Errorf("%w: user %s", ErrNotFound, req.UserID)
		}
		user.PasswordHash = a.NewPasswordHash
		user.UpdatedAt = now
	}
	addActivity(st, a.Actor, model.ActivityAccount,
		fmt.Sprintf("Menyelesaikan permintaan akun %s.", req.Username), req.ID, env)
	return nil
}

// ── Inventory & production ───────────────────────────────────────────────────

func applyUpdateStock(st *AppState, a UpdateStock, env Env) error {
	if a.Actor.IsZero() {
		return ErrNoActiveSession
	}
	for _, upd := range a.Entries {
		// Materials are searched first; an item id is unique across both
		// collections so first match wins.
		applied := false
		for i := range st.Materials {
			if st.Materials[i].ID == upd.ItemID {
				st.Materials[i].Stock += upd.QuantityChange
				addStockHistory(st, a.Actor, upd.ItemID, st.Materials[i].Name,
					upd.Type, upd.QuantityChange, st.Materials[i].Stock, upd.Notes, env)
				applied = true
				break
			}
		}
		if applied {
			continue
		}
		for i := range st.FinishedGoods {
			if st.FinishedGoods[i].ID == upd.ItemID {
				st.FinishedGoods[i].Stock += upd.QuantityChange
				addStockHistory(st, a.Actor, upd.ItemID, st.FinishedGoods[i].DisplayName(),
					upd.Type, upd.QuantityChange, st.FinishedGoods[i].Stock, upd.Notes, env)
				applied = true
				break
			}
		}
		if !applied {
			return fmt.Errorf("%w: item %s", ErrNotFound, upd.ItemID)
		}
	}
	return nil
}

func applyAddProductionReport(st *AppState, a AddProductionReport, env Env) error {
	if a.Actor.IsZero() {
		return ErrNoActiveSession
	}
	report := cloneReport(a.Report)
	if report.ID == "" {
		report.ID = nextSeq(st, "PRD")
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = env.Now()
	}
	st.ProductionReports = append(st.ProductionReports, report)
	return nil
}

func applyReceiveProductionGoods(st *AppState, a ReceiveProductionGoods, env Env) error {
	if a.Actor.IsZero() {
		return ErrNoActiveSession
	}
	var report *model.ProductionReport
	for i := range st.ProductionReports {
		if st.ProductionReports[i].ID == a.ReportID {
			report = &st.ProductionReports[i]
			break
		}
	}
	if report == nil {
		return fmt.Errorf("%w: production report %s", ErrNotFound, a.ReportID)
	}
	if report.IsReceivedInWarehouse {
		return ErrAlreadyReceived
	}

	pattern, hasPattern := st.GarmentPatterns[report.SelectedGarment]
	if !hasPattern {
		// The catalog may be keyed by an internal id with the garment name in
		// the title; fall back to a title scan.
		for _, p := range st.GarmentPatterns {
			if p.Title == report.SelectedGarment {
				pattern, hasPattern = p, true
				break
			}
		}
	}

	notes := fmt.Sprintf("Masuk dari produksi #%s", report.ID)
	for _, line := range report.Output {
		goodID := model.GoodKey(report.SelectedGarment, line.Model, line.Size, line.ColorName)

		var good *model.FinishedGood
		for i := range st.FinishedGoods {
			if st.FinishedGoods[i].ID == goodID {
				good = &st.FinishedGoods[i]
				break
			}
		}
		if good != nil {
			good.Stock += line.Quantity
			addStockHistory(st, a.Actor, goodID, good.DisplayName(),
				model.StockTypeInProduction, line.Quantity, good.Stock, notes, env)
			continue
		}

		weight := model.DefaultGoodWeightGrams
		if hasPattern && pattern.DefaultWeightGrams > 0 {
			weight = pattern.DefaultWeightGrams
		}
		name := report.SelectedGarment
		if line.Model != "" {
			name = fmt.Sprintf("%s %s", report.SelectedGarment, line.Model)
		}
		created := model.FinishedGood{
			ID:                 goodID,
			ProductionReportID: report.ID,
			Name:               name,
			Model:              line.Model,
			Size:               line.Size,
			ColorName:          line.ColorName,
			ColorCode:          line.ColorCode,
			Stock:              line.Quantity,
			HPP:                report.HPPPerGarment,
			SellingPrice:       report.SellingPricePerUnit,
			WeightGrams:        weight,
		}
		st.FinishedGoods = append(st.FinishedGoods, created)
		addStockHistory(st, a.Actor, goodID, created.DisplayName(),
			model.StockTypeInProduction, line.Quantity, created.Stock, notes, env)
	}

	report.IsReceivedInWarehouse = true
	addActivity(st, a.Actor, model.ActivityWarehouse,
		fmt.Sprintf("Menerima barang dari produksi #%s", report.ID), report.ID, env)
	return nil
}

// ── Orders ───────────────────────────────────────────────────────────────────

func applyPlaceOrder(st *AppState, actor Actor, cartKey string, info model.OnlineOrder, preOrder bool, env Env) error {
	items := getCart(st, cartKey, preOrder)
	if len(items) == 0 {
		return ErrEmptyCart
	}

	order := info
	order.Items = cloneSlice(items)
	order.Timestamp = env.Now()
	order.CustomerID = actor.UserID
	if preOrder {
		order.ID = nextSeq(st, "PO")
		order.OrderType = model.OrderTypePO
		order.Status = model.StatusPendingDP
		subtotal := model.Subtotal(order.Items)
		downPayment := subtotal.Div(decimal.NewFromInt(2))
		remaining := subtotal.Sub(downPayment)
		order.DownPayment = &downPayment
		order.RemainingPayment = &remaining
	} else {
		order.ID = nextSeq(st, "ORD")
		order.OrderType = model.OrderTypeDirect
		order.Status = model.StatusPendingPayment
	}
	order.History = []model.StatusChange{{
		Status:    order.Status,
		Timestamp: env.Now(),
		UserID:    actor.UserID,
	}}

	st.OnlineOrders = append([]model.OnlineOrder{order}, st.OnlineOrders...)
	setCart(st, cartKey, preOrder, nil)
	return nil
}

// transitionOrder enforces the forward-only state machine and appends exactly
// one history row for the accepted move.
func transitionOrder(order *model.OnlineOrder, to model.OrderStatus, actor Actor, env Env) error {
	if !model.CanTransition(order.OrderType, order.Status, to) {
		return fmt.Errorf("%w: %s → %s (%s)", ErrInvalidTransition, order.Status, to, order.OrderType)
	}
	order.Status = to
	order.History = append(order.History, model.StatusChange{
		Status:    to,
		Timestamp: env.Now(),
		UserID:    actor.UserID,
	})
	return nil
}

func applyApprovePayment(st *AppState, a ApprovePayment, env Env) error {
	if a.Actor.IsZero() {
		return ErrNoActiveSession
	}
	order := st.orderByID(a.OrderID)
	if order == nil {
		return fmt.Errorf("%w: order %s", ErrNotFound, a.OrderID)
	}
	if err := transitionOrder(order, model.StatusPendingGudang, a.Actor, env); err != nil {
		return err
	}
	addActivity(st, a.Actor, model.ActivityWarehouse,
		fmt.Sprintf("Menyetujui pembayaran untuk pesanan #%s", order.ID), order.ID, env)
	return nil
}

func applyUpdateOrderStatus(st *AppState, a UpdateOrderStatus, env Env) error {
	if a.Actor.IsZero() {
		return ErrNoActiveSession
	}
	order := st.orderByID(a.OrderID)
	if order == nil {
		return fmt.Errorf("%w: order %s", ErrNotFound, a.OrderID)
	}
	if err := transitionOrder(order, a.Status, a.Actor, env); err != nil {
		return err
	}
	if a.AssigneeID != "" {
		order.AssignedTo = a.AssigneeID
	}
	if a.EstimatedCompletion != "" {
		order.EstimatedCompletion = a.EstimatedCompletion
	}
	return nil
}

func applyDispatchOrder(st *AppState, a DispatchOnlineOrder, env Env) error {
	if a.Actor.IsZero() {
		return ErrNoActiveSession
	}
	order := st.orderByID(a.OrderID)
	if order == nil {
		return fmt.Errorf("%w: order %s", ErrNotFound, a.OrderID)
	}
	if err := transitionOrder(order, model.StatusSiapKirim, a.Actor, env); err != nil {
		return err
	}
	order.TrackingNumber = a.TrackingNumber
	if a.Courier != "" {
		order.Courier = a.Courier
	}

	subtotal := model.Subtotal(order.Items)
	sale := model.Sale{
		ID:           nextSeq(st, "INV"),
		Timestamp:    env.Now(),
		UserID:       a.Actor.UserID,
		CustomerName: order.CustomerName,
		Items:        cloneSlice(order.Items),
		Result: model.SaleResult{
			Subtotal:       subtotal,
			DiscountAmount: decimal.Zero,
			TaxAmount:      decimal.Zero,
			GrandTotal:     subtotal,
		},
		Type:          "online",
		Status:        string(model.StatusSelesai),
		OnlineOrderID: order.ID,
	}
	st.Sales = append([]model.Sale{sale}, st.Sales...)

	addActivity(st, a.Actor, model.ActivityWarehouse,
		fmt.Sprintf("Mengirim pesanan online #%s", order.ID), order.ID, env)
	return nil
}

// ── Attendance, prayer, payroll, survey ──────────────────────────────────────

func applyAddAttendance(st *AppState, a AddAttendance, env Env) error {
	if a.Actor.IsZero() {
		return ErrNoActiveSession
	}
	now := env.Now()
	date := now.Format("2006-01-02")
	for _, rec := range st.AttendanceRecords {
		if rec.UserID == a.Actor.UserID && rec.Date == date {
			return ErrAlreadyClockedIn
		}
	}
	st.AttendanceRecords = append(st.AttendanceRecords, model.AttendanceRecord{
		ID:               env.NewID(),
		UserID:           a.Actor.UserID,
		Date:             date,
		Status:           a.Status,
		Proof:            a.Proof,
		ClockInTimestamp: now,
	})
	addActivity(st, a.Actor, model.ActivityAbsensi,
		fmt.Sprintf("Mencatat kehadiran sebagai %s", a.Status), "", env)
	recalculateScores(st)
	return nil
}

func applyClockOut(st *AppState, a ClockOut, env Env) error {
	if a.Actor.IsZero() {
		return ErrNoActiveSession
	}
	at := a.At
	if at.IsZero() {
		at = env.Now()
	}
	for i := range st.AttendanceRecords {
		rec := &st.AttendanceRecords[i]
		if rec.ID == a.AttendanceID {
			if rec.UserID != a.Actor.UserID {
				return ErrForbidden
			}
			rec.ClockOutTimestamp = &at
			return nil
		}
	}
	return fmt.Errorf("%w: attendance %s", ErrNotFound, a.AttendanceID)
}

func applyAddPrayerRecord(st *AppState, a AddPrayerRecord, env Env) error {
	if a.Actor.IsZero() {
		return ErrNoActiveSession
	}
	now := env.Now()
	status := model.PrayerOnTime
	if prayer.IsLate(a.PrayerName, now) {
		status = model.PrayerLate
	}
	st.PrayerRecords = append(st.PrayerRecords, model.PrayerRecord{
		ID:         env.NewID(),
		UserID:     a.Actor.UserID,
		Date:       now.Format("2006-01-02"),
		PrayerName: a.PrayerName,
		Timestamp:  now,
		PhotoProof: a.PhotoProof,
		Status:     status,
	})
	recalculateScores(st)
	return nil
}

func applySubmitSurvey(st *AppState, a SubmitSurvey, env Env) error {
	if a.Actor.IsZero() {
		return ErrNoActiveSession
	}
	now := env.Now()
	st.SurveyResponses = append(st.SurveyResponses, model.SurveyResponse{
		ID:          env.NewID(),
		SurveyID:    "annual",
		UserID:      a.Actor.UserID,
		SubmittedAt: now,
		Answers:     cloneMap(a.Answers),
	})
	if user := st.userByID(a.Actor.UserID); user != nil {
		user.LastSurveyDate = &now
	}
	return nil
}

func applyConfirmPayroll(st *AppState, a ConfirmPayroll, env Env) error {
	if a.Actor.IsZero() {
		return ErrNoActiveSession
	}
	for i := range st.PayrollHistory {
		entry := &st.PayrollHistory[i]
		if entry.ID != a.PayrollID {
			continue
		}
		if entry.UserID != a.Actor.UserID {
			return ErrForbidden
		}
		if entry.Status == model.PayrollConfirmed {
			return ErrAlreadyConfirmed
		}
		now := env.Now()
		entry.Status = model.PayrollConfirmed
		entry.ConfirmedAt = &now
		return nil
	}
	return fmt.Errorf("%w: payroll %s", ErrNotFound, a.PayrollID)
}

// ── Warranty & chat ──────────────────────────────────────────────────────────

func applySubmitWarrantyClaim(st *AppState, a SubmitWarrantyClaim, env Env) error {
	if a.Actor.IsZero() {
		return ErrNoActiveSession
	}
	st.WarrantyClaims = append(st.WarrantyClaims, model.WarrantyClaim{
		ID:         env.NewID(),
		OrderID:    a.OrderID,
		CustomerID: a.Actor.UserID,
		Reason:     a.Reason,
		PhotoURL:   a.PhotoURL,
		Status:     model.ClaimPending,
	})
	return nil
}

func applyUpdateWarrantyClaimStatus(st *AppState, a UpdateWarrantyClaimStatus, env Env) error {
	if a.Actor.IsZero() {
		return ErrNoActiveSession
	}
	for i := range st.WarrantyClaims {
		claim := &st.WarrantyClaims[i]
		if claim.ID != a.ClaimID {
			continue
		}
		now := env.Now()
		claim.Status = a.Status
		claim.AdminNotes = a.AdminNotes
		claim.ReviewedBy = a.Actor.UserID
		claim.ReviewedAt = &now
		return nil
	}
	return fmt.Errorf("%w: warranty claim %s", ErrNotFound, a.ClaimID)
}

func applySendChatMessage(st *AppState, a SendChatMessage, env Env) error {
	if a.Actor.IsZero() {
		return ErrNoActiveSession
	}
	thread, ok := st.Chats[a.CustomerID]
	if !ok {
		name := "Pelanggan"
		if customer := st.userByID(a.CustomerID); customer != nil && customer.FullName != "" {
			name = customer.FullName
		}
		thread = model.ChatThread{CustomerName: name}
	}
	msg := model.ChatMessage{
		ID:        env.NewID(),
		Sender:    a.Sender,
		Text:      a.Text,
		Timestamp: env.Now(),
	}
	// The sender has trivially read their own message.
	switch a.Sender {
	case model.ChatReaderAdmin:
		msg.ReadByAdmin = true
	case model.ChatReaderCustomer:
		msg.ReadByCustomer = true
	}
	thread.Messages = append(thread.Messages, msg)
	st.Chats[a.CustomerID] = thread
	return nil
}

func applyMarkChatRead(st *AppState, a MarkChatRead) error {
	thread, ok := st.Chats[a.CustomerID]
	if !ok {
		return nil
	}
	// Every message gets the flag, not only unread ones; re-marking is
	// idempotent on purpose.
	for i := range thread.Messages {
		switch a.Reader {
		case model.ChatReaderAdmin:
			thread.Messages[i].ReadByAdmin = true
		case model.ChatReaderCustomer:
			thread.Messages[i].ReadByCustomer = true
		}
	}
	st.Chats[a.CustomerID] = thread
	return nil
}
