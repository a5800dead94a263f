package store

import (
	"time"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"
)

// Actor identifies who is performing an action. It is resolved from the
// authenticated session by the service layer; a zero Actor means "no active
// session" and makes user-scoped actions fail closed.
type Actor struct {
	UserID   string
	Username string
}

// IsZero reports whether no authenticated user is attached.
func (a Actor) IsZero() bool { return a.UserID == "" }

// Action is one member of the closed set of state transitions. Kind is the
// stable name used in logs.
type Action interface {
	Kind() string
}

// ── Session & accounts ───────────────────────────────────────────────────────

// Login records a successful authentication: MRU login list update plus an
// audit entry. Credential and approval checks happen in the auth service
// before this action is dispatched.
type Login struct {
	User model.User
}

func (Login) Kind() string { return "LOGIN" }

// Logout clears the actor's carts. With a zero actor it is a no-op.
type Logout struct {
	Actor Actor
}

func (Logout) Kind() string { return "LOGOUT" }

// RegisterUser appends a new, unapproved account.
type RegisterUser struct {
	User model.User
}

func (RegisterUser) Kind() string { return "REGISTER_USER" }

// ApproveUser flips the approval flag and assigns the final role and
// department of a pending account.
type ApproveUser struct {
	Actor      Actor
	UserID     string
	Role       string
	Department string
}

func (ApproveUser) Kind() string { return "APPROVE_USER" }

// UpdateProfile replaces the actor's own profile fields.
type UpdateProfile struct {
	Actor Actor
	User  model.User
}

func (UpdateProfile) Kind() string { return "UPDATE_PROFILE" }

// CreateAccountRequest files an admin-reviewable request (password reset).
type CreateAccountRequest struct {
	UserID   string
	Username string
	Type     string
}

func (CreateAccountRequest) Kind() string { return "CREATE_ACCOUNT_REQUEST" }

// ResolveAccountRequest moves a pending request to approved or rejected,
// exactly once. For an approved password reset NewPasswordHash replaces the
// user's credential.
type ResolveAccountRequest struct {
	Actor           Actor
	RequestID       string
	Approve         bool
	NewPasswordHash string
}

func (ResolveAccountRequest) Kind() string { return "RESOLVE_ACCOUNT_REQUEST" }

// ── Inventory & production ───────────────────────────────────────────────────

// StockUpdate is one entry of an UpdateStock batch.
type StockUpdate struct {
	ItemID         string
	QuantityChange int
	Type           string
	Notes          string
}

// UpdateStock applies a batch of stock deltas. Each entry resolves its item
// among materials first, then finished goods (item ids are unique across
// both), and appends one ledger row carrying the post-update balance.
type UpdateStock struct {
	Actor   Actor
	Entries []StockUpdate
}

func (UpdateStock) Kind() string { return "UPDATE_STOCK" }

// AddProductionReport records a finished production batch awaiting warehouse
// receipt.
type AddProductionReport struct {
	Actor  Actor
	Report model.ProductionReport
}

func (AddProductionReport) Kind() string { return "ADD_PRODUCTION_REPORT" }

// ReceiveProductionGoods reconciles a production report's output lines into
// finished-goods stock and marks the report received.
type ReceiveProductionGoods struct {
	Actor    Actor
	ReportID string
}

func (ReceiveProductionGoods) Kind() string { return "RECEIVE_PRODUCTION_GOODS" }

// ReplaceMaterials wholesale-replaces the raw material catalog.
type ReplaceMaterials struct {
	Actor     Actor
	Materials []model.Material
}

func (ReplaceMaterials) Kind() string { return "REPLACE_MATERIALS" }

// ReplaceGarmentPatterns wholesale-replaces the garment pattern catalog.
type ReplaceGarmentPatterns struct {
	Actor    Actor
	Patterns map[string]model.GarmentPattern
}

func (ReplaceGarmentPatterns) Kind() string { return "REPLACE_GARMENT_PATTERNS" }

// ReplaceCompanyInfo replaces storefront identity and shipping origin.
type ReplaceCompanyInfo struct {
	Actor Actor
	Info  model.CompanyInfo
}

func (ReplaceCompanyInfo) Kind() string { return "REPLACE_COMPANY_INFO" }

// ── Carts & orders ───────────────────────────────────────────────────────────

// ReplaceCart sets a cart to the given items verbatim.
type ReplaceCart struct {
	CartKey  string
	PreOrder bool
	Items    []model.SaleItem
}

func (ReplaceCart) Kind() string { return "REPLACE_CART" }

// TransformCart derives the new cart contents from the previous ones through
// a pure function. The transform must not retain or mutate its argument.
type TransformCart struct {
	CartKey   string
	PreOrder  bool
	Transform func(items []model.SaleItem) []model.SaleItem
}

func (TransformCart) Kind() string { return "TRANSFORM_CART" }

// PlaceOnlineOrder creates a direct order from the cart under CartKey and
// clears that cart. Actor may be zero for guest checkout.
type PlaceOnlineOrder struct {
	Actor   Actor
	CartKey string
	Info    model.OnlineOrder // template: customer, address, payment, shipping
}

func (PlaceOnlineOrder) Kind() string { return "PLACE_ONLINE_ORDER" }

// PlacePreOrder creates a pre-order from the PO cart under CartKey: down
// payment is exactly half the item subtotal, the remainder is stored, and the
// PO cart is cleared.
type PlacePreOrder struct {
	Actor   Actor
	CartKey string
	Info    model.OnlineOrder
}

func (PlacePreOrder) Kind() string { return "PLACE_PO_ORDER" }

// ApprovePayment moves a pending-payment order to pending_gudang.
type ApprovePayment struct {
	Actor   Actor
	OrderID string
}

func (ApprovePayment) Kind() string { return "APPROVE_PAYMENT" }

// UpdateOrderStatus performs a generic forward transition, optionally setting
// the assignee and estimated completion date.
type UpdateOrderStatus struct {
	Actor               Actor
	OrderID             string
	Status              model.OrderStatus
	AssigneeID          string
	EstimatedCompletion string
}

func (UpdateOrderStatus) Kind() string { return "UPDATE_ORDER_STATUS" }

// DispatchOnlineOrder finalizes an order into an immutable sale and moves the
// order to siap_kirim with its tracking number.
type DispatchOnlineOrder struct {
	Actor          Actor
	OrderID        string
	TrackingNumber string
	Courier        string
}

func (DispatchOnlineOrder) Kind() string { return "DISPATCH_ONLINE_ORDER" }

// ── Attendance, prayer, payroll, survey ──────────────────────────────────────

// AddAttendance clocks the actor in for today and recomputes performance
// scores for every qualifying user.
type AddAttendance struct {
	Actor  Actor
	Status string
	Proof  string
}

func (AddAttendance) Kind() string { return "ADD_ATTENDANCE" }

// ClockOut stamps the clock-out time on an existing attendance record.
// A zero At uses the reducer clock.
type ClockOut struct {
	Actor        Actor
	AttendanceID string
	At           time.Time
}

func (ClockOut) Kind() string { return "CLOCK_OUT" }

// AddPrayerRecord logs a prayer with lateness derived from the canonical
// schedule, then recomputes performance scores.
type AddPrayerRecord struct {
	Actor      Actor
	PrayerName string
	PhotoProof string
}

func (AddPrayerRecord) Kind() string { return "ADD_PRAYER_RECORD" }

// SubmitSurvey stores the actor's annual survey response and stamps the
// user's last-survey date.
type SubmitSurvey struct {
	Actor   Actor
	Answers map[string]string
}

func (SubmitSurvey) Kind() string { return "SUBMIT_SURVEY" }

// AddPayrollEntry records a salary line awaiting employee confirmation.
type AddPayrollEntry struct {
	Actor Actor
	Entry model.PayrollEntry
}

func (AddPayrollEntry) Kind() string { return "ADD_PAYROLL_ENTRY" }

// ConfirmPayroll marks the actor's own payroll entry as confirmed.
type ConfirmPayroll struct {
	Actor     Actor
	PayrollID string
}

func (ConfirmPayroll) Kind() string { return "CONFIRM_SALARY" }

// ── Warranty & chat ──────────────────────────────────────────────────────────

// SubmitWarrantyClaim files a customer defect claim.
type SubmitWarrantyClaim struct {
	Actor    Actor
	OrderID  string
	Reason   string
	PhotoURL string
}

func (SubmitWarrantyClaim) Kind() string { return "SUBMIT_WARRANTY_CLAIM" }

// UpdateWarrantyClaimStatus reviews a claim.
type UpdateWarrantyClaimStatus struct {
	Actor      Actor
	ClaimID    string
	Status     string
	AdminNotes string
}

func (UpdateWarrantyClaimStatus) Kind() string { return "UPDATE_WARRANTY_CLAIM_STATUS" }

// SendChatMessage appends to a customer thread, creating it on first use.
type SendChatMessage struct {
	Actor      Actor
	CustomerID string
	Sender     string // "admin" | "customer"
	Text       string
}

func (SendChatMessage) Kind() string { return "SEND_CHAT_MESSAGE" }

// MarkChatRead sets the reader's read flag on every message of the thread.
// Re-marking an already read thread is a deliberate no-op change.
type MarkChatRead struct {
	CustomerID string
	Reader     string
}

func (MarkChatRead) Kind() string { return "MARK_CHAT_AS_READ" }

// AddActivity appends a standalone audit entry.
type AddActivity struct {
	Actor       Actor
	Type        string
	Description string
	RelatedID   string
}

func (AddActivity) Kind() string { return "ADD_ACTIVITY" }
