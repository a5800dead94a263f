package model

import "time"

// ActivityLogCap bounds the global audit trail to the most recent entries.
const ActivityLogCap = 500

// Activity categories used across the app.
const (
	ActivityAccount   = "Manajemen Akun"
	ActivityWarehouse = "Gudang"
	ActivityAbsensi   = "Absensi"
	ActivityOrder     = "Pesanan"
)

// ActivityLog is one row of the global append-only audit trail, newest first.
type ActivityLog struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	UserID      string    `json:"userId"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	RelatedID   string    `json:"relatedId,omitempty"`
}

// Account change request lifecycle. A request transitions pending →
// approved/rejected exactly once.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// Account change request types.
const (
	RequestPasswordReset = "password_reset"
)

// AccountChangeRequest is an admin-reviewable request such as a password
// reset. A pending password reset blocks login for the requesting user.
type AccountChangeRequest struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Username    string     `json:"username"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requestedAt"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
	ResolvedBy  string     `json:"resolvedBy,omitempty"`
}

// Warranty claim statuses.
const (
	ClaimPending  = "pending"
	ClaimApproved = "approved"
	ClaimRejected = "rejected"
)

// WarrantyClaim is a customer's defect claim against a delivered order.
type WarrantyClaim struct {
	ID         string     `json:"id"`
	OrderID    string     `json:"orderId"`
	CustomerID string     `json:"customerId"`
	Reason     string     `json:"reason"`
	PhotoURL   string     `json:"photoUrl,omitempty"`
	Status     string     `json:"status"`
	AdminNotes string     `json:"adminNotes,omitempty"`
	ReviewedBy string     `json:"reviewedBy,omitempty"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`
}

// Chat readers.
const (
	ChatReaderAdmin    = "admin"
	ChatReaderCustomer = "customer"
)

// ChatMessage is one message of a customer support thread.
type ChatMessage struct {
	ID             string    `json:"id"`
	Sender         string    `json:"sender"` // "admin" | "customer"
	Text           string    `json:"text"`
	Timestamp      time.Time `json:"timestamp"`
	ReadByAdmin    bool      `json:"readByAdmin"`
	ReadByCustomer bool      `json:"readByCustomer"`
}

// ChatThread is the conversation with one customer, created lazily on the
// first message.
type ChatThread struct {
	CustomerName string        `json:"customerName"`
	Messages     []ChatMessage `json:"messages"`
}

// CompanyInfo holds storefront identity and the fixed shipping origin.
type CompanyInfo struct {
	Name             string `json:"name"`
	Address          string `json:"address,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Email            string `json:"email,omitempty"`
	OriginPostalCode string `json:"originPostalCode"`
}
