package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SendChatMessageRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
	// CustomerID targets a thread; required only for admin senders.
	CustomerID string `json:"customer_id" validate:"omitempty"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ChatMessageResponse struct {
	ID             string `json:"id"`
	Sender         string `json:"sender"`
	Text           string `json:"text"`
	Timestamp      string `json:"timestamp"`
	ReadByAdmin    bool   `json:"read_by_admin"`
	ReadByCustomer bool   `json:"read_by_customer"`
}

type ChatThreadResponse struct {
	CustomerID   string                `json:"customer_id"`
	CustomerName string                `json:"customer_name"`
	Messages     []ChatMessageResponse `json:"messages"`
	UnreadCount  int                   `json:"unread_count"`
}
