package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=4"`
	// Surface is the login surface the client presents: "dashboard" or "store".
	Surface string `json:"surface"  validate:"omitempty,oneof=dashboard store"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone"    validate:"omitempty,min=8,max=20"`
	// Role requested at registration; staff roles stay pending until approved.
	Role string `json:"role" validate:"required,oneof=super_admin kepala_gudang kepala_produksi kepala_penjualan penjualan member customer admin"`
}

type ApproveUserRequest struct {
	Role string `json:"role" validate:"required"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"  validate:"omitempty,min=2,max=100"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,min=8,max=20"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UserResponse struct {
	ID               string  `json:"id"`
	Username         string  `json:"username"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone,omitempty"`
	Role             string  `json:"role"`
	Department       string  `json:"department,omitempty"`
	IsApproved       bool    `json:"is_approved"`
	PerformanceScore int     `json:"performance_score"`
	LastSurveyDate   *string `json:"last_survey_date,omitempty"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"` // seconds
	LandingPage  string       `json:"landing_page"`
	User         UserResponse `json:"user"`
}
