package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ClockInRequest struct {
	Status string `json:"status" validate:"required,oneof=hadir sakit izin"`
	Proof  string `json:"proof"  validate:"omitempty,url"`
}

type PrayerLogRequest struct {
	Prayer     string `json:"prayer"      validate:"required,oneof=Subuh Dzuhur Ashar Maghrib Isya"`
	PhotoProof string `json:"photo_proof" validate:"omitempty,url"`
}

type SurveyRequest struct {
	Answers map[string]string `json:"answers" validate:"required,min=1"`
}

type PayrollEntryRequest struct {
	UserID     string          `json:"user_id"    validate:"required,uuid"`
	Period     string          `json:"period"     validate:"required"`
	BaseSalary decimal.Decimal `json:"base_salary" validate:"required"`
	Bonus      decimal.Decimal `json:"bonus"       validate:"omitempty"`
	Deductions decimal.Decimal `json:"deductions"  validate:"omitempty"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PerformanceResponse struct {
	UserID string              `json:"user_id"`
	Score  int                 `json:"score"`
	Events []PointEventResponse `json:"events"`
}

type PointEventResponse struct {
	Points    int    `json:"points"`
	Reason    string `json:"reason"`
	Timestamp string `json:"timestamp"`
}
