package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attendance statuses.
const (
	AttendanceHadir = "hadir"
	AttendanceIzin  = "izin"
	AttendanceSakit = "sakit"
)

// AttendanceRecord is one clock-in per user per day. Clock-out mutates the
// record in place; everything else is write-once.
type AttendanceRecord struct {
	ID                string     `json:"id"`
	UserID            string     `json:"userId"`
	Date              string     `json:"date"` // YYYY-MM-DD
	Status            string     `json:"status"`
	Proof             string     `json:"proof,omitempty"`
	ClockInTimestamp  time.Time  `json:"clockInTimestamp"`
	ClockOutTimestamp *time.Time `json:"clockOutTimestamp,omitempty"`
}

// Canonical daily prayers.
const (
	PrayerSubuh   = "Subuh"
	PrayerDzuhur  = "Dzuhur"
	PrayerAshar   = "Ashar"
	PrayerMaghrib = "Maghrib"
	PrayerIsya    = "Isya"
)

// Prayer record statuses.
const (
	PrayerOnTime = "on_time"
	PrayerLate   = "late"
)

// PrayerRecord is a proof-of-prayer entry feeding the performance score.
// Status is late when the entry was logged more than the tolerance after the
// canonical prayer time.
type PrayerRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Date       string    `json:"date"` // YYYY-MM-DD
	PrayerName string    `json:"prayerName"`
	Timestamp  time.Time `json:"timestamp"`
	PhotoProof string    `json:"photoProof,omitempty"`
	Status     string    `json:"status"`
}

// Payroll statuses.
const (
	PayrollPending   = "pending"
	PayrollConfirmed = "confirmed"
)

// PayrollEntry is a monthly salary line an employee must confirm receipt of.
type PayrollEntry struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Period      string          `json:"period"` // YYYY-MM
	BaseSalary  decimal.Decimal `json:"baseSalary"`
	Bonus       decimal.Decimal `json:"bonus"`
	Deductions  decimal.Decimal `json:"deductions"`
	NetSalary   decimal.Decimal `json:"netSalary"`
	Status      string          `json:"status"`
	ConfirmedAt *time.Time      `json:"confirmedAt,omitempty"`
}

// SurveyResponse records one user's answers to the annual survey.
type SurveyResponse struct {
	ID          string            `json:"id"`
	SurveyID    string            `json:"surveyId"`
	UserID      string            `json:"userId"`
	SubmittedAt time.Time         `json:"submittedAt"`
	Answers     map[string]string `json:"answers"`
}
