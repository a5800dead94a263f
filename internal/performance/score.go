// Package performance computes employee performance scores from attendance
// and prayer records. The calculation is pure: same records, same score.
package performance

import (
	"fmt"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"
)

// Scoring weights. Scores start from a neutral base and accumulate points per
// record; the result never goes below zero.
const (
	BaseScore        = 100
	PointsHadir      = 2
	PointsIzin       = 0
	PointsSakit      = 1
	PointsOnTime     = 1
	PointsLatePrayer = -1
)

// qualifyingRoles are the roles whose score is recomputed on every new
// attendance or prayer record.
var qualifyingRoles = map[string]bool{
	model.RoleMember:          true,
	model.RoleAdmin:           true,
	model.RoleKepalaGudang:    true,
	model.RoleKepalaProduksi:  true,
	model.RoleKepalaPenjualan: true,
	model.RolePenjualan:       true,
}

// Qualifies reports whether a user of the given role carries a performance
// score.
func Qualifies(role string) bool {
	return qualifyingRoles[role]
}

// Calculate derives the score and point history for one user from the full
// record sets. Records belonging to other users are ignored.
func Calculate(userID string, attendance []model.AttendanceRecord, prayers []model.PrayerRecord) (int, []model.PointEvent) {
	var history []model.PointEvent
	score := BaseScore

	for _, rec := range attendance {
		if rec.UserID != userID {
			continue
		}
		points := 0
		switch rec.Status {
		case model.AttendanceHadir:
			points = PointsHadir
		case model.AttendanceSakit:
			points = PointsSakit
		case model.AttendanceIzin:
			points = PointsIzin
		}
		score += points
		history = append(history, model.PointEvent{
			Timestamp: rec.ClockInTimestamp,
			Points:    points,
			Reason:    fmt.Sprintf("Absensi %s (%s)", rec.Status, rec.Date),
		})
	}

	for _, rec := range prayers {
		if rec.UserID != userID {
			continue
		}
		points := PointsOnTime
		reason := fmt.Sprintf("Sholat %s tepat waktu", rec.PrayerName)
		if rec.Status == model.PrayerLate {
			points = PointsLatePrayer
			reason = fmt.Sprintf("Sholat %s terlambat", rec.PrayerName)
		}
		score += points
		history = append(history, model.PointEvent{
			Timestamp: rec.Timestamp,
			Points:    points,
			Reason:    reason,
		})
	}

	if score < 0 {
		score = 0
	}
	return score, history
}
