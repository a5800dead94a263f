package performance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"
)

func TestQualifies(t *testing.T) {
	assert.True(t, Qualifies(model.RolePenjualan))
	assert.True(t, Qualifies(model.RoleKepalaGudang))
	assert.False(t, Qualifies(model.RoleCustomer))
	assert.False(t, Qualifies(model.RoleSuperAdmin))
	assert.False(t, Qualifies(model.RolePending))
}

func TestCalculateMixedRecords(t *testing.T) {
	attendance := []model.AttendanceRecord{
		{UserID: "u-1", Date: "2026-03-02", Status: model.AttendanceHadir},
		{UserID: "u-1", Date: "2026-03-03", Status: model.AttendanceSakit},
		{UserID: "u-1", Date: "2026-03-04", Status: model.AttendanceIzin},
		{UserID: "u-2", Date: "2026-03-02", Status: model.AttendanceHadir}, // other user
	}
	prayers := []model.PrayerRecord{
		{UserID: "u-1", PrayerName: model.PrayerDzuhur, Status: model.PrayerOnTime},
		{UserID: "u-1", PrayerName: model.PrayerAshar, Status: model.PrayerLate},
	}

	score, history := Calculate("u-1", attendance, prayers)

	// 100 + 2 (hadir) + 1 (sakit) + 0 (izin) + 1 (on time) - 1 (late)
	assert.Equal(t, 103, score)
	assert.Len(t, history, 5)
	assert.Equal(t, "Absensi hadir (2026-03-02)", history[0].Reason)
	assert.Equal(t, "Sholat Ashar terlambat", history[4].Reason)
	assert.Equal(t, -1, history[4].Points)
}

func TestCalculateNeverGoesNegative(t *testing.T) {
	prayers := make([]model.PrayerRecord, 0, BaseScore+10)
	for i := 0; i < BaseScore+10; i++ {
		prayers = append(prayers, model.PrayerRecord{
			UserID: "u-1", PrayerName: model.PrayerSubuh, Status: model.PrayerLate,
		})
	}
	score, _ := Calculate("u-1", nil, prayers)
	assert.Equal(t, 0, score)
}

func TestCalculateNoRecords(t *testing.T) {
	score, history := Calculate("u-1", nil, nil)
	assert.Equal(t, BaseScore, score)
	assert.Empty(t, history)
}
