package service

import (
	"context"
	"time"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/dto"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/store"
)

type HRService interface {
	ClockIn(ctx context.Context, actor store.Actor, req dto.ClockInRequest) error
	ClockOut(ctx context.Context, actor store.Actor, attendanceID string) error
	ListAttendance(ctx context.Context) []model.AttendanceRecord
	LogPrayer(ctx context.Context, actor store.Actor, req dto.PrayerLogRequest) error
	ListPrayers(ctx context.Context) []model.PrayerRecord
	SubmitSurvey(ctx context.Context, actor store.Actor, req dto.SurveyRequest) error
	AddPayrollEntry(ctx context.Context, actor store.Actor, req dto.PayrollEntryRequest) error
	ConfirmPayroll(ctx context.Context, actor store.Actor, payrollID string) error
	ListPayroll(ctx context.Context) []model.PayrollEntry
	Performance(ctx context.Context, userID string) (dto.PerformanceResponse, error)
}

type hrService struct {
	st *store.Store
}

func NewHRService(st *store.Store) HRService {
	return &hrService{st: st}
}

func (s *hrService) ClockIn(ctx context.Context, actor store.Actor, req dto.ClockInRequest) error {
	return s.st.Dispatch(store.AddAttendance{Actor: actor, Status: req.Status, Proof: req.Proof})
}

func (s *hrService) ClockOut(ctx context.Context, actor store.Actor, attendanceID string) error {
	return s.st.Dispatch(store.ClockOut{Actor: actor, AttendanceID: attendanceID})
}

func (s *hrService) ListAttendance(ctx context.Context) []model.AttendanceRecord {
	out := []model.AttendanceRecord{}
	s.st.View(func(st *store.AppState) {
		out = append(out, st.AttendanceRecords...)
	})
	return out
}

func (s *hrService) LogPrayer(ctx context.Context, actor store.Actor, req dto.PrayerLogRequest) error {
	return s.st.Dispatch(store.AddPrayerRecord{
		Actor:      actor,
		PrayerName: req.Prayer,
		PhotoProof: req.PhotoProof,
	})
}

func (s *hrService) ListPrayers(ctx context.Context) []model.PrayerRecord {
	out := []model.PrayerRecord{}
	s.st.View(func(st *store.AppState) {
		out = append(out, st.PrayerRecords...)
	})
	return out
}

func (s *hrService) SubmitSurvey(ctx context.Context, actor store.Actor, req dto.SurveyRequest) error {
	return s.st.Dispatch(store.SubmitSurvey{Actor: actor, Answers: req.Answers})
}

func (s *hrService) AddPayrollEntry(ctx context.Context, actor store.Actor, req dto.PayrollEntryRequest) error {
	net := req.BaseSalary.Add(req.Bonus).Sub(req.Deductions)
	entry := model.PayrollEntry{
		UserID:     req.UserID,
		Period:     req.Period,
		BaseSalary: req.BaseSalary,
		Bonus:      req.Bonus,
		Deductions: req.Deductions,
		NetSalary:  net,
		Status:     model.PayrollPending,
	}
	return s.st.Dispatch(store.AddPayrollEntry{Actor: actor, Entry: entry})
}

func (s *hrService) ConfirmPayroll(ctx context.Context, actor store.Actor, payrollID string) error {
	return s.st.Dispatch(store.ConfirmPayroll{Actor: actor, PayrollID: payrollID})
}

func (s *hrService) ListPayroll(ctx context.Context) []model.PayrollEntry {
	out := []model.PayrollEntry{}
	s.st.View(func(st *store.AppState) {
		out = append(out, st.PayrollHistory...)
	})
	return out
}

func (s *hrService) Performance(ctx context.Context, userID string) (dto.PerformanceResponse, error) {
	resp := dto.PerformanceResponse{UserID: userID, Events: []dto.PointEventResponse{}}
	err := store.ErrNotFound
	s.st.View(func(st *store.AppState) {
		for _, u := range st.Users {
			if u.ID.String() != userID {
				continue
			}
			err = nil
			resp.Score = u.PerformanceScore
			for _, ev := range u.PointHistory {
				resp.Events = append(resp.Events, dto.PointEventResponse{
					Points:    ev.Points,
					Reason:    ev.Reason,
					Timestamp: ev.Timestamp.Format(time.RFC3339),
				})
			}
			return
		}
	})
	return resp, err
}
