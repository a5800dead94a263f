// Package store is the single owner of all business state. State is held in
// one aggregate, mutated exclusively through typed actions applied by a pure
// reducer, and observed through subscriber notifications.
package store

import (
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"
)

// AppState is the full business aggregate. The store owns the only
// authoritative copy; everything handed out is a deep clone.
//
// Carts are keyed by cart key (customer user id, or an anonymous session id
// for guest checkout) instead of living in a per-browser session the way the
// storefront once kept them.
type AppState struct {
	Users                 []model.User                    `json:"users"`
	Materials             []model.Material                `json:"materials"`
	FinishedGoods         []model.FinishedGood            `json:"finishedGoods"`
	StockHistory          []model.StockHistoryEntry       `json:"stockHistory"`
	ProductionReports     []model.ProductionReport        `json:"productionReports"`
	GarmentPatterns       map[string]model.GarmentPattern `json:"garmentPatterns"`
	OnlineOrders          []model.OnlineOrder             `json:"onlineOrders"`
	Sales                 []model.Sale                    `json:"sales"`
	Carts                 map[string][]model.SaleItem     `json:"carts"`
	PreOrderCarts         map[string][]model.SaleItem     `json:"poCarts"`
	AttendanceRecords     []model.AttendanceRecord        `json:"attendanceRecords"`
	PrayerRecords         []model.PrayerRecord            `json:"prayerRecords"`
	PayrollHistory        []model.PayrollEntry            `json:"payrollHistory"`
	SurveyResponses       []model.SurveyResponse          `json:"surveyResponses"`
	WarrantyClaims        []model.WarrantyClaim           `json:"warrantyClaims"`
	AccountChangeRequests []model.AccountChangeRequest    `json:"accountChangeRequests"`
	ActivityLog           []model.ActivityLog             `json:"activityLog"`
	Chats                 map[string]model.ChatThread     `json:"chats"`
	LastLoggedInUsers     []model.LoginRef                `json:"lastLoggedInUsers"`
	CompanyInfo           model.CompanyInfo               `json:"companyInfo"`
	// Sequences backs the sequential display ids (ORD-0001, PO-0002, …).
	Sequences map[string]int `json:"sequences"`
}

// NewState returns an empty but fully initialized aggregate.
func NewState() AppState {
	return AppState{
		GarmentPatterns: make(map[string]model.GarmentPattern),
		Carts:           make(map[string][]model.SaleItem),
		PreOrderCarts:   make(map[string][]model.SaleItem),
		Chats:           make(map[string]model.ChatThread),
		Sequences:       make(map[string]int),
	}
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	if in == nil {
		return nil
	}
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneUser(u model.User) model.User {
	u.PointHistory = cloneSlice(u.PointHistory)
	return u
}

func cloneOrder(o model.OnlineOrder) model.OnlineOrder {
	o.Items = cloneSlice(o.Items)
	o.History = cloneSlice(o.History)
	return o
}

func cloneSale(s model.Sale) model.Sale {
	s.Items = cloneSlice(s.Items)
	return s
}

func cloneGood(g model.FinishedGood) model.FinishedGood {
	g.ImageURLs = cloneSlice(g.ImageURLs)
	return g
}

func cloneReport(r model.ProductionReport) model.ProductionReport {
	r.Output = cloneSlice(r.Output)
	return r
}

func cloneThread(t model.ChatThread) model.ChatThread {
	t.Messages = cloneSlice(t.Messages)
	return t
}

// Clone deep-copies the aggregate so the reducer can work on a scratch value
// without ever touching the committed one.
func (s AppState) Clone() AppState {
	out := s

	out.Users = make([]model.User, len(s.Users))
	for i, u := range s.Users {
		out.Users[i] = cloneUser(u)
	}
	out.Materials = cloneSlice(s.Materials)
	out.FinishedGoods = make([]model.FinishedGood, len(s.FinishedGoods))
	for i, g := range s.FinishedGoods {
		out.FinishedGoods[i] = cloneGood(g)
	}
	out.StockHistory = cloneSlice(s.StockHistory)
	out.ProductionReports = make([]model.ProductionReport, len(s.ProductionReports))
	for i, r := range s.ProductionReports {
		out.ProductionReports[i] = cloneReport(r)
	}
	out.GarmentPatterns = cloneMap(s.GarmentPatterns)
	out.OnlineOrders = make([]model.OnlineOrder, len(s.OnlineOrders))
	for i, o := range s.OnlineOrders {
		out.OnlineOrders[i] = cloneOrder(o)
	}
	out.Sales = make([]model.Sale, len(s.Sales))
	for i, sl := range s.Sales {
		out.Sales[i] = cloneSale(sl)
	}
	out.Carts = make(map[string][]model.SaleItem, len(s.Carts))
	for k, v := range s.Carts {
		out.Carts[k] = cloneSlice(v)
	}
	out.PreOrderCarts = make(map[string][]model.SaleItem, len(s.PreOrderCarts))
	for k, v := range s.PreOrderCarts {
		out.PreOrderCarts[k] = cloneSlice(v)
	}
	out.AttendanceRecords = cloneSlice(s.AttendanceRecords)
	out.PrayerRecords = cloneSlice(s.PrayerRecords)
	out.PayrollHistory = cloneSlice(s.PayrollHistory)
	out.SurveyResponses = make([]model.SurveyResponse, len(s.SurveyResponses))
	for i, r := range s.SurveyResponses {
		r.Answers = cloneMap(r.Answers)
		out.SurveyResponses[i] = r
	}
	out.WarrantyClaims = cloneSlice(s.WarrantyClaims)
	out.AccountChangeRequests = cloneSlice(s.AccountChangeRequests)
	out.ActivityLog = cloneSlice(s.ActivityLog)
	out.Chats = make(map[string]model.ChatThread, len(s.Chats))
	for k, t := range s.Chats {
		out.Chats[k] = cloneThread(t)
	}
	out.LastLoggedInUsers = cloneSlice(s.LastLoggedInUsers)
	out.Sequences = cloneMap(s.Sequences)

	return out
}

// normalize re-creates nil maps after JSON rehydration so the reducer never
// writes into a nil map.
func (s *AppState) normalize() {
	if s.GarmentPatterns == nil {
		s.GarmentPatterns = make(map[string]model.GarmentPattern)
	}
	if s.Carts == nil {
		s.Carts = make(map[string][]model.SaleItem)
	}
	if s.PreOrderCarts == nil {
		s.PreOrderCarts = make(map[string][]model.SaleItem)
	}
	if s.Chats == nil {
		s.Chats = make(map[string]model.ChatThread)
	}
	if s.Sequences == nil {
		s.Sequences = make(map[string]int)
	}
}

// UserByID returns a pointer into the aggregate's user slice, or nil.
// Reducer-internal: callers outside the reducer get clones.
func (s *AppState) userByID(id string) *model.User {
	for i := range s.Users {
		if s.Users[i].ID.String() == id {
			return &s.Users[i]
		}
	}
	return nil
}

func (s *AppState) orderByID(id string) *model.OnlineOrder {
	for i := range s.OnlineOrders {
		if s.OnlineOrders[i].ID == id {
			return &s.OnlineOrders[i]
		}
	}
	return nil
}
