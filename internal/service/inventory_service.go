package service

import (
	"context"
	"time"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/dto"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/store"
)

type InventoryService interface {
	ListMaterials(ctx context.Context) []model.Material
	ListFinishedGoods(ctx context.Context) []model.FinishedGood
	StockHistory(ctx context.Context, limit int) []model.StockHistoryEntry
	UpdateStock(ctx context.Context, actor store.Actor, req dto.UpdateStockRequest) error
	ReplaceMaterials(ctx context.Context, actor store.Actor, req dto.ReplaceMaterialsRequest) error
	ReplaceGarmentPatterns(ctx context.Context, actor store.Actor, req dto.ReplaceGarmentPatternsRequest) error
	ListGarmentPatterns(ctx context.Context) map[string]model.GarmentPattern
	AddProductionReport(ctx context.Context, actor store.Actor, req dto.AddProductionReportRequest) error
	ReceiveProductionGoods(ctx context.Context, actor store.Actor, reportID string) error
	ListProductionReports(ctx context.Context) []model.ProductionReport
}

type inventoryService struct {
	st *store.Store
}

func NewInventoryService(st *store.Store) InventoryService {
	return &inventoryService{st: st}
}

func (s *inventoryService) ListMaterials(ctx context.Context) []model.Material {
	out := []model.Material{}
	s.st.View(func(st *store.AppState) {
		out = append(out, st.Materials...)
	})
	return out
}

func (s *inventoryService) ListFinishedGoods(ctx context.Context) []model.FinishedGood {
	out := []model.FinishedGood{}
	s.st.View(func(st *store.AppState) {
		out = append(out, st.FinishedGoods...)
	})
	return out
}

func (s *inventoryService) StockHistory(ctx context.Context, limit int) []model.StockHistoryEntry {
	out := []model.StockHistoryEntry{}
	s.st.View(func(st *store.AppState) {
		entries := st.StockHistory
		if limit > 0 && limit < len(entries) {
			entries = entries[:limit]
		}
		out = append(out, entries...)
	})
	return out
}

func (s *inventoryService) UpdateStock(ctx context.Context, actor store.Actor, req dto.UpdateStockRequest) error {
	entries := make([]store.StockUpdate, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = store.StockUpdate{
			ItemID:         e.ItemID,
			QuantityChange: e.QuantityChange,
			Type:           e.Type,
			Notes:          e.Notes,
		}
	}
	return s.st.Dispatch(store.UpdateStock{Actor: actor, Entries: entries})
}

func (s *inventoryService) ReplaceMaterials(ctx context.Context, actor store.Actor, req dto.ReplaceMaterialsRequest) error {
	materials := make([]model.Material, len(req.Materials))
	for i, m := range req.Materials {
		materials[i] = model.Material{
			ID:           m.ID,
			Name:         m.Name,
			Unit:         m.Unit,
			Stock:        m.Stock,
			PricePerUnit: m.PricePerUnit,
		}
	}
	return s.st.Dispatch(store.ReplaceMaterials{Actor: actor, Materials: materials})
}

func (s *inventoryService) ReplaceGarmentPatterns(ctx context.Context, actor store.Actor, req dto.ReplaceGarmentPatternsRequest) error {
	patterns := make(map[string]model.GarmentPattern, len(req.Patterns))
	for _, p := range req.Patterns {
		patterns[p.Title] = model.GarmentPattern{
			Title:              p.Title,
			DefaultWeightGrams: p.DefaultWeightGrams,
		}
	}
	return s.st.Dispatch(store.ReplaceGarmentPatterns{Actor: actor, Patterns: patterns})
}

func (s *inventoryService) ListGarmentPatterns(ctx context.Context) map[string]model.GarmentPattern {
	out := map[string]model.GarmentPattern{}
	s.st.View(func(st *store.AppState) {
		for k, v := range st.GarmentPatterns {
			out[k] = v
		}
	})
	return out
}

func (s *inventoryService) AddProductionReport(ctx context.Context, actor store.Actor, req dto.AddProductionReportRequest) error {
	output := make([]model.ProductionOutputLine, len(req.Output))
	for i, line := range req.Output {
		output[i] = model.ProductionOutputLine{
			Model:     line.Model,
			Size:      line.Size,
			ColorName: line.ColorName,
			ColorCode: line.ColorCode,
			Quantity:  line.Quantity,
		}
	}
	report := model.ProductionReport{
		SelectedGarment:     req.SelectedGarment,
		Output:              output,
		HPPPerGarment:       req.HPPPerGarment,
		SellingPricePerUnit: req.SellingPrice,
		CreatedAt:           time.Now(),
	}
	return s.st.Dispatch(store.AddProductionReport{Actor: actor, Report: report})
}

func (s *inventoryService) ReceiveProductionGoods(ctx context.Context, actor store.Actor, reportID string) error {
	return s.st.Dispatch(store.ReceiveProductionGoods{Actor: actor, ReportID: reportID})
}

func (s *inventoryService) ListProductionReports(ctx context.Context) []model.ProductionReport {
	out := []model.ProductionReport{}
	s.st.View(func(st *store.AppState) {
		out = append(out, st.ProductionReports...)
	})
	return out
}
