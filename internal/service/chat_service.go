package service

import (
	"context"
	"time"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/dto"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/store"
)

type ChatService interface {
	Send(ctx context.Context, actor store.Actor, sender string, req dto.SendChatMessageRequest) error
	MarkRead(ctx context.Context, customerID, reader string) error
	Thread(ctx context.Context, customerID string) (dto.ChatThreadResponse, error)
	ListThreads(ctx context.Context) []dto.ChatThreadResponse
	Activity(ctx context.Context, limit int) []model.ActivityLog
}

type chatService struct {
	st *store.Store
}

func NewChatService(st *store.Store) ChatService {
	return &chatService{st: st}
}

func (s *chatService) Send(ctx context.Context, actor store.Actor, sender string, req dto.SendChatMessageRequest) error {
	customerID := req.CustomerID
	if sender == model.ChatReaderCustomer {
		// Customers can only write to their own thread.
		customerID = actor.UserID
	}
	return s.st.Dispatch(store.SendChatMessage{
		Actor:      actor,
		CustomerID: customerID,
		Sender:     sender,
		Text:       req.Text,
	})
}

func (s *chatService) MarkRead(ctx context.Context, customerID, reader string) error {
	return s.st.Dispatch(store.MarkChatRead{CustomerID: customerID, Reader: reader})
}

func (s *chatService) Thread(ctx context.Context, customerID string) (dto.ChatThreadResponse, error) {
	var resp dto.ChatThreadResponse
	err := store.ErrNotFound
	s.st.View(func(st *store.AppState) {
		thread, ok := st.Chats[customerID]
		if !ok {
			return
		}
		err = nil
		resp = toThreadResponse(customerID, thread)
	})
	return resp, err
}

func (s *chatService) ListThreads(ctx context.Context) []dto.ChatThreadResponse {
	out := []dto.ChatThreadResponse{}
	s.st.View(func(st *store.AppState) {
		for customerID, thread := range st.Chats {
			out = append(out, toThreadResponse(customerID, thread))
		}
	})
	return out
}

func (s *chatService) Activity(ctx context.Context, limit int) []model.ActivityLog {
	out := []model.ActivityLog{}
	s.st.View(func(st *store.AppState) {
		entries := st.ActivityLog
		if limit > 0 && limit < len(entries) {
			entries = entries[:limit]
		}
		out = append(out, entries...)
	})
	return out
}

func toThreadResponse(customerID string, thread model.ChatThread) dto.ChatThreadResponse {
	resp := dto.ChatThreadResponse{
		CustomerID:   customerID,
		CustomerName: thread.CustomerName,
		Messages:     make([]dto.ChatMessageResponse, len(thread.Messages)),
	}
	for i, m := range thread.Messages {
		resp.Messages[i] = dto.ChatMessageResponse{
			ID:             m.ID,
			Sender:         m.Sender,
			Text:           m.Text,
			Timestamp:      m.Timestamp.Format(time.RFC3339),
			ReadByAdmin:    m.ReadByAdmin,
			ReadByCustomer: m.ReadByCustomer,
		}
		if m.Sender == model.ChatReaderCustomer && !m.ReadByAdmin {
			resp.UnreadCount++
		}
	}
	return resp
}
