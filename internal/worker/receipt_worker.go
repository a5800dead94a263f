package worker

// receipt_worker.go
// Processes receipt jobs from QueueReceipt: renders the thermal-format PDF
// for a dispatched sale and, when the customer has an email on file,
// enqueues the email job carrying the attachment.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/infra"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/store"

	"github.com/rs/zerolog/log"
)

// ReceiptJobPayload is the job envelope sent to QueueReceipt.
type ReceiptJobPayload struct {
	SaleID        string `json:"sale_id"`
	OrderID       string `json:"order_id"`
	CustomerEmail string `json:"customer_email,omitempty"`
}

type ReceiptWorker struct {
	st             *store.Store
	dispatcher     *Dispatcher
	pdfStoragePath string
}

func NewReceiptWorker(st *store.Store, dispatcher *Dispatcher, pdfStoragePath string) *ReceiptWorker {
	return &ReceiptWorker{st: st, dispatcher: dispatcher, pdfStoragePath: pdfStoragePath}
}

func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return nil // malformed payloads never succeed; do not retry
	}

	var (
		sale        *model.Sale
		order       *model.OnlineOrder
		companyName string
	)
	w.st.View(func(st *store.AppState) {
		companyName = st.CompanyInfo.Name
		for i := range st.Sales {
			if st.Sales[i].ID == payload.SaleID {
				s := st.Sales[i]
				sale = &s
				break
			}
		}
		for i := range st.OnlineOrders {
			if st.OnlineOrders[i].ID == payload.OrderID {
				o := st.OnlineOrders[i]
				order = &o
				break
			}
		}
	})
	if sale == nil {
		return fmt.Errorf("receipt_worker: sale %s not found", payload.SaleID)
	}

	pdfPath, err := infra.GenerateReceiptPDF(sale, order, companyName, w.pdfStoragePath)
	if err != nil {
		return fmt.Errorf("receipt_worker: generate pdf: %w", err)
	}
	log.Info().Str("sale_id", sale.ID).Str("path", pdfPath).Msg("receipt_worker: receipt generated")

	if payload.CustomerEmail == "" {
		return nil
	}
	return w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail: payload.CustomerEmail,
		Subject: fmt.Sprintf("Struk pembelian %s", sale.ID),
		Body:    fmt.Sprintf("Terima kasih %s, pesanan Anda telah dikirim. Struk terlampir.", sale.CustomerName),
		PDFPath: pdfPath,
	})
}
