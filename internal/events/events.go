package events

// Engine event types stored in the outbox.
const (
	EventInvoiceCreated = "invoice.created"
	EventOrderCreated   = "order.created"
)

// InvoiceCreatedPayload captures the minimal data downstream consumers need
// to pick up a freshly persisted invoice.
type InvoiceCreatedPayload struct {
	InvoiceID  string `json:"invoice_id"`
	Number     string `json:"number"`
	GrandTotal int64  `json:"grand_total"`
}

// ToMap converts the payload into an outbox-friendly map.
func (p InvoiceCreatedPayload) ToMap() map[string]any {
	return map[string]any{
		"invoice_id":  p.InvoiceID,
		"number":      p.Number,
		"grand_total": p.GrandTotal,
	}
}
