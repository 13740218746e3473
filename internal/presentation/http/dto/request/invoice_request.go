package request

import "github.com/shopspring/decimal"

// InvoiceProductRequest is one product line of a new invoice
type InvoiceProductRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description"`
	Quantity    *int            `json:"quantity"`
}

// InvoicePaymentRequest is the payment of a new invoice
type InvoicePaymentRequest struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// CreateInvoiceRequest represents a create invoice request.
// Field rules are checked by the invoice service so every problem is reported at once.
type CreateInvoiceRequest struct {
	Products []InvoiceProductRequest `json:"products"`
	Payment  *InvoicePaymentRequest  `json:"payment"`
}
