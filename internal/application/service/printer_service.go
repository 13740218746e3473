package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sangkips/invoice-ticket-api/pkg/printer"
)

// PrinterService sends rendered tickets to the thermal printer.
type PrinterService struct {
	printer printer.Printer
	tickets *TicketService
	logger  *slog.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, tickets *TicketService, logger *slog.Logger) *PrinterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PrinterService{
		printer: p,
		tickets: tickets,
		logger:  logger,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printer.Type() != printer.TypeNone,
		Connected:  s.printer.IsConnected(),
		Type:       s.printer.Type(),
	}
}

// PrintInvoice renders the invoice ticket and prints it.
// The text is returned even when printing fails.
func (s *PrinterService) PrintInvoice(ctx context.Context, invoiceID uint) (string, error) {
	text, err := s.tickets.RenderInvoiceText(ctx, invoiceID)
	if err != nil {
		return "", err
	}

	data, err := printer.EncodeTicket(text, s.tickets.Options().Width)
	if err != nil {
		return text, fmt.Errorf("failed to encode ticket: %w", err)
	}
	if err := s.printer.Print(data); err != nil {
		s.logger.ErrorContext(ctx, "printer error", "invoice_id", invoiceID, "error", err)
		return text, fmt.Errorf("failed to print ticket: %w", err)
	}

	s.logger.InfoContext(ctx, "ticket printed", "invoice_id", invoiceID, "printer", s.printer.Type())
	return text, nil
}
