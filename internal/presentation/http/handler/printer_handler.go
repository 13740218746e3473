package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/invoice-ticket-api/internal/application/service"
	"github.com/sangkips/invoice-ticket-api/internal/presentation/http/dto/response"
	"github.com/sangkips/invoice-ticket-api/pkg/apperror"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus())
}

// PrintInvoice sends the ticket of an invoice to the printer.
func (h *PrinterHandler) PrintInvoice(c *gin.Context) {
	invoiceID, ok := invoiceIDParam(c)
	if !ok {
		return
	}

	text, err := h.printerService.PrintInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		if apperror.IsAppError(err) {
			response.Error(c, err)
			return
		}
		// the ticket was rendered, only the device failed
		response.OK(c, "Ticket generated but printing failed", gin.H{
			"ticket":  text,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Ticket sent to printer", gin.H{"ticket": text})
}
