package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/invoice-ticket-api/internal/application/service"
	"github.com/sangkips/invoice-ticket-api/internal/presentation/http/dto/request"
	"github.com/sangkips/invoice-ticket-api/internal/presentation/http/dto/response"
	"github.com/sangkips/invoice-ticket-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// InvoiceHandler handles invoice HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	ticketService  *service.TicketService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService, ticketService *service.TicketService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		ticketService:  ticketService,
	}
}

// Create handles invoice creation
// @Summary Create invoice
// @Tags invoice
// @Accept json
// @Produce json
// @Param request body request.CreateInvoiceRequest true "Products and payment"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /invoice/create [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}

	input := &service.CreateInvoiceInput{
		Products: make([]service.InvoiceItemInput, 0, len(req.Products)),
	}
	for _, p := range req.Products {
		input.Products = append(input.Products, service.InvoiceItemInput{
			Name:        p.Name,
			Price:       p.Price,
			Description: p.Description,
			Quantity:    p.Quantity,
		})
	}
	if req.Payment != nil {
		input.Payment = &service.PaymentInput{
			Type:   req.Payment.Type,
			Amount: req.Payment.Amount,
		}
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), currentUser(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created", invoice)
}

// Retrieve lists the caller's invoices
// @Summary List invoices
// @Tags invoice
// @Produce json
// @Param from_created_at query string false "dd.mm.yyyy or dd.mm.yyyy HH:MM:SS"
// @Param to_created_at query string false "dd.mm.yyyy or dd.mm.yyyy HH:MM:SS"
// @Param min_total query number false "Minimum total"
// @Param max_total query number false "Maximum total"
// @Param payment_type query string false "cash or cashless"
// @Param page query int false "Zero-based page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /invoice/retrieve [get]
func (h *InvoiceHandler) Retrieve(c *gin.Context) {
	input, fieldErrors := parseListQuery(c)
	if len(fieldErrors) > 0 {
		response.ValidationError(c, fieldErrors)
		return
	}

	user := currentUser(c)
	page, err := h.invoiceService.ListInvoices(c.Request.Context(), user.ID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoices retrieved", page)
}

// GetText renders the public plain-text ticket of an invoice
// @Summary Invoice ticket
// @Tags invoice
// @Produce plain
// @Param invoice_id path int true "Invoice ID"
// @Success 200 {string} string
// @Failure 404 {object} response.APIResponse
// @Router /invoice/{invoice_id} [get]
func (h *InvoiceHandler) GetText(c *gin.Context) {
	invoiceID, ok := invoiceIDParam(c)
	if !ok {
		return
	}

	text, err := h.ticketService.RenderInvoiceText(c.Request.Context(), invoiceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Text(c, http.StatusOK, text)
}

// invoiceIDParam reads a positive :invoice_id, answering 422 otherwise
func invoiceIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("invoice_id")
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id < 1 {
		response.Error(c, apperror.NewFieldError("invoice_id", "should be an integer greater than or equal to 1"))
		return 0, false
	}
	return uint(id), true
}

func parseListQuery(c *gin.Context) (*service.ListInvoicesInput, []apperror.FieldError) {
	input := &service.ListInvoicesInput{}
	var fieldErrors []apperror.FieldError
	invalid := func(field, message string) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: message})
	}

	if v, ok := c.GetQuery("from_created_at"); ok {
		input.FromCreatedAt = &v
	}
	if v, ok := c.GetQuery("to_created_at"); ok {
		input.ToCreatedAt = &v
	}
	if v, ok := c.GetQuery("payment_type"); ok {
		input.PaymentType = &v
	}

	parseTotal := func(field string) *decimal.Decimal {
		v, ok := c.GetQuery(field)
		if !ok {
			return nil
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			invalid(field, "should be a valid number")
			return nil
		}
		return &d
	}
	input.MinTotal = parseTotal("min_total")
	input.MaxTotal = parseTotal("max_total")

	if v, ok := c.GetQuery("page"); ok {
		page, err := strconv.Atoi(v)
		if err != nil {
			invalid("page", "should be a valid integer")
		} else {
			input.Page = page
		}
	}
	if v, ok := c.GetQuery("limit"); ok {
		limit, err := strconv.Atoi(v)
		if err != nil {
			invalid("limit", "should be a valid integer")
		} else {
			input.Limit = &limit
		}
	}

	return input, fieldErrors
}
