package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	businessdomain "github.com/fairmog/tagihin/internal/business/domain"
	invoicedomain "github.com/fairmog/tagihin/internal/invoice/domain"
	"github.com/fairmog/tagihin/internal/invoice/render"
)

type businessProfilePayload struct {
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	ShortCode      string  `json:"short_code"`
	TaxEnabled     *bool   `json:"tax_enabled"`
	TaxRatePercent float64 `json:"tax_rate_percent"`
}

type processMessageRequest struct {
	Message         string                  `json:"message"`
	BusinessProfile *businessProfilePayload `json:"business_profile,omitempty"`
}

// @Summary      Process Order Message
// @Description  Turn a free-form order message into a computed invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body processMessageRequest true "Order Message"
// @Success      200  {object}  invoicedomain.Response
// @Router       /invoices/process [post]
func (s *Server) ProcessInvoiceMessage(c *gin.Context) {
	s.processMessage(c, invoicedomain.KindInvoice)
}

// @Summary      Process Order Message (order numbering)
// @Description  Same pipeline as invoice processing, numbered in the ORD namespace
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body processMessageRequest true "Order Message"
// @Success      200  {object}  invoicedomain.Response
// @Router       /orders/process [post]
func (s *Server) ProcessOrderMessage(c *gin.Context) {
	s.processMessage(c, invoicedomain.KindOrder)
}

func (s *Server) processMessage(c *gin.Context, kind invoicedomain.Kind) {
	var req processMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		AbortWithError(c, newValidationError("message", "required", "message is required"))
		return
	}

	ctx := c.Request.Context()
	business, err := s.defaultBusiness(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	profile := business.Profile()
	if req.BusinessProfile != nil {
		profile = mergeProfile(profile, *req.BusinessProfile)
	}

	invoice, err := s.invoiceSvc.ProcessMessage(ctx, req.Message, kind, profile)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoice.ToResponse()})
}

// mergeProfile overlays request-supplied business fields onto the stored
// tenant profile for the duration of one call.
func mergeProfile(base businessdomain.Profile, payload businessProfilePayload) businessdomain.Profile {
	if v := strings.TrimSpace(payload.Name); v != "" {
		base.Name = v
	}
	if v := strings.TrimSpace(payload.Address); v != "" {
		base.Address = v
	}
	if v := strings.TrimSpace(payload.Phone); v != "" {
		base.Phone = v
	}
	if v := strings.TrimSpace(payload.Email); v != "" {
		base.Email = v
	}
	if v := strings.TrimSpace(payload.ShortCode); v != "" {
		base.ShortCode = v
	}
	if payload.TaxEnabled != nil {
		base.TaxEnabled = *payload.TaxEnabled
	}
	if payload.TaxRatePercent > 0 {
		base.TaxRatePercent = payload.TaxRatePercent
	}
	return base
}

// @Summary      List Invoices
// @Description  List recent invoices for the tenant
// @Tags         invoices
// @Produce      json
// @Param        limit query int false "Limit"
// @Success      200  {object}  []invoicedomain.Response
// @Router       /invoices [get]
func (s *Server) ListInvoices(c *gin.Context) {
	var query struct {
		Limit int `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx := c.Request.Context()
	business, err := s.defaultBusiness(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	invoices, err := s.invoiceSvc.List(ctx, invoicedomain.ListRequest{
		BusinessID: int64(business.ID),
		Limit:      query.Limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	responses := make([]invoicedomain.Response, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, invoices[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}

// @Summary      Get Invoice
// @Description  Get invoice by ID
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  invoicedomain.Response
// @Router       /invoices/{id} [get]
func (s *Server) GetInvoiceByID(c *gin.Context) {
	invoice, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": invoice.ToResponse()})
}

// @Summary      Render Invoice
// @Description  Render a printable HTML view of an invoice
// @Tags         invoices
// @Produce      html
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {string}  string
// @Router       /invoices/{id}/html [get]
func (s *Server) RenderInvoiceHTML(c *gin.Context) {
	ctx := c.Request.Context()
	invoice, err := s.invoiceSvc.GetByID(ctx, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	business, err := s.defaultBusiness(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	html, err := s.renderer.RenderHTML(render.RenderInput{
		Business: business.Profile(),
		Invoice:  invoice.ToResponse(),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
