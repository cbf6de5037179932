package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/fairmog/tagihin/internal/catalog/domain"
)

type createProductRequest struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
}

// @Summary      Create Product
// @Description  Add a product to the price catalog
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body createProductRequest true "Create Product Request"
// @Success      200  {object}  catalogdomain.Response
// @Router       /products [post]
func (s *Server) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx := c.Request.Context()
	business, err := s.defaultBusiness(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.catalogSvc.Create(ctx, catalogdomain.CreateRequest{
		BusinessID: business.ID,
		Name:       strings.TrimSpace(req.Name),
		UnitPrice:  req.UnitPrice,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Products
// @Description  List catalog products
// @Tags         products
// @Produce      json
// @Param        name   query     string  false  "Name"
// @Param        active query     bool    false  "Active"
// @Success      200  {object}  []catalogdomain.Response
// @Router       /products [get]
func (s *Server) ListProducts(c *gin.Context) {
	var query catalogdomain.ListRequest
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

	resp, err := s.catalogSvc.List(ctx, business.ID, query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
