package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/fairmog/tagihin/internal/catalog/domain"
	invoicedomain "github.com/fairmog/tagihin/internal/invoice/domain"
)

// ErrNoBusiness means the deployment has not been bootstrapped with a tenant.
var ErrNoBusiness = errors.New("no_business_configured")

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Stage   string `json:"stage,omitempty"`
}

func (e *apiError) Error() string { return e.Code }

func invalidRequestError() *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "invalid request body"}
}

func newValidationError(field, code, message string) *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: code, Message: message, Field: field}
}

// AbortWithError maps domain errors onto HTTP responses. Hard engine failures
// carry their pipeline stage so callers can tell which step gave up.
func AbortWithError(c *gin.Context, err error) {
	var api *apiError
	if errors.As(err, &api) {
		c.AbortWithStatusJSON(api.Status, gin.H{"error": api})
		return
	}

	var failure *invoicedomain.ParseFailure
	if errors.As(err, &failure) {
		status := http.StatusUnprocessableEntity
		if failure.Stage == invoicedomain.StageNumber || failure.Stage == invoicedomain.StagePersist {
			status = http.StatusInternalServerError
		}
		c.AbortWithStatusJSON(status, gin.H{"error": &apiError{
			Status:  status,
			Code:    failure.Err.Error(),
			Message: failure.Error(),
			Stage:   failure.Stage,
		}})
		return
	}

	status := http.StatusInternalServerError
	code := "internal_error"
	switch {
	case errors.Is(err, invoicedomain.ErrInvoiceNotFound),
		errors.Is(err, catalogdomain.ErrNotFound):
		status, code = http.StatusNotFound, err.Error()
	case errors.Is(err, invoicedomain.ErrInvalidInvoiceID),
		errors.Is(err, invoicedomain.ErrInvalidKind),
		errors.Is(err, catalogdomain.ErrInvalidName),
		errors.Is(err, catalogdomain.ErrInvalidPrice):
		status, code = http.StatusBadRequest, err.Error()
	case errors.Is(err, catalogdomain.ErrDuplicateName):
		status, code = http.StatusConflict, err.Error()
	case errors.Is(err, ErrNoBusiness):
		status, code = http.StatusPreconditionFailed, err.Error()
	}

	c.AbortWithStatusJSON(status, gin.H{"error": &apiError{
		Status:  status,
		Code:    code,
		Message: err.Error(),
	}})
}
