package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/mackml1997/reserves-rarities/internal/customer/domain"
	gatewaydomain "github.com/mackml1997/reserves-rarities/internal/gateway/domain"
	"github.com/mackml1997/reserves-rarities/internal/observability/logger"
	tenantdomain "github.com/mackml1997/reserves-rarities/internal/tenant/domain"
	"github.com/mackml1997/reserves-rarities/internal/upstream"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("not_found")

type apiError struct {
	Status  int          `json:"-"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string { return e.Code }

func invalidRequestError() *apiError {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "request body could not be parsed",
	}
}

func newValidationError(field, code, message string) *apiError {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    "validation_failed",
		Message: "request validation failed",
		Fields:  []fieldError{{Field: field, Code: code, Message: message}},
	}
}

// AbortWithError renders any error as the JSON error envelope. Domain errors
// map onto specific statuses; everything else is an opaque 500.
func AbortWithError(c *gin.Context, err error) {
	var api *apiError
	if errors.As(err, &api) {
		c.AbortWithStatusJSON(api.Status, gin.H{"error": api})
		return
	}

	status, code := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error("request failed", zap.Error(err))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": apiError{
		Status:  status,
		Code:    code,
		Message: messageForCode(code, err),
	}})
}

func statusForError(err error) (int, string) {
	var upstreamErr *upstream.Error
	switch {
	case errors.Is(err, gatewaydomain.ErrMissingTransactionRef),
		errors.Is(err, tenantdomain.ErrMissingRef):
		return http.StatusBadRequest, "missing_transaction_ref"
	case errors.Is(err, tenantdomain.ErrMissingTenantID):
		return http.StatusBadRequest, "missing_tenant_id"
	case errors.Is(err, gatewaydomain.ErrInvalidSignature),
		errors.Is(err, gatewaydomain.ErrSignatureExpired):
		return http.StatusBadRequest, "invalid_signature"
	case errors.Is(err, gatewaydomain.ErrInvalidPayload):
		return http.StatusBadRequest, "invalid_payload"
	case errors.Is(err, tenantdomain.ErrTenantNotMapped):
		return http.StatusUnprocessableEntity, "tenant_not_mapped"
	case errors.Is(err, customerdomain.ErrCustomerUnresolved):
		return http.StatusBadGateway, "customer_unresolved"
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway, "upstream_error"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func messageForCode(code string, err error) string {
	switch code {
	case "missing_transaction_ref":
		return "a transaction reference is required"
	case "missing_tenant_id":
		return "a tenant id is required"
	case "invalid_signature":
		return "webhook signature verification failed"
	case "invalid_payload":
		return "webhook payload could not be parsed"
	case "tenant_not_mapped":
		return "no tenant is mapped for this transaction reference"
	case "customer_unresolved":
		return "the platform did not return a usable customer"
	case "upstream_error":
		return err.Error()
	case "not_found":
		return "resource not found"
	default:
		return "internal server error"
	}
}
