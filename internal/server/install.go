package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	tenantdomain "github.com/mackml1997/reserves-rarities/internal/tenant/domain"
)

type installRequest struct {
	TenantID  string `json:"tenantId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Install is the commerce platform's app-installation hook. It must answer
// quickly with the exact success message the platform expects.
func (s *Server) Install(c *gin.Context) {
	var req installRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.TenantID) == "" {
		AbortWithError(c, newValidationError("tenantId", "required", "tenantId is required"))
		return
	}

	if _, err := s.tenants.Register(c.Request.Context(), tenantdomain.RegisterRequest{
		TenantID:  req.TenantID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Installation successful!"})
}

func (s *Server) ListTenants(c *gin.Context) {
	items, err := s.tenants.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}
