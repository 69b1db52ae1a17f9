package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mackml1997/reserves-rarities/internal/pipeline"
)

type createOrderRequest struct {
	TransactionRef string `json:"transactionRef"`
}

// CreateOrder triggers the pipeline for one transaction reference. Operators
// use it to replay a transaction whose webhook was missed.
func (s *Server) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.TransactionRef) == "" {
		AbortWithError(c, newValidationError("transactionRef", "required", "transactionRef is required"))
		return
	}

	result, err := s.pipeline.Process(c.Request.Context(), req.TransactionRef)
	if err != nil {
		if errors.Is(err, pipeline.ErrAlreadyProcessed) {
			c.JSON(http.StatusOK, gin.H{"data": result, "alreadyProcessed": true})
			return
		}
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
