package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mackml1997/reserves-rarities/internal/gateway/stripe"
	"github.com/mackml1997/reserves-rarities/internal/pipeline"
)

// StripeWebhook ingests payment-processor events. Only payment_intent.succeeded
// triggers the pipeline; every other verified event is acknowledged so the
// processor stops retrying it.
func (s *Server) StripeWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := stripe.VerifySignature(
		payload,
		c.GetHeader(stripe.SignatureHeader),
		s.cfg.StripeWebhookSecret,
		stripe.DefaultTolerance,
		s.clock.Now(),
	); err != nil {
		AbortWithError(c, err)
		return
	}

	event, err := stripe.ParseEvent(payload)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if event.Type != stripe.EventPaymentIntentSucceeded {
		c.JSON(http.StatusOK, gin.H{"received": true, "ignored": true})
		return
	}

	result, err := s.pipeline.Process(c.Request.Context(), event.Data.Object.ID)
	if err != nil {
		if errors.Is(err, pipeline.ErrAlreadyProcessed) {
			c.JSON(http.StatusOK, gin.H{"received": true, "alreadyProcessed": true, "data": result})
			return
		}
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true, "data": result})
}
