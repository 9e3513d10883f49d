package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tuition-center/center-service/internal/models"
	"github.com/tuition-center/center-service/internal/services"
)

// Headers set by the upstream gateway after authentication.
const (
	HeaderRequestID    = "X-Request-ID"
	HeaderActor        = "X-Actor"
	HeaderCapabilities = "X-Capabilities"
)

const capabilitiesKey = "capabilities"

// RequestContext copies gateway identity headers into the request context so
// the service layer can attribute audit logs and ledger rows.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
			c.Request.Header.Set(HeaderRequestID, requestID)
		}
		c.Header(HeaderRequestID, requestID)

		ctx := context.WithValue(c.Request.Context(), services.RequestIDKey, requestID)
		if actor := c.GetHeader(HeaderActor); actor != "" {
			ctx = context.WithValue(ctx, services.ActorKey, actor)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Set(capabilitiesKey, models.ParseCapabilitySet(c.GetHeader(HeaderCapabilities)))
		c.Next()
	}
}

// RequireCapability rejects the request with 403 unless the caller holds
// capability. When enforce is false every request passes.
func RequireCapability(capability models.Capability, enforce bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enforce {
			c.Next()
			return
		}

		set, _ := c.Get(capabilitiesKey)
		caps, ok := set.(models.CapabilitySet)
		if !ok {
			caps = models.ParseCapabilitySet(c.GetHeader(HeaderCapabilities))
		}

		if !caps.Has(capability) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "Access denied",
				Details: map[string]string{"required_capability": capability.String()},
			})
			return
		}
		c.Next()
	}
}
