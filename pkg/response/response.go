package response

import (
	"errors"
	"net/http"

	"anoa.com/storerating/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Envelope is the body shape of every API response.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Error writes the failure envelope for err. Anything not mapped to a known
// status is logged and replaced by a generic message.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	var vErr *apperror.ValidationError
	if errors.As(err, &vErr) {
		c.AbortWithStatusJSON(code, Envelope{Message: "Validation failed", Errors: vErr.Errors})
		return
	}

	if code == http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("internal error")
		InternalError(c)
		return
	}

	c.AbortWithStatusJSON(code, Envelope{Message: err.Error()})
}

// InternalError writes the generic 500 envelope.
func InternalError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{Message: "Internal server error"})
}
