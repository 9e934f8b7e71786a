package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "heirloom/internal/errors"
	"heirloom/internal/logger"
)

// ErrorResponse is the failure envelope returned by every endpoint.
type ErrorResponse struct {
	Status  bool              `json:"status" example:"false"`
	Code    string            `json:"code" example:"VALIDATION_FAILED"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (uint, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return 0, apperrors.ErrUnauthorized
	}
	return userID.(uint), nil
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// respondOK writes a success envelope with HTTP 200.
func respondOK(c *gin.Context, message string, data interface{}) {
	respond(c, http.StatusOK, message, data)
}

// respondCreated writes a success envelope with HTTP 201.
func respondCreated(c *gin.Context, message string, data interface{}) {
	respond(c, http.StatusCreated, message, data)
}

func respond(c *gin.Context, statusCode int, message string, data interface{}) {
	body := gin.H{"status": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(statusCode, body)
}

// respondWithError writes a consistent JSON failure envelope. If the error is
// an *AppError it uses the error's status code, code, message, and field
// errors. Otherwise it logs the unexpected error and returns a generic
// internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		body := gin.H{
			"status":  false,
			"code":    appErr.Code,
			"message": appErr.Message,
		}
		if len(appErr.Fields) > 0 {
			body["errors"] = appErr.Fields
		}
		c.JSON(appErr.StatusCode, body)
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"status":  false,
		"code":    apperrors.ErrInternalServer.Code,
		"message": apperrors.ErrInternalServer.Message,
	})
}
