package controllers

import (
	"errors"
	"net/http"

	"github.com/JohnMutemi/sharpQuill-Back-end/internal/app_errors"
	"github.com/JohnMutemi/sharpQuill-Back-end/pkg/logger"
	"github.com/gin-gonic/gin"
)

// WriteError maps the service error taxonomy onto the HTTP error
// envelope: 400 validation, 401 auth, 403 authorization, 404 not found.
// Anything unrecognized is logged and becomes a 500.
func WriteError(c *gin.Context, log logger.Log, err error) {
	switch {
	case errors.Is(err, app_errors.ErrValidation),
		errors.Is(err, app_errors.ErrAssignmentUnavailable),
		errors.Is(err, app_errors.ErrInvalidTransition),
		errors.Is(err, app_errors.ErrBidNotPending),
		errors.Is(err, app_errors.ErrUserExists):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, app_errors.ErrInvalidCredentials),
		errors.Is(err, app_errors.ErrTokenExpired),
		errors.Is(err, app_errors.ErrTokenNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case errors.Is(err, app_errors.ErrUserNotFound),
		errors.Is(err, app_errors.ErrAssignmentNotFound),
		errors.Is(err, app_errors.ErrBidNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.ErrorErr("unhandled service error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
