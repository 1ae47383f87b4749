package handler

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/7Pranavv/Evenoo/pkg/app_errors"
	"github.com/7Pranavv/Evenoo/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// BindUUID parses the named path parameter, answering 400 when it is not a uuid.
func BindUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		return uuid.Nil, false
	}
	return id, true
}

// requestContext keeps the request values but drops client cancellation.
func requestContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

func handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))

	var (
		validationErr *apperrors.ValidationError
		transitionErr *apperrors.InvalidTransitionError
		ticketErr     *apperrors.TicketInvalidError
		issuanceErr   *apperrors.IssuanceError
		storeErr      *apperrors.StoreError
	)

	switch {
	case errors.As(err, &validationErr):
		log.Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Error(),
			"field": validationErr.Field,
		})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	case errors.As(err, &transitionErr):
		log.Warn("Invalid status transition")
		c.JSON(http.StatusConflict, gin.H{
			"error": transitionErr.Error(),
		})
	case errors.As(err, &ticketErr):
		log.Warn("Ticket not valid for entry")
		c.JSON(http.StatusConflict, gin.H{
			"error":  "Ticket is not valid",
			"status": ticketErr.Status,
		})
	case errors.As(err, &issuanceErr):
		log.Error("Ticket issuance exhausted")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Could not issue tickets, please retry",
		})
	case apperrors.IsNotFound(err):
		log.Warn("Resource not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, apperrors.ErrInvalidCredentials):
		log.Warn("Unauthorized")
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, apperrors.ErrForbidden):
		log.Warn("Forbidden")
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Forbidden",
		})
	case errors.Is(err, apperrors.ErrInsufficientBalance),
		errors.Is(err, apperrors.ErrAlreadyPaid),
		errors.Is(err, apperrors.ErrEventNotOpen),
		errors.Is(err, apperrors.ErrEventFull),
		errors.Is(err, apperrors.ErrEmailTaken):
		log.Warn("Conflict")
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
	case errors.As(err, &storeErr):
		log.Error("Data store failure")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func handleSuccess(c *gin.Context, data interface{}, statusCode int) {
	if data != nil {
		c.JSON(statusCode, data)
	} else {
		c.Status(statusCode)
	}
}
