package handler

import (
	"net/http"

	"github.com/7Pranavv/Evenoo/internal/model"
	"github.com/7Pranavv/Evenoo/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service service.NotificationService
}

func NewNotificationHandler(service service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1", RequireAuth())
	{
		router.GET("notifications", h.List)
		router.POST("notifications/:id/read", h.MarkRead)
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	var query model.PageQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}
	actor, _ := CurrentActor(c)

	notifications, err := h.service.ListForRecipient(requestContext(c), actor.UserID, query.Limit)
	if err != nil {
		handleError(c, err, "ListNotifications")
		return
	}

	handleSuccess(c, notifications, http.StatusOK)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := BindUUID(c, "id")
	if !ok {
		return
	}
	actor, _ := CurrentActor(c)

	notification, err := h.service.MarkRead(requestContext(c), actor, id)
	if err != nil {
		handleError(c, err, "MarkNotificationRead")
		return
	}

	handleSuccess(c, notification, http.StatusOK)
}
