package handler

import (
	"context"
	"net/http"

	"github.com/7Pranavv/Evenoo/internal/model"
	"github.com/7Pranavv/Evenoo/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	organizers := RequireAuth(model.RoleOrganizer, model.RoleAdmin)
	admins := RequireAuth(model.RoleAdmin)

	router := r.Group("/api/v1")
	{
		router.GET("events", h.ListLive)
		router.GET("events/mine", organizers, h.ListMine)
		router.GET("events/pending", admins, h.ListPending)
		router.GET("events/:id", h.GetEvent)
		router.PUT("events/:id", organizers, h.SaveDraft)
		router.POST("events/:id/submit", organizers, h.Submit)
		router.POST("events/:id/approve", admins, h.Approve)
		router.POST("events/:id/reject", admins, h.Reject)
		router.POST("events/:id/complete", admins, h.Complete)
		router.POST("events/:id/cancel", organizers, h.Cancel)
	}
}

func (h *EventHandler) ListLive(c *gin.Context) {
	var query model.PageQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}

	events, err := h.service.ListLive(requestContext(c), query.Limit)
	if err != nil {
		handleError(c, err, "ListLive")
		return
	}

	handleSuccess(c, events, http.StatusOK)
}

func (h *EventHandler) ListMine(c *gin.Context) {
	actor, _ := CurrentActor(c)

	events, err := h.service.ListByOrganizer(requestContext(c), actor.UserID)
	if err != nil {
		handleError(c, err, "ListMine")
		return
	}

	handleSuccess(c, events, http.StatusOK)
}

func (h *EventHandler) ListPending(c *gin.Context) {
	actor, _ := CurrentActor(c)

	events, err := h.service.ListPendingApproval(requestContext(c), actor)
	if err != nil {
		handleError(c, err, "ListPending")
		return
	}

	handleSuccess(c, events, http.StatusOK)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := BindUUID(c, "id")
	if !ok {
		return
	}

	event, err := h.service.GetByID(requestContext(c), id)
	if err != nil {
		handleError(c, err, "GetEvent")
		return
	}

	handleSuccess(c, event, http.StatusOK)
}

func (h *EventHandler) SaveDraft(c *gin.Context) {
	id, ok := BindUUID(c, "id")
	if !ok {
		return
	}
	var params model.UpdateEventParams
	if err := BindJson(c, &params); err != nil {
		return
	}
	actor, _ := CurrentActor(c)

	event, err := h.service.SaveDraft(requestContext(c), actor, id, params)
	if err != nil {
		handleError(c, err, "SaveDraft")
		return
	}

	handleSuccess(c, event, http.StatusOK)
}

func (h *EventHandler) Submit(c *gin.Context) {
	h.transition(c, "Submit", h.service.Submit)
}

func (h *EventHandler) Complete(c *gin.Context) {
	h.transition(c, "Complete", h.service.Complete)
}

func (h *EventHandler) Cancel(c *gin.Context) {
	h.transition(c, "Cancel", h.service.Cancel)
}

func (h *EventHandler) Approve(c *gin.Context) {
	h.review(c, "Approve", h.service.Approve)
}

func (h *EventHandler) Reject(c *gin.Context) {
	h.review(c, "Reject", h.service.Reject)
}

// Helper functions

type transitionFunc func(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Event, error)

type reviewFunc func(ctx context.Context, actor model.Actor, id uuid.UUID, notes string) (*model.Event, error)

func (h *EventHandler) transition(c *gin.Context, operation string, fn transitionFunc) {
	id, ok := BindUUID(c, "id")
	if !ok {
		return
	}
	actor, _ := CurrentActor(c)

	event, err := fn(requestContext(c), actor, id)
	if err != nil {
		handleError(c, err, operation)
		return
	}

	handleSuccess(c, event, http.StatusOK)
}

func (h *EventHandler) review(c *gin.Context, operation string, fn reviewFunc) {
	id, ok := BindUUID(c, "id")
	if !ok {
		return
	}
	var req model.ReviewEventRequest
	// notes are optional, so an empty body is accepted
	if c.Request.ContentLength != 0 {
		if err := BindJson(c, &req); err != nil {
			return
		}
	}
	actor, _ := CurrentActor(c)

	event, err := fn(requestContext(c), actor, id, req.Notes)
	if err != nil {
		handleError(c, err, operation)
		return
	}

	handleSuccess(c, event, http.StatusOK)
}
