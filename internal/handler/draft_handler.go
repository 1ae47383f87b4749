package handler

import (
	"net/http"

	"github.com/7Pranavv/Evenoo/internal/model"
	"github.com/7Pranavv/Evenoo/internal/service"

	"github.com/gin-gonic/gin"
)

// DraftHandler serves the caller's in-progress event builder.
type DraftHandler struct {
	service service.DraftService
}

func NewDraftHandler(service service.DraftService) *DraftHandler {
	return &DraftHandler{service: service}
}

func (h *DraftHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1/drafts", RequireAuth(model.RoleOrganizer, model.RoleAdmin))
	{
		router.GET("", h.Get)
		router.PATCH("", h.Update)
		router.PUT("step", h.SetStep)
		router.DELETE("", h.Reset)
		router.POST("submit", h.Submit)
	}
}

func (h *DraftHandler) Get(c *gin.Context) {
	actor, _ := CurrentActor(c)

	state, err := h.service.Get(requestContext(c), actor)
	if err != nil {
		handleError(c, err, "GetDraft")
		return
	}

	handleSuccess(c, state, http.StatusOK)
}

// Update merges a partial draft object; the body is passed through untouched
// so absent keys keep their current values.
func (h *DraftHandler) Update(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}
	actor, _ := CurrentActor(c)

	state, err := h.service.Update(requestContext(c), actor, body)
	if err != nil {
		handleError(c, err, "UpdateDraft")
		return
	}

	handleSuccess(c, state, http.StatusOK)
}

func (h *DraftHandler) SetStep(c *gin.Context) {
	var req model.DraftStepRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	actor, _ := CurrentActor(c)

	state, err := h.service.SetStep(requestContext(c), actor, req.Step)
	if err != nil {
		handleError(c, err, "SetDraftStep")
		return
	}

	handleSuccess(c, state, http.StatusOK)
}

func (h *DraftHandler) Reset(c *gin.Context) {
	actor, _ := CurrentActor(c)

	state, err := h.service.Reset(requestContext(c), actor)
	if err != nil {
		handleError(c, err, "ResetDraft")
		return
	}

	handleSuccess(c, state, http.StatusOK)
}

func (h *DraftHandler) Submit(c *gin.Context) {
	var req model.SubmitDraftRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	actor, _ := CurrentActor(c)

	event, err := h.service.Submit(requestContext(c), actor, req.Status)
	if err != nil {
		handleError(c, err, "SubmitDraft")
		return
	}

	handleSuccess(c, event, http.StatusCreated)
}
