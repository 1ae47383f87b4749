package handler

import (
	"net/http"

	"github.com/7Pranavv/Evenoo/internal/model"
	"github.com/7Pranavv/Evenoo/internal/service"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	service service.TicketService
}

func NewTicketHandler(service service.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) RegisterRoutes(r *gin.Engine) {
	staff := RequireAuth(model.RoleOrganizer, model.RoleAdmin)

	router := r.Group("/api/v1", RequireAuth())
	{
		router.GET("tickets/mine", h.ListMine)
		router.GET("tickets/:id", staff, h.Lookup)
		router.POST("tickets/:id/check-in", staff, h.CheckIn)
		router.POST("tickets/:id/cancel", h.Cancel)
		router.GET("tickets/:id/qr", h.QRCode)
		router.GET("events/:id/tickets", staff, h.ListByEvent)
	}
}

func (h *TicketHandler) ListMine(c *gin.Context) {
	actor, _ := CurrentActor(c)

	tickets, err := h.service.ListMine(requestContext(c), actor)
	if err != nil {
		handleError(c, err, "ListMyTickets")
		return
	}

	handleSuccess(c, tickets, http.StatusOK)
}

func (h *TicketHandler) Lookup(c *gin.Context) {
	ticket, err := h.service.Lookup(requestContext(c), c.Param("id"))
	if err != nil {
		handleError(c, err, "LookupTicket")
		return
	}

	handleSuccess(c, ticket, http.StatusOK)
}

// CheckIn answers 200 for both a fresh check-in and a repeated scan;
// already_checked_in tells the two apart.
func (h *TicketHandler) CheckIn(c *gin.Context) {
	actor, _ := CurrentActor(c)

	result, err := h.service.CheckIn(requestContext(c), actor, c.Param("id"))
	if err != nil {
		handleError(c, err, "CheckIn")
		return
	}

	handleSuccess(c, result, http.StatusOK)
}

func (h *TicketHandler) Cancel(c *gin.Context) {
	actor, _ := CurrentActor(c)

	ticket, err := h.service.Cancel(requestContext(c), actor, c.Param("id"))
	if err != nil {
		handleError(c, err, "CancelTicket")
		return
	}

	handleSuccess(c, ticket, http.StatusOK)
}

func (h *TicketHandler) QRCode(c *gin.Context) {
	actor, _ := CurrentActor(c)

	png, err := h.service.QRCode(requestContext(c), actor, c.Param("id"))
	if err != nil {
		handleError(c, err, "TicketQRCode")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

func (h *TicketHandler) ListByEvent(c *gin.Context) {
	eventID, ok := BindUUID(c, "id")
	if !ok {
		return
	}
	actor, _ := CurrentActor(c)

	tickets, err := h.service.ListByEvent(requestContext(c), actor, eventID)
	if err != nil {
		handleError(c, err, "ListEventTickets")
		return
	}

	handleSuccess(c, tickets, http.StatusOK)
}
