package handler

import (
	"net/http"

	"github.com/7Pranavv/Evenoo/internal/model"
	"github.com/7Pranavv/Evenoo/internal/service"

	"github.com/gin-gonic/gin"
)

type RegistrationHandler struct {
	service service.RegistrationService
}

func NewRegistrationHandler(service service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

func (h *RegistrationHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1", RequireAuth())
	{
		router.POST("registrations", h.Register)
		router.GET("registrations/mine", h.ListMine)
		router.GET("registrations/:id", h.GetRegistration)
		router.POST("registrations/:id/pay", h.Pay)
		router.GET("events/:id/registrations", h.ListByEvent)
	}
}

func (h *RegistrationHandler) Register(c *gin.Context) {
	var req model.CreateRegistrationRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	actor, _ := CurrentActor(c)

	registration, err := h.service.Register(requestContext(c), actor, req)
	if err != nil {
		handleError(c, err, "Register")
		return
	}

	handleSuccess(c, registration, http.StatusCreated)
}

func (h *RegistrationHandler) GetRegistration(c *gin.Context) {
	id, ok := BindUUID(c, "id")
	if !ok {
		return
	}
	actor, _ := CurrentActor(c)

	registration, err := h.service.GetByID(requestContext(c), actor, id)
	if err != nil {
		handleError(c, err, "GetRegistration")
		return
	}

	handleSuccess(c, registration, http.StatusOK)
}

func (h *RegistrationHandler) ListMine(c *gin.Context) {
	actor, _ := CurrentActor(c)

	registrations, err := h.service.ListMine(requestContext(c), actor)
	if err != nil {
		handleError(c, err, "ListMyRegistrations")
		return
	}

	handleSuccess(c, registrations, http.StatusOK)
}

func (h *RegistrationHandler) ListByEvent(c *gin.Context) {
	eventID, ok := BindUUID(c, "id")
	if !ok {
		return
	}
	actor, _ := CurrentActor(c)

	registrations, err := h.service.ListByEvent(requestContext(c), actor, eventID)
	if err != nil {
		handleError(c, err, "ListEventRegistrations")
		return
	}

	handleSuccess(c, registrations, http.StatusOK)
}

func (h *RegistrationHandler) Pay(c *gin.Context) {
	id, ok := BindUUID(c, "id")
	if !ok {
		return
	}
	actor, _ := CurrentActor(c)

	registration, err := h.service.PayWithWallet(requestContext(c), actor, id)
	if err != nil {
		handleError(c, err, "PayRegistration")
		return
	}

	handleSuccess(c, registration, http.StatusOK)
}
