package handler

import (
	"net/http"

	"github.com/7Pranavv/Evenoo/internal/model"
	"github.com/7Pranavv/Evenoo/internal/service"

	"github.com/gin-gonic/gin"
)

type VendorHandler struct {
	service service.VendorService
}

func NewVendorHandler(service service.VendorService) *VendorHandler {
	return &VendorHandler{service: service}
}

func (h *VendorHandler) RegisterRoutes(r *gin.Engine) {
	vendors := RequireAuth(model.RoleVendor)

	router := r.Group("/api/v1")
	{
		router.GET("vendors/:id/items", h.ListItems)
		router.POST("bookings", RequireAuth(model.RoleOrganizer, model.RoleAdmin), h.RequestBooking)

		router.PUT("vendor/profile", vendors, h.EnsureProfile)
		router.GET("vendor/profile", vendors, h.GetProfile)
		router.POST("vendor/items", vendors, h.AddItem)
		router.PUT("vendor/items/:id/availability", vendors, h.SetAvailability)
		router.GET("vendor/bookings", vendors, h.ListBookings)
		router.POST("vendor/bookings/:id/respond", vendors, h.Respond)
	}
}

func (h *VendorHandler) EnsureProfile(c *gin.Context) {
	var req model.CreateVendorRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	actor, _ := CurrentActor(c)

	vendor, err := h.service.EnsureProfile(requestContext(c), actor, req)
	if err != nil {
		handleError(c, err, "EnsureVendorProfile")
		return
	}

	handleSuccess(c, vendor, http.StatusOK)
}

func (h *VendorHandler) GetProfile(c *gin.Context) {
	actor, _ := CurrentActor(c)

	vendor, err := h.service.GetProfile(requestContext(c), actor)
	if err != nil {
		handleError(c, err, "GetVendorProfile")
		return
	}

	handleSuccess(c, vendor, http.StatusOK)
}

func (h *VendorHandler) AddItem(c *gin.Context) {
	var req model.CreateInventoryItemRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	actor, _ := CurrentActor(c)

	item, err := h.service.AddItem(requestContext(c), actor, req)
	if err != nil {
		handleError(c, err, "AddInventoryItem")
		return
	}

	handleSuccess(c, item, http.StatusCreated)
}

func (h *VendorHandler) ListItems(c *gin.Context) {
	vendorID, ok := BindUUID(c, "id")
	if !ok {
		return
	}

	items, err := h.service.ListItems(requestContext(c), vendorID)
	if err != nil {
		handleError(c, err, "ListInventoryItems")
		return
	}

	handleSuccess(c, items, http.StatusOK)
}

func (h *VendorHandler) SetAvailability(c *gin.Context) {
	itemID, ok := BindUUID(c, "id")
	if !ok {
		return
	}
	var req model.SetAvailabilityRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	actor, _ := CurrentActor(c)

	item, err := h.service.SetAvailability(requestContext(c), actor, itemID, req.Availability)
	if err != nil {
		handleError(c, err, "SetItemAvailability")
		return
	}

	handleSuccess(c, item, http.StatusOK)
}

func (h *VendorHandler) RequestBooking(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	actor, _ := CurrentActor(c)

	booking, err := h.service.RequestBooking(requestContext(c), actor, req)
	if err != nil {
		handleError(c, err, "RequestBooking")
		return
	}

	handleSuccess(c, booking, http.StatusCreated)
}

func (h *VendorHandler) ListBookings(c *gin.Context) {
	actor, _ := CurrentActor(c)

	bookings, err := h.service.ListBookings(requestContext(c), actor)
	if err != nil {
		handleError(c, err, "ListBookings")
		return
	}

	handleSuccess(c, bookings, http.StatusOK)
}

func (h *VendorHandler) Respond(c *gin.Context) {
	bookingID, ok := BindUUID(c, "id")
	if !ok {
		return
	}
	var req model.RespondBookingRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	actor, _ := CurrentActor(c)

	booking, err := h.service.Respond(requestContext(c), actor, bookingID, req)
	if err != nil {
		handleError(c, err, "RespondBooking")
		return
	}

	handleSuccess(c, booking, http.StatusOK)
}
