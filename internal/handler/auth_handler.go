package handler

import (
	"net/http"

	"github.com/7Pranavv/Evenoo/internal/model"
	"github.com/7Pranavv/Evenoo/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1/auth")
	{
		router.POST("signup", h.SignUp)
		router.POST("signin", h.SignIn)
		router.POST("signout", RequireAuth(), h.SignOut)
		router.GET("me", RequireAuth(), h.Me)
		router.PUT("role", RequireAuth(), h.SetRole)
	}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req model.SignUpRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	session, err := h.service.SignUp(requestContext(c), req)
	if err != nil {
		handleError(c, err, "SignUp")
		return
	}

	handleSuccess(c, session, http.StatusCreated)
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req model.SignInRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	session, err := h.service.SignIn(requestContext(c), req)
	if err != nil {
		handleError(c, err, "SignIn")
		return
	}

	handleSuccess(c, session, http.StatusOK)
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.service.SignOut(requestContext(c), c.GetString(tokenKey)); err != nil {
		handleError(c, err, "SignOut")
		return
	}

	handleSuccess(c, nil, http.StatusNoContent)
}

func (h *AuthHandler) Me(c *gin.Context) {
	actor, _ := CurrentActor(c)

	user, err := h.service.Me(requestContext(c), actor)
	if err != nil {
		handleError(c, err, "Me")
		return
	}

	handleSuccess(c, user, http.StatusOK)
}

func (h *AuthHandler) SetRole(c *gin.Context) {
	var req model.SetRoleRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	actor, _ := CurrentActor(c)

	user, err := h.service.SetRole(requestContext(c), actor, req.Role)
	if err != nil {
		handleError(c, err, "SetRole")
		return
	}

	handleSuccess(c, user, http.StatusOK)
}
