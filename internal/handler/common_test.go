package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/7Pranavv/Evenoo/internal/handler"
	"github.com/7Pranavv/Evenoo/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	InvalidJSON = `{"invalid": json}`

	organizerID = uuid.MustParse("a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11")
	adminID     = uuid.MustParse("b1eebc99-9c0b-4ef8-bb6d-6bb9bd380a22")
	userID      = uuid.MustParse("c2eebc99-9c0b-4ef8-bb6d-6bb9bd380a33")

	organizer   = model.Actor{UserID: organizerID, Role: model.RoleOrganizer}
	admin       = model.Actor{UserID: adminID, Role: model.RoleAdmin}
	participant = model.Actor{UserID: userID, Role: model.RoleParticipant}
)

type routeRegistrar interface {
	RegisterRoutes(r *gin.Engine)
}

// setupTestRouter mounts h behind a fixed actor; a nil actor makes the caller anonymous.
func setupTestRouter(h routeRegistrar, actor *model.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if actor != nil {
		router.Use(handler.SetActor(*actor))
	}
	h.RegisterRoutes(router)
	return router
}

// create JSON request body
func createJSONRequest(data interface{}) *bytes.Buffer {
	if s, ok := data.(string); ok {
		return bytes.NewBufferString(s)
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return bytes.NewBuffer([]byte(""))
	}
	return bytes.NewBuffer(jsonData)
}

// create HTTP request with JSON body
func createJSONHTTPRequest(method, url string, data interface{}) *http.Request {
	req, err := http.NewRequest(method, url, createJSONRequest(data))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}
