package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/7Pranavv/Evenoo/internal/handler"
	"github.com/7Pranavv/Evenoo/internal/model"
	"github.com/7Pranavv/Evenoo/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUpdateDraft(t *testing.T) {
	t.Run("Success - body is passed through", func(t *testing.T) {
		mockService := mocks.NewMockDraftService(t)
		router := setupTestRouter(handler.NewDraftHandler(mockService), &organizer)
		body := `{"name":"Hack Night","fee_type":"paid"}`

		mockService.On("Update", mock.Anything, organizer, []byte(body)).Return(model.NewDraftState(), nil).Once()

		req := createJSONHTTPRequest(http.MethodPatch, "/api/v1/drafts", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failed - empty body", func(t *testing.T) {
		mockService := mocks.NewMockDraftService(t)
		router := setupTestRouter(handler.NewDraftHandler(mockService), &organizer)

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/drafts", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failed - participant", func(t *testing.T) {
		mockService := mocks.NewMockDraftService(t)
		router := setupTestRouter(handler.NewDraftHandler(mockService), &participant)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/drafts", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestSubmitDraft(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewMockDraftService(t)
		router := setupTestRouter(handler.NewDraftHandler(mockService), &organizer)

		mockService.On("Submit", mock.Anything, organizer, model.EventStatusPendingApproval).
			Return(&model.Event{Name: "Hack Night", Status: model.EventStatusPendingApproval}, nil).Once()

		req := createJSONHTTPRequest(http.MethodPost, "/api/v1/drafts/submit", model.SubmitDraftRequest{Status: model.EventStatusPendingApproval})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Failed - live is rejected at the edge", func(t *testing.T) {
		mockService := mocks.NewMockDraftService(t)
		router := setupTestRouter(handler.NewDraftHandler(mockService), &organizer)

		req := createJSONHTTPRequest(http.MethodPost, "/api/v1/drafts/submit", model.SubmitDraftRequest{Status: model.EventStatusLive})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSetDraftStep(t *testing.T) {
	mockService := mocks.NewMockDraftService(t)
	router := setupTestRouter(handler.NewDraftHandler(mockService), &organizer)
	state := model.NewDraftState()
	state.CurrentStep = 3

	mockService.On("SetStep", mock.Anything, organizer, 3).Return(state, nil).Once()

	req := createJSONHTTPRequest(http.MethodPut, "/api/v1/drafts/step", model.DraftStepRequest{Step: 3})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
