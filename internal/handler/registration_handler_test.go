package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/7Pranavv/Evenoo/internal/handler"
	"github.com/7Pranavv/Evenoo/internal/model"
	"github.com/7Pranavv/Evenoo/internal/service/mocks"
	apperrors "github.com/7Pranavv/Evenoo/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRegister(t *testing.T) {
	eventID := uuid.New()
	request := model.CreateRegistrationRequest{
		EventID: eventID,
		Type:    model.RegistrationTypeIndividual,
		Members: []model.RegistrationMemberInput{{Name: "Asha", Email: "asha@example.com"}},
	}

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewMockRegistrationService(t)
		router := setupTestRouter(handler.NewRegistrationHandler(mockService), &participant)

		mockService.On("Register", mock.Anything, participant, mock.MatchedBy(func(req model.CreateRegistrationRequest) bool {
			return req.EventID == eventID && len(req.Members) == 1
		})).Return(&model.Registration{ID: uuid.New(), PaymentStatus: model.PaymentStatusPaid}, nil).Once()

		req := createJSONHTTPRequest(http.MethodPost, "/api/v1/registrations", request)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Failed - no members", func(t *testing.T) {
		mockService := mocks.NewMockRegistrationService(t)
		router := setupTestRouter(handler.NewRegistrationHandler(mockService), &participant)

		req := createJSONHTTPRequest(http.MethodPost, "/api/v1/registrations", model.CreateRegistrationRequest{
			EventID: eventID,
			Type:    model.RegistrationTypeIndividual,
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failed - ErrEventFull", func(t *testing.T) {
		mockService := mocks.NewMockRegistrationService(t)
		router := setupTestRouter(handler.NewRegistrationHandler(mockService), &participant)

		mockService.On("Register", mock.Anything, participant, mock.Anything).Return(nil, apperrors.ErrEventFull).Once()

		req := createJSONHTTPRequest(http.MethodPost, "/api/v1/registrations", request)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Failed - IssuanceError", func(t *testing.T) {
		mockService := mocks.NewMockRegistrationService(t)
		router := setupTestRouter(handler.NewRegistrationHandler(mockService), &participant)

		mockService.On("Register", mock.Anything, participant, mock.Anything).
			Return(nil, &apperrors.IssuanceError{Attempts: 5, Err: apperrors.ErrDuplicateTicketID}).Once()

		req := createJSONHTTPRequest(http.MethodPost, "/api/v1/registrations", request)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("Failed - anonymous", func(t *testing.T) {
		mockService := mocks.NewMockRegistrationService(t)
		router := setupTestRouter(handler.NewRegistrationHandler(mockService), nil)

		req := createJSONHTTPRequest(http.MethodPost, "/api/v1/registrations", request)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestPayRegistration(t *testing.T) {
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewMockRegistrationService(t)
		router := setupTestRouter(handler.NewRegistrationHandler(mockService), &participant)

		mockService.On("PayWithWallet", mock.Anything, participant, id).
			Return(&model.Registration{ID: id, PaymentStatus: model.PaymentStatusPaid}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/registrations/"+id.String()+"/pay", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"payment_status":"paid"`)
	})

	t.Run("Failed - ErrInsufficientBalance", func(t *testing.T) {
		mockService := mocks.NewMockRegistrationService(t)
		router := setupTestRouter(handler.NewRegistrationHandler(mockService), &participant)

		mockService.On("PayWithWallet", mock.Anything, participant, id).Return(nil, apperrors.ErrInsufficientBalance).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/registrations/"+id.String()+"/pay", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestListEventRegistrations(t *testing.T) {
	eventID := uuid.New()
	mockService := mocks.NewMockRegistrationService(t)
	router := setupTestRouter(handler.NewRegistrationHandler(mockService), &organizer)

	mockService.On("ListByEvent", mock.Anything, organizer, eventID).Return([]*model.Registration{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/"+eventID.String()+"/registrations", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
