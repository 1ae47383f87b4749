package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/7Pranavv/Evenoo/internal/auth"
	"github.com/7Pranavv/Evenoo/internal/cache"
	"github.com/7Pranavv/Evenoo/internal/handler"
	"github.com/7Pranavv/Evenoo/internal/model"
	"github.com/7Pranavv/Evenoo/internal/queue"
	"github.com/7Pranavv/Evenoo/internal/repository"
	"github.com/7Pranavv/Evenoo/internal/service"
	"github.com/7Pranavv/Evenoo/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDB   *pgxpool.Pool
	testRdb  *redis.Client
	setupErr error
)

func TestMain(m *testing.M) {
	db, rdb, cleanup, err := testutil.Setup()
	if err != nil {
		log.Printf("Integration stores unavailable, tests will be skipped: %v", err)
		setupErr = err
		os.Exit(m.Run())
	}
	testDB = db
	testRdb = rdb

	code := m.Run()
	cleanup()
	os.Exit(code)
}

func setupIntegrationTest(t *testing.T) *gin.Engine {
	t.Helper()
	if setupErr != nil {
		t.Skipf("integration stores unavailable: %v", setupErr)
	}
	ctx := context.Background()
	require.NoError(t, testutil.Reset(ctx, testDB, testRdb))

	timeout := 5 * time.Second
	eventRepo := repository.NewEventRepository(testDB, timeout)
	userRepo := repository.NewUserRepository(testDB, timeout)

	tokens := auth.NewTokenManager("integration-secret", time.Hour)
	blacklist := cache.NewRedisTokenBlacklist(testRdb)

	notifications := service.NewNotificationService(repository.NewNotificationRepository(testDB, timeout), queue.NewMemoryNotificationQueue(100))
	events := service.NewEventService(eventRepo, notifications)
	tickets := service.NewTicketService(repository.NewTicketRepository(testDB, timeout), eventRepo, 5)
	wallet := service.NewWalletService(repository.NewWalletRepository(testDB, timeout), userRepo)
	registrations := service.NewRegistrationService(
		repository.NewRegistrationRepository(testDB, timeout),
		eventRepo,
		tickets,
		wallet,
		notifications,
		cache.NewRedisSeatInventory(testRdb),
	)
	drafts := service.NewDraftService(cache.NewRedisDraftStore(testRdb, time.Hour), events, userRepo)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(handler.Authenticate(auth.NewSessionResolver(tokens, blacklist, userRepo, 3*time.Second)))
	handler.NewAuthHandler(service.NewAuthService(userRepo, tokens, blacklist)).RegisterRoutes(router)
	handler.NewEventHandler(events).RegisterRoutes(router)
	handler.NewDraftHandler(drafts).RegisterRoutes(router)
	handler.NewRegistrationHandler(registrations).RegisterRoutes(router)
	handler.NewTicketHandler(tickets).RegisterRoutes(router)
	handler.NewWalletHandler(wallet).RegisterRoutes(router)
	handler.NewNotificationHandler(notifications).RegisterRoutes(router)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func signUp(t *testing.T, router *gin.Engine, name, email string) *model.SessionResponse {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/signup", "", model.SignUpRequest{
		Name:     name,
		Email:    email,
		Password: "correct horse battery",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[*model.SessionResponse](t, w)
}

func TestPaidEventFlow(t *testing.T) {
	router := setupIntegrationTest(t)
	ctx := context.Background()

	organizer := signUp(t, router, "Priya", "priya@example.com")
	admin := signUp(t, router, "Admin", "admin@example.com")
	participant := signUp(t, router, "Asha", "asha@example.com")

	w := doRequest(t, router, http.MethodPut, "/api/v1/auth/role", organizer.Token, model.SetRoleRequest{Role: model.RoleOrganizer})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	// admin is never self-selectable
	_, err := testDB.Exec(ctx, "UPDATE users SET role = 'admin' WHERE id = $1", admin.User.ID)
	require.NoError(t, err)

	// organizer builds and submits the event
	w = doRequest(t, router, http.MethodPatch, "/api/v1/drafts", organizer.Token, map[string]string{
		"name":             "Hack Night",
		"tagline":          "Build something",
		"fee_type":         "paid",
		"fee_structure":    "per_person",
		"fee_per_person":   "100",
		"max_participants": "50",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodPost, "/api/v1/drafts/submit", organizer.Token, model.SubmitDraftRequest{Status: model.EventStatusPendingApproval})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	event := decode[*model.Event](t, w)
	assert.Equal(t, model.EventStatusPendingApproval, event.Status)
	require.NotNil(t, event.ContactEmail)
	assert.Equal(t, "priya@example.com", *event.ContactEmail)

	w = doRequest(t, router, http.MethodPost, "/api/v1/events/"+event.ID.String()+"/approve", organizer.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/v1/events/"+event.ID.String()+"/approve", admin.Token, model.ReviewEventRequest{Notes: "Welcome aboard"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, model.EventStatusLive, decode[*model.Event](t, w).Status)

	w = doRequest(t, router, http.MethodGet, "/api/v1/notifications", organizer.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	notes := decode[[]*model.Notification](t, w)
	require.Len(t, notes, 1)
	assert.Equal(t, "Event Approved", notes[0].Title)

	// participant registers and pays from the wallet
	w = doRequest(t, router, http.MethodPost, "/api/v1/registrations", participant.Token, model.CreateRegistrationRequest{
		EventID: event.ID,
		Type:    model.RegistrationTypeIndividual,
		Members: []model.RegistrationMemberInput{{Name: "Asha", Email: "asha@example.com"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	registration := decode[*model.Registration](t, w)
	assert.Equal(t, 100.0, registration.TotalFee)
	assert.Equal(t, model.PaymentStatusPending, registration.PaymentStatus)
	require.Len(t, registration.Members, 1)
	ticketID := registration.Members[0].TicketID

	w = doRequest(t, router, http.MethodPost, "/api/v1/registrations/"+registration.ID.String()+"/pay", participant.Token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/v1/wallet/top-up", participant.Token, model.TopUpRequest{Amount: 500})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodPost, "/api/v1/registrations/"+registration.ID.String()+"/pay", participant.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, model.PaymentStatusPaid, decode[*model.Registration](t, w).PaymentStatus)

	w = doRequest(t, router, http.MethodGet, "/api/v1/wallet", participant.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"balance":400}`, w.Body.String())

	// organizer scans the ticket twice
	w = doRequest(t, router, http.MethodPost, "/api/v1/tickets/"+ticketID+"/check-in", organizer.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := decode[*model.CheckInResult](t, w)
	assert.False(t, first.AlreadyCheckedIn)

	w = doRequest(t, router, http.MethodPost, "/api/v1/tickets/"+ticketID+"/check-in", organizer.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	second := decode[*model.CheckInResult](t, w)
	assert.True(t, second.AlreadyCheckedIn)
	assert.True(t, first.CheckedInAt.Equal(second.CheckedInAt))
}

func TestSignOutRevokesSession(t *testing.T) {
	router := setupIntegrationTest(t)

	session := signUp(t, router, "Asha", "asha@example.com")

	w := doRequest(t, router, http.MethodGet, "/api/v1/auth/me", session.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/v1/auth/signout", session.Token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/v1/auth/me", session.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
