package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/7Pranavv/Evenoo/internal/model"
	repoMocks "github.com/7Pranavv/Evenoo/internal/repository/mocks"
	"github.com/7Pranavv/Evenoo/internal/service"
	serviceMocks "github.com/7Pranavv/Evenoo/internal/service/mocks"
	apperrors "github.com/7Pranavv/Evenoo/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	organizerID = uuid.MustParse("a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11")
	adminID     = uuid.MustParse("b1eebc99-9c0b-4ef8-bb6d-6bb9bd380a22")
	strangerID  = uuid.MustParse("c2eebc99-9c0b-4ef8-bb6d-6bb9bd380a33")

	organizer = model.Actor{UserID: organizerID, Role: model.RoleOrganizer}
	admin     = model.Actor{UserID: adminID, Role: model.RoleAdmin}
	stranger  = model.Actor{UserID: strangerID, Role: model.RoleParticipant}
)

func setupEventServiceMocks(t *testing.T) (service.EventService, *repoMocks.MockEventRepository, *serviceMocks.MockNotificationService) {
	eventRepo := repoMocks.NewMockEventRepository(t)
	notifications := serviceMocks.NewMockNotificationService(t)
	return service.NewEventService(eventRepo, notifications), eventRepo, notifications
}

func completeEvent(status model.EventStatus) *model.Event {
	return &model.Event{
		ID:        uuid.New(),
		Name:      "Hack Night",
		Tagline:   "Build something",
		EventType: model.EventTypeIndividual,
		FeeType:   model.FeeTypeFree,
		Status:    status,
		CreatedBy: organizerID,
	}
}

func withStatus(e *model.Event, status model.EventStatus) *model.Event {
	out := *e
	out.Status = status
	return &out
}

func TestEventService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - free event drops fee amounts", func(t *testing.T) {
		svc, eventRepo, _ := setupEventServiceMocks(t)
		structure := model.FeeStructurePerPerson
		event := completeEvent(model.EventStatusDraft)
		event.FeeStructure = &structure
		event.FeePerPerson = 100

		eventRepo.On("Create", ctx, mock.MatchedBy(func(e *model.Event) bool {
			return e.CreatedBy == organizerID && e.FeeStructure == nil && e.FeePerPerson == 0
		})).Return(event, nil).Once()

		created, err := svc.Create(ctx, organizer, event)

		require.NoError(t, err)
		assert.Equal(t, model.EventStatusDraft, created.Status)
	})

	t.Run("Failed - participant cannot create", func(t *testing.T) {
		svc, eventRepo, _ := setupEventServiceMocks(t)

		_, err := svc.Create(ctx, stranger, completeEvent(model.EventStatusDraft))

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Failed - live status rejected", func(t *testing.T) {
		svc, _, _ := setupEventServiceMocks(t)

		_, err := svc.Create(ctx, organizer, completeEvent(model.EventStatusLive))

		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "status", vErr.Field)
	})

	t.Run("Failed - pending event needs a tagline", func(t *testing.T) {
		svc, _, _ := setupEventServiceMocks(t)
		event := completeEvent(model.EventStatusPendingApproval)
		event.Tagline = "  "

		_, err := svc.Create(ctx, organizer, event)

		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "tagline", vErr.Field)
	})

	t.Run("Failed - paid event without structure", func(t *testing.T) {
		svc, _, _ := setupEventServiceMocks(t)
		event := completeEvent(model.EventStatusPendingApproval)
		event.FeeType = model.FeeTypePaid

		_, err := svc.Create(ctx, organizer, event)

		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "fee_structure", vErr.Field)
	})
}

func TestEventService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, eventRepo, _ := setupEventServiceMocks(t)
		event := completeEvent(model.EventStatusDraft)

		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil).Once()
		eventRepo.On("UpdateStatus", ctx, event.ID, model.EventStatusPendingApproval, (*string)(nil)).
			Return(withStatus(event, model.EventStatusPendingApproval), nil).Once()

		updated, err := svc.Submit(ctx, organizer, event.ID)

		require.NoError(t, err)
		assert.Equal(t, model.EventStatusPendingApproval, updated.Status)
	})

	t.Run("Failed - not the owner", func(t *testing.T) {
		svc, eventRepo, _ := setupEventServiceMocks(t)
		event := completeEvent(model.EventStatusDraft)

		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil).Once()

		_, err := svc.Submit(ctx, model.Actor{UserID: strangerID, Role: model.RoleOrganizer}, event.ID)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		eventRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failed - live event cannot be submitted", func(t *testing.T) {
		svc, eventRepo, _ := setupEventServiceMocks(t)
		event := completeEvent(model.EventStatusLive)

		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil).Once()

		_, err := svc.Submit(ctx, organizer, event.ID)

		var tErr *apperrors.InvalidTransitionError
		require.ErrorAs(t, err, &tErr)
		assert.Equal(t, "live", tErr.From)
		eventRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failed - incomplete draft", func(t *testing.T) {
		svc, eventRepo, _ := setupEventServiceMocks(t)
		event := completeEvent(model.EventStatusDraft)
		event.Name = ""

		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil).Once()

		_, err := svc.Submit(ctx, organizer, event.ID)

		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "name", vErr.Field)
	})

	t.Run("Failed - event not found", func(t *testing.T) {
		svc, eventRepo, _ := setupEventServiceMocks(t)
		id := uuid.New()

		eventRepo.On("FindByID", ctx, id).Return(nil, apperrors.ErrEventNotFound).Once()

		_, err := svc.Submit(ctx, organizer, id)

		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})
}

func TestEventService_ApproveReject(t *testing.T) {
	ctx := context.Background()

	notificationFor := func(title, body string) interface{} {
		return mock.MatchedBy(func(n *model.Notification) bool {
			return n.RecipientUID == organizerID && n.Title == title && n.Body == body &&
				n.Type == model.NotificationTypeEventStatus
		})
	}

	t.Run("Success - approve with default body", func(t *testing.T) {
		svc, eventRepo, notifications := setupEventServiceMocks(t)
		event := completeEvent(model.EventStatusPendingApproval)
		live := withStatus(event, model.EventStatusLive)

		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil).Once()
		eventRepo.On("UpdateStatus", ctx, event.ID, model.EventStatusLive, mock.Anything).Return(live, nil).Once()
		notifications.On("Send", ctx, notificationFor(service.ApprovedTitle, service.ApprovedDefaultBody)).
			Return(&model.Notification{}, nil).Once()

		updated, err := svc.Approve(ctx, admin, event.ID, "")

		require.NoError(t, err)
		assert.Equal(t, model.EventStatusLive, updated.Status)
	})

	t.Run("Success - reject uses admin notes", func(t *testing.T) {
		svc, eventRepo, notifications := setupEventServiceMocks(t)
		event := completeEvent(model.EventStatusPendingApproval)
		notes := "Add a venue address"

		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil).Once()
		eventRepo.On("UpdateStatus", ctx, event.ID, model.EventStatusDraft, mock.MatchedBy(func(n *string) bool {
			return n != nil && *n == notes
		})).Return(withStatus(event, model.EventStatusDraft), nil).Once()
		notifications.On("Send", ctx, notificationFor(service.RejectedTitle, notes)).
			Return(&model.Notification{}, nil).Once()

		updated, err := svc.Reject(ctx, admin, event.ID, notes)

		require.NoError(t, err)
		assert.Equal(t, model.EventStatusDraft, updated.Status)
	})

	t.Run("Success - notification failure does not fail approval", func(t *testing.T) {
		svc, eventRepo, notifications := setupEventServiceMocks(t)
		event := completeEvent(model.EventStatusPendingApproval)

		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil).Once()
		eventRepo.On("UpdateStatus", ctx, event.ID, model.EventStatusLive, mock.Anything).
			Return(withStatus(event, model.EventStatusLive), nil).Once()
		notifications.On("Send", ctx, mock.Anything).Return(nil, errors.New("db down")).Once()

		_, err := svc.Approve(ctx, admin, event.ID, "")

		require.NoError(t, err)
	})

	t.Run("Failed - organizer cannot approve", func(t *testing.T) {
		svc, eventRepo, notifications := setupEventServiceMocks(t)
		event := completeEvent(model.EventStatusPendingApproval)

		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil).Once()

		_, err := svc.Approve(ctx, organizer, event.ID, "")

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		notifications.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Failed - approving a draft", func(t *testing.T) {
		svc, eventRepo, _ := setupEventServiceMocks(t)
		event := completeEvent(model.EventStatusDraft)

		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil).Once()

		_, err := svc.Approve(ctx, admin, event.ID, "")

		var tErr *apperrors.InvalidTransitionError
		require.ErrorAs(t, err, &tErr)
		eventRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEventService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - owner cancels live event", func(t *testing.T) {
		svc, eventRepo, _ := setupEventServiceMocks(t)
		event := completeEvent(model.EventStatusLive)

		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil).Once()
		eventRepo.On("UpdateStatus", ctx, event.ID, model.EventStatusCancelled, (*string)(nil)).
			Return(withStatus(event, model.EventStatusCancelled), nil).Once()

		updated, err := svc.Cancel(ctx, organizer, event.ID)

		require.NoError(t, err)
		assert.Equal(t, model.EventStatusCancelled, updated.Status)
	})

	t.Run("Failed - completed is terminal", func(t *testing.T) {
		svc, eventRepo, _ := setupEventServiceMocks(t)
		event := completeEvent(model.EventStatusCompleted)

		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil).Once()

		_, err := svc.Cancel(ctx, admin, event.ID)

		var tErr *apperrors.InvalidTransitionError
		assert.ErrorAs(t, err, &tErr)
	})

	t.Run("Failed - stranger", func(t *testing.T) {
		svc, eventRepo, _ := setupEventServiceMocks(t)
		event := completeEvent(model.EventStatusLive)

		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil).Once()

		_, err := svc.Cancel(ctx, stranger, event.ID)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

func TestEventService_SaveDraft(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, eventRepo, _ := setupEventServiceMocks(t)
		event := completeEvent(model.EventStatusDraft)
		name := "Hack Day"
		params := model.UpdateEventParams{Name: &name}

		updated := *event
		updated.Name = name
		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil).Once()
		eventRepo.On("Update", ctx, event.ID, params).Return(&updated, nil).Once()

		got, err := svc.SaveDraft(ctx, organizer, event.ID, params)

		require.NoError(t, err)
		assert.Equal(t, name, got.Name)
	})

	t.Run("Success - fee amounts on a free event are cleared", func(t *testing.T) {
		svc, eventRepo, _ := setupEventServiceMocks(t)
		event := completeEvent(model.EventStatusDraft)
		fee := 100.0
		structure := model.FeeStructurePerPerson
		name := "Hack Day"

		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil).Once()
		eventRepo.On("Update", ctx, event.ID, mock.MatchedBy(func(p model.UpdateEventParams) bool {
			return p.FeeType != nil && *p.FeeType == model.FeeTypeFree &&
				p.FeeStructure == nil && p.FeePerPerson == nil &&
				p.Name != nil && *p.Name == name
		})).Return(event, nil).Once()

		_, err := svc.SaveDraft(ctx, organizer, event.ID, model.UpdateEventParams{
			Name:         &name,
			FeeStructure: &structure,
			FeePerPerson: &fee,
		})

		require.NoError(t, err)
	})

	t.Run("Success - switching to paid keeps fee amounts", func(t *testing.T) {
		svc, eventRepo, _ := setupEventServiceMocks(t)
		event := completeEvent(model.EventStatusDraft)
		paid := model.FeeTypePaid
		structure := model.FeeStructurePerPerson
		fee := 100.0
		params := model.UpdateEventParams{FeeType: &paid, FeeStructure: &structure, FeePerPerson: &fee}

		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil).Once()
		eventRepo.On("Update", ctx, event.ID, params).Return(event, nil).Once()

		_, err := svc.SaveDraft(ctx, organizer, event.ID, params)

		require.NoError(t, err)
	})

	t.Run("Failed - only drafts are editable", func(t *testing.T) {
		svc, eventRepo, _ := setupEventServiceMocks(t)
		event := completeEvent(model.EventStatusPendingApproval)
		name := "Hack Day"

		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil).Once()

		_, err := svc.SaveDraft(ctx, organizer, event.ID, model.UpdateEventParams{Name: &name})

		var tErr *apperrors.InvalidTransitionError
		require.ErrorAs(t, err, &tErr)
		eventRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failed - min team size above max", func(t *testing.T) {
		svc, eventRepo, _ := setupEventServiceMocks(t)
		event := completeEvent(model.EventStatusDraft)
		event.EventType = model.EventTypeTeam
		event.MinTeamSize = 1
		event.MaxTeamSize = 4
		minSize := 5

		eventRepo.On("FindByID", ctx, event.ID).Return(event, nil).Once()

		_, err := svc.SaveDraft(ctx, organizer, event.ID, model.UpdateEventParams{MinTeamSize: &minSize})

		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "min_team_size", vErr.Field)
	})
}

func TestEventService_CompletePastEvents(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	svc, eventRepo, _ := setupEventServiceMocks(t)
	ok := completeEvent(model.EventStatusLive)
	failing := completeEvent(model.EventStatusLive)

	eventRepo.On("ListLiveEndedBefore", ctx, now).Return([]*model.Event{ok, failing}, nil).Once()
	eventRepo.On("FindByID", ctx, ok.ID).Return(ok, nil).Once()
	eventRepo.On("FindByID", ctx, failing.ID).Return(failing, nil).Once()
	eventRepo.On("UpdateStatus", ctx, ok.ID, model.EventStatusCompleted, (*string)(nil)).
		Return(withStatus(ok, model.EventStatusCompleted), nil).Once()
	eventRepo.On("UpdateStatus", ctx, failing.ID, model.EventStatusCompleted, (*string)(nil)).
		Return(nil, apperrors.NewStoreError("update event status", context.DeadlineExceeded)).Once()

	completed, err := svc.CompletePastEvents(ctx, now)

	assert.Equal(t, 1, completed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEventService_ListPendingApproval(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, eventRepo, _ := setupEventServiceMocks(t)
		pending := model.EventStatusPendingApproval

		eventRepo.On("List", ctx, model.EventFilter{Status: &pending}).
			Return([]*model.Event{completeEvent(pending)}, nil).Once()

		events, err := svc.ListPendingApproval(ctx, admin)

		require.NoError(t, err)
		assert.Len(t, events, 1)
	})

	t.Run("Failed - organizer", func(t *testing.T) {
		svc, _, _ := setupEventServiceMocks(t)

		_, err := svc.ListPendingApproval(ctx, organizer)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}
