package service

import (
	"context"

	"github.com/7Pranavv/Evenoo/internal/model"
	"github.com/7Pranavv/Evenoo/internal/queue"
	"github.com/7Pranavv/Evenoo/internal/repository"
	"github.com/7Pranavv/Evenoo/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultNotificationLimit = 50

type NotificationService interface {
	// Send stores the notification and then queues it for push delivery.
	Send(ctx context.Context, n *model.Notification) (*model.Notification, error)
	ListForRecipient(ctx context.Context, recipient uuid.UUID, limit int) ([]*model.Notification, error)
	MarkRead(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Notification, error)
}

type NotificationServiceImpl struct {
	repo  repository.NotificationRepository
	queue queue.NotificationQueue
}

// NewNotificationService accepts a nil queue, in which case records are only stored.
func NewNotificationService(repo repository.NotificationRepository, queue queue.NotificationQueue) NotificationService {
	return &NotificationServiceImpl{repo: repo, queue: queue}
}

func (s *NotificationServiceImpl) Send(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	created, err := s.repo.Create(ctx, n)
	if err != nil {
		return nil, err
	}

	if s.queue != nil {
		// the stored record is what the recipient sees; push is best effort
		if err := s.queue.Publish(context.WithoutCancel(ctx), created); err != nil {
			logger.WithComponent("notification").Warn("queue push failed",
				zap.String("notification_id", created.ID.String()),
				zap.Error(err),
			)
		}
	}
	return created, nil
}

func (s *NotificationServiceImpl) ListForRecipient(ctx context.Context, recipient uuid.UUID, limit int) ([]*model.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	return s.repo.ListByRecipient(ctx, recipient, limit)
}

func (s *NotificationServiceImpl) MarkRead(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Notification, error) {
	return s.repo.MarkRead(ctx, id, actor.UserID)
}
