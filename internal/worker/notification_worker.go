package worker

import (
	"context"

	"github.com/7Pranavv/Evenoo/internal/metrics"
	"github.com/7Pranavv/Evenoo/internal/model"
	"github.com/7Pranavv/Evenoo/internal/queue"
	"github.com/7Pranavv/Evenoo/pkg/logger"

	"go.uber.org/zap"
)

// Pusher hands a stored notification to a delivery channel (push, email...).
type Pusher interface {
	Push(ctx context.Context, n *model.Notification) error
}

// LogPusher only records the notification; it stands in until a push provider is configured.
type LogPusher struct{}

func (LogPusher) Push(ctx context.Context, n *model.Notification) error {
	logger.WithComponent("push").Info("notification delivered",
		zap.String("notification_id", n.ID.String()),
		zap.String("recipient", n.RecipientUID.String()),
		zap.String("title", n.Title),
	)
	return nil
}

type NotificationWorker interface {
	Start(ctx context.Context) error
}

type NotificationWorkerImpl struct {
	pusher Pusher
	queue  queue.NotificationQueue
}

func NewNotificationWorker(pusher Pusher, queue queue.NotificationQueue) NotificationWorker {
	return &NotificationWorkerImpl{
		pusher: pusher,
		queue:  queue,
	}
}

// Start consumes the queue in the background until ctx is done.
func (w *NotificationWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.Subscribe(ctx)
	if err != nil {
		return err
	}

	log := logger.WithComponent("worker")

	go func() {
		for msg := range msgs {
			if err := w.pusher.Push(ctx, msg.Data); err != nil {
				log.Warn("push failed, will retry", zap.String("notification_id", msg.Data.ID.String()), zap.Error(err))
				metrics.NotificationsDelivered.WithLabelValues("retry").Inc()
				msg.Nack(true)
				continue
			}
			metrics.NotificationsDelivered.WithLabelValues("delivered").Inc()
			msg.Ack()
		}
	}()
	return nil
}
