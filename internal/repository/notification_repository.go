package repository

import (
	"context"
	"time"

	"github.com/7Pranavv/Evenoo/internal/database"
	"github.com/7Pranavv/Evenoo/internal/model"
	apperrors "github.com/7Pranavv/Evenoo/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	ListByRecipient(ctx context.Context, recipient uuid.UUID, limit int) ([]*model.Notification, error)
	// MarkRead only matches rows owned by recipient.
	MarkRead(ctx context.Context, id, recipient uuid.UUID) (*model.Notification, error)
}

type NotificationRepositoryImpl struct {
	store
}

func NewNotificationRepository(db database.DBTX, timeout time.Duration) NotificationRepository {
	return &NotificationRepositoryImpl{store: newStore(db, timeout)}
}

const notificationColumns = `id, recipient_uid, title, body, type, related_id, read, created_at`

func scanNotification(row pgx.Row) (*model.Notification, error) {
	var n model.Notification
	if err := row.Scan(&n.ID, &n.RecipientUID, &n.Title, &n.Body, &n.Type, &n.RelatedID, &n.Read, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO notifications (recipient_uid, title, body, type, related_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + notificationColumns

	created, err := scanNotification(r.db.QueryRow(ctx, query, n.RecipientUID, n.Title, n.Body, n.Type, n.RelatedID))
	if err != nil {
		return nil, wrapErr("create notification", err, nil)
	}
	return created, nil
}

func (r *NotificationRepositoryImpl) ListByRecipient(ctx context.Context, recipient uuid.UUID, limit int) ([]*model.Notification, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE recipient_uid = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.db.Query(ctx, query, recipient, limit)
	if err != nil {
		return nil, wrapErr("list notifications", err, nil)
	}
	items, err := collect(rows, scanNotification)
	if err != nil {
		return nil, wrapErr("list notifications", err, nil)
	}
	return items, nil
}

func (r *NotificationRepositoryImpl) MarkRead(ctx context.Context, id, recipient uuid.UUID) (*model.Notification, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `UPDATE notifications SET read = TRUE WHERE id = $1 AND recipient_uid = $2 RETURNING ` + notificationColumns
	n, err := scanNotification(r.db.QueryRow(ctx, query, id, recipient))
	if err != nil {
		return nil, wrapErr("mark notification read", err, apperrors.ErrNotificationNotFound)
	}
	return n, nil
}
