package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"microcredit-backoffice/internal/domain/notification"
	"microcredit-backoffice/pkg/id"
)

// NotificationOutbox is a notification.Sink that queues messages as pending
// rows for the delivery worker.
type NotificationOutbox struct{ db *gorm.DB }

func NewNotificationOutbox(db *gorm.DB) *NotificationOutbox { return &NotificationOutbox{db: db} }

func (o *NotificationOutbox) Send(ctx context.Context, clientID string, kind notification.Kind, message string) error {
	n := &notification.Notification{
		NotificationID: id.NewID32(),
		ClientID:       clientID,
		Kind:           kind,
		Message:        message,
		Status:         notification.StatusPending,
	}
	return o.db.WithContext(ctx).Create(n).Error
}

// ListByClient returns a client's notifications, newest first.
func (o *NotificationOutbox) ListByClient(ctx context.Context, clientID string, limit int) ([]notification.Notification, error) {
	var out []notification.Notification
	q := o.db.WithContext(ctx).Where("client_id = ?", clientID).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}
