package notification

import (
	"context"
	"time"
)

type Kind string

const (
	KindReminder            Kind = "reminder"
	KindPenalty             Kind = "penalty"
	KindPaymentConfirmation Kind = "payment_confirmation"
	KindLoanConfirmation    Kind = "loan_confirmation"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusRead    Status = "read"
)

type Notification struct {
	ID             uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	NotificationID string    `gorm:"column:notification_id;size:32;not null;uniqueIndex"`
	ClientID       string    `gorm:"column:client_id;size:32;index"`
	Kind           Kind      `gorm:"column:kind;size:32;not null"`
	Message        string    `gorm:"column:message;type:text;not null"`
	Status         Status    `gorm:"column:status;size:16;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Notification) TableName() string { return "notifications" }

// Sink accepts a message for delivery. Delivery itself happens elsewhere.
type Sink interface {
	Send(ctx context.Context, clientID string, kind Kind, message string) error
}
