package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Type identifies the notification kind
type Type string

const (
	TypeBookingConfirmed Type = "BOOKING_CONFIRMED"
	TypeBookingCancelled Type = "BOOKING_CANCELLED"
	TypeRefundFailed     Type = "REFUND_FAILED"
	TypePasswordReset    Type = "PASSWORD_RESET"
)

// IsAlert reports whether the notification targets the ops alert channel
// instead of the recipient. REFUND_FAILED exists for manual follow-up after
// a swallowed refund failure.
func (t Type) IsAlert() bool {
	return t == TypeRefundFailed
}

// Notification is the message published to Kafka
type Notification struct {
	ID             uuid.UUID              `json:"id"`
	Type           Type                   `json:"type"`
	RecipientID    uuid.UUID              `json:"recipient_id"`
	RecipientEmail string                 `json:"recipient_email,omitempty"`
	RecipientName  string                 `json:"recipient_name,omitempty"`
	BookingID      *uuid.UUID             `json:"booking_id,omitempty"`
	Subject        string                 `json:"subject"`
	Data           map[string]interface{} `json:"data,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

// NewNotification builds a notification with a fresh id and timestamp
func NewNotification(notifType Type, recipientID uuid.UUID) *Notification {
	return &Notification{
		ID:          uuid.New(),
		Type:        notifType,
		RecipientID: recipientID,
		CreatedAt:   time.Now(),
	}
}

// ToJSON serializes the notification for the wire
func (n *Notification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

// PartitionKey routes all messages for one recipient to the same partition
func (n *Notification) PartitionKey() string {
	return n.RecipientID.String()
}

// Subject lines per type
func subjectFor(notifType Type, data map[string]interface{}) string {
	switch notifType {
	case TypeBookingConfirmed:
		return "Your booking is confirmed"
	case TypeBookingCancelled:
		return "Your booking has been cancelled"
	case TypeRefundFailed:
		return "ALERT: refund failed, manual follow-up required"
	case TypePasswordReset:
		return "Password reset request"
	default:
		return "Notification from atelier"
	}
}
