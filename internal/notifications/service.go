package notifications

import (
	"context"

	"github.com/google/uuid"
)

// Service is the high-level publishing API consumed by the domain services.
// It satisfies bookings.EventPublisher and auth.ResetMailer.
type Service struct {
	producer Producer
}

func NewService(producer Producer) *Service {
	return &Service{producer: producer}
}

// PublishBookingEvent publishes a booking lifecycle notification. The event
// type string must match one of the Type constants.
func (s *Service) PublishBookingEvent(ctx context.Context, eventType string, userID, bookingID uuid.UUID, data map[string]interface{}) error {
	notification := NewNotification(Type(eventType), userID)
	notification.BookingID = &bookingID
	notification.Data = data
	notification.Subject = subjectFor(notification.Type, data)

	return s.producer.Publish(ctx, notification)
}

// PublishPasswordReset publishes a PASSWORD_RESET notification for the account
func (s *Service) PublishPasswordReset(ctx context.Context, userID uuid.UUID, email, name string) error {
	notification := NewNotification(TypePasswordReset, userID)
	notification.RecipientEmail = email
	notification.RecipientName = name
	notification.Subject = subjectFor(TypePasswordReset, nil)

	return s.producer.Publish(ctx, notification)
}

func (s *Service) Close() error {
	return s.producer.Close()
}
