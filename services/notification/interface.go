package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"

	userRepo "autobook/database/repository/user"
	"autobook/utils"
)

// NotificationService sends booking-lifecycle pushes. Failures are the
// caller's to log; a missed push never fails a booking.
type NotificationService interface {
	SendPush(ctx context.Context, userID, title, body string) error
}

// DefaultNotificationService resolves FCM tokens through the user repository
// and sends via the shared messaging client.
type DefaultNotificationService struct {
	Users userRepo.UserRepository
}

func NewDefaultNotificationService(users userRepo.UserRepository) (*DefaultNotificationService, error) {
	if users == nil {
		return nil, fmt.Errorf("notification service initialization error: user repository is nil")
	}
	return &DefaultNotificationService{Users: users}, nil
}

// SendPush looks up the recipient's FCM token and sends a push.
func (s *DefaultNotificationService) SendPush(ctx context.Context, userID, title, body string) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("SendPush: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		return fmt.Errorf("SendPush: user %s has no FCM token", userID)
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendPush: failed to send FCM message: %w", err)
	}
	return nil
}
