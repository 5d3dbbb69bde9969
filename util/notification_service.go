// util/notification_service.go

package util

import (
	"context"

	"go.uber.org/zap"

	logger "github.com/heritagearc/gatekeeper/logging"
)

type NotificationService struct {
	// A message queue client or mail gateway would live here.
}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyAccessDenied informs the compliance channel that a request was
// refused. Embargo and legal-hold denials are the ones compliance officers
// follow up on.
func (n *NotificationService) NotifyAccessDenied(ctx context.Context, objectID, userID string, reasons []string) error {
	logger.Info("NOTIFICATION: Access denied",
		zap.String("objectID", objectID),
		zap.String("userID", userID),
		zap.Strings("reasons", reasons))
	return nil
}

// NotifyAdmins notifies all system administrators.
func (n *NotificationService) NotifyAdmins(ctx context.Context, message string) error {
	logger.Info("Notifying admins", zap.String("message", message))
	return nil
}

// SendEmail dispatches a mail notification.
func (n *NotificationService) SendEmail(ctx context.Context, recipient, subject, body string) error {
	logger.Info("Sending email",
		zap.String("recipient", recipient),
		zap.String("subject", subject))
	return nil
}
