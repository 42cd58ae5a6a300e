package services

import (
	"context"
	"time"

	"github.com/kbukum/servicekit/config"
	"github.com/kbukum/servicekit/httpclient/rest"
	"github.com/kbukum/servicekit/logger"
	"github.com/kbukum/servicekit/observability"
	"github.com/kbukum/servicekit/validation"
)

// NotificationClient sends notifications through the notification service.
type NotificationClient struct {
	*client
}

// NewNotificationClient creates a notification service client.
func NewNotificationClient(cfg config.ClientConfig, opts ...Option) (*NotificationClient, error) {
	c, err := newClient(cfg, "notification", opts...)
	if err != nil {
		return nil, err
	}
	return &NotificationClient{client: c}, nil
}

// SendNotification delivers a message to a user. The request is validated
// before any network call is made.
func (c *NotificationClient) SendNotification(ctx context.Context, userID int, message string) (NotificationResult, error) {
	req := NotificationRequest{UserID: userID, Message: message}
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	ctx, span := observability.StartSpan(ctx, "notification.send_notification")
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrUserID, userID)

	start := time.Now()
	c.log.Debug("sending notification", logger.Fields("user_id", userID))

	resp, err := rest.Post[NotificationResult](ctx, c.rest, "/notifications", req)
	if err != nil {
		err = c.tagError("send_notification", err)
		c.finish(ctx, "send_notification", start, err)
		return nil, err
	}

	c.finish(ctx, "send_notification", start, nil)
	return resp.Data, nil
}
