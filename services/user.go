package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kbukum/servicekit/config"
	"github.com/kbukum/servicekit/errors"
	"github.com/kbukum/servicekit/httpclient/rest"
	"github.com/kbukum/servicekit/logger"
	"github.com/kbukum/servicekit/observability"
	"github.com/kbukum/servicekit/validation"
)

// UserClient looks up users in the user service.
type UserClient struct {
	*client
}

// NewUserClient creates a user service client.
func NewUserClient(cfg config.ClientConfig, opts ...Option) (*UserClient, error) {
	c, err := newClient(cfg, "user", opts...)
	if err != nil {
		return nil, err
	}
	return &UserClient{client: c}, nil
}

// GetUser fetches a user by ID and validates the response shape.
func (c *UserClient) GetUser(ctx context.Context, userID int) (*User, error) {
	if userID <= 0 {
		return nil, errors.InvalidInput("user_id", "must be a positive integer")
	}

	ctx, span := observability.StartSpan(ctx, "user.get_user")
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrUserID, fmt.Sprintf("%d", userID))

	start := time.Now()
	c.log.Debug("fetching user", logger.Fields("user_id", userID))

	resp, err := rest.Get[User](ctx, c.rest, fmt.Sprintf("/users/%d", userID))
	if err != nil {
		err = c.tagError("get_user", err)
		c.finish(ctx, "get_user", start, err)
		return nil, err
	}

	if err := validation.Validate(resp.Data); err != nil {
		err = errors.InvalidResponse(c.name, err.Error())
		c.finish(ctx, "get_user", start, err)
		return nil, err
	}

	c.finish(ctx, "get_user", start, nil)
	return &resp.Data, nil
}
