package services

import (
	"context"
	"time"

	"github.com/kbukum/servicekit/config"
	"github.com/kbukum/servicekit/errors"
	"github.com/kbukum/servicekit/httpclient/rest"
	"github.com/kbukum/servicekit/logger"
	"github.com/kbukum/servicekit/observability"
	"github.com/kbukum/servicekit/validation"
)

// PaymentClient checks payment status in the payment service.
type PaymentClient struct {
	*client
}

// NewPaymentClient creates a payment service client.
func NewPaymentClient(cfg config.ClientConfig, opts ...Option) (*PaymentClient, error) {
	c, err := newClient(cfg, "payment", opts...)
	if err != nil {
		return nil, err
	}
	return &PaymentClient{client: c}, nil
}

// GetPaymentStatus fetches the status of a payment and validates the
// response shape.
func (c *PaymentClient) GetPaymentStatus(ctx context.Context, paymentID string) (*PaymentStatus, error) {
	if err := validation.Required("payment_id", paymentID); err != nil {
		return nil, err
	}

	ctx, span := observability.StartSpan(ctx, "payment.get_payment_status")
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrPaymentID, paymentID)

	start := time.Now()
	c.log.Debug("fetching payment status", logger.Fields("payment_id", paymentID))

	resp, err := rest.Get[PaymentStatus](ctx, c.rest, "/status/"+paymentID)
	if err != nil {
		err = c.tagError("get_payment_status", err)
		c.finish(ctx, "get_payment_status", start, err)
		return nil, err
	}

	if err := validation.Validate(resp.Data); err != nil {
		err = errors.InvalidResponse(c.name, err.Error())
		c.finish(ctx, "get_payment_status", start, err)
		return nil, err
	}

	c.finish(ctx, "get_payment_status", start, nil)
	return &resp.Data, nil
}
