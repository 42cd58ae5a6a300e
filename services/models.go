package services

// User is the user record returned by the user service.
type User struct {
	ID    int    `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age" validate:"gte=0,lte=150"`
}

// NotificationRequest is the payload sent to the notification service.
type NotificationRequest struct {
	UserID  int    `json:"user_id" validate:"required,gt=0"`
	Message string `json:"message" validate:"required"`
}

// NotificationResult is the notification service's response payload.
// The service returns a loosely structured acknowledgement, so the body is
// kept as-is.
type NotificationResult map[string]any

// PaymentStatus is the payment record returned by the payment service.
type PaymentStatus struct {
	PaymentID string  `json:"payment_id" validate:"required"`
	Status    string  `json:"status" validate:"required"`
	Amount    float64 `json:"amount" validate:"gte=0"`
}
