package logger

import (
	"time"
)

// Standard field key constants for structured logging.
const (
	FieldComponent    = "component"
	FieldService      = "service"
	FieldOperation    = "operation"
	FieldRequestID    = "request_id"
	FieldStatus       = "status"
	FieldStatusCode   = "status_code"
	FieldError        = "error"
	FieldDuration     = "duration_ms"
	FieldAttempt      = "attempt"
	FieldMaxAttempts  = "max_attempts"
	FieldBackoff      = "backoff_ms"
	FieldBreakerState = "breaker_state"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("done", logger.Fields("operation", "get_user", "user_id", 42))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operation that failed.
func ErrorFields(op string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldError:     err.Error(),
	}
}

// DurationFields creates fields for a timed operation.
func DurationFields(op string, d time.Duration) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldDuration:  d.Milliseconds(),
	}
}

// RetryFields creates fields for a retry attempt.
func RetryFields(op string, attempt, maxAttempts int, backoff time.Duration) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation:   op,
		FieldAttempt:     attempt,
		FieldMaxAttempts: maxAttempts,
		FieldBackoff:     backoff.Milliseconds(),
	}
}

// MergeWithError adds an error field to an existing map.
func MergeWithError(fields map[string]interface{}, err error) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields[FieldError] = err.Error()
	return fields
}
