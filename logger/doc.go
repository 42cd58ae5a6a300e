// Package logger provides structured logging built on zerolog.
//
// It supports JSON and console output, a configurable global logger, and
// per-component child loggers with standard field keys for service
// integration logging (operation, attempt, circuit breaker state).
//
//	log := logger.NewDefault("payments")
//	log.Info("payment status fetched", logger.Fields(
//	    logger.FieldOperation, "get_payment_status",
//	    "payment_id", "pay_123",
//	))
package logger
