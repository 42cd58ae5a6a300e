// Package services provides typed clients for the user, notification, and
// payment dependencies.
//
// Each client validates inputs at the boundary, performs the call through
// httpclient (retry, circuit breaker, timeout), validates the response
// against its expected schema, and surfaces only typed errors. Every client
// owns its circuit breaker; breaker state is never shared between clients.
//
//	users, err := services.NewUserClient(cfg.Clients.User)
//	user, err := users.GetUser(ctx, 123)
//	if httpclient.IsCircuitOpen(err) { ... }
package services
