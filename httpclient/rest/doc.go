// Package rest provides a JSON-focused REST client built on httpclient.
//
// It inherits all features from httpclient (auth, TLS, resilience) and adds
// typed convenience methods for common REST operations:
//
//	client := rest.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Auth:    httpclient.BearerAuth("token"),
//	    Retry:   httpclient.DefaultRetryConfig(),
//	})
//
//	// Typed GET
//	user, err := rest.Get[User](ctx, client, "/users/123")
//
//	// Typed POST
//	created, err := rest.Post[NotificationResult](ctx, client, "/notifications", req)
//
// A response body that is not valid JSON for the target type surfaces as a
// validation error, matching the httpclient error taxonomy.
package rest
