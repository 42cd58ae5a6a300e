package httpclient

import "net/http"

// AuthType identifies the authentication method.
type AuthType int

const (
	// AuthNone disables authentication.
	AuthNone AuthType = iota
	// AuthBearer sends an Authorization: Bearer header.
	AuthBearer
	// AuthBasic sends HTTP Basic credentials.
	AuthBasic
	// AuthAPIKey sends an API key in a header or query parameter.
	AuthAPIKey
)

// API key placements for AuthConfig.In.
const (
	APIKeyInHeader = "header"
	APIKeyInQuery  = "query"
)

const defaultAPIKeyHeader = "X-API-Key"

// AuthConfig configures request authentication. A nil AuthConfig means no
// authentication.
type AuthConfig struct {
	// Type is the authentication method.
	Type AuthType
	// Token is the bearer token (AuthBearer).
	Token string
	// Username is the basic auth username (AuthBasic).
	Username string
	// Password is the basic auth password (AuthBasic).
	Password string
	// Key is the API key value (AuthAPIKey).
	Key string
	// In is the API key placement, APIKeyInHeader (default) or APIKeyInQuery.
	In string
	// Name is the header or query parameter name. Defaults to X-API-Key.
	Name string
}

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// BasicAuth creates a basic auth config.
func BasicAuth(username, password string) *AuthConfig {
	return &AuthConfig{Type: AuthBasic, Username: username, Password: password}
}

// APIKeyAuth creates an API key auth config sent via the X-API-Key header.
func APIKeyAuth(key string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: APIKeyInHeader, Name: defaultAPIKeyHeader}
}

// APIKeyAuthQuery creates an API key auth config sent via a query parameter.
func APIKeyAuthQuery(key, paramName string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: APIKeyInQuery, Name: paramName}
}

// apply sets the credentials on an outgoing request.
func (a *AuthConfig) apply(req *http.Request) {
	if a == nil {
		return
	}
	switch a.Type {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+a.Token)
	case AuthBasic:
		req.SetBasicAuth(a.Username, a.Password)
	case AuthAPIKey:
		a.applyAPIKey(req)
	}
}

func (a *AuthConfig) applyAPIKey(req *http.Request) {
	name := a.Name
	if name == "" {
		name = defaultAPIKeyHeader
	}
	if a.In == APIKeyInQuery {
		q := req.URL.Query()
		q.Set(name, a.Key)
		req.URL.RawQuery = q.Encode()
		return
	}
	req.Header.Set(name, a.Key)
}
