package auth

import (
	"context"
	"strings"
)

type credentialKey struct{}

// WithCredential stores the caller's raw bearer token in ctx so that it can
// be forwarded unmodified on calls to sibling services.
func WithCredential(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, credentialKey{}, token)
}

// CredentialFrom returns the bearer token stored in ctx, or "".
func CredentialFrom(ctx context.Context) string {
	token, _ := ctx.Value(credentialKey{}).(string)
	return token
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// ServiceTokenHeader carries the shared secret that admits a caller to the
// /internal routes of a sibling service.
const ServiceTokenHeader = "X-Service-Token"
