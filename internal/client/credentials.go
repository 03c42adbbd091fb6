package client

import "context"

// Credentials are the caller's headers relayed to the API, so the API keeps
// deciding who the user is.
type Credentials struct {
	Cookie        string
	Authorization string
}

type credentialsKey struct{}

// WithCredentials returns a context carrying creds for outgoing requests.
func WithCredentials(ctx context.Context, creds Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey{}, creds)
}

// CredentialsFrom returns the credentials stored in ctx, if any.
func CredentialsFrom(ctx context.Context) Credentials {
	creds, _ := ctx.Value(credentialsKey{}).(Credentials)
	return creds
}
