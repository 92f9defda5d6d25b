package apiclient

import (
	"context"
	"net/http"

	"github.com/target/mmk-rag-console/internal/ports"
	"golang.org/x/oauth2"
)

// anonymousKey marks a request context that must be dispatched without a credential.
type anonymousKey struct{}

// WithoutCredential returns a context whose requests skip credential decoration.
func WithoutCredential(ctx context.Context) context.Context {
	return context.WithValue(ctx, anonymousKey{}, true)
}

func isAnonymous(ctx context.Context) bool {
	v, _ := ctx.Value(anonymousKey{}).(bool)
	return v
}

// credentialTransport is the single decoration point for outgoing requests.
// The store is read at dispatch time, so a token set after the Client was built
// is picked up by the next request.
type credentialTransport struct {
	base  http.RoundTripper
	creds ports.CredentialReader
}

func (t *credentialTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if isAnonymous(ctx) {
		return t.base.RoundTrip(req)
	}

	token, ok := t.creds.Get(ctx)
	if !ok {
		return t.base.RoundTrip(req)
	}

	// RoundTrippers must not mutate the caller's request.
	decorated := req.Clone(ctx)
	(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(decorated)
	return t.base.RoundTrip(decorated)
}
