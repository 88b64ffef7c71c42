package tracker

import (
	"net/http"

	"golang.org/x/oauth2"
)

// httpClientFor returns the client both backends send requests through.
// A configured token becomes a static bearer token on every request; the
// caller's client is copied, never mutated.
func httpClientFor(cfg Config) *http.Client {
	client := &http.Client{}
	if cfg.HTTPClient != nil {
		copied := *cfg.HTTPClient
		client = &copied
	}
	if cfg.Token != "" {
		client.Transport = bearerTransport(client.Transport, cfg.Token)
	}
	return client
}

func bearerTransport(base http.RoundTripper, token string) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
		Base:   base,
	}
}
