package client

import (
	"errors"
	"time"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// ErrTransport covers network failures, timeouts and non-2xx responses.
// These count toward the poll loop's consecutive-failure threshold.
var ErrTransport = errors.New("transport failure")

// ErrMalformedResponse covers 2xx responses whose body cannot be used:
// undecodable JSON or a missing/empty product list. These do NOT count as
// fetch failures.
var ErrMalformedResponse = errors.New("malformed response")

// New builds the shared HTTP client. Every request carries the same fixed
// timeout; a request exceeding it surfaces as a transport failure.
func New(timeout time.Duration) (tls_client.HttpClient, error) {
	secs := int(timeout.Seconds())
	if secs < 1 {
		secs = 1
	}
	jar := tls_client.NewCookieJar()
	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(secs),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithNotFollowRedirects(),
		tls_client.WithCookieJar(jar),
	}
	return tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
}
