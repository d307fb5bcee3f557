// Package network provides the shared HTTP clients used by statistics providers and link sources.
package network

import (
	"net/http"
	"time"

	"github.com/hoopreel/hoopreel/constant"
)

// Timeout bounds a single request issued through Client or DoTLS.
const Timeout = 10 * time.Second

// Client is the HTTP client shared across the application.
var Client = &http.Client{
	Timeout:   Timeout,
	Transport: &userAgentTransport{base: newTransport()},
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 20
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = Timeout
	return t
}

// userAgentTransport stamps a browser user agent on requests that do not carry one.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", constant.UserAgent)
	return t.base.RoundTrip(clone)
}
