package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/hoopreel/hoopreel/constant"
	"github.com/hoopreel/hoopreel/log"
	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

// Request describes a request issued with a browser TLS fingerprint.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    string
}

// Response is the buffered result of DoTLS.
type Response struct {
	Status int
	Body   string
}

var (
	h2Transport     *http2.Transport
	h2TransportOnce sync.Once
)

func getH2Transport() *http2.Transport {
	h2TransportOnce.Do(func() {
		h2Transport = &http2.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialTLS(ctx, network, addr, nil)
			},
		}
	})
	return h2Transport
}

var h1Transport = &http.Transport{
	DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
		return dialTLS(ctx, network, addr, []string{"http/1.1"})
	},
}

// DoTLS performs a request presenting a Chrome client hello.
// HTTP/2 is attempted first; when it fails the request is retried over HTTP/1.1.
func DoTLS(ctx context.Context, r Request) (Response, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	newRequest := func() (*http.Request, error) {
		var body io.Reader
		if r.Body != "" {
			body = strings.NewReader(r.Body)
		}

		req, err := http.NewRequestWithContext(ctx, method, r.URL, body)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		req.Header.Set("User-Agent", constant.UserAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.5")
		for k, v := range r.Headers {
			req.Header.Set(k, v)
		}

		return req, nil
	}

	req, err := newRequest()
	if err != nil {
		return Response{}, err
	}

	resp, err := (&http.Client{Timeout: Timeout, Transport: getH2Transport()}).Do(req)
	if err != nil {
		log.Debugf("h2 request to %s failed, retrying over http/1.1: %s", r.URL, err)

		if req, err = newRequest(); err != nil {
			return Response{}, err
		}

		resp, err = (&http.Client{Timeout: Timeout, Transport: h1Transport}).Do(req)
		if err != nil {
			return Response{}, fmt.Errorf("request failed: %w", err)
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{Status: resp.StatusCode}, fmt.Errorf("read body: %w", err)
	}

	return Response{Status: resp.StatusCode, Body: string(body)}, nil
}

// dialTLS creates a TLS connection mimicking Chrome 120's fingerprint.
// A nil protos advertises both h2 and http/1.1.
func dialTLS(ctx context.Context, network, addr string, protos []string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: Timeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
		NextProtos: protos,
	}, utls.HelloChrome_120)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
