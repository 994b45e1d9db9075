// Package httpclient builds the HTTP client shared by search and download requests.
package httpclient

import (
	"net"
	"net/http"
	"time"
)

// New returns a client whose transport keeps up to idlePerHost idle connections per
// host, so a full worker pool can reuse connections to the same CDN.
func New(idlePerHost int) *http.Client {
	if idlePerHost <= 0 {
		idlePerHost = 10
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.TLSHandshakeTimeout = 10 * time.Second
	transport.ResponseHeaderTimeout = 30 * time.Second
	transport.MaxIdleConnsPerHost = idlePerHost
	transport.IdleConnTimeout = 90 * time.Second

	return &http.Client{
		Transport: transport,
	}
}
