package httpclient

import (
	"net/http"
	"testing"
)

func TestNewTransport(t *testing.T) {
	tests := []struct {
		idle     int
		expected int
	}{
		{0, 10},
		{-3, 10},
		{25, 25},
	}

	for _, test := range tests {
		client := New(test.idle)
		transport, ok := client.Transport.(*http.Transport)
		if !ok {
			t.Fatalf("expected *http.Transport, got %T", client.Transport)
		}
		if transport.MaxIdleConnsPerHost != test.expected {
			t.Errorf("New(%d): MaxIdleConnsPerHost = %d, expected %d", test.idle, transport.MaxIdleConnsPerHost, test.expected)
		}
		if transport.ResponseHeaderTimeout == 0 || transport.TLSHandshakeTimeout == 0 {
			t.Errorf("New(%d): timeouts not set", test.idle)
		}
		if client.Timeout != 0 {
			t.Errorf("New(%d): whole-request timeout should be unset for large downloads", test.idle)
		}
	}

	if New(1).Transport == http.DefaultTransport {
		t.Error("transport should be a clone, not the shared default")
	}
}
