package feed

import (
	"net"
	"net/http"
	"time"
)

// DefaultTransport returns a configured HTTP transport with connection
// limits, shared by every client instance so repeated submissions reuse warm
// connections instead of piling up new ones.
func DefaultTransport() *http.Transport {
	return &http.Transport{
		MaxConnsPerHost:     10,
		MaxIdleConnsPerHost: 2,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,

		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,

		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}
