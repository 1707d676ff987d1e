// Package clients talks to the Python sidecars that wrap the diarization
// model and the DER metric.
package clients

import (
	"net/http"
	"time"
)

const defaultTimeout = 60 * time.Second

type HTTP struct{ c *http.Client }

// NewHTTP returns a client with the given request timeout, 60s when zero.
func NewHTTP(timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTP{c: &http.Client{Timeout: timeout}}
}
