package services

import (
	"net/http"
	"sync"
	"time"
)

// DefaultHttpClient returns the shared HTTP client used for outbound
// fetches (URL import).
var DefaultHttpClient = sync.OnceValue(func() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
	}
})
