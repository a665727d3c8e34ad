package flows

import "net/http"

// Doer issues a single HTTP request. *http.Client satisfies it; tests
// substitute failing transports.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}
