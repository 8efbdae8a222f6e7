package webhook

import (
	"net/http"
	"time"
)

// DefaultTimeout is used when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// newHTTPClient returns the pooled client the module posts events with.
func newHTTPClient(timeout string) (*http.Client, error) {
	d := DefaultTimeout
	if timeout != "" {
		var err error
		d, err = time.ParseDuration(timeout)
		if err != nil {
			return nil, err
		}
	}

	client := &http.Client{
		Timeout: d,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	return client, nil
}

// closeHTTPClient closes any idle connections.
func closeHTTPClient(client *http.Client) error {
	client.CloseIdleConnections()
	return nil
}
