package gateways

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// EndpointChecker probes repository endpoints without mutating anything.
// Used by preflight to catch missing network access before apt or pip does.
type EndpointChecker struct {
	httpClient *http.Client
}

// NewEndpointChecker creates an endpoint checker
func NewEndpointChecker() *EndpointChecker {
	return &EndpointChecker{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CheckReachable issues a HEAD request and accepts any response below 500.
// Index roots commonly answer 403/404 to HEAD while still serving packages.
func (c *EndpointChecker) CheckReachable(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("endpoint unreachable: %w", err)
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
