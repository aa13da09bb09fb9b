package tollsdk

import "context"

// GetHealth calls GET /health.
func (c *Client) GetHealth(ctx context.Context) (*StatusResponse, error) {
	return get[StatusResponse](ctx, c, "/health", nil)
}

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return get[HealthResponse](ctx, c, "/livez", nil)
}

// GetReadiness checks if the service and its stores are ready. A degraded
// service answers 503, which is returned as a *Error.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return get[HealthResponse](ctx, c, "/readyz", nil)
}
