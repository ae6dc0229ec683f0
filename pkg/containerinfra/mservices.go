package containerinfra

import "context"

// ListServices fetches the service registry: one record per running
// container-infra binary (conductors and their peers).
func (c *Client) ListServices(ctx context.Context) ([]Object, error) {
	var out struct {
		MServices []Object `json:"mservices"`
	}
	if err := c.s.Get(ctx, servicesPath, nil, &out); err != nil {
		return nil, err
	}
	return out.MServices, nil
}
