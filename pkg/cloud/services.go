package cloud

import "context"

// ListMagnumServices returns the normalized service registry: one record per
// running container-infra binary. No caching, no filtering; a malformed
// registry entry fails the whole listing.
func (c *Cloud) ListMagnumServices(ctx context.Context) ([]*MagnumService, error) {
	records, err := c.svc.ListServices(ctx)
	if err != nil {
		return nil, NewCloudError(err, "Error fetching Magnum services list")
	}
	services, err := c.NormalizeMagnumServices(records)
	if err != nil {
		return nil, NewCloudError(err, "Error fetching Magnum services list")
	}
	return services, nil
}
