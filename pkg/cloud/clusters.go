package cloud

import (
	"context"

	"github.com/mensylisir/coexm/pkg/common"
	"github.com/mensylisir/coexm/pkg/containerinfra"
	"github.com/mensylisir/coexm/pkg/resolve"
)

// ListCOEClusters returns the raw cluster collection. The result is memoized
// until a cluster write operation invalidates it.
func (c *Cloud) ListCOEClusters(ctx context.Context) ([]containerinfra.Object, error) {
	records, err := c.cachedList(ctx, common.CacheKeyCOEClusters, func(ctx context.Context) ([]containerinfra.Object, error) {
		return c.svc.ListClusters(ctx, containerinfra.ListOpts{})
	})
	if err != nil {
		return nil, NewCloudError(err, "Error fetching COE cluster list")
	}
	return records, nil
}

// SearchCOEClusters narrows the cached cluster list by name-or-ID and
// filters. No upstream call happens beyond the (possibly cached) list fetch.
func (c *Cloud) SearchCOEClusters(ctx context.Context, nameOrID string, filters *resolve.Filters) ([]containerinfra.Object, error) {
	clusters, err := c.ListCOEClusters(ctx)
	if err != nil {
		return nil, err
	}
	return resolve.FilterList(clusters, nameOrID, filters), nil
}

// GetCOECluster resolves a cluster by name or ID. Absence is not an error:
// no match returns (nil, nil). Several matches return an error.
func (c *Cloud) GetCOECluster(ctx context.Context, nameOrID string, filters *resolve.Filters) (containerinfra.Object, error) {
	clusters, err := c.ListCOEClusters(ctx)
	if err != nil {
		return nil, err
	}
	return resolve.One("coe_cluster", clusters, nameOrID, filters)
}

// CreateCOECluster provisions a cluster from a template and invalidates the
// cluster list so the next read sees it. The created record is returned as
// the service shaped it, unnormalized.
func (c *Cloud) CreateCOECluster(ctx context.Context, opts containerinfra.CreateClusterOpts) (containerinfra.Object, error) {
	created, err := c.svc.CreateCluster(ctx, opts)
	if err != nil {
		return nil, NewCloudError(err, "Error creating COE cluster %s", opts.Name)
	}
	c.invalidate(common.CacheKeyCOEClusters)
	return created, nil
}

// DeleteCOECluster resolves the cluster first and returns (false, nil) when
// nothing matches; no delete call reaches the service in that case.
func (c *Cloud) DeleteCOECluster(ctx context.Context, nameOrID string) (bool, error) {
	cluster, err := c.GetCOECluster(ctx, nameOrID, nil)
	if err != nil {
		return false, err
	}
	if cluster == nil {
		c.log.Debugf("COE cluster %s does not exist", nameOrID)
		return false, nil
	}

	if err := c.svc.DeleteCluster(ctx, cluster.ID()); err != nil {
		return false, NewCloudError(err, "Error deleting COE cluster %s", nameOrID)
	}
	c.invalidate(common.CacheKeyCOEClusters)
	return true, nil
}

// UpdateCOECluster applies attribute changes to a cluster resolved by name
// or ID. The list cache is invalidated before resolution so concurrent
// changes are visible; resolving nothing afterwards is a NotFoundError.
// Empty attrs resolve the cluster and return it without an upstream call.
func (c *Cloud) UpdateCOECluster(ctx context.Context, nameOrID string, attrs map[string]interface{}) (containerinfra.Object, error) {
	c.invalidate(common.CacheKeyCOEClusters)

	cluster, err := c.GetCOECluster(ctx, nameOrID, nil)
	if err != nil {
		return nil, err
	}
	if cluster == nil {
		return nil, newNotFoundError("COE cluster %s not found.", nameOrID)
	}

	ops := containerinfra.PatchFromAttributes(attrs)
	if len(ops) == 0 {
		return cluster, nil
	}

	updated, err := c.svc.UpdateCluster(ctx, cluster.ID(), ops)
	if err != nil {
		return nil, NewCloudError(err, "Error updating COE cluster %s", nameOrID)
	}
	c.invalidate(common.CacheKeyCOEClusters)
	return updated, nil
}
