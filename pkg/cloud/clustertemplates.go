package cloud

import (
	"context"

	"github.com/mensylisir/coexm/pkg/common"
	"github.com/mensylisir/coexm/pkg/containerinfra"
	"github.com/mensylisir/coexm/pkg/resolve"
)

// ListClusterTemplates returns the raw template collection, memoized until a
// template write operation invalidates it.
func (c *Cloud) ListClusterTemplates(ctx context.Context) ([]containerinfra.Object, error) {
	records, err := c.cachedList(ctx, common.CacheKeyClusterTemplates, func(ctx context.Context) ([]containerinfra.Object, error) {
		return c.svc.ListClusterTemplates(ctx, containerinfra.ListOpts{})
	})
	if err != nil {
		return nil, NewCloudError(err, "Error fetching cluster template list")
	}
	return records, nil
}

// SearchClusterTemplates narrows the cached template list by name-or-ID and
// filters.
func (c *Cloud) SearchClusterTemplates(ctx context.Context, nameOrID string, filters *resolve.Filters) ([]containerinfra.Object, error) {
	templates, err := c.ListClusterTemplates(ctx)
	if err != nil {
		return nil, err
	}
	return resolve.FilterList(templates, nameOrID, filters), nil
}

// GetClusterTemplate resolves a template by name or ID. No match returns
// (nil, nil); several matches return an error.
func (c *Cloud) GetClusterTemplate(ctx context.Context, nameOrID string, filters *resolve.Filters) (containerinfra.Object, error) {
	templates, err := c.ListClusterTemplates(ctx)
	if err != nil {
		return nil, err
	}
	return resolve.One("cluster_template", templates, nameOrID, filters)
}

// CreateClusterTemplate registers a template and invalidates the template
// list. The created record is returned unnormalized.
func (c *Cloud) CreateClusterTemplate(ctx context.Context, opts containerinfra.CreateClusterTemplateOpts) (containerinfra.Object, error) {
	created, err := c.svc.CreateClusterTemplate(ctx, opts)
	if err != nil {
		return nil, NewCloudError(err, "Error creating cluster template %s", opts.Name)
	}
	c.invalidate(common.CacheKeyClusterTemplates)
	return created, nil
}

// DeleteClusterTemplate resolves the template first and returns (false, nil)
// when nothing matches; no delete call reaches the service in that case.
func (c *Cloud) DeleteClusterTemplate(ctx context.Context, nameOrID string) (bool, error) {
	template, err := c.GetClusterTemplate(ctx, nameOrID, nil)
	if err != nil {
		return false, err
	}
	if template == nil {
		c.log.Debugf("Cluster template %s does not exist", nameOrID)
		return false, nil
	}

	if err := c.svc.DeleteClusterTemplate(ctx, template.ID()); err != nil {
		return false, NewCloudError(err, "Error deleting cluster template %s", nameOrID)
	}
	c.invalidate(common.CacheKeyClusterTemplates)
	return true, nil
}

// UpdateClusterTemplate applies attribute changes to a template resolved by
// name or ID. Invalidation mirrors UpdateCOECluster: before resolution so
// concurrent changes are visible, and again after a successful write. A
// failed resolution is a NotFoundError; empty attrs return the resolved
// template without an upstream call.
func (c *Cloud) UpdateClusterTemplate(ctx context.Context, nameOrID string, attrs map[string]interface{}) (containerinfra.Object, error) {
	c.invalidate(common.CacheKeyClusterTemplates)

	template, err := c.GetClusterTemplate(ctx, nameOrID, nil)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, newNotFoundError("Cluster template %s not found.", nameOrID)
	}

	ops := containerinfra.PatchFromAttributes(attrs)
	if len(ops) == 0 {
		return template, nil
	}

	updated, err := c.svc.UpdateClusterTemplate(ctx, template.ID(), ops)
	if err != nil {
		return nil, NewCloudError(err, "Error updating cluster template %s", nameOrID)
	}
	c.invalidate(common.CacheKeyClusterTemplates)
	return updated, nil
}
