package containerinfra

import (
	"context"

	"github.com/pkg/errors"
)

// CreateClusterOpts are the attributes accepted by POST /clusters. Extra
// entries are merged into the request body and take precedence over the
// typed fields, covering attributes introduced by newer microversions.
type CreateClusterOpts struct {
	Name              string            `json:"name,omitempty"`
	ClusterTemplateID string            `json:"cluster_template_id,omitempty"`
	Keypair           string            `json:"keypair,omitempty"`
	MasterCount       *int              `json:"master_count,omitempty"`
	NodeCount         *int              `json:"node_count,omitempty"`
	CreateTimeout     *int              `json:"create_timeout,omitempty"`
	DiscoveryURL      string            `json:"discovery_url,omitempty"`
	FlavorID          string            `json:"flavor_id,omitempty"`
	MasterFlavorID    string            `json:"master_flavor_id,omitempty"`
	FixedNetwork      string            `json:"fixed_network,omitempty"`
	FixedSubnet       string            `json:"fixed_subnet,omitempty"`
	FloatingIPEnabled *bool             `json:"floating_ip_enabled,omitempty"`
	MasterLBEnabled   *bool             `json:"master_lb_enabled,omitempty"`
	Labels            map[string]string `json:"labels,omitempty"`

	Extra map[string]interface{} `json:"-"`
}

// ListClusters fetches the cluster collection.
func (c *Client) ListClusters(ctx context.Context, opts ListOpts) ([]Object, error) {
	var out struct {
		Clusters []Object `json:"clusters"`
	}
	if err := c.s.Get(ctx, clustersPath, opts.query(), &out); err != nil {
		return nil, err
	}
	return out.Clusters, nil
}

// GetCluster fetches one cluster by UUID or name (the service resolves both).
func (c *Client) GetCluster(ctx context.Context, id string) (Object, error) {
	if id == "" {
		return nil, errors.New("cluster id cannot be empty")
	}
	var out Object
	if err := c.s.Get(ctx, clustersPath+"/"+id, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCluster provisions a new cluster and returns the service's response
// document (usually just the uuid).
func (c *Client) CreateCluster(ctx context.Context, opts CreateClusterOpts) (Object, error) {
	body, err := buildBody(opts, opts.Extra)
	if err != nil {
		return nil, err
	}
	var out Object
	if err := c.s.Post(ctx, clustersPath, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateCluster applies a JSON-Patch document to a cluster.
func (c *Client) UpdateCluster(ctx context.Context, id string, ops []UpdateOp) (Object, error) {
	if id == "" {
		return nil, errors.New("cluster id cannot be empty")
	}
	if len(ops) == 0 {
		return nil, errors.New("update requires at least one operation")
	}
	var out Object
	if err := c.s.Patch(ctx, clustersPath+"/"+id, ops, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteCluster removes a cluster by UUID or name.
func (c *Client) DeleteCluster(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("cluster id cannot be empty")
	}
	return c.s.Delete(ctx, clustersPath+"/"+id)
}
