package containerinfra

import (
	"context"

	"github.com/pkg/errors"
)

// CreateClusterTemplateOpts are the attributes accepted by POST
// /clustertemplates. Extra entries are merged into the request body and take
// precedence over the typed fields.
type CreateClusterTemplateOpts struct {
	Name                string            `json:"name,omitempty"`
	COE                 string            `json:"coe,omitempty"`
	ImageID             string            `json:"image_id,omitempty"`
	FlavorID            string            `json:"flavor_id,omitempty"`
	MasterFlavorID      string            `json:"master_flavor_id,omitempty"`
	KeypairID           string            `json:"keypair_id,omitempty"`
	NetworkDriver       string            `json:"network_driver,omitempty"`
	VolumeDriver        string            `json:"volume_driver,omitempty"`
	DockerStorageDriver string            `json:"docker_storage_driver,omitempty"`
	DockerVolumeSize    *int              `json:"docker_volume_size,omitempty"`
	DNSNameserver       string            `json:"dns_nameserver,omitempty"`
	ExternalNetworkID   string            `json:"external_network_id,omitempty"`
	FixedNetwork        string            `json:"fixed_network,omitempty"`
	FixedSubnet         string            `json:"fixed_subnet,omitempty"`
	HTTPProxy           string            `json:"http_proxy,omitempty"`
	HTTPSProxy          string            `json:"https_proxy,omitempty"`
	NoProxy             string            `json:"no_proxy,omitempty"`
	InsecureRegistry    string            `json:"insecure_registry,omitempty"`
	ServerType          string            `json:"server_type,omitempty"`
	APIServerPort       *int              `json:"apiserver_port,omitempty"`
	TLSDisabled         *bool             `json:"tls_disabled,omitempty"`
	Public              *bool             `json:"public,omitempty"`
	RegistryEnabled     *bool             `json:"registry_enabled,omitempty"`
	FloatingIPEnabled   *bool             `json:"floating_ip_enabled,omitempty"`
	MasterLBEnabled     *bool             `json:"master_lb_enabled,omitempty"`
	Labels              map[string]string `json:"labels,omitempty"`

	Extra map[string]interface{} `json:"-"`
}

// ListClusterTemplates fetches the cluster template collection.
func (c *Client) ListClusterTemplates(ctx context.Context, opts ListOpts) ([]Object, error) {
	var out struct {
		ClusterTemplates []Object `json:"clustertemplates"`
	}
	if err := c.s.Get(ctx, templatesPath, opts.query(), &out); err != nil {
		return nil, err
	}
	return out.ClusterTemplates, nil
}

// GetClusterTemplate fetches one template by UUID or name.
func (c *Client) GetClusterTemplate(ctx context.Context, id string) (Object, error) {
	if id == "" {
		return nil, errors.New("cluster template id cannot be empty")
	}
	var out Object
	if err := c.s.Get(ctx, templatesPath+"/"+id, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateClusterTemplate registers a new template.
func (c *Client) CreateClusterTemplate(ctx context.Context, opts CreateClusterTemplateOpts) (Object, error) {
	body, err := buildBody(opts, opts.Extra)
	if err != nil {
		return nil, err
	}
	var out Object
	if err := c.s.Post(ctx, templatesPath, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateClusterTemplate applies a JSON-Patch document to a template.
func (c *Client) UpdateClusterTemplate(ctx context.Context, id string, ops []UpdateOp) (Object, error) {
	if id == "" {
		return nil, errors.New("cluster template id cannot be empty")
	}
	if len(ops) == 0 {
		return nil, errors.New("update requires at least one operation")
	}
	var out Object
	if err := c.s.Patch(ctx, templatesPath+"/"+id, ops, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteClusterTemplate removes a template by UUID or name.
func (c *Client) DeleteClusterTemplate(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("cluster template id cannot be empty")
	}
	return c.s.Delete(ctx, templatesPath+"/"+id)
}
