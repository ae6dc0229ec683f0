package cloud

import "github.com/mensylisir/coexm/pkg/containerinfra"

// Upstream fields discarded outright during normalization. They are
// transport artifacts, not resource data, so they never reach Properties.
var noiseKeys = []string{"links", "human_id", "model_name"}

// Cluster schema fields copied when present, after the required uuid→id
// rename.
var clusterOptionalKeys = []string{
	"status",
	"cluster_template_id",
	"stack_id",
	"keypair",
	"master_count",
	"create_timeout",
	"node_count",
	"name",
}

// Template schema fields copied only when present.
var templateOptionalKeys = []string{
	"fixed_network",
	"fixed_subnet",
	"http_proxy",
	"https_proxy",
	"labels",
	"master_flavor_id",
	"no_proxy",
}

// Template schema fields whose absence is a malformed record.
var templateRequiredKeys = []string{
	"apiserver_port",
	"cluster_distro",
	"coe",
	"created_at",
	"dns_nameserver",
	"docker_volume_size",
	"external_network_id",
	"flavor_id",
	"image_id",
	"insecure_registry",
	"keypair_id",
	"name",
	"network_driver",
	"server_type",
	"updated_at",
	"volume_driver",
}

// Service registry schema: every field is required.
var serviceRequiredKeys = []string{
	"binary",
	"created_at",
	"disabled_reason",
	"host",
	"id",
	"report_count",
	"state",
	"updated_at",
}

// NormalizeCOEClusters maps raw cluster records into the canonical shape,
// preserving order and length.
func (c *Cloud) NormalizeCOEClusters(records []containerinfra.Object) ([]*COECluster, error) {
	out := make([]*COECluster, 0, len(records))
	for _, r := range records {
		n, err := c.NormalizeCOECluster(r)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// NormalizeCOECluster reshapes one raw cluster record. The input is never
// mutated; consumed keys move out of the working copy so that whatever
// remains becomes Properties.
func (c *Cloud) NormalizeCOECluster(record containerinfra.Object) (*COECluster, error) {
	working := record.Clone()
	dropNoise(working)

	id, err := takeRequired(working, "coe_cluster", "uuid")
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{"id": id}
	if !c.strict {
		fields["uuid"] = id
	}
	for _, key := range clusterOptionalKeys {
		if v, ok := working[key]; ok {
			fields[key] = v
			delete(working, key)
		}
	}

	return &COECluster{fields: fields, Location: c.location, Properties: working}, nil
}

// NormalizeClusterTemplates maps raw template records into the canonical
// shape, preserving order and length.
func (c *Cloud) NormalizeClusterTemplates(records []containerinfra.Object) ([]*ClusterTemplate, error) {
	out := make([]*ClusterTemplate, 0, len(records))
	for _, r := range records {
		n, err := c.NormalizeClusterTemplate(r)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// NormalizeClusterTemplate reshapes one raw template record.
func (c *Cloud) NormalizeClusterTemplate(record containerinfra.Object) (*ClusterTemplate, error) {
	working := record.Clone()
	dropNoise(working)

	id, err := takeRequired(working, "cluster_template", "uuid")
	if err != nil {
		return nil, err
	}
	isPublic, err := takeRequired(working, "cluster_template", "public")
	if err != nil {
		return nil, err
	}
	isRegistryEnabled, err := takeRequired(working, "cluster_template", "registry_enabled")
	if err != nil {
		return nil, err
	}
	isTLSDisabled, err := takeRequired(working, "cluster_template", "tls_disabled")
	if err != nil {
		return nil, err
	}
	// Consumed unconditionally; surfaces under its original name in legacy
	// output only, and only when the service sent a real value.
	fipEnabled, hadFIP := working["floating_ip_enabled"]
	delete(working, "floating_ip_enabled")

	fields := map[string]interface{}{
		"id":                  id,
		"is_public":           isPublic,
		"is_registry_enabled": isRegistryEnabled,
		"is_tls_disabled":     isTLSDisabled,
	}
	if !c.strict {
		fields["uuid"] = id
		fields["public"] = isPublic
		fields["registry_enabled"] = isRegistryEnabled
		fields["tls_disabled"] = isTLSDisabled
		if hadFIP && fipEnabled != nil {
			fields["floating_ip_enabled"] = fipEnabled
		}
	}

	for _, key := range templateOptionalKeys {
		if v, ok := working[key]; ok {
			fields[key] = v
			delete(working, key)
		}
	}
	for _, key := range templateRequiredKeys {
		v, err := takeRequired(working, "cluster_template", key)
		if err != nil {
			return nil, err
		}
		fields[key] = v
	}

	return &ClusterTemplate{fields: fields, Location: c.location, Properties: working}, nil
}

// NormalizeMagnumServices maps raw service registry records into the
// canonical shape, preserving order and length.
func (c *Cloud) NormalizeMagnumServices(records []containerinfra.Object) ([]*MagnumService, error) {
	out := make([]*MagnumService, 0, len(records))
	for _, r := range records {
		n, err := c.NormalizeMagnumService(r)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// NormalizeMagnumService reshapes one raw service registry record.
func (c *Cloud) NormalizeMagnumService(record containerinfra.Object) (*MagnumService, error) {
	working := record.Clone()
	dropNoise(working)

	fields := make(map[string]interface{}, len(serviceRequiredKeys))
	for _, key := range serviceRequiredKeys {
		v, err := takeRequired(working, "magnum_service", key)
		if err != nil {
			return nil, err
		}
		fields[key] = v
	}

	return &MagnumService{fields: fields, Location: c.location, Properties: working}, nil
}

func dropNoise(working containerinfra.Object) {
	for _, key := range noiseKeys {
		delete(working, key)
	}
}

// takeRequired removes key from working and returns its value, failing when
// the key is absent. A present key with a null value is fine; optional
// fields never default-fill, required fields never silently vanish.
func takeRequired(working containerinfra.Object, resource, key string) (interface{}, error) {
	v, ok := working[key]
	if !ok {
		return nil, &MissingFieldError{Resource: resource, Field: key}
	}
	delete(working, key)
	return v, nil
}
