package cloud

import "encoding/json"

// Location identifies which cloud, region and project a normalized record
// came from. It is attached verbatim to every normalized record.
type Location struct {
	Cloud      string  `json:"cloud"`
	RegionName string  `json:"region_name"`
	Zone       string  `json:"zone"`
	Project    Project `json:"project"`
}

// Project is the identity scope of a Location.
type Project struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DomainID   string `json:"domain_id"`
	DomainName string `json:"domain_name"`
}

// COECluster is a normalized cluster record: the schema fields that were
// present upstream, the issuing location, and a Properties bucket holding
// every upstream field the schema does not consume.
type COECluster struct {
	fields     map[string]interface{}
	Location   Location
	Properties map[string]interface{}
}

func (c *COECluster) ID() string            { return stringField(c.fields, "id") }
func (c *COECluster) Name() string          { return stringField(c.fields, "name") }
func (c *COECluster) Status() string        { return stringField(c.fields, "status") }
func (c *COECluster) StackID() string       { return stringField(c.fields, "stack_id") }
func (c *COECluster) TemplateID() string    { return stringField(c.fields, "cluster_template_id") }
func (c *COECluster) Keypair() string       { return stringField(c.fields, "keypair") }
func (c *COECluster) MasterCount() int      { return intField(c.fields, "master_count") }
func (c *COECluster) NodeCount() int        { return intField(c.fields, "node_count") }
func (c *COECluster) CreateTimeout() int    { return intField(c.fields, "create_timeout") }

// Field returns a schema field by its normalized name.
func (c *COECluster) Field(key string) (interface{}, bool) {
	v, ok := c.fields[key]
	return v, ok
}

func (c *COECluster) MarshalJSON() ([]byte, error) {
	return marshalRecord(c.fields, c.Location, c.Properties)
}

// ClusterTemplate is a normalized cluster template record.
type ClusterTemplate struct {
	fields     map[string]interface{}
	Location   Location
	Properties map[string]interface{}
}

func (t *ClusterTemplate) ID() string              { return stringField(t.fields, "id") }
func (t *ClusterTemplate) Name() string            { return stringField(t.fields, "name") }
func (t *ClusterTemplate) COE() string             { return stringField(t.fields, "coe") }
func (t *ClusterTemplate) ImageID() string         { return stringField(t.fields, "image_id") }
func (t *ClusterTemplate) FlavorID() string        { return stringField(t.fields, "flavor_id") }
func (t *ClusterTemplate) KeypairID() string       { return stringField(t.fields, "keypair_id") }
func (t *ClusterTemplate) NetworkDriver() string   { return stringField(t.fields, "network_driver") }
func (t *ClusterTemplate) ServerType() string      { return stringField(t.fields, "server_type") }
func (t *ClusterTemplate) ClusterDistro() string   { return stringField(t.fields, "cluster_distro") }
func (t *ClusterTemplate) IsPublic() bool          { return boolField(t.fields, "is_public") }
func (t *ClusterTemplate) IsRegistryEnabled() bool { return boolField(t.fields, "is_registry_enabled") }
func (t *ClusterTemplate) IsTLSDisabled() bool     { return boolField(t.fields, "is_tls_disabled") }
func (t *ClusterTemplate) DockerVolumeSize() int   { return intField(t.fields, "docker_volume_size") }

// Field returns a schema field by its normalized name.
func (t *ClusterTemplate) Field(key string) (interface{}, bool) {
	v, ok := t.fields[key]
	return v, ok
}

func (t *ClusterTemplate) MarshalJSON() ([]byte, error) {
	return marshalRecord(t.fields, t.Location, t.Properties)
}

// MagnumService is a normalized service registry record.
type MagnumService struct {
	fields     map[string]interface{}
	Location   Location
	Properties map[string]interface{}
}

func (s *MagnumService) Binary() string         { return stringField(s.fields, "binary") }
func (s *MagnumService) Host() string           { return stringField(s.fields, "host") }
func (s *MagnumService) State() string          { return stringField(s.fields, "state") }
func (s *MagnumService) DisabledReason() string { return stringField(s.fields, "disabled_reason") }
func (s *MagnumService) ReportCount() int       { return intField(s.fields, "report_count") }

// ID returns the numeric service id as the service reported it.
func (s *MagnumService) ID() int { return intField(s.fields, "id") }

// Field returns a schema field by its normalized name.
func (s *MagnumService) Field(key string) (interface{}, bool) {
	v, ok := s.fields[key]
	return v, ok
}

func (s *MagnumService) MarshalJSON() ([]byte, error) {
	return marshalRecord(s.fields, s.Location, s.Properties)
}

func marshalRecord(fields map[string]interface{}, loc Location, properties map[string]interface{}) ([]byte, error) {
	out := make(map[string]interface{}, len(fields)+2)
	for k, v := range fields {
		out[k] = v
	}
	out["location"] = loc
	if properties == nil {
		properties = map[string]interface{}{}
	}
	out["properties"] = properties
	return json.Marshal(out)
}

func stringField(fields map[string]interface{}, key string) string {
	s, _ := fields[key].(string)
	return s
}

func boolField(fields map[string]interface{}, key string) bool {
	b, _ := fields[key].(bool)
	return b
}

func intField(fields map[string]interface{}, key string) int {
	switch n := fields[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	}
	return 0
}
