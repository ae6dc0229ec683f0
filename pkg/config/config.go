// Package config loads the clouds file: named connection profiles for
// container-infra endpoints, in the spirit of clouds.yaml. A profile carries
// everything a facade needs: endpoint, credentials, region/project identity,
// microversion, output shape, caching and transport tuning.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// File is the top-level clouds configuration document.
type File struct {
	Clouds map[string]*Cloud `yaml:"clouds"`
}

// Cloud is one named connection profile.
type Cloud struct {
	Auth       AuthSpec  `yaml:"auth"`
	RegionName string    `yaml:"region_name,omitempty"`
	Zone       string    `yaml:"zone,omitempty"`
	Interface  string    `yaml:"interface,omitempty"`
	APIVersion string    `yaml:"api_version,omitempty"`
	Strict     bool      `yaml:"strict,omitempty"`
	Cache      CacheSpec `yaml:"cache,omitempty"`
	Timeout    Duration  `yaml:"timeout,omitempty"`
	MaxRetries *int      `yaml:"max_retries,omitempty"`
	Insecure   bool      `yaml:"insecure,omitempty"`
	CACertFile string    `yaml:"cacert,omitempty"`
}

// AuthSpec carries authentication and identity for a profile. Type "token"
// sends Token in X-Auth-Token; type "none" talks to unauthenticated
// (standalone/dev) endpoints.
type AuthSpec struct {
	Type        string `yaml:"auth_type,omitempty"`
	Token       string `yaml:"token,omitempty"`
	Endpoint    string `yaml:"endpoint"`
	ProjectID   string `yaml:"project_id,omitempty"`
	ProjectName string `yaml:"project_name,omitempty"`
	DomainID    string `yaml:"domain_id,omitempty"`
	DomainName  string `yaml:"domain_name,omitempty"`
}

// CacheSpec tunes list-response memoization. Enabled defaults to true; a
// zero Expiration keeps entries until a write operation invalidates them.
type CacheSpec struct {
	Enabled         *bool    `yaml:"enabled,omitempty"`
	Expiration      Duration `yaml:"expiration,omitempty"`
	CleanupInterval Duration `yaml:"cleanup_interval,omitempty"`
}

// Auth types accepted in AuthSpec.Type.
const (
	AuthTypeToken = "token"
	AuthTypeNone  = "none"
)

// Endpoint interfaces accepted in Cloud.Interface.
const (
	InterfacePublic   = "public"
	InterfaceInternal = "internal"
	InterfaceAdmin    = "admin"
)

// CacheEnabled reports whether list memoization is on for this profile.
func (c *Cloud) CacheEnabled() bool {
	if c.Cache.Enabled == nil {
		return true
	}
	return *c.Cache.Enabled
}

// Duration wraps time.Duration so profiles can write human values ("30s",
// "5m") in YAML.
type Duration time.Duration

// UnmarshalYAML accepts either a duration string or integer nanoseconds.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, perr := time.ParseDuration(s)
		if perr != nil {
			return fmt.Errorf("invalid duration %q: %w", s, perr)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err == nil {
		*d = Duration(time.Duration(n))
		return nil
	}
	return fmt.Errorf("invalid duration value on line %d", value.Line)
}

// MarshalYAML renders the duration in its string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// StdDuration returns the underlying time.Duration.
func (d Duration) StdDuration() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}
