package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mensylisir/coexm/pkg/common"
)

const validCloudsYAML = `
clouds:
  devstack:
    auth:
      auth_type: token
      token: gAAAAABk-example
      endpoint: https://magnum.devstack.example:9511/v1
      project_name: demo
      domain_name: Default
    region_name: RegionOne
    interface: internal
    api_version: "1.10"
    strict: true
    timeout: 45s
    max_retries: 5
    cache:
      enabled: false
      expiration: 2m
  staging:
    auth:
      endpoint: http://10.0.0.4:9511/v1
`

const invalidSyntaxYAML = `
clouds:
  devstack:
    auth: [not, a, mapping
`

const invalidVersionYAML = `
clouds:
  devstack:
    auth:
      endpoint: http://localhost:9511/v1
    api_version: "1.99"
`

func TestLoadFromBytes_Valid(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(validCloudsYAML))
	if err != nil {
		t.Fatalf("LoadFromBytes with valid YAML failed: %v", err)
	}
	if len(cfg.Clouds) != 2 {
		t.Fatalf("Expected 2 clouds, got %d", len(cfg.Clouds))
	}

	dev := cfg.Clouds["devstack"]
	if dev == nil {
		t.Fatal("cloud 'devstack' missing after load")
	}
	if dev.Auth.Type != AuthTypeToken {
		t.Errorf("devstack Auth.Type = %s, want token", dev.Auth.Type)
	}
	if dev.Auth.Endpoint != "https://magnum.devstack.example:9511/v1" {
		t.Errorf("devstack Auth.Endpoint = %s", dev.Auth.Endpoint)
	}
	if dev.RegionName != "RegionOne" {
		t.Errorf("devstack RegionName = %s, want RegionOne", dev.RegionName)
	}
	if dev.Interface != InterfaceInternal {
		t.Errorf("devstack Interface = %s, want internal", dev.Interface)
	}
	if dev.APIVersion != "1.10" {
		t.Errorf("devstack APIVersion = %s, want 1.10", dev.APIVersion)
	}
	if !dev.Strict {
		t.Error("devstack Strict = false, want true")
	}
	if dev.Timeout.StdDuration() != 45*time.Second {
		t.Errorf("devstack Timeout = %s, want 45s", dev.Timeout)
	}
	if dev.MaxRetries == nil || *dev.MaxRetries != 5 {
		t.Errorf("devstack MaxRetries = %v, want 5", dev.MaxRetries)
	}
	if dev.CacheEnabled() {
		t.Error("devstack cache should be disabled")
	}
	if dev.Cache.Expiration.StdDuration() != 2*time.Minute {
		t.Errorf("devstack Cache.Expiration = %s, want 2m", dev.Cache.Expiration)
	}
}

func TestLoadFromBytes_DefaultsApplied(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(validCloudsYAML))
	if err != nil {
		t.Fatalf("LoadFromBytes failed: %v", err)
	}

	staging := cfg.Clouds["staging"]
	if staging == nil {
		t.Fatal("cloud 'staging' missing after load")
	}
	if staging.Auth.Type != AuthTypeNone {
		t.Errorf("staging Auth.Type = %s, want none (no token given)", staging.Auth.Type)
	}
	if staging.Interface != InterfacePublic {
		t.Errorf("staging Interface = %s, want public", staging.Interface)
	}
	if staging.APIVersion != common.DefaultAPIVersion {
		t.Errorf("staging APIVersion = %s, want %s", staging.APIVersion, common.DefaultAPIVersion)
	}
	if staging.Timeout.StdDuration() != 30*time.Second {
		t.Errorf("staging Timeout = %s, want 30s", staging.Timeout)
	}
	if staging.MaxRetries == nil || *staging.MaxRetries != 3 {
		t.Errorf("staging MaxRetries = %v, want 3", staging.MaxRetries)
	}
	if !staging.CacheEnabled() {
		t.Error("staging cache should default to enabled")
	}
	if staging.Cache.Expiration != 0 {
		t.Errorf("staging Cache.Expiration = %s, want 0 (no TTL)", staging.Cache.Expiration)
	}
	if staging.Cache.CleanupInterval.StdDuration() != 5*time.Minute {
		t.Errorf("staging Cache.CleanupInterval = %s, want 5m", staging.Cache.CleanupInterval)
	}
}

func TestLoadFromBytes_InvalidSyntax(t *testing.T) {
	_, err := LoadFromBytes([]byte(invalidSyntaxYAML))
	if err == nil {
		t.Fatal("LoadFromBytes with broken YAML should fail")
	}
	if !strings.Contains(err.Error(), "failed to unmarshal yaml config") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadFromBytes_ValidationFailure(t *testing.T) {
	_, err := LoadFromBytes([]byte(invalidVersionYAML))
	if err == nil {
		t.Fatal("LoadFromBytes with unsupported microversion should fail")
	}
	if !strings.Contains(err.Error(), "configuration validation failed") {
		t.Errorf("error should wrap validation failure, got: %v", err)
	}
	if !strings.Contains(err.Error(), "clouds[devstack].api_version") {
		t.Errorf("error should name the offending field, got: %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clouds.yaml")
	if err := os.WriteFile(path, []byte(validCloudsYAML), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) failed: %v", path, err)
	}
	if len(cfg.Clouds) != 2 {
		t.Errorf("Expected 2 clouds, got %d", len(cfg.Clouds))
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Error("Load with empty path should fail")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load with missing file should fail")
	}
}

func TestFindConfigFile_Precedence(t *testing.T) {
	t.Setenv(common.EnvConfigFile, "/env/clouds.yaml")

	got, err := FindConfigFile("/explicit/clouds.yaml")
	if err != nil {
		t.Fatalf("FindConfigFile with explicit path failed: %v", err)
	}
	if got != "/explicit/clouds.yaml" {
		t.Errorf("explicit path should win, got %s", got)
	}

	got, err = FindConfigFile("")
	if err != nil {
		t.Fatalf("FindConfigFile from env failed: %v", err)
	}
	if got != "/env/clouds.yaml" {
		t.Errorf("env path should win when no explicit path, got %s", got)
	}
}

func TestLoadCloud_ByName(t *testing.T) {
	path := writeCloudsFixture(t, validCloudsYAML)
	t.Setenv(common.EnvCloud, "")
	t.Setenv(common.EnvToken, "")
	t.Setenv(common.EnvEndpoint, "")

	name, cloud, err := LoadCloud(path, "devstack")
	if err != nil {
		t.Fatalf("LoadCloud failed: %v", err)
	}
	if name != "devstack" {
		t.Errorf("resolved name = %s, want devstack", name)
	}
	if cloud.RegionName != "RegionOne" {
		t.Errorf("RegionName = %s, want RegionOne", cloud.RegionName)
	}

	if _, _, err := LoadCloud(path, "missing"); err == nil {
		t.Error("LoadCloud with unknown name should fail")
	} else if !strings.Contains(err.Error(), "'missing' not defined") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadCloud_NameFromEnv(t *testing.T) {
	path := writeCloudsFixture(t, validCloudsYAML)
	t.Setenv(common.EnvCloud, "staging")
	t.Setenv(common.EnvToken, "")
	t.Setenv(common.EnvEndpoint, "")

	name, cloud, err := LoadCloud(path, "")
	if err != nil {
		t.Fatalf("LoadCloud via %s failed: %v", common.EnvCloud, err)
	}
	if name != "staging" {
		t.Errorf("resolved name = %s, want staging", name)
	}
	if cloud.Auth.Endpoint != "http://10.0.0.4:9511/v1" {
		t.Errorf("loaded wrong cloud, endpoint = %s", cloud.Auth.Endpoint)
	}
}

func TestLoadCloud_AmbiguousWithoutName(t *testing.T) {
	path := writeCloudsFixture(t, validCloudsYAML)
	t.Setenv(common.EnvCloud, "")

	if _, _, err := LoadCloud(path, ""); err == nil {
		t.Error("LoadCloud without a name should fail when several clouds are defined")
	} else if !strings.Contains(err.Error(), "cloud name required") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadCloud_SingleCloudNeedsNoName(t *testing.T) {
	const single = `
clouds:
  only:
    auth:
      endpoint: http://localhost:9511/v1
`
	path := writeCloudsFixture(t, single)
	t.Setenv(common.EnvCloud, "")
	t.Setenv(common.EnvToken, "")
	t.Setenv(common.EnvEndpoint, "")

	name, cloud, err := LoadCloud(path, "")
	if err != nil {
		t.Fatalf("LoadCloud failed: %v", err)
	}
	if name != "only" {
		t.Errorf("resolved name = %s, want only", name)
	}
	if cloud.Auth.Endpoint != "http://localhost:9511/v1" {
		t.Errorf("endpoint = %s", cloud.Auth.Endpoint)
	}
}

func TestLoadCloud_EnvOverrides(t *testing.T) {
	path := writeCloudsFixture(t, validCloudsYAML)
	t.Setenv(common.EnvCloud, "")
	t.Setenv(common.EnvToken, "overridden-token")
	t.Setenv(common.EnvEndpoint, "https://other.example:9511/v1")

	_, cloud, err := LoadCloud(path, "staging")
	if err != nil {
		t.Fatalf("LoadCloud failed: %v", err)
	}
	if cloud.Auth.Token != "overridden-token" {
		t.Errorf("Auth.Token = %s, want env override", cloud.Auth.Token)
	}
	if cloud.Auth.Type != AuthTypeToken {
		t.Errorf("Auth.Type = %s, want token after override", cloud.Auth.Type)
	}
	if cloud.Auth.Endpoint != "https://other.example:9511/v1" {
		t.Errorf("Auth.Endpoint = %s, want env override", cloud.Auth.Endpoint)
	}
}

func writeCloudsFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clouds.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}
