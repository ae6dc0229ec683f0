package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mensylisir/coexm/pkg/common"
)

// Load reads a clouds YAML file from the given path, unmarshals it,
// applies defaults and validates the result.
func Load(configPath string) (*File, error) {
	if configPath == "" {
		return nil, fmt.Errorf("configuration file path cannot be empty")
	}

	yamlBytes, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	return LoadFromBytes(yamlBytes)
}

// LoadFromBytes unmarshals clouds YAML from a byte slice, applies defaults
// and validates. This is the core loading logic, also used by Load().
func LoadFromBytes(yamlBytes []byte) (*File, error) {
	var cfg File

	if err := yaml.Unmarshal(yamlBytes, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml config: %w", err)
	}

	SetDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// FindConfigFile resolves which clouds file to load. An explicit path wins,
// then $COEXM_CONFIG, then ./clouds.yaml, ~/.coexm/clouds.yaml and
// /etc/coexm/clouds.yaml in that order.
func FindConfigFile(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := os.Getenv(common.EnvConfigFile); env != "" {
		return env, nil
	}

	candidates := []string{common.DefaultConfigFile}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, common.COEXM, common.DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join("/etc/coexm", common.DefaultConfigFile))

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no clouds file found (searched %v); set %s or pass --config", candidates, common.EnvConfigFile)
}

// LoadCloud resolves and loads a single named profile, returning the profile
// name it settled on. An empty name falls back to $COEXM_CLOUD, or to the
// only profile when the file defines exactly one. Token and endpoint may be
// overridden per invocation through $COEXM_TOKEN and $COEXM_ENDPOINT so
// credentials can stay out of the file.
func LoadCloud(configPath, name string) (string, *Cloud, error) {
	resolved, err := FindConfigFile(configPath)
	if err != nil {
		return "", nil, err
	}
	cfg, err := Load(resolved)
	if err != nil {
		return "", nil, err
	}

	if name == "" {
		name = os.Getenv(common.EnvCloud)
	}
	if name == "" {
		if len(cfg.Clouds) == 1 {
			for only := range cfg.Clouds {
				name = only
			}
		} else {
			return "", nil, fmt.Errorf("cloud name required: %s defines %d clouds; pass --cloud or set %s", resolved, len(cfg.Clouds), common.EnvCloud)
		}
	}

	cloud, ok := cfg.Clouds[name]
	if !ok {
		return "", nil, fmt.Errorf("cloud '%s' not defined in %s", name, resolved)
	}

	applyEnvOverrides(cloud)
	return name, cloud, nil
}

func applyEnvOverrides(cloud *Cloud) {
	if token := os.Getenv(common.EnvToken); token != "" {
		cloud.Auth.Token = token
		cloud.Auth.Type = AuthTypeToken
	}
	if endpoint := os.Getenv(common.EnvEndpoint); endpoint != "" {
		cloud.Auth.Endpoint = endpoint
	}
}
