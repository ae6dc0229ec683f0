package config

import (
	"time"

	"github.com/mensylisir/coexm/pkg/common"
)

// SetDefaults applies default values to the clouds configuration for fields
// that were not explicitly set by the user. It modifies cfg in place.
func SetDefaults(cfg *File) {
	if cfg == nil {
		return
	}

	if cfg.Clouds == nil {
		cfg.Clouds = make(map[string]*Cloud)
	}

	for _, cloud := range cfg.Clouds {
		if cloud == nil {
			continue
		}
		SetCloudDefaults(cloud)
	}
}

// SetCloudDefaults fills one profile in place.
func SetCloudDefaults(cloud *Cloud) {
	if cloud == nil {
		return
	}

	if cloud.Auth.Type == "" {
		if cloud.Auth.Token != "" {
			cloud.Auth.Type = AuthTypeToken
		} else {
			cloud.Auth.Type = AuthTypeNone
		}
	}
	if cloud.Interface == "" {
		cloud.Interface = InterfacePublic
	}
	if cloud.APIVersion == "" {
		cloud.APIVersion = common.DefaultAPIVersion
	}
	if cloud.Timeout == 0 {
		cloud.Timeout = Duration(30 * time.Second)
	}
	if cloud.MaxRetries == nil {
		retries := 3
		cloud.MaxRetries = &retries
	}

	if cloud.Cache.Enabled == nil {
		enabled := true
		cloud.Cache.Enabled = &enabled
	}
	if cloud.Cache.CleanupInterval == 0 {
		cloud.Cache.CleanupInterval = Duration(5 * time.Minute)
	}
	// Cache.Expiration deliberately keeps its zero value: entries then live
	// until a write operation invalidates them.
}
