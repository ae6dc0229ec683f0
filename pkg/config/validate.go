package config

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/Masterminds/semver/v3"

	"github.com/mensylisir/coexm/pkg/common"
	"github.com/mensylisir/coexm/pkg/errors/validation"
)

var apiVersionPattern = regexp.MustCompile(`^[1-9][0-9]*\.[0-9]+$`)

// Validate checks the whole clouds configuration and returns an aggregated
// error listing every problem found, or nil.
func Validate(cfg *File) error {
	if cfg == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	verrs := &validation.ValidationErrors{}

	if len(cfg.Clouds) == 0 {
		verrs.AddError("clouds", "at least one cloud profile must be defined")
	}

	for name, cloud := range cfg.Clouds {
		path := fmt.Sprintf("clouds[%s]", name)
		if name == "" {
			verrs.AddError("clouds", "cloud profile name cannot be empty")
			continue
		}
		if cloud == nil {
			verrs.AddError(path, "cloud profile cannot be empty")
			continue
		}
		validateCloud(path, cloud, verrs)
	}

	return verrs.ErrorOrNil()
}

// ValidateCloud checks a single profile, for callers that build one
// programmatically instead of loading a file.
func ValidateCloud(name string, cloud *Cloud) error {
	if cloud == nil {
		return fmt.Errorf("cloud profile cannot be nil")
	}
	verrs := &validation.ValidationErrors{}
	validateCloud(fmt.Sprintf("clouds[%s]", name), cloud, verrs)
	return verrs.ErrorOrNil()
}

func validateCloud(path string, cloud *Cloud, verrs *validation.ValidationErrors) {
	validateAuth(path+".auth", &cloud.Auth, verrs)

	switch cloud.Interface {
	case InterfacePublic, InterfaceInternal, InterfaceAdmin:
	default:
		verrs.Add(path+".interface", "must be one of [public internal admin], got '%s'", cloud.Interface)
	}

	validateAPIVersion(path+".api_version", cloud.APIVersion, verrs)

	if cloud.Timeout < 0 {
		verrs.Add(path+".timeout", "cannot be negative, got %s", cloud.Timeout)
	}
	if cloud.MaxRetries != nil && *cloud.MaxRetries < 0 {
		verrs.Add(path+".max_retries", "cannot be negative, got %d", *cloud.MaxRetries)
	}
	if cloud.Cache.Expiration < 0 {
		verrs.Add(path+".cache.expiration", "cannot be negative, got %s", cloud.Cache.Expiration)
	}
	if cloud.Cache.CleanupInterval < 0 {
		verrs.Add(path+".cache.cleanup_interval", "cannot be negative, got %s", cloud.Cache.CleanupInterval)
	}
}

func validateAuth(path string, auth *AuthSpec, verrs *validation.ValidationErrors) {
	switch auth.Type {
	case AuthTypeToken:
		if auth.Token == "" {
			verrs.AddError(path+".token", "token is required when auth_type is 'token'")
		}
	case AuthTypeNone:
	default:
		verrs.Add(path+".auth_type", "must be one of [token none], got '%s'", auth.Type)
	}

	if auth.Endpoint == "" {
		verrs.AddError(path+".endpoint", "endpoint is required")
		return
	}
	u, err := url.Parse(auth.Endpoint)
	if err != nil {
		verrs.Add(path+".endpoint", "invalid URL '%s': %v", auth.Endpoint, err)
		return
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		verrs.Add(path+".endpoint", "scheme must be http or https, got '%s'", auth.Endpoint)
	}
	if u.Host == "" {
		verrs.Add(path+".endpoint", "missing host in '%s'", auth.Endpoint)
	}
}

// validateAPIVersion enforces the MAJOR.MINOR shape and the supported
// microversion window.
func validateAPIVersion(path, version string, verrs *validation.ValidationErrors) {
	if version == "" {
		return
	}
	if !apiVersionPattern.MatchString(version) {
		verrs.Add(path, "must look like MAJOR.MINOR, got '%s'", version)
		return
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		verrs.Add(path, "unparseable version '%s': %v", version, err)
		return
	}
	min := semver.MustParse(common.MinAPIVersion)
	max := semver.MustParse(common.MaxAPIVersion)
	if v.LessThan(min) || v.GreaterThan(max) {
		verrs.Add(path, "unsupported microversion '%s', supported range is %s to %s", version, common.MinAPIVersion, common.MaxAPIVersion)
	}
}
