package containerinfra

import (
	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"

	"github.com/mensylisir/coexm/pkg/common"
)

// SupportedMicroversions returns the inclusive microversion window this
// client speaks.
func SupportedMicroversions() (min, max string) {
	return common.MinAPIVersion, common.MaxAPIVersion
}

// ValidateMicroversion checks that v parses and falls inside the supported
// window.
func ValidateMicroversion(v string) error {
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return errors.Wrapf(err, "invalid microversion '%s'", v)
	}
	min := semver.MustParse(common.MinAPIVersion)
	max := semver.MustParse(common.MaxAPIVersion)
	if parsed.LessThan(min) || parsed.GreaterThan(max) {
		return errors.Errorf("unsupported microversion '%s': this client supports %s through %s", v, common.MinAPIVersion, common.MaxAPIVersion)
	}
	return nil
}
