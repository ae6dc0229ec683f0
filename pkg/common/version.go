package common

const (
	// DefaultAPIVersion is the container-infra microversion requested when a
	// profile does not pin one. 1.8 is the floor at which every resource this
	// client touches (clusters, templates, certificates, mservices) behaves
	// uniformly across deployments still in the wild.
	DefaultAPIVersion = "1.8"

	// MinAPIVersion and MaxAPIVersion bound the microversions this client
	// knows how to speak. Profiles pinning a version outside the range are
	// rejected at config validation.
	MinAPIVersion = "1.1"
	MaxAPIVersion = "1.11"
)
