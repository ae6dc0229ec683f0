package common

const (
	// COEXM is the default root directory name for coexm state (config, logs).
	COEXM = ".coexm"

	// DefaultConfigFile is the clouds file looked up when --config is not given.
	DefaultConfigFile = "clouds.yaml"
)

// --- Service Constants ---
const (
	// ServiceType is the catalog service type for the container-infra API.
	ServiceType = "container-infra"
	// ServiceName is the conventional service name in OpenStack catalogs.
	ServiceName = "magnum"
)

// --- HTTP Header Names ---
const (
	HeaderAuthToken  = "X-Auth-Token"
	HeaderAPIVersion = "OpenStack-API-Version"
	HeaderRequestID  = "X-Openstack-Request-Id"
	HeaderUserAgent  = "User-Agent"
)

// --- Environment Variables ---
const (
	EnvConfigFile = "COEXM_CONFIG"
	EnvCloud      = "COEXM_CLOUD"
	EnvToken      = "COEXM_TOKEN"
	EnvEndpoint   = "COEXM_ENDPOINT"
)
