// Package cloud is the convenience facade over the container-infra API:
// CRUD and search for COE clusters and cluster templates, certificate
// operations, service listings, response normalization into canonical
// records, and a memoized list cache that write operations invalidate.
package cloud

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/mensylisir/coexm/pkg/cache"
	"github.com/mensylisir/coexm/pkg/config"
	"github.com/mensylisir/coexm/pkg/containerinfra"
	"github.com/mensylisir/coexm/pkg/logger"
	"github.com/mensylisir/coexm/pkg/session"
)

// ContainerInfraService is the upstream surface the facade drives. It is
// satisfied by *containerinfra.Client and by fakes in tests.
type ContainerInfraService interface {
	ListClusters(ctx context.Context, opts containerinfra.ListOpts) ([]containerinfra.Object, error)
	GetCluster(ctx context.Context, id string) (containerinfra.Object, error)
	CreateCluster(ctx context.Context, opts containerinfra.CreateClusterOpts) (containerinfra.Object, error)
	UpdateCluster(ctx context.Context, id string, ops []containerinfra.UpdateOp) (containerinfra.Object, error)
	DeleteCluster(ctx context.Context, id string) error

	ListClusterTemplates(ctx context.Context, opts containerinfra.ListOpts) ([]containerinfra.Object, error)
	CreateClusterTemplate(ctx context.Context, opts containerinfra.CreateClusterTemplateOpts) (containerinfra.Object, error)
	UpdateClusterTemplate(ctx context.Context, id string, ops []containerinfra.UpdateOp) (containerinfra.Object, error)
	DeleteClusterTemplate(ctx context.Context, id string) error

	GetCertificate(ctx context.Context, clusterID string) (containerinfra.Object, error)
	SignCertificate(ctx context.Context, opts containerinfra.SignCertificateOpts) (containerinfra.Object, error)

	ListServices(ctx context.Context) ([]containerinfra.Object, error)
}

// Options tune a facade built over an existing service client.
type Options struct {
	// CloudName labels logs and the Location of normalized records.
	CloudName string
	// Strict suppresses legacy duplicate field names in normalized output.
	Strict bool
	// Location is stamped onto every normalized record.
	Location Location
	// CacheTTL bounds how long memoized lists live without invalidation.
	// Zero or negative keeps them until a write operation invalidates.
	CacheTTL time.Duration
	// CacheCleanupInterval drives background eviction when CacheTTL is set.
	CacheCleanupInterval time.Duration
	// DisableCache turns list memoization off entirely.
	DisableCache bool
	// Logger defaults to the global logger.
	Logger *logger.Logger
}

// Cloud is the facade. Safe for concurrent use: the list cache provides its
// own locking and concurrent fetches of the same list are deduplicated.
type Cloud struct {
	svc      ContainerInfraService
	cache    cache.Cache
	group    singleflight.Group
	log      *logger.Logger
	name     string
	strict   bool
	location Location
}

// New connects to the endpoint described by a clouds profile and returns a
// facade over it. The profile is defaulted and validated first, so
// programmatically built profiles get the same treatment as loaded ones.
func New(name string, profile *config.Cloud) (*Cloud, error) {
	if profile == nil {
		return nil, errors.New("cloud profile cannot be nil")
	}
	config.SetCloudDefaults(profile)
	if err := config.ValidateCloud(name, profile); err != nil {
		return nil, err
	}

	var provider session.TokenProvider
	if profile.Auth.Type == config.AuthTypeToken {
		provider = session.StaticToken(profile.Auth.Token)
	}
	maxRetries := 0
	if profile.MaxRetries != nil {
		maxRetries = *profile.MaxRetries
	}

	sess, err := session.New(session.Options{
		Endpoint:      profile.Auth.Endpoint,
		TokenProvider: provider,
		APIVersion:    profile.APIVersion,
		Timeout:       profile.Timeout.StdDuration(),
		MaxRetries:    maxRetries,
		Insecure:      profile.Insecure,
		CACertFile:    profile.CACertFile,
		EnableMetrics: true,
		EnableTracing: true,
	})
	if err != nil {
		return nil, err
	}
	client, err := containerinfra.NewClient(sess)
	if err != nil {
		return nil, err
	}

	return NewWithService(client, Options{
		CloudName:            name,
		Strict:               profile.Strict,
		Location:             LocationFromProfile(name, profile),
		CacheTTL:             profile.Cache.Expiration.StdDuration(),
		CacheCleanupInterval: profile.Cache.CleanupInterval.StdDuration(),
		DisableCache:         !profile.CacheEnabled(),
	}), nil
}

// NewWithService builds a facade over an already-constructed service client.
func NewWithService(svc ContainerInfraService, opts Options) *Cloud {
	log := opts.Logger
	if log == nil {
		log = logger.Get()
	}
	if opts.CloudName != "" {
		log = log.With("cloud", opts.CloudName)
	}

	var listCache cache.Cache
	if opts.DisableCache {
		listCache = cache.NewNoop()
	} else {
		listCache = cache.NewListCache(opts.CacheTTL, opts.CacheCleanupInterval)
	}

	return &Cloud{
		svc:      svc,
		cache:    listCache,
		log:      log,
		name:     opts.CloudName,
		strict:   opts.Strict,
		location: opts.Location,
	}
}

// LocationFromProfile derives the Location stamped on normalized records.
func LocationFromProfile(name string, profile *config.Cloud) Location {
	return Location{
		Cloud:      name,
		RegionName: profile.RegionName,
		Zone:       profile.Zone,
		Project: Project{
			ID:         profile.Auth.ProjectID,
			Name:       profile.Auth.ProjectName,
			DomainID:   profile.Auth.DomainID,
			DomainName: profile.Auth.DomainName,
		},
	}
}

// Name returns the profile name this facade was built from.
func (c *Cloud) Name() string {
	return c.name
}

// Strict reports whether legacy duplicate field names are suppressed.
func (c *Cloud) Strict() bool {
	return c.strict
}

// CurrentLocation returns the Location stamped on normalized records.
func (c *Cloud) CurrentLocation() Location {
	return c.location
}

// Service exposes the underlying client, for callers needing operations the
// facade does not wrap.
func (c *Cloud) Service() ContainerInfraService {
	return c.svc
}

// cachedList returns the memoized list under key, fetching it at most once
// across concurrent callers.
func (c *Cloud) cachedList(ctx context.Context, key string, fetch func(context.Context) ([]containerinfra.Object, error)) ([]containerinfra.Object, error) {
	if cached, ok := c.cache.Get(key); ok {
		if records, ok := cached.([]containerinfra.Object); ok {
			return records, nil
		}
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A concurrent caller may have filled the cache while we queued.
		if cached, ok := c.cache.Get(key); ok {
			return cached, nil
		}
		records, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.cache.Set(key, records)
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	records, _ := v.([]containerinfra.Object)
	return records, nil
}

func (c *Cloud) invalidate(key string) {
	c.cache.Delete(key)
}
