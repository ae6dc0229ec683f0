package cloud

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensylisir/coexm/pkg/containerinfra"
	"github.com/mensylisir/coexm/pkg/resolve"
)

func seedClusters(f *fakeService, clusters ...containerinfra.Object) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clusters = clusters
}

func TestListCOEClustersMemoized(t *testing.T) {
	f := newFakeService()
	seedClusters(f, containerinfra.Object{"uuid": "c-1", "name": "web"})
	c := newTestCloud(f, nil)
	ctx := context.Background()

	first, err := c.ListCOEClusters(ctx)
	require.NoError(t, err)
	second, err := c.ListCOEClusters(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.callCount("ListClusters"), "second list should come from the cache")
}

func TestListCOEClustersCacheDisabled(t *testing.T) {
	f := newFakeService()
	c := newTestCloud(f, func(o *Options) { o.DisableCache = true })
	ctx := context.Background()

	_, err := c.ListCOEClusters(ctx)
	require.NoError(t, err)
	_, err = c.ListCOEClusters(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, f.callCount("ListClusters"))
}

func TestListCOEClustersConcurrentSingleFetch(t *testing.T) {
	f := newFakeService()
	seedClusters(f, containerinfra.Object{"uuid": "c-1", "name": "web"})
	c := newTestCloud(f, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			records, err := c.ListCOEClusters(ctx)
			assert.NoError(t, err)
			assert.Len(t, records, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, f.callCount("ListClusters"), "concurrent callers must share one fetch")
}

func TestListCOEClustersError(t *testing.T) {
	f := newFakeService()
	cause := errors.New("boom")
	f.failWith("ListClusters", cause)
	c := newTestCloud(f, nil)

	_, err := c.ListCOEClusters(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error fetching COE cluster list")
	assert.ErrorIs(t, err, cause)
}

func TestSearchCOEClusters(t *testing.T) {
	f := newFakeService()
	seedClusters(f,
		containerinfra.Object{"uuid": "c-1", "name": "web-1", "status": "CREATE_COMPLETE"},
		containerinfra.Object{"uuid": "c-2", "name": "web-2", "status": "CREATE_FAILED"},
		containerinfra.Object{"uuid": "c-3", "name": "db", "status": "CREATE_COMPLETE"},
	)
	c := newTestCloud(f, nil)
	ctx := context.Background()

	matches, err := c.SearchCOEClusters(ctx, "web-*", nil)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "c-1", matches[0].ID())
	assert.Equal(t, "c-2", matches[1].ID())

	matches, err = c.SearchCOEClusters(ctx, "", &resolve.Filters{Match: map[string]interface{}{"status": "CREATE_COMPLETE"}})
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "c-1", matches[0].ID())
	assert.Equal(t, "c-3", matches[1].ID())

	// Both searches rode the same cached list.
	assert.Equal(t, 1, f.callCount("ListClusters"))
}

func TestGetCOECluster(t *testing.T) {
	f := newFakeService()
	seedClusters(f,
		containerinfra.Object{"uuid": "c-1", "name": "web"},
		containerinfra.Object{"uuid": "c-2", "name": "db"},
	)
	c := newTestCloud(f, nil)
	ctx := context.Background()

	t.Run("by name", func(t *testing.T) {
		cluster, err := c.GetCOECluster(ctx, "web", nil)
		require.NoError(t, err)
		require.NotNil(t, cluster)
		assert.Equal(t, "c-1", cluster.ID())
	})

	t.Run("by id", func(t *testing.T) {
		cluster, err := c.GetCOECluster(ctx, "c-2", nil)
		require.NoError(t, err)
		require.NotNil(t, cluster)
		assert.Equal(t, "db", cluster.Name())
	})

	t.Run("absent is not an error", func(t *testing.T) {
		cluster, err := c.GetCOECluster(ctx, "ghost", nil)
		require.NoError(t, err)
		assert.Nil(t, cluster)
	})

	t.Run("ambiguous", func(t *testing.T) {
		cluster, err := c.GetCOECluster(ctx, "*", nil)
		require.Error(t, err)
		assert.Nil(t, cluster)
		assert.True(t, resolve.IsMultipleMatches(err))
	})
}

func TestCreateCOEClusterInvalidatesCache(t *testing.T) {
	f := newFakeService()
	c := newTestCloud(f, nil)
	ctx := context.Background()

	before, err := c.ListCOEClusters(ctx)
	require.NoError(t, err)
	assert.Empty(t, before)

	created, err := c.CreateCOECluster(ctx, containerinfra.CreateClusterOpts{
		Name:              "web",
		ClusterTemplateID: "tpl-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "web", created.Name())

	after, err := c.ListCOEClusters(ctx)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "web", after[0].Name())
	assert.Equal(t, 2, f.callCount("ListClusters"), "create must invalidate the cached list")
}

func TestCreateCOEClusterError(t *testing.T) {
	f := newFakeService()
	cause := errors.New("quota exceeded")
	f.failWith("CreateCluster", cause)
	c := newTestCloud(f, nil)

	_, err := c.CreateCOECluster(context.Background(), containerinfra.CreateClusterOpts{Name: "web"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error creating COE cluster web")
	assert.ErrorIs(t, err, cause)
}

func TestDeleteCOEClusterNonexistent(t *testing.T) {
	f := newFakeService()
	seedClusters(f, containerinfra.Object{"uuid": "c-1", "name": "web"})
	c := newTestCloud(f, nil)

	deleted, err := c.DeleteCOECluster(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 0, f.callCount("DeleteCluster"), "no delete call for a cluster that does not exist")
}

func TestDeleteCOECluster(t *testing.T) {
	f := newFakeService()
	seedClusters(f,
		containerinfra.Object{"uuid": "c-1", "name": "web"},
		containerinfra.Object{"uuid": "c-2", "name": "db"},
	)
	c := newTestCloud(f, nil)
	ctx := context.Background()

	// Warm the cache so invalidation is observable.
	_, err := c.ListCOEClusters(ctx)
	require.NoError(t, err)

	deleted, err := c.DeleteCOECluster(ctx, "web")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, 1, f.callCount("DeleteCluster"))

	remaining, err := c.ListCOEClusters(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "db", remaining[0].Name())
}

func TestDeleteCOEClusterUpstreamError(t *testing.T) {
	f := newFakeService()
	seedClusters(f, containerinfra.Object{"uuid": "c-1", "name": "web"})
	cause := errors.New("conflict")
	f.failWith("DeleteCluster", cause)
	c := newTestCloud(f, nil)

	deleted, err := c.DeleteCOECluster(context.Background(), "web")
	require.Error(t, err)
	assert.False(t, deleted)
	assert.Contains(t, err.Error(), "Error deleting COE cluster web")
	assert.ErrorIs(t, err, cause)
}

func TestUpdateCOEClusterNotFound(t *testing.T) {
	f := newFakeService()
	c := newTestCloud(f, nil)

	_, err := c.UpdateCOECluster(context.Background(), "ghost", map[string]interface{}{"node_count": 4})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.EqualError(t, err, "COE cluster ghost not found.")
	assert.Equal(t, 0, f.callCount("UpdateCluster"))
}

func TestUpdateCOEClusterRefreshesBeforeResolving(t *testing.T) {
	f := newFakeService()
	seedClusters(f, containerinfra.Object{"uuid": "c-1", "name": "old-name", "node_count": 3})
	c := newTestCloud(f, nil)
	ctx := context.Background()

	// Warm the cache with the old name, then rename upstream behind the
	// facade's back.
	_, err := c.ListCOEClusters(ctx)
	require.NoError(t, err)
	f.mu.Lock()
	f.clusters[0]["name"] = "new-name"
	f.mu.Unlock()

	updated, err := c.UpdateCOECluster(ctx, "new-name", map[string]interface{}{"node_count": 4})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 2, f.callCount("ListClusters"), "update must drop the cached list before resolving")
	assert.Equal(t, 1, f.callCount("UpdateCluster"))

	v, _ := updated["node_count"].(int)
	assert.Equal(t, 4, v)

	// The write invalidated the list again, so the next read is fresh.
	records, err := c.ListCOEClusters(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, f.callCount("ListClusters"))
	require.Len(t, records, 1)
	nc, _ := records[0]["node_count"].(int)
	assert.Equal(t, 4, nc)
}

func TestUpdateCOEClusterEmptyAttrs(t *testing.T) {
	f := newFakeService()
	seedClusters(f, containerinfra.Object{"uuid": "c-1", "name": "web"})
	c := newTestCloud(f, nil)

	resolved, err := c.UpdateCOECluster(context.Background(), "web", nil)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, "c-1", resolved.ID())
	assert.Equal(t, 0, f.callCount("UpdateCluster"), "empty attrs must not produce an upstream call")
}

func TestUpdateCOEClusterNilRemovesAttribute(t *testing.T) {
	f := newFakeService()
	seedClusters(f, containerinfra.Object{"uuid": "c-1", "name": "web", "keypair": "ops"})
	c := newTestCloud(f, nil)

	updated, err := c.UpdateCOECluster(context.Background(), "web", map[string]interface{}{"keypair": nil})
	require.NoError(t, err)
	assert.False(t, updated.Has("keypair"))
	require.Len(t, f.lastClusterOps, 1)
	assert.Equal(t, containerinfra.OpRemove, f.lastClusterOps[0].Op)
	assert.Equal(t, "/keypair", f.lastClusterOps[0].Path)
}

func TestUpdateCOEClusterUpstreamError(t *testing.T) {
	f := newFakeService()
	seedClusters(f, containerinfra.Object{"uuid": "c-1", "name": "web"})
	cause := errors.New("locked")
	f.failWith("UpdateCluster", cause)
	c := newTestCloud(f, nil)

	_, err := c.UpdateCOECluster(context.Background(), "web", map[string]interface{}{"node_count": 4})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error updating COE cluster web")
	assert.ErrorIs(t, err, cause)
}

func TestClusterAndTemplateCachesIndependent(t *testing.T) {
	f := newFakeService()
	seedClusters(f, containerinfra.Object{"uuid": "c-1", "name": "web"})
	seedTemplates(f, containerinfra.Object{"uuid": "tpl-1", "name": "k8s-small"})
	c := newTestCloud(f, nil)
	ctx := context.Background()

	_, err := c.ListCOEClusters(ctx)
	require.NoError(t, err)
	_, err = c.ListClusterTemplates(ctx)
	require.NoError(t, err)

	// A cluster write leaves the template cache intact.
	_, err = c.CreateCOECluster(ctx, containerinfra.CreateClusterOpts{Name: "api"})
	require.NoError(t, err)

	_, err = c.ListClusterTemplates(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.callCount("ListClusterTemplates"))

	_, err = c.ListCOEClusters(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.callCount("ListClusters"))
}
