package cloud

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/mensylisir/coexm/pkg/containerinfra"
	"github.com/mensylisir/coexm/pkg/session"
)

// getClusterResult scripts one GetCluster poll response for waiter tests.
type getClusterResult struct {
	obj containerinfra.Object
	err error
}

// fakeService is an in-memory ContainerInfraService recording every call.
type fakeService struct {
	mu sync.Mutex

	clusters  []containerinfra.Object
	templates []containerinfra.Object
	services  []containerinfra.Object

	caCert       containerinfra.Object
	signResponse containerinfra.Object
	lastCSR      string

	lastClusterOps  []containerinfra.UpdateOp
	lastTemplateOps []containerinfra.UpdateOp

	getClusterQueue []getClusterResult

	errs  map[string]error
	calls map[string]int
}

func newFakeService() *fakeService {
	return &fakeService{
		errs:  map[string]error{},
		calls: map[string]int{},
	}
}

func (f *fakeService) record(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
	return f.errs[method]
}

func (f *fakeService) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeService) failWith(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[method] = err
}

func notFoundErr(path string) *session.APIError {
	return &session.APIError{Method: http.MethodGet, Path: path, StatusCode: http.StatusNotFound}
}

func (f *fakeService) ListClusters(_ context.Context, _ containerinfra.ListOpts) ([]containerinfra.Object, error) {
	if err := f.record("ListClusters"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]containerinfra.Object, len(f.clusters))
	copy(out, f.clusters)
	return out, nil
}

func (f *fakeService) GetCluster(_ context.Context, id string) (containerinfra.Object, error) {
	if err := f.record("GetCluster"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.getClusterQueue) > 0 {
		next := f.getClusterQueue[0]
		f.getClusterQueue = f.getClusterQueue[1:]
		return next.obj, next.err
	}
	for _, cl := range f.clusters {
		if cl.ID() == id {
			return cl.Clone(), nil
		}
	}
	return nil, notFoundErr("/clusters/" + id)
}

func (f *fakeService) CreateCluster(_ context.Context, opts containerinfra.CreateClusterOpts) (containerinfra.Object, error) {
	if err := f.record("CreateCluster"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	created := containerinfra.Object{
		"uuid":                fmt.Sprintf("gen-%d", len(f.clusters)+1),
		"name":                opts.Name,
		"cluster_template_id": opts.ClusterTemplateID,
		"status":              "CREATE_IN_PROGRESS",
	}
	f.clusters = append(f.clusters, created)
	return created.Clone(), nil
}

func (f *fakeService) UpdateCluster(_ context.Context, id string, ops []containerinfra.UpdateOp) (containerinfra.Object, error) {
	if err := f.record("UpdateCluster"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastClusterOps = ops
	for i, cl := range f.clusters {
		if cl.ID() != id {
			continue
		}
		updated := cl.Clone()
		applyOps(updated, ops)
		f.clusters[i] = updated
		return updated.Clone(), nil
	}
	return nil, notFoundErr("/clusters/" + id)
}

func (f *fakeService) DeleteCluster(_ context.Context, id string) error {
	if err := f.record("DeleteCluster"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, cl := range f.clusters {
		if cl.ID() == id {
			f.clusters = append(f.clusters[:i], f.clusters[i+1:]...)
			return nil
		}
	}
	return notFoundErr("/clusters/" + id)
}

func (f *fakeService) ListClusterTemplates(_ context.Context, _ containerinfra.ListOpts) ([]containerinfra.Object, error) {
	if err := f.record("ListClusterTemplates"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]containerinfra.Object, len(f.templates))
	copy(out, f.templates)
	return out, nil
}

func (f *fakeService) CreateClusterTemplate(_ context.Context, opts containerinfra.CreateClusterTemplateOpts) (containerinfra.Object, error) {
	if err := f.record("CreateClusterTemplate"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	created := containerinfra.Object{
		"uuid": fmt.Sprintf("tpl-gen-%d", len(f.templates)+1),
		"name": opts.Name,
		"coe":  opts.COE,
	}
	f.templates = append(f.templates, created)
	return created.Clone(), nil
}

func (f *fakeService) UpdateClusterTemplate(_ context.Context, id string, ops []containerinfra.UpdateOp) (containerinfra.Object, error) {
	if err := f.record("UpdateClusterTemplate"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastTemplateOps = ops
	for i, tpl := range f.templates {
		if tpl.ID() != id {
			continue
		}
		updated := tpl.Clone()
		applyOps(updated, ops)
		f.templates[i] = updated
		return updated.Clone(), nil
	}
	return nil, notFoundErr("/clustertemplates/" + id)
}

func (f *fakeService) DeleteClusterTemplate(_ context.Context, id string) error {
	if err := f.record("DeleteClusterTemplate"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, tpl := range f.templates {
		if tpl.ID() == id {
			f.templates = append(f.templates[:i], f.templates[i+1:]...)
			return nil
		}
	}
	return notFoundErr("/clustertemplates/" + id)
}

func (f *fakeService) GetCertificate(_ context.Context, clusterID string) (containerinfra.Object, error) {
	if err := f.record("GetCertificate"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.caCert != nil {
		return f.caCert.Clone(), nil
	}
	return nil, notFoundErr("/certificates/" + clusterID)
}

func (f *fakeService) SignCertificate(_ context.Context, opts containerinfra.SignCertificateOpts) (containerinfra.Object, error) {
	if err := f.record("SignCertificate"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCSR = opts.CSR
	if f.signResponse != nil {
		return f.signResponse.Clone(), nil
	}
	return containerinfra.Object{"cluster_uuid": opts.ClusterUUID, "pem": "signed"}, nil
}

func (f *fakeService) ListServices(_ context.Context) ([]containerinfra.Object, error) {
	if err := f.record("ListServices"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]containerinfra.Object, len(f.services))
	copy(out, f.services)
	return out, nil
}

func applyOps(obj containerinfra.Object, ops []containerinfra.UpdateOp) {
	for _, op := range ops {
		key := op.Path
		if len(key) > 0 && key[0] == '/' {
			key = key[1:]
		}
		switch op.Op {
		case containerinfra.OpRemove:
			delete(obj, key)
		default:
			obj[key] = op.Value
		}
	}
}

// newTestCloud builds a facade over a fake service with caching on and no
// TTL, mirroring the default profile.
func newTestCloud(f *fakeService, mutate func(*Options)) *Cloud {
	opts := Options{
		CloudName: "testcloud",
		Location: Location{
			Cloud:      "testcloud",
			RegionName: "RegionOne",
			Project:    Project{ID: "proj-1", Name: "demo"},
		},
	}
	if mutate != nil {
		mutate(&opts)
	}
	return NewWithService(f, opts)
}
