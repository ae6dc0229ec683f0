package containerinfra

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensylisir/coexm/pkg/session"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

func newTestClient(t *testing.T, status int, response string) (*Client, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.Method = r.Method
		rec.Path = r.URL.Path
		rec.Query = r.URL.RawQuery
		rec.Body, _ = io.ReadAll(r.Body)
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	s, err := session.New(session.Options{
		Endpoint:      server.URL + "/v1",
		TokenProvider: session.StaticToken("tok"),
	})
	require.NoError(t, err)
	client, err := NewClient(s)
	require.NoError(t, err)
	return client, rec
}

func TestNewClient_RejectsBadMicroversion(t *testing.T) {
	s, err := session.New(session.Options{Endpoint: "http://magnum:9511/v1", APIVersion: "1.99"})
	require.NoError(t, err)

	_, err = NewClient(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported microversion")
}

func TestListClusters(t *testing.T) {
	client, rec := newTestClient(t, http.StatusOK,
		`{"clusters": [{"uuid": "c-1", "name": "alpha"}, {"uuid": "c-2", "name": "beta"}]}`)

	clusters, err := client.ListClusters(context.Background(), ListOpts{Limit: 10, SortKey: "name"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, rec.Method)
	assert.Equal(t, "/v1/clusters", rec.Path)
	assert.Contains(t, rec.Query, "limit=10")
	assert.Contains(t, rec.Query, "sort_key=name")

	require.Len(t, clusters, 2)
	assert.Equal(t, "c-1", clusters[0].ID())
	assert.Equal(t, "beta", clusters[1].Name())
}

func TestGetCluster(t *testing.T) {
	client, rec := newTestClient(t, http.StatusOK, `{"uuid": "c-1", "name": "alpha"}`)

	cluster, err := client.GetCluster(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "/v1/clusters/c-1", rec.Path)
	assert.Equal(t, "alpha", cluster.Name())

	_, err = client.GetCluster(context.Background(), "")
	assert.Error(t, err)
}

func TestCreateCluster_BodyShape(t *testing.T) {
	client, rec := newTestClient(t, http.StatusAccepted, `{"uuid": "new-c"}`)

	nodes := 3
	created, err := client.CreateCluster(context.Background(), CreateClusterOpts{
		Name:              "alpha",
		ClusterTemplateID: "tpl-1",
		NodeCount:         &nodes,
		Labels:            map[string]string{"env": "dev"},
		Extra:             map[string]interface{}{"fixed_network": "net-override", "health_status": "UNKNOWN"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/v1/clusters", rec.Path)
	assert.Equal(t, "new-c", created.ID())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body, &body))
	assert.Equal(t, "alpha", body["name"])
	assert.Equal(t, "tpl-1", body["cluster_template_id"])
	assert.EqualValues(t, 3, body["node_count"])
	assert.Equal(t, "net-override", body["fixed_network"], "Extra should win over typed fields")
	assert.Equal(t, "UNKNOWN", body["health_status"], "Extra should pass through untyped attributes")
	assert.NotContains(t, body, "master_count", "nil pointer fields must be omitted")
	assert.NotContains(t, body, "Extra")
}

func TestUpdateCluster_PatchDocument(t *testing.T) {
	client, rec := newTestClient(t, http.StatusOK, `{"uuid": "c-1", "node_count": 5}`)

	_, err := client.UpdateCluster(context.Background(), "c-1", []UpdateOp{ReplaceOp("node_count", 5)})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, rec.Method)
	assert.Equal(t, "/v1/clusters/c-1", rec.Path)

	var ops []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body, &ops))
	require.Len(t, ops, 1)
	assert.Equal(t, "replace", ops[0]["op"])
	assert.Equal(t, "/node_count", ops[0]["path"])
	assert.EqualValues(t, 5, ops[0]["value"])

	_, err = client.UpdateCluster(context.Background(), "c-1", nil)
	assert.Error(t, err, "empty patch must be rejected")
}

func TestDeleteCluster(t *testing.T) {
	client, rec := newTestClient(t, http.StatusNoContent, "")

	require.NoError(t, client.DeleteCluster(context.Background(), "c-1"))
	assert.Equal(t, http.MethodDelete, rec.Method)
	assert.Equal(t, "/v1/clusters/c-1", rec.Path)

	assert.Error(t, client.DeleteCluster(context.Background(), ""))
}

func TestListClusterTemplates(t *testing.T) {
	client, rec := newTestClient(t, http.StatusOK,
		`{"clustertemplates": [{"uuid": "t-1", "name": "k8s-small", "coe": "kubernetes"}]}`)

	templates, err := client.ListClusterTemplates(context.Background(), ListOpts{})
	require.NoError(t, err)
	assert.Equal(t, "/v1/clustertemplates", rec.Path)
	assert.Empty(t, rec.Query)
	require.Len(t, templates, 1)
	assert.Equal(t, "kubernetes", templates[0].StringValue("coe"))
}

func TestCreateClusterTemplate_BodyShape(t *testing.T) {
	client, rec := newTestClient(t, http.StatusCreated, `{"uuid": "t-new"}`)

	public := true
	_, err := client.CreateClusterTemplate(context.Background(), CreateClusterTemplateOpts{
		Name:    "k8s-small",
		COE:     "kubernetes",
		ImageID: "fedora-coreos",
		Public:  &public,
	})
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body, &body))
	assert.Equal(t, "kubernetes", body["coe"])
	assert.Equal(t, true, body["public"])
	assert.NotContains(t, body, "tls_disabled")
}

func TestCertificates(t *testing.T) {
	t.Run("Get", func(t *testing.T) {
		client, rec := newTestClient(t, http.StatusOK, `{"cluster_uuid": "c-1", "pem": "-----BEGIN CERTIFICATE-----"}`)

		cert, err := client.GetCertificate(context.Background(), "c-1")
		require.NoError(t, err)
		assert.Equal(t, http.MethodGet, rec.Method)
		assert.Equal(t, "/v1/certificates/c-1", rec.Path)
		assert.Contains(t, cert.StringValue("pem"), "BEGIN CERTIFICATE")
	})

	t.Run("Sign", func(t *testing.T) {
		client, rec := newTestClient(t, http.StatusCreated, `{"cluster_uuid": "c-1", "pem": "signed"}`)

		_, err := client.SignCertificate(context.Background(), SignCertificateOpts{
			ClusterUUID: "c-1",
			CSR:         "-----BEGIN CERTIFICATE REQUEST-----",
		})
		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, rec.Method)
		assert.Equal(t, "/v1/certificates", rec.Path)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body, &body))
		assert.Equal(t, "c-1", body["cluster_uuid"])
		assert.Contains(t, body["csr"], "CERTIFICATE REQUEST")
	})

	t.Run("SignValidation", func(t *testing.T) {
		client, _ := newTestClient(t, http.StatusOK, "{}")
		_, err := client.SignCertificate(context.Background(), SignCertificateOpts{ClusterUUID: "c-1"})
		assert.Error(t, err, "empty CSR must be rejected")
		_, err = client.SignCertificate(context.Background(), SignCertificateOpts{CSR: "x"})
		assert.Error(t, err, "empty cluster uuid must be rejected")
	})
}

func TestListServices(t *testing.T) {
	client, rec := newTestClient(t, http.StatusOK,
		`{"mservices": [{"id": 1, "binary": "magnum-conductor", "state": "up"}]}`)

	services, err := client.ListServices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/v1/mservices", rec.Path)
	require.Len(t, services, 1)
	assert.Equal(t, "magnum-conductor", services[0].StringValue("binary"))
}
