package cloud

import (
	"context"

	"github.com/mensylisir/coexm/pkg/containerinfra"
)

// GetCOEClusterCertificate fetches the CA certificate details for a cluster.
// The cluster is addressed by ID directly; no name resolution happens here.
func (c *Cloud) GetCOEClusterCertificate(ctx context.Context, clusterID string) (containerinfra.Object, error) {
	cert, err := c.svc.GetCertificate(ctx, clusterID)
	if err != nil {
		return nil, NewCloudError(err, "Error fetching CA cert for the cluster %s", clusterID)
	}
	return cert, nil
}

// SignCOEClusterCertificate submits a CSR to be signed by the cluster's CA
// and returns the signed certificate document.
func (c *Cloud) SignCOEClusterCertificate(ctx context.Context, clusterID, csr string) (containerinfra.Object, error) {
	signed, err := c.svc.SignCertificate(ctx, containerinfra.SignCertificateOpts{
		ClusterUUID: clusterID,
		CSR:         csr,
	})
	if err != nil {
		return nil, NewCloudError(err, "Error signing certs for cluster %s", clusterID)
	}
	return signed, nil
}
