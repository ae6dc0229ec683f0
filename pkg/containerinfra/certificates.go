package containerinfra

import (
	"context"

	"github.com/pkg/errors"
)

// SignCertificateOpts is the body of POST /certificates: a PEM CSR to be
// signed by the cluster's CA.
type SignCertificateOpts struct {
	ClusterUUID string `json:"cluster_uuid"`
	CSR         string `json:"csr"`
}

// GetCertificate fetches the CA certificate for a cluster. The returned
// document carries the PEM under "pem".
func (c *Client) GetCertificate(ctx context.Context, clusterID string) (Object, error) {
	if clusterID == "" {
		return nil, errors.New("cluster id cannot be empty")
	}
	var out Object
	if err := c.s.Get(ctx, certificatesPath+"/"+clusterID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SignCertificate submits a CSR for signing by the cluster CA.
func (c *Client) SignCertificate(ctx context.Context, opts SignCertificateOpts) (Object, error) {
	if opts.ClusterUUID == "" {
		return nil, errors.New("cluster uuid cannot be empty")
	}
	if opts.CSR == "" {
		return nil, errors.New("csr cannot be empty")
	}
	var out Object
	if err := c.s.Post(ctx, certificatesPath, opts, &out); err != nil {
		return nil, err
	}
	return out, nil
}
