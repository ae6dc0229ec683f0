package cloud

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"

	"github.com/pkg/errors"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"
)

// ClusterKubeconfig builds a ready-to-use kubeconfig for a cluster resolved
// by name or ID: it generates a client key, has the cluster CA sign it, and
// assembles the document around the cluster's API address. Clusters built
// from TLS-disabled templates get a certificate-less config.
func (c *Cloud) ClusterKubeconfig(ctx context.Context, nameOrID string) ([]byte, error) {
	cluster, err := c.GetCOECluster(ctx, nameOrID, nil)
	if err != nil {
		return nil, err
	}
	if cluster == nil {
		return nil, newNotFoundError("COE cluster %s not found.", nameOrID)
	}

	apiAddress := cluster.StringValue("api_address")
	if apiAddress == "" {
		return nil, errors.Errorf("COE cluster %s does not expose an API address yet", nameOrID)
	}

	name := cluster.Name()
	if name == "" {
		name = cluster.ID()
	}

	tlsDisabled := false
	if templateID := cluster.StringValue("cluster_template_id"); templateID != "" {
		template, err := c.GetClusterTemplate(ctx, templateID, nil)
		if err != nil {
			return nil, err
		}
		if template != nil {
			tlsDisabled, _ = template["tls_disabled"].(bool)
		}
	}

	cfg := clientcmdapi.NewConfig()
	if tlsDisabled {
		cfg.Clusters[name] = &clientcmdapi.Cluster{
			Server:                apiAddress,
			InsecureSkipTLSVerify: true,
		}
		cfg.AuthInfos["admin"] = &clientcmdapi.AuthInfo{}
	} else {
		keyPEM, csrPEM, err := newClientCSR()
		if err != nil {
			return nil, err
		}
		signed, err := c.SignCOEClusterCertificate(ctx, cluster.ID(), string(csrPEM))
		if err != nil {
			return nil, err
		}
		certPEM := signed.StringValue("pem")
		if certPEM == "" {
			return nil, errors.Errorf("signing response for cluster %s carried no certificate", nameOrID)
		}
		ca, err := c.GetCOEClusterCertificate(ctx, cluster.ID())
		if err != nil {
			return nil, err
		}
		caPEM := ca.StringValue("pem")
		if caPEM == "" {
			return nil, errors.Errorf("CA response for cluster %s carried no certificate", nameOrID)
		}

		cfg.Clusters[name] = &clientcmdapi.Cluster{
			Server:                   apiAddress,
			CertificateAuthorityData: []byte(caPEM),
		}
		cfg.AuthInfos["admin"] = &clientcmdapi.AuthInfo{
			ClientCertificateData: []byte(certPEM),
			ClientKeyData:         keyPEM,
		}
	}

	cfg.Contexts["default"] = &clientcmdapi.Context{Cluster: name, AuthInfo: "admin"}
	cfg.CurrentContext = "default"

	data, err := clientcmd.Write(*cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to serialize kubeconfig for cluster %s", nameOrID)
	}
	return data, nil
}

// newClientCSR generates a fresh RSA key and a CSR for the admin identity
// (CN=admin, O=system:masters) that cluster CAs grant full access to.
func newClientCSR() (keyPEM, csrPEM []byte, err error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to generate client key")
	}

	der, err := x509.CreateCertificateRequest(rand.Reader, &x509.CertificateRequest{
		Subject: pkix.Name{
			CommonName:   "admin",
			Organization: []string{"system:masters"},
		},
		SignatureAlgorithm: x509.SHA256WithRSA,
	}, key)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create certificate request")
	}

	csrPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE REQUEST", Bytes: der})
	keyPEM = pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	return keyPEM, csrPEM, nil
}
