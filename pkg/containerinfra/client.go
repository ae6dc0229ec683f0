package containerinfra

import (
	"net/url"
	"strconv"

	"github.com/mensylisir/coexm/pkg/session"
)

// Resource collection paths, relative to the versioned endpoint.
const (
	clustersPath     = "/clusters"
	templatesPath    = "/clustertemplates"
	certificatesPath = "/certificates"
	servicesPath     = "/mservices"
)

// Client issues container-infra API calls over an authenticated session.
type Client struct {
	s *session.Session
}

// NewClient wraps a session, rejecting sessions configured with a
// microversion outside the supported window.
func NewClient(s *session.Session) (*Client, error) {
	if err := ValidateMicroversion(s.APIVersion()); err != nil {
		return nil, err
	}
	return &Client{s: s}, nil
}

// Session exposes the underlying transport, mainly so callers can share it.
func (c *Client) Session() *session.Session {
	return c.s
}

// ListOpts are the server-side paging and ordering knobs common to the list
// endpoints. The zero value lists everything in service order.
type ListOpts struct {
	Limit   int
	Marker  string
	SortKey string
	SortDir string
}

func (o ListOpts) query() url.Values {
	q := url.Values{}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Marker != "" {
		q.Set("marker", o.Marker)
	}
	if o.SortKey != "" {
		q.Set("sort_key", o.SortKey)
	}
	if o.SortDir != "" {
		q.Set("sort_dir", o.SortDir)
	}
	if len(q) == 0 {
		return nil
	}
	return q
}
