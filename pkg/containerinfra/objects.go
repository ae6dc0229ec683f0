// Package containerinfra is the wire-level client for the container-infra
// (Magnum) HTTP API: clusters, cluster templates, certificates and the
// service registry. Resources travel as schemaless Objects so callers can
// shape them without fighting a rigid struct.
package containerinfra

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Object is one raw resource document as returned by the service.
type Object map[string]interface{}

// Clone returns a top-level copy of the object. Values are shared; callers
// that mutate nested maps must copy those themselves.
func (o Object) Clone() Object {
	if o == nil {
		return nil
	}
	out := make(Object, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Has reports whether key is present, even with a null value.
func (o Object) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// StringValue returns the value under key when it is a string, "" otherwise.
func (o Object) StringValue(key string) string {
	s, _ := o[key].(string)
	return s
}

// ID returns the record identifier, preferring "uuid" over "id".
func (o Object) ID() string {
	if id := o.StringValue("uuid"); id != "" {
		return id
	}
	return o.StringValue("id")
}

// Name returns the record's "name" value, if any.
func (o Object) Name() string {
	return o.StringValue("name")
}

// ResourceID, ResourceName and Fields let Objects flow straight into the
// resolve package's matching helpers.

func (o Object) ResourceID() string { return o.ID() }

func (o Object) ResourceName() string { return o.Name() }

func (o Object) Fields() map[string]interface{} { return o }

// buildBody renders an opts struct to an Object and merges extra over it.
// Entries in extra take precedence over the typed fields.
func buildBody(opts interface{}, extra map[string]interface{}) (Object, error) {
	raw, err := json.Marshal(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode request options")
	}
	body := Object{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, errors.Wrap(err, "failed to shape request options")
	}
	for k, v := range extra {
		body[k] = v
	}
	return body, nil
}
