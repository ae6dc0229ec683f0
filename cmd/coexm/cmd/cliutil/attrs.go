package cliutil

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/sjson"
)

// ParseSetArgs turns repeated --set key=value pairs into the attribute map
// update operations take. Values are decoded as JSON when they parse (so
// node_count=4 is a number, labels={"a":"b"} an object, keypair=null a
// removal) and kept as strings otherwise. Dotted keys nest.
func ParseSetArgs(pairs []string) (map[string]interface{}, error) {
	doc := "{}"
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, errors.Errorf("invalid attribute %q, expected key=value", pair)
		}

		var value interface{}
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}

		var err error
		doc, err = sjson.Set(doc, key, value)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to set attribute %s", key)
		}
	}

	var attrs map[string]interface{}
	if err := json.Unmarshal([]byte(doc), &attrs); err != nil {
		return nil, errors.Wrap(err, "failed to decode attribute document")
	}
	return attrs, nil
}
