// Package resolve narrows entity lists by name-or-ID and attribute filters:
// the lookup convention shared by every resource the facade exposes. Exact
// id/name matches win; otherwise the name-or-ID is treated as a glob
// pattern; attribute filters then prune whatever survived.
package resolve

import (
	"encoding/json"
	"fmt"
	"path"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Record is the minimum surface the resolver needs from an entity.
type Record interface {
	// ResourceID returns the entity identifier.
	ResourceID() string
	// ResourceName returns the entity's display name, possibly empty.
	ResourceName() string
	// Fields returns the entity's attributes for filter evaluation.
	Fields() map[string]interface{}
}

// Filters narrow a candidate list after name/ID matching. Match requires
// every given key to be present with an equal value, recursing into nested
// maps. Query is a gjson expression evaluated against each record; records
// where it yields a truthy result survive.
type Filters struct {
	Match map[string]interface{}
	Query string
}

func (f *Filters) empty() bool {
	return f == nil || (len(f.Match) == 0 && f.Query == "")
}

// MultipleMatchesError reports an ambiguous lookup: more than one record
// answered to the supplied name or ID.
type MultipleMatchesError struct {
	Kind     string
	NameOrID string
	Count    int
}

func (e *MultipleMatchesError) Error() string {
	return fmt.Sprintf("multiple matches found for %s '%s' (%d candidates)", e.Kind, e.NameOrID, e.Count)
}

// IsMultipleMatches reports whether err is a MultipleMatchesError.
func IsMultipleMatches(err error) bool {
	var target *MultipleMatchesError
	return errors.As(err, &target)
}

// FilterList returns the records matching nameOrID and filters, preserving
// input order. An empty nameOrID keeps every record; exact id/name matches
// suppress glob matches.
func FilterList[T Record](records []T, nameOrID string, filters *Filters) []T {
	candidates := records
	if nameOrID != "" {
		var exact, globbed []T
		for _, r := range candidates {
			id, name := r.ResourceID(), r.ResourceName()
			if id == nameOrID || name == nameOrID {
				exact = append(exact, r)
				continue
			}
			if globMatch(nameOrID, id) || globMatch(nameOrID, name) {
				globbed = append(globbed, r)
			}
		}
		if len(exact) > 0 {
			candidates = exact
		} else {
			candidates = globbed
		}
	}

	if filters.empty() {
		return candidates
	}

	var out []T
	for _, r := range candidates {
		if matchesFilters(r, filters) {
			out = append(out, r)
		}
	}
	return out
}

// One resolves nameOrID to at most one record. No match returns the zero
// value and a nil error; several matches return a MultipleMatchesError
// naming the kind.
func One[T Record](kind string, records []T, nameOrID string, filters *Filters) (T, error) {
	var zero T
	matches := FilterList(records, nameOrID, filters)
	switch len(matches) {
	case 0:
		return zero, nil
	case 1:
		return matches[0], nil
	default:
		return zero, &MultipleMatchesError{Kind: kind, NameOrID: nameOrID, Count: len(matches)}
	}
}

func globMatch(pattern, value string) bool {
	if value == "" {
		return false
	}
	ok, err := path.Match(pattern, value)
	return err == nil && ok
}

func matchesFilters(r Record, filters *Filters) bool {
	fields := r.Fields()

	for key, want := range filters.Match {
		got, ok := fields[key]
		if !ok || !matchValue(got, want) {
			return false
		}
	}

	if filters.Query != "" {
		data, err := json.Marshal(fields)
		if err != nil {
			return false
		}
		if !truthy(gjson.GetBytes(data, filters.Query)) {
			return false
		}
	}
	return true
}

// matchValue compares a record attribute against a wanted value. Maps
// require the wanted entries as a subset, recursively; scalars compare
// loosely so JSON numbers match untyped Go ints.
func matchValue(got, want interface{}) bool {
	if wantMap, ok := want.(map[string]interface{}); ok {
		gotMap, ok := got.(map[string]interface{})
		if !ok {
			return false
		}
		for k, sub := range wantMap {
			inner, ok := gotMap[k]
			if !ok || !matchValue(inner, sub) {
				return false
			}
		}
		return true
	}
	return looseEqual(got, want)
}

func looseEqual(a, b interface{}) bool {
	if af, aok := asFloat(a); aok {
		bf, bok := asFloat(b)
		return bok && af == bf
	}
	if _, bok := asFloat(b); bok {
		return false
	}
	return reflect.DeepEqual(a, b)
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null:
		return false
	case gjson.False:
		return false
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	case gjson.JSON:
		trimmed := strings.TrimSpace(r.Raw)
		return trimmed != "[]" && trimmed != "{}"
	default:
		return r.Exists()
	}
}
