package containerinfra

import "sort"

// JSON-Patch operation names accepted by the update endpoints.
const (
	OpAdd     = "add"
	OpReplace = "replace"
	OpRemove  = "remove"
)

// UpdateOp is one JSON-Patch operation.
type UpdateOp struct {
	Op    string      `json:"op"`
	Path  string      `json:"path"`
	Value interface{} `json:"value,omitempty"`
}

// ReplaceOp builds a replace operation for a top-level attribute.
func ReplaceOp(attribute string, value interface{}) UpdateOp {
	return UpdateOp{Op: OpReplace, Path: "/" + attribute, Value: value}
}

// RemoveOp builds a remove operation for a top-level attribute.
func RemoveOp(attribute string) UpdateOp {
	return UpdateOp{Op: OpRemove, Path: "/" + attribute}
}

// PatchFromAttributes turns an attribute map into a deterministic JSON-Patch
// document: nil values become remove operations, everything else a replace.
// Keys are emitted in sorted order so request bodies are reproducible.
func PatchFromAttributes(attrs map[string]interface{}) []UpdateOp {
	if len(attrs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ops := make([]UpdateOp, 0, len(keys))
	for _, k := range keys {
		if attrs[k] == nil {
			ops = append(ops, RemoveOp(k))
			continue
		}
		ops = append(ops, ReplaceOp(k, attrs[k]))
	}
	return ops
}
