package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rec map[string]interface{}

func (r rec) ResourceID() string {
	s, _ := r["id"].(string)
	return s
}

func (r rec) ResourceName() string {
	s, _ := r["name"].(string)
	return s
}

func (r rec) Fields() map[string]interface{} {
	return r
}

func fixtures() []rec {
	return []rec{
		{"id": "a1", "name": "web-1", "status": "CREATE_COMPLETE", "node_count": float64(3)},
		{"id": "a2", "name": "web-2", "status": "CREATE_FAILED", "node_count": float64(1)},
		{"id": "b1", "name": "db", "status": "CREATE_COMPLETE", "node_count": float64(5),
			"labels": map[string]interface{}{"env": "prod", "tier": "data"}},
		{"id": "web-1", "name": "impostor", "status": "DELETE_IN_PROGRESS"},
	}
}

func names(records []rec) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ResourceName())
	}
	return out
}

func TestFilterList_EmptyNameKeepsAll(t *testing.T) {
	got := FilterList(fixtures(), "", nil)
	assert.Len(t, got, 4)
	assert.Equal(t, []string{"web-1", "web-2", "db", "impostor"}, names(got), "input order preserved")
}

func TestFilterList_ExactMatch(t *testing.T) {
	// "web-1" is a1's name and also another record's id; both are exact.
	got := FilterList(fixtures(), "web-1", nil)
	assert.Equal(t, []string{"web-1", "impostor"}, names(got))

	got = FilterList(fixtures(), "b1", nil)
	require.Len(t, got, 1)
	assert.Equal(t, "db", got[0].ResourceName())
}

func TestFilterList_GlobFallback(t *testing.T) {
	got := FilterList(fixtures(), "web-*", nil)
	// a1 and a2 by name, plus the record whose id is "web-1".
	assert.Equal(t, []string{"web-1", "web-2", "impostor"}, names(got))

	got = FilterList(fixtures(), "?b*", nil)
	assert.Equal(t, []string{"db"}, names(got))

	got = FilterList(fixtures(), "zzz-*", nil)
	assert.Empty(t, got)
}

func TestFilterList_ExactSuppressesGlob(t *testing.T) {
	records := []rec{
		{"id": "x1", "name": "literal*"},
		{"id": "x2", "name": "literally-anything"},
	}
	// "literal*" matches x2 as a glob, but x1 holds it as its exact name.
	got := FilterList(records, "literal*", nil)
	require.Len(t, got, 1)
	assert.Equal(t, "x1", got[0].ResourceID())
}

func TestFilterList_MatchFilters(t *testing.T) {
	got := FilterList(fixtures(), "", &Filters{Match: map[string]interface{}{"status": "CREATE_COMPLETE"}})
	assert.Equal(t, []string{"web-1", "db"}, names(got))

	// Numeric filter values compare loosely against JSON float64s.
	got = FilterList(fixtures(), "", &Filters{Match: map[string]interface{}{"node_count": 3}})
	assert.Equal(t, []string{"web-1"}, names(got))

	// Nested maps match as subsets.
	got = FilterList(fixtures(), "", &Filters{Match: map[string]interface{}{
		"labels": map[string]interface{}{"env": "prod"},
	}})
	assert.Equal(t, []string{"db"}, names(got))

	// Missing keys never match.
	got = FilterList(fixtures(), "", &Filters{Match: map[string]interface{}{"flavor": "m1.small"}})
	assert.Empty(t, got)
}

func TestFilterList_NameAndFiltersCombine(t *testing.T) {
	got := FilterList(fixtures(), "web-*", &Filters{Match: map[string]interface{}{"status": "CREATE_FAILED"}})
	assert.Equal(t, []string{"web-2"}, names(got))
}

func TestFilterList_QueryFilter(t *testing.T) {
	got := FilterList(fixtures(), "", &Filters{Query: "labels.env"})
	assert.Equal(t, []string{"db"}, names(got))

	got = FilterList(fixtures(), "", &Filters{Query: "labels.missing"})
	assert.Empty(t, got)
}

func TestOne(t *testing.T) {
	t.Run("NoMatchIsAbsence", func(t *testing.T) {
		got, err := One("coe_cluster", fixtures(), "nonexistent", nil)
		require.NoError(t, err, "absence is not an error")
		assert.Nil(t, got)
	})

	t.Run("SingleMatch", func(t *testing.T) {
		got, err := One("coe_cluster", fixtures(), "db", nil)
		require.NoError(t, err)
		assert.Equal(t, "b1", got.ResourceID())
	})

	t.Run("Ambiguous", func(t *testing.T) {
		_, err := One("coe_cluster", fixtures(), "web-*", nil)
		require.Error(t, err)
		assert.True(t, IsMultipleMatches(err))
		assert.Contains(t, err.Error(), "multiple matches found for coe_cluster 'web-*'")
	})
}
