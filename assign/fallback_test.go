package assign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duplau/link-fields/entity"
)

func TestParentGridPropagationAttachesParentID(t *testing.T) {
	items := []*entity.SourceItem{
		{DocID: "parent-doc", RawLabel: "CNRS"},
		{DocID: "child-doc", RawLabel: "CNRS Delegation Paris", ParentLabel: "CNRS"},
	}
	labelToDocID := map[string]string{"CNRS": "parent-doc"}
	matches := map[string]entity.Match{
		"parent-doc": {DocID: "parent-doc", CanonicalID: "grid-1", Score: 95},
	}

	ParentGridPropagation(items, matches, labelToDocID)

	require.Contains(t, matches, "child-doc")
	assert.Equal(t, "grid-1", matches["child-doc"].CanonicalID)
	assert.Equal(t, "parent-grid-propagation", matches["child-doc"].Reason)
}

func TestReferenceParentInferenceExposesParent(t *testing.T) {
	matches := map[string]entity.Match{
		"doc-1": {DocID: "doc-1", CanonicalID: "grid-child"},
	}
	catalog := map[string]*entity.CanonicalEntry{
		"grid-child": {ID: "grid-child", ParentID: "grid-parent"},
	}
	ReferenceParentInference(matches, catalog)
	assert.Equal(t, "grid-parent", matches["doc-1"].ParentCanonicalID)
}

func TestPrefixMatchAdoptsTruncatedParent(t *testing.T) {
	items := []*entity.SourceItem{
		{DocID: "base-doc", RawLabel: "Universite de Bordeaux"},
		{DocID: "long-doc", RawLabel: "Universite de Bordeaux Campus Talence"},
	}
	labelToDocID := map[string]string{"Universite de Bordeaux": "base-doc"}
	matches := map[string]entity.Match{
		"base-doc": {DocID: "base-doc", CanonicalID: "grid-bordeaux"},
	}

	PrefixMatch(items, matches, labelToDocID)

	require.Contains(t, matches, "long-doc")
	assert.Equal(t, "grid-bordeaux", matches["long-doc"].ParentCanonicalID)
}

func TestPrefixMatchLeavesUnrelatedItemsAlone(t *testing.T) {
	items := []*entity.SourceItem{
		{DocID: "only-doc", RawLabel: "Completely Unrelated Label"},
	}
	matches := map[string]entity.Match{}
	PrefixMatch(items, matches, map[string]string{})
	_, ok := matches["only-doc"]
	assert.False(t, ok)
}
