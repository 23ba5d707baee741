package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMarkers = Markers{Start: "<!--START_SECTION:waka-->", End: "<!--END_SECTION:waka-->"}

func TestSplice_ReplacesOnlyManagedRegion(t *testing.T) {
	doc := "<svg>\nhead\n<!--START_SECTION:waka-->\nold stats\nmore old\n<!--END_SECTION:waka-->\ntail</svg>"

	out, err := Splice(doc, "new stats", testMarkers)
	require.NoError(t, err)
	assert.Equal(t, "<svg>\nhead\n<!--START_SECTION:waka-->\nnew stats\n<!--END_SECTION:waka-->\ntail</svg>", out)
}

func TestSplice_Idempotent(t *testing.T) {
	doc := "a<!--START_SECTION:waka-->x<!--END_SECTION:waka-->b"

	once, err := Splice(doc, "stats", testMarkers)
	require.NoError(t, err)
	twice, err := Splice(once, "stats", testMarkers)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestSplice_MissingMarkers(t *testing.T) {
	_, err := Splice("<svg></svg>", "s", testMarkers)
	assert.ErrorIs(t, err, ErrMarkersNotFound)

	_, err = Splice("<!--START_SECTION:waka--> no end", "s", testMarkers)
	assert.ErrorIs(t, err, ErrMarkersNotFound)

	// end before start is not a region
	_, err = Splice("<!--END_SECTION:waka--> x <!--START_SECTION:waka-->", "s", testMarkers)
	assert.ErrorIs(t, err, ErrMarkersNotFound)
}

func TestSplice_DuplicateMarkers(t *testing.T) {
	doc := "<!--START_SECTION:waka-->a<!--END_SECTION:waka--><!--START_SECTION:waka-->b<!--END_SECTION:waka-->"
	_, err := Splice(doc, "s", testMarkers)
	assert.ErrorIs(t, err, ErrAmbiguousMarkers)
}

func TestBuildFresh_RoundTrip(t *testing.T) {
	fresh := BuildFresh("stats-one", testMarkers, 300)

	assert.Equal(t, 1, strings.Count(fresh, testMarkers.Start))
	assert.Equal(t, 1, strings.Count(fresh, testMarkers.End))
	assert.True(t, strings.HasPrefix(fresh, "<svg xmlns='http://www.w3.org/2000/svg' width='350' height='170' viewBox='0 0 350 170' fill='none'>"))
	assert.Contains(t, fresh, "Most Used Languages")
	assert.Contains(t, fresh, "<mask id='rect-mask'><rect x='0' y='0' width='300' height='8' fill='white' rx='5'></rect></mask>")

	respliced, err := Splice(fresh, "stats-one", testMarkers)
	require.NoError(t, err)
	assert.Equal(t, fresh, respliced)

	updated, err := Splice(fresh, "stats-two", testMarkers)
	require.NoError(t, err)

	fs, fe, err := testMarkers.Region(fresh)
	require.NoError(t, err)
	us, ue, err := testMarkers.Region(updated)
	require.NoError(t, err)
	assert.Equal(t, fresh[:fs], updated[:us])
	assert.Equal(t, fresh[fe:], updated[ue:])
	assert.Equal(t, testMarkers.Section("stats-two"), updated[us:ue])
}

func TestBuildFresh_MaskFollowsBarWidth(t *testing.T) {
	fresh := BuildFresh("", testMarkers, 240)
	assert.Contains(t, fresh, "<rect x='0' y='0' width='240' height='8'")
	assert.Contains(t, fresh, "width='350' height='170'")
}

func TestBuildFresh_CustomMarkers(t *testing.T) {
	m := Markers{Start: "<!--BEGIN-->", End: "<!--FINISH-->"}
	fresh := BuildFresh("s", m, 300)

	out, err := Splice(fresh, "t", m)
	require.NoError(t, err)
	assert.Contains(t, out, "<!--BEGIN-->\nt\n<!--FINISH-->")

	_, err = Splice(fresh, "t", testMarkers)
	assert.ErrorIs(t, err, ErrMarkersNotFound)
}
