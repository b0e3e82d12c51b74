package innerclass

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPredictableDerivesOuterAndName(t *testing.T) {
	outer, name, ok := Predictable("com/example/Outer$Inner")
	require.True(t, ok)
	require.Equal(t, "com/example/Outer", outer)
	require.Equal(t, "Inner", name)
}

func TestPredictableRejectsAnonymous(t *testing.T) {
	outer, name, ok := Predictable("com/example/Outer$1")
	require.False(t, ok)
	require.Equal(t, "com/example/Outer", outer)
	require.Empty(t, name)
}

func TestPredictableRejectsTopLevel(t *testing.T) {
	_, _, ok := Predictable("com/example/TopLevel")
	require.False(t, ok)
}

func TestNeedsExplicitEntryForExplicitFlag(t *testing.T) {
	tup := Tuple{Inner: "a/B$C", Flags: 1 << 16, Outer: "a/B", Name: "C"}
	require.True(t, NeedsExplicitEntry(tup))
}

func TestNeedsExplicitEntryFalseWhenPredictableMatches(t *testing.T) {
	tup := Tuple{Inner: "a/B$C", Outer: "a/B", Name: "C"}
	require.False(t, NeedsExplicitEntry(tup))
}

func TestNeedsExplicitEntryTrueWhenNameDiffersFromPrediction(t *testing.T) {
	tup := Tuple{Inner: "a/B$C", Outer: "a/B", Name: "Renamed"}
	require.True(t, NeedsExplicitEntry(tup))
}

func TestIsEnclosingPrefix(t *testing.T) {
	require.True(t, IsEnclosingPrefix("a/B", "a/B$C"))
	require.False(t, IsEnclosingPrefix("a/B", "a/BC"))
	require.False(t, IsEnclosingPrefix("a/B", "a/B"))
}

func TestAddReferenceIgnoresSelfAndNonInnerAndEnclosing(t *testing.T) {
	tr := NewTracker()
	tr.AddReference("a/B", "a/B")
	tr.AddReference("a/B", "a/Other")
	tr.AddReference("a/B", "a/B$Nested")

	require.Empty(t, tr.References("a/B"))
}

func TestAddReferenceTracksExternalInnerClassUse(t *testing.T) {
	tr := NewTracker()
	tr.AddReference("a/Consumer", "a/B$Nested")
	tr.AddReference("a/Consumer", "a/B$Nested") // duplicate, should not repeat

	require.Equal(t, []string{"a/B$Nested"}, tr.References("a/Consumer"))
}

func TestLocalEntriesExcludesImpliedAndAnonymous(t *testing.T) {
	tr := NewTracker()
	tr.Record(Tuple{Inner: "a/B$Nested", Outer: "a/B", Name: "Nested"})

	tr.AddReference("a/Consumer", "a/B$Nested")
	tr.AddReference("a/Consumer", "a/B$1") // anonymous, no declared tuple
	tr.AddReference("a/B", "a/B$Nested")   // implied by B's own default list

	entries := tr.LocalEntries("a/Consumer")
	require.Len(t, entries, 1)
	require.Equal(t, "a/B$Nested", entries[0].Inner)

	require.Empty(t, tr.LocalEntries("a/B"))
}

func TestResetClearsState(t *testing.T) {
	tr := NewTracker()
	tr.Record(Tuple{Inner: "a/B$C", Outer: "a/B", Name: "C"})
	tr.AddReference("a/Consumer", "a/B$C")

	tr.Reset()

	require.Empty(t, tr.AllTuples())
	require.Empty(t, tr.References("a/Consumer"))
}
