package affix

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testTable() *Table {
	t := &Table{Suffix: map[byte][]Entry{}, Prefix: map[byte][]Entry{}}
	t.Suffix['S'] = []Entry{
		{Append: "s", Cross: true},
	}
	t.Suffix['D'] = []Entry{
		{Append: "ed", Cross: true},
	}
	t.Prefix['U'] = []Entry{
		{Append: "un", Cross: true},
	}
	return t
}

func TestExpandAppendsSurfaceForm(t *testing.T) {
	tbl := testTable()
	forms := tbl.Expand("cat", []byte{'S'}, 0)
	require.Len(t, forms, 2) // the root itself, plus the expanded surface form
	require.Equal(t, "cat", forms[0].Word)
	require.Equal(t, "cats", forms[1].Word)
	require.Empty(t, forms[1].RemainingFlags)
}

func TestExpandRespectsLimit(t *testing.T) {
	tbl := testTable()
	forms := tbl.Expand("cat", []byte{'S', 'D'}, 2)
	require.Len(t, forms, 2)
}

// TestMunchExpandRoundTrip checks the round-trip property: every surface
// form Expand produces from (root, flag) munches back to a root set
// containing root.
func TestMunchExpandRoundTrip(t *testing.T) {
	tbl := testTable()
	root := "cat"
	flags := []byte{'S'}

	for _, form := range tbl.Expand(root, flags, 0) {
		if form.Word == root {
			continue // the unexpanded root itself trivially round-trips
		}
		candidates := tbl.Munch(form.Word, false)
		found := false
		for _, c := range candidates {
			if c.Root == root {
				found = true
				break
			}
		}
		require.True(t, found, "munch(%q) did not recover root %q", form.Word, root)
	}
}

func TestMunchRecoversFlag(t *testing.T) {
	tbl := testTable()
	candidates := tbl.Munch("cats", false)
	require.Contains(t, candidates, RootFlags{Root: "cat", Flag: 'S'})
}

func TestAffixCheckFindsStrippedRoot(t *testing.T) {
	tbl := testTable()
	lookup := Lookup(func(word string) bool { return word == "cat" })
	info, ok := tbl.AffixCheck(lookup, "cats")
	require.True(t, ok)
	require.Equal(t, "cat", info.Root)
	require.Equal(t, []byte{'S'}, info.Flags)
}

func TestAffixCheckNoMatch(t *testing.T) {
	tbl := testTable()
	lookup := Lookup(func(word string) bool { return word == "cat" })
	_, ok := tbl.AffixCheck(lookup, "dogs")
	require.False(t, ok)
}

func TestCheckAffixValidInapplicableInvalid(t *testing.T) {
	tbl := testTable()

	status, err := tbl.CheckAffix("cats", 'S')
	require.NoError(t, err)
	require.Equal(t, ValidAffix, status)

	status, err = tbl.CheckAffix("cat", 'S')
	require.NoError(t, err)
	require.Equal(t, InapplicableAffix, status)

	_, err = tbl.CheckAffix("cat", 'Z')
	require.Error(t, err)
}

func TestAffixStatusString(t *testing.T) {
	require.Equal(t, "valid_affix", ValidAffix.String())
	require.Equal(t, "inapplicable_affix", InapplicableAffix.String())
	require.Equal(t, "invalid_affix", InvalidAffix.String())
}
