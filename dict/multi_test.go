package dict

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aspellgo/aspellgo/data"
)

func TestMultiLookupIteratesChildrenInOrder(t *testing.T) {
	l := mustTestLang(t)
	main, err := NewReadonly("en.wl", l, data.EnWordlist)
	require.NoError(t, err)

	extra := NewPersonal("", l, "utf-8")
	require.NoError(t, extra.Add("foobar"))

	m, err := NewMulti("combined", main, extra)
	require.NoError(t, err)

	cmp := SensitiveCompare{Lang: l}
	e, err := m.Lookup("the", cmp)
	require.NoError(t, err)
	require.NotNil(t, e)

	e, err = m.Lookup("foobar", cmp)
	require.NoError(t, err)
	require.NotNil(t, e)

	e, err = m.Lookup("zzznotaword", cmp)
	require.NoError(t, err)
	require.Nil(t, e)
}

func TestMultiRejectsMismatchedLanguage(t *testing.T) {
	l := mustTestLang(t)
	main, err := NewReadonly("en.wl", l, data.EnWordlist)
	require.NoError(t, err)

	other := mustTestLang(t)
	other.Name = "xx"
	extra := NewPersonal("", other, "utf-8")

	_, err = NewMulti("combined", main, extra)
	require.Error(t, err)
}

func TestParseMultiRecipe(t *testing.T) {
	paths, err := ParseMultiRecipe([]byte("add en.wl\nadd en.pws\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"en.wl", "en.pws"}, paths)

	_, err = ParseMultiRecipe([]byte(""))
	require.Error(t, err)
}
