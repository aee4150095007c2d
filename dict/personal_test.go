package dict

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aspellgo/aspellgo/data"
	"github.com/aspellgo/aspellgo/lang"
)

func mustTestLang(t *testing.T) *lang.Language {
	t.Helper()
	l, err := lang.Setup(lang.Bundle{Dat: data.EnLang, Charset: data.EnCharset, Phonet: data.EnPhonet, Affix: data.EnAffix})
	require.NoError(t, err)
	return l
}

// TestPersonalSaveReload exercises the round-trip "add_to_personal; save;
// reopen; clean_lookup" path and the header format.
func TestPersonalSaveReload(t *testing.T) {
	l := mustTestLang(t)
	path := filepath.Join(t.TempDir(), "en.pws")

	p := NewPersonal(path, l, "utf-8")
	require.NoError(t, p.Add("foobar"))
	require.NoError(t, p.Add("quux"))
	require.NoError(t, p.SaveNoupdate())

	reopened, err := LoadPersonal(path, l)
	require.NoError(t, err)

	e, err := reopened.CleanLookup(l.ToClean("foobar"))
	require.NoError(t, err)
	require.NotNil(t, e)
	require.Equal(t, "foobar", e.Text)

	e, err = reopened.CleanLookup(l.ToClean("quux"))
	require.NoError(t, err)
	require.NotNil(t, e)
}

func TestPersonalHeaderFormat(t *testing.T) {
	l := mustTestLang(t)
	path := filepath.Join(t.TempDir(), "en.pws")
	p := NewPersonal(path, l, "utf-8")
	require.NoError(t, p.Add("xyzzy"))
	require.NoError(t, p.SaveNoupdate())

	raw, err := readFirstLine(path)
	require.NoError(t, err)
	require.Regexp(t, `^personal_ws-1\.1 \S+ \d+ \S+$`, raw)
}

func TestPersonalAddRejectsInvalidWord(t *testing.T) {
	l := mustTestLang(t)
	p := NewPersonal(filepath.Join(t.TempDir(), "en.pws"), l, "utf-8")

	tooLong := make([]byte, 241)
	for i := range tooLong {
		tooLong[i] = 'a'
	}
	err := p.Add(string(tooLong))
	require.Error(t, err)

	// a failed Add must not leave partial state behind.
	e, lookupErr := p.CleanLookup(l.ToClean(string(tooLong)))
	require.NoError(t, lookupErr)
	require.Nil(t, e)
}

func TestPersonalAddAffixedAcceptsValidFlag(t *testing.T) {
	l := mustTestLang(t)
	p := NewPersonal(filepath.Join(t.TempDir(), "en.pws"), l, "utf-8")

	require.NoError(t, p.AddAffixed("plays", []byte{'S'}))

	e, err := p.CleanLookup(l.ToClean("plays"))
	require.NoError(t, err)
	require.NotNil(t, e)
}

func TestPersonalAddAffixedRejectsInapplicableFlag(t *testing.T) {
	l := mustTestLang(t)
	p := NewPersonal(filepath.Join(t.TempDir(), "en.pws"), l, "utf-8")

	err := p.AddAffixed("cat", []byte{'S'})
	require.Error(t, err)

	e, lookupErr := p.CleanLookup(l.ToClean("cat"))
	require.NoError(t, lookupErr)
	require.Nil(t, e, "a rejected AddAffixed must not leave partial state behind")
}

func TestPersonalAddAffixedRejectsUnknownFlag(t *testing.T) {
	l := mustTestLang(t)
	p := NewPersonal(filepath.Join(t.TempDir(), "en.pws"), l, "utf-8")

	err := p.AddAffixed("cat", []byte{'Z'})
	require.Error(t, err)
}

func TestReplacementSaveReload(t *testing.T) {
	l := mustTestLang(t)
	path := filepath.Join(t.TempDir(), "en.prepl")

	r := NewReplacement(path, l, "utf-8")
	require.NoError(t, r.AddRepl("teh", "the"))
	require.NoError(t, r.SaveNoupdate())

	reopened, err := LoadReplacement(path, l)
	require.NoError(t, err)
	reps, err := reopened.ReplLookup("teh")
	require.NoError(t, err)
	require.Equal(t, []string{"the"}, reps)

	raw, err := readFirstLine(path)
	require.NoError(t, err)
	require.Regexp(t, `^personal_repl-1\.1 \S+ 0 \S+$`, raw)
}

func TestReplacementDuplicateAddIsIgnored(t *testing.T) {
	l := mustTestLang(t)
	r := NewReplacement(filepath.Join(t.TempDir(), "en.prepl"), l, "utf-8")
	require.NoError(t, r.AddRepl("teh", "the"))
	require.NoError(t, r.AddRepl("teh", "the"))
	reps, err := r.ReplLookup("teh")
	require.NoError(t, err)
	require.Len(t, reps, 1)
}

func readFirstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	sc.Scan()
	return sc.Text(), sc.Err()
}
