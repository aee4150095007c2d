package aspellcfg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := New()
	require.Equal(t, "en", c.String("lang"))
	require.False(t, c.Bool("run-together"))
}

func TestApplyKeyBooleanPrefixes(t *testing.T) {
	c := New()
	require.NoError(t, c.ApplyKey("enable-run-together", ""))
	require.True(t, c.Bool("run-together"))

	require.NoError(t, c.ApplyKey("disable-run-together", ""))
	require.False(t, c.Bool("run-together"))

	require.NoError(t, c.ApplyKey("dont-run-together", ""))
	require.False(t, c.Bool("run-together"))
}

func TestApplyKeyListMutation(t *testing.T) {
	c := New()
	require.NoError(t, c.ApplyKey("add-filter", "tex"))
	require.Equal(t, []string{"tex"}, c.List("filter"))

	require.NoError(t, c.ApplyKey("add-filter", "html"))
	require.Equal(t, []string{"tex", "html"}, c.List("filter"))

	require.NoError(t, c.ApplyKey("remove-filter", "tex"))
	require.Equal(t, []string{"html"}, c.List("filter"))

	require.NoError(t, c.ApplyKey("clear-filter", ""))
	require.Empty(t, c.List("filter"))

	require.NoError(t, c.ApplyKey("lset-filter", "a,b,c"))
	require.Equal(t, []string{"a", "b", "c"}, c.List("filter"))
}

func TestApplyConfString(t *testing.T) {
	c := New()
	require.NoError(t, c.ApplyConfString("lang=fr;enable-run-together;run-together-min=4"))
	require.Equal(t, "fr", c.String("lang"))
	require.True(t, c.Bool("run-together"))
	require.Equal(t, 4, c.Int("run-together-min"))
}

func TestApplyKeyReset(t *testing.T) {
	c := New()
	require.NoError(t, c.ApplyKey("enable-run-together", ""))
	require.True(t, c.Bool("run-together"))
	require.NoError(t, c.ApplyKey("reset-run-together", ""))
	require.False(t, c.Bool("run-together"))
}

func TestInterpolateEnvFallback(t *testing.T) {
	c := New()
	t.Setenv("ASPELLGO_TEST_VAR", "")
	require.Equal(t, "fallback", c.Interpolate("<$ASPELLGO_TEST_VAR_UNSET|fallback>"))
}

func TestInterpolatePathJoin(t *testing.T) {
	c := New()
	c.SetString("home-dir", "/home/alice")
	require.Equal(t, "/home/alice/.aspellgo", c.String("data-dir"))
}
