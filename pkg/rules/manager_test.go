// Test Type: Integration Test
// Description: Tests for building and caching resolvers from data roots

package rules_test

import (
	stderrors "errors"
	"testing"

	"github.com/patchling/patchling/pkg/errors"
	"github.com/patchling/patchling/pkg/pdx"
	"github.com/patchling/patchling/pkg/rules"
	"github.com/patchling/patchling/pkg/testutil"
	"github.com/patchling/patchling/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, tree testutil.FileTree) (*rules.RulesManager, *testutil.InstrumentedFS) {
	t.Helper()
	fsys := testutil.NewInstrumentedFS(testutil.NewTestFS(t, "/data", tree))
	m := rules.NewRulesManager(types.Stellaris, fsys)
	m.AddDataRoot(rules.Vanilla("/data/game"))
	m.AddDataRoot(rules.ModData("my_mod", "/data/mod"))
	return m, fsys
}

func rulesTree() testutil.FileTree {
	return testutil.FileTree{
		"game/rules": testutil.FileTree{
			"00_base.txt": "foo = { weight = 1 }\nbar = yes\nloose_token\n",
			"01_more.txt": "baz >= 3",
		},
		"mod/rules": testutil.FileTree{
			"zz_override.txt": "foo = { weight = 99 }\nmod_only = @var\n",
		},
	}
}

func TestRulesManager_Accessors(t *testing.T) {
	m, _ := newManager(t, rulesTree())
	assert.Equal(t, types.Stellaris, m.Game())

	roots := m.DataRoots()
	require.Len(t, roots, 2)
	assert.Equal(t, rules.VanillaName, roots[0].Name)
	assert.Equal(t, "my_mod", roots[1].Name)

	roots[0].Name = "mutated"
	assert.Equal(t, rules.VanillaName, m.DataRoots()[0].Name)
}

func TestRulesManager_GetResolver(t *testing.T) {
	m, _ := newManager(t, rulesTree())

	rr, err := m.GetResolver("rules", ".txt", rules.Simple)
	require.NoError(t, err)
	require.True(t, rr.IsInitialized())
	assert.Equal(t, []string{"foo", "bar", "baz", "mod_only"}, rr.Names())

	t.Run("first_definition_wins", func(t *testing.T) {
		foo := rr.Get("foo")
		assert.Equal(t, 0, foo.Origin)
		weight, ok := foo.Relation.Value.(pdx.Block).Find("weight")
		require.True(t, ok)
		assert.Equal(t, pdx.Numeric(1), weight.Value)
	})

	t.Run("mod_rule", func(t *testing.T) {
		rule := rr.Get("mod_only")
		assert.Equal(t, 1, rule.Origin)
		assert.Equal(t, pdx.Variable("var"), rule.Relation.Value)
	})

	t.Run("operator_kept", func(t *testing.T) {
		assert.Equal(t, pdx.Ge, rr.Get("baz").Relation.Type)
	})

	t.Run("bare_strings_are_not_rules", func(t *testing.T) {
		assert.NotContains(t, rr.Names()[:4], "loose_token")
	})

	t.Run("default_for_unknown", func(t *testing.T) {
		rule := rr.Get("unknown")
		assert.Equal(t, rules.RuleEquals("unknown"), rule.Relation)
		assert.Equal(t, rules.NoOrigin, rule.Origin)
	})
}

func TestRulesManager_Cache(t *testing.T) {
	m, fsys := newManager(t, rulesTree())

	first, err := m.GetResolver("rules", ".txt", rules.Simple)
	require.NoError(t, err)
	calls := fsys.Calls()

	second, err := m.GetResolver("rules", ".txt", rules.Simple)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, calls, fsys.Calls(), "cached resolver must not touch the filesystem")

	other, err := m.GetResolver("rules", ".lua", rules.Simple)
	require.NoError(t, err)
	assert.NotSame(t, first, other)
	assert.Equal(t, 0, other.Len())

	otherMode, err := m.GetResolver("rules", ".txt", rules.ResolverMode(1))
	require.NoError(t, err)
	assert.NotSame(t, first, otherMode, "a resolver is cached per mode")

	t.Run("adding_a_root_drops_cache", func(t *testing.T) {
		m.AddDataRoot(rules.ModData("late", "/data/late"))
		again, err := m.GetResolver("rules", ".txt", rules.Simple)
		require.NoError(t, err)
		assert.NotSame(t, first, again)
	})
}

func TestRulesManager_UnsafeNames(t *testing.T) {
	m, fsys := newManager(t, rulesTree())

	_, err := m.GetResolver("Rules", ".txt", rules.Simple)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsafeName))
	assert.Contains(t, err.Error(), "lowercase")

	_, err = m.GetResolver("rules", "*.txt", rules.Simple)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsafeName))

	assert.Equal(t, 0, fsys.Calls(), "unsafe names must be rejected before any filesystem access")

	_, err = m.GetResolver("rules", ".txt", rules.Simple)
	assert.NoError(t, err)
}

func TestRulesManager_Errors(t *testing.T) {
	t.Run("parse_error_fails_build_only", func(t *testing.T) {
		tree := rulesTree()
		tree["mod/events"] = testutil.FileTree{"broken.txt": "a = {"}
		tree["game/events"] = testutil.FileTree{"fine.txt": "a = 1"}
		m, _ := newManager(t, tree)

		good, err := m.GetResolver("rules", ".txt", rules.Simple)
		require.NoError(t, err)

		_, err = m.GetResolver("events", ".txt", rules.Simple)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrParse))
		var perr *pdx.ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "/data/mod/events/broken.txt", perr.File)

		again, err := m.GetResolver("rules", ".txt", rules.Simple)
		require.NoError(t, err)
		assert.Same(t, good, again)

		_, err = m.GetResolver("events", ".txt", rules.Simple)
		assert.Error(t, err, "failed builds are not cached")
	})

	t.Run("read_error", func(t *testing.T) {
		m, fsys := newManager(t, rulesTree())
		boom := stderrors.New("stale file handle")
		fsys.WithReadError("/data/game/rules/01_more.txt", boom)

		_, err := m.GetResolver("rules", ".txt", rules.Simple)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrIO))
		assert.ErrorIs(t, err, boom)
	})
}
