package mods_test

import (
	stderrors "errors"
	"testing"

	"github.com/patchling/patchling/pkg/errors"
	"github.com/patchling/patchling/pkg/mods"
	"github.com/patchling/patchling/pkg/rules"
	"github.com/patchling/patchling/pkg/testutil"
	"github.com/patchling/patchling/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const descriptor = `
id = "better_ships"
game = "stellaris"
name = "Better Ships"
copy_dirs = ["gfx", "localisation"]
source_dirs = ["src"]
lib_dirs = ["lib", "vendor"]
`

func modTree() testutil.FileTree {
	return testutil.FileTree{
		"mod.toml": descriptor,
		"gfx": testutil.FileTree{
			"ships":    testutil.FileTree{"hull.dds": "DDS"},
			"icon.png": "PNG",
		},
		"localisation": testutil.FileTree{"english.yml": "l_english:"},
		"src": testutil.FileTree{
			"main.lua": "return {}",
			"rules":    testutil.FileTree{"weights.lua": "return {}"},
		},
		"lib": testutil.FileTree{},
	}
}

func TestLoadModInfo(t *testing.T) {
	fsys := testutil.NewTestFS(t, "/mods/better_ships", modTree())

	info, err := mods.LoadModInfo(fsys, "/mods/better_ships")
	require.NoError(t, err)
	assert.Equal(t, mods.ModInfo{
		ID:         "better_ships",
		Name:       "Better Ships",
		Game:       types.Stellaris,
		CopyDirs:   []string{"gfx", "localisation"},
		SourceDirs: []string{"src"},
		LibDirs:    []string{"lib", "vendor"},
		Root:       "/mods/better_ships",
	}, info)
	assert.False(t, info.IsLoaded)
	assert.Equal(t, rules.ModData("Better Ships", "/mods/better_ships"), info.DataRoot())
}

func TestLoadModInfo_Errors(t *testing.T) {
	tests := []struct {
		name       string
		descriptor string
		code       errors.ErrorCode
	}{
		{"bad_toml", `id = "x`, errors.ErrModInvalid},
		{"missing_id", `game = "stellaris"`, errors.ErrModInvalid},
		{"unsafe_id", `id = "Better Ships"`, errors.ErrModInvalid},
		{"unknown_game", "id = \"x\"\ngame = \"ck3\"", errors.ErrModInvalid},
		{"escaping_dir", "id = \"x\"\ncopy_dirs = [\"../other\"]", errors.ErrModInvalid},
		{"absolute_dir", "id = \"x\"\nlib_dirs = [\"/usr/lib\"]", errors.ErrModInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := testutil.NewTestFS(t, "/mod", testutil.FileTree{"mod.toml": tt.descriptor})
			_, err := mods.LoadModInfo(fsys, "/mod")
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), err.Error())
		})
	}

	t.Run("no_descriptor", func(t *testing.T) {
		fsys := testutil.NewTestFS(t, "/mod", testutil.FileTree{})
		_, err := mods.LoadModInfo(fsys, "/mod")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrModInvalid))
	})

	t.Run("unreadable_descriptor", func(t *testing.T) {
		boom := stderrors.New("permission denied")
		fsys := testutil.NewInstrumentedFS(testutil.NewTestFS(t, "/mod", testutil.FileTree{"mod.toml": descriptor})).
			WithReadError("/mod/mod.toml", boom)
		_, err := mods.LoadModInfo(fsys, "/mod")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrIO))
	})
}

func TestModInfo_DisplayName(t *testing.T) {
	assert.Equal(t, "x", mods.ModInfo{ID: "x"}.DisplayName())
	assert.Equal(t, "Nice", mods.ModInfo{ID: "x", Name: "Nice"}.DisplayName())
}

func TestLoad(t *testing.T) {
	fsys := testutil.NewTestFS(t, "/mods/better_ships", modTree())
	info, err := mods.LoadModInfo(fsys, "/mods/better_ships")
	require.NoError(t, err)

	loaded, err := mods.Load(fsys, info)
	require.NoError(t, err)

	assert.True(t, loaded.Info.IsLoaded)
	assert.False(t, info.IsLoaded, "Load must not mutate its argument")

	assert.Equal(t, []mods.CopyFile{
		{Name: "icon.png", Path: "/mods/better_ships/gfx/icon.png"},
		{Name: "ships/hull.dds", Path: "/mods/better_ships/gfx/ships/hull.dds"},
		{Name: "english.yml", Path: "/mods/better_ships/localisation/english.yml"},
	}, loaded.CopyFiles)

	assert.Equal(t, []string{
		"/mods/better_ships/src/main.lua",
		"/mods/better_ships/src/rules/weights.lua",
	}, loaded.SourceFiles)

	assert.Equal(t, []string{"/mods/better_ships/lib"}, loaded.LibPaths)
}

func TestLoad_MissingDirs(t *testing.T) {
	fsys := testutil.NewTestFS(t, "/mod", testutil.FileTree{"mod.toml": "id = \"bare\"\ncopy_dirs = [\"gfx\"]\nsource_dirs = [\"src\"]"})
	info, err := mods.LoadModInfo(fsys, "/mod")
	require.NoError(t, err)

	loaded, err := mods.Load(fsys, info)
	require.NoError(t, err)
	assert.Empty(t, loaded.CopyFiles)
	assert.Empty(t, loaded.SourceFiles)
	assert.Empty(t, loaded.LibPaths)
}
