package paths_test

import (
	"errors"
	"testing"

	perrors "github.com/patchling/patchling/pkg/errors"
	"github.com/patchling/patchling/pkg/paths"
	"github.com/patchling/patchling/pkg/testutil"
	"github.com/patchling/patchling/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyVDF = "\"LibraryFolders\"\n{\n\t\"TimeNextStatsReport\"\t\t\"1600000000\"\n\t\"ContentStatsID\"\t\t\"-123\"\n\t\"1\"\t\t\"/mnt/games/steam\"\n\t\"2\"\t\t\"/mnt/ssd/steam\"\n}\n"

const modernVDF = "\"libraryfolders\"\n{\n\t\"0\"\n\t{\n\t\t\"path\"\t\t\"/home/user/.steam/steam\"\n\t\t\"label\"\t\t\"\"\n\t}\n\t\"1\"\n\t{\n\t\t\"path\"\t\t\"/mnt/games/steam\"\n\t}\n}\n"

func installedGame() testutil.FileTree {
	return testutil.FileTree{
		"checksum_manifest.txt": "",
		"tweakergui_assets":     testutil.FileTree{},
		"common":                testutil.FileTree{"defines": testutil.FileTree{}},
	}
}

func TestParseLibraryFolders(t *testing.T) {
	t.Run("legacy", func(t *testing.T) {
		folders, err := paths.ParseLibraryFolders([]byte(legacyVDF))
		require.NoError(t, err)
		assert.Equal(t, []string{"/mnt/games/steam", "/mnt/ssd/steam"}, folders)
	})

	t.Run("modern", func(t *testing.T) {
		folders, err := paths.ParseLibraryFolders([]byte(modernVDF))
		require.NoError(t, err)
		assert.Equal(t, []string{"/home/user/.steam/steam", "/mnt/games/steam"}, folders)
	})

	t.Run("ordered_by_library_number", func(t *testing.T) {
		data := "\"libraryfolders\"\n{\n\t\"10\"\t\"/j\"\n\t\"2\"\t\"/b\"\n\t\"1\"\t\"/a\"\n}\n"
		folders, err := paths.ParseLibraryFolders([]byte(data))
		require.NoError(t, err)
		assert.Equal(t, []string{"/a", "/b", "/j"}, folders)
	})

	t.Run("blocks_without_path_skipped", func(t *testing.T) {
		data := "\"libraryfolders\"\n{\n\t\"0\"\n\t{\n\t\t\"label\"\t\"x\"\n\t}\n\t\"contentstatsid\"\t\"7\"\n}\n"
		folders, err := paths.ParseLibraryFolders([]byte(data))
		require.NoError(t, err)
		assert.Empty(t, folders)
	})

	t.Run("empty", func(t *testing.T) {
		folders, err := paths.ParseLibraryFolders(nil)
		require.NoError(t, err)
		assert.Empty(t, folders)
	})
}

func TestFindGameData(t *testing.T) {
	t.Run("libraries_in_order_then_root", func(t *testing.T) {
		fsys := testutil.NewTestFS(t, "/", testutil.FileTree{
			"home/user/.steam/steam/steamapps": testutil.FileTree{
				"libraryfolders.vdf": legacyVDF,
				"common/Stellaris":   installedGame(),
			},
			"mnt/ssd/steam/steamapps/common/Stellaris": installedGame(),
		})

		found, err := paths.FindGameData(fsys, "/home/user/.steam/steam", types.Stellaris)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"/mnt/ssd/steam/steamapps/common/Stellaris",
			"/home/user/.steam/steam/steamapps/common/Stellaris",
		}, found)
	})

	t.Run("root_listed_once", func(t *testing.T) {
		fsys := testutil.NewTestFS(t, "/", testutil.FileTree{
			"home/user/.steam/steam/steamapps": testutil.FileTree{
				"libraryfolders.vdf": modernVDF,
				"common/Stellaris":   installedGame(),
			},
		})

		found, err := paths.FindGameData(fsys, "/home/user/.steam/steam", types.Stellaris)
		require.NoError(t, err)
		assert.Equal(t, []string{"/home/user/.steam/steam/steamapps/common/Stellaris"}, found)
	})

	t.Run("incomplete_install_skipped", func(t *testing.T) {
		fsys := testutil.NewTestFS(t, "/", testutil.FileTree{
			"steam/steamapps/common/Stellaris": testutil.FileTree{
				"checksum_manifest.txt": "",
				"common":                testutil.FileTree{},
			},
		})

		found, err := paths.FindGameData(fsys, "/steam", types.Stellaris)
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("no_vdf", func(t *testing.T) {
		fsys := testutil.NewTestFS(t, "/steam/steamapps/common/Stellaris", installedGame())

		found, err := paths.FindGameData(fsys, "/steam", types.Stellaris)
		require.NoError(t, err)
		assert.Equal(t, []string{"/steam/steamapps/common/Stellaris"}, found)
	})

	t.Run("unreadable_vdf", func(t *testing.T) {
		inner := testutil.NewTestFS(t, "/steam/steamapps", testutil.FileTree{"libraryfolders.vdf": legacyVDF})
		boom := errors.New("permission denied")
		fsys := testutil.NewInstrumentedFS(inner).WithReadError("/steam/steamapps/libraryfolders.vdf", boom)

		_, err := paths.FindGameData(fsys, "/steam", types.Stellaris)
		require.Error(t, err)
		assert.True(t, perrors.IsErrorCode(err, perrors.ErrIO))
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, "/steam/steamapps/libraryfolders.vdf", perrors.GetErrorDetails(err)["path"])
	})
}
