package types_test

import (
	"encoding/json"
	"testing"

	"github.com/patchling/patchling/pkg/errors"
	"github.com/patchling/patchling/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGame_Names(t *testing.T) {
	assert.Equal(t, "stellaris", types.Stellaris.ID())
	assert.Equal(t, "Stellaris", types.Stellaris.DisplayName())
	assert.Equal(t, "Stellaris", types.Stellaris.SteamName())
	assert.Equal(t, "stellaris", types.Stellaris.String())
	assert.Equal(t, []types.Game{types.Stellaris}, types.Games())
}

func TestParseGame(t *testing.T) {
	t.Run("known", func(t *testing.T) {
		g, err := types.ParseGame("stellaris")
		require.NoError(t, err)
		assert.Equal(t, types.Stellaris, g)
	})

	t.Run("display_name_is_not_an_id", func(t *testing.T) {
		_, err := types.ParseGame("Stellaris")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := types.ParseGame("hoi4")
		require.Error(t, err)
		assert.Equal(t, "hoi4", errors.GetErrorDetails(err)["game"])
	})
}

func TestGame_Text(t *testing.T) {
	var doc struct {
		Game types.Game `json:"game"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"game":"stellaris"}`), &doc))
	assert.Equal(t, types.Stellaris, doc.Game)

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"game":"stellaris"}`, string(data))

	assert.Error(t, json.Unmarshal([]byte(`{"game":"eu4"}`), &doc))

	_, err = types.Game(42).MarshalText()
	assert.Error(t, err)
}
