package history

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

func TestRestore(t *testing.T) {
	t.Run("Restores a played history", func(t *testing.T) {
		// Given: a played and rewound game stored as JSON
		game := New()
		playAll(t, game, 0, 4, 8, 2)
		require.NoError(t, game.JumpTo(2))
		game.ToggleSort()

		raw, err := json.Marshal(game.Snapshot())
		require.NoError(t, err)

		// When: decoding and restoring it
		var snapshot Snapshot
		require.NoError(t, json.Unmarshal(raw, &snapshot))
		restored, err := Restore(snapshot)

		// Then: the restored game behaves like the original
		require.NoError(t, err)
		assert.Equal(t, game.Snapshot(), restored.Snapshot())
		assert.Equal(t, game.View(), restored.View())
	})

	t.Run("Restored history is detached from the snapshot", func(t *testing.T) {
		game := New()
		playAll(t, game, 0)
		snapshot := game.Snapshot()

		restored, err := Restore(snapshot)
		require.NoError(t, err)
		require.NoError(t, restored.JumpTo(0))
		require.NoError(t, restored.Play(8))

		assert.Equal(t, entity.Board{x, e, e, e, e, e, e, e, e}, snapshot.Entries[1])
	})

	cases := []struct {
		name     string
		snapshot Snapshot
	}{
		{
			name:     "no entries",
			snapshot: Snapshot{},
		},
		{
			name:     "first entry not empty",
			snapshot: Snapshot{Entries: []entity.Board{{x}}},
		},
		{
			name: "O moves first",
			snapshot: Snapshot{Entries: []entity.Board{
				{},
				{o},
			}},
		},
		{
			name: "two cells change at once",
			snapshot: Snapshot{Entries: []entity.Board{
				{},
				{x, o},
			}},
		},
		{
			name: "board does not change",
			snapshot: Snapshot{Entries: []entity.Board{
				{},
				{},
			}},
		},
		{
			name: "mark is overwritten",
			snapshot: Snapshot{Entries: []entity.Board{
				{},
				{x},
				{o},
			}},
		},
		{
			name: "move after a win",
			snapshot: Snapshot{Entries: []entity.Board{
				{},
				{x, e, e, e, e, e, e, e, e},
				{x, e, e, o, e, e, e, e, e},
				{x, x, e, o, e, e, e, e, e},
				{x, x, e, o, o, e, e, e, e},
				{x, x, x, o, o, e, e, e, e},
				{x, x, x, o, o, o, e, e, e},
			}},
		},
		{
			name:     "current out of range",
			snapshot: Snapshot{Entries: []entity.Board{{}}, Current: 1},
		},
		{
			name:     "negative current",
			snapshot: Snapshot{Entries: []entity.Board{{}}, Current: -1},
		},
		{
			name:     "unknown order",
			snapshot: Snapshot{Entries: []entity.Board{{}}, Order: 7},
		},
	}

	for _, tc := range cases {
		t.Run("Rejects "+tc.name, func(t *testing.T) {
			restored, err := Restore(tc.snapshot)

			require.ErrorIs(t, err, apperror.ErrCorruptHistory)
			assert.Nil(t, restored)
		})
	}
}
