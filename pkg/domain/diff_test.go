package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	title := Snapshot{CurrentID: "title", Node: Node{Type: NodeTypeTitle}, Flags: Flags{ShowTap: true}}

	t.Run("Initial Load (Prev is Nil)", func(t *testing.T) {
		diff := Diff("sess-1", nil, title)
		require.NotNil(t, diff)
		assert.Equal(t, "sess-1", diff.SessionID)
		require.NotNil(t, diff.CurrentID)
		assert.Equal(t, "title", *diff.CurrentID)
		require.NotNil(t, diff.Flags)
		assert.True(t, diff.Flags.ShowTap)
	})

	t.Run("No Changes", func(t *testing.T) {
		assert.Nil(t, Diff("sess-1", &title, title))
	})

	t.Run("Navigation", func(t *testing.T) {
		next := Snapshot{
			CurrentID:  "c1",
			Node:       Node{Type: NodeTypeChoice},
			Epoch:      2,
			PersonaKey: "A",
			Flags:      Flags{ShowChoices: true, ChoiceReady: true},
		}
		diff := Diff("sess-1", &title, next)
		require.NotNil(t, diff)
		assert.Equal(t, uint64(2), diff.Epoch)
		assert.Equal(t, "c1", *diff.CurrentID)
		assert.Equal(t, "A", *diff.PersonaKey)
		assert.Nil(t, diff.ShadowKey)
		assert.Nil(t, diff.Revealed)
	})

	t.Run("Same Id New Epoch", func(t *testing.T) {
		again := title
		again.Epoch = 1
		diff := Diff("sess-1", &title, again)
		require.NotNil(t, diff)
		require.NotNil(t, diff.CurrentID)
		assert.Equal(t, "title", *diff.CurrentID)
	})

	t.Run("JSON omits unchanged fields", func(t *testing.T) {
		revealed := title
		revealed.Revealed = true
		data, err := json.Marshal(Diff("sess-1", &title, revealed))
		require.NoError(t, err)
		assert.JSONEq(t, `{"session_id":"sess-1","epoch":0,"revealed":true}`, string(data))
	})
}
