package tests

import (
	"context"
	"testing"

	"github.com/aretw0/tapestry/pkg/domain"
	"github.com/aretw0/tapestry/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// StoryLoaderContract is a reusable test suite that verifies if an adapter complies with ports.StoryLoader.
// want is the story the loader is expected to produce, defaults applied.
func StoryLoaderContract(t *testing.T, loader ports.StoryLoader, want *domain.Story) {
	t.Helper()
	want.ApplyDefaults()

	t.Run("Load", func(t *testing.T) {
		got, err := loader.Load(context.Background())
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, want.TitleID, got.TitleID)
		assert.Equal(t, want.TerminalID, got.TerminalID)
		assert.Equal(t, want.DynamicPrefix, got.DynamicPrefix)
		assert.Equal(t, want.LetterID, got.LetterID)
		assert.Equal(t, want.PersonaKeys, got.PersonaKeys)
		assert.Equal(t, want.ShadowKeys, got.ShadowKeys)

		assert.ElementsMatch(t, want.IDs(), got.IDs())
		for _, id := range want.IDs() {
			assert.Equal(t, want.Nodes[id], got.Nodes[id], "node %s", id)
		}
	})

	t.Run("Load_Independent", func(t *testing.T) {
		first, err := loader.Load(context.Background())
		require.NoError(t, err)
		for id := range first.Nodes {
			delete(first.Nodes, id)
		}

		second, err := loader.Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, second.Nodes, len(want.Nodes), "stories returned by Load must not share state")
	})

	t.Run("Load_Canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := loader.Load(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
