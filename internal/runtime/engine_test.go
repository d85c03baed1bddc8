package runtime_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/tapestry/internal/runtime"
	"github.com/aretw0/tapestry/internal/validator"
	"github.com/aretw0/tapestry/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, story *domain.Story, opts ...runtime.EngineOption) *runtime.Engine {
	t.Helper()
	e, err := runtime.NewEngine(story, opts...)
	require.NoError(t, err)
	return e
}

func TestEngine_Scenario(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, scenarioStory())
	e.Initialize(ctx)

	snap := e.Snapshot()
	assert.Equal(t, "title", snap.CurrentID)
	assert.Equal(t, uint64(0), snap.Epoch)
	assert.True(t, snap.Flags.ShowTap)

	require.NoError(t, e.Advance(ctx))
	snap = e.Snapshot()
	assert.Equal(t, "n1", snap.CurrentID)
	assert.Equal(t, uint64(1), snap.Epoch)
	assert.Equal(t, 2, snap.VisibleLines())

	require.NoError(t, e.Advance(ctx))
	snap = e.Snapshot()
	assert.Equal(t, "c1", snap.CurrentID)
	assert.Equal(t, uint64(2), snap.Epoch)
	assert.Equal(t, domain.Flags{ShowChoices: true, ChoiceReady: true}, snap.Flags)

	require.NoError(t, e.SelectChoice(ctx, domain.Choice{Label: "X", Next: "end"}))
	snap = e.Snapshot()
	assert.Equal(t, "title", snap.CurrentID)
	assert.Equal(t, uint64(4), snap.Epoch)
	assert.False(t, snap.HasPersona())
	assert.False(t, snap.HasShadow())
	assert.Empty(t, snap.ChoiceSelected)
	assert.Equal(t, domain.Flags{ShowTap: true}, snap.Flags)
}

func TestEngine_DynamicCompositionOrder(t *testing.T) {
	tests := []struct {
		shadowChoice  int
		personaChoice int
		want          string
	}{
		{0, 0, "s07_AX"},
		{0, 1, "s07_BX"},
		{1, 0, "s07_AY"},
		{1, 1, "s07_BY"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			ctx := context.Background()
			e := newEngine(t, branchingStory())

			require.NoError(t, e.Advance(ctx))
			// the shadow key is collected first
			require.NoError(t, e.SelectChoiceAt(ctx, tt.shadowChoice))
			require.NoError(t, e.Advance(ctx))
			require.NoError(t, e.SelectChoiceAt(ctx, tt.personaChoice))
			require.NoError(t, e.Advance(ctx))
			assert.Equal(t, "s03", e.Snapshot().CurrentID)

			require.NoError(t, e.Advance(ctx))
			snap := e.Snapshot()
			assert.Equal(t, tt.want, snap.CurrentID)
			assert.Equal(t, "s07_"+snap.PersonaKey+snap.ShadowKey, snap.CurrentID)
		})
	}
}

func TestEngine_NonRestartingEnd(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, branchingStory())

	require.NoError(t, e.NavigateTo(ctx, "s13"))
	snap := e.Snapshot()
	assert.Equal(t, "s13", snap.CurrentID)
	assert.True(t, snap.IsEnd())
	assert.True(t, snap.Flags.ShowTap)
	assert.Equal(t, domain.AffordanceCloseLetter, domain.AffordanceFor(snap, e.Story().LetterID))

	require.NoError(t, e.Advance(ctx))
	assert.Equal(t, "title", e.Snapshot().CurrentID)
}

func TestEngine_RestartClearsKeys(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, branchingStory())

	require.NoError(t, e.Advance(ctx))
	require.NoError(t, e.SelectChoiceAt(ctx, 0))
	require.NoError(t, e.Advance(ctx))
	require.NoError(t, e.SelectChoiceAt(ctx, 1))
	snap := e.Snapshot()
	assert.Equal(t, "B", snap.PersonaKey)
	assert.Equal(t, "X", snap.ShadowKey)

	require.NoError(t, e.NavigateTo(ctx, "end"))
	snap = e.Snapshot()
	assert.Equal(t, "title", snap.CurrentID)
	assert.Empty(t, snap.PersonaKey)
	assert.Empty(t, snap.ShadowKey)
}

func TestEngine_SameIDTwice(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, scenarioStory())

	require.NoError(t, e.NavigateTo(ctx, "n1"))
	first := e.Snapshot()
	require.NoError(t, e.NavigateTo(ctx, "n1"))
	second := e.Snapshot()

	assert.Equal(t, first.CurrentID, second.CurrentID)
	assert.Greater(t, second.Epoch, first.Epoch)
}

func TestEngine_Initialize(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, branchingStory())

	require.NoError(t, e.Advance(ctx))
	require.NoError(t, e.SelectChoiceAt(ctx, 0))
	e.Initialize(ctx)

	snap := e.Snapshot()
	assert.Equal(t, "title", snap.CurrentID)
	assert.Equal(t, uint64(0), snap.Epoch)
	assert.Empty(t, snap.ShadowKey)
}

func TestEngine_ToggleChoices(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, scenarioStory())

	assert.False(t, e.ToggleChoices(), "title has no choices to toggle")
	assert.Equal(t, domain.Flags{ShowTap: true}, e.Snapshot().Flags)

	require.NoError(t, e.NavigateTo(ctx, "c1"))
	epoch := e.Snapshot().Epoch

	assert.False(t, e.ToggleChoices())
	snap := e.Snapshot()
	assert.False(t, snap.Flags.ShowChoices)
	assert.True(t, snap.Flags.ChoiceReady)
	assert.Equal(t, epoch, snap.Epoch)

	err := e.SelectChoiceAt(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrNoActiveChoice)

	assert.True(t, e.ToggleChoices())
	require.NoError(t, e.SelectChoiceAt(ctx, 0))
}

func TestEngine_InvalidStory(t *testing.T) {
	s := scenarioStory()
	s.Nodes["n1"] = domain.Node{ID: "n1", Type: domain.NodeTypeNarration, Next: domain.To("ghost")}

	_, err := runtime.NewEngine(s)
	require.Error(t, err)
	assert.ErrorIs(t, err, validator.ErrInvalidStory)

	_, err = runtime.NewEngine(nil)
	assert.Error(t, err)
}

func TestEngine_DegenerateRestart(t *testing.T) {
	s := domain.NewStory(domain.Node{ID: "title", Type: domain.NodeTypeTitle, Next: domain.To("title")})
	s.TerminalID = "title"

	_, err := runtime.NewEngine(s)
	assert.ErrorIs(t, err, validator.ErrInvalidStory)
}

func TestEngine_ConcurrentSignals(t *testing.T) {
	ctx := context.Background()
	s := domain.NewStory(
		domain.Node{ID: "title", Type: domain.NodeTypeTitle, Next: domain.To("loop")},
		domain.Node{ID: "loop", Type: domain.NodeTypeNarration, Lines: []string{"again"}, Next: domain.To("loop")},
		domain.Node{ID: "end", Type: domain.NodeTypeEnd},
	)
	e := newEngine(t, s)

	const n = 64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, e.Advance(ctx))
		}()
		go func() {
			defer wg.Done()
			_ = e.Snapshot()
		}()
	}
	wg.Wait()

	snap := e.Snapshot()
	assert.Equal(t, "loop", snap.CurrentID)
	assert.Equal(t, uint64(n), snap.Epoch)
}

func TestDeriveFlags(t *testing.T) {
	tests := []struct {
		typ  domain.NodeType
		want domain.Flags
	}{
		{domain.NodeTypeTitle, domain.Flags{ShowTap: true}},
		{domain.NodeTypeNarration, domain.Flags{ShowTap: true}},
		{domain.NodeTypeReveal, domain.Flags{ShowTap: true}},
		{domain.NodeTypeChoice, domain.Flags{ShowChoices: true, ChoiceReady: true}},
		{domain.NodeTypeEnd, domain.Flags{ShowTap: true}},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.Equal(t, tt.want, runtime.DeriveFlags(domain.Node{Type: tt.typ}))
		})
	}
}

func TestEngine_OwnsStoryCopy(t *testing.T) {
	s := &domain.Story{Nodes: map[string]domain.Node{
		"title": {Type: domain.NodeTypeTitle, Lines: []string{"Tapestry"}, Next: domain.To("end")},
		"end":   {Type: domain.NodeTypeEnd},
	}}
	e := newEngine(t, s)

	assert.Empty(t, s.TitleID, "defaults are applied to the engine's copy")
	assert.Empty(t, s.Nodes["title"].ID)

	s.Nodes["title"].Lines[0] = "changed"
	delete(s.Nodes, "end")

	assert.Equal(t, []string{"Tapestry"}, e.Story().Nodes["title"].Lines)
	_, ok := e.Story().Node("end")
	assert.True(t, ok)
	assert.Equal(t, "title", e.Snapshot().CurrentID)
}
