package runtime_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/tapestry/internal/logging"
	"github.com/aretw0/tapestry/internal/runtime"
	"github.com/aretw0/tapestry/pkg/domain"
	"github.com/aretw0/tapestry/pkg/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_ContractViolations(t *testing.T) {
	tests := []struct {
		name    string
		story   func() *domain.Story
		prepare func(ctx context.Context, e *runtime.Engine) error
		signal  func(ctx context.Context, e *runtime.Engine) error
		want    error
		op      string
	}{
		{
			name:    "advance from a choice node",
			story:   scenarioStory,
			prepare: func(ctx context.Context, e *runtime.Engine) error { return e.NavigateTo(ctx, "c1") },
			signal:  func(ctx context.Context, e *runtime.Engine) error { return e.Advance(ctx) },
			want:    domain.ErrNoNext,
			op:      runtime.OpAdvance,
		},
		{
			name:    "dynamic edge before any key",
			story:   branchingStory,
			prepare: func(ctx context.Context, e *runtime.Engine) error { return e.NavigateTo(ctx, "s03") },
			signal:  func(ctx context.Context, e *runtime.Engine) error { return e.Advance(ctx) },
			want:    domain.ErrKeysMissing,
			op:      runtime.OpAdvance,
		},
		{
			name:  "dynamic edge with only the shadow key",
			story: branchingStory,
			prepare: func(ctx context.Context, e *runtime.Engine) error {
				if err := e.Advance(ctx); err != nil {
					return err
				}
				if err := e.SelectChoiceAt(ctx, 0); err != nil {
					return err
				}
				return e.NavigateTo(ctx, "s03")
			},
			signal: func(ctx context.Context, e *runtime.Engine) error { return e.Advance(ctx) },
			want:   domain.ErrKeysMissing,
			op:     runtime.OpAdvance,
		},
		{
			name:  "select on a narration node",
			story: scenarioStory,
			signal: func(ctx context.Context, e *runtime.Engine) error {
				return e.SelectChoice(ctx, domain.Choice{Label: "X", Next: "end"})
			},
			want: domain.ErrNoActiveChoice,
			op:   runtime.OpSelectChoice,
		},
		{
			name:    "select a foreign choice",
			story:   scenarioStory,
			prepare: func(ctx context.Context, e *runtime.Engine) error { return e.NavigateTo(ctx, "c1") },
			signal: func(ctx context.Context, e *runtime.Engine) error {
				return e.SelectChoice(ctx, domain.Choice{Label: "Y", Next: "n1"})
			},
			want: domain.ErrUnknownChoice,
			op:   runtime.OpSelectChoice,
		},
		{
			name:    "select out of range",
			story:   scenarioStory,
			prepare: func(ctx context.Context, e *runtime.Engine) error { return e.NavigateTo(ctx, "c1") },
			signal:  func(ctx context.Context, e *runtime.Engine) error { return e.SelectChoiceAt(ctx, 3) },
			want:    domain.ErrUnknownChoice,
			op:      runtime.OpSelectChoice,
		},
		{
			name:   "navigate to empty id",
			story:  scenarioStory,
			signal: func(ctx context.Context, e *runtime.Engine) error { return e.NavigateTo(ctx, "") },
			want:   domain.ErrEmptyNodeID,
			op:     runtime.OpNavigate,
		},
		{
			name:   "navigate to unknown id",
			story:  scenarioStory,
			signal: func(ctx context.Context, e *runtime.Engine) error { return e.NavigateTo(ctx, "s07_undefinedundefined") },
			want:   domain.ErrNodeNotFound,
			op:     runtime.OpNavigate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/strict", func(t *testing.T) {
			ctx := context.Background()
			e := newEngine(t, tt.story())
			if tt.prepare != nil {
				require.NoError(t, tt.prepare(ctx, e))
			}
			before := e.Snapshot()

			err := tt.signal(ctx, e)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, domain.IsContractViolation(err))

			var ce *domain.ContractError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.op, ce.Op)
			assert.Equal(t, before.CurrentID, ce.NodeID)

			assert.Equal(t, before, e.Snapshot(), "state must not change")
		})

		t.Run(tt.name+"/lenient", func(t *testing.T) {
			ctx := context.Background()
			var buf bytes.Buffer
			logger := logging.NewWithWriter(&buf, slog.LevelDebug, logging.FormatText)
			e := newEngine(t, tt.story(), runtime.WithStrict(false), runtime.WithLogger(logger))
			if tt.prepare != nil {
				require.NoError(t, tt.prepare(ctx, e))
			}
			before := e.Snapshot()

			require.NoError(t, tt.signal(ctx, e))
			assert.Equal(t, before, e.Snapshot(), "state must not change")
			assert.Contains(t, buf.String(), "contract violation ignored")
			assert.Contains(t, buf.String(), "op="+tt.op)
		})
	}
}

func TestEngine_MissingKeyDetail(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, branchingStory())
	require.NoError(t, e.NavigateTo(ctx, "s03"))

	err := e.Advance(ctx)

	var mk *resolver.MissingKeyError
	require.ErrorAs(t, err, &mk)
	assert.True(t, mk.Persona)
	assert.True(t, mk.Shadow)
}
