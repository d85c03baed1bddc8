package runtime

import (
	"context"
	"time"

	"github.com/aretw0/tapestry/pkg/domain"
)

func (e *Engine) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		SessionID: e.sessionID,
	}
}

func (e *Engine) emitNodeEnter(ctx context.Context, from, to domain.Snapshot) {
	if e.hooks.OnNodeEnter == nil {
		return
	}
	e.hooks.OnNodeEnter(ctx, &domain.NodeEvent{
		EventBase: e.base(domain.EventNodeEnter),
		NodeID:    to.CurrentID,
		NodeType:  to.Node.Type,
		Epoch:     to.Epoch,
		From:      from,
		To:        to,
	})
}

func (e *Engine) emitChoice(ctx context.Context, evt *domain.ChoiceEvent) {
	if e.hooks.OnChoice == nil {
		return
	}
	evt.EventBase = e.base(domain.EventChoice)
	e.hooks.OnChoice(ctx, evt)
}

func (e *Engine) emitRestart(ctx context.Context, evt *domain.RestartEvent) {
	if e.hooks.OnRestart == nil {
		return
	}
	evt.EventBase = e.base(domain.EventRestart)
	e.hooks.OnRestart(ctx, evt)
}
