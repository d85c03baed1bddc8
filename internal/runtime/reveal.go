package runtime

import (
	"context"
	"sort"

	"github.com/aretw0/tapestry/pkg/domain"
)

// OnRevealComplete registers fn to run whenever a screen is fully revealed.
// The returned func unregisters it.
func (e *Engine) OnRevealComplete(fn func(context.Context, *domain.RevealEvent)) (unregister func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextHandlerID
	e.nextHandlerID++
	e.revealHandlers[id] = fn

	return func() {
		e.mu.Lock()
		delete(e.revealHandlers, id)
		e.mu.Unlock()
	}
}

// RevealComplete is the renderer's notification that every visible line of
// the screen shown at epoch is on screen. A notification for an older epoch
// is stale and ignored, and each epoch completes at most once. It reports
// whether the notification was accepted.
func (e *Engine) RevealComplete(ctx context.Context, epoch uint64) bool {
	e.mu.Lock()
	if epoch != e.st.epoch || e.st.revealed {
		e.mu.Unlock()
		e.logger.Debug("reveal notification ignored", "epoch", epoch)
		return false
	}
	e.st.revealed = true
	nodeID := e.st.currentID

	ids := make([]int, 0, len(e.revealHandlers))
	for id := range e.revealHandlers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	handlers := make([]func(context.Context, *domain.RevealEvent), 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, e.revealHandlers[id])
	}
	e.mu.Unlock()

	evt := &domain.RevealEvent{
		EventBase: e.base(domain.EventRevealComplete),
		NodeID:    nodeID,
		Epoch:     epoch,
	}
	if e.hooks.OnRevealComplete != nil {
		e.hooks.OnRevealComplete(ctx, evt)
	}
	for _, h := range handlers {
		h(ctx, evt)
	}
	return true
}
