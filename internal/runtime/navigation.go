package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/tapestry/pkg/domain"
	"github.com/aretw0/tapestry/pkg/resolver"
)

// Operation names used in contract errors and logs.
const (
	OpAdvance      = "advance"
	OpSelectChoice = "select_choice"
	OpNavigate     = "navigate"
)

// transition records what a committed navigation must announce.
type transition struct {
	from      domain.Snapshot
	to        domain.Snapshot
	restarted bool
	terminal  string
}

// Advance follows the current node's next edge, composing the target
// from the collected keys when the edge is dynamic.
func (e *Engine) Advance(ctx context.Context) error {
	e.mu.Lock()
	node, _ := e.story.Node(e.st.currentID)

	var target string
	switch node.Next.Kind {
	case domain.EdgeNone:
		e.mu.Unlock()
		return e.violation(OpAdvance, node.ID, domain.ErrNoNext)
	case domain.EdgeDynamic:
		id, err := resolver.Compose(e.story.DynamicPrefix, e.st.personaKey, e.st.shadowKey)
		if err != nil {
			e.mu.Unlock()
			return e.violation(OpAdvance, node.ID, err)
		}
		target = id
	default:
		target = node.Next.Target
	}

	tr, err := e.navigate(OpAdvance, target)
	e.mu.Unlock()
	if tr == nil {
		return err
	}

	e.announce(ctx, tr)
	return nil
}

// SelectChoice records the choice, applies the persona and shadow tables
// independently, then navigates to the choice's target.
func (e *Engine) SelectChoice(ctx context.Context, choice domain.Choice) error {
	e.mu.Lock()
	node, _ := e.story.Node(e.st.currentID)

	if err := e.checkSelectable(node, choice); err != nil {
		e.mu.Unlock()
		return e.violation(OpSelectChoice, node.ID, err)
	}

	e.st.choiceSelected = choice.Label
	keys := e.resolver.Resolve(choice.Next)
	if keys.Persona != "" {
		e.st.personaKey = keys.Persona
	}
	if keys.Shadow != "" {
		e.st.shadowKey = keys.Shadow
	}
	selected := e.snapshot()

	tr, err := e.navigate(OpSelectChoice, choice.Next)
	e.mu.Unlock()
	if tr == nil {
		return err
	}

	e.logger.Debug("choice selected", "node_id", node.ID, "label", choice.Label, "target", choice.Next)
	e.emitChoice(ctx, &domain.ChoiceEvent{
		NodeID:     node.ID,
		Label:      choice.Label,
		Target:     choice.Next,
		PersonaKey: keys.Persona,
		ShadowKey:  keys.Shadow,
		Snapshot:   selected,
	})
	e.announce(ctx, tr)
	return nil
}

// SelectChoiceAt selects the i-th choice of the current node, in display order.
func (e *Engine) SelectChoiceAt(ctx context.Context, i int) error {
	e.mu.Lock()
	node, _ := e.story.Node(e.st.currentID)
	e.mu.Unlock()

	if i < 0 || i >= len(node.Choices) {
		return e.violation(OpSelectChoice, node.ID, fmt.Errorf("%w: index %d", domain.ErrUnknownChoice, i))
	}
	return e.SelectChoice(ctx, node.Choices[i])
}

func (e *Engine) checkSelectable(node domain.Node, choice domain.Choice) error {
	switch {
	case !e.st.flags.ShowChoices:
		return domain.ErrNoActiveChoice
	case e.st.choiceSelected != "":
		return domain.ErrChoiceAlreadySelected
	case node.ChoiceIndex(choice) < 0:
		return fmt.Errorf("%w: %q", domain.ErrUnknownChoice, choice.Label)
	}
	return nil
}

// NavigateTo moves to id directly. It is the transition Advance and
// SelectChoice share, exposed for renderers that jump.
func (e *Engine) NavigateTo(ctx context.Context, id string) error {
	e.mu.Lock()
	tr, err := e.navigate(OpNavigate, id)
	e.mu.Unlock()
	if tr == nil {
		return err
	}

	e.announce(ctx, tr)
	return nil
}

// ToggleChoices flips choice visibility on a choice node and reports the
// new value. Elsewhere it does nothing.
func (e *Engine) ToggleChoices() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	node, _ := e.story.Node(e.st.currentID)
	if node.Type != domain.NodeTypeChoice {
		return e.st.flags.ShowChoices
	}
	e.st.flags.ShowChoices = !e.st.flags.ShowChoices
	return e.st.flags.ShowChoices
}

// navigate must be called with the lock held. A nil transition means
// nothing changed. Entering the terminal node performs the restart in the
// same step, so the terminal id is never observable. The title is never
// the terminal, so this is a single hop.
func (e *Engine) navigate(op, id string) (*transition, error) {
	from := e.snapshot()

	if id == "" {
		return nil, e.violation(op, from.CurrentID, domain.ErrEmptyNodeID)
	}
	node, ok := e.story.Node(id)
	if !ok {
		return nil, e.violation(op, from.CurrentID, fmt.Errorf("%w: %s", domain.ErrNodeNotFound, id))
	}

	tr := &transition{from: from}
	epoch := e.st.epoch + 1

	if node.Type == domain.NodeTypeEnd && id == e.story.TerminalID {
		e.reset(epoch + 1)
		tr.restarted = true
		tr.terminal = id
	} else {
		e.st.currentID = id
		e.st.epoch = epoch
		e.st.choiceSelected = ""
		e.st.revealed = false
		e.st.flags = DeriveFlags(node)
	}

	tr.to = e.snapshot()
	return tr, nil
}

func (e *Engine) announce(ctx context.Context, tr *transition) {
	if tr.restarted {
		e.logger.Info("story restarted", "from", tr.terminal, "epoch", tr.to.Epoch)
		e.emitRestart(ctx, &domain.RestartEvent{FromNodeID: tr.terminal, Epoch: tr.to.Epoch})
	}
	e.logger.Debug("node entered", "node_id", tr.to.CurrentID, "epoch", tr.to.Epoch)
	e.emitNodeEnter(ctx, tr.from, tr.to)
}
