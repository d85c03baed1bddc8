package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aretw0/tapestry/pkg/adapters/redis"
	"github.com/aretw0/tapestry/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_Hooks(t *testing.T) {
	_, client := setupRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pub := redis.NewPublisher(client, redis.WithChannelPrefix("test:events:"))
	assert.Equal(t, "test:events:s-1", pub.Channel("s-1"))

	sub := client.Subscribe(ctx, pub.Channel("s-1"))
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)
	msgs := sub.Channel()

	from := domain.Snapshot{CurrentID: "title", Node: domain.Node{Type: domain.NodeTypeTitle}, Flags: domain.Flags{ShowTap: true}}
	to := domain.Snapshot{CurrentID: "n1", Node: domain.Node{Type: domain.NodeTypeNarration}, Epoch: 1, Flags: domain.Flags{ShowTap: true}}

	hooks := pub.Hooks()
	hooks.OnNodeEnter(ctx, &domain.NodeEvent{
		EventBase: domain.EventBase{Type: domain.EventNodeEnter, SessionID: "s-1"},
		NodeID:    "n1",
		NodeType:  domain.NodeTypeNarration,
		Epoch:     1,
		From:      from,
		To:        to,
	})
	hooks.OnRestart(ctx, &domain.RestartEvent{
		EventBase:  domain.EventBase{Type: domain.EventRestart, SessionID: "s-1"},
		FromNodeID: "end",
		Epoch:      4,
	})

	var first struct {
		Type  domain.EventType    `json:"type"`
		Event map[string]any      `json:"event"`
		Diff  domain.SnapshotDiff `json:"diff"`
	}
	select {
	case m := <-msgs:
		require.NoError(t, json.Unmarshal([]byte(m.Payload), &first))
	case <-ctx.Done():
		t.Fatal("no message received")
	}
	assert.Equal(t, domain.EventNodeEnter, first.Type)
	assert.Equal(t, "n1", first.Event["node_id"])
	require.NotNil(t, first.Diff.CurrentID)
	assert.Equal(t, "n1", *first.Diff.CurrentID)
	assert.Nil(t, first.Diff.Flags, "unchanged flags are not sent")

	select {
	case m := <-msgs:
		assert.Contains(t, m.Payload, `"from_node_id":"end"`)
		assert.Contains(t, m.Payload, `"type":"restart"`)
	case <-ctx.Done():
		t.Fatal("no restart message received")
	}
}

func TestPublisher_EncodeError(t *testing.T) {
	_, client := setupRedis(t)
	pub := redis.NewPublisher(client)

	err := pub.Publish(context.Background(), "s", func() {})
	assert.ErrorContains(t, err, "failed to encode event")
}
