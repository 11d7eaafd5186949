package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/sha3pow/pkg/types"
)

func TestEventBus_SyncAndAsync(t *testing.T) {
	bus := New(nil)

	var received *types.SealFoundEvent
	handler := func(e *types.SealFoundEvent) { received = e }
	require.NoError(t, bus.Subscribe(types.EventTypeSealFound, handler))
	assert.True(t, bus.HasCallback(types.EventTypeSealFound))

	bus.Publish(types.EventTypeSealFound, &types.SealFoundEvent{Height: 7})
	require.NotNil(t, received)
	assert.Equal(t, uint64(7), received.Height)

	var mu sync.Mutex
	var asyncHeights []uint64
	require.NoError(t, bus.SubscribeAsync(types.EventTypeBlockRejected, func(e *types.BlockRejectedEvent) {
		mu.Lock()
		asyncHeights = append(asyncHeights, e.Height)
		mu.Unlock()
	}, true))

	bus.Publish(types.EventTypeBlockRejected, &types.BlockRejectedEvent{Height: 1})
	bus.Publish(types.EventTypeBlockRejected, &types.BlockRejectedEvent{Height: 2})
	bus.WaitAsync()

	mu.Lock()
	assert.ElementsMatch(t, []uint64{1, 2}, asyncHeights)
	mu.Unlock()

	require.NoError(t, bus.Unsubscribe(types.EventTypeSealFound, handler))
	received = nil
	bus.Publish(types.EventTypeSealFound, &types.SealFoundEvent{Height: 8})
	assert.Nil(t, received)
}

func TestEventBus_History(t *testing.T) {
	bus := New(nil)

	// 未启用时不记录
	bus.Publish(types.EventTypeSealFound, &types.SealFoundEvent{Height: 1})
	assert.Nil(t, bus.GetEventHistory(types.EventTypeSealFound))

	require.NoError(t, bus.EnableEventHistory(types.EventTypeSealFound, 2))
	for h := uint64(2); h <= 4; h++ {
		bus.Publish(types.EventTypeSealFound, &types.SealFoundEvent{Height: h})
	}

	history := bus.GetEventHistory(types.EventTypeSealFound)
	require.Len(t, history, 2)
	assert.Equal(t, uint64(3), history[0].(*types.SealFoundEvent).Height)
	assert.Equal(t, uint64(4), history[1].(*types.SealFoundEvent).Height)

	assert.Error(t, bus.EnableEventHistory(types.EventTypeSealFound, 0))
}
