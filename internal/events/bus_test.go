package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func receive[T any](t *testing.T, c <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-c:
		require.True(t, ok, "channel closed unexpectedly")
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	var zero T
	return zero
}

func TestBus_DeliversInPublishOrder(t *testing.T) {
	bus := NewBus[int]()
	defer bus.Close()

	sub := bus.Subscribe()
	for i := 0; i < 100; i++ {
		bus.Publish(i)
	}
	for i := 0; i < 100; i++ {
		require.Equal(t, i, receive(t, sub.C))
	}
}

func TestBus_PublishDoesNotBlockOnSlowSubscriber(t *testing.T) {
	bus := NewBus[string]()
	defer bus.Close()

	slow := bus.Subscribe()
	fast := bus.Subscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			bus.Publish("x")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher blocked")
	}
	require.Equal(t, "x", receive(t, fast.C))
	require.Equal(t, "x", receive(t, slow.C))
}

func TestSubscription_CloseStopsDelivery(t *testing.T) {
	bus := NewBus[int]()
	defer bus.Close()

	sub := bus.Subscribe()
	require.Equal(t, 1, bus.Len())
	bus.Publish(1)
	sub.Close()
	sub.Close()
	require.Equal(t, 0, bus.Len())

	bus.Publish(2)
	for range sub.C {
		// drain anything that was in flight before Close
	}
}

func TestBus_SubscribeAfterClose(t *testing.T) {
	bus := NewBus[int]()
	bus.Close()

	sub := bus.Subscribe()
	_, ok := <-sub.C
	require.False(t, ok)
	sub.Close()
}
