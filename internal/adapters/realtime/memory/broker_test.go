package memory

import (
	"context"
	"testing"
	"time"

	"clinic-frontdesk/internal/ports/realtime"

	"github.com/stretchr/testify/require"
)

func TestBroker_FiltersByTableAndEvent(t *testing.T) {
	b := NewBroker()
	ctx := context.Background()

	all, err := b.Subscribe(ctx, "registrations", realtime.EventAll)
	require.NoError(t, err)
	updates, err := b.Subscribe(ctx, "registrations", realtime.EventUpdate)
	require.NoError(t, err)

	require.NoError(t, b.Publish(ctx, realtime.Notification{EventType: realtime.EventInsert, Table: "registrations"}))
	require.NoError(t, b.Publish(ctx, realtime.Notification{EventType: realtime.EventUpdate, Table: "registrations"}))
	require.NoError(t, b.Publish(ctx, realtime.Notification{EventType: realtime.EventInsert, Table: "items"}))

	require.Equal(t, realtime.EventInsert, (<-all.C()).EventType)
	require.Equal(t, realtime.EventUpdate, (<-all.C()).EventType)
	require.Equal(t, realtime.EventUpdate, (<-updates.C()).EventType)

	select {
	case n := <-all.C():
		t.Fatalf("unexpected notification %+v", n)
	default:
	}
}

func TestBroker_CloseUnblocksPublish(t *testing.T) {
	b := &Broker{subs: map[*subscription]struct{}{}, buffer: 0}
	ctx := context.Background()

	s, err := b.Subscribe(ctx, "registrations", realtime.EventAll)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- b.Publish(ctx, realtime.Notification{EventType: realtime.EventInsert, Table: "registrations"})
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("publish still blocked after close")
	}

	_, open := <-s.C()
	require.False(t, open)
}
