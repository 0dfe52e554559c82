package redis

import (
	"context"
	"testing"
	"time"

	"clinic-frontdesk/internal/ports/realtime"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestPubSub(t *testing.T) *PubSub {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, "realtime:public:", nil)
}

func recv(t *testing.T, s realtime.Subscription) realtime.Notification {
	t.Helper()
	select {
	case n, ok := <-s.C():
		require.True(t, ok, "subscription closed")
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for notification")
	}
	return realtime.Notification{}
}

func TestPubSub_RoundTripWithEventFilter(t *testing.T) {
	p := newTestPubSub(t)
	ctx := context.Background()
	require.Equal(t, "realtime:public:registrations", p.Channel("registrations"))

	sub, err := p.Subscribe(ctx, "registrations", realtime.EventUpdate)
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, p.Publish(ctx, realtime.Notification{EventType: realtime.EventInsert, Table: "registrations", New: []byte(`{"car_number":"1"}`)}))
	require.NoError(t, p.Publish(ctx, realtime.Notification{EventType: realtime.EventUpdate, Table: "registrations", New: []byte(`{"car_number":"2"}`)}))

	n := recv(t, sub)
	require.Equal(t, realtime.EventUpdate, n.EventType)
	require.JSONEq(t, `{"car_number":"2"}`, string(n.New))
}

func TestPubSub_CloseEndsChannel(t *testing.T) {
	p := newTestPubSub(t)
	ctx := context.Background()

	sub, err := p.Subscribe(ctx, "registrations", realtime.EventAll)
	require.NoError(t, err)
	require.NoError(t, sub.Close())

	select {
	case _, ok := <-sub.C():
		require.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed")
	}
}
