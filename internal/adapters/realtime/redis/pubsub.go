package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"clinic-frontdesk/internal/platform/logger"
	"clinic-frontdesk/internal/ports/realtime"

	goredis "github.com/redis/go-redis/v9"
)

// PubSub implementa realtime.Publisher y realtime.Subscriber sobre Redis pub/sub.
// Un canal por tabla: "<prefix>:<table>". El filtro por evento se hace del lado del suscriptor.
type PubSub struct {
	client *goredis.Client
	prefix string
	log    logger.Logger
}

func New(client *goredis.Client, prefix string, log logger.Logger) *PubSub {
	if log == nil {
		log = logger.Nop()
	}
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = "realtime"
	}
	return &PubSub{client: client, prefix: prefix, log: log}
}

// Open parsea REDIS_URL y verifica la conexión.
func Open(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	c := goredis.NewClient(opts)
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return c, nil
}

func (p *PubSub) Channel(table string) string {
	return p.prefix + ":" + table
}

func (p *PubSub) Publish(ctx context.Context, n realtime.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.Channel(n.Table), payload).Err()
}

func (p *PubSub) Subscribe(ctx context.Context, table string, event realtime.EventType) (realtime.Subscription, error) {
	ps := p.client.Subscribe(ctx, p.Channel(table))
	// Esperar la confirmación para no perder mensajes publicados justo después.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("redis subscribe %s: %w", p.Channel(table), err)
	}

	s := &subscription{
		ps:   ps,
		out:  make(chan realtime.Notification, 64),
		done: make(chan struct{}),
	}
	go s.pump(ps.Channel(), table, event, p.log)
	return s, nil
}

type subscription struct {
	ps   *goredis.PubSub
	out  chan realtime.Notification
	done chan struct{}
	once sync.Once
}

func (s *subscription) pump(in <-chan *goredis.Message, table string, event realtime.EventType, log logger.Logger) {
	defer close(s.out)
	for msg := range in {
		var n realtime.Notification
		if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
			log.Warn("realtime: bad payload", map[string]any{"error": err, "channel": msg.Channel})
			continue
		}
		if !realtime.Matches(n, table, event) {
			continue
		}
		select {
		case s.out <- n:
		case <-s.done:
			return
		}
	}
}

func (s *subscription) C() <-chan realtime.Notification { return s.out }

func (s *subscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.ps.Close()
	})
	return err
}
