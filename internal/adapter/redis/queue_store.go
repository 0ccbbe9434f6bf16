package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/pscheid92/huella/internal/delivery"
	"github.com/pscheid92/huella/internal/domain"
	goredis "github.com/redis/go-redis/v9"
)

const DefaultQueueKey = "huellaIA_dataQueue"

// QueueStore keeps the whole delivery queue as one JSON string under a single key.
type QueueStore struct {
	rdb *goredis.Client
	key string
}

func NewQueueStore(rdb *goredis.Client, key string) *QueueStore {
	if key == "" {
		key = DefaultQueueKey
	}
	return &QueueStore{rdb: rdb, key: key}
}

func (s *QueueStore) Load(ctx context.Context) ([]domain.QueueItem, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read queue slot %s: %w", s.key, err)
	}
	return delivery.DecodeSlot(data)
}

func (s *QueueStore) Save(ctx context.Context, items []domain.QueueItem) error {
	data, err := delivery.EncodeSlot(items)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write queue slot %s: %w", s.key, err)
	}
	return nil
}
