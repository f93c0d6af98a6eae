package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Cracken-1/pandamart-notifications/internal/domain"
)

// Store is a redis-backed inbox. Per recipient it keeps a hash of record
// JSON keyed by notification id, a sorted set indexing ids by created-at for
// newest-first pagination, and a set of unread ids.
type Store struct {
	rdb *redis.Client
}

func NewStore(ctx context.Context, addr, password string, db int) (*Store, error) {
	rdb := rdbClient(addr, password, db)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Store{rdb: rdb}, nil
}

func rdbClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

func itemsKey(recipientID string) string  { return "inbox:items:" + recipientID }
func indexKey(recipientID string) string  { return "inbox:index:" + recipientID }
func unreadKey(recipientID string) string { return "inbox:unread:" + recipientID }

func (s *Store) Append(ctx context.Context, rec domain.InboxNotification) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal inbox record: %w", err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, itemsKey(rec.RecipientID), rec.ID, data)
	pipe.ZAdd(ctx, indexKey(rec.RecipientID), redis.Z{
		Score:  float64(rec.CreatedAt.UnixNano()),
		Member: rec.ID,
	})
	pipe.SAdd(ctx, unreadKey(rec.RecipientID), rec.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append inbox record: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, recipientID string, limit, offset int) ([]domain.InboxNotification, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	ids, err := s.rdb.ZRevRange(ctx, indexKey(recipientID), int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list inbox index: %w", err)
	}
	if len(ids) == 0 {
		return []domain.InboxNotification{}, nil
	}

	raw, err := s.rdb.HMGet(ctx, itemsKey(recipientID), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch inbox records: %w", err)
	}

	records := make([]domain.InboxNotification, 0, len(raw))
	for _, v := range raw {
		str, ok := v.(string)
		if !ok {
			// Index entry without a backing record; skip rather than fail the page.
			continue
		}
		var rec domain.InboxNotification
		if err := json.Unmarshal([]byte(str), &rec); err != nil {
			return nil, fmt.Errorf("unmarshal inbox record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *Store) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	raw, err := s.rdb.HGet(ctx, itemsKey(recipientID), notificationID).Result()
	if err == redis.Nil {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("fetch inbox record: %w", err)
	}

	var rec domain.InboxNotification
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return fmt.Errorf("unmarshal inbox record: %w", err)
	}
	if rec.Read {
		return nil
	}
	rec.Read = true

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal inbox record: %w", err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, itemsKey(recipientID), notificationID, data)
	pipe.SRem(ctx, unreadKey(recipientID), notificationID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("mark inbox record read: %w", err)
	}
	return nil
}

func (s *Store) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	count, err := s.rdb.SCard(ctx, unreadKey(recipientID)).Result()
	if err != nil {
		return 0, fmt.Errorf("count unread inbox records: %w", err)
	}
	return count, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}
