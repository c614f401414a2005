// Package redis implements notify.Recorder on Redis. Records are stored as
// Hashes, with Sets indexing all record ids and the ids per incidence.
//
// Usage:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	s := redisstore.New(client)
//	d, err := notify.New(plugin, notify.WithRecorder(s))
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/raquelt/notify"
	"github.com/raquelt/notify/event"
	"github.com/raquelt/notify/id"
)

// Compile-time interface check.
var _ notify.Recorder = (*Store)(nil)

// Option configures the Store.
type Option func(*Store)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Store implements notify.Recorder backed by Redis.
type Store struct {
	client goredis.Cmdable
	logger *slog.Logger
}

// New creates a new Redis-backed history store. The caller owns the Redis
// client lifecycle.
func New(client goredis.Cmdable, opts ...Option) *Store {
	s := &Store{client: client, logger: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Client returns the underlying Redis client.
func (s *Store) Client() goredis.Cmdable { return s.client }

// Ping verifies the Redis connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Record implements notify.Recorder. The record hash and both index sets
// are written in one transactional pipeline.
func (s *Store) Record(ctx context.Context, rec *notify.Record) error {
	rID := rec.ID.String()

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, recordKey(rID), recordToMap(rec))
	pipe.SAdd(ctx, recordIDsKey, rID)
	pipe.SAdd(ctx, incidenceKey(rec.IncidenceID), rID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("notify/redis: record: %w", err)
	}
	return nil
}

// Get returns one record by id, or notify.ErrRecordNotFound.
func (s *Store) Get(ctx context.Context, recordID id.ID) (*notify.Record, error) {
	vals, err := s.client.HGetAll(ctx, recordKey(recordID.String())).Result()
	if err != nil {
		return nil, fmt.Errorf("notify/redis: get record: %w", err)
	}
	if len(vals) == 0 {
		return nil, notify.ErrRecordNotFound
	}
	return mapToRecord(vals)
}

// ListByIncidence returns all records for one incidence ordered by
// recording time.
func (s *Store) ListByIncidence(ctx context.Context, incidenceID string) ([]*notify.Record, error) {
	ids, err := s.client.SMembers(ctx, incidenceKey(incidenceID)).Result()
	if err != nil {
		return nil, fmt.Errorf("notify/redis: list incidence ids: %w", err)
	}

	records := make([]*notify.Record, 0, len(ids))
	for _, rID := range ids {
		vals, getErr := s.client.HGetAll(ctx, recordKey(rID)).Result()
		if getErr != nil || len(vals) == 0 {
			continue
		}
		rec, convErr := mapToRecord(vals)
		if convErr != nil {
			s.logger.Warn("skipping malformed history record",
				slog.String("record_id", rID),
				slog.String("error", convErr.Error()),
			)
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].RecordedAt.Before(records[j].RecordedAt)
	})
	return records, nil
}

// recordToMap flattens a record into the field map stored in the Hash.
func recordToMap(rec *notify.Record) map[string]any {
	return map[string]any{
		"id":           rec.ID.String(),
		"incidence_id": rec.IncidenceID,
		"system_code":  rec.SystemCode,
		"event_kind":   string(rec.EventKind),
		"status":       string(rec.Status),
		"skip":         string(rec.Skip),
		"fault":        string(rec.Fault),
		"detail":       rec.Detail,
		"recorded_at":  rec.RecordedAt.UTC().Format(time.RFC3339Nano),
	}
}

// mapToRecord rebuilds a record from its Hash field map.
func mapToRecord(vals map[string]string) (*notify.Record, error) {
	rID, err := id.ParseRecordID(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("parse record id: %w", err)
	}

	recordedAt, err := time.Parse(time.RFC3339Nano, vals["recorded_at"])
	if err != nil {
		return nil, fmt.Errorf("parse recorded_at: %w", err)
	}

	return &notify.Record{
		ID:          rID,
		IncidenceID: vals["incidence_id"],
		SystemCode:  vals["system_code"],
		EventKind:   event.Kind(vals["event_kind"]),
		Status:      notify.Status(vals["status"]),
		Skip:        notify.SkipCause(vals["skip"]),
		Fault:       notify.FaultKind(vals["fault"]),
		Detail:      vals["detail"],
		RecordedAt:  recordedAt,
	}, nil
}
