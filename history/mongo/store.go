// Package mongo implements notify.Recorder on MongoDB. Records live in the
// notify_history collection, indexed by incidence id and recording time.
//
// Usage:
//
//	client, err := mongod.Connect(options.Client().ApplyURI(uri))
//	s := mongostore.New(client.Database("ops"))
//	if err := s.Migrate(ctx); err != nil { ... }
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/raquelt/notify"
	"github.com/raquelt/notify/event"
	"github.com/raquelt/notify/id"
)

// colHistory is the collection holding notification history records.
const colHistory = "notify_history"

// Compile-time interface check.
var _ notify.Recorder = (*Store)(nil)

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Store implements notify.Recorder backed by MongoDB. The caller owns the
// client lifecycle; Store never disconnects it.
type Store struct {
	db     *mongod.Database
	logger *slog.Logger
}

// New creates a new MongoDB history store on the given database.
func New(db *mongod.Database, opts ...Option) *Store {
	s := &Store{db: db, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Migrate creates the indexes the history collection is queried through.
func (s *Store) Migrate(ctx context.Context) error {
	models := []mongod.IndexModel{
		{Keys: bson.D{{Key: "incidence_id", Value: 1}, {Key: "recorded_at", Value: 1}}},
		{Keys: bson.D{{Key: "recorded_at", Value: 1}}},
	}

	if _, err := s.db.Collection(colHistory).Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("notify/mongo: migrate %s indexes: %w", colHistory, err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

// Record implements notify.Recorder.
func (s *Store) Record(ctx context.Context, rec *notify.Record) error {
	if _, err := s.db.Collection(colHistory).InsertOne(ctx, toRecordModel(rec)); err != nil {
		return fmt.Errorf("notify/mongo: record: %w", err)
	}
	return nil
}

// Get returns one record by id, or notify.ErrRecordNotFound.
func (s *Store) Get(ctx context.Context, recordID id.ID) (*notify.Record, error) {
	var m recordModel
	err := s.db.Collection(colHistory).
		FindOne(ctx, bson.M{"_id": recordID.String()}).
		Decode(&m)
	if isNoDocuments(err) {
		return nil, notify.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("notify/mongo: get record: %w", err)
	}
	return fromRecordModel(&m)
}

// ListByIncidence returns all records for one incidence ordered by
// recording time.
func (s *Store) ListByIncidence(ctx context.Context, incidenceID string) ([]*notify.Record, error) {
	col := s.db.Collection(colHistory)
	filter := bson.M{"incidence_id": incidenceID}
	findOpts := options.Find().SetSort(bson.D{{Key: "recorded_at", Value: 1}})

	cursor, err := col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("notify/mongo: list history: %w", err)
	}
	defer cursor.Close(ctx)

	var models []recordModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("notify/mongo: list history decode: %w", err)
	}

	records := make([]*notify.Record, 0, len(models))
	for i := range models {
		rec, convErr := fromRecordModel(&models[i])
		if convErr != nil {
			return nil, fmt.Errorf("notify/mongo: list history convert: %w", convErr)
		}
		records = append(records, rec)
	}
	return records, nil
}

// isNoDocuments returns true when err indicates no MongoDB documents found.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongod.ErrNoDocuments)
}

// ── model ─────────────────────────────────────────────────────────

type recordModel struct {
	ID          string    `bson:"_id"`
	IncidenceID string    `bson:"incidence_id"`
	SystemCode  string    `bson:"system_code"`
	EventKind   string    `bson:"event_kind"`
	Status      string    `bson:"status"`
	Skip        string    `bson:"skip,omitempty"`
	Fault       string    `bson:"fault,omitempty"`
	Detail      string    `bson:"detail,omitempty"`
	RecordedAt  time.Time `bson:"recorded_at"`
}

func toRecordModel(rec *notify.Record) *recordModel {
	return &recordModel{
		ID:          rec.ID.String(),
		IncidenceID: rec.IncidenceID,
		SystemCode:  rec.SystemCode,
		EventKind:   string(rec.EventKind),
		Status:      string(rec.Status),
		Skip:        string(rec.Skip),
		Fault:       string(rec.Fault),
		Detail:      rec.Detail,
		RecordedAt:  rec.RecordedAt.UTC(),
	}
}

func fromRecordModel(m *recordModel) (*notify.Record, error) {
	rID, err := id.ParseRecordID(m.ID)
	if err != nil {
		return nil, fmt.Errorf("parse record id %q: %w", m.ID, err)
	}

	return &notify.Record{
		ID:          rID,
		IncidenceID: m.IncidenceID,
		SystemCode:  m.SystemCode,
		EventKind:   event.Kind(m.EventKind),
		Status:      notify.Status(m.Status),
		Skip:        notify.SkipCause(m.Skip),
		Fault:       notify.FaultKind(m.Fault),
		Detail:      m.Detail,
		RecordedAt:  m.RecordedAt,
	}, nil
}
