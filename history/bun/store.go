package bunstore

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/raquelt/notify"
	"github.com/raquelt/notify/event"
	"github.com/raquelt/notify/id"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Compile-time interface check.
var _ notify.Recorder = (*Store)(nil)

// Store is a Bun ORM implementation of notify.Recorder using PostgreSQL
// dialect. The caller owns the *bun.DB lifecycle; Store never closes it.
type Store struct {
	db     *bun.DB
	logger *slog.Logger
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New creates a new Bun history store. The caller owns the db lifecycle —
// the Store will not close it.
func New(db *bun.DB, opts ...Option) *Store {
	s := &Store{db: db, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DB returns the underlying *bun.DB for advanced usage.
func (s *Store) DB() *bun.DB { return s.db }

// Migrate runs all embedded SQL migration files in order.
func (s *Store) Migrate(ctx context.Context) error {
	// Create migrations tracking table.
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS notify_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("notify/bun: create migrations table: %w", err)
	}

	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("notify/bun: read migrations: %w", err)
	}

	// Sort by filename for deterministic order.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		var applied bool
		err = s.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM notify_migrations WHERE filename = ?)`,
			entry.Name(),
		).Scan(&applied)
		if err != nil {
			return fmt.Errorf("notify/bun: check migration %s: %w", entry.Name(), err)
		}
		if applied {
			continue
		}

		data, readErr := fs.ReadFile(migrationsFS, "migrations/"+entry.Name())
		if readErr != nil {
			return fmt.Errorf("notify/bun: read migration %s: %w", entry.Name(), readErr)
		}

		if _, execErr := s.db.ExecContext(ctx, string(data)); execErr != nil {
			return fmt.Errorf("notify/bun: execute migration %s: %w", entry.Name(), execErr)
		}

		if _, recErr := s.db.ExecContext(ctx,
			`INSERT INTO notify_migrations (filename) VALUES (?)`,
			entry.Name(),
		); recErr != nil {
			return fmt.Errorf("notify/bun: record migration %s: %w", entry.Name(), recErr)
		}

		s.logger.Info("applied migration", "file", entry.Name())
	}

	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Record implements notify.Recorder.
func (s *Store) Record(ctx context.Context, rec *notify.Record) error {
	m := toRecordModel(rec)
	_, err := s.db.NewInsert().Model(m).Exec(ctx)
	if err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("notify/bun: record %s already exists: %w", rec.ID, err)
		}
		return fmt.Errorf("notify/bun: record: %w", err)
	}
	return nil
}

// Get returns one record by id, or notify.ErrRecordNotFound.
func (s *Store) Get(ctx context.Context, recordID id.ID) (*notify.Record, error) {
	m := new(recordModel)
	err := s.db.NewSelect().Model(m).Where("id = ?", recordID.String()).Scan(ctx)
	if isNoRows(err) {
		return nil, notify.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("notify/bun: get record: %w", err)
	}
	return fromRecordModel(m)
}

// ListByIncidence returns all records for one incidence ordered by
// recording time.
func (s *Store) ListByIncidence(ctx context.Context, incidenceID string) ([]*notify.Record, error) {
	var models []recordModel
	err := s.db.NewSelect().
		Model(&models).
		Where("incidence_id = ?", incidenceID).
		Order("recorded_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("notify/bun: list history: %w", err)
	}

	records := make([]*notify.Record, 0, len(models))
	for i := range models {
		rec, convErr := fromRecordModel(&models[i])
		if convErr != nil {
			return nil, fmt.Errorf("notify/bun: list history convert: %w", convErr)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ── model ─────────────────────────────────────────────────────────

type recordModel struct {
	bun.BaseModel `bun:"table:notify_history"`

	ID          string    `bun:"id,pk"`
	IncidenceID string    `bun:"incidence_id,notnull"`
	SystemCode  string    `bun:"system_code,notnull"`
	EventKind   string    `bun:"event_kind,notnull"`
	Status      string    `bun:"status,notnull"`
	Skip        string    `bun:"skip_cause"`
	Fault       string    `bun:"fault"`
	Detail      string    `bun:"detail"`
	RecordedAt  time.Time `bun:"recorded_at,notnull"`
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
