package authclient

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// ClientState is a persisted key/value entry in the durable tier.
type ClientState struct {
	bun.BaseModel `bun:"table:client_state,alias:cst"`
	Key           string    `bun:"key,pk" json:"key"`
	Value         string    `bun:"value,notnull" json:"value"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// BunStorage is the durable tier, backed by a sqlite database through
// bun. It survives process restarts, the analog of storage that
// outlives the tab.
type BunStorage struct {
	db *bun.DB
}

var _ KeyValueStore = (*BunStorage)(nil)

// NewBunStorage wraps an existing bun.DB. Call Init before first use to
// ensure the backing table exists.
func NewBunStorage(db *bun.DB) *BunStorage {
	return &BunStorage{db: db}
}

// OpenBunStorage opens the sqlite database at dsn and returns an
// initialized storage.
func OpenBunStorage(ctx context.Context, dsn string) (*BunStorage, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "unable to open storage database").
			WithMetadata(map[string]any{"dsn": dsn})
	}

	storage := NewBunStorage(bun.NewDB(sqldb, sqlitedialect.New()))
	if err := storage.Init(ctx); err != nil {
		return nil, err
	}

	return storage, nil
}

// Init creates the backing table when missing.
func (s *BunStorage) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*ClientState)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "unable to initialize storage table")
	}
	return nil
}

// DB exposes the underlying bun handle for callers that manage its
// lifecycle.
func (s *BunStorage) DB() *bun.DB {
	return s.db
}

func (s *BunStorage) Get(ctx context.Context, key string) (string, bool, error) {
	record := &ClientState{}

	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.key = ?", key).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, errors.CategoryInternal, "unable to read storage key").
			WithMetadata(map[string]any{"key": key})
	}

	return record.Value, true, nil
}

func (s *BunStorage) Set(ctx context.Context, key, value string) error {
	record := &ClientState{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	_, err := s.db.NewInsert().
		Model(record).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "unable to write storage key").
			WithMetadata(map[string]any{"key": key})
	}

	return nil
}

func (s *BunStorage) Remove(ctx context.Context, key string) error {
	_, err := s.db.NewDelete().
		Model((*ClientState)(nil)).
		Where("?TableAlias.key = ?", key).
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "unable to remove storage key").
			WithMetadata(map[string]any{"key": key})
	}

	return nil
}
