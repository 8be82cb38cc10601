package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/inkwellhq/resumepress/internal/resume"
)

type kvModel struct {
	bun.BaseModel `bun:"table:settings"`

	Key       string    `bun:"key,pk"`
	Value     string    `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// BunStore persists state in a single SQLite key-value table.
type BunStore struct {
	db     *bun.DB
	logger *log.Logger
	now    func() time.Time
}

// OpenBunStore opens (or creates) the SQLite database at path and ensures the
// settings table exists.
func OpenBunStore(ctx context.Context, path string, logger *log.Logger) (*BunStore, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, err
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())

	store := &BunStore{db: db, logger: logger, now: time.Now}
	if _, err := db.NewCreateTable().Model((*kvModel)(nil)).IfNotExists().Exec(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// NewBunStore wraps an existing bun DB. The settings table must exist.
func NewBunStore(db *bun.DB, logger *log.Logger) *BunStore {
	return &BunStore{db: db, logger: logger, now: time.Now}
}

// Close releases the underlying database handle.
func (s *BunStore) Close() error {
	return s.db.Close()
}

func (s *BunStore) get(ctx context.Context, key string) (string, bool, error) {
	var model kvModel
	err := s.db.NewSelect().Model(&model).Where("key = ?", key).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return model.Value, true, nil
}

func (s *BunStore) set(ctx context.Context, key, value string) error {
	model := kvModel{Key: key, Value: value, UpdatedAt: s.now()}
	_, err := s.db.NewInsert().Model(&model).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

// SaveResume stores the resume content.
func (s *BunStore) SaveResume(ctx context.Context, data resume.Data) error {
	raw, err := encodeJSON(data)
	if err != nil {
		return err
	}
	return s.set(ctx, keyResumeData, raw)
}

// LoadResume returns the stored resume, or absent. Read and parse failures
// are logged and reported as absent.
func (s *BunStore) LoadResume(ctx context.Context) (resume.Data, bool, error) {
	raw, ok, err := s.get(ctx, keyResumeData)
	if err != nil {
		s.logger.Warn("resume load failed", "err", err)
		return resume.Data{}, false, nil
	}
	if !ok {
		return resume.Data{}, false, nil
	}
	var data resume.Data
	if !decodeJSON(s.logger, keyResumeData, raw, &data) {
		return resume.Data{}, false, nil
	}
	return data, true, nil
}

// SaveCustomization stores the customization record.
func (s *BunStore) SaveCustomization(ctx context.Context, c resume.Customization) error {
	raw, err := encodeJSON(c)
	if err != nil {
		return err
	}
	return s.set(ctx, keyCustomization, raw)
}

// LoadCustomization returns the stored customization, or absent.
func (s *BunStore) LoadCustomization(ctx context.Context) (resume.Customization, bool, error) {
	raw, ok, err := s.get(ctx, keyCustomization)
	if err != nil {
		s.logger.Warn("customization load failed", "err", err)
		return resume.Customization{}, false, nil
	}
	if !ok {
		return resume.Customization{}, false, nil
	}
	var c resume.Customization
	if !decodeJSON(s.logger, keyCustomization, raw, &c) {
		return resume.Customization{}, false, nil
	}
	return c, true, nil
}

// MarkPaymentCompleted records the payment sentinel.
func (s *BunStore) MarkPaymentCompleted(ctx context.Context) error {
	return s.set(ctx, keyPayment, paymentSentinel)
}

// PaymentCompleted reports whether the sentinel is present. Read failures are
// treated as not paid.
func (s *BunStore) PaymentCompleted(ctx context.Context) (bool, error) {
	raw, ok, err := s.get(ctx, keyPayment)
	if err != nil {
		s.logger.Warn("payment flag load failed", "err", err)
		return false, nil
	}
	return ok && raw == paymentSentinel, nil
}

// ClearPayment removes the sentinel.
func (s *BunStore) ClearPayment(ctx context.Context) error {
	_, err := s.db.NewDelete().Model((*kvModel)(nil)).Where("key = ?", keyPayment).Exec(ctx)
	return err
}
