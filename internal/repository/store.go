package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrInactive  = errors.New("record is inactive")
	ErrDuplicate = errors.New("duplicate value for unique column")
)

// Record is any entity carrying the soft-delete flag.
type Record interface {
	Active() bool
}

// Store is the data access contract shared by every catalog entity:
// create, list/get filtered to active records with a fixed eager include
// shape, partial update, soft delete, and the referential-activity probe
// used before writes that reference the entity.
type Store[T Record] interface {
	Create(ctx context.Context, record *T) error
	List(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id int) (*T, error)
	Update(ctx context.Context, id int, patch map[string]any) (*T, error)
	Deactivate(ctx context.Context, id int) error
	// AssertActive reports ErrNotFound or ErrInactive for ids that must not
	// be referenced. The check is not atomic with any subsequent write.
	AssertActive(ctx context.Context, id int) error
}

type gormStore[T Record] struct {
	db       *gorm.DB
	preloads []string
}

func newGormStore[T Record](db *gorm.DB, preloads ...string) *gormStore[T] {
	return &gormStore[T]{db: db, preloads: preloads}
}

func (s *gormStore[T]) withPreloads(tx *gorm.DB) *gorm.DB {
	for _, p := range s.preloads {
		tx = tx.Preload(p)
	}
	return tx
}

func (s *gormStore[T]) Create(ctx context.Context, record *T) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *gormStore[T]) List(ctx context.Context) ([]T, error) {
	records := []T{}
	err := s.withPreloads(s.db.WithContext(ctx)).
		Where("is_active = ?", true).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

func (s *gormStore[T]) FindByID(ctx context.Context, id int) (*T, error) {
	record := new(T)
	err := s.withPreloads(s.db.WithContext(ctx)).
		Where("is_active = ?", true).
		First(record, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return record, nil
}

func (s *gormStore[T]) Update(ctx context.Context, id int, patch map[string]any) (*T, error) {
	current := new(T)
	if err := s.db.WithContext(ctx).First(current, id).Error; err != nil {
		return nil, translate(err)
	}
	if !(*current).Active() {
		return nil, ErrInactive
	}

	if len(patch) > 0 {
		if err := s.db.WithContext(ctx).Model(current).Updates(patch).Error; err != nil {
			return nil, translate(err)
		}
	}

	return s.FindByID(ctx, id)
}

func (s *gormStore[T]) Deactivate(ctx context.Context, id int) error {
	result := s.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore[T]) AssertActive(ctx context.Context, id int) error {
	record := new(T)
	if err := s.db.WithContext(ctx).First(record, id).Error; err != nil {
		return translate(err)
	}
	if !(*record).Active() {
		return ErrInactive
	}
	return nil
}

// translate maps driver and ORM errors onto the package sentinels.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
