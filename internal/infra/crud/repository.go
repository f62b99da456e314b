// Package crud is the plain record management used by the admin surface:
// one gorm repository shared by every reference entity.
package crud

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrInUse     = errors.New("record is referenced by other records")
	ErrDuplicate = errors.New("record already exists")
)

// SQLSTATE
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
)

// Columns a client never writes on update.
var immutableColumns = []string{"id", "public_id", "created_at"}

type Repository[T any] struct {
	db    *gorm.DB
	order string
}

func New[T any](db *gorm.DB, order string) *Repository[T] {
	if order == "" {
		order = "id ASC"
	}
	return &Repository[T]{db: db, order: order}
}

// Translate maps gorm and postgres errors to the package sentinels.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeForeignKeyViolation:
			return ErrInUse
		case codeUniqueViolation:
			return ErrDuplicate
		}
	}
	return err
}

func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.db.WithContext(ctx).Order(r.order).Find(&out).Error; err != nil {
		return nil, Translate(err)
	}
	return out, nil
}

func (r *Repository[T]) Get(ctx context.Context, id uint) (*T, error) {
	var out T
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, Translate(err)
	}
	return &out, nil
}

func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	return Translate(
		r.db.WithContext(ctx).
			Omit(clause.Associations).
			Create(entity).Error,
	)
}

// Update writes every column of entity, zero values included, except the
// identity columns.
func (r *Repository[T]) Update(ctx context.Context, id uint, entity *T) error {
	res := r.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Select("*").
		Omit(append(immutableColumns, clause.Associations)...).
		Updates(entity)
	if res.Error != nil {
		return Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository[T]) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
