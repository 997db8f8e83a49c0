// Package repository provides a small generic persistence layer over GORM.
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kmurdhar/PrinterManagementSystem/pkg/db/option"
)

// Repository exposes the store operations the domain services need: atomic
// single-row insert, filtered scan, and a count over the same filter set.
type Repository[T any] interface {
	Create(ctx context.Context, record *T) error
	Find(ctx context.Context, opts ...option.QueryOption) ([]*T, error)
	Count(ctx context.Context, opts ...option.QueryOption) (int64, error)
}

type store[T any] struct {
	db *gorm.DB
}

// ProvideStore builds a Repository bound to the shared database handle.
func ProvideStore[T any](db *gorm.DB) Repository[T] {
	return &store[T]{db: db}
}

func (s *store[T]) Create(ctx context.Context, record *T) error {
	return s.db.WithContext(ctx).Create(record).Error
}

func (s *store[T]) Find(ctx context.Context, opts ...option.QueryOption) ([]*T, error) {
	var records []*T
	tx := s.db.WithContext(ctx).Model(new(T))
	for _, opt := range opts {
		tx = opt(tx)
	}
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *store[T]) Count(ctx context.Context, opts ...option.QueryOption) (int64, error) {
	var total int64
	tx := s.db.WithContext(ctx).Model(new(T))
	for _, opt := range opts {
		tx = opt(tx)
	}
	if err := tx.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
