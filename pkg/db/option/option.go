// Package option defines composable query options for the generic repository.
package option

import (
	"gorm.io/gorm"

	"github.com/kmurdhar/PrinterManagementSystem/pkg/db/pagination"
)

// QueryOption mutates a GORM query before execution.
type QueryOption func(tx *gorm.DB) *gorm.DB

// ApplyPagination applies limit/offset from a normalized pagination request.
func ApplyPagination(p pagination.Pagination) QueryOption {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Limit(p.Limit).Offset(p.Offset())
	}
}

// WithOrder appends an ORDER BY expression. Callers pass literal column
// expressions only; user input never reaches this option.
func WithOrder(expr string) QueryOption {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Order(expr)
	}
}

// WithScope applies an arbitrary scope, typically a filter's Apply method.
func WithScope(scope func(tx *gorm.DB) *gorm.DB) QueryOption {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Scopes(scope)
	}
}
