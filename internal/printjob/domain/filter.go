package domain

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Filter is the fixed set of typed predicate clauses a job query may carry.
// A zero-valued clause applies no constraint; supplied clauses are conjoined.
// Everything is bound through placeholders, never spliced into SQL.
type Filter struct {
	// UserContains matches user_name by case-insensitive substring.
	UserContains string
	// PrinterContains matches printer_name by case-insensitive substring.
	PrinterContains string
	// From is the inclusive lower bound on print_time.
	From *time.Time
	// To is the inclusive upper bound on print_time.
	To *time.Time
	// TextSearch matches document_name OR user_name by case-insensitive
	// substring.
	TextSearch string
}

// Apply attaches the filter's clauses to a query. Usable as a GORM scope on
// both the page scan and the matching count so the two always agree.
func (f Filter) Apply(tx *gorm.DB) *gorm.DB {
	if v := strings.TrimSpace(f.UserContains); v != "" {
		tx = tx.Where("LOWER(user_name) LIKE ?", containsPattern(v))
	}
	if v := strings.TrimSpace(f.PrinterContains); v != "" {
		tx = tx.Where("LOWER(printer_name) LIKE ?", containsPattern(v))
	}
	if f.From != nil {
		tx = tx.Where("print_time >= ?", f.From.UTC())
	}
	if f.To != nil {
		tx = tx.Where("print_time <= ?", f.To.UTC())
	}
	if v := strings.TrimSpace(f.TextSearch); v != "" {
		pattern := containsPattern(v)
		tx = tx.Where("LOWER(document_name) LIKE ? OR LOWER(user_name) LIKE ?", pattern, pattern)
	}
	return tx
}

func containsPattern(value string) string {
	return "%" + strings.ToLower(value) + "%"
}
