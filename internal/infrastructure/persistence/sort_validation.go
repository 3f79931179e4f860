package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort direction to ASC or DESC.
// Returns "DESC" if the input is empty or invalid.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField checks the sort field against a whitelist of column names.
// Returns the defaultField if the input is empty or not in the whitelist.
// User-supplied sort fields are interpolated into ORDER BY, so everything
// that reaches the query must pass through here.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ProfileSortFields contains allowed sort fields for POS profiles.
var ProfileSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"company_name": true,
	"disabled":     true,
}

// OpeningShiftSortFields contains allowed sort fields for opening shifts.
var OpeningShiftSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"status":          true,
	"user_id":         true,
	"period_start_at": true,
	"period_end_at":   true,
}

// ClosingShiftSortFields contains allowed sort fields for closing shifts.
var ClosingShiftSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"status":          true,
	"user_id":         true,
	"period_start_at": true,
	"period_end_at":   true,
	"posting_date":    true,
}
