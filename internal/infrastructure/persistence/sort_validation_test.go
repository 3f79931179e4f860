package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"asc", "ASC"},
		{"ASC", "ASC"},
		{" Asc ", "ASC"},
		{"desc", "DESC"},
		{"DESC", "DESC"},
		{"", "DESC"},
		{"sideways", "DESC"},
		{"asc; DROP TABLE pos_profiles", "DESC"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ValidateSortOrder(tt.input), "input=%q", tt.input)
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		allowed  map[string]bool
		expected string
	}{
		{"allowed field", "name", ProfileSortFields, "name"},
		{"empty falls back", "", ProfileSortFields, "created_at"},
		{"unknown falls back", "secret_column", ProfileSortFields, "created_at"},
		{"injection falls back", "name; DELETE FROM pos_profiles", ProfileSortFields, "created_at"},
		{"shift period field", "period_start_at", OpeningShiftSortFields, "created_at"},
		{"closing posting date", "posting_date", ClosingShiftSortFields, "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, tt.allowed, "created_at"))
		})
	}
}
