package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 14, hour, min, 0, 0, time.UTC)
}

func TestCheckWindow_Disabled(t *testing.T) {
	decision := CheckWindow(WindowConfig{Enabled: false, Start: "08:00", End: "17:00"}, at(3, 0))
	assert.True(t, decision.Allowed)
}

func TestCheckWindow_SameDay(t *testing.T) {
	cfg := WindowConfig{Enabled: true, Start: "08:00:00", End: "17:00:00"}

	tests := []struct {
		name    string
		ref     time.Time
		allowed bool
	}{
		{"before start", at(7, 59), false},
		{"at start", at(8, 0), true},
		{"midday", at(12, 30), true},
		{"at end", at(17, 0), true},
		{"after end", at(17, 1), false},
		{"late night", at(23, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CheckWindow(cfg, tt.ref).Allowed)
		})
	}
}

func TestCheckWindow_SpansMidnight(t *testing.T) {
	cfg := WindowConfig{Enabled: true, Start: "22:00", End: "02:00"}

	tests := []struct {
		name    string
		ref     time.Time
		allowed bool
	}{
		{"before window", at(10, 0), false},
		{"at start", at(22, 0), true},
		{"before midnight", at(23, 30), true},
		{"after midnight", at(1, 0), true},
		{"at end", at(2, 0), true},
		{"just after end", at(2, 1), false},
		{"evening before start", at(21, 59), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CheckWindow(cfg, tt.ref).Allowed)
		})
	}
}

func TestCheckWindow_FailsOpen(t *testing.T) {
	tests := []struct {
		name string
		cfg  WindowConfig
	}{
		{"empty start", WindowConfig{Enabled: true, Start: "", End: "17:00"}},
		{"empty end", WindowConfig{Enabled: true, Start: "08:00", End: ""}},
		{"garbage start", WindowConfig{Enabled: true, Start: "not-a-time", End: "17:00"}},
		{"garbage end", WindowConfig{Enabled: true, Start: "08:00", End: "25:99"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := CheckWindow(tt.cfg, at(3, 0))
			assert.True(t, decision.Allowed)
			assert.NotEmpty(t, decision.Reason)
		})
	}
}

func TestCheckWindow_AcceptsSecondsAndMicroseconds(t *testing.T) {
	cfg := WindowConfig{Enabled: true, Start: "08:00:00.000000", End: "17:30:45"}
	assert.True(t, CheckWindow(cfg, at(9, 0)).Allowed)
	assert.False(t, CheckWindow(cfg, at(18, 0)).Allowed)
}
