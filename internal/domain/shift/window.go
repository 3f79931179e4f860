package shift

import (
	"fmt"
	"time"
)

// WindowConfig describes a time-of-day window restricting a shift action.
// Start and End are time-of-day strings; either may be empty or malformed,
// in which case the gate fails open.
type WindowConfig struct {
	Enabled bool
	Start   string
	End     string
}

// WindowDecision is the outcome of a window check
type WindowDecision struct {
	Allowed bool
	Reason  string
}

// Accepted time-of-day layouts, tried in order
var timeOfDayLayouts = []string{"15:04:05.999999", "15:04:05", "15:04"}

func parseTimeOfDay(s string) (time.Duration, error) {
	for _, layout := range timeOfDayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second +
				time.Duration(t.Nanosecond()), nil
		}
	}
	return 0, fmt.Errorf("unrecognized time of day %q", s)
}

// CheckWindow decides whether a shift action is permitted at the reference
// time. A disabled, unset, or unparseable window admits everything: a
// misconfigured gate must never block an otherwise-valid shift action.
// When the start bound is later than the end bound the window spans
// midnight. Both bounds are inclusive.
func CheckWindow(cfg WindowConfig, ref time.Time) WindowDecision {
	if !cfg.Enabled {
		return WindowDecision{Allowed: true, Reason: "window check disabled"}
	}
	if cfg.Start == "" || cfg.End == "" {
		return WindowDecision{Allowed: true, Reason: "window bounds not configured"}
	}

	start, err := parseTimeOfDay(cfg.Start)
	if err != nil {
		return WindowDecision{Allowed: true, Reason: fmt.Sprintf("invalid window start: %v", err)}
	}
	end, err := parseTimeOfDay(cfg.End)
	if err != nil {
		return WindowDecision{Allowed: true, Reason: fmt.Sprintf("invalid window end: %v", err)}
	}

	midnight := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	startAt := midnight.Add(start)
	endAt := midnight.Add(end)
	if start > end {
		// Window spans midnight
		if ref.Before(startAt) {
			startAt = startAt.AddDate(0, 0, -1)
		} else {
			endAt = endAt.AddDate(0, 0, 1)
		}
	}

	if ref.Before(startAt) || ref.After(endAt) {
		return WindowDecision{
			Allowed: false,
			Reason:  fmt.Sprintf("allowed between %s and %s", cfg.Start, cfg.End),
		}
	}
	return WindowDecision{Allowed: true, Reason: "within window"}
}
