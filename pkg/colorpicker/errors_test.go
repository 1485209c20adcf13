package colorpicker

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestErrorCategory_String(t *testing.T) {
	tests := []struct {
		category ErrorCategory
		want     string
	}{
		{ErrorCategoryUnknown, "unknown"},
		{ErrorCategoryConfig, "config"},
		{ErrorCategoryRender, "render"},
		{ErrorCategoryInput, "input"},
		{ErrorCategoryHistory, "history"},
		{ErrorCategoryIO, "io"},
		{ErrorCategory(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.category.String(); got != tt.want {
				t.Errorf("ErrorCategory.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorSeverity_String(t *testing.T) {
	tests := []struct {
		severity ErrorSeverity
		want     string
	}{
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{ErrorSeverity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("ErrorSeverity.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCategorizedError(t *testing.T) {
	t.Run("Error method", func(t *testing.T) {
		err := NewCategorizedError(errors.New("bad hex"), ErrorCategoryInput, SeverityWarning)
		if got := err.Error(); got != "[warning/input] bad hex" {
			t.Errorf("Error() = %v, want [warning/input] bad hex", got)
		}
	})

	t.Run("Error method with nil error", func(t *testing.T) {
		err := &CategorizedError{Category: ErrorCategoryHistory, Severity: SeverityError}
		if got := err.Error(); got != "[error/history] (no error)" {
			t.Errorf("Error() = %v, want [error/history] (no error)", got)
		}
	})

	t.Run("Unwrap returns underlying error", func(t *testing.T) {
		underlying := errors.New("underlying")
		err := NewCategorizedError(underlying, ErrorCategoryIO, SeverityCritical)
		if !errors.Is(err, underlying) {
			t.Error("errors.Is failed to match underlying error")
		}
	})

	t.Run("WithContext adds metadata", func(t *testing.T) {
		err := NewCategorizedError(errors.New("test"), ErrorCategoryInput, SeverityError).
			WithContext("value", "#zzz").
			WithContext("notation", "hex")
		if err.Context["value"] != "#zzz" {
			t.Errorf("Context[value] = %v, want #zzz", err.Context["value"])
		}
		if err.Context["notation"] != "hex" {
			t.Errorf("Context[notation] = %v, want hex", err.Context["notation"])
		}
	})

	t.Run("WithContext handles nil context", func(t *testing.T) {
		err := (&CategorizedError{}).WithContext("key", "value")
		if err.Context["key"] != "value" {
			t.Errorf("Context[key] = %v, want value", err.Context["key"])
		}
	})
}

func TestCategorize(t *testing.T) {
	t.Run("keeps existing category", func(t *testing.T) {
		inner := NewCategorizedError(errors.New("x"), ErrorCategoryConfig, SeverityCritical)
		wrapped := fmt.Errorf("reload: %w", inner)
		got := categorize(wrapped)
		if got != inner {
			t.Errorf("categorize() = %v, want the wrapped CategorizedError", got)
		}
	})

	t.Run("plain error is unknown", func(t *testing.T) {
		got := categorize(errors.New("plain"))
		if got.Category != ErrorCategoryUnknown {
			t.Errorf("Category = %v, want unknown", got.Category)
		}
		if got.Severity != SeverityError {
			t.Errorf("Severity = %v, want error", got.Severity)
		}
	})
}

func TestNewErrorTracker(t *testing.T) {
	tracker := NewErrorTracker(ErrorTrackerConfig{})
	def := DefaultErrorTrackerConfig()
	if tracker.maxErrors != def.MaxErrors {
		t.Errorf("maxErrors = %d, want %d", tracker.maxErrors, def.MaxErrors)
	}
	if tracker.retentionTime != def.RetentionTime {
		t.Errorf("retentionTime = %v, want %v", tracker.retentionTime, def.RetentionTime)
	}
	if tracker.alertCooldown != def.AlertCooldown {
		t.Errorf("alertCooldown = %v, want %v", tracker.alertCooldown, def.AlertCooldown)
	}
}

func TestErrorTracker_Record(t *testing.T) {
	t.Run("records errors", func(t *testing.T) {
		tracker := NewErrorTracker(DefaultErrorTrackerConfig())
		tracker.Record(NewCategorizedError(errors.New("a"), ErrorCategoryInput, SeverityWarning))
		tracker.Record(NewCategorizedError(errors.New("b"), ErrorCategoryHistory, SeverityError))

		stats := tracker.Stats()
		if stats.TotalErrors != 2 {
			t.Errorf("TotalErrors = %d, want 2", stats.TotalErrors)
		}
		if stats.ErrorsByCategory[ErrorCategoryInput] != 1 {
			t.Errorf("input errors = %d, want 1", stats.ErrorsByCategory[ErrorCategoryInput])
		}
		if stats.ErrorsBySeverity[SeverityError] != 1 {
			t.Errorf("error severity = %d, want 1", stats.ErrorsBySeverity[SeverityError])
		}
	})

	t.Run("ignores nil", func(t *testing.T) {
		tracker := NewErrorTracker(DefaultErrorTrackerConfig())
		tracker.Record(nil)
		if got := tracker.Stats().TotalErrors; got != 0 {
			t.Errorf("TotalErrors = %d, want 0", got)
		}
	})

	t.Run("bounds retained errors", func(t *testing.T) {
		tracker := NewErrorTracker(ErrorTrackerConfig{MaxErrors: 5})
		for i := 0; i < 12; i++ {
			tracker.Record(NewCategorizedError(fmt.Errorf("e%d", i), ErrorCategoryIO, SeverityError))
		}
		if got := tracker.Stats().TotalErrors; got != 5 {
			t.Errorf("TotalErrors = %d, want 5", got)
		}
		recent := tracker.RecentErrors(1)
		if len(recent) != 1 || recent[0].Err.Error() != "e11" {
			t.Errorf("RecentErrors(1) = %v, want [e11]", recent)
		}
	})

	t.Run("drops expired errors", func(t *testing.T) {
		tracker := NewErrorTracker(ErrorTrackerConfig{RetentionTime: time.Minute})
		old := NewCategorizedError(errors.New("old"), ErrorCategoryIO, SeverityError)
		old.Timestamp = time.Now().Add(-time.Hour)
		tracker.Record(old)
		tracker.Record(NewCategorizedError(errors.New("new"), ErrorCategoryIO, SeverityError))
		if got := tracker.Stats().TotalErrors; got != 1 {
			t.Errorf("TotalErrors = %d, want 1", got)
		}
	})
}

func TestErrorTracker_AlertConditions(t *testing.T) {
	t.Run("triggers alert when threshold met", func(t *testing.T) {
		cfg := DefaultErrorTrackerConfig()
		cfg.AlertCooldown = time.Nanosecond
		tracker := NewErrorTracker(cfg)

		var alertCount atomic.Int32
		fired := make(chan struct{}, 4)

		tracker.AddCondition(AlertCondition{
			Category:    ErrorCategoryHistory,
			MinSeverity: SeverityWarning,
			Threshold:   3,
			Window:      time.Minute,
		})
		tracker.SetAlertHandler(func(cond AlertCondition, count int, recent []CategorizedError) {
			alertCount.Store(int32(count))
			fired <- struct{}{}
		})

		tracker.Record(NewCategorizedError(errors.New("1"), ErrorCategoryHistory, SeverityWarning))
		tracker.Record(NewCategorizedError(errors.New("2"), ErrorCategoryHistory, SeverityWarning))
		select {
		case <-fired:
			t.Fatal("alert triggered before threshold")
		case <-time.After(20 * time.Millisecond):
		}

		tracker.Record(NewCategorizedError(errors.New("3"), ErrorCategoryHistory, SeverityWarning))
		select {
		case <-fired:
		case <-time.After(time.Second):
			t.Fatal("alert not triggered after threshold met")
		}
		if alertCount.Load() != 3 {
			t.Errorf("alert count = %d, want 3", alertCount.Load())
		}
	})

	t.Run("respects category and severity filters", func(t *testing.T) {
		cfg := DefaultErrorTrackerConfig()
		cfg.AlertCooldown = time.Nanosecond
		tracker := NewErrorTracker(cfg)

		var triggered atomic.Bool
		tracker.AddCondition(AlertCondition{
			Category:    ErrorCategoryConfig,
			MinSeverity: SeverityError,
			Threshold:   1,
			Window:      time.Minute,
		})
		tracker.SetAlertHandler(func(AlertCondition, int, []CategorizedError) {
			triggered.Store(true)
		})

		tracker.Record(NewCategorizedError(errors.New("input"), ErrorCategoryInput, SeverityCritical))
		tracker.Record(NewCategorizedError(errors.New("minor"), ErrorCategoryConfig, SeverityWarning))

		time.Sleep(30 * time.Millisecond)
		if triggered.Load() {
			t.Error("alert triggered for filtered errors")
		}
	})

	t.Run("respects cooldown", func(t *testing.T) {
		cfg := DefaultErrorTrackerConfig()
		cfg.AlertCooldown = time.Hour
		tracker := NewErrorTracker(cfg)

		var calls atomic.Int32
		tracker.AddCondition(AlertCondition{Threshold: 1, Window: time.Minute})
		tracker.SetAlertHandler(func(AlertCondition, int, []CategorizedError) {
			calls.Add(1)
		})

		for i := 0; i < 3; i++ {
			tracker.Record(NewCategorizedError(errors.New("x"), ErrorCategoryIO, SeverityError))
		}
		time.Sleep(30 * time.Millisecond)
		if got := calls.Load(); got != 1 {
			t.Errorf("alert calls = %d, want 1", got)
		}
	})

	t.Run("recovers handler panic", func(t *testing.T) {
		cfg := DefaultErrorTrackerConfig()
		cfg.AlertCooldown = time.Nanosecond
		tracker := NewErrorTracker(cfg)
		tracker.AddCondition(AlertCondition{Threshold: 1, Window: time.Minute})
		tracker.SetAlertHandler(func(AlertCondition, int, []CategorizedError) {
			panic("handler failure")
		})
		tracker.Record(NewCategorizedError(errors.New("x"), ErrorCategoryIO, SeverityError))
		time.Sleep(20 * time.Millisecond)
	})
}

func TestErrorTracker_ErrorRate(t *testing.T) {
	tracker := NewErrorTracker(DefaultErrorTrackerConfig())
	for i := 0; i < 6; i++ {
		tracker.Record(NewCategorizedError(errors.New("x"), ErrorCategoryInput, SeverityWarning))
	}
	tracker.Record(NewCategorizedError(errors.New("y"), ErrorCategoryHistory, SeverityWarning))

	if got := tracker.ErrorRate(time.Minute); got != 7.0/60 {
		t.Errorf("ErrorRate() = %v, want %v", got, 7.0/60)
	}
	if got := tracker.ErrorRateByCategory(ErrorCategoryHistory, time.Minute); got != 1.0/60 {
		t.Errorf("ErrorRateByCategory() = %v, want %v", got, 1.0/60)
	}
	if got := tracker.ErrorRate(0); got != 0 {
		t.Errorf("ErrorRate(0) = %v, want 0", got)
	}
}

func TestErrorTracker_RecentErrors(t *testing.T) {
	tracker := NewErrorTracker(DefaultErrorTrackerConfig())
	if got := tracker.RecentErrors(5); got != nil {
		t.Errorf("RecentErrors() on empty tracker = %v, want nil", got)
	}

	for i := 0; i < 4; i++ {
		tracker.Record(NewCategorizedError(fmt.Errorf("e%d", i), ErrorCategoryIO, SeverityError))
	}

	recent := tracker.RecentErrors(2)
	if len(recent) != 2 {
		t.Fatalf("len(RecentErrors(2)) = %d, want 2", len(recent))
	}
	if recent[0].Err.Error() != "e2" || recent[1].Err.Error() != "e3" {
		t.Errorf("RecentErrors(2) = [%v %v], want [e2 e3]", recent[0].Err, recent[1].Err)
	}
	if got := tracker.RecentErrors(0); got != nil {
		t.Errorf("RecentErrors(0) = %v, want nil", got)
	}
	if got := len(tracker.RecentErrors(10)); got != 4 {
		t.Errorf("len(RecentErrors(10)) = %d, want 4", got)
	}
}

func TestErrorTracker_Clear(t *testing.T) {
	tracker := NewErrorTracker(DefaultErrorTrackerConfig())
	tracker.Record(NewCategorizedError(errors.New("x"), ErrorCategoryInput, SeverityError))
	tracker.Clear()

	stats := tracker.Stats()
	if stats.TotalErrors != 0 {
		t.Errorf("TotalErrors after Clear = %d, want 0", stats.TotalErrors)
	}
	// Lifetime totals survive Clear.
	for _, c := range stats.TotalByCategory {
		if c.Category == ErrorCategoryInput && c.Count != 1 {
			t.Errorf("lifetime input count = %d, want 1", c.Count)
		}
	}
}

func TestErrorTracker_ConcurrentAccess(t *testing.T) {
	tracker := NewErrorTracker(DefaultErrorTrackerConfig())
	tracker.AddCondition(AlertCondition{Threshold: 50, Window: time.Minute})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				tracker.Record(NewCategorizedError(errors.New("x"), ErrorCategoryRender, SeverityError))
				_ = tracker.Stats()
				_ = tracker.ErrorRate(time.Minute)
			}
		}()
	}
	wg.Wait()

	if got := tracker.Stats().TotalErrors; got != 400 {
		t.Errorf("TotalErrors = %d, want 400", got)
	}
}

func TestDefaultErrorTracker(t *testing.T) {
	if DefaultErrorTracker() != DefaultErrorTracker() {
		t.Error("DefaultErrorTracker should return the same instance")
	}
}

func TestErrorStats(t *testing.T) {
	tracker := NewErrorTracker(DefaultErrorTrackerConfig())
	tracker.Record(NewCategorizedError(errors.New("a"), ErrorCategoryConfig, SeverityError))
	tracker.Record(NewCategorizedError(errors.New("b"), ErrorCategoryConfig, SeverityCritical))

	stats := tracker.Stats()
	if len(stats.TotalByCategory) != int(categoryCount) {
		t.Errorf("len(TotalByCategory) = %d, want %d", len(stats.TotalByCategory), categoryCount)
	}
	if stats.ErrorsByCategory[ErrorCategoryConfig] != 2 {
		t.Errorf("config errors = %d, want 2", stats.ErrorsByCategory[ErrorCategoryConfig])
	}
	if stats.ErrorsBySeverity[SeverityCritical] != 1 {
		t.Errorf("critical errors = %d, want 1", stats.ErrorsBySeverity[SeverityCritical])
	}
}
