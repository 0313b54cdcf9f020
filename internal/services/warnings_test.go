package services

import (
	"context"
	"sync"
	"testing"

	"github.com/epeers/warehouse/internal/models"
)

func TestWarningCollector_BasicUsage(t *testing.T) {
	ctx, wc := NewWarningContext(context.Background())

	AddWarning(ctx, models.Warning{Code: models.WarnUnallocatedArea, Message: "first"})
	Warnf(ctx, models.WarnZeroLoanRate, "rate is %d", 0)

	warnings := wc.GetWarnings()
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(warnings))
	}
	if warnings[0].Code != models.WarnUnallocatedArea {
		t.Errorf("expected code %s, got %s", models.WarnUnallocatedArea, warnings[0].Code)
	}
	if warnings[1].Message != "rate is 0" {
		t.Errorf("expected formatted message, got %q", warnings[1].Message)
	}
}

func TestWarningCollector_NoCollectorNoPanic(t *testing.T) {
	Warnf(context.Background(), models.WarnLossMaking, "dropped")
}

func TestWarningCollector_EmptyByDefault(t *testing.T) {
	_, wc := NewWarningContext(context.Background())
	if warnings := wc.GetWarnings(); warnings != nil {
		t.Errorf("expected nil warnings, got %v", warnings)
	}
}

func TestWarningCollector_ReturnsCopy(t *testing.T) {
	ctx, wc := NewWarningContext(context.Background())
	Warnf(ctx, models.WarnLossMaking, "loss")

	got := wc.GetWarnings()
	got[0].Message = "changed"
	if wc.GetWarnings()[0].Message != "loss" {
		t.Error("collector contents should not be mutable through the returned slice")
	}
}

func TestWarningCollector_ConcurrentSafe(t *testing.T) {
	ctx, wc := NewWarningContext(context.Background())

	var wg sync.WaitGroup
	n := 100
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			Warnf(ctx, models.WarnBreakevenNotFound, "no breakeven for param %d", i)
		}(i)
	}
	wg.Wait()

	if got := len(wc.GetWarnings()); got != n {
		t.Errorf("expected %d warnings, got %d", n, got)
	}
}

func TestWarningCollector_DropsRepeats(t *testing.T) {
	ctx, wc := NewWarningContext(context.Background())

	for i := 0; i < 3; i++ {
		Warnf(ctx, models.WarnLossMaking, "monthly profit is negative: %.2f", -10.0)
	}
	// same code, different message is a different warning
	Warnf(ctx, models.WarnLossMaking, "cumulative profit over %d months is negative", 6)

	warnings := wc.GetWarnings()
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
	if !wc.Has(models.WarnLossMaking) {
		t.Error("expected W1002 to be recorded")
	}
	if wc.Has(models.WarnZeroLoanRate) {
		t.Error("did not expect W2001")
	}
}
