package pricing

import (
	"errors"
	"testing"

	"github.com/Leganyst/booking-core/internal/model"
)

func twoServices() []model.Service {
	return []model.Service{
		{Name: "Стрижка", DurationMin: 60, Price: 1500},
		{Name: "Укладка", DurationMin: 30, Price: 800},
	}
}

func TestPrice_Sum(t *testing.T) {
	b := &model.Bundle{PriceMode: model.BundlePriceSum}
	if got := Price(b, twoServices()); got != 2300 {
		t.Fatalf("expected 2300, got %d", got)
	}
}

func TestPrice_DiscountRoundsToNearest(t *testing.T) {
	// 2300 * 0.85 = 1955.
	b := &model.Bundle{PriceMode: model.BundlePriceDiscount, DiscountPct: 15}
	if got := Price(b, twoServices()); got != 1955 {
		t.Fatalf("expected 1955, got %d", got)
	}

	b.DiscountPct = 33
	// 2300 * 0.67 = 1541.0
	if got := Price(b, twoServices()); got != 1541 {
		t.Fatalf("expected 1541, got %d", got)
	}
}

func TestPrice_FixedIgnoresComposition(t *testing.T) {
	b := &model.Bundle{PriceMode: model.BundlePriceFixed, PriceFixed: 2000}
	if got := Price(b, twoServices()); got != 2000 {
		t.Fatalf("expected 2000, got %d", got)
	}
	if got := Price(b, nil); got != 2000 {
		t.Fatalf("expected 2000 with empty composition, got %d", got)
	}
}

func TestDuration_SumAndCustom(t *testing.T) {
	b := &model.Bundle{DurationMode: model.BundleDurationSum}
	if got := Duration(b, twoServices()); got != 90 {
		t.Fatalf("expected 90, got %d", got)
	}

	b.DurationMode = model.BundleDurationCustom
	b.DurationCustomMin = 75
	if got := Duration(b, twoServices()); got != 75 {
		t.Fatalf("expected 75, got %d", got)
	}
}

func TestValidateServiceCount(t *testing.T) {
	for _, n := range []int{2, 3, 5} {
		if err := ValidateServiceCount(n); err != nil {
			t.Fatalf("expected %d services to be valid: %v", n, err)
		}
	}
	for _, n := range []int{0, 1, 6} {
		err := ValidateServiceCount(n)
		if !errors.Is(err, ErrBundleServiceCount) {
			t.Fatalf("expected ErrBundleServiceCount for %d, got %v", n, err)
		}
	}
}
