package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/Leganyst/booking-core/internal/model"
)

// Комплекс объединяет от 2 до 5 услуг.
const (
	MinBundleServices = 2
	MaxBundleServices = 5
)

var ErrBundleServiceCount = errors.New("bundle must contain 2 to 5 services")

// ValidateServiceCount проверяет правило «2–5 услуг в комплексе».
func ValidateServiceCount(n int) error {
	if n < MinBundleServices || n > MaxBundleServices {
		return fmt.Errorf("%w: got %d", ErrBundleServiceCount, n)
	}
	return nil
}

// Price считает цену комплекса по выбранному режиму.
//   - sum: сумма цен услуг;
//   - discount: сумма цен со скидкой, округление до целого рубля
//     (к ближайшему, половина — от нуля);
//   - fixed: фиксированная цена, состав комплекса не учитывается.
//
// services — уже загруженный состав комплекса; поля других режимов игнорируются.
func Price(b *model.Bundle, services []model.Service) int64 {
	switch b.PriceMode {
	case model.BundlePriceFixed:
		return b.PriceFixed
	case model.BundlePriceDiscount:
		total := sumPrices(services)
		return int64(math.Round(float64(total) * (1 - float64(b.DiscountPct)/100)))
	default:
		return sumPrices(services)
	}
}

// Duration считает длительность комплекса в минутах: сумма длительностей
// услуг либо заданное вручную значение.
func Duration(b *model.Bundle, services []model.Service) int64 {
	if b.DurationMode == model.BundleDurationCustom {
		return b.DurationCustomMin
	}
	var total int64
	for _, s := range services {
		total += s.DurationMin
	}
	return total
}

func sumPrices(services []model.Service) int64 {
	var total int64
	for _, s := range services {
		total += s.Price
	}
	return total
}
