package optimize

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/angas/loadshift-go/convert"
	"github.com/angas/loadshift-go/hours"
	"github.com/angas/loadshift-go/types"
)

var (
	ErrNoPriceData          = errors.New("no price data")
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrUnsupportedObjective = errors.New("unsupported objective")
)

// ShiftHour is one line of the recommended shifting schedule.
type ShiftHour struct {
	Hour     hours.DateHour `json:"hour_utc"`
	ShiftKWh float64        `json:"shift_kwh"`
	PriceKWh float64        `json:"price_eur_kwh"`
}

type Result struct {
	BaselineCost   float64            `json:"baseline_cost_eur"`
	OptimizedCost  float64            `json:"optimized_cost_eur"`
	Savings        float64            `json:"savings_eur"`
	SavingsPercent float64            `json:"savings_percent"`
	Schedule       []ShiftHour        `json:"schedule"`
	PriceCurve     []types.PricePoint `json:"price_curve,omitempty"`
}

// Optimize distributes a flexible load evenly over the cheapest hours of the
// given day-ahead price curve and reports the cost against running the same
// load at the day's average price.
//
// The schedule is ordered by ascending price, not by time of day. Hours with
// equal prices keep their original curve order (stable sort). When
// maxShiftHours exceeds the number of price points the allocation divides by
// the number of hours actually selected, so the total scheduled energy always
// equals flexibleKWh.
//
// The function is pure: it never mutates the curve and holds no state
// between calls.
func Optimize(curve []types.PricePoint, flexibleKWh float64, maxShiftHours int, objective Objective) (Result, error) {
	if len(curve) == 0 {
		return Result{}, ErrNoPriceData
	}
	if flexibleKWh <= 0 {
		return Result{}, fmt.Errorf("%w: flexible load must be positive, got %g kWh", ErrInvalidArgument, flexibleKWh)
	}
	if maxShiftHours < 1 {
		return Result{}, fmt.Errorf("%w: max shift hours must be at least 1, got %d", ErrInvalidArgument, maxShiftHours)
	}
	if !objective.IsValid() {
		return Result{}, fmt.Errorf("%w: %d", ErrUnsupportedObjective, int(objective))
	}

	sorted := slices.Clone(curve)
	slices.SortStableFunc(sorted, func(a, b types.PricePoint) int {
		return cmp.Compare(a.PriceKWh, b.PriceKWh)
	})

	k := min(maxShiftHours, len(sorted))
	kwhPerHour := flexibleKWh / float64(k)

	schedule := make([]ShiftHour, 0, k)
	optimizedCost := 0.0
	for _, p := range sorted[:k] {
		schedule = append(schedule, ShiftHour{
			Hour:     p.Hour,
			ShiftKWh: convert.TwoDecimals(kwhPerHour),
			PriceKWh: p.PriceKWh,
		})
		// Cost uses the unrounded allocation, only the displayed kWh is rounded.
		optimizedCost += kwhPerHour * p.PriceKWh
	}

	sum := 0.0
	for _, p := range curve {
		sum += p.PriceKWh
	}
	avgPrice := sum / float64(len(curve))
	baselineCost := flexibleKWh * avgPrice

	savings := baselineCost - optimizedCost
	savingsPercent := 0.0
	if baselineCost > 0 {
		savingsPercent = savings / baselineCost * 100.0
	}

	return Result{
		BaselineCost:   convert.TwoDecimals(baselineCost),
		OptimizedCost:  convert.TwoDecimals(optimizedCost),
		Savings:        convert.TwoDecimals(savings),
		SavingsPercent: convert.OneDecimal(savingsPercent),
		Schedule:       schedule,
		PriceCurve:     curve,
	}, nil
}
