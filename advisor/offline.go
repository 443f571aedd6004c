package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/angas/loadshift-go/optimize"
	"github.com/angas/loadshift-go/slice"
)

// Offline produces advice from the optimization result alone, with no
// network calls. It is used when no API key is configured and as the
// fallback when the live advisor fails.
type Offline struct {
	logger *slog.Logger
}

func NewOffline(logger *slog.Logger) *Offline {
	return &Offline{logger: logger}
}

func (o *Offline) Advise(_ context.Context, req Request) (Advice, error) {
	plan := planFromResult(req.Result)

	var text string
	if len(plan.BestHours) == 0 {
		text = "No shiftable hours were found for the requested day."
	} else {
		hourLabels := slice.Map(req.Result.Schedule, func(sh optimize.ShiftHour) string {
			return fmt.Sprintf("%02d:00", sh.Hour.Hour)
		})
		if len(hourLabels) > 3 {
			hourLabels = hourLabels[:3]
		}
		text = fmt.Sprintf(
			"Shift your flexible load to %s UTC to save €%.2f (%.1f%% of the baseline cost).",
			strings.Join(hourLabels, ", "), req.Result.Savings, req.Result.SavingsPercent)
	}

	return Advice{
		Text: text,
		Reasoning: fmt.Sprintf(
			"Because these are the cheapest hours of the day in zone %s on %s.",
			req.Zone, req.Date),
		Plan:       plan,
		Confidence: 0.85,
	}, nil
}
