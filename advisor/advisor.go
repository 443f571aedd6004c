// Package advisor turns an optimization result into a natural-language
// recommendation. The live implementation calls an OpenAI-compatible chat
// endpoint; the offline implementation produces the same structure
// deterministically and doubles as the fallback when the live call fails.
package advisor

import (
	"context"
	"strings"

	"github.com/angas/loadshift-go/optimize"
	"github.com/angas/loadshift-go/slice"
)

type Request struct {
	UserID      string
	Zone        string
	Date        string
	Context     string
	Preferences []string
	Result      optimize.Result
}

type Plan struct {
	Savings   float64  `json:"savings_eur"`
	BestHours []string `json:"best_hours"`
	Action    string   `json:"action"`
}

type Advice struct {
	Text       string  `json:"advice"`
	Reasoning  string  `json:"reasoning"`
	Plan       Plan    `json:"plan"`
	Confidence float64 `json:"confidence"`
}

type Advisor interface {
	Advise(ctx context.Context, req Request) (Advice, error)
}

// planFromResult summarizes the schedule into the machine-readable part of
// the advice, independent of which advisor produced the text.
func planFromResult(res optimize.Result) Plan {
	best := res.Schedule
	if len(best) > 3 {
		best = best[:3]
	}

	return Plan{
		Savings: res.Savings,
		BestHours: slice.Map(best, func(sh optimize.ShiftHour) string {
			return sh.Hour.IsoString()
		}),
		Action: "shift_load",
	}
}

var reasoningMarkers = []string{"because", "since", "due to", "based on"}

// extractReasoning keeps the lines of a free-text answer that argue for the
// recommendation. Free-text parsing is best effort and intentionally not
// part of any contract.
func extractReasoning(text string) string {
	var reasons []string
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		if _, found := slice.Find(reasoningMarkers, func(marker string) bool {
			return strings.Contains(lower, marker)
		}); found {
			reasons = append(reasons, strings.TrimSpace(line))
		}
		if len(reasons) == 3 {
			break
		}
	}
	if len(reasons) == 0 {
		return "Based on price analysis."
	}
	return strings.Join(reasons, " ")
}
