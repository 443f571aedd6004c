package advisor

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/angas/loadshift-go/hours"
	"github.com/angas/loadshift-go/optimize"
)

func testResult() optimize.Result {
	return optimize.Result{
		BaselineCost:   1.20,
		OptimizedCost:  0.80,
		Savings:        0.40,
		SavingsPercent: 33.3,
		Schedule: []optimize.ShiftHour{
			{Hour: hours.FromDate("2025-09-05", 2), ShiftKWh: 2, PriceKWh: 0.05},
			{Hour: hours.FromDate("2025-09-05", 3), ShiftKWh: 2, PriceKWh: 0.06},
			{Hour: hours.FromDate("2025-09-05", 4), ShiftKWh: 2, PriceKWh: 0.07},
		},
	}
}

func testRequest() Request {
	return Request{
		UserID: "u1",
		Zone:   "10YNL----------L",
		Date:   "2025-09-05",
		Result: testResult(),
	}
}

func TestOfflineAdvise(t *testing.T) {
	advice, err := NewOffline(slog.Default()).Advise(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(advice.Text, "02:00, 03:00, 04:00") {
		t.Errorf("advice text should name the cheapest hours, got %q", advice.Text)
	}
	if !strings.Contains(advice.Text, "€0.40") {
		t.Errorf("advice text should name the savings, got %q", advice.Text)
	}
	if advice.Confidence != 0.85 {
		t.Errorf("expected confidence 0.85, got %v", advice.Confidence)
	}
	if advice.Plan.Action != "shift_load" {
		t.Errorf("expected action shift_load, got %q", advice.Plan.Action)
	}
	if len(advice.Plan.BestHours) != 3 {
		t.Fatalf("expected 3 best hours, got %d", len(advice.Plan.BestHours))
	}
	if advice.Plan.BestHours[0] != "2025-09-05T02:00:00Z" {
		t.Errorf("unexpected first best hour: %q", advice.Plan.BestHours[0])
	}
}

func TestOfflineAdviseEmptySchedule(t *testing.T) {
	req := testRequest()
	req.Result.Schedule = nil

	advice, err := NewOffline(slog.Default()).Advise(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(advice.Text, "No shiftable hours") {
		t.Errorf("unexpected advice text: %q", advice.Text)
	}
	if len(advice.Plan.BestHours) != 0 {
		t.Errorf("expected no best hours, got %v", advice.Plan.BestHours)
	}
}

func TestOpenAIAdvise(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Run the dishwasher at 02:00.\nBecause prices are lowest overnight."}}]}`))
	}))
	defer srv.Close()

	advisor := NewOpenAI(slog.Default(), srv.URL, "test-key", "gpt-4.1")
	advice, err := advisor.Advise(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(advice.Text, "dishwasher") {
		t.Errorf("unexpected advice text: %q", advice.Text)
	}
	if advice.Reasoning != "Because prices are lowest overnight." {
		t.Errorf("unexpected reasoning: %q", advice.Reasoning)
	}
	if advice.Plan.Savings != 0.40 {
		t.Errorf("unexpected plan savings: %v", advice.Plan.Savings)
	}
}

func TestOpenAIAdviseFallsBackOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	advisor := NewOpenAI(slog.Default(), srv.URL, "test-key", "gpt-4.1")
	advice, err := advisor.Advise(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("fallback should not return an error, got: %v", err)
	}
	if !strings.Contains(advice.Text, "Shift your flexible load") {
		t.Errorf("expected offline advice text, got %q", advice.Text)
	}
}

func TestOpenAIAdviseTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("€", maxAdviceLength+50)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": long}},
			},
		})
	}))
	defer srv.Close()

	advisor := NewOpenAI(slog.Default(), srv.URL, "test-key", "gpt-4.1")
	advice, err := advisor.Advise(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !utf8.ValidString(advice.Text) {
		t.Error("truncated advice is not valid UTF-8")
	}
	if got := utf8.RuneCountInString(advice.Text); got != maxAdviceLength {
		t.Errorf("expected %d runes, got %d", maxAdviceLength, got)
	}
}

func TestExtractReasoning(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"single marker", "Do laundry at night.\nBecause prices drop after 22:00.", "Because prices drop after 22:00."},
		{"multiple markers", "Since night prices are low, shift there.\nDue to high evening demand, avoid 18:00.", "Since night prices are low, shift there. Due to high evening demand, avoid 18:00."},
		{"no marker", "Shift your load to the morning.", "Based on price analysis."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractReasoning(tt.text); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
