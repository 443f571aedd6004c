package hours

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateHourString(t *testing.T) {
	dh := DateHour{Date: "2025-01-01", Hour: 5}
	expected := "2025-01-01 05"
	if s := dh.String(); s != expected {
		t.Errorf("String() expected %q, got %q", expected, s)
	}
}

func TestDateHourIsoString(t *testing.T) {
	dh := DateHour{Date: "2025-01-01", Hour: 15}
	expected := "2025-01-01T15:00:00Z"
	if s := dh.IsoString(); s != expected {
		t.Errorf("IsoString() expected %q, got %q", expected, s)
	}
}

func TestDateHourAdd(t *testing.T) {
	tests := []struct {
		name     string
		input    DateHour
		addHours int
		expected DateHour
	}{
		{
			name:     "add within same day",
			input:    DateHour{Date: "2025-01-01", Hour: 10},
			addHours: 2,
			expected: DateHour{Date: "2025-01-01", Hour: 12},
		},
		{
			name:     "add crossing midnight",
			input:    DateHour{Date: "2025-01-01", Hour: 23},
			addHours: 2,
			expected: DateHour{Date: "2025-01-02", Hour: 1},
		},
		{
			name:     "add negative hours (subtract)",
			input:    DateHour{Date: "2025-01-01", Hour: 1},
			addHours: -2,
			expected: DateHour{Date: "2024-12-31", Hour: 23},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.input.Add(tt.addHours)
			if result != tt.expected {
				t.Errorf("Add(%d) expected %+v, got %+v", tt.addHours, tt.expected, result)
			}
		})
	}
}

func TestDateHourCompare(t *testing.T) {
	a := DateHour{Date: "2025-01-01", Hour: 10}
	b := DateHour{Date: "2025-01-01", Hour: 11}
	c := DateHour{Date: "2025-01-02", Hour: 0}

	if a.Compare(a) != 0 {
		t.Errorf("expected equal hours to compare as 0")
	}
	if a.Compare(b) != -1 || b.Compare(a) != 1 {
		t.Errorf("expected hour ordering within the same day")
	}
	if b.Compare(c) != -1 {
		t.Errorf("expected date ordering to win over hour ordering")
	}
}

func TestDateHourJSONRoundTrip(t *testing.T) {
	dh := DateHour{Date: "2025-09-05", Hour: 3}

	data, err := json.Marshal(dh)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != `"2025-09-05T03:00:00Z"` {
		t.Errorf("Marshal() expected ISO string, got %s", data)
	}

	var back DateHour
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if back != dh {
		t.Errorf("round trip expected %+v, got %+v", dh, back)
	}
}

func TestDateHourUnmarshalWithOffset(t *testing.T) {
	var dh DateHour
	if err := json.Unmarshal([]byte(`"2025-09-05T01:00:00+02:00"`), &dh); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	// Offsets are normalized to UTC.
	expected := DateHour{Date: "2025-09-04", Hour: 23}
	if dh != expected {
		t.Errorf("expected %+v, got %+v", expected, dh)
	}
}

func TestDateHourIsZero(t *testing.T) {
	var dh DateHour
	if !dh.IsZero() {
		t.Errorf("expected a zero value DateHour to be zero")
	}
	dh = DateHour{Date: "2025-01-01", Hour: 0}
	if dh.IsZero() {
		t.Errorf("expected a non-zero DateHour (non-empty Date) not to be zero")
	}
}

func TestFromTime(t *testing.T) {
	tm := time.Date(2025, time.January, 1, 15, 30, 0, 0, time.UTC)
	dh := FromTime(tm)
	expected := DateHour{Date: "2025-01-01", Hour: 15}
	if dh != expected {
		t.Errorf("FromTime() expected %+v, got %+v", expected, dh)
	}

	var zero time.Time
	if !FromTime(zero).IsZero() {
		t.Errorf("FromTime() with zero time expected a zero DateHour")
	}
}

func TestFromNow(t *testing.T) {
	now := time.Now().UTC()
	dh := FromNow()
	expectedDate := now.Format("2006-01-02")
	expectedHour := now.Hour()

	if dh.Date != expectedDate {
		t.Errorf("FromNow() expected date %q, got %q", expectedDate, dh.Date)
	}
	if int(dh.Hour) != expectedHour {
		t.Errorf("FromNow() expected hour %d, got %d", expectedHour, dh.Hour)
	}
}

func TestFromIso(t *testing.T) {
	isoStr := "2025-01-01T15:00:00Z"
	parsed := FromIso(isoStr)
	expected := time.Date(2025, time.January, 1, 15, 0, 0, 0, time.UTC)
	if !parsed.Equal(expected) {
		t.Errorf("FromIso() expected %v, got %v", expected, parsed)
	}

	if !FromIso("not a valid iso date").IsZero() {
		t.Errorf("FromIso() expected zero time for an invalid date string")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-09-05")
	if err != nil {
		t.Fatalf("ParseDate() error: %v", err)
	}
	expected := time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC)
	if !d.Equal(expected) {
		t.Errorf("ParseDate() expected %v, got %v", expected, d)
	}

	if _, err := ParseDate("05/09/2025"); err == nil {
		t.Errorf("ParseDate() expected error for malformed date")
	}
}
