package hours

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	dateLayout = "2006-01-02"
	hourLayout = "2006-01-02 15"
)

// DateHour identifies one UTC hour of one calendar day.
// It is the timestamp granularity everything in this application works at.
type DateHour struct {
	Date string
	Hour uint8
}

func (dh DateHour) String() string {
	return fmt.Sprintf("%s %02d", dh.Date, dh.Hour)
}

func (dh DateHour) IsoString() string {
	return fmt.Sprintf("%sT%02d:00:00Z", dh.Date, dh.Hour)
}

func (dh DateHour) Add(hours int) DateHour {
	t, err := time.ParseInLocation(hourLayout, dh.String(), time.UTC)
	if err != nil {
		return dh
	}

	t = t.Add(time.Duration(hours) * time.Hour)
	return DateHour{
		Date: t.Format(dateLayout),
		Hour: uint8(t.Hour()),
	}
}

func (dh DateHour) Sub(hours int) DateHour {
	return dh.Add(-hours)
}

func (dh DateHour) Compare(other DateHour) int {
	if dh == other {
		return 0
	}
	if dh.Date < other.Date {
		return -1
	}
	if dh.Date > other.Date {
		return 1
	}
	if dh.Hour < other.Hour {
		return -1
	}
	return 1
}

func (dh DateHour) IsZero() bool {
	return dh.Date == "" && dh.Hour == 0
}

// MarshalJSON renders the hour as an ISO-8601 timestamp, the only
// representation that crosses the API boundary.
func (dh DateHour) MarshalJSON() ([]byte, error) {
	return json.Marshal(dh.IsoString())
}

func (dh *DateHour) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("parsing date hour %q: %w", s, err)
	}
	*dh = FromTime(t)
	return nil
}

func FromTime(t time.Time) DateHour {
	if t.IsZero() {
		return DateHour{}
	}
	t = t.UTC()
	return DateHour{
		Date: t.Format(dateLayout),
		Hour: uint8(t.Hour()),
	}
}

func FromNow() DateHour {
	now := time.Now().UTC()
	return DateHour{
		Date: now.Format(dateLayout),
		Hour: uint8(now.Hour()),
	}
}

func FromDate(date string, hour uint8) DateHour {
	return DateHour{Date: date, Hour: hour}
}

func FromIso(str string) time.Time {
	t, err := time.Parse(time.RFC3339, str)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// ParseDate validates a plain calendar day ("2006-01-02") and returns
// it at midnight UTC.
func ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", date, err)
	}
	return t, nil
}

func Today() string {
	return time.Now().UTC().Format(dateLayout)
}

func Tomorrow() string {
	return time.Now().UTC().AddDate(0, 0, 1).Format(dateLayout)
}
