package date

import (
	"encoding/json"
	"time"
)

const (
	// Canonical is the single stored representation of a date.
	Canonical = "2006-01-02"
	// Display is the entry/display format shown to the user.
	Display = "02.01.2006"
)

// Date is a calendar day without a time component.
// The zero value means "no date".
type Date struct {
	t time.Time
}

func New(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar day.
func Today() Date {
	now := time.Now()
	return New(now.Year(), now.Month(), now.Day())
}

// FromTime truncates a time to its calendar day.
func FromTime(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

// Parse parses the canonical YYYY-MM-DD form.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Canonical, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

func (d Date) AddDays(n int) Date {
	return Date{d.t.AddDate(0, 0, n)}
}

// DaysUntil returns the number of whole days from `from` until d.
// Negative means d is already past.
func (d Date) DaysUntil(from Date) int {
	return int(d.t.Sub(from.t).Hours() / 24)
}

// String formats the date canonically.
func (d Date) String() string {
	return d.t.Format(Canonical)
}

// DisplayString formats the date for user-facing entry fields.
func (d Date) DisplayString() string {
	return d.t.Format(Display)
}

func (d Date) Time() time.Time {
	return d.t
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(bs []byte) error {
	var s string
	if err := json.Unmarshal(bs, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
