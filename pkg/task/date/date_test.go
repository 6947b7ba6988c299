package date

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestDate_Canonical(t *testing.T) {
	is := is.New(t)

	d := New(1999, time.August, 26)
	is.Equal(d.String(), "1999-08-26")
	is.Equal(d.DisplayString(), "26.08.1999")
}

func TestDate_Compare(t *testing.T) {
	is := is.New(t)

	d := New(2030, time.January, 15)
	is.True(d.Before(d.AddDays(1)))
	is.True(!d.Before(d))
	is.True(d.AddDays(-1).Before(d))
	is.Equal(d.AddDays(1).DaysUntil(d), 1)
	is.Equal(d.AddDays(-3).DaysUntil(d), -3)
}

func TestDate_JSON(t *testing.T) {
	is := is.New(t)

	d := New(2030, time.January, 15)
	bs, err := json.Marshal(d)
	is.NoErr(err)
	is.Equal(string(bs), `"2030-01-15"`)

	var out Date
	is.NoErr(json.Unmarshal(bs, &out))
	is.True(out.Equal(d))

	// anything but the canonical form fails to decode
	is.True(json.Unmarshal([]byte(`"15.01.2030"`), &out) != nil)
	is.True(json.Unmarshal([]byte(`42`), &out) != nil)
}

func TestToday(t *testing.T) {
	is := is.New(t)

	now := time.Now()
	is.Equal(Today(), FromTime(now))
	is.True(!Today().Before(Today()))
}
