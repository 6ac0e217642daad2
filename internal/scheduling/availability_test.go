package scheduling

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinuteOfDay(t *testing.T) {
	m, err := ParseMinuteOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, MinuteOfDay(9*60+30), m)
	assert.Equal(t, "09:30", m.String())

	_, err = ParseMinuteOfDay("25:00")
	assert.Error(t, err)

	_, err = ParseMinuteOfDay("not a time")
	assert.Error(t, err)
}

func TestWeeklyAvailabilityJSON(t *testing.T) {
	raw := `{"monday":{"start":"09:00","end":"17:00"},"saturday":{"start":"10:00","end":"13:00"}}`

	var avail WeeklyAvailability
	require.NoError(t, json.Unmarshal([]byte(raw), &avail))

	monday, ok := avail.RangeFor(time.Monday)
	require.True(t, ok)
	assert.Equal(t, MinuteOfDay(9*60), monday.Start)
	assert.Equal(t, MinuteOfDay(17*60), monday.End)

	_, ok = avail.RangeFor(time.Sunday)
	assert.False(t, ok, "sunday has no hours")

	out, err := json.Marshal(avail)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestRangeForAllWeekdays(t *testing.T) {
	r := TimeRange{Start: 8 * 60, End: 16 * 60}
	avail := WeeklyAvailability{
		Monday:    &r,
		Tuesday:   &r,
		Wednesday: &r,
		Thursday:  &r,
		Friday:    &r,
		Saturday:  &r,
		Sunday:    &r,
	}

	for day := time.Sunday; day <= time.Saturday; day++ {
		got, ok := avail.RangeFor(day)
		require.True(t, ok, day)
		assert.Equal(t, r, got)
	}
}

func TestTimeRangeValidate(t *testing.T) {
	assert.NoError(t, TimeRange{Start: 9 * 60, End: 17 * 60}.Validate())

	var vErr *ValidationError
	err := TimeRange{Start: 17 * 60, End: 9 * 60}.Validate()
	require.ErrorAs(t, err, &vErr)

	err = TimeRange{Start: 9 * 60, End: 9 * 60}.Validate()
	assert.Error(t, err, "empty range is invalid")

	err = TimeRange{Start: 9 * 60, End: 25 * 60}.Validate()
	assert.Error(t, err, "range past midnight is invalid")
}

func TestTimeRangeContains(t *testing.T) {
	r := TimeRange{Start: 9 * 60, End: 12 * 60}

	assert.True(t, r.Contains(9*60, 30*time.Minute))
	assert.True(t, r.Contains(11*60+30, 30*time.Minute), "last slot may touch the end")
	assert.False(t, r.Contains(11*60+45, 30*time.Minute), "would run past the window")
	assert.False(t, r.Contains(8*60+45, 30*time.Minute), "starts before the window")
}
