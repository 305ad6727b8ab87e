package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	_, err = NewTimeStringFromString("9:30am")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("25:00")
	assert.Error(t, err)
}

func TestTimeString_Validate(t *testing.T) {
	assert.NoError(t, TimeString("00:00").Validate())
	assert.NoError(t, TimeString("23:59").Validate())
	assert.Error(t, TimeString("").Validate())
	assert.Error(t, TimeString("12:60").Validate())
	assert.Error(t, TimeString("noon").Validate())
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("10:00")

	got, err := ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, "11:30", got.String())

	// Перенос через полночь заворачивается
	got, err = TimeString("23:30").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, "00:30", got.String())

	_, err = TimeString("bad").AddMinutes(10)
	assert.Error(t, err)
}

func TestTimeString_MinutesUntil(t *testing.T) {
	minutes, err := TimeString("09:00").MinutesUntil("18:00")
	require.NoError(t, err)
	assert.Equal(t, 540, minutes)

	minutes, err = TimeString("18:00").MinutesUntil("09:00")
	require.NoError(t, err)
	assert.Equal(t, -540, minutes)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("11:00").IsAfter("10:00"))
}

func TestTimeString_OnDate(t *testing.T) {
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	got, err := TimeString("10:30").OnDate(date, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 12, 10, 30, 0, 0, time.UTC), got)

	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)
	got, err = TimeString("10:30").OnDate(date, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 12, 10, 30, 0, 0, loc), got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, "10:30", ts.String())

	require.NoError(t, ts.Scan([]byte("09:15")))
	assert.Equal(t, "09:15", ts.String())

	require.NoError(t, ts.Scan(time.Date(2026, 3, 12, 14, 45, 0, 0, time.UTC)))
	assert.Equal(t, "14:45", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(12345))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:30", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bad").Value()
	assert.Error(t, err)
}
