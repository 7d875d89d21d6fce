package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_DayKey(t *testing.T) {
	at := time.Date(2024, 3, 9, 23, 59, 59, 0, time.UTC)
	require.Equal(t, "2024-03-09", DayKey(at))
	require.Equal(t, "2024-03-10", DayKey(at.Add(time.Second)))
}

func Test_WeekKey(t *testing.T) {
	// 2024-03-09 is a Saturday in ISO week 10.
	require.Equal(t, "10:2024", WeekKey(time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)))

	// The first days of January can belong to the last ISO week of the
	// previous year.
	require.Equal(t, "52:2022", WeekKey(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func Test_BeginningOfDay(t *testing.T) {
	riyadh, err := time.LoadLocation("Asia/Riyadh")
	require.NoError(t, err)

	at := time.Date(2024, 3, 9, 17, 30, 12, 0, riyadh)
	begin := BeginningOfDay(at)
	require.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, riyadh), begin)
	require.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, riyadh), NextDay(at))
}
