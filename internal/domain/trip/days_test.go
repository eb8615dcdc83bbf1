package trip_test

import (
	"testing"

	"github.com/rpggio/wanderlist/internal/domain/trip"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) trip.Date {
	t.Helper()
	d, err := trip.ParseDate(s)
	require.NoError(t, err)
	return d
}

func place(id, at string) trip.PlaceItem {
	return trip.PlaceItem{ID: id, Time: at, Name: id, Category: trip.CategorySightseeing}
}

func TestGenerateDays(t *testing.T) {
	days := trip.GenerateDays(mustDate(t, "2025-04-10"), mustDate(t, "2025-04-12"))
	require.Len(t, days, 3)
	for i, want := range []string{"2025-04-10", "2025-04-11", "2025-04-12"} {
		require.Equal(t, want, days[i].Date.String())
		require.Equal(t, trip.DayLabel(i), days[i].Label)
		require.NotEmpty(t, days[i].ID)
		require.Empty(t, days[i].Items)
	}
	require.Equal(t, "Day 1", days[0].Label)
	require.Equal(t, "Day 3", days[2].Label)
}

func TestReconcile_ShrinkDropsItems(t *testing.T) {
	start := mustDate(t, "2025-04-10")
	days := trip.GenerateDays(start, mustDate(t, "2025-04-12"))
	days[1] = trip.InsertItems(days[1], place("a", "09:00"))
	days[2] = trip.InsertItems(days[2], place("b", "10:00"))

	out := trip.Reconcile(days, start, start, mustDate(t, "2025-04-10"))
	require.Len(t, out, 1)
	require.Equal(t, days[0].ID, out[0].ID)
	require.Empty(t, out[0].Items)
}

func TestReconcile_ExtendAppendsEmptyDays(t *testing.T) {
	start := mustDate(t, "2025-04-10")
	days := trip.GenerateDays(start, mustDate(t, "2025-04-11"))
	days[1] = trip.InsertItems(days[1], place("a", "09:00"))

	out := trip.Reconcile(days, start, start, mustDate(t, "2025-04-14"))
	require.Len(t, out, 5)
	require.Equal(t, days[1].ID, out[1].ID)
	require.Len(t, out[1].Items, 1)
	require.Equal(t, "2025-04-12", out[2].Date.String())
	require.Equal(t, "Day 5", out[4].Label)
	require.Equal(t, "2025-04-14", out[4].Date.String())
	require.Empty(t, out[4].Items)
}

func TestReconcile_ShiftRedatesKeepingItems(t *testing.T) {
	oldStart := mustDate(t, "2025-04-10")
	days := trip.GenerateDays(oldStart, mustDate(t, "2025-04-12"))
	days[0] = trip.InsertItems(days[0], place("a", "09:00"))

	newStart := mustDate(t, "2025-05-01")
	out := trip.Reconcile(days, oldStart, newStart, mustDate(t, "2025-05-03"))
	require.Len(t, out, 3)
	for i := range out {
		require.Equal(t, newStart.AddDays(i), out[i].Date)
		require.Equal(t, days[i].ID, out[i].ID)
		require.Equal(t, days[i].Label, out[i].Label)
	}
	require.Len(t, out[0].Items, 1)
	// the input is left alone
	require.Equal(t, "2025-04-10", days[0].Date.String())
}

func TestReconcile_LengthProperty(t *testing.T) {
	start := mustDate(t, "2025-01-01")
	days := trip.GenerateDays(start, start.AddDays(4))
	for i := range days {
		days[i] = trip.InsertItems(days[i], place(days[i].ID+"-item", "12:00"))
	}

	for shift := -3; shift <= 3; shift++ {
		for length := 0; length <= 8; length++ {
			newStart := start.AddDays(shift)
			out := trip.Reconcile(days, start, newStart, newStart.AddDays(length))
			require.Len(t, out, length+1)
			for i := range out {
				require.Equal(t, newStart.AddDays(i), out[i].Date)
				if i < len(days) {
					require.Len(t, out[i].Items, 1)
				} else {
					require.Empty(t, out[i].Items)
				}
			}
		}
	}
}

func TestValidateRange(t *testing.T) {
	require.NoError(t, trip.ValidateRange(mustDate(t, "2025-04-10"), mustDate(t, "2025-04-10")))
	require.ErrorIs(t, trip.ValidateRange(mustDate(t, "2025-04-10"), mustDate(t, "2025-04-09")), trip.ErrInvalidDateRange)
	require.ErrorIs(t, trip.ValidateRange(trip.Date{}, mustDate(t, "2025-04-09")), trip.ErrInvalidInput)
}

func TestAppendDay(t *testing.T) {
	start := mustDate(t, "2025-04-10")
	days := trip.GenerateDays(start, start.AddDays(1))

	out := trip.AppendDay(days, mustDate(t, "2030-01-01"))
	require.Len(t, out, 3)
	require.Len(t, days, 2)
	require.Equal(t, "2025-04-12", out[2].Date.String())
	require.Equal(t, "Day 3", out[2].Label)

	empty := trip.AppendDay(nil, mustDate(t, "2030-01-01"))
	require.Len(t, empty, 1)
	require.Equal(t, "2030-01-01", empty[0].Date.String())
	require.Equal(t, "Day 1", empty[0].Label)
}

func TestDeleteDay_RelabelsAndRedates(t *testing.T) {
	start := mustDate(t, "2025-04-10")
	days := trip.GenerateDays(start, start.AddDays(3))
	days[2] = trip.InsertItems(days[2], place("keep", "09:00"))

	out, err := trip.DeleteDay(days, days[1].ID)
	require.NoError(t, err)
	require.Len(t, out, 3)
	require.Equal(t, []string{"Day 1", "Day 2", "Day 3"}, []string{out[0].Label, out[1].Label, out[2].Label})
	require.Equal(t, "2025-04-11", out[1].Date.String())
	require.Equal(t, days[2].ID, out[1].ID)
	require.Len(t, out[1].Items, 1)
}

func TestDeleteDay_FirstDayStartsFromNextDate(t *testing.T) {
	start := mustDate(t, "2025-04-10")
	days := trip.GenerateDays(start, start.AddDays(2))

	out, err := trip.DeleteDay(days, days[0].ID)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "2025-04-11", out[0].Date.String())
	require.Equal(t, "2025-04-12", out[1].Date.String())
	require.Equal(t, "Day 1", out[0].Label)
}

func TestDeleteDay_Errors(t *testing.T) {
	start := mustDate(t, "2025-04-10")
	days := trip.GenerateDays(start, start)

	_, err := trip.DeleteDay(days, "missing")
	require.ErrorIs(t, err, trip.ErrDayNotFound)

	_, err = trip.DeleteDay(days, days[0].ID)
	require.ErrorIs(t, err, trip.ErrLastDay)
}
