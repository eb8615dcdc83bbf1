package trip_test

import (
	"encoding/json"
	"testing"

	"github.com/rpggio/wanderlist/internal/domain/trip"
	"github.com/stretchr/testify/require"
)

func TestDayJSON_DecodesStoredDocument(t *testing.T) {
	raw := `{
		"id": "d1",
		"date": "2025-04-10",
		"dayLabel": "Day 1",
		"weather": {"temp": 21, "condition": "cloudy", "icon": "fa-cloud", "precipitationChance": 40},
		"items": [
			{"id": "i1", "time": "09:00", "location": "The Bund", "description": "walk", "type": "sightseeing", "lat": 31.24, "lng": 121.49, "rating": 4.7, "price": "$$", "openTime": "24h"},
			{"id": "i2", "time": "13:00", "location": "Lunch", "description": "", "type": "food", "lat": 0, "lng": 0},
			{"id": "f1", "time": "11:00", "location": "Arrive PVG", "description": "", "type": "flight", "flightNumber": "CI501", "isArrival": true, "origin": "TPE", "destination": "PVG", "departureTime": "08:30", "arrivalTime": "11:00"}
		]
	}`

	var d trip.Day
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	require.Equal(t, "2025-04-10", d.Date.String())
	require.NotNil(t, d.Weather)
	require.Equal(t, trip.ConditionCloudy, d.Weather.Condition)
	require.Len(t, d.Items, 3)

	bund, ok := d.Items[0].(trip.PlaceItem)
	require.True(t, ok)
	require.Equal(t, "The Bund", bund.Name)
	require.Equal(t, "walk", bund.Note)
	require.NotNil(t, bund.Rating)
	require.InDelta(t, 4.7, *bund.Rating, 1e-9)
	ll, located := bund.Location()
	require.True(t, located)
	require.InDelta(t, 31.24, ll.Lat, 1e-9)

	_, located = d.Items[1].Location()
	require.False(t, located, "0,0 means unlocated")

	flight, ok := d.Items[2].(trip.FlightItem)
	require.True(t, ok)
	require.Equal(t, "11:00", flight.SortTime())
	require.Equal(t, "Arrive PVG", flight.Title())
}

func TestDayJSON_RoundTripKeepsVariants(t *testing.T) {
	rating := 4.5
	d := trip.Day{
		ID:    "d1",
		Date:  trip.NewDate(2025, 4, 10),
		Label: "Day 1",
		Items: []trip.Item{
			trip.PlaceItem{ID: "p", Time: "10:00", Name: "Museum", Category: trip.CategorySightseeing, Rating: &rating, Coords: &trip.LatLng{Lat: 1, Lng: 2}},
			trip.FlightItem{ID: "f", FlightNumber: "BR1", Origin: "TPE", Destination: "NRT", DepartureTime: "07:15"},
		},
	}

	data, err := json.Marshal(d)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	items := generic["items"].([]any)
	flight := items[1].(map[string]any)
	require.Equal(t, "flight", flight["type"])
	require.Equal(t, "Depart TPE", flight["location"])
	require.Equal(t, "07:15", flight["time"])

	var back trip.Day
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, d.Items, back.Items)
}

func TestFlightItem_SortTimeFallback(t *testing.T) {
	require.Equal(t, "06:00", trip.FlightItem{IsArrival: true, DepartureTime: "06:00"}.SortTime())
	require.Equal(t, "09:00", trip.FlightItem{ArrivalTime: "09:00"}.SortTime())
	require.Equal(t, "07:00", trip.FlightItem{DepartureTime: "07:00", ArrivalTime: "09:00"}.SortTime())
}

func TestDateJSON(t *testing.T) {
	var d trip.Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-04-10T08:00:00.000Z"`), &d))
	require.Equal(t, "2025-04-10", d.String())

	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	require.True(t, d.IsZero())

	require.ErrorIs(t, json.Unmarshal([]byte(`"10/04/2025"`), &d), trip.ErrInvalidDate)
}

func TestDayCount(t *testing.T) {
	a := trip.NewDate(2025, 3, 29)
	b := trip.NewDate(2025, 4, 2)
	require.Equal(t, 5, trip.DayCount(a, b))
	require.Equal(t, 5, trip.DayCount(b, a))
	require.Equal(t, 1, trip.DayCount(a, a))
	require.Equal(t, -4, trip.DaysBetween(b, a))
}

func TestStatusOn(t *testing.T) {
	start := trip.NewDate(2025, 4, 10)
	end := trip.NewDate(2025, 4, 12)

	require.Equal(t, "ended", trip.StatusOn(start, end, end.AddDays(1)).Label())
	require.Equal(t, "in progress", trip.StatusOn(start, end, start).Label())
	require.Equal(t, "in progress", trip.StatusOn(start, end, end).Label())
	require.Equal(t, "1 day to go", trip.StatusOn(start, end, start.AddDays(-1)).Label())

	s := trip.StatusOn(start, end, start.AddDays(-30))
	require.Equal(t, trip.PhaseUpcoming, s.Phase)
	require.Equal(t, 30, s.DaysUntil)
	require.Equal(t, "30 days to go", s.Label())
}
