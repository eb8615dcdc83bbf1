package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/rpggio/wanderlist/internal/domain/trip"
	"github.com/rpggio/wanderlist/internal/mcp"
	"github.com/rpggio/wanderlist/internal/testserver"
	"github.com/rpggio/wanderlist/internal/transport"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestHealth(t *testing.T) {
	ts := testserver.New(t, testserver.Options{})

	resp, err := http.Get(ts.Server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body transport.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Store)
}

func TestTwoDevicesShareATrip(t *testing.T) {
	alice := testserver.New(t, testserver.Options{UserID: "user-1-alice0000", Now: clock})
	bob := testserver.New(t, testserver.Options{UserID: "user-2-bob000000", DBPath: alice.DBPath, Now: clock})

	aliceSession := alice.Connect(t)
	bobSession := bob.Connect(t)

	var created mcp.TripResponse
	testserver.Call(t, aliceSession, "create_trip", map[string]any{
		"destination": "Shanghai", "start_date": "2025-04-10", "end_date": "2025-04-12",
	}, &created)

	require.Eventually(t, func() bool {
		_, err := bob.Planner.Trip(created.ID)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond, "bob sees alice's trip")

	var list mcp.TripListResponse
	testserver.Call(t, bobSession, "list_trips", nil, &list)
	require.Len(t, list.Trips, 1)
	require.False(t, list.Trips[0].Joined)
	require.False(t, list.Trips[0].Active, "selection is per device")

	var joined mcp.TripResponse
	testserver.Call(t, bobSession, "join_trip", map[string]any{"trip_id": created.ID}, &joined)
	require.ElementsMatch(t, []string{alice.UserID, bob.UserID}, joined.Participants)

	testserver.Call(t, bobSession, "add_expense", map[string]any{
		"trip_id": created.ID, "description": "Hotel", "amount": 3000,
	}, nil)

	require.Eventually(t, func() bool {
		sheet, err := alice.Planner.BalanceSheet(created.ID)
		return err == nil && sheet.Total == 3000
	}, 2*time.Second, 10*time.Millisecond, "alice sees bob's expense")

	var sheet mcp.BalancesResponse
	testserver.Call(t, aliceSession, "get_balances", nil, &sheet)
	require.Len(t, sheet.Balances, 2)
	require.Equal(t, bob.UserID, sheet.Balances[0].UserID)
	require.InDelta(t, 1500, sheet.Balances[0].Amount, 0.001)
	require.Len(t, sheet.Transfers, 1)
	require.Equal(t, alice.UserID, sheet.Transfers[0].FromUserID)
	require.Equal(t, bob.UserID, sheet.Transfers[0].ToUserID)
	require.InDelta(t, 1500, sheet.Transfers[0].Amount, 0.001)
}

func TestDeletedTripClearsOtherDevicesSelection(t *testing.T) {
	alice := testserver.New(t, testserver.Options{UserID: "user-1-alice0000", Now: clock})
	bob := testserver.New(t, testserver.Options{UserID: "user-2-bob000000", DBPath: alice.DBPath, Now: clock})

	aliceSession := alice.Connect(t)
	var created mcp.TripResponse
	testserver.Call(t, aliceSession, "create_trip", map[string]any{
		"destination": "Taipei", "start_date": "2025-04-10", "end_date": "2025-04-10",
	}, &created)

	require.Eventually(t, func() bool {
		_, err := bob.Planner.SelectTrip(created.ID)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	testserver.Call(t, aliceSession, "delete_trip", map[string]any{"trip_id": created.ID}, nil)

	require.Eventually(t, func() bool {
		_, err := bob.Planner.ActiveTrip()
		return err != nil
	}, 2*time.Second, 10*time.Millisecond, "bob's selection follows the deletion")
}

func TestEditsSurviveReload(t *testing.T) {
	first := testserver.New(t, testserver.Options{Now: clock})
	cs := first.Connect(t)

	var created mcp.TripResponse
	testserver.Call(t, cs, "create_trip", map[string]any{
		"destination": "Kyoto", "start_date": "2025-04-10", "end_date": "2025-04-11",
	}, &created)
	testserver.Call(t, cs, "add_flight", map[string]any{
		"day_id": created.Days[0].ID, "flight_number": "jl81", "origin": "HND", "destination": "KIX",
		"departure_time": "08:10", "arrival_time": "09:25",
	}, nil)

	second := testserver.New(t, testserver.Options{UserID: first.UserID, DBPath: first.DBPath, Now: clock})
	reloaded, err := second.Planner.Trip(created.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Days, 2)
	require.Len(t, reloaded.Days[0].Items, 1)

	flight, ok := reloaded.Days[0].Items[0].(trip.FlightItem)
	require.True(t, ok)
	require.Equal(t, "JL81", flight.FlightNumber)
	require.Equal(t, "08:10", flight.SortTime())
}
