package mcp

import (
	"context"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/wanderlist/internal/domain/expense"
	"github.com/rpggio/wanderlist/internal/domain/route"
	"github.com/rpggio/wanderlist/internal/domain/trip"
	"github.com/rpggio/wanderlist/internal/domain/user"
	"github.com/rpggio/wanderlist/internal/planner"
	"github.com/rpggio/wanderlist/internal/suggest"
)

type tools struct {
	planner Planner
}

func registerTools(server *sdkmcp.Server, t *tools) {
	// Profile
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "whoami", Description: "Show the current device user, the selected trip and everyone else known"}, t.whoami)
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "update_profile", Description: "Change the current user's display name or avatar"}, t.updateProfile)
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "list_avatars", Description: "List the preset avatar URLs"}, t.listAvatars)

	// Trips
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "list_trips", Description: "List every trip with its status relative to today"}, t.listTrips)
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "get_trip", Description: "Get a trip with its days, items and expenses"}, t.getTrip)
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "select_trip", Description: "Select the trip other tools use when trip_id is omitted"}, t.selectTrip)
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "create_trip", Description: "Create a trip with one empty day per date and select it"}, t.createTrip)
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "edit_trip", Description: "Rename a trip, change its cover or move its dates; days are kept, added or dropped to fit the new range"}, t.editTrip)
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "delete_trip", Description: "Delete a trip for everyone"}, t.deleteTrip)
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "join_trip", Description: "Add the current user to a trip's participants"}, t.joinTrip)

	// Days
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "add_day", Description: "Append a day after the last one"}, t.addDay)
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "delete_day", Description: "Delete a day; later days are relabelled and moved one date earlier"}, t.deleteDay)
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "refresh_weather", Description: "Fetch forecasts for a day, or for every day without one"}, t.refreshWeather)
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "get_route", Description: "Distances and travel modes between a day's located items"}, t.getRoute)

	// Items
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "add_place", Description: "Add a place to a day's itinerary"}, t.addPlace)
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "add_flight", Description: "Add a departing or arriving flight to a day"}, t.addFlight)
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "update_place", Description: "Replace a place item's details"}, t.updatePlace)
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "update_flight", Description: "Replace a flight item's details"}, t.updateFlight)
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "delete_item", Description: "Remove an item from a day"}, t.deleteItem)
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "move_item", Description: "Reorder an item within its day"}, t.moveItem)
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "suggest_items", Description: "Ask the AI for itinerary ideas and add them to a day"}, t.suggestItems)
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "locate_place", Description: "Look up coordinates and details for a named place"}, t.locatePlace)
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "suggest_icon", Description: "Suggest a Font Awesome icon for a category"}, t.suggestIcon)

	// Expenses
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "add_expense", Description: "Record a payment; foreign amounts are converted to the reporting currency"}, t.addExpense)
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "update_expense", Description: "Change an expense's description, amount or payer"}, t.updateExpense)
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "delete_expense", Description: "Remove an expense"}, t.deleteExpense)
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: "get_balances", Description: "Per-person balances and the transfers that settle them"}, t.getBalances)
}

func userResponse(u user.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}

func (t *tools) whoami(_ context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, WhoAmIResponse, error) {
	me, err := t.planner.CurrentUser()
	if err != nil {
		return nil, WhoAmIResponse{}, toolError(err)
	}
	users, err := t.planner.Users()
	if err != nil {
		return nil, WhoAmIResponse{}, toolError(err)
	}
	resp := WhoAmIResponse{User: userResponse(me), Users: make([]UserResponse, 0, len(users))}
	for _, u := range users {
		if u.ID != me.ID {
			resp.Users = append(resp.Users, userResponse(u))
		}
	}
	if active, err := t.planner.Trip(""); err == nil {
		resp.ActiveTripID = active.ID
	}
	return nil, resp, nil
}

func (t *tools) updateProfile(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateProfileParams) (*sdkmcp.CallToolResult, UserResponse, error) {
	u, err := t.planner.UpdateProfile(ctx, in.Name, in.Avatar)
	if err != nil {
		return nil, UserResponse{}, toolError(err)
	}
	return nil, userResponse(u), nil
}

func (t *tools) listAvatars(context.Context, *sdkmcp.CallToolRequest, EmptyParams) (*sdkmcp.CallToolResult, AvatarsResponse, error) {
	return nil, AvatarsResponse{Avatars: append([]string{}, user.PresetAvatars...)}, nil
}

func (t *tools) listTrips(context.Context, *sdkmcp.CallToolRequest, EmptyParams) (*sdkmcp.CallToolResult, TripListResponse, error) {
	summaries, err := t.planner.TripSummaries()
	if err != nil {
		return nil, TripListResponse{}, toolError(err)
	}
	resp := TripListResponse{Trips: make([]TripSummaryResponse, 0, len(summaries))}
	for _, s := range summaries {
		resp.Trips = append(resp.Trips, summaryResponse(s))
	}
	return nil, resp, nil
}

func (t *tools) getTrip(_ context.Context, _ *sdkmcp.CallToolRequest, in TripRefParams) (*sdkmcp.CallToolResult, TripResponse, error) {
	tr, err := t.planner.Trip(in.TripID)
	if err != nil {
		return nil, TripResponse{}, toolError(err)
	}
	return nil, tripResponse(tr, t.planner.Today()), nil
}

func (t *tools) selectTrip(_ context.Context, _ *sdkmcp.CallToolRequest, in SelectTripParams) (*sdkmcp.CallToolResult, TripResponse, error) {
	tr, err := t.planner.SelectTrip(in.TripID)
	if err != nil {
		return nil, TripResponse{}, toolError(err)
	}
	if tr.ID == "" {
		return nil, TripResponse{Participants: []string{}, Days: []DayResponse{}, Expenses: []ExpenseResponse{}}, nil
	}
	return nil, tripResponse(tr, t.planner.Today()), nil
}

func parseDate(field, value string) (trip.Date, error) {
	d, err := trip.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return trip.Date{}, &APIError{
			Code:         "INVALID_DATE",
			Message:      field + ": " + err.Error(),
			RecoveryHint: "Use YYYY-MM-DD",
		}
	}
	return d, nil
}

func (t *tools) createTrip(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateTripParams) (*sdkmcp.CallToolResult, TripResponse, error) {
	start, err := parseDate("start_date", in.StartDate)
	if err != nil {
		return nil, TripResponse{}, err
	}
	end, err := parseDate("end_date", in.EndDate)
	if err != nil {
		return nil, TripResponse{}, err
	}
	tr, err := t.planner.CreateTrip(ctx, planner.CreateTripRequest{
		Destination:    in.Destination,
		StartDate:      start,
		EndDate:        end,
		CoverImage:     in.CoverImage,
		CoverImageDark: in.CoverImageDark,
	})
	if err != nil {
		return nil, TripResponse{}, toolError(err)
	}
	return nil, tripResponse(tr, t.planner.Today()), nil
}

func (t *tools) editTrip(ctx context.Context, _ *sdkmcp.CallToolRequest, in EditTripParams) (*sdkmcp.CallToolResult, TripResponse, error) {
	req := planner.EditTripRequest{
		Name:           in.Name,
		CoverImage:     in.CoverImage,
		CoverImageDark: in.CoverImageDark,
	}
	if in.StartDate != nil {
		d, err := parseDate("start_date", *in.StartDate)
		if err != nil {
			return nil, TripResponse{}, err
		}
		req.StartDate = &d
	}
	if in.EndDate != nil {
		d, err := parseDate("end_date", *in.EndDate)
		if err != nil {
			return nil, TripResponse{}, err
		}
		req.EndDate = &d
	}
	tr, err := t.planner.EditTrip(ctx, in.TripID, req)
	if err != nil {
		return nil, TripResponse{}, toolError(err)
	}
	return nil, tripResponse(tr, t.planner.Today()), nil
}

func (t *tools) deleteTrip(ctx context.Context, _ *sdkmcp.CallToolRequest, in TripRefParams) (*sdkmcp.CallToolResult, DeletedResponse, error) {
	tr, err := t.planner.Trip(in.TripID)
	if err != nil {
		return nil, DeletedResponse{}, toolError(err)
	}
	if err := t.planner.DeleteTrip(ctx, tr.ID); err != nil {
		return nil, DeletedResponse{}, toolError(err)
	}
	return nil, DeletedResponse{ID: tr.ID, Deleted: true}, nil
}

func (t *tools) joinTrip(ctx context.Context, _ *sdkmcp.CallToolRequest, in TripRefParams) (*sdkmcp.CallToolResult, TripResponse, error) {
	tr, err := t.planner.JoinTrip(ctx, in.TripID)
	if err != nil {
		return nil, TripResponse{}, toolError(err)
	}
	return nil, tripResponse(tr, t.planner.Today()), nil
}

func (t *tools) addDay(ctx context.Context, _ *sdkmcp.CallToolRequest, in TripRefParams) (*sdkmcp.CallToolResult, DayResultResponse, error) {
	d, err := t.planner.AddDay(ctx, in.TripID)
	if err != nil {
		return nil, DayResultResponse{}, toolError(err)
	}
	return nil, DayResultResponse{Day: dayResponse(d)}, nil
}

func (t *tools) deleteDay(ctx context.Context, _ *sdkmcp.CallToolRequest, in DayRefParams) (*sdkmcp.CallToolResult, TripResponse, error) {
	tr, err := t.planner.DeleteDay(ctx, in.TripID, in.DayID)
	if err != nil {
		return nil, TripResponse{}, toolError(err)
	}
	return nil, tripResponse(tr, t.planner.Today()), nil
}

func (t *tools) refreshWeather(ctx context.Context, _ *sdkmcp.CallToolRequest, in RefreshWeatherParams) (*sdkmcp.CallToolResult, WeatherResponse, error) {
	found, err := t.planner.RefreshWeather(ctx, in.TripID, in.DayID)
	if err != nil {
		return nil, WeatherResponse{}, toolError(err)
	}
	resp := WeatherResponse{Days: make([]DayWeatherResponse, 0, len(found))}
	for _, f := range found {
		resp.Days = append(resp.Days, DayWeatherResponse{DayID: f.DayID, Date: f.Date.String(), Weather: f.Weather})
	}
	return nil, resp, nil
}

func (t *tools) getRoute(_ context.Context, _ *sdkmcp.CallToolRequest, in DayRefParams) (*sdkmcp.CallToolResult, route.Route, error) {
	r, err := t.planner.Route(in.TripID, in.DayID)
	if err != nil {
		return nil, route.Route{}, toolError(err)
	}
	if r.Stops == nil {
		r.Stops = []route.Stop{}
	}
	if r.Legs == nil {
		r.Legs = []route.Leg{}
	}
	return nil, r, nil
}

func (in PlaceParams) input() planner.PlaceInput {
	p := planner.PlaceInput{
		Time:         in.Time,
		Name:         in.Name,
		Note:         in.Note,
		Category:     in.Category,
		Rating:       in.Rating,
		Price:        in.Price,
		OpenHours:    in.OpenHours,
		ImageURL:     in.ImageURL,
		ImageOffsetY: in.ImageOffsetY,
	}
	if in.Lat != nil && in.Lng != nil {
		p.Coords = &trip.LatLng{Lat: *in.Lat, Lng: *in.Lng}
	}
	return p
}

func (in UpdatePlaceParams) input() planner.PlaceInput {
	return PlaceParams{
		Time:         in.Time,
		Name:         in.Name,
		Note:         in.Note,
		Category:     in.Category,
		Rating:       in.Rating,
		Price:        in.Price,
		OpenHours:    in.OpenHours,
		ImageURL:     in.ImageURL,
		ImageOffsetY: in.ImageOffsetY,
		Lat:          in.Lat,
		Lng:          in.Lng,
	}.input()
}

func (in FlightParams) input() planner.FlightInput {
	return planner.FlightInput{
		FlightNumber:        in.FlightNumber,
		Origin:              in.Origin,
		Destination:         in.Destination,
		OriginTerminal:      in.OriginTerminal,
		DestinationTerminal: in.DestinationTerminal,
		DepartureTime:       in.DepartureTime,
		ArrivalTime:         in.ArrivalTime,
		IsArrival:           in.Arrival,
		Note:                in.Note,
	}
}

func (in UpdateFlightParams) input() planner.FlightInput {
	return FlightParams{
		FlightNumber:        in.FlightNumber,
		Origin:              in.Origin,
		Destination:         in.Destination,
		OriginTerminal:      in.OriginTerminal,
		DestinationTerminal: in.DestinationTerminal,
		DepartureTime:       in.DepartureTime,
		ArrivalTime:         in.ArrivalTime,
		Arrival:             in.Arrival,
		Note:                in.Note,
	}.input()
}

func (t *tools) addPlace(ctx context.Context, _ *sdkmcp.CallToolRequest, in PlaceParams) (*sdkmcp.CallToolResult, ItemResultResponse, error) {
	it, err := t.planner.AddPlace(ctx, in.TripID, in.DayID, in.input())
	if err != nil {
		return nil, ItemResultResponse{}, toolError(err)
	}
	return nil, ItemResultResponse{Item: itemResponse(it)}, nil
}

func (t *tools) addFlight(ctx context.Context, _ *sdkmcp.CallToolRequest, in FlightParams) (*sdkmcp.CallToolResult, ItemResultResponse, error) {
	it, err := t.planner.AddFlight(ctx, in.TripID, in.DayID, in.input())
	if err != nil {
		return nil, ItemResultResponse{}, toolError(err)
	}
	return nil, ItemResultResponse{Item: itemResponse(it)}, nil
}

func (t *tools) updatePlace(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdatePlaceParams) (*sdkmcp.CallToolResult, ItemResultResponse, error) {
	it, err := t.planner.UpdatePlace(ctx, in.TripID, in.DayID, in.ItemID, in.input())
	if err != nil {
		return nil, ItemResultResponse{}, toolError(err)
	}
	return nil, ItemResultResponse{Item: itemResponse(it)}, nil
}

func (t *tools) updateFlight(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateFlightParams) (*sdkmcp.CallToolResult, ItemResultResponse, error) {
	it, err := t.planner.UpdateFlight(ctx, in.TripID, in.DayID, in.ItemID, in.input())
	if err != nil {
		return nil, ItemResultResponse{}, toolError(err)
	}
	return nil, ItemResultResponse{Item: itemResponse(it)}, nil
}

func (t *tools) deleteItem(ctx context.Context, _ *sdkmcp.CallToolRequest, in ItemRefParams) (*sdkmcp.CallToolResult, DeletedResponse, error) {
	if err := t.planner.DeleteItem(ctx, in.TripID, in.DayID, in.ItemID); err != nil {
		return nil, DeletedResponse{}, toolError(err)
	}
	return nil, DeletedResponse{ID: in.ItemID, Deleted: true}, nil
}

func (t *tools) moveItem(ctx context.Context, _ *sdkmcp.CallToolRequest, in MoveItemParams) (*sdkmcp.CallToolResult, DayResultResponse, error) {
	d, err := t.planner.MoveItem(ctx, in.TripID, in.DayID, in.From, in.To)
	if err != nil {
		return nil, DayResultResponse{}, toolError(err)
	}
	return nil, DayResultResponse{Day: dayResponse(d)}, nil
}

func (t *tools) suggestItems(ctx context.Context, _ *sdkmcp.CallToolRequest, in SuggestItemsParams) (*sdkmcp.CallToolResult, ItemsResponse, error) {
	items, err := t.planner.GenerateSuggestions(ctx, in.TripID, in.DayID, in.Prompt)
	if err != nil {
		return nil, ItemsResponse{}, toolError(err)
	}
	return nil, ItemsResponse{Items: itemsResponse(items)}, nil
}

func (t *tools) locatePlace(ctx context.Context, _ *sdkmcp.CallToolRequest, in LocatePlaceParams) (*sdkmcp.CallToolResult, PlaceResponse, error) {
	details, err := t.planner.LocatePlace(ctx, in.TripID, in.Name)
	if err != nil {
		return nil, PlaceResponse{}, toolError(err)
	}
	return nil, PlaceResponse{
		Lat:         details.Lat,
		Lng:         details.Lng,
		Rating:      details.Rating,
		OpenHours:   details.OpenTime,
		PriceLevel:  details.PriceLevel,
		Description: details.Description,
		ImageURL:    suggest.ImageURL(details.ImageKeyword),
	}, nil
}

func (t *tools) suggestIcon(ctx context.Context, _ *sdkmcp.CallToolRequest, in SuggestIconParams) (*sdkmcp.CallToolResult, IconResponse, error) {
	return nil, IconResponse{Icon: t.planner.SuggestIcon(ctx, in.Category)}, nil
}

func (in ExpenseParams) input() planner.ExpenseInput {
	return planner.ExpenseInput{
		Description: in.Description,
		Amount:      in.Amount,
		PayerID:     in.PayerID,
		Currency:    in.Currency,
		Rate:        in.Rate,
	}
}

func (in UpdateExpenseParams) input() planner.ExpenseInput {
	return ExpenseParams{
		Description: in.Description,
		Amount:      in.Amount,
		PayerID:     in.PayerID,
		Currency:    in.Currency,
		Rate:        in.Rate,
	}.input()
}

func (t *tools) addExpense(ctx context.Context, _ *sdkmcp.CallToolRequest, in ExpenseParams) (*sdkmcp.CallToolResult, ExpenseResultResponse, error) {
	e, err := t.planner.AddExpense(ctx, in.TripID, in.input())
	if err != nil {
		return nil, ExpenseResultResponse{}, toolError(err)
	}
	return nil, ExpenseResultResponse{Expense: expenseResponse(e)}, nil
}

func (t *tools) updateExpense(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateExpenseParams) (*sdkmcp.CallToolResult, ExpenseResultResponse, error) {
	e, err := t.planner.UpdateExpense(ctx, in.TripID, in.ExpenseID, in.input())
	if err != nil {
		return nil, ExpenseResultResponse{}, toolError(err)
	}
	return nil, ExpenseResultResponse{Expense: expenseResponse(e)}, nil
}

func (t *tools) deleteExpense(ctx context.Context, _ *sdkmcp.CallToolRequest, in ExpenseRefParams) (*sdkmcp.CallToolResult, DeletedResponse, error) {
	if err := t.planner.DeleteExpense(ctx, in.TripID, in.ExpenseID); err != nil {
		return nil, DeletedResponse{}, toolError(err)
	}
	return nil, DeletedResponse{ID: in.ExpenseID, Deleted: true}, nil
}

func (t *tools) getBalances(_ context.Context, _ *sdkmcp.CallToolRequest, in TripRefParams) (*sdkmcp.CallToolResult, BalancesResponse, error) {
	sheet, err := t.planner.BalanceSheet(in.TripID)
	if err != nil {
		return nil, BalancesResponse{}, toolError(err)
	}
	resp := BalancesResponse{
		Currency:  sheet.Currency,
		Total:     sheet.Total,
		Balances:  sheet.Balances,
		Transfers: sheet.Transfers,
	}
	if resp.Balances == nil {
		resp.Balances = []expense.Balance{}
	}
	if resp.Transfers == nil {
		resp.Transfers = []expense.Transfer{}
	}
	return nil, resp, nil
}
