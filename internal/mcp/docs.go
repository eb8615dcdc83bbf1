package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `wanderlist is a shared trip planner. Everyone using the same database sees the same trips.

Core concepts:
- Trip: destination, date range, days, expenses and participants.
- Day: one date of the trip, labelled "Day N", holding items ordered by time.
- Item: either a place (time, name, category, optional coordinates) or a flight.
- Expense: a payment in the reporting currency; balances show who owes whom.
- Selected trip: tools accept trip_id, and fall back to the trip chosen with select_trip.

Default workflow:
1) Orient: whoami, then list_trips.
2) Pick a trip: select_trip(trip_id), then get_trip for day and item IDs.
3) Plan: add_place / add_flight, or suggest_items for AI ideas; locate_place fills coordinates.
4) Reshape: edit_trip moves dates (days are kept, added or dropped); add_day / delete_day.
5) Money: add_expense, then get_balances for the settlement plan.

Notes:
- Times are HH:MM (24h); dates are YYYY-MM-DD.
- Writes are last-writer-wins; call get_trip again before editing after a long pause.
- STORE_UNAVAILABLE means the server has no database; nothing works until it is restarted with one.

Docs:
- wanderlist://docs/guide (tools by task)
- wanderlist://docs/expenses (currency conversion and settlement)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "wanderlist://docs/guide",
		Name:        "docs_guide",
		Title:       "wanderlist planning guide",
		Description: "Which tool to use for each planning task, with the rules each one enforces.",
		Content: `# wanderlist: Planning Guide

## Trips

- ` + "`create_trip`" + ` makes one empty day per date from start to end and selects the new trip.
  The name is "<destination> Trip"; rename with ` + "`edit_trip`" + `.
- ` + "`edit_trip`" + ` with new dates keeps the days that still fall in range (matched by date),
  adds empty days for new dates and drops the rest. Labels are renumbered.
- ` + "`delete_trip`" + ` removes the trip for every participant.
- ` + "`join_trip`" + ` adds you to the participants, which puts you in the expense split.

## Days

- ` + "`add_day`" + ` appends a day after the last one and extends the end date.
- ` + "`delete_day`" + ` removes a day, moves every later day one date earlier and relabels them.
  The last remaining day cannot be deleted.
- ` + "`refresh_weather`" + ` caches a forecast on days that lack one. Forecasts exist only for
  the next two weeks or so.
- ` + "`get_route`" + ` lists distances between located items; legs up to 2 km are walking.

## Items

- Items are kept sorted by time. ` + "`move_item`" + ` reorders within a day until the next write re-sorts.
- Flights sort by arrival time when ` + "`arrival`" + ` is set, otherwise by departure time.
- ` + "`suggest_items`" + ` adds AI-generated places to a day; nothing is written when the AI returns nothing.
- ` + "`locate_place`" + ` returns coordinates; pass them as lat/lng to ` + "`update_place`" + `.
`,
	},
	{
		URI:         "wanderlist://docs/expenses",
		Name:        "docs_expenses",
		Title:       "wanderlist expenses",
		Description: "How amounts are converted and how balances are settled.",
		Content: `# wanderlist: Expenses

- Amounts are stored in the reporting currency.
- Pass ` + "`currency`" + ` equal to the configured foreign currency to convert; ` + "`rate`" + `
  overrides the configured rate. The result is rounded to a whole unit.
- Balances cover the trip's participants plus anyone who paid. Each person's share is
  the total divided evenly; a positive balance means they are owed money.
- Transfers pair the largest debtor with the largest creditor until every balance is
  cleared. Transfer amounts are rounded to cents.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
