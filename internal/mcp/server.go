// Package mcp exposes the trip planner as Model Context Protocol tools.
package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/wanderlist/internal/domain/route"
	"github.com/rpggio/wanderlist/internal/domain/trip"
	"github.com/rpggio/wanderlist/internal/domain/user"
	"github.com/rpggio/wanderlist/internal/planner"
	"github.com/rpggio/wanderlist/internal/suggest"
)

// Planner defines the planner operations needed by MCP.
type Planner interface {
	UserID() string
	Today() trip.Date
	CurrentUser() (user.User, error)
	Users() ([]user.User, error)
	UpdateProfile(ctx context.Context, name, avatar string) (user.User, error)

	TripSummaries() ([]planner.TripSummary, error)
	Trip(id string) (trip.Trip, error)
	SelectTrip(id string) (trip.Trip, error)
	CreateTrip(ctx context.Context, req planner.CreateTripRequest) (trip.Trip, error)
	EditTrip(ctx context.Context, id string, req planner.EditTripRequest) (trip.Trip, error)
	DeleteTrip(ctx context.Context, id string) error
	JoinTrip(ctx context.Context, id string) (trip.Trip, error)
	AddDay(ctx context.Context, tripID string) (trip.Day, error)
	DeleteDay(ctx context.Context, tripID, dayID string) (trip.Trip, error)
	RefreshWeather(ctx context.Context, tripID, dayID string) ([]planner.DayWeather, error)

	AddPlace(ctx context.Context, tripID, dayID string, in planner.PlaceInput) (trip.PlaceItem, error)
	AddFlight(ctx context.Context, tripID, dayID string, in planner.FlightInput) (trip.FlightItem, error)
	UpdatePlace(ctx context.Context, tripID, dayID, itemID string, in planner.PlaceInput) (trip.PlaceItem, error)
	UpdateFlight(ctx context.Context, tripID, dayID, itemID string, in planner.FlightInput) (trip.FlightItem, error)
	DeleteItem(ctx context.Context, tripID, dayID, itemID string) error
	MoveItem(ctx context.Context, tripID, dayID string, from, to int) (trip.Day, error)
	GenerateSuggestions(ctx context.Context, tripID, dayID, prompt string) ([]trip.Item, error)
	LocatePlace(ctx context.Context, tripID, name string) (*suggest.PlaceDetails, error)
	SuggestIcon(ctx context.Context, category string) string
	Route(tripID, dayID string) (route.Route, error)

	AddExpense(ctx context.Context, tripID string, in planner.ExpenseInput) (trip.Expense, error)
	UpdateExpense(ctx context.Context, tripID, expenseID string, in planner.ExpenseInput) (trip.Expense, error)
	DeleteExpense(ctx context.Context, tripID, expenseID string) error
	BalanceSheet(tripID string) (planner.BalanceSheet, error)
}

// Config contains server configuration.
type Config struct {
	Planner Planner
	// StoreAvailable reports whether a document store is configured. When it
	// returns false every tool call fails with STORE_UNAVAILABLE.
	StoreAvailable func() bool
	TransportMode  string // "stdio" or "http"
	Version        string
	Logger         *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "wanderlist",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(storeGuardMiddleware(cfg.StoreAvailable))
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, &tools{planner: cfg.Planner})

	return server
}
