package dispatch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/wanderlist/internal/dispatch"
	"github.com/rpggio/wanderlist/internal/docstore"
	"github.com/rpggio/wanderlist/internal/domain/trip"
	"github.com/rpggio/wanderlist/internal/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_CreateTrip(t *testing.T) {
	ctx := context.Background()
	store := &mocks.Store{}
	store.On("Add", ctx, docstore.Trips, mock.MatchedBy(func(tr trip.Trip) bool {
		return tr.ID == "" && tr.Days != nil && tr.Expenses != nil
	})).Return("t1", nil).Once()

	id := dispatch.New(store, nil).CreateTrip(ctx, trip.Trip{ID: "ignored", Name: "Trip"})
	require.Equal(t, "t1", id)
	store.AssertExpectations(t)
}

func TestDispatcher_CreateTripFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	store := &mocks.Store{}
	store.On("Add", ctx, docstore.Trips, mock.Anything).Return("", errors.New("locked"))

	require.Empty(t, dispatch.New(store, nil).CreateTrip(ctx, trip.Trip{}))
}

func TestDispatcher_ReplaceFields(t *testing.T) {
	ctx := context.Background()
	store := &mocks.Store{}
	store.On("Update", ctx, docstore.Trips, "t1", map[string]any{"days": []trip.Day{}}).Return(nil).Once()
	store.On("Update", ctx, docstore.Trips, "t1", map[string]any{"expenses": []trip.Expense{}}).Return(errors.New("gone")).Once()

	d := dispatch.New(store, nil)
	d.ReplaceDays(ctx, "t1", nil)
	d.ReplaceExpenses(ctx, "t1", nil)
	store.AssertExpectations(t)
}

func TestDispatcher_UpdateTripSendsOnlySetFields(t *testing.T) {
	ctx := context.Background()
	name := "Renamed"
	start := trip.NewDate(2025, 4, 10)

	store := &mocks.Store{}
	store.On("Update", ctx, docstore.Trips, "t1", map[string]any{"name": "Renamed", "startDate": start}).Return(nil).Once()

	d := dispatch.New(store, nil)
	d.UpdateTrip(ctx, "t1", dispatch.TripPatch{Name: &name, StartDate: &start})
	d.UpdateTrip(ctx, "t1", dispatch.TripPatch{})
	store.AssertExpectations(t)
}

func TestDispatcher_UpdateUserProfile(t *testing.T) {
	ctx := context.Background()
	avatar := "https://example.com/a.svg"

	store := &mocks.Store{}
	store.On("Update", ctx, docstore.Users, "u1", map[string]any{"avatar": avatar}).Return(nil).Once()

	dispatch.New(store, nil).UpdateUserProfile(ctx, "u1", dispatch.ProfilePatch{Avatar: &avatar})
	store.AssertExpectations(t)
}

func TestDispatcher_WithoutStoreIsNoop(t *testing.T) {
	d := dispatch.New(nil, nil)
	ctx := context.Background()

	require.Empty(t, d.CreateTrip(ctx, trip.Trip{}))
	d.DeleteTrip(ctx, "t1")
	d.ReplaceDays(ctx, "t1", nil)
	d.UpdateUserProfile(ctx, "u1", dispatch.ProfilePatch{})
}
