// Package mocks holds testify mocks for the planner's collaborators.
package mocks

import (
	"context"

	"github.com/rpggio/wanderlist/internal/dispatch"
	"github.com/rpggio/wanderlist/internal/docstore"
	"github.com/rpggio/wanderlist/internal/domain/trip"
	"github.com/rpggio/wanderlist/internal/domain/user"
	"github.com/rpggio/wanderlist/internal/suggest"
	"github.com/stretchr/testify/mock"
)

// Store is a mock for docstore.Store.
type Store struct {
	mock.Mock
}

func (m *Store) Subscribe(ctx context.Context, collection string, onChange docstore.ChangeFunc) (docstore.Unsubscribe, error) {
	args := m.Called(ctx, collection, onChange)
	if fn, ok := args.Get(0).(docstore.Unsubscribe); ok {
		return fn, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	args := m.Called(ctx, collection, id)
	return args.Get(0).(docstore.Document), args.Error(1)
}

func (m *Store) Add(ctx context.Context, collection string, doc any) (string, error) {
	args := m.Called(ctx, collection, doc)
	return args.String(0), args.Error(1)
}

func (m *Store) Set(ctx context.Context, collection, id string, doc any) error {
	args := m.Called(ctx, collection, id, doc)
	return args.Error(0)
}

func (m *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	args := m.Called(ctx, collection, id, fields)
	return args.Error(0)
}

func (m *Store) Delete(ctx context.Context, collection, id string) error {
	args := m.Called(ctx, collection, id)
	return args.Error(0)
}

// StateReader is a mock for planner.StateReader.
type StateReader struct {
	mock.Mock
}

func (m *StateReader) Available() bool {
	return m.Called().Bool(0)
}

func (m *StateReader) Ready(collection string) bool {
	return m.Called(collection).Bool(0)
}

func (m *StateReader) Trips() []trip.Trip {
	args := m.Called()
	if trips, ok := args.Get(0).([]trip.Trip); ok {
		return trips
	}
	return nil
}

func (m *StateReader) Trip(id string) (trip.Trip, bool) {
	args := m.Called(id)
	return args.Get(0).(trip.Trip), args.Bool(1)
}

func (m *StateReader) Users() []user.User {
	args := m.Called()
	if users, ok := args.Get(0).([]user.User); ok {
		return users
	}
	return nil
}

func (m *StateReader) User(id string) (user.User, bool) {
	args := m.Called(id)
	return args.Get(0).(user.User), args.Bool(1)
}

// Dispatcher is a mock for dispatch.Dispatcher.
type Dispatcher struct {
	mock.Mock
}

func (m *Dispatcher) CreateTrip(ctx context.Context, draft trip.Trip) string {
	return m.Called(ctx, draft).String(0)
}

func (m *Dispatcher) DeleteTrip(ctx context.Context, id string) {
	m.Called(ctx, id)
}

func (m *Dispatcher) ReplaceDays(ctx context.Context, tripID string, days []trip.Day) {
	m.Called(ctx, tripID, days)
}

func (m *Dispatcher) ReplaceExpenses(ctx context.Context, tripID string, expenses []trip.Expense) {
	m.Called(ctx, tripID, expenses)
}

func (m *Dispatcher) UpdateTrip(ctx context.Context, tripID string, patch dispatch.TripPatch) {
	m.Called(ctx, tripID, patch)
}

func (m *Dispatcher) UpdateUserProfile(ctx context.Context, userID string, patch dispatch.ProfilePatch) {
	m.Called(ctx, userID, patch)
}

// Suggester is a mock for planner.Suggester.
type Suggester struct {
	mock.Mock
}

func (m *Suggester) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *Suggester) Suggest(ctx context.Context, prompt, destination string) ([]suggest.Draft, error) {
	args := m.Called(ctx, prompt, destination)
	if drafts, ok := args.Get(0).([]suggest.Draft); ok {
		return drafts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Suggester) LookupPlace(ctx context.Context, name, city string) (*suggest.PlaceDetails, error) {
	args := m.Called(ctx, name, city)
	if details, ok := args.Get(0).(*suggest.PlaceDetails); ok {
		return details, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Suggester) SuggestIcon(ctx context.Context, category string) string {
	return m.Called(ctx, category).String(0)
}

// WeatherSource is a mock for planner.WeatherSource.
type WeatherSource struct {
	mock.Mock
}

func (m *WeatherSource) Lookup(ctx context.Context, location string, date trip.Date) (*trip.Weather, error) {
	args := m.Called(ctx, location, date)
	if w, ok := args.Get(0).(*trip.Weather); ok {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}
