// Package dispatch turns planner intents into document store writes.
//
// Days and expenses are written as whole fields, so two clients editing the
// same list race and the last write wins. Profile updates merge per field.
package dispatch

import (
	"context"
	"log/slog"

	"github.com/rpggio/wanderlist/internal/docstore"
	"github.com/rpggio/wanderlist/internal/domain/trip"
)

// TripPatch lists trip fields to overwrite. Nil fields are left alone.
type TripPatch struct {
	Name           *string
	Destination    *string
	CoverImage     *string
	CoverImageDark *string
	StartDate      *trip.Date
	EndDate        *trip.Date
	Days           []trip.Day
	Participants   []string
}

func (p TripPatch) fields() map[string]any {
	fields := map[string]any{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Destination != nil {
		fields["destination"] = *p.Destination
	}
	if p.CoverImage != nil {
		fields["coverImage"] = *p.CoverImage
	}
	if p.CoverImageDark != nil {
		fields["coverImageDark"] = *p.CoverImageDark
	}
	if p.StartDate != nil {
		fields["startDate"] = *p.StartDate
	}
	if p.EndDate != nil {
		fields["endDate"] = *p.EndDate
	}
	if p.Days != nil {
		fields["days"] = p.Days
	}
	if p.Participants != nil {
		fields["participants"] = p.Participants
	}
	return fields
}

// ProfilePatch lists user fields to change.
type ProfilePatch struct {
	Name   *string
	Avatar *string
}

// Dispatcher writes planner changes. Implementations never return write
// errors to the caller.
type Dispatcher interface {
	// CreateTrip stores a new trip and returns its id, or "" when nothing was
	// written.
	CreateTrip(ctx context.Context, draft trip.Trip) string
	DeleteTrip(ctx context.Context, id string)
	ReplaceDays(ctx context.Context, tripID string, days []trip.Day)
	ReplaceExpenses(ctx context.Context, tripID string, expenses []trip.Expense)
	UpdateTrip(ctx context.Context, tripID string, patch TripPatch)
	UpdateUserProfile(ctx context.Context, userID string, patch ProfilePatch)
}

// DocumentDispatcher implements Dispatcher on a docstore.Store. Without a
// store every call is a no-op.
type DocumentDispatcher struct {
	store  docstore.Store
	logger *slog.Logger
}

// New creates a DocumentDispatcher.
func New(store docstore.Store, logger *slog.Logger) *DocumentDispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DocumentDispatcher{store: store, logger: logger}
}

func (d *DocumentDispatcher) CreateTrip(ctx context.Context, draft trip.Trip) string {
	if d.store == nil {
		return ""
	}
	draft.ID = ""
	if draft.Days == nil {
		draft.Days = []trip.Day{}
	}
	if draft.Expenses == nil {
		draft.Expenses = []trip.Expense{}
	}
	id, err := d.store.Add(ctx, docstore.Trips, draft)
	if err != nil {
		d.logger.Error("create trip failed", "destination", draft.Destination, "error", err)
		return ""
	}
	d.logger.Info("trip created", "trip_id", id, "destination", draft.Destination)
	return id
}

func (d *DocumentDispatcher) DeleteTrip(ctx context.Context, id string) {
	if d.store == nil {
		return
	}
	if err := d.store.Delete(ctx, docstore.Trips, id); err != nil {
		d.logger.Error("delete trip failed", "trip_id", id, "error", err)
		return
	}
	d.logger.Info("trip deleted", "trip_id", id)
}

func (d *DocumentDispatcher) ReplaceDays(ctx context.Context, tripID string, days []trip.Day) {
	if days == nil {
		days = []trip.Day{}
	}
	d.update(ctx, docstore.Trips, tripID, map[string]any{"days": days})
}

func (d *DocumentDispatcher) ReplaceExpenses(ctx context.Context, tripID string, expenses []trip.Expense) {
	if expenses == nil {
		expenses = []trip.Expense{}
	}
	d.update(ctx, docstore.Trips, tripID, map[string]any{"expenses": expenses})
}

func (d *DocumentDispatcher) UpdateTrip(ctx context.Context, tripID string, patch TripPatch) {
	d.update(ctx, docstore.Trips, tripID, patch.fields())
}

func (d *DocumentDispatcher) UpdateUserProfile(ctx context.Context, userID string, patch ProfilePatch) {
	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Avatar != nil {
		fields["avatar"] = *patch.Avatar
	}
	d.update(ctx, docstore.Users, userID, fields)
}

func (d *DocumentDispatcher) update(ctx context.Context, collection, id string, fields map[string]any) {
	if d.store == nil || len(fields) == 0 {
		return
	}
	if err := d.store.Update(ctx, collection, id, fields); err != nil {
		d.logger.Error("document update failed", "collection", collection, "id", id, "error", err)
		return
	}
	d.logger.Debug("document updated", "collection", collection, "id", id, "fields", len(fields))
}
