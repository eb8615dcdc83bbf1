package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rpggio/wanderlist/internal/docstore"
)

// Service handles user documents.
type Service struct {
	store  docstore.Store
	logger *slog.Logger
}

// NewService creates a new user service. A nil store makes every call fail
// with ErrStoreUnavailable.
func NewService(store docstore.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, logger: logger}
}

// Ensure returns the user for a device id, creating it with the default name
// and avatar when it doesn't exist yet.
func (s *Service) Ensure(ctx context.Context, id string) (*User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}
	if s.store == nil {
		return nil, ErrStoreUnavailable
	}

	doc, err := s.store.Get(ctx, docstore.Users, id)
	if err == nil {
		var u User
		if err := doc.Decode(&u); err != nil {
			return nil, fmt.Errorf("decoding user: %w", err)
		}
		u.ID = id
		return &u, nil
	}
	if !errors.Is(err, docstore.ErrNotFound) {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	u := &User{ID: id, Name: DefaultName, Avatar: DefaultAvatar(id)}
	if err := s.store.Set(ctx, docstore.Users, id, u); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	s.logger.Info("created user for device", "user_id", id)
	return u, nil
}
