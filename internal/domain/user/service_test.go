package user_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rpggio/wanderlist/internal/docstore"
	"github.com/rpggio/wanderlist/internal/domain/user"
	"github.com/rpggio/wanderlist/internal/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_EnsureCreatesDefault(t *testing.T) {
	ctx := context.Background()
	store := &mocks.Store{}
	store.On("Get", ctx, docstore.Users, "dev1").Return(docstore.Document{}, docstore.ErrNotFound)
	store.On("Set", ctx, docstore.Users, "dev1", mock.Anything).Return(nil)

	svc := user.NewService(store, nil)
	u, err := svc.Ensure(ctx, "dev1")
	require.NoError(t, err)
	require.Equal(t, user.DefaultName, u.Name)
	require.Equal(t, "https://api.dicebear.com/9.x/avataaars/svg?seed=dev1", u.Avatar)
	store.AssertExpectations(t)
}

func TestUserService_EnsureReturnsExisting(t *testing.T) {
	ctx := context.Background()
	data, err := json.Marshal(map[string]string{"name": "Ann", "avatar": "a.svg"})
	require.NoError(t, err)

	store := &mocks.Store{}
	store.On("Get", ctx, docstore.Users, "dev1").Return(docstore.Document{ID: "dev1", Data: data}, nil)

	u, err := user.NewService(store, nil).Ensure(ctx, "dev1")
	require.NoError(t, err)
	require.Equal(t, "dev1", u.ID)
	require.Equal(t, "Ann", u.Name)
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_EnsureErrors(t *testing.T) {
	ctx := context.Background()

	_, err := user.NewService(nil, nil).Ensure(ctx, "dev1")
	require.ErrorIs(t, err, user.ErrStoreUnavailable)

	_, err = user.NewService(&mocks.Store{}, nil).Ensure(ctx, " ")
	require.ErrorIs(t, err, user.ErrInvalidInput)

	boom := errors.New("disk full")
	store := &mocks.Store{}
	store.On("Get", ctx, docstore.Users, "dev1").Return(docstore.Document{}, docstore.ErrNotFound)
	store.On("Set", ctx, docstore.Users, "dev1", mock.Anything).Return(boom)
	_, err = user.NewService(store, nil).Ensure(ctx, "dev1")
	require.ErrorIs(t, err, boom)
}
