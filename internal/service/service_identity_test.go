package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/kirana-ledger/internal/logger"
	"github.com/MKhiriev/kirana-ledger/internal/mock"
	"github.com/MKhiriev/kirana-ledger/internal/store"
	"github.com/MKhiriev/kirana-ledger/models"
)

func TestIdentityService_FindByName_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	svc := NewIdentityService(repo, time.Second, logger.Nop())

	repo.EXPECT().FindUserByUsername(gomock.Any(), "alice").
		Return(models.User{UserID: 1, Username: "alice", Role: models.AuthorityEmployee}, nil)

	p, err := svc.FindByName(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, models.Principal{Name: "alice", Authority: models.AuthorityEmployee}, p)
}

func TestIdentityService_FindByName_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	svc := NewIdentityService(repo, time.Second, logger.Nop())

	repo.EXPECT().FindUserByUsername(gomock.Any(), "ghost").Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.FindByName(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrIdentityNotFound)
	assert.NotErrorIs(t, err, ErrIdentityStoreUnavailable)
}

func TestIdentityService_FindByName_StoreUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	svc := NewIdentityService(repo, time.Second, logger.Nop())

	repo.EXPECT().FindUserByUsername(gomock.Any(), "alice").Return(models.User{}, errors.New("unexpected DB error: conn reset"))

	_, err := svc.FindByName(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrIdentityStoreUnavailable)
	assert.NotErrorIs(t, err, ErrIdentityNotFound)
}

func TestIdentityService_FindUser_EmptyNameSkipsStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	svc := NewIdentityService(repo, time.Second, logger.Nop())

	_, err := svc.FindUser(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrIdentityNotFound)
}

func TestIdentityService_FindUser_BoundedByTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	svc := NewIdentityService(repo, 50*time.Millisecond, logger.Nop())

	repo.EXPECT().FindUserByUsername(gomock.Any(), "alice").DoAndReturn(
		func(ctx context.Context, _ string) (models.User, error) {
			deadline, ok := ctx.Deadline()
			assert.True(t, ok, "lookup must carry a deadline")
			assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
			<-ctx.Done()
			return models.User{}, ctx.Err()
		},
	)

	_, err := svc.FindUser(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrIdentityStoreUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
