package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"campuslife/internal/common"
	"campuslife/internal/dbjson"
)

func newTestRepo(t *testing.T) UserRepository {
	store, err := dbjson.Open(t.TempDir())
	require.NoError(t, err)
	return NewUserRepository(store)
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	u := &dbjson.User{ID: 1, StudentID: "2023010101", Username: "Ming Li", Email: "ming@campus.edu"}
	require.NoError(t, repo.CreateUser(ctx, u))

	byID, err := repo.GetUserByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Ming Li", byID.Username)

	byStudent, err := repo.FindByLogin(ctx, "2023010101")
	require.NoError(t, err)
	require.Equal(t, u.ID, byStudent.ID)

	byEmail, err := repo.FindByLogin(ctx, "ming@campus.edu")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	_, err = repo.FindByLogin(ctx, "stranger@campus.edu")
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = repo.GetUserByID(ctx, 99)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUserRepository_ExistenceChecks(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, &dbjson.User{
		ID: 1, StudentID: "2023010101", Username: "Ming Li", Email: "ming@campus.edu",
	}))

	taken, err := repo.StudentIDExists(ctx, "2023010101")
	require.NoError(t, err)
	require.True(t, taken)

	taken, err = repo.UsernameExists(ctx, "Ming Li")
	require.NoError(t, err)
	require.True(t, taken)

	taken, err = repo.EmailExists(ctx, "other@campus.edu")
	require.NoError(t, err)
	require.False(t, taken)
}

func TestUserRepository_UpdateUsersAtomically(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := &dbjson.User{ID: 1, StudentID: "a", Username: "Ming Li", Email: "ming@campus.edu"}
	b := &dbjson.User{ID: 2, StudentID: "b", Username: "Hua Wang", Email: "hua@campus.edu"}
	require.NoError(t, repo.CreateUser(ctx, a))
	require.NoError(t, repo.CreateUser(ctx, b))

	a.Following = []dbjson.UserID{2}
	b.Followers = []dbjson.UserID{1}
	require.NoError(t, repo.UpdateUsers(ctx, a, b))

	gotA, err := repo.GetUserByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []dbjson.UserID{2}, gotA.Following)

	gotB, err := repo.GetUserByID(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []dbjson.UserID{1}, gotB.Followers)

	// An unknown user in the batch fails the whole write.
	ghost := &dbjson.User{ID: 99}
	require.ErrorIs(t, repo.UpdateUsers(ctx, a, ghost), common.ErrNotFound)
}
