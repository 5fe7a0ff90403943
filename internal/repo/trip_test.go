package repo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globetrotter/backend/internal/domain"
	"github.com/globetrotter/backend/internal/repo"
	"github.com/globetrotter/backend/testutil"
)

// newTestTx opens a transaction against the test database. The transaction is
// automatically rolled back when the test finishes, giving free per-test
// isolation — no cleanup SQL needed.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return tx
}

// createTestUser inserts a user so trip fixtures have a valid owner to point
// at. The email is randomized to dodge the unique constraint across tests
// sharing one database.
func createTestUser(t *testing.T, tx pgx.Tx) domain.User {
	t.Helper()
	users := repo.NewUserRepo(tx)

	u, err := users.Create(context.Background(), domain.User{
		Email:        fmt.Sprintf("owner-%s@example.com", uuid.NewString()[:8]),
		PasswordHash: "$2a$10$notarealhash",
		Name:         "Test Owner",
		Role:         domain.RoleUser,
	})
	require.NoError(t, err, "create test user")
	return u
}

func tripFixture(ownerID uuid.UUID) domain.Trip {
	return domain.Trip{
		UserID:      ownerID,
		Title:       "Mediterranean Summer",
		Description: "Three weeks island hopping",
		StartDate:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 6, 21, 0, 0, 0, 0, time.UTC),
	}
}

func TestTripRepo_Create(t *testing.T) {
	tx := newTestTx(t)
	owner := createTestUser(t, tx)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	input := tripFixture(owner.ID)
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated")
	assert.Equal(t, owner.ID, got.UserID)
	assert.Equal(t, input.Title, got.Title)
	assert.True(t, got.StartDate.Equal(input.StartDate), "StartDate mismatch")
	assert.True(t, got.EndDate.Equal(input.EndDate), "EndDate mismatch")
	assert.False(t, got.IsPublic, "trips start private")
	assert.Empty(t, got.ShareToken, "no token until shared")
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_ListByUser_NewestStartFirst(t *testing.T) {
	tx := newTestTx(t)
	owner := createTestUser(t, tx)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	early := tripFixture(owner.ID)
	early.Title = "Spring Trip"

	late := tripFixture(owner.ID)
	late.Title = "Autumn Trip"
	late.StartDate = early.StartDate.AddDate(0, 3, 0)
	late.EndDate = early.EndDate.AddDate(0, 3, 0)

	_, err := r.Create(ctx, early)
	require.NoError(t, err)
	_, err = r.Create(ctx, late)
	require.NoError(t, err)

	trips, err := r.ListByUser(ctx, owner.ID)

	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, "Autumn Trip", trips[0].Title, "later start date comes first")
	assert.Equal(t, "Spring Trip", trips[1].Title)
}

func TestTripRepo_ListPublic_ExcludesCaller(t *testing.T) {
	tx := newTestTx(t)
	owner := createTestUser(t, tx)
	other := createTestUser(t, tx)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	mine := tripFixture(owner.ID)
	mine.IsPublic = true
	theirs := tripFixture(other.ID)
	theirs.Title = "Someone Else's Trip"
	theirs.IsPublic = true
	private := tripFixture(other.ID)
	private.Title = "Private Trip"

	for _, trip := range []domain.Trip{mine, theirs, private} {
		_, err := r.Create(ctx, trip)
		require.NoError(t, err)
	}

	trips, err := r.ListPublic(ctx, owner.ID, domain.PaginationParams{Page: 1, Limit: 10})

	require.NoError(t, err)
	require.Len(t, trips, 1, "only the other user's public trip")
	assert.Equal(t, "Someone Else's Trip", trips[0].Title)
}

func TestTripRepo_Update_SparsePatch(t *testing.T) {
	tx := newTestTx(t)
	owner := createTestUser(t, tx)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture(owner.ID))
	require.NoError(t, err)

	title := "Renamed Trip"
	updated, err := r.Update(ctx, created.ID, domain.TripPatch{Title: &title})

	require.NoError(t, err)
	assert.Equal(t, "Renamed Trip", updated.Title)
	assert.Equal(t, created.Description, updated.Description, "untouched fields survive")
	assert.True(t, updated.StartDate.Equal(created.StartDate))
}

// Flipping a trip private must clear its share token in the same statement, so
// a previously issued link stops resolving the moment visibility changes.
func TestTripRepo_Update_PrivateClearsShareToken(t *testing.T) {
	tx := newTestTx(t)
	owner := createTestUser(t, tx)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture(owner.ID))
	require.NoError(t, err)

	shared, err := r.SetShareToken(ctx, created.ID, "tok_abcdefghijklmnopqrstuv")
	require.NoError(t, err)
	require.True(t, shared.IsPublic)
	require.NotEmpty(t, shared.ShareToken)

	isPublic := false
	updated, err := r.Update(ctx, created.ID, domain.TripPatch{IsPublic: &isPublic})

	require.NoError(t, err)
	assert.False(t, updated.IsPublic)
	assert.Empty(t, updated.ShareToken, "token cleared on privatization")

	_, err = r.GetByShareToken(ctx, "tok_abcdefghijklmnopqrstuv")
	assert.ErrorIs(t, err, domain.ErrNotFound, "revoked link no longer resolves")
}

func TestTripRepo_SetShareToken_ReissueReplaces(t *testing.T) {
	tx := newTestTx(t)
	owner := createTestUser(t, tx)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture(owner.ID))
	require.NoError(t, err)

	_, err = r.SetShareToken(ctx, created.ID, "tok_first")
	require.NoError(t, err)
	reissued, err := r.SetShareToken(ctx, created.ID, "tok_second")
	require.NoError(t, err)
	assert.Equal(t, "tok_second", reissued.ShareToken)

	_, err = r.GetByShareToken(ctx, "tok_first")
	assert.ErrorIs(t, err, domain.ErrNotFound, "old token is dead after reissue")

	got, err := r.GetByShareToken(ctx, "tok_second")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestTripRepo_Delete(t *testing.T) {
	tx := newTestTx(t)
	owner := createTestUser(t, tx)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture(owner.ID))
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "trip should be gone after delete")
}

func TestTripRepo_Delete_NotFound(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)

	err := r.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
