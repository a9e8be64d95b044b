package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"vinylscan/internal/domain/record"
	"vinylscan/internal/domain/session"
	"vinylscan/internal/domain/user"
	"vinylscan/internal/infrastructure/migration"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	path := filepath.Join(t.TempDir(), "vinyl.db")
	require.NoError(t, migration.NewMigration("sqlite", path, migration.DefaultEngine).Up())

	s, err := New(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func createUser(t *testing.T, repo *UserRepository, email string) user.User {
	t.Helper()
	u := user.User{Email: email, PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), &u))
	return u
}

func TestUserRepository(t *testing.T) {
	s := newTestStorage(t)
	repo := NewUserRepository(s.DB(), slog.Default())
	ctx := context.Background()

	u := createUser(t, repo, "a@b.co")
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	found, err := repo.FindByEmail(ctx, "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)

	dup := user.User{Email: "a@b.co", PasswordHash: "other"}
	assert.ErrorIs(t, repo.Create(ctx, &dup), user.ErrAlreadyExists)

	_, err = repo.FindByEmail(ctx, "nobody@b.co")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestSessionRepository(t *testing.T) {
	s := newTestStorage(t)
	u := createUser(t, NewUserRepository(s.DB(), slog.Default()), "a@b.co")
	repo := NewSessionRepository(s.DB(), slog.Default())
	ctx := context.Background()

	now := time.Now()
	repo.now = func() time.Time { return now }

	require.NoError(t, repo.Set(ctx, "live", u.ID, now.Add(time.Hour)))
	require.NoError(t, repo.Set(ctx, "stale", u.ID, now.Add(-time.Second)))

	userID, err := repo.Get(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)

	_, err = repo.Get(ctx, "stale")
	assert.ErrorIs(t, err, session.ErrNotFound)

	purged, err := repo.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	require.NoError(t, repo.Clear(ctx, "live"))
	_, err = repo.Get(ctx, "live")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestRecordRepository(t *testing.T) {
	s := newTestStorage(t)
	users := NewUserRepository(s.DB(), slog.Default())
	alice := createUser(t, users, "alice@b.co")
	bob := createUser(t, users, "bob@b.co")

	repo := NewRecordRepository(s.DB(), slog.Default())
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	year := 1959
	releaseURL := "https://www.discogs.com/release/1"
	first := &record.Record{
		UserID:     alice.ID,
		Artist:     "Miles Davis",
		Album:      "Kind of Blue",
		Year:       &year,
		Genres:     []string{"Jazz"},
		Styles:     []string{"Modal"},
		Musicians:  []string{"John Coltrane (Tenor Saxophone)"},
		ReleaseURL: &releaseURL,
		AddedAt:    base,
		UpdatedAt:  base,
	}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotEmpty(t, first.ID)

	second := &record.Record{UserID: alice.ID, Album: "Untitled", AddedAt: base.Add(time.Second), UpdatedAt: base.Add(time.Second)}
	require.NoError(t, repo.Create(ctx, second))

	list, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, &year, list[1].Year)
	assert.Equal(t, []string{"Jazz"}, list[1].Genres)
	assert.Nil(t, list[0].Year)
	assert.Equal(t, []string{}, list[0].Musicians)
	assert.True(t, list[1].AddedAt.Equal(base))
	assert.Equal(t, &releaseURL, list[1].ReleaseURL)
	assert.Nil(t, list[1].MasterURL)
	assert.Nil(t, list[0].ReleaseURL)

	empty, err := repo.ListByUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)

	t.Run("notes are owner scoped", func(t *testing.T) {
		_, err := repo.UpdateNotes(ctx, bob.ID, first.ID, "mine now", base.Add(time.Hour))
		assert.ErrorIs(t, err, record.ErrNotFound)

		updated, err := repo.UpdateNotes(ctx, alice.ID, first.ID, "first pressing", base.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, "first pressing", updated.Notes)
		assert.True(t, updated.UpdatedAt.Equal(base.Add(time.Hour)))
		assert.True(t, updated.AddedAt.Equal(base))
	})

	t.Run("delete is owner scoped", func(t *testing.T) {
		n, err := repo.Delete(ctx, bob.ID, first.ID)
		require.NoError(t, err)
		assert.Zero(t, n)

		n, err = repo.Delete(ctx, alice.ID, first.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = repo.Delete(ctx, alice.ID, first.ID)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestTimeLayoutSortsLexically(t *testing.T) {
	a := formatTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	b := formatTime(time.Date(2024, 1, 1, 0, 0, 0, 100, time.UTC))
	assert.Less(t, a, b)

	parsed, err := parseTime(b)
	require.NoError(t, err)
	assert.Equal(t, 100, parsed.Nanosecond())
}
