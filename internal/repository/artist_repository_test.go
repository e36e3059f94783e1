package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var artistCols = []string{
	"id", "name", "genres", "city", "state", "phone", "website",
	"facebook_link", "seeking_venue", "seeking_description", "image_link",
	"availability",
}

func TestArtistGetByIDRoundTrip(t *testing.T) {
	db, mock := newMock(t)
	repo := NewArtistRepo(db)

	mock.ExpectQuery("FROM artists WHERE id").
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows(artistCols).AddRow(
			4, "Guided by Wire", `["Indie"]`, "Portland", "OR",
			"555-0199", "https://gbw.example", "https://fb.example/gbw",
			false, "", "https://img.example/gbw.png", "2023-05-01 20:00:00"))

	a, err := repo.GetByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Guided by Wire", a.Name)
	assert.Equal(t, []string{"Indie"}, a.Genres)
	assert.Equal(t, "2023-05-01 20:00:00", a.Availability)
	assert.False(t, a.SeekingVenue)
}

func TestArtistGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewArtistRepo(db)

	mock.ExpectQuery("FROM artists WHERE id").
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrArtistNotFound)
}

func TestArtistAvailability(t *testing.T) {
	db, mock := newMock(t)
	repo := NewArtistRepo(db)

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"availability"}).AddRow("2023-05-01"))

	avail, err := repo.Availability(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "2023-05-01", avail)
}

func TestArtistAvailabilityMissingArtist(t *testing.T) {
	db, mock := newMock(t)
	repo := NewArtistRepo(db)

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Availability(context.Background(), 99)
	assert.ErrorIs(t, err, ErrArtistNotFound)
}

func TestArtistDeleteCascadesToShows(t *testing.T) {
	db, mock := newMock(t)
	repo := NewArtistRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM artists WHERE id").
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec("DELETE FROM shows WHERE artist_id").
		WithArgs(uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM artists WHERE id").
		WithArgs(uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteByID(context.Background(), 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArtistSearchReportsZeroUpcoming(t *testing.T) {
	db, mock := newMock(t)
	repo := NewArtistRepo(db)

	mock.ExpectQuery("SELECT id, name FROM artists WHERE").
		WithArgs("%wire%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(4, "Guided by Wire"))

	matches, err := repo.Search(context.Background(), ParseSearchTerm("wire"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	// Artist search never computes the upcoming count.
	assert.Equal(t, 0, matches[0].NumUpcomingShows)
}

func TestArtistListAllAlphabetical(t *testing.T) {
	db, mock := newMock(t)
	repo := NewArtistRepo(db)

	mock.ExpectQuery("SELECT id, name FROM artists ORDER BY name").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(9, "Aurora Drift").
			AddRow(4, "Guided by Wire"))

	artists, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, artists, 2)
	assert.Equal(t, "Aurora Drift", artists[0].Name)
}
