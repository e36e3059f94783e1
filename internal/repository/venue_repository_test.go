package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var venueCols = []string{
	"id", "name", "genres", "address", "city", "state", "phone", "website",
	"facebook_link", "seeking_talent", "seeking_description", "image_link",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestVenueCreateAssignsID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	mock.ExpectExec("INSERT INTO venues").
		WithArgs("The Rooftop", []byte(`["Jazz","Rock"]`), "12 Main St", "San Francisco", "CA",
			"555-0100", "https://rooftop.example", "https://fb.example/rooftop",
			true, "Looking for jazz acts", "https://img.example/rooftop.png").
		WillReturnResult(sqlmock.NewResult(7, 1))

	v := &Venue{
		Name:               "The Rooftop",
		Genres:             []string{"Jazz", "Rock"},
		Address:            "12 Main St",
		City:               "San Francisco",
		State:              "CA",
		Phone:              "555-0100",
		Website:            "https://rooftop.example",
		FacebookLink:       "https://fb.example/rooftop",
		SeekingTalent:      true,
		SeekingDescription: "Looking for jazz acts",
		ImageLink:          "https://img.example/rooftop.png",
	}
	require.NoError(t, repo.Create(context.Background(), v))
	assert.Equal(t, uint64(7), v.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueGetByIDRoundTrip(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	mock.ExpectQuery("FROM venues WHERE id").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(venueCols).AddRow(
			7, "The Rooftop", `["Jazz","Jazz","Rock"]`, "12 Main St", "San Francisco", "CA",
			"555-0100", "https://rooftop.example", "https://fb.example/rooftop",
			true, "Looking for jazz acts", "https://img.example/rooftop.png"))

	v, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "The Rooftop", v.Name)
	// Tag order and duplicates survive the round trip verbatim.
	assert.Equal(t, []string{"Jazz", "Jazz", "Rock"}, v.Genres)
	assert.True(t, v.SeekingTalent)
	assert.Equal(t, "San Francisco", v.City)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	mock.ExpectQuery("FROM venues WHERE id").
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestVenueDeleteCascadesToShows(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM venues WHERE id").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec("DELETE FROM shows WHERE venue_id").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM venues WHERE id").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteByID(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueDeleteMissingRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM venues WHERE id").
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.DeleteByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrVenueNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueDeleteFailureRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	boom := errors.New("deadlock")
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM venues WHERE id").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec("DELETE FROM shows WHERE venue_id").
		WithArgs(uint64(7)).
		WillReturnError(boom)
	mock.ExpectRollback()

	err := repo.DeleteByID(context.Background(), 7)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueSearchByLocationMatchesExactly(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	mock.ExpectQuery("SELECT v.id, v.name, COUNT").
		WithArgs("Music", "CA").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "count"}).
			AddRow(3, "Harbor Hall", 2))

	matches, err := repo.Search(context.Background(), ParseSearchTerm("Music,  CA"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, uint64(3), matches[0].ID)
	// The upcoming count is per venue, not a running total.
	assert.Equal(t, 2, matches[0].NumUpcomingShows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueSearchByNameUsesSubstringPattern(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	mock.ExpectQuery("SELECT v.id, v.name, COUNT").
		WithArgs("%roo%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "count"}).
			AddRow(7, "The Rooftop", 0).
			AddRow(9, "Rooster House", 1))

	matches, err := repo.Search(context.Background(), ParseSearchTerm("roo"))
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "The Rooftop", matches[0].Name)
	assert.Equal(t, 0, matches[0].NumUpcomingShows)
	assert.Equal(t, 1, matches[1].NumUpcomingShows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueListLocationsKeepsStatesDistinct(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVenueRepo(db)

	mock.ExpectQuery("SELECT DISTINCT state, city FROM venues").
		WillReturnRows(sqlmock.NewRows([]string{"state", "city"}).
			AddRow("IL", "Springfield").
			AddRow("OR", "Springfield"))

	locations, err := repo.ListLocations(context.Background())
	require.NoError(t, err)
	require.Len(t, locations, 2)
	assert.Equal(t, Location{City: "Springfield", State: "IL"}, locations[0])
	assert.Equal(t, Location{City: "Springfield", State: "OR"}, locations[1])
}
