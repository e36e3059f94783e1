package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCreateWithExplicitStartTime(t *testing.T) {
	db, mock := newMock(t)
	repo := NewShowRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO shows").
		WithArgs(uint64(4), uint64(7), "2030-01-02 20:00:00").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("FROM shows WHERE id").
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_time", "artist_id", "venue_id"}).
			AddRow(11, "2030-01-02 20:00:00", 4, 7))
	mock.ExpectCommit()

	s := &Show{ArtistID: 4, VenueID: 7, StartTime: "2030-01-02 20:00:00"}
	require.NoError(t, repo.Create(context.Background(), s))
	assert.Equal(t, uint64(11), s.ID)
	assert.Equal(t, "2030-01-02 20:00:00", s.StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShowCreateDefaultsStartTime(t *testing.T) {
	db, mock := newMock(t)
	repo := NewShowRepo(db)

	// Without a start time only the two foreign keys are inserted and the
	// DB default is read back.
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO shows").
		WithArgs(uint64(4), uint64(7)).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectQuery("FROM shows WHERE id").
		WithArgs(uint64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_time", "artist_id", "venue_id"}).
			AddRow(12, "2026-09-01 10:30:00", 4, 7))
	mock.ExpectCommit()

	s := &Show{ArtistID: 4, VenueID: 7}
	require.NoError(t, repo.Create(context.Background(), s))
	assert.Equal(t, "2026-09-01 10:30:00", s.StartTime)
}

func TestShowCreateRollsBackWhenRowVanishes(t *testing.T) {
	db, mock := newMock(t)
	repo := NewShowRepo(db)

	// A concurrent cascade delete can remove the row between the insert and
	// the read-back; the transaction must roll back and report the loss.
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO shows").
		WithArgs(uint64(4), uint64(7), "2030-01-02 20:00:00").
		WillReturnResult(sqlmock.NewResult(13, 1))
	mock.ExpectQuery("FROM shows WHERE id").
		WithArgs(uint64(13)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	s := &Show{ArtistID: 4, VenueID: 7, StartTime: "2030-01-02 20:00:00"}
	err := repo.Create(context.Background(), s)
	require.ErrorIs(t, err, ErrShowNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShowListAllJoinsBothParents(t *testing.T) {
	db, mock := newMock(t)
	repo := NewShowRepo(db)

	mock.ExpectQuery("JOIN artists a ON").
		WillReturnRows(sqlmock.NewRows([]string{
			"venue_id", "venue_name", "artist_id", "artist_name", "image_link", "start_time",
		}).AddRow(7, "The Rooftop", 4, "Guided by Wire", "https://img.example/gbw.png", "2030-01-02 20:00:00"))

	shows, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, shows, 1)
	assert.Equal(t, "The Rooftop", shows[0].VenueName)
	assert.Equal(t, "Guided by Wire", shows[0].ArtistName)
	assert.Equal(t, "2030-01-02 20:00:00", shows[0].StartTime)
}

func TestShowListByVenue(t *testing.T) {
	db, mock := newMock(t)
	repo := NewShowRepo(db)

	mock.ExpectQuery("WHERE s.venue_id").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"artist_id", "name", "image_link", "start_time"}).
			AddRow(4, "Guided by Wire", "https://img.example/gbw.png", "2000-01-01 20:00:00").
			AddRow(5, "Aurora Drift", "https://img.example/ad.png", "2099-01-01 20:00:00"))

	shows, err := repo.ListByVenue(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, shows, 2)
	assert.Equal(t, uint64(4), shows[0].ArtistID)
	assert.Equal(t, "2099-01-01 20:00:00", shows[1].StartTime)
}
