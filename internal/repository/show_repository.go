// Package repository contains data access logic for Show domain operations.
// This file defines the Show model and repository methods. A Show is a pure
// join entity booking one artist into one venue at a specific time; it has
// no lifecycle beyond its two owners.
// NOTE: Time strings are stored in DB format "2006-01-02 15:04:05" (UTC).
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Show represents a scheduled booking persisted in the database. StartTime
// uses the DB timestamp format ("YYYY-MM-DD HH:MM:SS" UTC).
type Show struct {
	ID        uint64 `json:"id"`
	StartTime string `json:"start_time"`
	ArtistID  uint64 `json:"artist_id"`
	VenueID   uint64 `json:"venue_id"`
}

// ShowListing is one row of the all-shows listing, joining the venue and
// artist names onto each show.
type ShowListing struct {
	VenueID         uint64 `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	ArtistID        uint64 `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// VenueShow is a show seen from its venue: the artist counterpart plus the
// raw start time string.
type VenueShow struct {
	ArtistID        uint64 `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// ArtistShow is a show seen from its artist: the venue counterpart plus the
// raw start time string.
type ArtistShow struct {
	VenueID        uint64 `json:"venue_id"`
	VenueName      string `json:"venue_name"`
	VenueImageLink string `json:"venue_image_link"`
	StartTime      string `json:"start_time"`
}

// ErrShowNotFound indicates that a show was not located in the DB.
var ErrShowNotFound = errors.New("show not found")

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create inserts a new show and assigns the generated ID back to the show
// struct. When StartTime is empty the DB default (the creation time) is
// used and read back into the struct. Both referenced parents must exist;
// a foreign key failure surfaces as a plain DB error for the handler to
// report, though handlers are expected to verify the references first so
// the absence of a parent can be signalled distinctly.
func (r *ShowRepo) Create(ctx context.Context, s *Show) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// The insert and the read-back of the defaulted start_time share one
	// transaction so a concurrent cascade delete cannot land between them.
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	var res sql.Result
	if s.StartTime == "" {
		const q = `INSERT INTO shows (artist_id, venue_id) VALUES (?, ?)`
		res, err = tx.ExecContext(ctx, q, s.ArtistID, s.VenueID)
	} else {
		const q = `INSERT INTO shows (artist_id, venue_id, start_time) VALUES (?, ?, ?)`
		res, err = tx.ExecContext(ctx, q, s.ArtistID, s.VenueID, s.StartTime)
	}
	if err != nil {
		return err
	}
	var id int64
	if id, err = res.LastInsertId(); err != nil {
		return err
	}
	s.ID = uint64(id)
	const sel = `SELECT id, start_time, artist_id, venue_id FROM shows WHERE id = ?`
	if err = tx.QueryRowContext(ctx, sel, s.ID).Scan(&s.ID, &s.StartTime, &s.ArtistID, &s.VenueID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrShowNotFound
		}
		return err
	}
	return nil
}

// ListAll returns every show with its venue and artist names and the artist
// image, ordered by id.
func (r *ShowRepo) ListAll(ctx context.Context) ([]ShowListing, error) {
	const q = `SELECT s.venue_id, v.name, s.artist_id, a.name, a.image_link, s.start_time
		FROM shows s
		JOIN venues v ON v.id = s.venue_id
		JOIN artists a ON a.id = s.artist_id
		ORDER BY s.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ShowListing
	for rows.Next() {
		var l ShowListing
		if err := rows.Scan(&l.VenueID, &l.VenueName, &l.ArtistID, &l.ArtistName, &l.ArtistImageLink, &l.StartTime); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByVenue returns every show hosted at a venue with the artist
// counterpart joined on, ordered by id.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64) ([]VenueShow, error) {
	const q = `SELECT s.artist_id, a.name, a.image_link, s.start_time
		FROM shows s
		JOIN artists a ON a.id = s.artist_id
		WHERE s.venue_id = ?
		ORDER BY s.id`
	rows, err := r.db.QueryContext(ctx, q, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []VenueShow
	for rows.Next() {
		var vs VenueShow
		if err := rows.Scan(&vs.ArtistID, &vs.ArtistName, &vs.ArtistImageLink, &vs.StartTime); err != nil {
			return nil, err
		}
		out = append(out, vs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByArtist returns every show booked for an artist with the venue
// counterpart joined on, ordered by id.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64) ([]ArtistShow, error) {
	const q = `SELECT s.venue_id, v.name, v.image_link, s.start_time
		FROM shows s
		JOIN venues v ON v.id = s.venue_id
		WHERE s.artist_id = ?
		ORDER BY s.id`
	rows, err := r.db.QueryContext(ctx, q, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ArtistShow
	for rows.Next() {
		var as ArtistShow
		if err := rows.Scan(&as.VenueID, &as.VenueName, &as.VenueImageLink, &as.StartTime); err != nil {
			return nil, err
		}
		out = append(out, as)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
