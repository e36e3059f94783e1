// Package repository contains data access logic for Artist domain operations.
// This file defines the Artist model and repository methods. An Artist is a
// performer that can be booked into shows; its availability field is an
// unstructured free-text record of open dates with no defined grammar.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Artist represents an artist entity persisted in the database. Availability
// is stored verbatim; the booking flow only ever substring-matches against it.
type Artist struct {
	ID                 uint64   `json:"id"`
	Name               string   `json:"name"`
	Genres             []string `json:"genres"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	Website            string   `json:"website"`
	FacebookLink       string   `json:"facebook_link"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description"`
	ImageLink          string   `json:"image_link"`
	Availability       string   `json:"availability"`
}

// ArtistSummary is the reduced listing form of an artist.
type ArtistSummary struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
}

// ArtistMatch is a single artist search result. The upcoming show count is
// not computed for artists and is always reported as zero.
type ArtistMatch struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// ErrArtistNotFound indicates that an artist was not located in the DB.
var ErrArtistNotFound = errors.New("artist not found")

// ArtistRepo manages persistence for artists.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the given DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

const artistColumns = `id, name, genres, city, state, phone, website,
	facebook_link, seeking_venue, seeking_description, image_link, availability`

// Create inserts a new artist and assigns the generated ID back to the
// artist struct.
func (r *ArtistRepo) Create(ctx context.Context, a *Artist) error {
	genres, err := encodeGenres(a.Genres)
	if err != nil {
		return err
	}
	const q = `INSERT INTO artists
		(name, genres, city, state, phone, website, facebook_link,
		 seeking_venue, seeking_description, image_link, availability)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		a.Name, genres, a.City, a.State, a.Phone, a.Website, a.FacebookLink,
		a.SeekingVenue, a.SeekingDescription, a.ImageLink, a.Availability)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// GetByID retrieves an artist by its ID.  It returns ErrArtistNotFound if
// there is no matching row.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*Artist, error) {
	const q = `SELECT ` + artistColumns + ` FROM artists WHERE id = ?`
	var (
		a            Artist
		genres       sql.NullString
		availability sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID, &a.Name, &genres, &a.City, &a.State, &a.Phone, &a.Website,
		&a.FacebookLink, &a.SeekingVenue, &a.SeekingDescription, &a.ImageLink,
		&availability)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	if a.Genres, err = decodeGenres(genres); err != nil {
		return nil, err
	}
	a.Availability = availability.String
	return &a, nil
}

// Availability fetches only the availability text for an artist. An empty
// string means the artist has no stored booking constraint.
func (r *ArtistRepo) Availability(ctx context.Context, id uint64) (string, error) {
	const q = `SELECT COALESCE(availability, '') FROM artists WHERE id = ?`
	var availability string
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&availability); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrArtistNotFound
		}
		return "", err
	}
	return availability, nil
}

// Update overwrites every mutable field of an existing artist. It returns
// ErrArtistNotFound when the id does not resolve to a row.
func (r *ArtistRepo) Update(ctx context.Context, a *Artist) error {
	genres, err := encodeGenres(a.Genres)
	if err != nil {
		return err
	}
	const q = `UPDATE artists
		SET name = ?, genres = ?, city = ?, state = ?, phone = ?, website = ?,
		    facebook_link = ?, seeking_venue = ?, seeking_description = ?,
		    image_link = ?, availability = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		a.Name, genres, a.City, a.State, a.Phone, a.Website, a.FacebookLink,
		a.SeekingVenue, a.SeekingDescription, a.ImageLink, a.Availability,
		a.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM artists WHERE id = ? LIMIT 1`, a.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrArtistNotFound
		}
		return err
	}
	return nil
}

// DeleteByID removes an artist and every show that references it, inside a
// single transaction. ErrArtistNotFound is returned when the artist does
// not exist.
func (r *ArtistRepo) DeleteByID(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	var one int
	if err = tx.QueryRowContext(ctx, `SELECT 1 FROM artists WHERE id = ?`, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrArtistNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE artist_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}

// ListAll returns every artist ordered alphabetically by name. Only id and
// name are selected.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]ArtistSummary, error) {
	const q = `SELECT id, name FROM artists ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ArtistSummary
	for rows.Next() {
		var a ArtistSummary
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListLatest returns the most recently listed artists (highest ids first),
// capped at limit. It feeds the home page.
func (r *ArtistRepo) ListLatest(ctx context.Context, limit int) ([]ArtistSummary, error) {
	const q = `SELECT id, name, city, state FROM artists ORDER BY id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ArtistSummary
	for rows.Next() {
		var a ArtistSummary
		if err := rows.Scan(&a.ID, &a.Name, &a.City, &a.State); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Search returns the artists matching a parsed search filter. Unlike venue
// search, no upcoming-show count is computed; every match reports zero.
func (r *ArtistRepo) Search(ctx context.Context, f SearchFilter) ([]ArtistMatch, error) {
	var (
		cond string
		args []any
	)
	if f.ByLocation {
		cond = `city = ? AND state = ?`
		args = []any{f.City, f.State}
	} else {
		cond = `LOWER(name) LIKE LOWER(?)`
		args = []any{"%" + f.Name + "%"}
	}
	q := `SELECT id, name FROM artists WHERE ` + cond + ` ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ArtistMatch
	for rows.Next() {
		var m ArtistMatch
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
