// Package repository contains data access logic separated from HTTP handlers.
// This file defines the Venue model and repository methods for CRUD, location
// grouping and search. A Venue represents a physical location that can host
// shows. Deleting a venue removes its shows in the same transaction so no
// orphan bookings survive.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to define custom error values
)

// Venue represents a venue entity persisted in the database. Genres carries
// the tag list exactly as submitted; SeekingDescription is only meaningful
// when SeekingTalent is true.
type Venue struct {
	ID                 uint64   `json:"id"`
	Name               string   `json:"name"`
	Genres             []string `json:"genres"`
	Address            string   `json:"address"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	Website            string   `json:"website"`
	FacebookLink       string   `json:"facebook_link"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description"`
	ImageLink          string   `json:"image_link"`
}

// VenueSummary is the reduced form used in listings: id and name, plus the
// location fields where the listing needs them.
type VenueSummary struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
}

// VenueMatch is a single search result. NumUpcomingShows counts this venue's
// shows that start strictly after the moment the query runs.
type VenueMatch struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// Location is one distinct (state, city) pair among all venues. Two cities
// with the same name in different states are separate locations.
type Location struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// ErrVenueNotFound is returned when a venue cannot be found in the DB.
var ErrVenueNotFound = errors.New("venue not found")

// VenueRepo encapsulates all database queries related to venues.  It
// depends on a sql.DB connection which should be configured elsewhere.
type VenueRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.  This
// function allows dependency injection of the database in tests and at
// startup.  There is no initialization logic beyond assigning the field.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

const venueColumns = `id, name, genres, address, city, state, phone, website,
	facebook_link, seeking_talent, seeking_description, image_link`

// Create inserts a new venue into the database.  On success the venue's
// ID field is populated with the auto-generated value.
func (r *VenueRepo) Create(ctx context.Context, v *Venue) error {
	genres, err := encodeGenres(v.Genres)
	if err != nil {
		return err
	}
	const q = `INSERT INTO venues
		(name, genres, address, city, state, phone, website, facebook_link,
		 seeking_talent, seeking_description, image_link)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		v.Name, genres, v.Address, v.City, v.State, v.Phone, v.Website,
		v.FacebookLink, v.SeekingTalent, v.SeekingDescription, v.ImageLink)
	if err != nil {
		return err // propagate DB errors to the caller
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// GetByID fetches a venue by its ID.  It returns ErrVenueNotFound if no
// row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*Venue, error) {
	const q = `SELECT ` + venueColumns + ` FROM venues WHERE id = ?`
	var (
		v      Venue
		genres sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&v.ID, &v.Name, &genres, &v.Address, &v.City, &v.State, &v.Phone,
		&v.Website, &v.FacebookLink, &v.SeekingTalent, &v.SeekingDescription,
		&v.ImageLink)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	if v.Genres, err = decodeGenres(genres); err != nil {
		return nil, err
	}
	return &v, nil
}

// Update overwrites every mutable field of an existing venue with the
// submitted values. It returns ErrVenueNotFound when the id does not
// resolve to a row.
func (r *VenueRepo) Update(ctx context.Context, v *Venue) error {
	genres, err := encodeGenres(v.Genres)
	if err != nil {
		return err
	}
	const q = `UPDATE venues
		SET name = ?, genres = ?, address = ?, city = ?, state = ?, phone = ?,
		    website = ?, facebook_link = ?, seeking_talent = ?,
		    seeking_description = ?, image_link = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		v.Name, genres, v.Address, v.City, v.State, v.Phone, v.Website,
		v.FacebookLink, v.SeekingTalent, v.SeekingDescription, v.ImageLink,
		v.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	// Zero rows can mean "missing" or "values already identical"; only the
	// former is an error.
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ? LIMIT 1`, v.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVenueNotFound
		}
		return err
	}
	return nil
}

// DeleteByID removes a venue and every show that references it. The
// deletion occurs within a transaction to maintain referential integrity:
// either the venue and all its shows disappear together or nothing does.
// ErrVenueNotFound is returned when the venue does not exist.
func (r *VenueRepo) DeleteByID(ctx context.Context, id uint64) error {
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
	// Verify the venue exists before touching child rows.
	var one int
	if err = tx.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ?`, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrVenueNotFound
		}
		return err
	}
	// Cascade delete: shows belonging to this venue go first.
	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}

// ListLocations returns the distinct set of (state, city) pairs across all
// venues ordered by city then state. Each pair is one group in the venues
// listing.
func (r *VenueRepo) ListLocations(ctx context.Context) ([]Location, error) {
	const q = `SELECT DISTINCT state, city FROM venues ORDER BY city, state`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.State, &l.City); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByLocation returns the venues at an exact (city, state) pair ordered
// by id. Only id and name are selected.
func (r *VenueRepo) ListByLocation(ctx context.Context, city, state string) ([]VenueSummary, error) {
	const q = `SELECT id, name FROM venues WHERE city = ? AND state = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, city, state)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []VenueSummary
	for rows.Next() {
		var v VenueSummary
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListLatest returns the most recently listed venues (highest ids first),
// capped at limit. It feeds the home page.
func (r *VenueRepo) ListLatest(ctx context.Context, limit int) ([]VenueSummary, error) {
	const q = `SELECT id, name, city, state FROM venues ORDER BY id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []VenueSummary
	for rows.Next() {
		var v VenueSummary
		if err := rows.Scan(&v.ID, &v.Name, &v.City, &v.State); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Search returns the venues matching a parsed search filter together with
// each venue's count of upcoming shows. Location filters match city and
// state exactly; name filters match a case-insensitive substring. The
// upcoming count compares show start times against NOW() inside the query
// so the classification is recomputed on every call.
func (r *VenueRepo) Search(ctx context.Context, f SearchFilter) ([]VenueMatch, error) {
	var (
		cond string
		args []any
	)
	if f.ByLocation {
		cond = `v.city = ? AND v.state = ?`
		args = []any{f.City, f.State}
	} else {
		cond = `LOWER(v.name) LIKE LOWER(?)`
		args = []any{"%" + f.Name + "%"}
	}
	q := `SELECT v.id, v.name, COUNT(s.id)
		FROM venues v
		LEFT JOIN shows s ON s.venue_id = v.id AND s.start_time > NOW()
		WHERE ` + cond + `
		GROUP BY v.id, v.name
		ORDER BY v.id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []VenueMatch
	for rows.Next() {
		var m VenueMatch
		if err := rows.Scan(&m.ID, &m.Name, &m.NumUpcomingShows); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
