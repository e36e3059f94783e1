// Package handler exposes the HTTP surface of the booking directory. This
// file defines the venue endpoints: the grouped listing, search, single-venue
// detail with show history, and create/update/delete.
package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nkoretz/bandboard/internal/repository"
)

// VenueHandler bundles the repositories needed by the venue endpoints.
type VenueHandler struct {
	VenueRepo *repository.VenueRepo
	ShowRepo  *repository.ShowRepo
}

// NewVenueHandler constructs a VenueHandler and panics if any dependency is nil.
func NewVenueHandler(venueRepo *repository.VenueRepo, showRepo *repository.ShowRepo) *VenueHandler {
	if venueRepo == nil || showRepo == nil {
		panic("nil repository passed to NewVenueHandler")
	}
	return &VenueHandler{VenueRepo: venueRepo, ShowRepo: showRepo}
}

// venuePayload is the submitted form of a venue for create and update.
type venuePayload struct {
	Name               string   `json:"name" form:"name" validate:"required"`
	Genres             []string `json:"genres" form:"genres"`
	Address            string   `json:"address" form:"address"`
	City               string   `json:"city" form:"city" validate:"required"`
	State              string   `json:"state" form:"state" validate:"required"`
	Phone              string   `json:"phone" form:"phone"`
	Website            string   `json:"website" form:"website"`
	FacebookLink       string   `json:"facebook_link" form:"facebook_link"`
	SeekingTalent      bool     `json:"seeking_talent" form:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description" form:"seeking_description"`
	ImageLink          string   `json:"image_link" form:"image_link"`
}

// locationGroup is one entry of the grouped venues listing.
type locationGroup struct {
	City   string                    `json:"city"`
	State  string                    `json:"state"`
	Venues []repository.VenueSummary `json:"venues"`
}

// venueDetail is a venue plus its derived show history. The partition is
// recomputed on every read, never stored.
type venueDetail struct {
	repository.Venue
	PastShows          []repository.VenueShow `json:"past_shows"`
	UpcomingShows      []repository.VenueShow `json:"upcoming_shows"`
	PastShowsCount     int                    `json:"past_shows_count"`
	UpcomingShowsCount int                    `json:"upcoming_shows_count"`
}

// List handles GET /venues and returns venues grouped by their distinct
// (state, city) pair, ordered by city then state. Two cities with the same
// name in different states stay separate groups.
func (h *VenueHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	locations, err := h.VenueRepo.ListLocations(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	groups := make([]locationGroup, 0, len(locations))
	for _, loc := range locations {
		venues, err := h.VenueRepo.ListByLocation(ctx, loc.City, loc.State)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		groups = append(groups, locationGroup{City: loc.City, State: loc.State, Venues: venues})
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": groups})
}

// Search handles POST /venues/search. The form-encoded search_term is parsed
// into either an exact city/state filter or a name substring filter; each
// match carries its own count of upcoming shows.
func (h *VenueHandler) Search(c echo.Context) error {
	term := c.FormValue("search_term")
	matches, err := h.VenueRepo.Search(c.Request().Context(), repository.ParseSearchTerm(term))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if matches == nil {
		matches = []repository.VenueMatch{}
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(matches), "data": matches})
}

// Get handles GET /venues/:id and returns the full venue together with its
// shows split into past and upcoming. Each show is classified against the
// clock at the moment it is visited.
func (h *VenueHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	venue, err := h.VenueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	shows, err := h.ShowRepo.ListByVenue(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	past := []repository.VenueShow{}
	upcoming := []repository.VenueShow{}
	for _, s := range shows {
		if isPast(s.StartTime) {
			past = append(past, s)
		} else {
			upcoming = append(upcoming, s)
		}
	}
	return c.JSON(http.StatusOK, venueDetail{
		Venue:              *venue,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	})
}

// Create handles POST /venues and lists a new venue from the submitted
// fields. Failure rolls the record back and reports a message naming it.
func (h *VenueHandler) Create(c echo.Context) error {
	var body venuePayload
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	venue := &repository.Venue{
		Name:               body.Name,
		Genres:             body.Genres,
		Address:            body.Address,
		City:               body.City,
		State:              body.State,
		Phone:              body.Phone,
		Website:            body.Website,
		FacebookLink:       body.FacebookLink,
		SeekingTalent:      body.SeekingTalent,
		SeekingDescription: body.SeekingDescription,
		ImageLink:          body.ImageLink,
	}
	if err := h.VenueRepo.Create(c.Request().Context(), venue); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": fmt.Sprintf("An error occurred. Venue %s could not be listed. %v", body.Name, err),
		})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": fmt.Sprintf("Venue %s was successfully listed!", venue.Name),
		"venue":   venue,
	})
}

// Update handles PUT /venues/:id. Every mutable field is overwritten with
// the submitted value; partial updates are not supported.
func (h *VenueHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	cur, err := h.VenueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	var body venuePayload
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	upd := &repository.Venue{
		ID:                 cur.ID,
		Name:               body.Name,
		Genres:             body.Genres,
		Address:            body.Address,
		City:               body.City,
		State:              body.State,
		Phone:              body.Phone,
		Website:            body.Website,
		FacebookLink:       body.FacebookLink,
		SeekingTalent:      body.SeekingTalent,
		SeekingDescription: body.SeekingDescription,
		ImageLink:          body.ImageLink,
	}
	if err := h.VenueRepo.Update(ctx, upd); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": fmt.Sprintf("An error occurred. Venue %s could not be edited. %v", body.Name, err),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Venue %s was successfully edited!", upd.Name),
		"venue":   upd,
	})
}

// Delete handles DELETE /venues/:id. The venue and all shows referencing it
// are removed in one transaction; success is a bare 204.
func (h *VenueHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.VenueRepo.DeleteByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
