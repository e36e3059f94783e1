package handler // artist endpoints: listing, search, detail with show history, CRUD

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nkoretz/bandboard/internal/repository"
)

// ArtistHandler bundles the repositories needed by the artist endpoints.
type ArtistHandler struct {
	ArtistRepo *repository.ArtistRepo
	ShowRepo   *repository.ShowRepo
}

// NewArtistHandler constructs an ArtistHandler and panics if any dependency is nil.
func NewArtistHandler(artistRepo *repository.ArtistRepo, showRepo *repository.ShowRepo) *ArtistHandler {
	if artistRepo == nil || showRepo == nil {
		panic("nil repository passed to NewArtistHandler")
	}
	return &ArtistHandler{ArtistRepo: artistRepo, ShowRepo: showRepo}
}

// artistPayload is the submitted form of an artist for create and update.
type artistPayload struct {
	Name               string   `json:"name" form:"name" validate:"required"`
	Genres             []string `json:"genres" form:"genres"`
	City               string   `json:"city" form:"city" validate:"required"`
	State              string   `json:"state" form:"state" validate:"required"`
	Phone              string   `json:"phone" form:"phone"`
	Website            string   `json:"website" form:"website"`
	FacebookLink       string   `json:"facebook_link" form:"facebook_link"`
	SeekingVenue       bool     `json:"seeking_venue" form:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description" form:"seeking_description"`
	ImageLink          string   `json:"image_link" form:"image_link"`
	Availability       string   `json:"availability" form:"availability"`
}

// artistDetail is an artist plus its derived show history.
type artistDetail struct {
	repository.Artist
	PastShows          []repository.ArtistShow `json:"past_shows"`
	UpcomingShows      []repository.ArtistShow `json:"upcoming_shows"`
	PastShowsCount     int                     `json:"past_shows_count"`
	UpcomingShowsCount int                     `json:"upcoming_shows_count"`
}

// List handles GET /artists and returns every artist alphabetically by name.
func (h *ArtistHandler) List(c echo.Context) error {
	artists, err := h.ArtistRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if artists == nil {
		artists = []repository.ArtistSummary{}
	}
	return c.JSON(http.StatusOK, echo.Map{"artists": artists})
}

// Search handles POST /artists/search with the same term rules as venue
// search. No upcoming-show count is computed for artists; it is always zero.
func (h *ArtistHandler) Search(c echo.Context) error {
	term := c.FormValue("search_term")
	matches, err := h.ArtistRepo.Search(c.Request().Context(), repository.ParseSearchTerm(term))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if matches == nil {
		matches = []repository.ArtistMatch{}
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(matches), "data": matches})
}

// Get handles GET /artists/:id with the artist's shows partitioned into past
// and upcoming against the clock at classification time.
func (h *ArtistHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	artist, err := h.ArtistRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	shows, err := h.ShowRepo.ListByArtist(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	past := []repository.ArtistShow{}
	upcoming := []repository.ArtistShow{}
	for _, s := range shows {
		if isPast(s.StartTime) {
			past = append(past, s)
		} else {
			upcoming = append(upcoming, s)
		}
	}
	return c.JSON(http.StatusOK, artistDetail{
		Artist:             *artist,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	})
}

// Create handles POST /artists.
func (h *ArtistHandler) Create(c echo.Context) error {
	var body artistPayload
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	artist := payloadToArtist(0, body)
	if err := h.ArtistRepo.Create(c.Request().Context(), artist); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": fmt.Sprintf("An error occurred. Artist %s could not be listed. %v", body.Name, err),
		})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": fmt.Sprintf("Artist %s was successfully listed!", artist.Name),
		"artist":  artist,
	})
}

// Update handles PUT /artists/:id, overwriting every mutable field.
func (h *ArtistHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	if _, err := h.ArtistRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	var body artistPayload
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	upd := payloadToArtist(id, body)
	if err := h.ArtistRepo.Update(ctx, upd); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": fmt.Sprintf("An error occurred. Artist %s could not be edited. %v", body.Name, err),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Artist %s was successfully edited!", upd.Name),
		"artist":  upd,
	})
}

// Delete handles DELETE /artists/:id, removing the artist and all shows
// referencing it in one transaction.
func (h *ArtistHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.ArtistRepo.DeleteByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func payloadToArtist(id uint64, body artistPayload) *repository.Artist {
	return &repository.Artist{
		ID:                 id,
		Name:               body.Name,
		Genres:             body.Genres,
		City:               body.City,
		State:              body.State,
		Phone:              body.Phone,
		Website:            body.Website,
		FacebookLink:       body.FacebookLink,
		SeekingVenue:       body.SeekingVenue,
		SeekingDescription: body.SeekingDescription,
		ImageLink:          body.ImageLink,
		Availability:       strings.TrimSpace(body.Availability),
	}
}
