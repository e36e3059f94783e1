package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nkoretz/bandboard/internal/repository"
)

// homePageLimit caps how many recent records the home page shows per type.
const homePageLimit = 5

// HomeHandler serves the landing page data: the most recently listed venues
// and artists.
type HomeHandler struct {
	VenueRepo  *repository.VenueRepo
	ArtistRepo *repository.ArtistRepo
}

// NewHomeHandler constructs a HomeHandler and panics if any dependency is nil.
func NewHomeHandler(venueRepo *repository.VenueRepo, artistRepo *repository.ArtistRepo) *HomeHandler {
	if venueRepo == nil || artistRepo == nil {
		panic("nil repository passed to NewHomeHandler")
	}
	return &HomeHandler{VenueRepo: venueRepo, ArtistRepo: artistRepo}
}

// Home handles GET / and returns the latest venues and artists, newest first.
func (h *HomeHandler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	venues, err := h.VenueRepo.ListLatest(ctx, homePageLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	artists, err := h.ArtistRepo.ListLatest(ctx, homePageLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if venues == nil {
		venues = []repository.VenueSummary{}
	}
	if artists == nil {
		artists = []repository.ArtistSummary{}
	}
	return c.JSON(http.StatusOK, echo.Map{"venues": venues, "artists": artists})
}
