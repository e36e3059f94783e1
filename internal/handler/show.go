package handler // show endpoints: the all-shows listing and booking creation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nkoretz/bandboard/internal/queue"
	"github.com/nkoretz/bandboard/internal/repository"
	queue_publisher "github.com/nkoretz/bandboard/internal/service"
)

// ShowHandler bundles the repositories needed by the show endpoints.
type ShowHandler struct {
	ShowRepo   *repository.ShowRepo
	ArtistRepo *repository.ArtistRepo
	VenueRepo  *repository.VenueRepo
}

// NewShowHandler constructs a ShowHandler and panics if any dependency is nil.
func NewShowHandler(showRepo *repository.ShowRepo, artistRepo *repository.ArtistRepo, venueRepo *repository.VenueRepo) *ShowHandler {
	if showRepo == nil || artistRepo == nil || venueRepo == nil {
		panic("nil repository passed to NewShowHandler")
	}
	return &ShowHandler{ShowRepo: showRepo, ArtistRepo: artistRepo, VenueRepo: venueRepo}
}

// List handles GET /shows. The start time of each row is rendered with the
// preset named by the optional ?format= query parameter ("full" or
// "medium"); medium is the default.
func (h *ShowHandler) List(c echo.Context) error {
	preset := strings.ToLower(strings.TrimSpace(c.QueryParam("format")))
	if preset == "" {
		preset = "medium"
	}
	shows, err := h.ShowRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]repository.ShowListing, 0, len(shows))
	for _, s := range shows {
		s.StartTime = formatShowTime(s.StartTime, preset)
		out = append(out, s)
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": out})
}

// Create handles POST /shows and books an artist into a venue. The artist's
// availability is checked before anything is persisted: an empty
// availability field allows any time, otherwise the requested start time
// string must appear verbatim inside the availability text. Both referenced
// records must exist; a missing parent is a 404, distinct from a
// persistence failure.
func (h *ShowHandler) Create(c echo.Context) error {
	var body struct {
		ArtistID  uint64 `json:"artist_id" form:"artist_id"`
		VenueID   uint64 `json:"venue_id" form:"venue_id"`
		StartTime string `json:"start_time" form:"start_time"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ArtistID == 0 || body.VenueID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "artist_id and venue_id are required"})
	}
	startTime := ""
	if raw := strings.TrimSpace(body.StartTime); raw != "" {
		var err error
		if startTime, err = parseStartTime(raw); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time format"})
		}
	} else {
		// Unset start time defaults to the creation time.
		startTime = time.Now().UTC().Format(dbTimeLayout)
	}

	ctx := c.Request().Context()
	// The gate runs on the availability projection alone; full rows are only
	// loaded once the booking is admissible.
	availability, err := h.ArtistRepo.Availability(ctx, body.ArtistID)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := repository.CheckAvailability(availability, startTime); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Artist not available at this time"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability check failed"})
	}
	artist, err := h.ArtistRepo.GetByID(ctx, body.ArtistID)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	venue, err := h.VenueRepo.GetByID(ctx, body.VenueID)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	show := &repository.Show{
		ArtistID:  body.ArtistID,
		VenueID:   body.VenueID,
		StartTime: startTime,
	}
	if err := h.ShowRepo.Create(ctx, show); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": fmt.Sprintf("An error occurred. Show could not be listed. %v", err),
		})
	}

	// Notify downstream consumers; failures never affect the booking.
	event := queue.ShowBookedEvent{
		ShowID:     show.ID,
		ArtistID:   artist.ID,
		ArtistName: artist.Name,
		VenueID:    venue.ID,
		VenueName:  venue.Name,
		StartTime:  show.StartTime,
		BookedAt:   time.Now().UTC().Format(dbTimeLayout),
	}
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := queue_publisher.PublishShowBooked(pubCtx, event); err != nil {
			log.Printf("show booked event publish failed: %v", err)
		}
	}()

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Show was successfully listed!",
		"show":    show,
	})
}
