package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/nkoretz/bandboard/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes wires every endpoint of the booking directory onto the
// provided Echo instance. All routes are public; there is no authentication
// layer in this service.
func RegisterRoutes(e *echo.Echo, home *handler.HomeHandler, venues *handler.VenueHandler, artists *handler.ArtistHandler, shows *handler.ShowHandler) {
	// Liveness probe for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	// Landing page data: latest venues and artists.
	e.GET("/", home.Home)

	// Venues: grouped listing, search, detail with show history, CRUD.
	v := e.Group("/venues")
	v.GET("", venues.List)
	v.POST("/search", venues.Search)
	v.GET("/:id", venues.Get)
	v.POST("", venues.Create)
	v.PUT("/:id", venues.Update)
	v.DELETE("/:id", venues.Delete)

	// Artists: alphabetical listing, search, detail with show history, CRUD.
	a := e.Group("/artists")
	a.GET("", artists.List)
	a.POST("/search", artists.Search)
	a.GET("/:id", artists.Get)
	a.POST("", artists.Create)
	a.PUT("/:id", artists.Update)
	a.DELETE("/:id", artists.Delete)

	// Shows: the full listing and booking creation.
	e.GET("/shows", shows.List)
	e.POST("/shows", shows.Create)
}
