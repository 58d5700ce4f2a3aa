package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movienight/internal/handler"
	"github.com/iliyamo/movienight/internal/middleware"
)

// Handlers bundles everything RegisterRoutes wires.
type Handlers struct {
	Health  *handler.HealthHandler
	Auth    *handler.AuthHandler
	Events  *handler.EventHandler
	Library *handler.LibraryHandler
	Lookup  *handler.LookupHandler

	Tokens    middleware.TokenValidator
	RateLimit echo.MiddlewareFunc // applied to /api; nil means none
	Cache     echo.MiddlewareFunc // applied to /api/movies; nil means none
}

// RegisterRoutes mounts /healthz and the /api surface.
func RegisterRoutes(e *echo.Echo, h Handlers) {
	// Liveness probe, outside /api so it is never rate limited.
	e.GET("/healthz", h.Health.Health)

	api := e.Group("/api")
	// Identify the caller first: the rate limiter keys on the user and the
	// listings fill is_participant from it.  A missing or bad token leaves
	// the request anonymous; protected routes still reject it below.
	api.Use(middleware.OptionalJWTAuth(h.Tokens))
	if h.RateLimit != nil {
		api.Use(h.RateLimit)
	}
	auth := middleware.JWTAuth(h.Tokens)
	self := middleware.RequireSelf("id")

	// accounts
	api.POST("/signup", h.Auth.Signup)
	api.POST("/login", h.Auth.Login)
	api.GET("/validate", h.Auth.Validate, auth)
	api.GET("/users", h.Auth.ListUsers)

	// events: reads are public, writes need a token; update and delete
	// check ownership in the service
	ev := api.Group("/events")
	ev.GET("", h.Events.List)
	ev.GET("/:id", h.Events.Get)
	ev.POST("", h.Events.Create, auth)
	ev.PUT("/:id", h.Events.Update, auth)
	ev.DELETE("/:id", h.Events.Delete, auth)
	ev.POST("/:id/join", h.Events.Join, auth)
	ev.DELETE("/:id/leave", h.Events.Leave, auth)
	ev.GET("/:id/participants", h.Events.Participants)

	// per-user views; mutations only by the user named in the path
	users := api.Group("/users/:id")
	users.GET("/events", h.Events.Organized)
	users.GET("/joined-events", h.Events.Joined)
	users.GET("/movies", h.Library.ListMovies)
	users.POST("/movies", h.Library.AddMovie, auth, self)
	users.DELETE("/movies/:movieId", h.Library.RemoveMovie, auth, self)
	users.GET("/reviews", h.Library.ListReviews)
	users.POST("/reviews", h.Library.UpsertReview, auth, self)

	// TMDB proxy; responses are shared by everyone, so cache them
	movies := api.Group("/movies")
	if h.Cache != nil {
		movies.Use(h.Cache)
	}
	movies.GET("/search", h.Lookup.Search)
	movies.GET("/popular", h.Lookup.Popular)
}
