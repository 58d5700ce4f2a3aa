package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/movienight/internal/config"
	"github.com/iliyamo/movienight/internal/database"
	"github.com/iliyamo/movienight/internal/handler"
	"github.com/iliyamo/movienight/internal/middleware"
	"github.com/iliyamo/movienight/internal/queue"
	"github.com/iliyamo/movienight/internal/repository"
	"github.com/iliyamo/movienight/internal/router"
	"github.com/iliyamo/movienight/internal/service"
	"github.com/iliyamo/movienight/internal/tmdb"
)

func main() {
	log.SetPrefix("[movienight] ")
	cfg := config.Load()

	if cfg.DBMigrate {
		if err := database.Migrate(cfg); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}
	db, dialect, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db, dialect)
	events := repository.NewEventRepo(db, dialect)
	parts := repository.NewParticipantRepo(db, dialect)
	movies := repository.NewMovieRepo(db, dialect)
	reviews := repository.NewReviewRepo(db, dialect)

	var activity service.ActivityPublisher = service.NopPublisher{}
	if rc := config.LoadRabbitConfig(); rc.URL != "" {
		pub := queue.NewPublisher(rc.URL, rc.Exchange)
		defer pub.Close()
		activity = pub
		log.Printf("activity: publishing to exchange %s", rc.Exchange)
	} else {
		log.Printf("activity: RABBITMQ_URL not set, notifications disabled")
	}

	authSvc := service.NewAuthService(users, cfg.JWTSecret, time.Duration(cfg.AccessTTLMin)*time.Minute, cfg.BcryptCost)
	eventSvc := service.NewEventService(db, dialect, events, parts, users, activity)
	movieSvc := service.NewMovieService(movies, users)
	reviewSvc := service.NewReviewService(db, dialect, reviews, users)
	lookupSvc := newLookup(config.LoadTMDBConfig())

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb != nil {
		defer rdb.Close()
	} else {
		log.Printf("redis: unavailable, rate limiting and response cache disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(echoMw.CORSWithConfig(echoMw.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))

	router.RegisterRoutes(e, router.Handlers{
		Health:    handler.NewHealthHandler(db),
		Auth:      handler.NewAuthHandler(authSvc),
		Events:    handler.NewEventHandler(eventSvc),
		Library:   handler.NewLibraryHandler(movieSvc, reviewSvc),
		Lookup:    handler.NewLookupHandler(lookupSvc),
		Tokens:    authSvc,
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		Cache:     middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.Port
		log.Printf("listening on %s (env=%s, db=%s)", addr, cfg.Env, dialect)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// newLookup builds the TMDB-backed lookup.  A bad keywords file falls back
// to the built-in table.
func newLookup(tc config.TMDBConfig) *service.LookupService {
	if tc.APIKey == "" {
		log.Printf("tmdb: TMDB_API_KEY not set, movie lookup answers 502")
	}
	client := tmdb.NewClient(tc.BaseURL, tc.APIKey, tc.Language, tc.Timeout)
	rw, err := tmdb.LoadKeywordRewriter(tc.KeywordsFile)
	if err != nil {
		log.Printf("tmdb: keywords %q: %v; using built-in table", tc.KeywordsFile, err)
		rw, _ = tmdb.LoadKeywordRewriter("")
	}
	return service.NewLookupService(client, rw)
}
