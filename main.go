package main

import (
	"fmt"
	"net/http"

	"github.com/SpeedAtlas/SA-Backend/internal/config"
	"github.com/SpeedAtlas/SA-Backend/internal/db"
	"github.com/SpeedAtlas/SA-Backend/internal/geolocate"
	"github.com/SpeedAtlas/SA-Backend/internal/logger"
	"github.com/SpeedAtlas/SA-Backend/internal/middleware"
	"github.com/SpeedAtlas/SA-Backend/internal/notary"
	"github.com/SpeedAtlas/SA-Backend/internal/speedtest"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config:", err)
		return
	}

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	conn, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}

	store := speedtest.NewStore(conn)
	if err := store.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	var n notary.Notary
	if cfg.NotaryURL != "" {
		n = notary.NewHTTPNotary(cfg.NotaryURL)
	} else {
		log.Warn().Msg("NOTARY_URL not set, using local notary (dev mode)")
		n = notary.NewLocalNotary()
	}

	handler := speedtest.NewHandler(store, n)

	var ingestMiddleware []func(http.Handler) http.Handler
	if cfg.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		ingestMiddleware = append(ingestMiddleware, limiter.Middleware)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger)
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	r.Get("/", RootHandler)

	r.Mount("/results", speedtest.SetupRoutes(handler, ingestMiddleware...))
	r.Mount("/auth", notary.SetupRoutes(n))
	r.Mount("/location", geolocate.SetupRoutes(geolocate.NewClient()))

	log.Info().Str("port", cfg.Port).Str("db", cfg.DatabasePath).Msg("Server listening")

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
