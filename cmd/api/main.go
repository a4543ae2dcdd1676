package main

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/marinhl/housemate/internal/auth"
	"github.com/marinhl/housemate/internal/balance"
	"github.com/marinhl/housemate/internal/bill"
	"github.com/marinhl/housemate/internal/bill/distribute"
	"github.com/marinhl/housemate/internal/config"
	"github.com/marinhl/housemate/internal/database"
	"github.com/marinhl/housemate/internal/household"
	"github.com/marinhl/housemate/internal/notification"
	"github.com/marinhl/housemate/internal/user"
	mw "github.com/marinhl/housemate/pkg/middleware"
	"github.com/marinhl/housemate/pkg/token"
)

// @title           HouseMate API
// @version         1.0
// @description     Household bill splitting service: households, bills, cost distribution, balances and notifications.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		// Fine in production, env vars come from the environment.
	}

	cfg := config.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.Env == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	db, err := database.NewPostgresConnection(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := database.Migrate(db, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	tokenIssuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	// Distribution strategy factory, injected into the bill feature
	distributeFactory := distribute.NewFactory()

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Auth feature
	authService := auth.NewService(userRepo, tokenIssuer)
	authHandler := auth.NewHandler(authService)

	// Notification feature
	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo, logger)
	notificationHandler := notification.NewHandler(notificationService)

	// Household feature (invitations delivered through the Notifier interface)
	householdRepo := household.NewRepository(db)
	householdService := household.NewService(householdRepo, notificationService)
	householdHandler := household.NewHandler(householdService)

	// Bill feature (notifications delivered through the Notifier interface)
	billRepo := bill.NewRepository(db)
	billService := bill.NewService(billRepo, bill.NewValidator(), distributeFactory, notificationService)
	billHandler := bill.NewHandler(billService)

	// Balance feature
	balanceRepo := balance.NewRepository(db)
	balanceService := balance.NewService(balanceRepo)
	balanceHandler := balance.NewHandler(balanceService)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public
		r.Mount("/auth", authHandler.Routes())

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(mw.Auth(tokenIssuer))

			r.Mount("/users", userHandler.Routes())
			r.Mount("/households", householdHandler.Routes())
			r.Mount("/bills", billHandler.Routes())
			r.Mount("/balances", balanceHandler.Routes())
			r.Mount("/notifications", notificationHandler.Routes())
		})
	})

	logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
