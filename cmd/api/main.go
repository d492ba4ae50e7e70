package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "expenseshare/docs"
	"expenseshare/internal/auth"
	"expenseshare/internal/balance"
	"expenseshare/internal/config"
	"expenseshare/internal/database"
	"expenseshare/internal/expense"
	"expenseshare/internal/expense/split"
	"expenseshare/internal/notification"
	"expenseshare/internal/report"
	"expenseshare/internal/user"
	"expenseshare/pkg/logging"
	mw "expenseshare/pkg/middleware"
)

// @title       ExpenseShare API
// @version     1.0
// @description Expense splitting and balance tracking API
// @BasePath    /api/v1
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	logging.Setup()

	cfg := config.Load()

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	slog.Info("connected to database")

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	authMW := mw.Auth(tokens)

	splitFactory := split.NewFactory()

	// Notification feature
	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	// Expense feature (split factory and notifier injected)
	expenseRepo := expense.NewRepository(db)

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, expenseRepo, tokens, cfg.BcryptCost)
	userHandler := user.NewHandler(userService)

	expenseService := expense.NewService(expenseRepo, user.NewDirectory(userRepo), splitFactory, notificationService)
	expenseHandler := expense.NewHandler(expenseService)

	// Balance feature
	balanceService := balance.NewService(expenseRepo)
	balanceHandler := balance.NewHandler(balanceService)

	// Report feature
	reportBuilder, err := report.NewBuilder(cfg.ReportDir)
	if err != nil {
		slog.Error("failed to prepare report directory", "error", err)
		os.Exit(1)
	}
	reportHandler := report.NewHandler(expenseRepo, reportBuilder)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/users", userHandler.Routes(authMW))

		r.Group(func(r chi.Router) {
			r.Use(authMW)
			r.Mount("/expenses", expenseHandler.Routes())
			r.Mount("/balances", balanceHandler.Routes())
			r.Mount("/reports", reportHandler.Routes())
			r.Mount("/notifications", notificationHandler.Routes())
		})
	})

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	slog.Info("server starting", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
