package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/devgear/devgear-go/internal/config"
	"github.com/devgear/devgear-go/internal/handler"
	"github.com/devgear/devgear-go/internal/middleware"
	"github.com/devgear/devgear-go/internal/repository"
	"github.com/devgear/devgear-go/internal/service"
	"github.com/devgear/devgear-go/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	render, err := handler.NewRenderer()
	if err != nil {
		slog.Error("template setup failed", "error", err)
		os.Exit(1)
	}

	sessions := session.NewStore(cfg.SessionSecret, cfg.Production())

	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo)
	authHandler := handler.NewAuthHandler(authService, sessions, render)

	catalogRepo := repository.NewCatalogRepository(db)
	catalogService := service.NewCatalogService(catalogRepo)
	pageHandler := handler.NewPageHandler(catalogService, render)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.SessionLoader(sessions, authService))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/", pageHandler.Home)
	r.Get("/products", pageHandler.Products)
	r.Get("/products/{id}", pageHandler.ProductDetail)

	r.Get("/login", authHandler.ShowLogin)
	r.Get("/signup", authHandler.ShowSignup)
	r.Post("/logout", authHandler.HandleLogout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/signup", authHandler.HandleSignup)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
