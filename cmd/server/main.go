package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ctchen222/BookShelf/internal/api/controller"
	"ctchen222/BookShelf/internal/api/repository"
	"ctchen222/BookShelf/internal/api/service"
	"ctchen222/BookShelf/internal/catalog"
	"ctchen222/BookShelf/internal/config"
	"ctchen222/BookShelf/internal/db"
	"ctchen222/BookShelf/internal/logger"
	"ctchen222/BookShelf/internal/server"
	"ctchen222/BookShelf/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel()
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	logger.Init()

	cfg := config.Load()

	// Initialize SQLite DB
	pool, err := db.Connect(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.Initialize(pool); err != nil {
		log.Fatalf("failed to initialize sqlite db: %v", err)
	}

	// Create repositories
	userRepo := repository.NewUserRepository(pool)
	bookRepo := repository.NewBookRepository(pool)

	// Create services and the catalog client
	userService := service.NewUserService(userRepo, []byte(cfg.JWTSecret), cfg.TokenTTL)
	bookService := service.NewBookService(bookRepo)
	catalogClient := catalog.NewClient(cfg.GoogleBooksURL, cfg.SearchTimeout)

	// Create controllers
	authController := controller.NewAuthController(userService)
	bookController := controller.NewBookController(bookService, catalogClient)

	// Create the Gin-based server
	srv := server.NewServer(cfg, authController, bookController, userService)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Engine(),
	}

	go func() {
		log.Printf("http server started on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
