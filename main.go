package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/notes-api-be/internal/api"
	"github.com/isdelr/notes-api-be/internal/auth"
	"github.com/isdelr/notes-api-be/internal/config"
	"github.com/isdelr/notes-api-be/internal/database"
	"github.com/isdelr/notes-api-be/internal/logger"
	"github.com/isdelr/notes-api-be/internal/monitoring"
	"github.com/isdelr/notes-api-be/internal/services"
	"github.com/isdelr/notes-api-be/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init()

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply database migrations: %v", err)
	}

	// Set up auth primitives
	hasher := auth.NewHasher(0)
	tokens := auth.NewTokenManager(auth.StaticKey(cfg.JWTSecret), cfg.TokenTTL)

	// Set up stores and services
	userStore := store.NewUserStore(db)
	noteStore := store.NewNoteStore(db)
	eventService := services.NewEventService(db)
	authService := services.NewAuthService(userStore, hasher, tokens, eventService)
	noteService := services.NewNoteService(noteStore, tokens, eventService)

	// Set up and run the background event pruner
	pruner, err := monitoring.NewEventPruner(eventService, cfg.PruneSchedule, cfg.EventRetention)
	if err != nil {
		log.Fatalf("Failed to initialize event pruner: %v", err)
	}
	go pruner.Run()

	// Set up router
	router := api.NewRouter(authService, noteService, eventService, tokens)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %d\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	pruner.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
