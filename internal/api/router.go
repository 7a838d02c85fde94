package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/notes-api-be/internal/api/handlers"
	"github.com/isdelr/notes-api-be/internal/auth"
	"github.com/isdelr/notes-api-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
//
// The delete and edit routes answer to GET as well as DELETE/PATCH: the
// GET forms are kept for compatibility with existing clients, the method
// forms are the ones new clients should use.
func NewRouter(authService services.AuthServiceProvider, noteService services.NoteServiceProvider, eventService services.EventServiceProvider, tokens *auth.TokenManager) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	noteHandler := handlers.NewNoteHandler(noteService)
	eventHandler := handlers.NewEventHandler(eventService, tokens)

	// Account endpoints
	r.Post("/registerUser", authHandler.Register)
	r.Post("/loginUser", authHandler.Login)

	// Note endpoints; each one resolves its identity from the bearer token
	r.Post("/postNote", noteHandler.Create)
	r.Get("/getNote/{noteId}", noteHandler.Get)
	r.Get("/getAllNotes", noteHandler.GetAll)
	r.Get("/deleteNote/{noteId}", noteHandler.Delete)
	r.Delete("/deleteNote/{noteId}", noteHandler.Delete)
	r.Get("/editNote/{noteId}", noteHandler.Edit)
	r.Patch("/editNote/{noteId}", noteHandler.Edit)

	// Audit trail
	r.Get("/events", eventHandler.GetRecent)

	return r
}
