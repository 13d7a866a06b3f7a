package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/contactdesk/contacts-api/internal/api"
	apiMiddleware "github.com/contactdesk/contacts-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	userHandler := api.NewUserHandler(app.userService, app.logger)
	contactHandler := api.NewContactHandler(app.contactService, app.logger)
	addressHandler := api.NewAddressHandler(app.addressService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/users", userHandler.Register)
		r.Post("/users/login", userHandler.Login)

		// Everything else requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/users/current", userHandler.Current)
			r.Patch("/users/current", userHandler.Update)
			r.Delete("/users/logout", userHandler.Logout)

			r.Post("/contacts", contactHandler.Create)
			r.Get("/contacts", contactHandler.Search)
			r.Get("/contacts/{contactID}", contactHandler.Get)
			r.Put("/contacts/{contactID}", contactHandler.Update)
			r.Delete("/contacts/{contactID}", contactHandler.Delete)

			r.Post("/contacts/{contactID}/addresses", addressHandler.Create)
			r.Get("/contacts/{contactID}/addresses", addressHandler.List)
			r.Get("/contacts/{contactID}/addresses/{addressID}", addressHandler.Get)
			r.Put("/contacts/{contactID}/addresses/{addressID}", addressHandler.Update)
			r.Delete("/contacts/{contactID}/addresses/{addressID}", addressHandler.Delete)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
