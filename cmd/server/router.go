package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mamyzabawki/descgen-api/internal/api"
	apiMiddleware "github.com/mamyzabawki/descgen-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	generateHandler := api.NewGenerateHandler(app.generator, app.logger)
	batchHandler := api.NewBatchHandler(app.batch, app.store, app.queue, app.templates, app.logger)

	r.Post("/get_response", generateHandler.GetResponse)

	r.Get("/", batchHandler.Home)
	r.Post("/run", batchHandler.Run)
	r.Post("/run_async", batchHandler.RunAsync)
	r.Get("/status/{task_id}", batchHandler.Status)

	// Generated workbooks are downloaded from the static directory.
	fileServer := http.FileServer(http.Dir(app.config.Server.StaticDir))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
