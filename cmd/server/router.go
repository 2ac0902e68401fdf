package main

import (
	"net/http"

	"github.com/phrazzld/tasksum-api/internal/api"
)

// setupRouter creates the HTTP handlers over the application's services.
func (app *application) setupRouter() http.Handler {
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	healthHandler := api.NewHealthHandler(app.db)

	return api.NewRouter(taskHandler, healthHandler, app.logger)
}
