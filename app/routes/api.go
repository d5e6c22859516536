package routes

import (
	"net/http"
	"time"

	"github.com/supplyhub/supplyhub/app/controllers"
	"github.com/supplyhub/supplyhub/pkg/middleware"
	"github.com/supplyhub/supplyhub/pkg/response"
	"github.com/supplyhub/supplyhub/pkg/router"
)

// RegisterAPI mounts the catalog read API and the sync trigger.
func RegisterAPI(r *router.Router, catalog *controllers.CatalogController, sync *controllers.SyncController) {
	r.Get("/healthz", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Message(w, "ok")
	})

	api := r.Group("/api", middleware.RateLimit(120, time.Minute))
	api.Get("/products", "products.list", catalog.List)
	api.Get("/products/{productNumber}", "products.show", catalog.Show)
	api.Get("/categories", "categories.list", catalog.Categories)

	protected := api.Group("", middleware.AuthMiddleware)
	protected.Post("/sync/{vendor}", "sync.trigger", sync.Trigger)
}
