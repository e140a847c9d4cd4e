package internal

import (
	"net/http"

	"mfd/internal/controllers"
	"mfd/internal/providers"
	"mfd/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/records", http.HandlerFunc(apiController.ReceiveHistory))
	routers.Get("/graph", http.HandlerFunc(apiController.GetGraph))
	routers.Get("/bridges", http.HandlerFunc(apiController.GetBridges))
	routers.Get("/stats", http.HandlerFunc(apiController.GetStats))
	routers.Get("/export", http.HandlerFunc(apiController.GetExport))
	routers.Get("/path", http.HandlerFunc(apiController.GetPath))
	return routers
}
