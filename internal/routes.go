package internal

import (
	"intentd/internal/controllers"
	"intentd/internal/providers"
	"net/http"
)

func InitRoutes(apiController *controllers.ApiController, logger providers.Logger) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider(logger)

	routers.Post("/sessions", http.HandlerFunc(apiController.OpenSession))
	routers.Post("/sessions/close", http.HandlerFunc(apiController.CloseSession))
	routers.Post("/interactions", http.HandlerFunc(apiController.TrackInteraction))
	routers.Post("/hover/start", http.HandlerFunc(apiController.HoverStart))
	routers.Post("/hover/end", http.HandlerFunc(apiController.HoverEnd))
	routers.Post("/trials", http.HandlerFunc(apiController.StartTrial))
	routers.Get("/trials/status", http.HandlerFunc(apiController.TrialStatus))
	routers.Get("/prompt", http.HandlerFunc(apiController.Prompt))
	routers.Get("/summary", http.HandlerFunc(apiController.Summary))
	routers.Post("/modal/open", http.HandlerFunc(apiController.OpenModal))
	routers.Post("/modal/close", http.HandlerFunc(apiController.CloseModal))
	routers.Get("/modal", http.HandlerFunc(apiController.Modal))
	return routers
}
