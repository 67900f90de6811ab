package internal

import (
	"net/http"

	"homefeed/internal/controllers"
	"homefeed/internal/providers"
	"homefeed/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/home", http.HandlerFunc(apiController.GetHomeFeed))
	routers.Get("/trending", http.HandlerFunc(apiController.GetTrending))
	routers.Get("/following", http.HandlerFunc(apiController.GetFollowingUpdates))
	routers.Post("/progress", http.HandlerFunc(apiController.SaveProgress))
	return routers
}
