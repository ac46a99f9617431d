package routes

import (
	"careconnect_server/controllers"
	"careconnect_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for match lookups under /api/match
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewMatchController(matchService)

	matchRouter := r.PathPrefix("/api/match").Subrouter()
	matchRouter.HandleFunc("/list", controller.HandleGetMatches).Methods("GET")
	matchRouter.HandleFunc("/{matchId}", controller.HandleGetMatch).Methods("GET")
}
