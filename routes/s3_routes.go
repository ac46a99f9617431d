package routes

import (
	"careconnect_server/controllers"
	"careconnect_server/services"

	"github.com/gorilla/mux"
)

// RegisterPhotoRoutes sets up routes for photo URL generation under /api/photos
func RegisterPhotoRoutes(r *mux.Router, photoService *services.PhotoService) {
	controller := controllers.NewPhotoController(photoService)

	photoRouter := r.PathPrefix("/api/photos").Subrouter()
	photoRouter.HandleFunc("/upload-url", controller.HandleUploadURL).Methods("POST")
	photoRouter.HandleFunc("/read-url", controller.HandleReadURL).Methods("GET")
}
