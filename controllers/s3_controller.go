package controllers

import (
	"encoding/json"
	"net/http"

	"careconnect_server/services"
)

// PhotoController struct
type PhotoController struct {
	PhotoService *services.PhotoService
}

// NewPhotoController initializes the controller
func NewPhotoController(service *services.PhotoService) *PhotoController {
	return &PhotoController{PhotoService: service}
}

// HandleUploadURL - presigned PUT URL for a profile photo
func (c *PhotoController) HandleUploadURL(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if request.FileName == "" || request.FileType == "" {
		respondError(w, http.StatusBadRequest, "fileName and fileType are required")
		return
	}

	url, key, err := c.PhotoService.GenerateUploadURL(r.Context(), request.FileName, request.FileType)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate upload URL")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"uploadUrl": url, "photoKey": key})
}

// HandleReadURL - presigned GET URL for a stored photo
func (c *PhotoController) HandleReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		respondError(w, http.StatusBadRequest, "key is required")
		return
	}

	url, err := c.PhotoService.GenerateReadURL(r.Context(), key)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate read URL")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"readUrl": url})
}
