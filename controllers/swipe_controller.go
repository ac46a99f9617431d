package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"careconnect_server/services"
)

// SwipeController struct
type SwipeController struct {
	SwipeService *services.SwipeService
}

// NewSwipeController initializes the controller
func NewSwipeController(service *services.SwipeService) *SwipeController {
	return &SwipeController{SwipeService: service}
}

// HandleDecide - record a swipe decision and report match state
func (c *SwipeController) HandleDecide(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID      string `json:"userId"`
		CandidateID string `json:"candidateId"`
		Liked       bool   `json:"liked"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	log.Printf("Swipe: %s -> %s (liked=%v)", request.UserID, request.CandidateID, request.Liked)

	result, err := c.SwipeService.Decide(r.Context(), request.UserID, request.CandidateID, request.Liked)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
