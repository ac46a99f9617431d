package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"careconnect_server/services"

	socketio "github.com/googollee/go-socket.io"
)

// ChatController struct
type ChatController struct {
	ChatService *services.ChatService
	Socket      *socketio.Server // optional live fan-out, may be nil
}

// NewChatController initializes the chat controller
func NewChatController(service *services.ChatService, socket *socketio.Server) *ChatController {
	return &ChatController{ChatService: service, Socket: socket}
}

// HandleSendMessage - append a message to a match's chat. The stored
// message with its server-assigned id and timestamp is returned; the
// client must treat it as authoritative.
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID  string `json:"matchId"`
		SenderID string `json:"senderId"`
		Text     string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	message, err := c.ChatService.SendMessage(r.Context(), request.MatchID, request.SenderID, request.Text)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if c.Socket != nil {
		c.Socket.BroadcastToRoom("/", message.MatchID, "newMessage", message)
	}

	respondJSON(w, http.StatusOK, message)
}

// HandleGetMessages - fetch an ordered message page for a match
func (c *ChatController) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	matchID := r.URL.Query().Get("matchId")
	after := r.URL.Query().Get("after")
	limitStr := r.URL.Query().Get("limit")

	if matchID == "" {
		respondError(w, http.StatusBadRequest, "matchId is required")
		return
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 0 // service default
	}

	messages, cursor, err := c.ChatService.ListMessages(r.Context(), matchID, after, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"messages":   messages,
		"nextCursor": cursor,
	})
}

// HandleGetSession - assemble the chat session view for a participant
func (c *ChatController) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	matchID := r.URL.Query().Get("matchId")
	userID := r.URL.Query().Get("userId")

	if matchID == "" || userID == "" {
		respondError(w, http.StatusBadRequest, "matchId and userId are required")
		return
	}

	session, err := c.ChatService.GetChatSession(r.Context(), matchID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// HandleMarkMessagesAsRead - mark messages received by user as read
func (c *ChatController) HandleMarkMessagesAsRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
		UserID  string `json:"userId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	log.Printf("Marking messages as read for matchId: %s, user: %s", request.MatchID, request.UserID)

	if err := c.ChatService.MarkMessagesAsRead(r.Context(), request.MatchID, request.UserID); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleLikeMessage - toggle the liked flag on one message
func (c *ChatController) HandleLikeMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
		SortKey string `json:"sortKey"`
		Liked   bool   `json:"liked"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := c.ChatService.UpdateMessageLikeStatus(r.Context(), request.MatchID, request.SortKey, request.Liked); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
