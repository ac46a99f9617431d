package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"careconnect_server/models"
	"careconnect_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// ChatService appends and lists messages for a match. The server owns
// message identity: ids and timestamps assigned here are authoritative,
// whatever the client sent.
type ChatService struct {
	Dynamo  Store
	Matches *MatchService

	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

func NewChatService(dynamo Store, matches *MatchService) *ChatService {
	return &ChatService{Dynamo: dynamo, Matches: matches, now: time.Now}
}

const defaultMessagePageSize = 50

// nextTimestamp returns a strictly increasing timestamp for this
// process. Coincident clock reads are nudged forward, so the sort key
// alone preserves append order; the message-id tie-break in the sort
// key covers coincidence across processes.
func (cs *ChatService) nextTimestamp() time.Time {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	t := cs.now().UTC()
	if !t.After(cs.last) {
		t = cs.last.Add(time.Microsecond)
	}
	cs.last = t
	return t
}

// SendMessage appends a message to a match's chat and returns the
// canonical stored message. The sender must be one of the two match
// participants.
func (cs *ChatService) SendMessage(ctx context.Context, matchID, senderID, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: message content is empty", ErrInvalidInput)
	}

	match, err := cs.Matches.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasParticipant(senderID) {
		return nil, fmt.Errorf("%w: %s in %s", ErrNotAMatchParticipant, senderID, matchID)
	}

	return cs.append(ctx, matchID, senderID, content, false)
}

// SendSystemMessage appends a server-generated message, e.g. the match
// welcome. Exempt from the participant check.
func (cs *ChatService) SendSystemMessage(ctx context.Context, matchID, content string) (*models.Message, error) {
	return cs.append(ctx, matchID, models.SystemSenderID, content, true)
}

func (cs *ChatService) append(ctx context.Context, matchID, senderID, content string, system bool) (*models.Message, error) {
	createdAt := cs.nextTimestamp().Format(models.MessageTimeLayout)
	messageID := uuid.NewString()

	message := models.Message{
		MatchID:   matchID,
		SortKey:   models.MessageSortKey(createdAt, messageID),
		MessageID: messageID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: createdAt,
		IsUnread:  true,
		System:    system,
	}

	if err := cs.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	return &message, nil
}

// ListMessages returns up to limit messages strictly after the cursor,
// oldest first. An empty cursor starts from the beginning; the returned
// cursor is the last sort key seen and can be re-supplied to resume (or
// to re-read the same page after a failure).
func (cs *ChatService) ListMessages(ctx context.Context, matchID, after string, limit int) ([]models.Message, string, error) {
	if matchID == "" {
		return nil, "", fmt.Errorf("%w: matchId is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultMessagePageSize
	}

	keyCondition := "#matchId = :matchId"
	expressionValues := map[string]types.AttributeValue{
		":matchId": &types.AttributeValueMemberS{Value: matchID},
	}
	expressionNames := map[string]string{
		"#matchId": "matchId",
	}
	if after != "" {
		keyCondition += " AND #sortKey > :after"
		expressionValues[":after"] = &types.AttributeValueMemberS{Value: after}
		expressionNames["#sortKey"] = "sortKey"
	}

	items, err := cs.Dynamo.QueryItemsWithOptions(ctx, models.MessagesTable, keyCondition, expressionValues, expressionNames, int32(limit), true)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, "", fmt.Errorf("failed to parse messages: %w", err)
	}

	cursor := after
	if len(messages) > 0 {
		cursor = messages[len(messages)-1].SortKey
	}
	return messages, cursor, nil
}

// GetChatSession assembles the derived chat view for a participant:
// the match, both profiles, and the first message page.
func (cs *ChatService) GetChatSession(ctx context.Context, matchID, userID string) (*models.ChatSession, error) {
	match, err := cs.Matches.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasParticipant(userID) {
		return nil, fmt.Errorf("%w: %s in %s", ErrNotAMatchParticipant, userID, matchID)
	}

	profiles := make([]models.UserProfile, 0, 2)
	for _, id := range []string{match.UserA, match.UserB} {
		key := map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: id},
		}
		item, err := cs.Dynamo.GetItem(ctx, models.UserProfilesTable, key)
		if err != nil {
			continue
		}
		var profile models.UserProfile
		if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
			continue
		}
		profiles = append(profiles, profile)
	}

	messages, cursor, err := cs.ListMessages(ctx, matchID, "", defaultMessagePageSize)
	if err != nil {
		return nil, err
	}

	return &models.ChatSession{
		Match:      *match,
		Profiles:   profiles,
		Messages:   messages,
		NextCursor: cursor,
	}, nil
}

// MarkMessagesAsRead flips isUnread on the messages userID received in
// a match. The user's own messages are untouched.
func (cs *ChatService) MarkMessagesAsRead(ctx context.Context, matchID, userID string) error {
	match, err := cs.Matches.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if !match.HasParticipant(userID) {
		return fmt.Errorf("%w: %s in %s", ErrNotAMatchParticipant, userID, matchID)
	}

	keyCondition := "#matchId = :matchId"
	expressionValues := map[string]types.AttributeValue{
		":matchId": &types.AttributeValueMemberS{Value: matchID},
	}
	expressionNames := map[string]string{
		"#matchId": "matchId",
	}

	items, err := cs.Dynamo.QueryItems(ctx, models.MessagesTable, keyCondition, expressionValues, expressionNames, 1000)
	if err != nil {
		return fmt.Errorf("failed to fetch messages: %w", err)
	}

	for _, item := range items {
		senderID := utils.ExtractString(item, "senderId")
		if senderID == userID {
			continue
		}
		if !utils.ExtractBool(item, "isUnread") {
			continue
		}
		sortKey := utils.ExtractString(item, "sortKey")
		if sortKey == "" {
			continue
		}

		key := map[string]types.AttributeValue{
			"matchId": &types.AttributeValueMemberS{Value: matchID},
			"sortKey": &types.AttributeValueMemberS{Value: sortKey},
		}
		updateExpression := "SET isUnread = :read"
		values := map[string]types.AttributeValue{
			":read": &types.AttributeValueMemberBOOL{Value: false},
		}
		if _, err := cs.Dynamo.UpdateItem(ctx, models.MessagesTable, updateExpression, key, values, nil); err != nil {
			log.Printf("Failed to mark message %s as read: %v", sortKey, err)
		}
	}

	return nil
}

// UpdateMessageLikeStatus toggles the liked flag on one message
func (cs *ChatService) UpdateMessageLikeStatus(ctx context.Context, matchID, sortKey string, liked bool) error {
	if matchID == "" || sortKey == "" {
		return fmt.Errorf("%w: matchId and sortKey are required", ErrInvalidInput)
	}

	key := map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
		"sortKey": &types.AttributeValueMemberS{Value: sortKey},
	}
	updateExpression := "SET liked = :liked"
	values := map[string]types.AttributeValue{
		":liked": &types.AttributeValueMemberBOOL{Value: liked},
	}

	if _, err := cs.Dynamo.UpdateItem(ctx, models.MessagesTable, updateExpression, key, values, nil); err != nil {
		return fmt.Errorf("failed to update like status: %w", err)
	}
	return nil
}
