package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"careconnect_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// SwipeService records swipe decisions and detects mutual matches.
//
// Correctness under concurrent mutual likes rests entirely on the
// conditional create of the canonically-keyed match document: two
// racing Decide calls collapse into a single-document conflict the
// store resolves deterministically. The reciprocal-like read is only an
// optimization to skip the conditional write when the other side has
// not liked back yet.
type SwipeService struct {
	Dynamo   Store
	Profiles *UserProfileService
	Matches  *MatchService
	Chat     *ChatService
}

const matchWelcomeMessage = "It's a match! Say hi."

// Decide records userID's decision about candidateID and, on a
// reciprocal like, creates the match exactly once.
func (ss *SwipeService) Decide(ctx context.Context, userID, candidateID string, liked bool) (*models.DecisionResult, error) {
	if userID == "" || candidateID == "" {
		return nil, fmt.Errorf("%w: userId and candidateId are required", ErrInvalidInput)
	}
	if userID == candidateID {
		return nil, fmt.Errorf("%w: cannot swipe on yourself", ErrInvalidInput)
	}

	// Reject unknown candidates before any write
	if _, err := ss.Profiles.GetUserProfile(ctx, candidateID); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, fmt.Errorf("%w: unknown candidate %q", ErrInvalidInput, candidateID)
		}
		return nil, err
	}

	// Decisions freeze once the pair is matched: the swipe is ignored
	// and the existing match reported back.
	matchID := models.CanonicalPairKey(userID, candidateID)
	exists, err := ss.Matches.MatchExists(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if exists {
		log.Printf("Decision from %s about %s ignored, pair already matched", userID, candidateID)
		return &models.DecisionResult{Matched: true, NewMatch: false, MatchID: matchID}, nil
	}

	// Record (or revise) the decision; plain overwrite, last write wins
	record := models.LikeRecord{
		FromUserID: userID,
		ToUserID:   candidateID,
		Liked:      liked,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := ss.Dynamo.PutItem(ctx, models.LikesTable, record); err != nil {
		return nil, fmt.Errorf("failed to record decision: %w", err)
	}

	if !liked {
		return &models.DecisionResult{Matched: false}, nil
	}

	reciprocal, err := ss.getLikeRecord(ctx, candidateID, userID)
	if err != nil {
		return nil, err
	}
	if reciprocal == nil || !reciprocal.Liked {
		return &models.DecisionResult{Matched: false}, nil
	}

	created, match, err := ss.Matches.CreateMatchIfAbsent(ctx, userID, candidateID)
	if err != nil {
		return nil, err
	}

	if created {
		// Welcome message is best-effort; the match itself is already durable
		if _, err := ss.Chat.SendSystemMessage(ctx, match.MatchID, matchWelcomeMessage); err != nil {
			log.Printf("Failed to write welcome message for match %s: %v", match.MatchID, err)
		}
	}

	return &models.DecisionResult{Matched: true, NewMatch: created, MatchID: match.MatchID}, nil
}

// getLikeRecord fetches the decision fromUserID has recorded about
// toUserID, or nil when they have not decided yet.
func (ss *SwipeService) getLikeRecord(ctx context.Context, fromUserID, toUserID string) (*models.LikeRecord, error) {
	key := map[string]types.AttributeValue{
		"fromUserId": &types.AttributeValueMemberS{Value: fromUserID},
		"toUserId":   &types.AttributeValueMemberS{Value: toUserID},
	}

	item, err := ss.Dynamo.GetItem(ctx, models.LikesTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch reciprocal like: %w", err)
	}

	var record models.LikeRecord
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal like record: %w", err)
	}
	return &record, nil
}
