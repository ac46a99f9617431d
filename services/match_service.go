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

type MatchService struct {
	Dynamo Store
}

// CreateMatchIfAbsent writes the match document for a pair of users,
// keyed by the canonical pair key, using a conditional create. It
// returns created=false when the document already exists — typically
// because the other user's concurrent decision won the race. Either
// way the returned match is the one durable document for the pair.
func (ms *MatchService) CreateMatchIfAbsent(ctx context.Context, userX, userY string) (bool, *models.Match, error) {
	a, b := models.CanonicalPair(userX, userY)
	match := models.Match{
		MatchID:   models.CanonicalPairKey(a, b),
		UserA:     a,
		UserB:     b,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	created, err := ms.Dynamo.PutItemIfAbsent(ctx, models.MatchesTable, match, "matchId")
	if err != nil {
		return false, nil, fmt.Errorf("failed to create match: %w", err)
	}

	if !created {
		existing, err := ms.GetMatch(ctx, match.MatchID)
		if err != nil {
			return false, nil, err
		}
		return false, existing, nil
	}

	log.Printf("🎉 Match created: %s ❤️ %s", a, b)
	return true, &match, nil
}

// GetMatch retrieves a match by its canonical pair key
func (ms *MatchService) GetMatch(ctx context.Context, matchID string) (*models.Match, error) {
	key := map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}

	item, err := ms.Dynamo.GetItem(ctx, models.MatchesTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
		}
		return nil, err
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	return &match, nil
}

// MatchExists reports whether a match document exists for the key
func (ms *MatchService) MatchExists(ctx context.Context, matchID string) (bool, error) {
	_, err := ms.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetMatchesForUser returns every match the user participates in,
// enriched with the counterpart's profile. Matches whose counterpart
// profile has disappeared are skipped rather than failing the list.
func (ms *MatchService) GetMatchesForUser(ctx context.Context, userID string) ([]models.MatchWithProfile, error) {
	var matches []models.Match
	err := ms.Dynamo.ScanWithFilter(ctx, models.MatchesTable, func(item map[string]types.AttributeValue) bool {
		userA, okA := item["userA"].(*types.AttributeValueMemberS)
		userB, okB := item["userB"].(*types.AttributeValueMemberS)
		if !okA || !okB {
			return false
		}
		return userA.Value == userID || userB.Value == userID
	}, nil, &matches)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}

	enriched := make([]models.MatchWithProfile, 0, len(matches))
	for _, match := range matches {
		counterpartID := match.Counterpart(userID)

		key := map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: counterpartID},
		}
		item, err := ms.Dynamo.GetItem(ctx, models.UserProfilesTable, key)
		if err != nil {
			continue
		}

		var profile models.UserProfile
		if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
			continue
		}

		enriched = append(enriched, models.MatchWithProfile{Match: match, Profile: profile})
	}

	return enriched, nil
}
